package usecase

import (
	"time"

	"github.com/brmartins/orderflow/internal/store"
	"github.com/brmartins/orderflow/internal/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CreateUserInput is the request to register a user.
type CreateUserInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UserOutput is the user projection returned to callers.
type UserOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser registers a new user.
type CreateUser struct {
	users store.UserStore
}

// NewCreateUser wires the create-user use case.
func NewCreateUser(users store.UserStore) *CreateUser {
	return &CreateUser{users: users}
}

func (uc *CreateUser) Execute(input CreateUserInput) Response[UserOutput] {
	u := &user.User{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now(),
	}

	if err := u.Validate(); err != nil {
		return fail[UserOutput](err.Error())
	}

	uc.users.Save(u)
	log.WithField("user_id", u.ID).Info("User created")

	return ok(UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt})
}

// ListUsers returns all registered users.
type ListUsers struct {
	users store.UserStore
}

// NewListUsers wires the list-users use case.
func NewListUsers(users store.UserStore) *ListUsers {
	return &ListUsers{users: users}
}

func (uc *ListUsers) Execute() Response[[]UserOutput] {
	all := uc.users.FindAll()

	out := make([]UserOutput, 0, len(all))
	for _, u := range all {
		out = append(out, UserOutput{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt})
	}

	return ok(out)
}
