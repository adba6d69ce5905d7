package user

import (
	"errors"
	"strings"
	"time"
)

// User holds account data for a customer.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the user invariants.
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("user name cannot be empty")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return errors.New("invalid email address")
	}
	return nil
}
