package store

import (
	"github.com/brmartins/orderflow/internal/order"
	"github.com/brmartins/orderflow/internal/user"
)

// OrderStore persists orders. Save replaces any order with the same id
// and must not fail for well-formed input.
type OrderStore interface {
	Save(o *order.Order)
	FindByID(id string) (*order.Order, bool)
}

// UserStore persists users.
type UserStore interface {
	Save(u *user.User)
	FindByID(id string) (*user.User, bool)
	FindAll() []*user.User
	Delete(id string)
}
