package store

import (
	"sync"

	"github.com/brmartins/orderflow/internal/order"
	"github.com/brmartins/orderflow/internal/user"
)

// MemoryOrderStore is an in-memory OrderStore safe for concurrent use.
type MemoryOrderStore struct {
	orders map[string]*order.Order
	mutex  sync.RWMutex
}

// NewMemoryOrderStore creates an empty in-memory order store.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[string]*order.Order),
	}
}

func (s *MemoryOrderStore) Save(o *order.Order) {
	s.mutex.Lock()
	s.orders[o.ID] = o
	s.mutex.Unlock()
}

func (s *MemoryOrderStore) FindByID(id string) (*order.Order, bool) {
	s.mutex.RLock()
	o, exists := s.orders[id]
	s.mutex.RUnlock()
	return o, exists
}

// MemoryUserStore is an in-memory UserStore safe for concurrent use.
type MemoryUserStore struct {
	users map[string]*user.User
	mutex sync.RWMutex
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]*user.User),
	}
}

func (s *MemoryUserStore) Save(u *user.User) {
	s.mutex.Lock()
	s.users[u.ID] = u
	s.mutex.Unlock()
}

func (s *MemoryUserStore) FindByID(id string) (*user.User, bool) {
	s.mutex.RLock()
	u, exists := s.users[id]
	s.mutex.RUnlock()
	return u, exists
}

func (s *MemoryUserStore) FindAll() []*user.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	users := make([]*user.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users
}

func (s *MemoryUserStore) Delete(id string) {
	s.mutex.Lock()
	delete(s.users, id)
	s.mutex.Unlock()
}
