package database

import (
	"context"
	"sync"
)

// MemoryUserStore keeps records in a slice in insertion order.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users []User
}

func NewMemoryUserStore(seed []User) *MemoryUserStore {
	users := make([]User, len(seed), len(seed)+16)
	copy(users, seed)
	return &MemoryUserStore{users: users}
}

// FindByID scans the records in order and reports whether one has id.
func (s *MemoryUserStore) FindByID(id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.users[i], true
	}
	return User{}, false
}

func (s *MemoryUserStore) indexOf(id int64) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryUserStore) List(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := s.FindByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) Create(_ context.Context, nombre string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, u := range s.users {
		maxID = max(maxID, u.ID)
	}
	u := User{ID: nextID(len(s.users), maxID), Nombre: nombre}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *MemoryUserStore) UpdateName(_ context.Context, id int64, nombre string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.users[i].Nombre = nombre
	u := s.users[i]
	return &u, nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return &u, nil
}

func (s *MemoryUserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
