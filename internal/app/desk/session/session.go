package session

import (
	"strings"
	"sync"
)

// Store holds the operator name for the lifetime of one desk session. It is
// never written to disk.
type Store struct {
	mu       sync.RWMutex
	operator string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetOperator(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operator = strings.ToUpper(strings.TrimSpace(name))
}

// Operator returns the stored name, or "" when nobody logged in.
func (s *Store) Operator() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operator
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operator = ""
}
