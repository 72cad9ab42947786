package filter

import "sync"

// Sessions maps a session key to its filter Store, creating stores lazily.
// Each browser session edits its own draft; stores are never evicted for
// the lifetime of the process.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

// Get returns the Store for key, creating it on first use.
func (s *Sessions) Get(key string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[key]
	if !ok {
		st = NewStore()
		s.stores[key] = st
	}
	return st
}
