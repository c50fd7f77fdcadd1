package handlers

import "sync"

// Set is an ordered, concurrency-safe handler list. Ordering is significant:
// the execution pipeline tries handlers front to back and the first
// synthesized response wins.
type Set struct {
	lock  sync.RWMutex
	items []Handler
}

// NewSet creates a Set seeded with the given handlers.
func NewSet(initial ...Handler) *Set {
	s := &Set{}
	s.items = append(s.items, initial...)
	return s
}

// Handlers returns a snapshot of the current list. The returned slice is a
// copy; mutating it does not affect the Set.
func (s *Set) Handlers() []Handler {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ret := make([]Handler, len(s.items))
	copy(ret, s.items)
	return ret
}

// Prepend inserts handlers at the front of the list, so they take precedence
// over everything added earlier.
func (s *Set) Prepend(hs ...Handler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.items = append(append([]Handler(nil), hs...), s.items...)
}

// Append adds handlers at the end of the list.
func (s *Set) Append(hs ...Handler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.items = append(s.items, hs...)
}

// Replace discards the current list and installs the given handlers.
func (s *Set) Replace(hs ...Handler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.items = append([]Handler(nil), hs...)
}

// Len returns the number of handlers currently in the list.
func (s *Set) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.items)
}
