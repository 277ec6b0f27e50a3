// Package settings holds runtime-tunable values that are not persisted in
// the record store.
package settings

import "sync"

// Bounds for the expiring-soon window.
const (
	MinExpiresSoonDays = 1
	MaxExpiresSoonDays = 365
)

// Store holds the mutable settings behind a lock. Values reset to their
// configured defaults on restart.
type Store struct {
	mu              sync.RWMutex
	expiresSoonDays int
}

// NewStore creates a settings store with the given expiring-soon default.
func NewStore(expiresSoonDays int) *Store {
	return &Store{expiresSoonDays: expiresSoonDays}
}

// ExpiresSoonDays returns the current expiring-soon window in days.
func (s *Store) ExpiresSoonDays() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresSoonDays
}

// SetExpiresSoonDays updates the window. Returns false when days is out of
// the accepted range.
func (s *Store) SetExpiresSoonDays(days int) bool {
	if days < MinExpiresSoonDays || days > MaxExpiresSoonDays {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresSoonDays = days
	return true
}
