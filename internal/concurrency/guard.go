// Package concurrency provides the coarse lock that serializes snapshot
// imports against regular traffic.
package concurrency

import "sync"

// Guard is a readers-writer lock over the whole record store. Regular
// operations take the shared side; a snapshot import takes the exclusive side
// so it observes and replaces a quiesced store.
//
// A nil Guard is valid and locks nothing. Services constructed for use while
// the exclusive side is already held are given a nil guard.
type Guard struct {
	mu sync.RWMutex
}

// NewGuard returns a ready-to-use guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Shared acquires the shared lock and returns its release func.
// Usage: defer g.Shared()().
func (g *Guard) Shared() func() {
	if g == nil {
		return func() {}
	}
	g.mu.RLock()
	return g.mu.RUnlock
}

// Exclusive acquires the exclusive lock and returns its release func.
func (g *Guard) Exclusive() func() {
	if g == nil {
		return func() {}
	}
	g.mu.Lock()
	return g.mu.Unlock
}
