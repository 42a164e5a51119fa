package booking

import "sync"

// slotLocks hands out one mutex per slot key so that bookings for the same
// (doctor, date, slot) run one at a time while unrelated slots stay parallel.
// Entries are reference counted and dropped once the last holder releases.
type slotLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the key's lock is held and returns its release func.
func (l *slotLocks) acquire(key string) func() {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
	}
}
