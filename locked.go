package typebag

import "sync"

// Locked guards a Registry, a Collection or any other single owner value
// with a read write mutex, for callers that need to share it between
// goroutines. The wrapped value must only be used inside Read or Write.
// The zero value wraps the zero value of S.
type Locked[S any] struct {
	mu    sync.RWMutex
	value S
}

// Read runs fn while holding the read lock. fn must not modify the value.
func (l *Locked[S]) Read(fn func(value *S)) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fn(&l.value)
}

// Write runs fn while holding the write lock.
func (l *Locked[S]) Write(fn func(value *S)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(&l.value)
}
