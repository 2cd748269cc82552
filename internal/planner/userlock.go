package planner

import "sync"

// userLocks hands out one mutex per user so generate and replan invocations
// for the same user never interleave.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire blocks until the user's lock is held and returns its release func.
func (l *userLocks) acquire(userID uint) (release func()) {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
