package conversation

import (
	"sync"

	"github.com/google/uuid"
)

// locks serializes message processing per user. Ledger mutations are not
// safe under interleaving: category replacement and transaction appends for
// one user must never run concurrently. Different users are independent.
type locks struct {
	mu    sync.Mutex
	users map[uuid.UUID]*sync.Mutex
}

func newLocks() *locks {
	return &locks{users: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the mutex for a user and returns the matching unlock.
func (l *locks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.users[id]
	if !ok {
		m = &sync.Mutex{}
		l.users[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
