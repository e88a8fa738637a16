package services

import (
	"sync"

	"github.com/google/uuid"
)

// AccountLocker serializes imports and rollbacks per account within this
// process. Entries are dropped once no holder or waiter remains.
type AccountLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[uuid.UUID]*accountLock)}
}

// Lock blocks until the account is free and returns the unlock func.
func (l *AccountLocker) Lock(accountID uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[accountID]
	if !ok {
		lock = &accountLock{}
		l.locks[accountID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			lock.mu.Unlock()

			l.mu.Lock()
			lock.refs--
			if lock.refs == 0 {
				delete(l.locks, accountID)
			}
			l.mu.Unlock()
		})
	}
}

func (l *AccountLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
