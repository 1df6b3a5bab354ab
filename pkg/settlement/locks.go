// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package settlement

import (
	"sync"

	"github.com/elliotchance/pie/v2"
)

// playerLocks serializes settlements touching the same player. Locks are always taken in id
// order so two settlements over the same pair cannot deadlock.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *playerLocks) get(playerID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[playerID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[playerID] = lock
	}
	return lock
}

// acquire locks every player and returns the function releasing them.
func (l *playerLocks) acquire(playerIDs ...string) func() {
	ordered := pie.Sort(pie.Unique(playerIDs))
	held := make([]*sync.Mutex, 0, len(ordered))
	for _, id := range ordered {
		lock := l.get(id)
		lock.Lock()
		held = append(held, lock)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
