package ledger

import (
	"context"
	"sync"

	"cinema-seat-ledger/internal/data/entity"
)

// keyLock hands out one exclusive slot per ShowKey. Slots are dropped once
// nobody holds or waits on them, so the map only grows with live contention.
type keyLock struct {
	mu    sync.Mutex
	slots map[entity.ShowKey]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{slots: make(map[entity.ShowKey]*slot)}
}

// Lock blocks until the slot for key is free or ctx is done. The returned
// func releases the slot and must be called exactly once.
func (l *keyLock) Lock(ctx context.Context, key entity.ShowKey) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return func() {
			<-s.ch
			l.release(key, s)
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}
}

func (l *keyLock) release(key entity.ShowKey, s *slot) {
	l.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
	l.mu.Unlock()
}
