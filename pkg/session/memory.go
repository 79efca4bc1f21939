package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu    sync.Mutex
	bags  map[string]map[string]string
	locks map[string]chan struct{}

	lockWait time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bags:     make(map[string]map[string]string),
		locks:    make(map[string]chan struct{}),
		lockWait: defaultLockWait,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bags[sessionID][key], nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bag, ok := s.bags[sessionID]
	if !ok {
		bag = make(map[string]string)
		s.bags[sessionID] = bag
	}
	bag[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bags[sessionID], key)
	return nil
}

func (s *MemoryStore) Lock(ctx context.Context, sessionID string) (func(), error) {
	s.mu.Lock()
	ch, ok := s.locks[sessionID]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[sessionID] = ch
	}
	s.mu.Unlock()

	waitCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-waitCtx.Done():
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, waitCtx.Err())
	}
}
