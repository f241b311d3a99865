package memory

import (
	"context"
	"strings"
	"sync"
)

type groceryStorage struct {
	mu     sync.RWMutex
	states map[string]map[string]bool // key: ownerUserID -> nameLower -> completed
}

func newGroceryStorage() *groceryStorage {
	return &groceryStorage{
		states: make(map[string]map[string]bool),
	}
}

func (m *MemoryStorage) GetCompletionStates(ctx context.Context, ownerUserID string) (map[string]bool, error) {
	s := m.grocery
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]bool, len(s.states[ownerUserID]))
	for name, completed := range s.states[ownerUserID] {
		states[name] = completed
	}

	return states, nil
}

func (m *MemoryStorage) SetCompletionState(ctx context.Context, ownerUserID string, nameLower string, completed bool) error {
	s := m.grocery
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.states[ownerUserID] == nil {
		s.states[ownerUserID] = make(map[string]bool)
	}
	s.states[ownerUserID][strings.ToLower(nameLower)] = completed
	return nil
}
