package store

import (
	"sync"

	"stickynote/internal/model"
	"stickynote/internal/mutate"
)

// ItemStore holds the authoritative in-memory collection. Readers always get a
// copy so a render never observes a half-applied mutation.
type ItemStore struct {
	mu    sync.RWMutex
	items []model.Item
}

func NewItemStore(items []model.Item) *ItemStore {
	return &ItemStore{items: mutate.Clone(items)}
}

func (s *ItemStore) Current() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mutate.Clone(s.items)
}

func (s *ItemStore) Replace(items []model.Item) {
	s.mu.Lock()
	s.items = mutate.Clone(items)
	s.mu.Unlock()
}

func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
