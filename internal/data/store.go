package data

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNoCollection is returned by Store.Load when nothing has been saved under the key yet.
var ErrNoCollection = errors.New("collection not found")

// Store persists whole collections as JSON documents. There are no partial updates: Save replaces
// the collection and Load reads all of it.
type Store interface {
	Load(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, value any) error
	Close() error
}

// MemoryStore keeps collections in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	doc, ok := s.docs[key]
	s.mu.Unlock()

	if !ok {
		return ErrNoCollection
	}
	return json.Unmarshal(doc, dest)
}

func (s *MemoryStore) Save(_ context.Context, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[key] = doc
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
