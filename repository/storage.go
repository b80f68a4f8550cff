package repository

import (
	"context"
	"sync"
)

// Local-storage keys used by the storefront.
const (
	UserKey          = "user"
	CartKey          = "cart"
	AdminProductsKey = "adminProducts"
)

// GlobalScope is the client namespace for state shared by every client.
const GlobalScope = "_global"

// LocalStorage is a string key/value store partitioned by client, standing
// in for the browser's local storage. GetItem reports found=false for a
// missing key. RemoveItem on a missing key is not an error.
type LocalStorage interface {
	GetItem(ctx context.Context, clientID, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, clientID, key, value string) error
	RemoveItem(ctx context.Context, clientID, key string) error
}

// MemoryStorage keeps items in process memory. State is lost on restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]map[string]string)}
}

func (s *MemoryStorage) GetItem(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[clientID][key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.items[clientID]
	if !ok {
		bucket = make(map[string]string)
		s.items[clientID] = bucket
	}
	bucket[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.items[clientID]
	if !ok {
		return nil
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(s.items, clientID)
	}
	return nil
}
