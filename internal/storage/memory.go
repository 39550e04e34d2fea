package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

const memoryBaseURL = "https://umkm-images.local"

// MemoryStorage is an in-process ObjectStorage used by tests and by local
// runs without S3 credentials.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.objects, key)
	}
	return nil
}

func (m *MemoryStorage) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return memoryBaseURL + "/" + key
}

func (m *MemoryStorage) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, memoryBaseURL+"/")
}

// Has reports whether an object exists, for asserting lifecycle behavior
func (m *MemoryStorage) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// HasURL reports whether the object behind a public URL exists
func (m *MemoryStorage) HasURL(url string) bool {
	key, ok := m.KeyFromURL(url)
	if !ok {
		return false
	}
	return m.Has(key)
}

// Len returns the number of stored objects
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
