package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps blobs in a map. It backs STORAGE_DRIVER=memory and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string

	// FailPut and FailCopy, when set, are consulted before every Put or Copy.
	FailPut  func(key string) error
	FailCopy func(srcKey, dstKey string) error
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if s.FailPut != nil {
		if err := s.FailPut(key); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("memory put %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *MemoryStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	if s.FailCopy != nil {
		if err := s.FailCopy(srcKey, dstKey); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[srcKey]
	if !ok {
		return fmt.Errorf("memory copy %s: %w", srcKey, ErrObjectNotFound)
	}
	s.objects[dstKey] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *MemoryStore) URL(key string) string {
	return s.baseURL + "/" + key
}

func (s *MemoryStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if ok, _ := s.Exists(ctx, key); !ok {
		return "", fmt.Errorf("memory presign %s: %w", key, ErrObjectNotFound)
	}
	return fmt.Sprintf("%s/%s?expires=%d", s.baseURL, key, int(expiry.Seconds())), nil
}

// Keys lists stored keys in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
