package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStore is an in-process ObjectStore for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string

	// UploadErr, CopyErr and VerifyErr force failures to exercise degraded
	// paths.
	UploadErr error
	CopyErr   error
	VerifyErr error
}

var _ ObjectStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (s *MemoryStore) Upload(_ context.Context, bucket, key string, body io.Reader, contentType string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey(bucket, key)] = data
	s.types[objectKey(bucket, key)] = contentType
	return nil
}

func (s *MemoryStore) Download(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[objectKey(bucket, key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) List(_ context.Context, bucket, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	full := objectKey(bucket, prefix)
	var keys []string
	for k := range s.objects {
		if strings.HasPrefix(k, full) {
			keys = append(keys, strings.TrimPrefix(k, bucket+"/"))
		}
	}
	return keys, nil
}

func (s *MemoryStore) Delete(_ context.Context, bucket string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, objectKey(bucket, key))
		delete(s.types, objectKey(bucket, key))
	}
	return nil
}

func (s *MemoryStore) Copy(_ context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	if s.CopyErr != nil {
		return s.CopyErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[objectKey(srcBucket, srcKey)]
	if !ok {
		return ErrNotFound
	}
	s.objects[objectKey(dstBucket, dstKey)] = append([]byte(nil), data...)
	s.types[objectKey(dstBucket, dstKey)] = s.types[objectKey(srcBucket, srcKey)]
	return nil
}

func (s *MemoryStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("memory://%s/%s", bucket, key)
}

func (s *MemoryStore) Verify(_ context.Context, bucket, key string) error {
	if s.VerifyErr != nil {
		return s.VerifyErr
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[objectKey(bucket, key)]; !ok {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether an object is present. Test helper.
func (s *MemoryStore) Exists(bucket, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[objectKey(bucket, key)]
	return ok
}

// ContentType returns the stored content type for an object. Test helper.
func (s *MemoryStore) ContentType(bucket, key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[objectKey(bucket, key)]
}
