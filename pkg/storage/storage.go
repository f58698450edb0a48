// Package storage abstracts the object store holding note documents and
// audio files.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when an object key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the object-level contract the services depend on. Keys are
// slash-separated paths scoped per bucket.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	List(ctx context.Context, bucket, prefix string) ([]string, error)
	Delete(ctx context.Context, bucket string, keys ...string) error
	Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
	PublicURL(bucket, key string) string
	// Verify checks that an uploaded object is reachable through its public
	// URL before it is handed to downstream consumers.
	Verify(ctx context.Context, bucket, key string) error
}
