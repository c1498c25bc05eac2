// Package storage holds the blob stores that keep uploaded video files.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// Store is a flat key/value blob store. Keys use "/" separators.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
