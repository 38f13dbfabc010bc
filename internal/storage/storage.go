package storage

import (
	"context"
	"time"
)

// BlobStore is the object store holding profile images. Presigned URLs
// grant exactly one operation on one key until ttl elapses.
type BlobStore interface {
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Delete succeeds when the key does not exist.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
