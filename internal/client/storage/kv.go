// Package storage provides the key-value backing used by the local trip
// store. Values are opaque byte blobs.
package storage

import "context"

// KV is a minimal durable key-value map.
//
// Get reports found=false with a nil error when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
