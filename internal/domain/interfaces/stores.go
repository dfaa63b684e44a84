package interfaces

import "context"

// KeyValueStore is the persisted session area: small values under fixed keys.
// Get reports ok=false for a missing key rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
