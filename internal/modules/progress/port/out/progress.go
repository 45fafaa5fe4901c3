package out

import "context"

// KVStore is the persistence backend: string keys to string values.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
