package kv

import "context"

// Repository describes the versioned key-value contract.
type Repository interface {
	// Get returns the value and its version; (nil, 0, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, int64, error)

	// Set replaces the value if the stored version equals expectedVersion
	// (0 requires the key to be absent) and returns the new version.
	Set(ctx context.Context, key string, value []byte, expectedVersion int64) (int64, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
