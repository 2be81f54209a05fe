package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/gardenwatch/internal/ports/secondary"
)

// KeyPrefix namespaces every key gardenwatch writes.
const KeyPrefix = "gardenwatch:"

// KeyValueStore implements secondary.KeyValueStore on top of redis strings.
type KeyValueStore struct {
	rdb *goredis.Client
}

// NewKeyValueStore creates a new redis-backed key/value store.
func NewKeyValueStore(rdb *goredis.Client) *KeyValueStore {
	return &KeyValueStore{rdb: rdb}
}

var _ secondary.KeyValueStore = (*KeyValueStore)(nil)

// Get reads all keys in a single MGET.
func (s *KeyValueStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = KeyPrefix + k
	}

	vals, err := s.rdb.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // nil for missing keys
		}
		result[keys[i]] = []byte(str)
	}
	return result, nil
}

// Set writes all values in one MULTI/EXEC so readers never see a partial update.
func (s *KeyValueStore) Set(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, KeyPrefix+k, v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set keys: %w", err)
	}
	return nil
}
