package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder wraps a single keyed value in a cache client. Every operation
// is a no-op on a nil client, so callers do not branch on whether a cache
// is configured.
type CacheBuilder struct {
	cache       CacheClient
	key         string
	hashPattern string
	value       any
	ttl         time.Duration
	ctx         context.Context
}

func NewCacheBuilder(cache CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		cache: cache,
		key:   key,
		ctx:   context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	if ctx != nil {
		b.ctx = ctx
	}
	return b
}

// WithHashPattern formats the key through pattern, e.g. "integration:stats:%s".
func (b *CacheBuilder) WithHashPattern(pattern string) *CacheBuilder {
	b.hashPattern = pattern
	return b
}

func (b *CacheBuilder) Key() string {
	if b.hashPattern == "" {
		return b.key
	}
	return fmt.Sprintf(b.hashPattern, b.key)
}

func (b *CacheBuilder) Set() error {
	if b.cache == nil {
		return nil
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	set := b.cache.B().Set().Key(b.Key()).Value(valkey.BinaryString(payload))
	if b.ttl > 0 {
		return b.cache.Do(b.ctx, set.Ex(b.ttl).Build()).Error()
	}
	return b.cache.Do(b.ctx, set.Build()).Error()
}

// Get decodes the cached value into target and reports whether it was found.
func (b *CacheBuilder) Get(target any) (bool, error) {
	if b.cache == nil {
		return false, nil
	}

	payload, err := b.cache.Do(b.ctx, b.cache.B().Get().Key(b.Key()).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.cache == nil {
		return nil
	}
	return b.cache.Do(b.ctx, b.cache.B().Del().Key(b.Key()).Build()).Error()
}
