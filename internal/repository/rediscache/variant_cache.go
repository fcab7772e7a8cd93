package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const variantKeyPrefix = "rag:rephrase:"

// VariantCache stores parsed rephrasings per query so repeated questions
// skip the rephrasing model call.
type VariantCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVariantCache(rdb *redis.Client, ttl time.Duration) *VariantCache {
	return &VariantCache{rdb: rdb, ttl: ttl}
}

func variantKey(query string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(query)))
	return variantKeyPrefix + hex.EncodeToString(sum[:])
}

// Get reports a miss on any redis or decode error.
func (c *VariantCache) Get(ctx context.Context, query string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, variantKey(query)).Bytes()
	if err != nil {
		return nil, false
	}
	var variants []string
	if err := json.Unmarshal(raw, &variants); err != nil || len(variants) == 0 {
		return nil, false
	}
	return variants, true
}

func (c *VariantCache) Set(ctx context.Context, query string, variants []string) error {
	if len(variants) == 0 {
		return errors.New("refusing to cache empty variant list")
	}
	raw, err := json.Marshal(variants)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, variantKey(query), raw, c.ttl).Err()
}

// NewClient parses url (redis://...) or falls back to treating it as host:port.
func NewClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}
