// Package cache stores alignment results in Redis, keyed by a BLAKE3 digest
// of the aligner configuration and both annotated token sequences.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"

	"m2align/internal/align"
)

const prefix = "m2align:result:"

// Entry is the cached part of an alignment result.
type Entry struct {
	Cost  float64      `json:"cost"`
	Edits []align.Edit `json:"edits"`
}

// Cache wraps a Redis client. A zero ttl keeps entries until evicted.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key digests config and the two sequences. Every token feature takes part,
// so re-annotated input never hits a stale entry.
func Key(config string, orig, cor []align.Token) string {
	h := blake3.New()
	h.Write([]byte(config))
	for _, seq := range [][]align.Token{orig, cor} {
		h.Write([]byte{0})
		for _, t := range seq {
			for _, f := range [...]string{t.Form, t.Tag, t.Base, t.Rel} {
				h.Write([]byte(f))
				h.Write([]byte{0x1f})
			}
			h.Write([]byte{0x1e})
		}
	}
	return prefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the entry stored under key. ok is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) (e Entry, ok bool, err error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return e, true, nil
}

// Put stores e under key.
func (c *Cache) Put(ctx context.Context, key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
