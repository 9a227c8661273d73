// Package cache stores extracted job description keywords so repeated
// requests against the same posting skip extraction.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultTTL is how long keyword lists stay cached
const DefaultTTL = 24 * time.Hour

const keyPrefix = "resume-tailor:"

// Error wraps a cache backend failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Memory is an in-process keyword cache
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates an in-process cache whose entries expire after ttl
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{c: gocache.New(ttl, 10*time.Minute)}
}

// Get returns a copy of the cached keywords for key
func (m *Memory) Get(_ context.Context, key string) ([]types.Keyword, bool, error) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	kws, ok := v.([]types.Keyword)
	if !ok {
		return nil, false, nil
	}
	return append([]types.Keyword(nil), kws...), true, nil
}

// Set stores a copy of kws under key
func (m *Memory) Set(_ context.Context, key string, kws []types.Keyword) error {
	m.c.Set(key, append([]types.Keyword(nil), kws...), gocache.DefaultExpiration)
	return nil
}

// Len reports the number of live entries
func (m *Memory) Len() int {
	return m.c.ItemCount()
}

// Redis is a keyword cache shared between processes
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the server at url (redis://...) and pings it
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, &Error{Message: "invalid redis url", Cause: err}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &Error{Message: "failed to connect to redis", Cause: err}
	}
	return NewRedisFromClient(client, ttl), nil
}

// NewRedisFromClient wraps an existing client
func NewRedisFromClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get loads the keyword list stored under key
func (r *Redis) Get(ctx context.Context, key string) ([]types.Keyword, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &Error{Message: "redis get failed", Cause: err}
	}

	var kws []types.Keyword
	if err := json.Unmarshal(raw, &kws); err != nil {
		return nil, false, &Error{Message: "corrupt cache entry", Cause: err}
	}
	return kws, true, nil
}

// Set stores kws as JSON under key
func (r *Redis) Set(ctx context.Context, key string, kws []types.Keyword) error {
	raw, err := json.Marshal(kws)
	if err != nil {
		return &Error{Message: "failed to encode keywords", Cause: err}
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		return &Error{Message: "redis set failed", Cause: err}
	}
	return nil
}

// Close releases the connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
