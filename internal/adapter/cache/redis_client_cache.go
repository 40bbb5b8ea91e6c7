package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	"github.com/smallbiznis/codegrant/internal/repository"
)

// RedisClientCache implements ClientCache backed by Redis.
type RedisClientCache struct {
	client redis.UniversalClient
	keys   Keyspace
	ttl    time.Duration
}

var _ repository.ClientCache = (*RedisClientCache)(nil)

// NewRedisClientCache constructs a Redis-backed client cache.
func NewRedisClientCache(client redis.UniversalClient, keys Keyspace, ttl time.Duration) *RedisClientCache {
	return &RedisClientCache{client: client, keys: keys, ttl: ttl}
}

// GetClient loads and decodes the cached client record.
func (c *RedisClientCache) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	bytes, err := c.client.Get(ctx, c.keys.ClientData(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load client: %w", err)
	}
	var record domain.Client
	if err := json.Unmarshal(bytes, &record); err != nil {
		return nil, fmt.Errorf("decode client %s: %w", clientID, oauth.ErrCacheCorrupted)
	}
	return &record, nil
}

// SetClient stores the client record with the configured TTL.
func (c *RedisClientCache) SetClient(ctx context.Context, record domain.Client) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal client: %w", err)
	}
	key := c.keys.ClientData(strconv.FormatUint(uint64(record.ID), 10))
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("persist client: %w", err)
	}
	return nil
}

// IsKnownClient checks membership in the known-client set.
func (c *RedisClientCache) IsKnownClient(ctx context.Context, clientID string) (bool, error) {
	ok, err := c.client.SIsMember(ctx, c.keys.ClientIDs(), clientID).Result()
	if err != nil {
		return false, fmt.Errorf("check client set: %w", err)
	}
	return ok, nil
}

// MarkKnownClient adds the id to the known-client set.
func (c *RedisClientCache) MarkKnownClient(ctx context.Context, clientID string) error {
	if err := c.client.SAdd(ctx, c.keys.ClientIDs(), clientID).Err(); err != nil {
		return fmt.Errorf("add client to set: %w", err)
	}
	return nil
}
