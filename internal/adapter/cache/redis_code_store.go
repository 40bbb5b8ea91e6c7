package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/repository"
)

// RedisCodeStore implements AuthorizationCodeStore backed by Redis.
type RedisCodeStore struct {
	client redis.UniversalClient
	keys   Keyspace
	ttl    time.Duration
}

var _ repository.AuthorizationCodeStore = (*RedisCodeStore)(nil)

// NewRedisCodeStore constructs a Redis-backed authorization code store.
func NewRedisCodeStore(client redis.UniversalClient, keys Keyspace, ttl time.Duration) *RedisCodeStore {
	return &RedisCodeStore{client: client, keys: keys, ttl: ttl}
}

// Save writes both halves of the code in a single MULTI/EXEC.
func (s *RedisCodeStore) Save(ctx context.Context, clientID, code string, grant domain.CodeGrant) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.CodeUserID(clientID, code), grant.UserID, s.ttl)
	pipe.Set(ctx, s.keys.CodeScopes(clientID, code), grant.Scope, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist code: %w", err)
	}
	return nil
}

// Consume reads and deletes both halves of the code atomically. Missing halves
// are reported as nil fields rather than errors.
func (s *RedisCodeStore) Consume(ctx context.Context, clientID, code string) (domain.CodeLookup, error) {
	pipe := s.client.TxPipeline()
	userCmd := pipe.GetDel(ctx, s.keys.CodeUserID(clientID, code))
	scopeCmd := pipe.GetDel(ctx, s.keys.CodeScopes(clientID, code))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.CodeLookup{}, fmt.Errorf("consume code: %w", err)
	}

	var lookup domain.CodeLookup
	var err error
	if lookup.UserID, err = optionalString(userCmd); err != nil {
		return domain.CodeLookup{}, fmt.Errorf("consume code user: %w", err)
	}
	if lookup.Scope, err = optionalString(scopeCmd); err != nil {
		return domain.CodeLookup{}, fmt.Errorf("consume code scopes: %w", err)
	}
	return lookup, nil
}

func optionalString(cmd *redis.StringCmd) (*string, error) {
	val, err := cmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return &val, nil
}
