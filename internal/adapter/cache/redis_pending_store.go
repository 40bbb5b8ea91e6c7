package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	"github.com/smallbiznis/codegrant/internal/repository"
)

// RedisPendingStore implements PendingAuthorizationStore backed by Redis.
type RedisPendingStore struct {
	client redis.UniversalClient
	keys   Keyspace
	ttl    time.Duration
}

var _ repository.PendingAuthorizationStore = (*RedisPendingStore)(nil)

// NewRedisPendingStore constructs a Redis-backed pending authorization store.
func NewRedisPendingStore(client redis.UniversalClient, keys Keyspace, ttl time.Duration) *RedisPendingStore {
	return &RedisPendingStore{client: client, keys: keys, ttl: ttl}
}

// Put stores the encoded request with TTL.
func (s *RedisPendingStore) Put(ctx context.Context, requestID string, req domain.AuthorizationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if err := s.client.Set(ctx, s.keys.RequestData(requestID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("persist request: %w", err)
	}
	return nil
}

// Get loads the request without removing it.
func (s *RedisPendingStore) Get(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error) {
	bytes, err := s.client.Get(ctx, s.keys.RequestData(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load request: %w", err)
	}
	var req domain.AuthorizationRequest
	if err := json.Unmarshal(bytes, &req); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", requestID, oauth.ErrCacheCorrupted)
	}
	return &req, nil
}

// Delete removes the pending request.
func (s *RedisPendingStore) Delete(ctx context.Context, requestID string) error {
	if err := s.client.Del(ctx, s.keys.RequestData(requestID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}
