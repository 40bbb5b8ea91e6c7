package client

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	"github.com/smallbiznis/codegrant/internal/repository"
)

// Directory resolves registered clients, reading through the cache to the
// system of record.
type Directory struct {
	repo    repository.ClientRepository
	cache   repository.ClientCache
	timeout time.Duration
	logger  *zap.Logger
}

// NewDirectory creates a client directory. A zero timeout disables per-call deadlines.
func NewDirectory(repo repository.ClientRepository, cache repository.ClientCache, timeout time.Duration, logger *zap.Logger) *Directory {
	return &Directory{repo: repo, cache: cache, timeout: timeout, logger: logger}
}

// Resolve returns the client record, or nil when the client is unknown.
// Infrastructure failures are logged and reported as unknown. The only error
// returned is oauth.ErrCacheCorrupted.
func (d *Directory) Resolve(ctx context.Context, clientID string) (*domain.Client, error) {
	id, ok := parseClientID(clientID)
	if !ok {
		return nil, nil
	}

	ctx, cancel := d.withDeadline(ctx)
	defer cancel()

	cached, err := d.cache.GetClient(ctx, clientID)
	switch {
	case errors.Is(err, oauth.ErrCacheCorrupted):
		d.log().Error("client cache entry corrupted", zap.String("client_id", clientID), zap.Error(err))
		return nil, err
	case err != nil:
		d.log().Warn("client cache read failed", zap.String("client_id", clientID), zap.Error(err))
	case cached != nil:
		return cached, nil
	}

	record, err := d.repo.GetClientByID(ctx, id)
	if err != nil {
		if !errors.Is(err, oauth.ErrClientNotFound) {
			d.log().Warn("client lookup failed", zap.String("client_id", clientID), zap.Error(err))
		}
		return nil, nil
	}

	if err := d.cache.SetClient(ctx, record); err != nil {
		d.log().Warn("client cache write failed", zap.String("client_id", clientID), zap.Error(err))
	}

	d.log().Debug("client resolved from store", zap.String("client_id", clientID))
	return &record, nil
}

// Exists reports whether clientID names a registered client.
func (d *Directory) Exists(ctx context.Context, clientID string) bool {
	id, ok := parseClientID(clientID)
	if !ok {
		return false
	}

	ctx, cancel := d.withDeadline(ctx)
	defer cancel()

	known, err := d.cache.IsKnownClient(ctx, clientID)
	if err != nil {
		d.log().Warn("client set read failed", zap.String("client_id", clientID), zap.Error(err))
	}
	if known {
		return true
	}

	exists, err := d.repo.ClientExists(ctx, id)
	if err != nil {
		d.log().Warn("client existence check failed", zap.String("client_id", clientID), zap.Error(err))
		return false
	}
	if !exists {
		return false
	}

	if err := d.cache.MarkKnownClient(ctx, clientID); err != nil {
		d.log().Warn("client set write failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return true
}

func (d *Directory) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.timeout)
}

func (d *Directory) log() *zap.Logger {
	if d != nil && d.logger != nil {
		return d.logger
	}
	return zap.L()
}

// parseClientID accepts only the canonical decimal form, so "042" is not
// client 42. Cache keys and the known-client set are keyed by that form.
func parseClientID(clientID string) (uint32, bool) {
	id, err := strconv.ParseUint(clientID, 10, 32)
	if err != nil || strconv.FormatUint(id, 10) != clientID {
		return 0, false
	}
	return uint32(id), true
}
