package repository

import (
	"context"

	"github.com/smallbiznis/codegrant/internal/domain"
)

// ClientRepository exposes registered OAuth clients from the system of record.
type ClientRepository interface {
	// GetClientByID returns oauth.ErrClientNotFound when no row matches.
	GetClientByID(ctx context.Context, clientID uint32) (domain.Client, error)
	ClientExists(ctx context.Context, clientID uint32) (bool, error)
}

// UserRepository exposes persistence for end users.
type UserRepository interface {
	// GetByEmail returns oauth.ErrUserNotFound when no row matches.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}
