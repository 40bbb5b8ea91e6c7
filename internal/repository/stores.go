package repository

import (
	"context"

	"github.com/smallbiznis/codegrant/internal/domain"
)

// ClientCache is the read-through cache in front of ClientRepository.
type ClientCache interface {
	// GetClient returns (nil, nil) on a cache miss.
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	SetClient(ctx context.Context, client domain.Client) error
	IsKnownClient(ctx context.Context, clientID string) (bool, error)
	MarkKnownClient(ctx context.Context, clientID string) error
}

// PendingAuthorizationStore holds validated authorization requests until login.
type PendingAuthorizationStore interface {
	Put(ctx context.Context, requestID string, req domain.AuthorizationRequest) error
	// Get returns (nil, nil) when the request id is unknown or expired.
	Get(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error)
	Delete(ctx context.Context, requestID string) error
}

// AuthorizationCodeStore binds issued codes to the client that requested them.
type AuthorizationCodeStore interface {
	Save(ctx context.Context, clientID, code string, grant domain.CodeGrant) error
	// Consume reads and removes both halves of a code in one step.
	Consume(ctx context.Context, clientID, code string) (domain.CodeLookup, error)
}
