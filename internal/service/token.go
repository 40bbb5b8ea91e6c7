package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// TokenRequest is the body of POST /token.
type TokenRequest struct {
	ClientID     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
	AuthCode     string `json:"auth_code" form:"auth_code"`
}

// TokenResponse is returned on a successful exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ExchangeToken redeems an authorization code for a signed access token. The
// code is consumed whether or not signing succeeds.
func (s *AuthService) ExchangeToken(ctx context.Context, in TokenRequest) (*TokenResponse, error) {
	ctx, span := s.startSpan(ctx, "AuthService.ExchangeToken")
	defer span.End()

	if !s.clients.Exists(ctx, in.ClientID) {
		return nil, newOAuthError("invalid_client", "Invalid client_id", http.StatusBadRequest)
	}

	client, err := s.clients.Resolve(ctx, in.ClientID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolve client: %w", err)
	}
	if client == nil {
		return nil, newOAuthError("invalid_client", "Client data not found", http.StatusBadRequest)
	}
	if subtle.ConstantTimeCompare([]byte(client.Secret), []byte(in.ClientSecret)) != 1 {
		s.audit("token.client_secret_mismatch", "client_id", in.ClientID)
		return nil, newOAuthError("invalid_client", "Invalid client_secret", http.StatusUnauthorized)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	lookup, err := s.codes.Consume(storeCtx, in.ClientID, in.AuthCode)
	if err != nil {
		span.RecordError(err)
		s.log().Warn("authorization code lookup failed", zap.String("client_id", in.ClientID), zap.Error(err))
		return nil, newOAuthError("invalid_grant", "Unknown auth code", http.StatusUnauthorized)
	}

	switch {
	case lookup.UserID != nil && lookup.Scope == nil:
		return nil, newOAuthError("invalid_grant", "Unknown scopes for auth code", http.StatusUnauthorized)
	case lookup.UserID == nil && lookup.Scope != nil:
		return nil, newOAuthError("invalid_grant", "Unknown user id for auth code", http.StatusUnauthorized)
	case lookup.UserID == nil:
		return nil, newOAuthError("invalid_grant", "Unknown auth code", http.StatusUnauthorized)
	}

	token, err := s.jwt.GenerateAccessToken(*lookup.UserID, in.ClientID, *lookup.Scope)
	if err != nil {
		span.RecordError(err)
		s.log().Error("failed to sign access token", zap.String("client_id", in.ClientID), zap.Error(err))
		return nil, newOAuthError("server_error", "Failed to generate access_token", http.StatusInternalServerError)
	}

	s.audit("token.issued", "client_id", in.ClientID, "user_id", *lookup.UserID)
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwt.TTL().Seconds()),
	}, nil
}
