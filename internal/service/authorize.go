package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/domain/oauth"
)

// LoginPrompt is what the login page needs to ask the user to approve a request.
type LoginPrompt struct {
	RequestID  string
	ClientName string
	Scope      string
}

// Authorize validates an /authorize request against the client registry and
// parks it in the pending store. Failures are returned as *OAuthError.
func (s *AuthService) Authorize(ctx context.Context, params url.Values) (*LoginPrompt, error) {
	ctx, span := s.startSpan(ctx, "AuthService.Authorize")
	defer span.End()

	req, err := ParseAuthorizeRequest(params)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, oauth.ErrMissingParameter):
			return nil, newOAuthError("invalid_request", "Missing required parameters", http.StatusBadRequest)
		case errors.Is(err, oauth.ErrInvalidRedirectURI):
			return nil, newOAuthError("invalid_request", "Invalid redirect URI", http.StatusBadRequest)
		case errors.Is(err, oauth.ErrInvalidClient):
			return nil, redirectError("invalid_client", "The client_id parameter is missing", req.RedirectURI, req.State)
		case errors.Is(err, oauth.ErrMissingScope):
			return nil, redirectError("invalid_scope", "The scope parameter is missing", req.RedirectURI, req.State)
		case errors.Is(err, oauth.ErrUnsupportedResponseType):
			return nil, redirectError("unsupported_response_type", "The response_type parameter is missing or unsupported", req.RedirectURI, req.State)
		default:
			return nil, fmt.Errorf("parse authorize request: %w", err)
		}
	}

	if !s.clients.Exists(ctx, req.ClientID) {
		return nil, redirectError("invalid_client", "The client_id parameter is missing", req.RedirectURI, req.State)
	}

	client, err := s.clients.Resolve(ctx, req.ClientID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolve client: %w", err)
	}
	if client == nil {
		s.log().Warn("client exists but record is unavailable", zap.String("client_id", req.ClientID))
		return nil, redirectError("server_error", "A database error occurred", req.RedirectURI, req.State)
	}

	if !client.HasRedirectURI(req.RedirectURI) {
		return nil, redirectError("invalid_redirect_uri", "The redirect uri parameter is invalid", req.RedirectURI, req.State)
	}
	if !client.AllowsScopes(req.Scopes()) {
		return nil, redirectError("invalid_scope", "The scope parameter contains unknown scopes", req.RedirectURI, req.State)
	}

	requestID, err := NewRequestID(s.now())
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.pending.Put(storeCtx, requestID, req); err != nil {
		span.RecordError(err)
		s.log().Error("failed to store pending authorization", zap.String("client_id", req.ClientID), zap.Error(err))
		return nil, redirectError("server_error", "The authorization request could not be stored", req.RedirectURI, req.State)
	}

	s.audit("authorize.pending", "client_id", req.ClientID, "request_id", requestID)
	return &LoginPrompt{RequestID: requestID, ClientName: client.Name, Scope: req.Scope}, nil
}
