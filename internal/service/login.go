package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	pw "github.com/smallbiznis/codegrant/internal/password"
)

// LoginInput is the submitted login form.
type LoginInput struct {
	RequestID string
	Email     string
	Password  string
}

// Login authenticates the user for a pending request and issues an
// authorization code. It returns the URL to redirect the user agent to.
//
// oauth.ErrLoginFailed means the submission could not be tied to a pending
// request; an *OAuthError carries a redirect back to the client.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	ctx, span := s.startSpan(ctx, "AuthService.Login")
	defer span.End()

	if in.RequestID == "" || in.Email == "" || in.Password == "" {
		return "", oauth.ErrLoginFailed
	}

	req, err := s.loadPending(ctx, in.RequestID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	user, ok := s.authenticate(ctx, in.Email, in.Password)
	if !ok {
		s.audit("login.denied", "client_id", req.ClientID, "request_id", in.RequestID)
		return "", accessDenied(req)
	}

	if req.EffectiveResponseType() != domain.ResponseTypeCode {
		return "", accessDenied(req)
	}

	code, err := newAuthorizationCode()
	if err != nil {
		return "", err
	}

	userID := strconv.FormatInt(user.ID, 10)
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.codes.Save(storeCtx, req.ClientID, code, domain.CodeGrant{UserID: userID, Scope: req.Scope}); err != nil {
		span.RecordError(err)
		s.log().Error("failed to store authorization code", zap.String("client_id", req.ClientID), zap.Error(err))
		return "", redirectError("server_error", "The authorization code could not be issued", req.RedirectURI, req.State)
	}

	if err := s.pending.Delete(storeCtx, in.RequestID); err != nil {
		s.log().Warn("failed to delete pending authorization", zap.String("request_id", in.RequestID), zap.Error(err))
	}

	s.audit("login.success", "client_id", req.ClientID, "user_id", user.ID)

	params := url.Values{}
	params.Set("code", code)
	if req.State != nil {
		params.Set("state", *req.State)
	}
	return appendQuery(req.RedirectURI, params), nil
}

func (s *AuthService) loadPending(ctx context.Context, requestID string) (*domain.AuthorizationRequest, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	req, err := s.pending.Get(storeCtx, requestID)
	switch {
	case errors.Is(err, oauth.ErrCacheCorrupted):
		s.log().Error("pending authorization corrupted", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("load pending authorization: %w", err)
	case err != nil:
		s.log().Warn("pending authorization lookup failed", zap.String("request_id", requestID), zap.Error(err))
		return nil, oauth.ErrLoginFailed
	case req == nil:
		return nil, oauth.ErrLoginFailed
	}
	return req, nil
}

// authenticate never distinguishes an unknown email from a wrong password.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (domain.User, bool) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	user, err := s.users.GetByEmail(storeCtx, email)
	if err != nil {
		if !errors.Is(err, oauth.ErrUserNotFound) {
			s.log().Warn("user lookup failed", zap.Error(err))
		}
		return domain.User{}, false
	}

	valid, err := pw.Verify(password, user.PasswordHash)
	if err != nil {
		s.log().Warn("stored password hash unreadable", zap.Int64("user_id", user.ID), zap.Error(err))
		return domain.User{}, false
	}
	return user, valid
}

func accessDenied(req *domain.AuthorizationRequest) *OAuthError {
	return redirectError("access_denied", "The authorization request has been denied", req.RedirectURI, req.State)
}
