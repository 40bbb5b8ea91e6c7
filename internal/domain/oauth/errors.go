package oauth

import "errors"

var (
	// ErrMissingParameter signals that client_id, redirect_uri or scope was not supplied.
	ErrMissingParameter = errors.New("oauth: missing required parameter")
	// ErrInvalidRedirectURI indicates redirect_uri is not an absolute URL.
	ErrInvalidRedirectURI = errors.New("oauth: invalid redirect uri")
	// ErrInvalidClient indicates client_id is not a decimal identifier.
	ErrInvalidClient = errors.New("oauth: invalid client id")
	// ErrMissingScope indicates scope was present but blank.
	ErrMissingScope = errors.New("oauth: empty scope")
	// ErrUnsupportedResponseType indicates a response_type other than code.
	ErrUnsupportedResponseType = errors.New("oauth: unsupported response type")
	// ErrCacheCorrupted signals a cache entry that exists but cannot be decoded.
	ErrCacheCorrupted = errors.New("oauth: cache entry corrupted")
	// ErrSigningKeyMissing indicates no token signing key is configured.
	ErrSigningKeyMissing = errors.New("oauth: signing key not configured")
	// ErrLoginFailed covers login submissions that cannot be tied to a pending request.
	ErrLoginFailed = errors.New("oauth: login request invalid")
	// ErrUserNotFound signals that no user matches the supplied email.
	ErrUserNotFound = errors.New("oauth: user not found")
	// ErrClientNotFound signals that no client matches the supplied id.
	ErrClientNotFound = errors.New("oauth: client not found")
)
