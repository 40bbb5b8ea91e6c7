package service

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
)

var clientIDPattern = regexp.MustCompile(`^\d+$`)

// ParseAuthorizeRequest validates raw /authorize parameters. On failure the
// returned request holds whatever fields were extracted, so callers can still
// address the client's redirect_uri and echo state.
func ParseAuthorizeRequest(params url.Values) (domain.AuthorizationRequest, error) {
	req := domain.AuthorizationRequest{
		ClientID:     params.Get("client_id"),
		RedirectURI:  params.Get("redirect_uri"),
		Scope:        params.Get("scope"),
		State:        optionalParam(params, "state"),
		ResponseType: optionalParam(params, "response_type"),
	}

	if !params.Has("client_id") || !params.Has("redirect_uri") || !params.Has("scope") {
		return req, oauth.ErrMissingParameter
	}
	if !isAbsoluteURL(req.RedirectURI) {
		return req, oauth.ErrInvalidRedirectURI
	}
	if !clientIDPattern.MatchString(req.ClientID) {
		return req, oauth.ErrInvalidClient
	}
	if strings.TrimSpace(req.Scope) == "" {
		return req, oauth.ErrMissingScope
	}
	if req.ResponseType != nil && *req.ResponseType != domain.ResponseTypeCode {
		return req, oauth.ErrUnsupportedResponseType
	}
	return req, nil
}

func optionalParam(params url.Values, key string) *string {
	if !params.Has(key) {
		return nil
	}
	v := params.Get(key)
	return &v
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
