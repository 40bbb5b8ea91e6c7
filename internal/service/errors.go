package service

import (
	"fmt"
	"net/http"
	"net/url"
)

// OAuthError standardizes OAuth compliant errors. When RedirectURI is set the
// error is delivered to the client by redirect, otherwise it is rendered.
type OAuthError struct {
	Code        string
	Description string
	Status      int
	RedirectURI string
	State       *string
}

func (e *OAuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Redirects reports whether the error is delivered to the client's redirect_uri.
func (e *OAuthError) Redirects() bool {
	return e.RedirectURI != ""
}

// RedirectURL returns redirect_uri with error, error_description and state
// appended to any query it already carries.
func (e *OAuthError) RedirectURL() string {
	params := url.Values{}
	params.Set("error", e.Code)
	params.Set("error_description", e.Description)
	if e.State != nil {
		params.Set("state", *e.State)
	}
	return appendQuery(e.RedirectURI, params)
}

func newOAuthError(code, desc string, status int) *OAuthError {
	return &OAuthError{Code: code, Description: desc, Status: status}
}

func redirectError(code, desc, redirectURI string, state *string) *OAuthError {
	return &OAuthError{Code: code, Description: desc, Status: http.StatusFound, RedirectURI: redirectURI, State: state}
}

func appendQuery(rawURL string, params url.Values) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL + "?" + params.Encode()
	}
	if u.RawQuery == "" {
		u.RawQuery = params.Encode()
	} else {
		u.RawQuery += "&" + params.Encode()
	}
	return u.String()
}
