package domain

import "slices"

// Client is a registered OAuth client application.
//
// The JSON shape is also the cached representation, so field names must stay
// stable across releases.
type Client struct {
	ID            uint32   `json:"id"`
	Name          string   `json:"name"`
	AllowedScopes []string `json:"allowed_scopes"`
	RedirectURIs  []string `json:"redirect_uris"`
	Secret        string   `json:"secret"`
}

// HasRedirectURI reports whether uri is registered for the client. Matching is exact.
func (c Client) HasRedirectURI(uri string) bool {
	return slices.Contains(c.RedirectURIs, uri)
}

// AllowsScopes reports whether every requested scope is allowed for the client.
func (c Client) AllowsScopes(scopes []string) bool {
	for _, s := range scopes {
		if !slices.Contains(c.AllowedScopes, s) {
			return false
		}
	}
	return true
}
