package domain

import "strings"

// ResponseTypeCode is the only response_type the server issues.
const ResponseTypeCode = "code"

// AuthorizationRequest is a validated /authorize request. State and
// ResponseType are pointers so that an absent parameter survives a round
// trip through the pending store distinctly from an empty one.
type AuthorizationRequest struct {
	ClientID     string  `json:"client_id"`
	RedirectURI  string  `json:"redirect_uri"`
	Scope        string  `json:"scope"`
	State        *string `json:"state,omitempty"`
	ResponseType *string `json:"response_type,omitempty"`
}

// Scopes splits the space-delimited scope string.
func (r AuthorizationRequest) Scopes() []string {
	return strings.Fields(r.Scope)
}

// EffectiveResponseType returns the requested response_type, defaulting to "code".
func (r AuthorizationRequest) EffectiveResponseType() string {
	if r.ResponseType == nil {
		return ResponseTypeCode
	}
	return *r.ResponseType
}

// CodeGrant is what an authorization code resolves to when redeemed.
type CodeGrant struct {
	UserID string
	Scope  string
}

// CodeLookup is the result of redeeming an authorization code. Either half
// may be missing when one of the two backing keys expired or was never written.
type CodeLookup struct {
	UserID *string
	Scope  *string
}
