package jwt

import (
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"

	"github.com/smallbiznis/codegrant/internal/domain/oauth"
)

// Generator is responsible for signing and validating JWTs.
type Generator struct {
	key       SigningKey
	accessTTL time.Duration
	now       func() time.Time
}

// NewGenerator constructs a JWT generator.
func NewGenerator(key SigningKey, accessTTL time.Duration) *Generator {
	return &Generator{key: key, accessTTL: accessTTL, now: time.Now}
}

// WithClock replaces the time source used for expiry and validation.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// AccessTokenClaims represent the JWT payload for access tokens.
type AccessTokenClaims struct {
	Subject  string             `json:"sub"`
	ClientID string             `json:"client_id"`
	Scopes   string             `json:"scopes"`
	Expiry   *gojwt.NumericDate `json:"exp"`
}

// TTL returns the lifetime applied to issued tokens.
func (g *Generator) TTL() time.Duration {
	return g.accessTTL
}

// GenerateAccessToken produces a signed JWT for userID acting through clientID.
func (g *Generator) GenerateAccessToken(userID, clientID, scopes string) (string, error) {
	if !g.key.Configured() {
		return "", oauth.ErrSigningKeyMissing
	}

	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: g.key.Algorithm, Key: g.key.Secret},
		(&gojose.SignerOptions{}).WithType("JWT").WithHeader("kid", g.key.KID),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	claims := AccessTokenClaims{
		Subject:  userID,
		ClientID: clientID,
		Scopes:   scopes,
		Expiry:   gojwt.NewNumericDate(g.now().UTC().Add(g.accessTTL)),
	}

	token, err := gojwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}
	return token, nil
}

// ValidateAccessToken verifies the signature and expiry and returns the claims.
func (g *Generator) ValidateAccessToken(token string) (*AccessTokenClaims, error) {
	if !g.key.Configured() {
		return nil, oauth.ErrSigningKeyMissing
	}

	parsed, err := gojwt.ParseSigned(token, []gojose.SignatureAlgorithm{g.key.Algorithm})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	var std gojwt.Claims
	var custom AccessTokenClaims
	if err := parsed.Claims(g.key.Secret, &std, &custom); err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if err := std.ValidateWithLeeway(gojwt.Expected{Time: g.now()}, 0); err != nil {
		return nil, fmt.Errorf("validate claims: %w", err)
	}
	return &custom, nil
}
