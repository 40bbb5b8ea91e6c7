package jwt

import (
	"crypto/sha256"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
)

// SigningKey is the process-wide HMAC key used for access tokens.
type SigningKey struct {
	KID       string
	Secret    []byte
	Algorithm jose.SignatureAlgorithm
}

// NewSigningKey derives a stable key id from the secret so that tokens issued
// by different replicas sharing a secret carry the same kid header.
func NewSigningKey(secret string) SigningKey {
	if secret == "" {
		return SigningKey{Algorithm: jose.HS256}
	}
	digest := sha256.Sum256([]byte(secret))
	return SigningKey{
		KID:       uuid.NewSHA1(uuid.NameSpaceOID, digest[:]).String(),
		Secret:    []byte(secret),
		Algorithm: jose.HS256,
	}
}

// Configured reports whether a secret is present.
func (k SigningKey) Configured() bool {
	return len(k.Secret) > 0
}
