package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var fastParams = Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHashAndVerify(t *testing.T) {
	encoded, err := HashWith("correct horse", fastParams)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := Verify("correct horse", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify("battery staple", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashSaltsDiffer(t *testing.T) {
	a, err := HashWith("same", fastParams)
	require.NoError(t, err)
	b, err := HashWith("same", fastParams)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		_, err := Verify("x", encoded)
		require.ErrorIs(t, err, ErrInvalidHash, encoded)
	}
}
