package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codegrant")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "codegrant", cfg.CachePrefix)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 10*time.Minute, cfg.AuthCodeTTL)
	require.Equal(t, 3*time.Second, cfg.StoreTimeout)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codegrant")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadAdminPair(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codegrant")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadTrimsCachePrefix(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codegrant")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CACHE_PREFIX", "oauth:")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "oauth", cfg.CachePrefix)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/codegrant")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.Equal(t, 1.0, cfg.TraceSampleRatio)
}
