package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("PORT", "")

	cfg := Load()

	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.JWTTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_CollectsParseErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("BCRYPT_COST", "high")
	t.Setenv("DB_DRIVER", "oracle")

	cfg := Load()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_TTL")
	require.Contains(t, err.Error(), "BCRYPT_COST")
	require.Contains(t, err.Error(), "oracle")
}

func TestRevocationEnabled(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "")
	require.False(t, Load().RevocationEnabled())

	t.Setenv("REDIS_ADDR", "localhost:6379")
	require.True(t, Load().RevocationEnabled())
}
