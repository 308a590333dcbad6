package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	for _, k := range []string{"FIREBASE_CREDENTIALS_PATH", "API_HOST", "API_PORT", "CORS_ORIGINS", "ENVIRONMENT", "STORE_BACKEND", "DEV_JWT_SECRET", "REDIS_HOST"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "", cfg.Firebase.CredentialsPath)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "development", cfg.Server.Environment)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	require.Equal(t, BackendFirestore, cfg.Store.Backend)
	require.Equal(t, "items", cfg.Store.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
	require.Equal(t, "", cfg.RedisAddr())
	require.False(t, cfg.DevTokensEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/secrets/sa.json")
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:3001,,")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/secrets/sa.json", cfg.Firebase.CredentialsPath)
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.AllowedOrigins())
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, "cache:6379", cfg.RedisAddr())
	require.True(t, cfg.DevTokensEnabled())

	red := cfg.Redacted()
	require.Equal(t, "<redacted>", red.DevAuth.Secret)
	require.Equal(t, "dev-secret", cfg.DevAuth.Secret, "Redacted must not mutate the original")
}

func TestDevTokensDisabledInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.False(t, cfg.DevTokensEnabled())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "70000")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("API_PORT", "8000")
	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsOriginWithoutScheme(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("API_PORT", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, localhost:3001")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "localhost:3001")

	t.Setenv("CORS_ORIGINS", "*, https://app.example.com")
	_, err = LoadConfig()
	require.NoError(t, err)
}
