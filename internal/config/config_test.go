package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendDriverREST, cfg.Backend.Driver)
	assert.ElementsMatch(t, []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"}, cfg.Backend.Missing())
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, time.Duration(0), cfg.QueryCache.StaleTime())
	assert.Equal(t, 5*time.Minute, cfg.QueryCache.GCTime())
	assert.True(t, cfg.QueryCache.SweepEnabled)
	assert.Equal(t, "pt-BR", cfg.Chart.Locale)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.Backend.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("QUERY_CACHE_STALE_SECONDS", "30")
	t.Setenv("DATABASE_URL", "db:5432/insights")
	t.Setenv("DATABASE_USER", "reader")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://painel.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://abc.supabase.co", cfg.Backend.URL)
	assert.Equal(t, "anon-key", cfg.Backend.AnonKey)
	assert.Empty(t, cfg.Backend.Missing())
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, 30*time.Second, cfg.QueryCache.StaleTime())
	assert.Equal(t, "postgres://reader:secret@db:5432/insights", cfg.Database.DSN)
	assert.Equal(t, "jwt-secret", cfg.Backend.JWTSecret)
	assert.Equal(t, []string{"https://painel.example.com"}, cfg.Server.AllowedOrigins)
}

func TestNewConfig_InvalidDriver(t *testing.T) {
	t.Setenv("BACKEND_DRIVER", "graphql")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestBackend_MissingOnlyKey(t *testing.T) {
	b := Backend{URL: "https://abc.supabase.co"}
	assert.Equal(t, []string{"SUPABASE_ANON_KEY"}, b.Missing())
}
