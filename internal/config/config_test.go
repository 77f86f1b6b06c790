package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, ":8080", cfg.Server.Addr())
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, defaultBaseURL, cfg.Site.BaseURL)
	require.Empty(t, cfg.Site.ContentDir)
	require.False(t, cfg.Site.Dev)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Empty(t, cfg.Cache.RedisAddr)
	require.Equal(t, 300, cfg.RateLimit.PerMinute)
	require.Equal(t, 8, cfg.Export.Workers)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SITE_PORT=9000\nSITE_DEV=true\nSITE_BASE_URL=https://staging.example.com/\n"), 0o600))

	cfg, err := Load(context.Background(),
		WithoutSystemEnv(),
		WithEnvFile(envFile),
		WithEnvMap(map[string]string{"SITE_PORT": "9100", "SITE_CACHE_TTL": "30s"}),
	)
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Server.Port)
	require.True(t, cfg.Site.Dev)
	require.Equal(t, "https://staging.example.com", cfg.Site.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadFallsBackToPORT(t *testing.T) {
	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""),
		WithEnvMap(map[string]string{"PORT": "7070"}))
	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Server.Port)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	require.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{
		"SITE_PORT":           "http",
		"SITE_BASE_URL":       "example.com",
		"SITE_CACHE_TTL":      "soon",
		"SITE_EXPORT_WORKERS": "0",
	}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{"SITE_CACHE_TTL", "SITE_PORT", "SITE_BASE_URL", "SITE_EXPORT_WORKERS"}, verr.Fields())
}
