package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("READCIRCLE_API_URL", "https://api.readcircle.example/api")
	t.Setenv("READCIRCLE_TIMEOUT", "30s")
	t.Setenv("READCIRCLE_RPS", "2.5")
	t.Setenv("READCIRCLE_BURST", "5")
	t.Setenv("READCIRCLE_LOG_FORMAT", "json")
	t.Setenv("READCIRCLE_CACHE_MAX_AGE", "45s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.readcircle.example/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2.5, cfg.RPS)
	assert.Equal(t, 5, cfg.Burst)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 45*time.Second, cfg.CacheMaxAge)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Setenv("READCIRCLE_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate_RejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.APIURL = "::not-a-url"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())
}
