package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TROLLEY_API_URL", "")
	t.Setenv("TROLLEY_TOKEN_FILE", "")
	t.Setenv("TROLLEY_DEBUG_ADDR", "")
	t.Setenv("TROLLEY_HTTP_TIMEOUT", "")

	cfg := FromEnv()
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Contains(t, cfg.TokenFile, ".trolley")
	assert.Empty(t, cfg.DebugAddr)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TROLLEY_API_URL", "https://shop.example.com")
	t.Setenv("TROLLEY_TOKEN_FILE", "/tmp/tok")
	t.Setenv("TROLLEY_DEBUG_ADDR", "127.0.0.1:9191")
	t.Setenv("TROLLEY_HTTP_TIMEOUT", "3s")

	cfg := FromEnv()
	assert.Equal(t, "https://shop.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
	assert.Equal(t, "127.0.0.1:9191", cfg.DebugAddr)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestFromEnvRejectsBadTimeout(t *testing.T) {
	t.Setenv("TROLLEY_HTTP_TIMEOUT", "soon")
	assert.Equal(t, 15*time.Second, FromEnv().HTTPTimeout)
}
