package config

import (
	"os"
	"path/filepath"
	"time"
)

// Client captures everything the shopping client needs to reach the
// backend and persist its credential.
type Client struct {
	// APIBaseURL is the catalog/identity service root.
	APIBaseURL string
	// TokenFile is the durable credential slot. Absence of the file is the
	// canonical anonymous signal at startup.
	TokenFile string
	// DebugAddr, when non-empty, enables the localhost health/metrics listener.
	DebugAddr string
	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration
}

// FromEnv builds a Client config from environment variables so main stays lean.
func FromEnv() Client {
	base := os.Getenv("TROLLEY_API_URL")
	if base == "" {
		base = "http://127.0.0.1:8000"
	}

	tokenFile := os.Getenv("TROLLEY_TOKEN_FILE")
	if tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		tokenFile = filepath.Join(home, ".trolley", "token")
	}

	timeout := 15 * time.Second
	if v := os.Getenv("TROLLEY_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	return Client{
		APIBaseURL:  base,
		TokenFile:   tokenFile,
		DebugAddr:   os.Getenv("TROLLEY_DEBUG_ADDR"),
		HTTPTimeout: timeout,
	}
}
