package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Sanitize returns a copy of cfg safe to log: the TLS key path is masked
// and the home directory is shortened to ~.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Server.HTTP.TLSKeyFile != "" {
		sanitized.Server.HTTP.TLSKeyFile = maskSecret(sanitized.Server.HTTP.TLSKeyFile)
	}
	sanitized.Storage.DataDir = shortenHome(sanitized.Storage.DataDir)
	return &sanitized
}

// maskSecret masks a value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func shortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join("~", rel)
}
