package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultSuite       = "core"
	DefaultTrials      = 5
	DefaultWarmup      = 1
	DefaultParallelism = 1

	DefaultHTTPAddr     = "127.0.0.1:5090"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Minute
	DefaultRateRPS      = 5
	DefaultRateBurst    = 10

	DefaultGCInterval = 10 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultDataDir returns ~/.kernbench/data, or "" when no home directory
// is available.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kernbench", "data")
}

// DefaultConfigPath returns ~/.kernbench/kernbench.yaml, or "" when no home
// directory is available.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kernbench", "kernbench.yaml")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Run: RunSection{
			Suite:       DefaultSuite,
			Trials:      DefaultTrials,
			Warmup:      DefaultWarmup,
			Parallelism: DefaultParallelism,
		},
		Storage: StorageSection{
			DataDir:    DefaultDataDir(),
			GCInterval: DefaultGCInterval,
		},
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:         DefaultHTTPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
			},
			RateLimit: RateLimitConfig{
				RPS:   DefaultRateRPS,
				Burst: DefaultRateBurst,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
