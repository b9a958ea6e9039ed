package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

// Verify validates the configuration and creates the data directory.
func Verify(cfg *Config) error {
	if err := verifyRun(&cfg.Run); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyRun(cfg *RunSection) error {
	if _, err := domain.ParseSuite(cfg.Suite); err != nil {
		return fmt.Errorf("run.suite: %w", err)
	}
	if cfg.Trials < 1 || cfg.Trials > service.MaxTrials {
		return fmt.Errorf("run.trials must be in 1..%d", service.MaxTrials)
	}
	if cfg.Warmup < 0 || cfg.Warmup > service.MaxWarmup {
		return fmt.Errorf("run.warmup must be in 0..%d", service.MaxWarmup)
	}
	if cfg.Parallelism < 1 || cfg.Parallelism > service.MaxParallelism {
		return fmt.Errorf("run.parallelism must be in 1..%d", service.MaxParallelism)
	}
	if cfg.Pause < 0 || cfg.Pause > service.MaxPause {
		return fmt.Errorf("run.pause must be in 0..%s", service.MaxPause)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.GCInterval < 0 {
		return errors.New("storage.gc_interval must not be negative")
	}
	if cfg.DataDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr: %w", err)
	}
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and tls_key_file must be set together")
	}
	if cfg.HTTP.ClientCAFile != "" && cfg.HTTP.TLSCertFile == "" {
		return errors.New("server.http.client_ca_file requires tls_cert_file and tls_key_file")
	}
	for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile, cfg.HTTP.ClientCAFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("server.http: %w", err)
		}
	}
	for _, p := range cfg.HTTP.TrustedProxies {
		if net.ParseIP(p) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(p); err != nil {
			return fmt.Errorf("server.http.trusted_proxies: %q is not an IP or CIDR", p)
		}
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		return errors.New("server.rate_limit.burst must be at least 1")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
