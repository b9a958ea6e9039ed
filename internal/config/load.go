package config

import (
	"fmt"
	"os"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/infra/confloader"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// Load builds the configuration from defaults, the YAML file at path,
// KERNBENCH_ environment variables and overrides, in that order, then
// verifies it. An empty path falls back to DefaultConfigPath when that
// file exists.
func Load(path string, overrides map[string]any) (*Config, error) {
	if path == "" {
		if p := DefaultConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}

	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// RunDefaults converts the run section for the runner.
func (c *Config) RunDefaults() service.RunDefaults {
	suite, err := domain.ParseSuite(c.Run.Suite)
	if err != nil {
		suite = domain.SuiteCore
	}
	return service.RunDefaults{
		Suite:       suite,
		Trials:      c.Run.Trials,
		Warmup:      c.Run.Warmup,
		Parallelism: c.Run.Parallelism,
		Pause:       c.Run.Pause,
	}
}

// Watch reloads the file at path whenever it changes and passes every
// configuration that verifies to apply. Invalid edits are logged and
// ignored. The caller stops the returned watcher.
func Watch(path string, overrides map[string]any, l logger.Logger, apply func(*Config)) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(l))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(changed string) {
		cfg, err := Load(changed, overrides)
		if err != nil {
			l.Warn("configuration reload rejected", "path", changed, "error", err)
			return
		}
		l.Info("configuration reloaded", "path", changed)
		apply(cfg)
	})
	w.StartAsync()
	return w, nil
}
