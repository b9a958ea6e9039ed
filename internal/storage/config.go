package storage

import "time"

// Config configures a BadgerStore.
type Config struct {
	// Dir is the data directory. Empty selects in-memory mode.
	Dir string

	// GCInterval is the interval between value log GC runs.
	// Default: 10m
	GCInterval time.Duration

	// GCThreshold is the discard ratio at which a value log file is rewritten.
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 16MB
	CacheSize int64

	// SyncWrites fsyncs after every write.
	// Default: false
	SyncWrites bool
}

// DefaultConfig returns the default configuration for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		GCInterval:  10 * time.Minute,
		GCThreshold: 0.5,
		CacheSize:   16 << 20,
	}
}

// InMemory reports whether the store keeps no files.
func (c Config) InMemory() bool {
	return c.Dir == ""
}
