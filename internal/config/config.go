package config

import "time"

// Config is the root configuration.
type Config struct {
	Run     RunSection     `koanf:"run"`
	Storage StorageSection `koanf:"storage"`
	Server  ServerSection  `koanf:"server"`
	Log     LogSection     `koanf:"log"`
}

// RunSection holds the defaults applied to run requests.
type RunSection struct {
	Suite       string        `koanf:"suite"`
	Trials      int           `koanf:"trials"`
	Warmup      int           `koanf:"warmup"`
	Parallelism int           `koanf:"parallelism"`
	Pause       time.Duration `koanf:"pause"`
}

// StorageSection configures run history.
type StorageSection struct {
	// DataDir holds the Badger files. Empty keeps history in memory.
	DataDir string `koanf:"data_dir"`

	// NoHistory disables saving runs.
	NoHistory bool `koanf:"no_history"`

	GCInterval time.Duration `koanf:"gc_interval"`
	SyncWrites bool          `koanf:"sync_writes"`
}

// ServerSection configures serve mode.
type ServerSection struct {
	HTTP      HTTPConfig      `koanf:"http"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`
	// ClientCAFile enables mutual TLS; it may name a file or a directory.
	ClientCAFile string        `koanf:"client_ca_file"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// TrustedProxies lists IPs or CIDR blocks whose forwarding headers
	// name the real client. Empty trusts only the socket peer.
	TrustedProxies []string `koanf:"trusted_proxies"`
}

// RateLimitConfig bounds requests per client IP. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
