// Package config defines the kernbench configuration.
//
//   - config.go: Config struct definition
//   - default.go: default values
//   - verify.go: validation
//   - sanitize.go: redaction for logging
//   - load.go: layered loading and file watching via confloader
//
// Configuration shapes the harness only. Kernel constants such as problem
// sizes and seeds are fixed and cannot be configured.
package config
