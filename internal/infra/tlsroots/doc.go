// Package tlsroots builds the TLS configuration for the HTTP API.
//
//   - pool.go: client CA loading for mutual TLS
//   - reloader.go: server certificate hot-reload via fsnotify
//   - config.go: tls.Config assembly
package tlsroots
