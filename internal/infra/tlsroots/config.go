package tlsroots

import (
	"crypto/tls"

	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// ServerConfig returns a TLS configuration serving certFile/keyFile through
// a Reloader. When clientCA is set, clients must present a certificate
// signed by it. The caller owns the returned Reloader and must Stop it.
func ServerConfig(certFile, keyFile, clientCA string, l logger.Logger) (*tls.Config, *Reloader, error) {
	r, err := NewReloader(certFile, keyFile, WithLogger(l))
	if err != nil {
		return nil, nil, err
	}

	cfg := &tls.Config{
		GetCertificate: r.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}

	if clientCA != "" {
		pool, err := LoadPool(clientCA)
		if err != nil {
			return nil, nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return cfg, r, nil
}
