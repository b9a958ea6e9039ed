package tlsroots

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoCertsFound is returned when a PEM source holds no certificates.
	ErrNoCertsFound = errors.New("tlsroots: no certificates found")
)

// LoadPool reads CA certificates from path. A directory contributes every
// .pem, .crt and .cer file it contains.
func LoadPool(path string) (*x509.CertPool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: stat %s: %w", path, err)
	}

	pool := x509.NewCertPool()
	if !info.IsDir() {
		if _, err := addFile(pool, path); err != nil {
			return nil, err
		}
		return pool, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: read dir %s: %w", path, err)
	}
	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pem", ".crt", ".cer":
			n, err := addFile(pool, filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			total += n
		}
	}
	if total == 0 {
		return nil, ErrNoCertsFound
	}
	return pool, nil
}

func addFile(pool *x509.CertPool, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("tlsroots: read %s: %w", path, err)
	}
	n, err := addPEM(pool, data)
	if err != nil {
		return 0, fmt.Errorf("tlsroots: %s: %w", path, err)
	}
	return n, nil
}

// addPEM adds every CERTIFICATE block in data and returns how many it added.
func addPEM(pool *x509.CertPool, data []byte) (int, error) {
	added := 0
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return added, fmt.Errorf("parse certificate: %w", err)
		}
		pool.AddCert(cert)
		added++
	}
	if added == 0 {
		return 0, ErrNoCertsFound
	}
	return added, nil
}
