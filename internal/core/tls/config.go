// Package tls builds the client TLS settings used to reach the history API.
package tls

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// Config holds client certificate, CA and verification settings.
type Config struct {
	CertFile           string `yaml:"cert_file,omitempty"`
	KeyFile            string `yaml:"key_file,omitempty"`
	CAFile             string `yaml:"ca_file,omitempty"`
	ServerName         string `yaml:"server_name,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty"`
}

// ErrIncompleteKeyPair is returned when only one of cert_file/key_file is set.
var ErrIncompleteKeyPair = errors.New("cert_file and key_file must be set together")

// Build creates a *tls.Config. It returns nil when nothing is configured so
// the transport keeps Go's defaults.
func (c *Config) Build() (*tls.Config, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return nil, ErrIncompleteKeyPair
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         c.ServerName,
		InsecureSkipVerify: c.InsecureSkipVerify,
	}

	if c.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	if c.CAFile != "" {
		caCert, err := os.ReadFile(c.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates found in %s", c.CAFile)
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

// IsEmpty reports whether no TLS settings are configured.
func (c *Config) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.CertFile == "" && c.KeyFile == "" && c.CAFile == "" &&
		c.ServerName == "" && !c.InsecureSkipVerify
}
