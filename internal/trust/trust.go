// Package trust builds HTTP clients that trust the system roots plus an
// optional operator-supplied certificate.
package trust

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// systemCertPool is replaced in tests.
var systemCertPool = x509.SystemCertPool

// CertPool returns the system pool with the base64-encoded PEM certificate
// appended. An empty certificate returns the system pool unchanged.
func CertPool(encodedPEM string) (*x509.CertPool, error) {
	pool, err := systemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if encodedPEM == "" {
		return pool, nil
	}

	pemBytes, err := base64.StdEncoding.DecodeString(encodedPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to decode certificate: %w", err)
	}
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, fmt.Errorf("certificate contains no valid PEM blocks")
	}
	return pool, nil
}

// NewHTTPClient returns a client whose TLS roots come from CertPool.
func NewHTTPClient(encodedPEM string, timeout time.Duration) (*http.Client, error) {
	pool, err := CertPool(encodedPEM)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
