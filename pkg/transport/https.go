// Package transport implements the HTTPS transport for EBICS requests
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// TLS version constants
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

const (
	// ContentType is the media type of EBICS requests
	ContentType = "text/xml; charset=UTF-8"
	// DefaultUserAgent identifies the client when no user agent is configured
	DefaultUserAgent = "go-ebics/1.0"
	// DefaultMaxResponseSize bounds a response body. A 1 MiB segment is
	// base64 encoded inside the XML, so 8 MiB leaves ample headroom.
	DefaultMaxResponseSize = 8 << 20
)

// Recommended TLS 1.2 cipher suites
var RecommendedTLS12CipherSuites = []uint16{
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
}

var (
	// ErrEmptyResponse is returned when the bank answers 2xx without a body.
	ErrEmptyResponse = errors.New("empty response body")
	// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
	ErrResponseTooLarge = errors.New("response body too large")
)

// HTTPSConfig contains HTTPS client configuration
type HTTPSConfig struct {
	MinTLSVersion uint16
	MaxTLSVersion uint16
	CipherSuites  []uint16
	// Certificates are presented to banks that require TLS client
	// authentication.
	Certificates    []tls.Certificate
	RootCAs         *x509.CertPool
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	UserAgent       string
	MaxResponseSize int64
	Logger          *slog.Logger
}

// DefaultHTTPSConfig returns a default HTTPS configuration
func DefaultHTTPSConfig() *HTTPSConfig {
	return &HTTPSConfig{
		MinTLSVersion:   TLS12,
		MaxTLSVersion:   TLS13,
		CipherSuites:    RecommendedTLS12CipherSuites,
		Timeout:         30 * time.Second,
		IdleConnTimeout: 90 * time.Second,
		UserAgent:       DefaultUserAgent,
		MaxResponseSize: DefaultMaxResponseSize,
	}
}

// StatusError is returned when the bank answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, string(e.Body))
}

// HTTPSClient posts EBICS documents to a bank endpoint. It keeps one
// connection pool for all banks and is safe for concurrent use.
type HTTPSClient struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    *slog.Logger
}

// NewHTTPSClient creates a new HTTPS client
func NewHTTPSClient(config *HTTPSConfig) *HTTPSClient {
	if config == nil {
		config = DefaultHTTPSConfig()
	}

	c := &HTTPSClient{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion:   config.MinTLSVersion,
					MaxVersion:   config.MaxTLSVersion,
					CipherSuites: config.CipherSuites,
					Certificates: config.Certificates,
					RootCAs:      config.RootCAs,
				},
				IdleConnTimeout:     config.IdleConnTimeout,
				MaxIdleConnsPerHost: 4,
			},
			Timeout: config.Timeout,
		},
		userAgent: config.UserAgent,
		maxBody:   config.MaxResponseSize,
		logger:    config.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.maxBody <= 0 {
		c.maxBody = DefaultMaxResponseSize
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "transport")
	return c
}

// Send posts an EBICS request and returns the response body
func (c *HTTPSClient) Send(ctx context.Context, endpoint string, request []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(request))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("bank responded",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_bytes", len(request),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	// one extra byte tells an exact fit from an overflow
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}
	return body, nil
}
