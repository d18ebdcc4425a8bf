// Package config handles configuration loading for the ebicsctl command.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows secrets such as
// the MongoDB URI or the key passphrase variable to be injected at runtime.
//
// # Configuration Sections
//
//   - storage: where banks, partners and users are kept (file, bolt, mongodb)
//   - logging: level and handler format
//   - trace: directory receiving every exchanged document
//   - https: timeouts, client certificates and extra root CAs
//   - protocol: segment size, response verification, country code
//   - product: client name and language reported to the bank
//   - secret: environment variable holding the key passphrase
//
// # Example Configuration
//
//	storage:
//	  type: bolt
//	  path: /var/lib/ebics/ebics.db
//
//	logging:
//	  level: info
//	  format: json
//
//	https:
//	  timeout: 60s
//	  rootCAFile: /etc/ssl/bank-ca.pem
//
//	protocol:
//	  segmentSize: 1048576
//	  verifyResponses: true
//
//	secret:
//	  env: EBICS_PASSPHRASE
//
// See [Load] for loading configuration from a file.
package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirosfoundation/go-ebics/pkg/ebics"
	"github.com/sirosfoundation/go-ebics/pkg/transfer"
	"github.com/sirosfoundation/go-ebics/pkg/transport"
)

// Config is the root configuration structure
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Trace    TraceConfig    `yaml:"trace"`
	HTTPS    HTTPSConfig    `yaml:"https"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Product  ProductConfig  `yaml:"product"`
	Secret   SecretConfig   `yaml:"secret"`
}

// StorageConfig selects the record store
type StorageConfig struct {
	// Type is one of "file", "bolt" or "mongodb"
	Type string `yaml:"type"`
	// Path is the directory (file) or database file (bolt)
	Path    string        `yaml:"path"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// MongoDBConfig holds MongoDB connection settings
type MongoDBConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// TraceConfig holds document tracing settings
type TraceConfig struct {
	// Dir receives one file per exchanged document. Empty disables tracing.
	Dir string `yaml:"dir"`
	// Log writes documents to the debug log instead of files
	Log bool `yaml:"log"`
}

// HTTPSConfig holds bank connection settings
type HTTPSConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"userAgent"`
	RootCAFile string        `yaml:"rootCAFile"`
	CertFile   string        `yaml:"certFile"`
	KeyFile    string        `yaml:"keyFile"`
}

// ProtocolConfig holds EBICS protocol settings
type ProtocolConfig struct {
	Version         string `yaml:"version"`
	SegmentSize     int    `yaml:"segmentSize"`
	VerifyResponses *bool  `yaml:"verifyResponses"`
	CountryCode     string `yaml:"countryCode"`
}

// ProductConfig identifies the client software
type ProductConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

// SecretConfig names the environment variable holding the passphrase that
// seals private keys
type SecretConfig struct {
	Env string `yaml:"env"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration, expands environment variables, applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = "file"
	}
	if c.Storage.Path == "" {
		switch c.Storage.Type {
		case "bolt":
			c.Storage.Path = "ebics.db"
		default:
			c.Storage.Path = "ebics-data"
		}
	}
	if c.Storage.MongoDB.Database == "" {
		c.Storage.MongoDB.Database = "ebics"
	}
	if c.Storage.MongoDB.Collection == "" {
		c.Storage.MongoDB.Collection = "records"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.HTTPS.Timeout == 0 {
		c.HTTPS.Timeout = 30 * time.Second
	}
	if c.Protocol.Version == "" {
		c.Protocol.Version = string(ebics.H004)
	}
	if c.Protocol.SegmentSize == 0 {
		c.Protocol.SegmentSize = transfer.DefaultSegmentSize
	}
	if c.Protocol.VerifyResponses == nil {
		verify := true
		c.Protocol.VerifyResponses = &verify
	}
	if c.Product.Name == "" {
		c.Product.Name = "go-ebics"
	}
	if c.Product.Language == "" {
		c.Product.Language = "en"
	}
	if c.Secret.Env == "" {
		c.Secret.Env = "EBICS_PASSPHRASE"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case "file", "bolt":
	case "mongodb":
		if c.Storage.MongoDB.URI == "" {
			return fmt.Errorf("storage.mongodb.uri is required when type is 'mongodb'")
		}
	default:
		return fmt.Errorf("storage.type must be 'file', 'bolt', or 'mongodb', got '%s'", c.Storage.Type)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got '%s'", c.Logging.Format)
	}

	if (c.HTTPS.CertFile == "") != (c.HTTPS.KeyFile == "") {
		return fmt.Errorf("https.certFile and https.keyFile must be set together")
	}
	if c.HTTPS.Timeout < 0 {
		return fmt.Errorf("https.timeout must not be negative")
	}

	if c.Protocol.Version != string(ebics.H004) {
		return fmt.Errorf("protocol.version %q is not supported", c.Protocol.Version)
	}
	if c.Protocol.SegmentSize < 0 || c.Protocol.SegmentSize > transfer.DefaultSegmentSize {
		return fmt.Errorf("protocol.segmentSize must be between 1 and %d", transfer.DefaultSegmentSize)
	}
	return nil
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Logging.Level))); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// EBICS returns the protocol configuration for sessions.
func (c *Config) EBICS() ebics.Config {
	cfg := ebics.DefaultConfig()
	cfg.Version = ebics.ProtocolVersion(c.Protocol.Version)
	cfg.SegmentSize = c.Protocol.SegmentSize
	cfg.VerifyResponses = *c.Protocol.VerifyResponses
	cfg.CountryCode = c.Protocol.CountryCode
	return cfg
}

// Transport builds the HTTPS client settings, loading certificates from
// disk.
func (c *Config) Transport() (*transport.HTTPSConfig, error) {
	cfg := transport.DefaultHTTPSConfig()
	cfg.Timeout = c.HTTPS.Timeout
	if c.HTTPS.UserAgent != "" {
		cfg.UserAgent = c.HTTPS.UserAgent
	}
	if c.HTTPS.RootCAFile != "" {
		pem, err := os.ReadFile(c.HTTPS.RootCAFile)
		if err != nil {
			return nil, fmt.Errorf("reading root CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", c.HTTPS.RootCAFile)
		}
		cfg.RootCAs = pool
	}
	if c.HTTPS.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(c.HTTPS.CertFile, c.HTTPS.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}
