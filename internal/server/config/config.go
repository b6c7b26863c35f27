// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/server/auth"
)

// Config holds runtime settings for the zkvault server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: storage DSN; the scheme picks the backend
//     (postgres://, sqlite://, mongodb://, s3://bucket).
//   - SecretKey: HMAC secret for signing session JWTs (HS256). Also keys
//     the decoy salts returned for unknown emails.
//   - SessionTTL: lifetime of an issued session token.
//   - BcryptCost: work factor for password hashes, at least 10.
//   - LoginAttempts / LoginWindow: per-IP budget for Signup and Login.
//   - S3RootUser / S3RootPassword / S3Region / S3BaseEndpoint: object
//     storage settings, used only with an s3:// DSN.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDSN      string
	SecretKey        string
	SessionTTL       time.Duration
	BcryptCost       int
	LoginAttempts    int
	LoginWindow      time.Duration
	ConnectRetries   uint64
	LogLevel         string
	S3RootUser       string
	S3RootPassword   string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey is left empty on purpose; the server refuses to start
// without one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "sqlite://zkvault.db"
	c.SessionTTL = 60 * time.Minute
	c.BcryptCost = auth.DefaultBcryptCost
	c.LoginAttempts = 10
	c.LoginWindow = 15 * time.Minute
	c.ConnectRetries = 5
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Validate rejects settings the server cannot run safely with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must be set"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN must be set"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL))
	}
	if c.BcryptCost < auth.MinBcryptCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be at least %d, got %d", auth.MinBcryptCost, c.BcryptCost))
	}
	if c.LoginAttempts <= 0 || c.LoginWindow <= 0 {
		errs = append(errs, errors.New("login rate limit must allow at least one attempt per positive window"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
