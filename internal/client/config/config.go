package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/cryptox"
)

// Salt sources for key derivation.
const (
	// SaltSourceAccount uses the random per-account salt the server stores.
	SaltSourceAccount = "account"
	// SaltSourceEmail derives the salt from the normalized email. Kept for
	// vaults created before per-account salts existed.
	SaltSourceEmail = "email"
)

// Config holds runtime settings for the zkvault CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: upper bound for a single server call.
//   - SaltSource: SaltSourceAccount or SaltSourceEmail.
//   - PasswordLength: length of passwords made by "generate".
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	SaltSource         string
	PasswordLength     int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.SaltSource = SaltSourceAccount
	c.PasswordLength = cryptox.DefaultPasswordLength
}

// Validate rejects settings the CLI cannot work with.
func (c *Config) Validate() error {
	switch c.SaltSource {
	case SaltSourceAccount, SaltSourceEmail:
	default:
		return fmt.Errorf("unknown salt source %q", c.SaltSource)
	}
	if c.PasswordLength <= 0 {
		return fmt.Errorf("password length must be positive, got %d", c.PasswordLength)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
