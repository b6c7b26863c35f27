package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, SaltSourceAccount, c.SaltSource)
	assert.Equal(t, 16, c.PasswordLength)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	c := Config{SaltSource: SaltSourceEmail, PasswordLength: 8}
	assert.NoError(t, c.Validate())

	c.SaltSource = "random"
	assert.ErrorContains(t, c.Validate(), "salt source")

	c = Config{SaltSource: SaltSourceAccount}
	assert.ErrorContains(t, c.Validate(), "password length")
}
