package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "sqlite://vault.db", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "sqlite://vault.db"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://u:p@h/db?sslmode=disable", "-a", ":50051"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://u:p@h/db?sslmode=disable"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "dangling flag kept",
			args:    []string{"-t"},
			allowed: []string{"-t"},
			want:    []string{"-t"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-s", "account"},
			allowed: []string{"-c", "-s"},
			want:    []string{"-c", "-s", "account"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-l", "5", "-l", "7"},
			allowed: []string{"-l"},
			want:    []string{"-l", "5", "-l", "7"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/zk/short.json", ConfigPath([]string{"-c", "/etc/zk/short.json"}))
	assert.Equal(t, "/etc/zk/long.json", ConfigPath([]string{"-a", ":1", "-config", "/etc/zk/long.json"}))
	assert.Equal(t, "/etc/zk/eq.json", ConfigPath([]string{"--config=/etc/zk/eq.json"}))
	assert.Equal(t, "/2.json", ConfigPath([]string{"-c", "/1.json", "-config", "/2.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"zkvault", "-d", "sqlite://x.db", "-c", "server.json"}
	assert.Equal(t, "server.json", JsonConfigFlags())
}
