package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chatview.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.toml")} {
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data = "/srv/chats.json"
port = 8080
max_upload = "5 MiB"
watch = true
redact = ["secrets"]
allowlist = ['@example\.com$']
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Data:      "/srv/chats.json",
		Port:      8080,
		MaxUpload: "5 MiB",
		Watch:     true,
		Redact:    []string{"secrets"},
		Allowlist: []string{`@example\.com$`},
	}, cfg)

	n, err := cfg.MaxUploadBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(5*1024*1024), n)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFilePartial(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `watch = true`))
	require.NoError(t, err)
	assert.Equal(t, DefaultData, cfg.Data)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMaxUpload, cfg.MaxUpload)
	assert.True(t, cfg.Watch)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"malformed", `port = `, "decode config"},
		{"unknown key", "prot = 80\n", "unknown keys: prot"},
		{"bad port", "port = 70000\n", "invalid port"},
		{"bad size", "max_upload = \"lots\"\n", "invalid max upload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestMaxUploadBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"50MB", 50_000_000},
		{"1KiB", 1024},
		{"1048576", 1048576},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := Config{MaxUpload: tt.in}.MaxUploadBytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	_, err := Config{MaxUpload: "0"}.MaxUploadBytes()
	assert.Error(t, err)
}
