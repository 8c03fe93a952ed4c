package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, DefaultDownloadDir, cfg.DownloadDir)
	assert.Zero(t, cfg.RequestTimeout)
	assert.Equal(t, DefaultStateFile, filepath.Base(cfg.StateFile))
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: http://analysis.internal:9000\nrequest_timeout: 45s\ndownload_dir: /tmp/exports\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://analysis.internal:9000", cfg.APIBaseURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/exports", cfg.DownloadDir)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("MEETLENS_API_BASE_URL", "http://override:8000")
	t.Setenv("MEETLENS_LOG_JSON", "true")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:8000", cfg.APIBaseURL)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "/tmp/exports", cfg.DownloadDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unterminated"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.APIBaseURL = "" }},
		{"bad url", func(c *Config) { c.APIBaseURL = "not a url" }},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
		{"no download dir", func(c *Config) { c.DownloadDir = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
