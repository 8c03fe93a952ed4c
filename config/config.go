// Package config provides configuration management for meetlens.
// Values are resolved from a YAML file, then a .env file, then MEETLENS_*
// environment variables; command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"meetlens/utils"
)

// Default configuration values.
const (
	DefaultAPIBaseURL  = "http://127.0.0.1:8000"
	DefaultDownloadDir = "outputs"
	DefaultConfigDir   = ".meetlens"
	DefaultConfigFile  = "config.yaml"
	DefaultStateFile   = "state.yaml"
	DefaultLogFile     = "meetlens.log"
	DefaultLogLevel    = "info"
	EnvPrefix          = "MEETLENS"
)

// Config holds the client configuration.
type Config struct {
	// APIBaseURL is the analysis service root, without a trailing slash.
	APIBaseURL string `yaml:"api_base_url" envconfig:"API_BASE_URL" validate:"required,url"`

	// RequestTimeout bounds each HTTP call. Zero disables the timeout.
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" validate:"gte=0"`

	// DownloadDir receives JSON and PDF exports.
	DownloadDir string `yaml:"download_dir" envconfig:"DOWNLOAD_DIR" validate:"required"`

	// StateFile persists small client state such as the theme.
	StateFile string `yaml:"state_file" envconfig:"STATE_FILE" validate:"required"`

	// LogFile is where the interactive client writes its log.
	LogFile string `yaml:"log_file" envconfig:"LOG_FILE"`

	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	LogJSON  bool   `yaml:"log_json" envconfig:"LOG_JSON"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	dir := ConfigDir()
	return &Config{
		APIBaseURL:  DefaultAPIBaseURL,
		DownloadDir: DefaultDownloadDir,
		StateFile:   filepath.Join(dir, DefaultStateFile),
		LogFile:     filepath.Join(dir, DefaultLogFile),
		LogLevel:    DefaultLogLevel,
	}
}

// ConfigDir returns ~/.meetlens, or .meetlens when the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// DefaultConfigPath returns the path Load uses when none is given.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), DefaultConfigFile)
}

// Load reads the config file at path (DefaultConfigPath when empty), then
// applies .env and environment overrides. A missing config file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(utils.ExpandPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) resolvePaths() {
	c.DownloadDir = utils.ExpandPath(c.DownloadDir)
	c.StateFile = utils.ExpandPath(c.StateFile)
	c.LogFile = utils.ExpandPath(c.LogFile)
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
