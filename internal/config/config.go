// Package config handles kbtip configuration: a YAML file under the XDG
// config directory, optionally overlaid by KBTIP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "kbtip"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	DefaultPublicAPI   = "https://www.oncokb.org/api/v1/"
	DefaultLegacyAPI   = "https://www.oncokb.org/legacy-api/"
	DefaultStudiesAPI  = "http://www.cbioportal.org/api-legacy/studies"
	DefaultEUtilsAPI   = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"
	DefaultListenAddr  = ":8080"
	DefaultHTTPTimeout = 20 * time.Second

	// DefaultEUtilsRate is NCBI's documented limit for clients without an API key.
	DefaultEUtilsRate = 3.0
)

// Config is the effective runtime configuration.
type Config struct {
	PublicAPI  string `yaml:"public_api,omitempty" env:"PUBLIC_API"`
	LegacyAPI  string `yaml:"legacy_api,omitempty" env:"LEGACY_API"`
	StudiesAPI string `yaml:"studies_api,omitempty" env:"STUDIES_API"`
	EUtilsAPI  string `yaml:"eutils_api,omitempty" env:"EUTILS_API"`

	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty" env:"HTTP_TIMEOUT"`
	EUtilsRate  float64       `yaml:"eutils_rate,omitempty" env:"EUTILS_RATE"`

	ListenAddr  string   `yaml:"listen_addr,omitempty" env:"LISTEN_ADDR"`
	CORSOrigins []string `yaml:"cors_origins,omitempty" env:"CORS_ORIGINS" envSeparator:","`
	LogLevel    string   `yaml:"log_level,omitempty" env:"LOG_LEVEL"`

	// LevelsFile points at a YAML table of level code -> HTML description.
	LevelsFile string `yaml:"levels_file,omitempty" env:"LEVELS_FILE"`
	// Levels holds inline descriptions; entries override LevelsFile.
	Levels map[string]string `yaml:"levels,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PublicAPI:   DefaultPublicAPI,
		LegacyAPI:   DefaultLegacyAPI,
		StudiesAPI:  DefaultStudiesAPI,
		EUtilsAPI:   DefaultEUtilsAPI,
		HTTPTimeout: DefaultHTTPTimeout,
		EUtilsRate:  DefaultEUtilsRate,
		ListenAddr:  DefaultListenAddr,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
	}
}

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/kbtip/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load returns the effective configuration: defaults, then the config file
// (if present), then .env and KBTIP_* environment variables.
// The result is cached for the life of the process.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "KBTIP_"}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// LoadFile reads a config file over the defaults. A missing file (or empty
// path) yields the defaults, not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.LevelsFile != "" {
		cfg.LevelsFile = ExpandTilde(cfg.LevelsFile)
	}

	return &cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks base URLs and numeric limits.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"public_api":  c.PublicAPI,
		"legacy_api":  c.LegacyAPI,
		"studies_api": c.StudiesAPI,
		"eutils_api":  c.EUtilsAPI,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalidConfig, name, raw)
		}
	}
	if c.EUtilsRate <= 0 {
		return fmt.Errorf("%w: eutils_rate must be positive", ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
