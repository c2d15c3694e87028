package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	want := "/custom/config/kbtip/config.yml"
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	ResetCache()
	defer ResetCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PublicAPI != DefaultPublicAPI {
		t.Errorf("PublicAPI = %q, want default", cfg.PublicAPI)
	}
	if cfg.EUtilsRate != DefaultEUtilsRate {
		t.Errorf("EUtilsRate = %v, want %v", cfg.EUtilsRate, DefaultEUtilsRate)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	ResetCache()
	defer ResetCache()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeConfig(t, dir, `public_api: http://file.example/api/
http_timeout: 5s
levels:
  "1": "<b>one</b>"
`)
	t.Setenv("KBTIP_LEGACY_API", "http://env.example/legacy/")
	t.Setenv("KBTIP_CORS_ORIGINS", "http://a.example,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PublicAPI != "http://file.example/api/" {
		t.Errorf("PublicAPI = %q", cfg.PublicAPI)
	}
	if cfg.LegacyAPI != "http://env.example/legacy/" {
		t.Errorf("LegacyAPI = %q", cfg.LegacyAPI)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.Levels["1"] != "<b>one</b>" {
		t.Errorf("Levels = %v", cfg.Levels)
	}
	// Unset fields keep defaults.
	if cfg.EUtilsAPI != DefaultEUtilsAPI {
		t.Errorf("EUtilsAPI = %q, want default", cfg.EUtilsAPI)
	}
}

func TestLoad_Cached(t *testing.T) {
	ResetCache()
	defer ResetCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	first, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Load() should return the cached config")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	ResetCache()
	defer ResetCache()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	writeConfig(t, dir, "public_api: [unterminated")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.PublicAPI = "/api" }, wantErr: true},
		{name: "empty eutils", mutate: func(c *Config) { c.EUtilsAPI = "" }, wantErr: true},
		{name: "zero rate", mutate: func(c *Config) { c.EUtilsRate = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got := ExpandTilde("~/levels.yml"); got != filepath.Join(home, "levels.yml") {
		t.Errorf("ExpandTilde() = %q", got)
	}
	if got := ExpandTilde("/abs/levels.yml"); got != "/abs/levels.yml" {
		t.Errorf("ExpandTilde() = %q", got)
	}
}
