package config

import (
	"os"
	"path/filepath"
	"testing"

	"stock-pulse/apperror"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Search.Engine != "bleve" {
		t.Errorf("Expected bleve, got %s", cfg.Search.Engine)
	}
	if cfg.Ticker.Schedule != "@every 5s" {
		t.Errorf("Expected @every 5s, got %s", cfg.Ticker.Schedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	content := `server:
  addr: ":9000"
site:
  base_url: "https://example.in/"
chart:
  seed: 42
search:
  engine: memory
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCKPULSE_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Expected env override :9999, got %s", cfg.Server.Addr)
	}
	if cfg.Site.BaseURL != "https://example.in" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if cfg.Chart.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Chart.Seed)
	}
	if cfg.Search.Engine != "memory" {
		t.Errorf("Expected memory engine, got %s", cfg.Search.Engine)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !apperror.IsCode(err, apperror.ErrConfigLoad) {
		t.Errorf("Expected CONFIG_LOAD_ERROR, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"relative base url", func(c *Config) { c.Site.BaseURL = "example.in" }},
		{"empty output dir", func(c *Config) { c.Build.OutputDir = "" }},
		{"unknown engine", func(c *Config) { c.Search.Engine = "solr" }},
		{"empty schedule", func(c *Config) { c.Ticker.Schedule = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected a validation error")
			}
		})
	}
}
