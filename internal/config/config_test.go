package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFile_UsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", cfg.PageSize)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("base_url: https://otra-api.example.com/\ntimeout: 3s\npage_size: 25\nlog:\n  level: debug\n  format: json\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// la barra final se normaliza
	if cfg.BaseURL != "https://otra-api.example.com" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second || cfg.PageSize != 25 {
		t.Fatalf("unexpected timeout/page size: %v / %d", cfg.Timeout, cfg.PageSize)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PET_MANAGER_BASE_URL", "https://env-api.example.com")
	t.Setenv("PET_MANAGER_PAGE_SIZE", "5")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://env-api.example.com" {
		t.Fatalf("expected env base url, got %q", cfg.BaseURL)
	}
	if cfg.PageSize != 5 {
		t.Fatalf("expected env page size, got %d", cfg.PageSize)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Log.Level)
	}
}

func TestLoad_InvalidValues_Normalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("base_url: \"\"\npage_size: -3\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", cfg.PageSize)
	}
}

func TestLoad_BrokenYAML_IsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\t no es yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for broken yaml")
	}
}
