package config

import (
	"testing"
	"time"
)

func TestLoad_valid(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.devsu.example" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v, want 3s", cfg.API.Timeout)
	}
	if cfg.API.AuthToken != "test-token" {
		t.Errorf("API.AuthToken = %q", cfg.API.AuthToken)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("Observability.LogLevel = %q, want debug", cfg.Observability.LogLevel)
	}
	if cfg.Observability.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
}

func TestLoad_missing_file(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	if err == nil {
		t.Fatal("Load() with missing file should return error")
	}
}

func TestLoad_missing_base_url(t *testing.T) {
	_, err := Load("testdata/missing_base_url.yaml")
	if err == nil {
		t.Fatal("Load() without api.base_url should return error")
	}
}

func TestLoad_env_overrides(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://override.example")
	t.Setenv("CATALOG_API_TIMEOUT", "750ms")
	t.Setenv("CATALOG_LOG_LEVEL", "warn")

	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://override.example" {
		t.Errorf("API.BaseURL = %q, want override", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 750*time.Millisecond {
		t.Errorf("API.Timeout = %v, want 750ms", cfg.API.Timeout)
	}
	if cfg.Observability.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.Observability.LogLevel)
	}
}

func TestLoad_env_only(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://env-only.example")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.API.BaseURL != "https://env-only.example" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want default 10s", cfg.API.Timeout)
	}
}

func TestValidate_rejects_bad_url(t *testing.T) {
	cfg := Defaults()
	cfg.API.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with malformed base URL should return error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("default API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("default LogLevel = %q, want info", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Error("default Metrics.Enabled = false, want true")
	}
}
