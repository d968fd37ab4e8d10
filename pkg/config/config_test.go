package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Fatalf("unexpected default base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.API.RequestTimeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected default session TTL %v", cfg.Session.TTL)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvAPIBaseURL, "https://api.bookhaven.io")
	t.Setenv(EnvSessionTTL, "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.API.BaseURL != "https://api.bookhaven.io" {
		t.Fatalf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.Session.TTL != time.Hour {
		t.Fatalf("unexpected session TTL %v", cfg.Session.TTL)
	}
}
