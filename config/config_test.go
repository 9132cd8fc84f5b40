package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("MAPS_API_KEY", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("CALL_COUNTDOWN", "")
	t.Setenv("TRANSLATION_LOCALES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("expected fallback base url, got %q", cfg.APIBaseURL)
	}
	if cfg.MapsAPIKey != defaultMapsAPIKey {
		t.Fatalf("expected fallback maps key, got %q", cfg.MapsAPIKey)
	}
	if cfg.SessionStore != "memory" {
		t.Fatalf("expected memory store, got %q", cfg.SessionStore)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.APITimeout)
	}
	if cfg.CallCountdown != 30 {
		t.Fatalf("expected countdown 30, got %d", cfg.CallCountdown)
	}
	if len(cfg.TranslationLocales) != 2 || cfg.TranslationLocales[0] != "en" {
		t.Fatalf("expected default locales, got %v", cfg.TranslationLocales)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:4000/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CALLS_WEBHOOK_SECRET", "s3cret")
	t.Setenv("TRANSLATION_LOCALES", "en, ar")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:4000" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.APITimeout)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.CallsWebhookSecret != "s3cret" {
		t.Fatalf("expected webhook secret, got %q", cfg.CallsWebhookSecret)
	}
	if len(cfg.TranslationLocales) != 2 || cfg.TranslationLocales[1] != "ar" {
		t.Fatalf("expected trimmed locales, got %v", cfg.TranslationLocales)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad timeout":      {"API_TIMEOUT", "soon"},
		"zero countdown":   {"CALL_COUNTDOWN", "0"},
		"bad cookie flag":  {"COOKIE_SECURE", "maybe"},
		"no locales":       {"TRANSLATION_LOCALES", " , "},
		"unknown store":    {"SESSION_STORE", "sqlite"},
		"postgres missing": {"SESSION_STORE", "postgres"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("POSTGRES_URL", "")
			t.Setenv(kv[0], kv[1])
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
