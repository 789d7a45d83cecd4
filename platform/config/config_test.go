package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/offers")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")
	t.Setenv("AUTOSAVE_DEBOUNCE", "5s")
	t.Setenv("DRAFT_RETENTION_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetAutoSaveDebounce() != 5*time.Second {
		t.Fatalf("expected 5s debounce, got %s", cfg.GetAutoSaveDebounce())
	}
	if cfg.GetDraftRetention() != 30*24*time.Hour {
		t.Fatalf("expected 30 day retention, got %s", cfg.GetDraftRetention())
	}
	if cfg.GetEditorIdleTTL() != 30*time.Minute {
		t.Fatalf("expected 30m editor idle ttl, got %s", cfg.GetEditorIdleTTL())
	}
	if cfg.IsMinIOEnabled() {
		t.Fatal("expected MinIO disabled without endpoint")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/offers")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origin with credentials")
	}
}

func TestSplitCSVTrimsEmpty(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split result %#v", got)
	}
}
