package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "ENV", "OBJECT_STORE", "MAX_UPLOAD_BYTES", "IMPORT_RATE_PER_SEC", "IMPORT_RATE_BURST", "CORS_ALLOW_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "dev" || cfg.ObjectStoreType != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ImportRatePerSec != 0.5 || cfg.ImportRateBurst != 5 {
		t.Fatalf("unexpected rate defaults: %v/%d", cfg.ImportRatePerSec, cfg.ImportRateBurst)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("IMPORT_RATE_BURST", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://x")

	cfg := Load()
	if cfg.Env != "production" || cfg.ObjectStoreType != "s3" {
		t.Fatalf("unexpected env/store: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowOrigin, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Fatalf("expected 2048, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ImportRateBurst != 5 {
		t.Fatalf("invalid burst should fall back to default, got %d", cfg.ImportRateBurst)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PARSER_RULES_FILE=rules.yaml\nPORT=9999\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("PARSER_RULES_FILE", "")
	os.Unsetenv("PARSER_RULES_FILE")

	cfg := Load()
	if cfg.ParserRulesFile != "rules.yaml" {
		t.Fatalf("expected rules file from .env, got %q", cfg.ParserRulesFile)
	}
	if cfg.Port != "7000" {
		t.Fatalf("process env should win over .env, got %q", cfg.Port)
	}
}
