package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DBPath != "dane.db" {
		t.Errorf("expected default db path 'dane.db', got %q", cfg.DBPath)
	}
	if cfg.Workers != 0 {
		t.Errorf("expected default workers 0, got %d", cfg.Workers)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected default seed 42, got %d", cfg.Seed)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pqsort.yaml")

	content := `
db_path: ${PQSORT_TEST_DIR}/bench.bolt
workers: 6
verbose: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("PQSORT_TEST_DIR", tmpDir)

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.DBPath != filepath.Join(tmpDir, "bench.bolt") {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.Workers != 6 {
		t.Errorf("workers = %d, want 6", cfg.Workers)
	}
	if !cfg.Verbose {
		t.Error("expected verbose to be true")
	}
	// unset keys keep their defaults
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PQSORT_WORKERS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Workers)
	}
	if cfg.DBPath != "dane.db" {
		t.Errorf("db_path = %q, want default", cfg.DBPath)
	}
}
