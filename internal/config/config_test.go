package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Storage.InMemory {
		t.Error("tracker storage should default to in-memory")
	}
	if cfg.Build.Command != "npm run build" || cfg.Build.OutputDir != "dist" {
		t.Errorf("unexpected build defaults: %+v", cfg.Build)
	}
	if cfg.Deploy.ProjectPrefix != "maya-web" {
		t.Errorf("unexpected project prefix %q", cfg.Deploy.ProjectPrefix)
	}
	if cfg.Deploy.MaxParallel != 0 || cfg.Tracker.Retention != 0 {
		t.Error("fan-out and retention should be unbounded by default")
	}
}

func TestNew_LocalYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := "deploy:\n  max_parallel: 4\ntracker:\n  retention: 1h\nproviders:\n  endpoints:\n    vercel: http://localhost:9999\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Deploy.MaxParallel != 4 {
		t.Errorf("expected max_parallel 4, got %d", cfg.Deploy.MaxParallel)
	}
	if cfg.Tracker.Retention != time.Hour {
		t.Errorf("expected retention 1h, got %s", cfg.Tracker.Retention)
	}
	if cfg.Providers.Endpoints["vercel"] != "http://localhost:9999" {
		t.Errorf("endpoint override lost: %v", cfg.Providers.Endpoints)
	}
	if cfg.Build.Command != "npm run build" {
		t.Errorf("defaults should survive a partial file, got %q", cfg.Build.Command)
	}
}
