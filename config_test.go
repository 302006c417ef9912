package embedctl

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Service != "embedding-service" {
		t.Errorf("Service = %q", cfg.Service)
	}
	if cfg.HealthURL != "http://localhost:5000/health" {
		t.Errorf("HealthURL = %q", cfg.HealthURL)
	}
	if cfg.LogLines != 20 {
		t.Errorf("LogLines = %d", cfg.LogLines)
	}
	if cfg.SettleDelay != 3*time.Second {
		t.Errorf("SettleDelay = %v", cfg.SettleDelay)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "embedctl.yaml")
		data := "service: corpus-embedder\nlog_lines: 100\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Service != "corpus-embedder" {
			t.Errorf("Service = %q", cfg.Service)
		}
		if cfg.LogLines != 100 {
			t.Errorf("LogLines = %d", cfg.LogLines)
		}
		// Untouched fields keep their defaults
		if cfg.HealthURL != DefaultHealthURL {
			t.Errorf("HealthURL = %q", cfg.HealthURL)
		}
	})

	t.Run("environment wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "embedctl.yaml")
		if err := os.WriteFile(path, []byte("service: from-file\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		t.Setenv(EnvService, "from-env")
		t.Setenv(EnvHealthURL, "http://localhost:9999/health")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Service != "from-env" {
			t.Errorf("Service = %q", cfg.Service)
		}
		if cfg.HealthURL != "http://localhost:9999/health" {
			t.Errorf("HealthURL = %q", cfg.HealthURL)
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("service: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for malformed config")
		}
	})
}
