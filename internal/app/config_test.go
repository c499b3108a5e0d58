package app

import (
	"testing"
	"time"
)

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected MetricsAddr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty PostgresDSN by default, got %s", cfg.PostgresDSN)
	}
	if !cfg.PostgresAutoMigrate {
		t.Error("expected PostgresAutoMigrate to be true")
	}
	if cfg.SyncInterval != 30*time.Second {
		t.Errorf("expected SyncInterval 30s, got %s", cfg.SyncInterval)
	}
	if cfg.SyncBatchSize <= 0 {
		t.Error("expected SyncBatchSize to be > 0")
	}
}
