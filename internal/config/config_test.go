package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := `
paths:
  database: /tmp/test.db
  replays: /tmp/replays
game:
  tick_rate: 30
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Paths.Database != "/tmp/test.db" {
		t.Errorf("Database = %q, want /tmp/test.db", cfg.Paths.Database)
	}
	if cfg.Game.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.Game.TickRate)
	}
	// Omitted fields fall back to defaults.
	if cfg.Game.MinThrows != DefaultConfig().Game.MinThrows {
		t.Errorf("MinThrows = %d, want default %d", cfg.Game.MinThrows, DefaultConfig().Game.MinThrows)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded with a missing explicit config path")
	}
}

func TestEmbeddedDefaultParses(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.TickRate <= 0 {
		t.Errorf("TickRate = %d, want positive", cfg.Game.TickRate)
	}
	if cfg.Paths.Database == "" || cfg.Paths.Replays == "" {
		t.Errorf("data paths not populated: %+v", cfg.Paths)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y"); got != filepath.Join(home, "x/y") {
		t.Errorf("ExpandHome(~/x/y) = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(/abs/path) = %q", got)
	}
}
