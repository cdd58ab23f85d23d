package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTower(DefaultYAML())
	if err != nil {
		t.Fatalf("parseTower(embedded) failed: %v", err)
	}
	if cfg != DefaultTowerConfig() {
		t.Errorf("embedded YAML and DefaultTowerConfig differ:\n%+v\n%+v", cfg, DefaultTowerConfig())
	}
}

func TestLoadTowerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("run:\n  tiers: 5\nscore:\n  base_per_tier: 200\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}
	if cfg.Run.Tiers != 5 {
		t.Errorf("Run.Tiers = %d, expected 5", cfg.Run.Tiers)
	}
	if cfg.Score.BasePerTier != 200 {
		t.Errorf("Score.BasePerTier = %d, expected 200", cfg.Score.BasePerTier)
	}
	// Keys not in the file keep their defaults
	if cfg.Risk.Dangerous != 2.0 {
		t.Errorf("Risk.Dangerous = %f, expected default 2.0", cfg.Risk.Dangerous)
	}
}

func TestLoadTowerErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "run: [unclosed"},
		{"zero tiers", "run:\n  tiers: 0\n"},
		{"negative multiplier", "risk:\n  safe: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTower(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadTower(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}
}
