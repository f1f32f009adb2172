package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Population.Capacity != 50 {
		t.Errorf("capacity = %d, want 50", cfg.Population.Capacity)
	}
	if cfg.Population.LifetimeMs != 15000 {
		t.Errorf("lifetime = %v, want 15000", cfg.Population.LifetimeMs)
	}
	if cfg.Population.SpawnIntervalMs != 250 {
		t.Errorf("spawn interval = %v, want 250", cfg.Population.SpawnIntervalMs)
	}
	if cfg.Creature.MinBodies != 4 || cfg.Creature.MaxBodies != 11 {
		t.Errorf("body count range = [%d, %d], want [4, 11]", cfg.Creature.MinBodies, cfg.Creature.MaxBodies)
	}
	if cfg.Physics.DTMs != 16 {
		t.Errorf("dt = %v, want 16", cfg.Physics.DTMs)
	}
}

func TestLoadComputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Derived.DT32 != 16 {
		t.Errorf("DT32 = %v, want 16", cfg.Derived.DT32)
	}
	// 250ms trickle at 16ms steps
	if cfg.Derived.TicksPerTrickle != 15 {
		t.Errorf("TicksPerTrickle = %d, want 15", cfg.Derived.TicksPerTrickle)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "population:\n  capacity: 8\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Population.Capacity != 8 {
		t.Errorf("capacity = %d, want 8 (overridden)", cfg.Population.Capacity)
	}
	// Untouched fields keep their defaults.
	if cfg.Population.LifetimeMs != 15000 {
		t.Errorf("lifetime = %v, want default 15000", cfg.Population.LifetimeMs)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		override string
	}{
		{"negative dt", "physics:\n  dt_ms: -1\n"},
		{"zero capacity", "population:\n  capacity: 0\n"},
		{"extension below one", "muscle:\n  ring:\n    min_extension: 0.5\n"},
		{"zero bucket", "telemetry:\n  histogram_bucket: 0\n"},
		{"inverted body range", "creature:\n  min_bodies: 9\n  max_bodies: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.override), 0644); err != nil {
				t.Fatalf("writing override: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if back.Population.Capacity != cfg.Population.Capacity {
		t.Errorf("capacity after round trip = %d, want %d", back.Population.Capacity, cfg.Population.Capacity)
	}
}
