package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"unload inside load radius", func(c *Config) { c.World.UnloadRadius = c.World.LoadRadius }},
		{"zero generator budget", func(c *Config) { c.Budget.GeneratorFrameMs = 0 }},
		{"negative batch budget", func(c *Config) { c.Budget.MaxProcessingTimeMs = -1 }},
		{"zero target fps", func(c *Config) { c.Budget.TargetFPS = 0 }},
		{"hysteresis at 100%", func(c *Config) { c.Lod.HysteresisPct = 1 }},
		{"negative hysteresis", func(c *Config) { c.Lod.HysteresisPct = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	body := `
[world]
seed = 99
load_radius = 400.0
unload_radius = 700.0

[lod]
hysteresis_pct = 0.1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.World.Seed != 99 {
		t.Fatalf("seed = %d, want 99", cfg.World.Seed)
	}
	if cfg.World.LoadRadius != 400 || cfg.World.UnloadRadius != 700 {
		t.Fatalf("radii = %.0f/%.0f, want 400/700", cfg.World.LoadRadius, cfg.World.UnloadRadius)
	}
	// sections absent from the file keep their defaults
	def := Defaults()
	if cfg.Budget.TransformBatchSize != def.Budget.TransformBatchSize {
		t.Fatalf("batch size = %d, want default %d", cfg.Budget.TransformBatchSize, def.Budget.TransformBatchSize)
	}
	if cfg.Lod.HysteresisPct != 0.1 {
		t.Fatalf("hysteresis = %v, want 0.1", cfg.Lod.HysteresisPct)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	body := `
[world]
load_radius = 500.0
unload_radius = 300.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("inverted radii accepted")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
