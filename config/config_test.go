package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Camera.ProjectionScale != 350 {
		t.Errorf("expected projection scale 350, got %f", cfg.Camera.ProjectionScale)
	}
	if cfg.Camera.ZoomMin != 1 || cfg.Camera.ZoomMax != 10 {
		t.Errorf("expected zoom clamp [1, 10], got [%f, %f]", cfg.Camera.ZoomMin, cfg.Camera.ZoomMax)
	}
	if cfg.Camera.NoiseStrength != 10 ||
		cfg.Camera.TranslationShakeStrength != 15 ||
		cfg.Camera.RotationShakeStrength != 2.5 {
		t.Errorf("unexpected default shake tuning: %+v", cfg.Camera)
	}
	if cfg.Depth.Scale != 0.0001 {
		t.Errorf("expected depth scale 0.0001, got %f", cfg.Depth.Scale)
	}
	if cfg.Physics.GravityX != 0 || cfg.Physics.GravityY != 0 {
		t.Errorf("expected zero gravity default, got (%f, %f)", cfg.Physics.GravityX, cfg.Physics.GravityY)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("camera:\n  noise_strength: 25\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Camera.NoiseStrength != 25 {
		t.Errorf("expected overridden noise strength 25, got %f", cfg.Camera.NoiseStrength)
	}
	// Fields absent from the override keep their defaults.
	if cfg.Camera.TranslationShakeStrength != 15 {
		t.Errorf("expected default translation strength 15, got %f", cfg.Camera.TranslationShakeStrength)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Camera.NoiseStrength = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Camera.NoiseStrength != 42 {
		t.Errorf("expected noise strength 42 after round trip, got %f", loaded.Camera.NoiseStrength)
	}
	if loaded.Camera.ProjectionScale != cfg.Camera.ProjectionScale {
		t.Errorf("expected projection scale to survive the round trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
