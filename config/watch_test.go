package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
}

func awaitUpdate(t *testing.T, w *Watcher) *Config {
	t.Helper()
	select {
	case cfg := <-w.Updates():
		return cfg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return nil
	}
}

func TestWatchDeliversReloadWithoutApplying(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, path, "camera:\n  noise_strength: 10\n")

	MustInit(path)
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	writeConfigFile(t, path, "camera:\n  noise_strength: 25\n")

	cfg := awaitUpdate(t, w)
	if cfg.Camera.NoiseStrength != 25 {
		t.Fatalf("expected reloaded noise strength 25, got %v", cfg.Camera.NoiseStrength)
	}

	// The watcher only delivers; nothing changes until the frame
	// loop applies the reload on its own goroutine.
	if got := Cfg().Camera.NoiseStrength; got != 10 {
		t.Errorf("global config changed before Apply, noise strength %v", got)
	}

	Apply(cfg)
	if got := Cfg().Camera.NoiseStrength; got != 25 {
		t.Errorf("expected applied noise strength 25, got %v", got)
	}
}

func TestWatchSurvivesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfigFile(t, path, "camera:\n  noise_strength: 10\n")

	MustInit(path)
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("starting watcher: %v", err)
	}
	defer w.Close()

	writeConfigFile(t, path, "camera: [broken\n")
	time.Sleep(150 * time.Millisecond) // past the debounce window
	writeConfigFile(t, path, "camera:\n  noise_strength: 30\n")

	// The broken write is logged and dropped; the next valid write
	// still comes through.
	cfg := awaitUpdate(t, w)
	if cfg.Camera.NoiseStrength != 30 {
		t.Fatalf("expected noise strength 30 after recovery, got %v", cfg.Camera.NoiseStrength)
	}
}
