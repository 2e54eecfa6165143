package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/topdown/config"
	"github.com/pthm-cable/topdown/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	watchConfig := flag.Bool("watch-config", false, "Reload config on file change")
	outputDir := flag.String("output-dir", "", "Output directory for CSV camera traces")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		OutputDir: *outputDir,
		LogStats:  *logStats,
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Topdown Camera Demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	g.SetupDemoScene()

	// Live tuning of shake parameters while the demo runs. Reloads
	// are drained on this goroutine, between frames; the settings
	// singleton is never written from the watcher.
	var watcher *config.Watcher
	if *watchConfig && *configPath != "" {
		watcher, err = config.Watch(*configPath)
		if err != nil {
			slog.Error("failed to watch config", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	for !rl.WindowShouldClose() {
		if watcher != nil {
			select {
			case c := <-watcher.Updates():
				config.Apply(c)
				g.SetNoiseStrength(float32(c.Camera.NoiseStrength))
				g.SetTranslationShakeStrength(float32(c.Camera.TranslationShakeStrength))
				g.SetRotationShakeStrength(float32(c.Camera.RotationShakeStrength))
			default:
			}
		}

		g.HandleInput()
		g.Step(game.DT)
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
