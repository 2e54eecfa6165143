// Package main runs the camera pipeline headless with a scripted
// trauma schedule and writes a per-frame CSV trace, for tuning shake
// parameters offline.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pthm-cable/topdown/components"
	"github.com/pthm-cable/topdown/config"
	"github.com/pthm-cable/topdown/game"
)

// burst is one scheduled trauma injection.
type burst struct {
	tick   int
	trauma float32
}

// parseBursts parses a "tick:trauma,tick:trauma" schedule.
func parseBursts(s string) ([]burst, error) {
	if s == "" {
		return nil, nil
	}
	var out []burst
	for _, part := range strings.Split(s, ",") {
		tickStr, traumaStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, strconv.ErrSyntax
		}
		tick, err := strconv.Atoi(strings.TrimSpace(tickStr))
		if err != nil {
			return nil, err
		}
		trauma, err := strconv.ParseFloat(strings.TrimSpace(traumaStr), 32)
		if err != nil {
			return nil, err
		}
		out = append(out, burst{tick: tick, trauma: float32(trauma)})
	}
	return out, nil
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output", "trace-out", "Output directory for CSV traces")
	frames := flag.Int("frames", 600, "Number of frames to simulate")
	schedule := flag.String("bursts", "30:0.5,180:0.8,360:0.3", "Trauma schedule as tick:trauma pairs")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	bursts, err := parseBursts(*schedule)
	if err != nil {
		slog.Error("invalid burst schedule", "schedule", *schedule, "error", err)
		os.Exit(1)
	}

	g, err := game.NewGameWithOptions(game.Options{OutputDir: *outputDir})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	// Snapshot the effective config next to the traces it produced.
	if err := config.Cfg().WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	g.SpawnCamera(0, 0)
	target := g.SpawnStatic(0, 0, components.Sprite{})
	g.AttachDepth(target, 0, components.DepthStatic)

	slog.Info("starting trace run",
		"frames", *frames,
		"bursts", len(bursts),
		"output", *outputDir,
	)

	next := 0
	for tick := 0; tick < *frames; tick++ {
		for next < len(bursts) && bursts[next].tick == tick {
			g.AddTrauma(bursts[next].trauma)
			slog.Info("trauma burst", "tick", tick, "trauma", bursts[next].trauma)
			next++
		}
		g.Step(game.DT)
	}

	if err := g.Close(); err != nil {
		slog.Error("failed to flush trace", "error", err)
		os.Exit(1)
	}

	slog.Info("trace run complete", "ticks", g.Tick(), "output", *outputDir)
}
