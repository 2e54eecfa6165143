// Package game assembles the ECS world, the camera pipeline, and the
// demo scene into a runnable game instance.
package game

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/camera"
	"github.com/pthm-cable/topdown/components"
	"github.com/pthm-cable/topdown/config"
	"github.com/pthm-cable/topdown/systems"
	"github.com/pthm-cable/topdown/telemetry"
)

// DT is the fixed simulation timestep in seconds.
const DT = 1.0 / 60.0

// Options configures optional game features.
type Options struct {
	// OutputDir enables CSV trace output when non-empty.
	OutputDir string

	// LogStats enables periodic perf logging via slog.
	LogStats bool
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World

	// Entity mappers
	camMapper *ecs.Map4[
		components.Transform,
		components.WorldTransform,
		components.Projection,
		components.MainCamera,
	]
	bodyMapper *ecs.Map4[
		components.Transform,
		components.WorldTransform,
		components.RigidBody,
		components.Sprite,
	]
	childMapper *ecs.Map4[
		components.Transform,
		components.WorldTransform,
		components.Parent,
		components.Sprite,
	]
	staticMapper *ecs.Map3[
		components.Transform,
		components.WorldTransform,
		components.Sprite,
	]

	// Individual component mappers for lookups
	transformMap *ecs.Map1[components.Transform]
	worldMap     *ecs.Map1[components.WorldTransform]
	depthMap     *ecs.Map1[components.Depth]
	pendingMap   *ecs.Map1[components.DepthPending]
	parentMap    *ecs.Map1[components.Parent]
	bodyMap      *ecs.Map1[components.RigidBody]
	projMap      *ecs.Map1[components.Projection]

	spriteFilter *ecs.Filter3[
		components.Transform,
		components.WorldTransform,
		components.Sprite,
	]
	camFilter *ecs.Filter3[
		components.Transform,
		components.Projection,
		components.MainCamera,
	]

	// Frame resources
	settings  *camera.Settings
	debug     *systems.DebugState
	zoomQueue *systems.ZoomQueue

	// Systems
	pipeline  *systems.Pipeline
	physics   *systems.PhysicsSystem
	targetSys *systems.TargetUpdateSystem
	registry  *systems.SystemRegistry

	// Telemetry
	perf  *telemetry.PerfCollector
	trace *telemetry.TraceRecorder

	logStats bool
	tick     int64

	// Demo state
	player ecs.Entity
}

// NewGameWithOptions creates a game instance from the loaded config.
// Config must be initialized first.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		camMapper: ecs.NewMap4[
			components.Transform,
			components.WorldTransform,
			components.Projection,
			components.MainCamera,
		](world),
		bodyMapper: ecs.NewMap4[
			components.Transform,
			components.WorldTransform,
			components.RigidBody,
			components.Sprite,
		](world),
		childMapper: ecs.NewMap4[
			components.Transform,
			components.WorldTransform,
			components.Parent,
			components.Sprite,
		](world),
		staticMapper: ecs.NewMap3[
			components.Transform,
			components.WorldTransform,
			components.Sprite,
		](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		worldMap:     ecs.NewMap1[components.WorldTransform](world),
		depthMap:     ecs.NewMap1[components.Depth](world),
		pendingMap:   ecs.NewMap1[components.DepthPending](world),
		parentMap:    ecs.NewMap1[components.Parent](world),
		bodyMap:      ecs.NewMap1[components.RigidBody](world),
		projMap:      ecs.NewMap1[components.Projection](world),
		spriteFilter: ecs.NewFilter3[
			components.Transform,
			components.WorldTransform,
			components.Sprite,
		](world),
		camFilter: ecs.NewFilter3[
			components.Transform,
			components.Projection,
			components.MainCamera,
		](world),
		debug:     &systems.DebugState{},
		zoomQueue: &systems.ZoomQueue{},
		logStats:  opts.LogStats,
	}

	g.settings = camera.NewSettings()
	g.settings.SetNoiseStrength(float32(cfg.Camera.NoiseStrength))
	g.settings.SetTranslationShakeStrength(float32(cfg.Camera.TranslationShakeStrength))
	g.settings.SetRotationShakeStrength(float32(cfg.Camera.RotationShakeStrength))

	g.physics = systems.NewPhysicsSystem(world,
		cfg.Physics.GravityX, cfg.Physics.GravityY,
		uint(cfg.Physics.Iterations))
	depth := systems.NewDepthSystem(world, float32(cfg.Depth.Scale))
	g.targetSys = &systems.TargetUpdateSystem{}
	cam := systems.NewCameraSystem(world)
	zoom := systems.NewZoomSystem(world,
		float32(cfg.Camera.ZoomMin), float32(cfg.Camera.ZoomMax))
	propagate := systems.NewPropagationSystem(world)

	pipeline, err := systems.NewPipeline(systems.DefaultStages(
		g.physics, depth, g.targetSys, cam, zoom, propagate))
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	g.pipeline = pipeline
	g.registry = systems.NewSystemRegistry()

	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.TraceWindow)
	g.pipeline.Observer = g.perf.RecordStage

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	trace, err := telemetry.NewTraceRecorder(outputDir, cfg.Telemetry.TraceWindow)
	if err != nil {
		return nil, fmt.Errorf("creating trace recorder: %w", err)
	}
	g.trace = trace

	return g, nil
}

// World exposes the ECS world for systems outside this package.
func (g *Game) World() *ecs.World {
	return g.world
}

// Space exposes the physics space for body construction.
func (g *Game) Space() *cp.Space {
	return g.physics.Space()
}

// Settings exposes the camera settings singleton.
func (g *Game) Settings() *camera.Settings {
	return g.settings
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int64 {
	return g.tick
}

// DebugActive reports whether debug mode is on.
func (g *Game) DebugActive() bool {
	return g.debug.Active
}

// ToggleDebug flips debug mode.
func (g *Game) ToggleDebug() {
	g.debug.Toggle()
}

// PushZoom queues a zoom step for the next frame. Zoom events only
// take effect while debug mode is active.
func (g *Game) PushZoom(delta int) {
	g.zoomQueue.Push(systems.ZoomEvent{Delta: delta})
}

// SetTargetUpdateFn installs the per-frame camera target hook. The
// hook runs after the physics writeback and before trauma decay.
func (g *Game) SetTargetUpdateFn(fn func(w *ecs.World, ctx *systems.Context)) {
	g.targetSys.Fn = fn
}

// AddTrauma adds screen shake trauma.
func (g *Game) AddTrauma(trauma float32) {
	g.settings.AddTrauma(trauma)
}

// AddTraumaWithThreshold adds trauma only above the given current
// level, so small hits do not stack into a permanent rumble.
func (g *Game) AddTraumaWithThreshold(trauma, threshold float32) {
	g.settings.AddTraumaWithThreshold(trauma, threshold)
}

// SetNoiseStrength updates how fast the shake noise moves with
// trauma.
func (g *Game) SetNoiseStrength(strength float32) {
	g.settings.SetNoiseStrength(strength)
}

// SetTranslationShakeStrength updates the shake translation scale.
func (g *Game) SetTranslationShakeStrength(strength float32) {
	g.settings.SetTranslationShakeStrength(strength)
}

// SetRotationShakeStrength updates the shake rotation scale.
func (g *Game) SetRotationShakeStrength(strength float32) {
	g.settings.SetRotationShakeStrength(strength)
}

// UpdateTarget sets the point the camera centers on.
func (g *Game) UpdateTarget(x, y float32) {
	g.settings.UpdateTarget(x, y)
}

// SetBound restricts the camera view to the given world rectangle.
func (g *Game) SetBound(b camera.Bounds) {
	g.settings.SetBound(b)
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float32) {
	g.perf.StartFrame()

	ctx := systems.Context{
		DT:         dt,
		Settings:   g.settings,
		Debug:      g.debug,
		ZoomEvents: g.zoomQueue,
	}
	g.pipeline.Step(g.world, &ctx)

	g.perf.EndFrame()
	g.tick++

	g.recordTrace(dt)

	if g.logStats && g.tick%120 == 0 {
		g.perf.Stats().LogStats()
	}
}

// recordTrace samples the camera state into the trace recorder.
func (g *Game) recordTrace(dt float32) {
	if g.trace == nil {
		return
	}

	camX, camY, zoom, ok := g.CameraState()
	if !ok {
		return
	}

	offX, offY, rotDeg := g.settings.Offsets()
	s := telemetry.FrameSample{
		Tick:        g.tick,
		DT:          dt,
		Trauma:      g.settings.Trauma(),
		OffsetX:     offX,
		OffsetY:     offY,
		RotationDeg: rotDeg,
		CamX:        camX,
		CamY:        camY,
		Zoom:        zoom,
	}
	if err := g.trace.Record(s); err != nil {
		slog.Warn("trace write failed", "error", err)
	}
}

// CameraState returns the main camera's position and zoom. ok is
// false when no camera is spawned.
func (g *Game) CameraState() (x, y, zoom float32, ok bool) {
	query := g.camFilter.Query()
	for query.Next() {
		tr, proj, _ := query.Get()
		x, y, zoom, ok = tr.X, tr.Y, proj.Scale, true
	}
	return x, y, zoom, ok
}

// Close flushes telemetry output.
func (g *Game) Close() error {
	if g.trace != nil {
		return g.trace.Close()
	}
	return nil
}
