package systems

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
)

// TargetUpdateSystem is the hook slot for external camera-target
// logic. Gameplay code registered here runs after the physics
// writeback and before trauma decay, so a follow camera can read the
// player's final position for the frame.
type TargetUpdateSystem struct {
	Fn func(w *ecs.World, ctx *Context)
}

// Update calls the registered hook, if any.
func (s *TargetUpdateSystem) Update(w *ecs.World, ctx *Context) {
	if s.Fn != nil {
		s.Fn(w, ctx)
	}
}

// ShakeDecaySystem decays the shake trauma by the frame delta.
type ShakeDecaySystem struct{}

// Update reduces trauma at the fixed rate of 1 per second.
func (ShakeDecaySystem) Update(_ *ecs.World, ctx *Context) {
	ctx.Settings.ReduceTrauma(ctx.DT)
}

// CameraSystem writes the main camera's final transform for the
// frame: target plus shake translation, clamped to the bounds, with
// the shake rotation set absolutely. Runs after shake decay and
// before transform propagation.
type CameraSystem struct {
	filter ecs.Filter3[components.Transform, components.Projection, components.MainCamera]
}

// NewCameraSystem creates the camera transform updater.
func NewCameraSystem(w *ecs.World) *CameraSystem {
	return &CameraSystem{
		filter: *ecs.NewFilter3[components.Transform, components.Projection, components.MainCamera](w),
	}
}

// Update computes the camera transform. With zero or multiple main
// cameras the frame is skipped and retried next frame.
func (s *CameraSystem) Update(_ *ecs.World, ctx *Context) {
	var tr *components.Transform
	var proj *components.Projection
	count := 0

	query := s.filter.Query()
	for query.Next() {
		t, p, _ := query.Get()
		count++
		if count == 1 {
			tr, proj = t, p
		}
	}
	if count != 1 {
		slog.Warn("camera transform skipped: need exactly one main camera", "count", count)
		return
	}

	offX, offY, rotDeg := ctx.Settings.Offsets()
	targetX, targetY := ctx.Settings.Target()
	areaW, areaH := proj.Area()

	x, y := ctx.Settings.ClampPos(targetX+offX, targetY+offY, areaW, areaH)
	tr.X = x
	tr.Y = y
	// Depth coordinate stays untouched; rotation is set, not
	// accumulated, so shake cannot drift the camera's roll.
	tr.Rotation = rotDeg * (math.Pi / 180)
}
