package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/camera"
	"github.com/pthm-cable/topdown/components"
	"github.com/pthm-cable/topdown/config"
	"github.com/pthm-cable/topdown/systems"
)

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	config.MustInit("")

	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func followEntity(g *Game, e ecs.Entity) {
	g.SetTargetUpdateFn(func(w *ecs.World, ctx *systems.Context) {
		if wt := g.worldMap.Get(e); wt != nil {
			ctx.Settings.UpdateTarget(wt.X, wt.Y)
		}
	})
}

func TestCameraFollowsMovingBody(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnCamera(0, 0)

	body := g.SpawnBody(100, 50, 10, components.Sprite{})
	followEntity(g, body)

	rb := g.bodyMap.Get(body)
	rb.Body.SetVelocity(60, 0)

	for i := 0; i < 30; i++ {
		g.Step(DT)
	}

	// No trauma, no bounds: the camera sits exactly on the target,
	// which tracks the body's physics position.
	camX, camY, _, ok := g.CameraState()
	if !ok {
		t.Fatal("expected a camera")
	}
	wt := g.worldMap.Get(body)
	if camX != wt.X || camY != wt.Y {
		t.Errorf("camera (%v,%v) should match body (%v,%v)", camX, camY, wt.X, wt.Y)
	}
	if wt.X <= 100 {
		t.Errorf("body should have moved right, at x=%v", wt.X)
	}
}

func TestTraumaDecaysToZeroAcrossFrames(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnCamera(0, 0)

	g.AddTrauma(0.5)
	if g.Settings().Trauma() != 0.5 {
		t.Fatalf("expected trauma 0.5, got %v", g.Settings().Trauma())
	}

	// Decay rate is 1 per second, so 0.5 trauma is gone in 30 frames
	for i := 0; i < 31; i++ {
		g.Step(DT)
	}
	if got := g.Settings().Trauma(); got != 0 {
		t.Errorf("expected trauma fully decayed, got %v", got)
	}

	// With zero trauma the camera is unshaken on its target
	g.UpdateTarget(10, 20)
	g.Step(DT)
	camX, camY, _, _ := g.CameraState()
	if camX != 10 || camY != 20 {
		t.Errorf("expected camera exactly on target, got (%v,%v)", camX, camY)
	}
}

func TestZoomOnlyAppliesInDebugMode(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnCamera(0, 0)

	g.PushZoom(2)
	g.Step(DT)
	if _, _, zoom, _ := g.CameraState(); zoom != 1 {
		t.Errorf("zoom should be ignored outside debug mode, got %v", zoom)
	}

	g.ToggleDebug()
	g.PushZoom(2)
	g.Step(DT)
	if _, _, zoom, _ := g.CameraState(); zoom != 3 {
		t.Errorf("expected zoom 3 in debug mode, got %v", zoom)
	}
}

func TestDepthAssignedDuringStep(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnCamera(0, 0)

	e := g.SpawnStatic(0, 200, components.Sprite{})
	g.AttachDepth(e, 0, components.DepthStatic)

	g.Step(DT)

	tr := g.transformMap.Get(e)
	scale := float32(config.Cfg().Depth.Scale)
	want := (0 - float32(200)) * scale
	if tr.Z != want {
		t.Errorf("expected depth %v, got %v", want, tr.Z)
	}
	if g.pendingMap.Get(e) != nil {
		t.Error("expected pending marker cleared after first frame")
	}
}

func TestCameraClampedToSceneBounds(t *testing.T) {
	g := newTestGame(t, Options{})
	g.SpawnCamera(0, 0)
	g.SetBound(camera.Bounds{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})

	g.UpdateTarget(5000, -5000)
	g.Step(DT)

	camX, camY, _, _ := g.CameraState()
	proj := mustProjection(t, g)
	areaW, areaH := proj.Area()
	if camX != 1000-areaW/2 {
		t.Errorf("expected camera clamped to right edge, got %v", camX)
	}
	if camY != -1000+areaH/2 {
		t.Errorf("expected camera clamped to bottom edge, got %v", camY)
	}
}

func TestShakeTuningAppliedBetweenFrames(t *testing.T) {
	g := newTestGame(t, Options{})
	cam := g.SpawnCamera(0, 0)
	g.UpdateTarget(50, 60)

	g.AddTrauma(1)
	g.Step(DT)

	// A config reload is drained on the stepping goroutine and lands
	// between frames; zeroed strengths must take effect immediately.
	g.SetNoiseStrength(0)
	g.SetTranslationShakeStrength(0)
	g.SetRotationShakeStrength(0)
	g.Step(DT)

	camX, camY, _, _ := g.CameraState()
	if camX != 50 || camY != 60 {
		t.Errorf("expected unshaken camera on target, got (%v,%v)", camX, camY)
	}
	if rot := g.transformMap.Get(cam).Rotation; rot != 0 {
		t.Errorf("expected zero camera roll, got %v", rot)
	}
}

func TestTraceOutputWritten(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, Options{OutputDir: dir})
	g.SpawnCamera(0, 0)

	for i := 0; i < 5; i++ {
		g.Step(DT)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("closing game: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "trace.csv")); err != nil {
		t.Errorf("expected trace.csv: %v", err)
	}
}

func mustProjection(t *testing.T, g *Game) *components.Projection {
	t.Helper()
	query := g.camFilter.Query()
	var proj *components.Projection
	for query.Next() {
		_, p, _ := query.Get()
		proj = p
	}
	if proj == nil {
		t.Fatal("no camera projection found")
	}
	return proj
}
