package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/camera"
	"github.com/pthm-cable/topdown/components"
	"github.com/pthm-cable/topdown/systems"
)

// Demo tuning
const (
	playerSpeed  = 120.0
	playerRadius = 12.0
	hitTrauma    = 0.4
)

// SetupDemoScene populates the world with a camera, a controllable
// player, and scenery exercising every depth variant.
func (g *Game) SetupDemoScene() {
	g.SpawnCamera(0, 0)

	g.player = g.SpawnBody(0, 0, playerRadius, components.Sprite{
		W: 24, H: 24, R: 230, G: 200, B: 80, A: 255,
	})
	g.AttachDepth(g.player, 0, components.DepthDynamic)

	// A hat following the player, layered above it
	hat := g.SpawnChild(g.player, 0, -16, components.Sprite{
		W: 16, H: 8, R: 200, G: 60, B: 60, A: 255,
	})
	g.AttachDepth(hat, 1, components.DepthDynamicChild)

	// Scattered trees, sorted against the player by world Y
	treePositions := [][2]float32{
		{-120, -80}, {60, -140}, {140, 40}, {-60, 120}, {200, -40},
	}
	for _, p := range treePositions {
		tree := g.SpawnStatic(p[0], p[1], components.Sprite{
			W: 28, H: 48, R: 60, G: 140, B: 70, A: 255,
		})
		g.AttachDepth(tree, 0, components.DepthStatic)

		canopy := g.SpawnChild(tree, 0, -30, components.Sprite{
			W: 44, H: 28, R: 40, G: 110, B: 55, A: 255,
		})
		g.AttachDepth(canopy, 1, components.DepthStaticChild)
	}

	// Ground, always behind everything
	ground := g.SpawnStatic(0, 0, components.Sprite{
		W: 800, H: 600, R: 90, G: 85, B: 70, A: 255,
	})
	g.AttachDepth(ground, -100, components.DepthStatic)

	g.SetBound(camera.Bounds{MinX: -400, MinY: -300, MaxX: 400, MaxY: 300})

	g.SetTargetUpdateFn(func(w *ecs.World, ctx *systems.Context) {
		if wt := g.worldMap.Get(g.player); wt != nil {
			ctx.Settings.UpdateTarget(wt.X, wt.Y)
		}
	})
}

// HandleInput processes keyboard input for the demo.
func (g *Game) HandleInput() {
	rb := g.bodyMap.Get(g.player)
	if rb != nil {
		var vx, vy float64
		if rl.IsKeyDown(rl.KeyA) {
			vx -= playerSpeed
		}
		if rl.IsKeyDown(rl.KeyD) {
			vx += playerSpeed
		}
		if rl.IsKeyDown(rl.KeyW) {
			vy -= playerSpeed
		}
		if rl.IsKeyDown(rl.KeyS) {
			vy += playerSpeed
		}
		rb.Body.SetVelocity(vx, vy)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.AddTrauma(hitTrauma)
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.ToggleDebug()
	}

	// Zoom only applies in debug mode; the queue is drained either way
	if rl.IsKeyPressed(rl.KeyEqual) {
		g.PushZoom(1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		g.PushZoom(-1)
	}
}
