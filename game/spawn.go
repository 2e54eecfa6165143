package game

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
	"github.com/pthm-cable/topdown/config"
)

// SpawnCamera creates the main camera at the given world position.
func (g *Game) SpawnCamera(x, y float32) ecs.Entity {
	cfg := config.Cfg()

	tr := components.Transform{X: x, Y: y, Z: 0}
	wt := components.WorldTransform{X: x, Y: y}
	proj := components.Projection{
		Scale:         1,
		FixedVertical: float32(cfg.Camera.ProjectionScale),
		ViewportW:     float32(cfg.Screen.Width),
		ViewportH:     float32(cfg.Screen.Height),
	}
	return g.camMapper.NewEntity(&tr, &wt, &proj, &components.MainCamera{})
}

// SpawnBody creates a physics-driven entity with a sprite. The body
// is added to the space as a dynamic circle of the given radius.
func (g *Game) SpawnBody(x, y, radius float32, sprite components.Sprite) ecs.Entity {
	mass := 1.0
	moment := cp.MomentForCircle(mass, 0, float64(radius), cp.Vector{})
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: float64(x), Y: float64(y)})
	g.Space().AddBody(body)
	shape := cp.NewCircle(body, float64(radius), cp.Vector{})
	g.Space().AddShape(shape)

	tr := components.Transform{X: x, Y: y}
	wt := components.WorldTransform{X: x, Y: y}
	rb := components.RigidBody{Body: body}
	return g.bodyMapper.NewEntity(&tr, &wt, &rb, &sprite)
}

// SpawnStatic creates a non-physics entity with a sprite.
func (g *Game) SpawnStatic(x, y float32, sprite components.Sprite) ecs.Entity {
	tr := components.Transform{X: x, Y: y}
	wt := components.WorldTransform{X: x, Y: y}
	return g.staticMapper.NewEntity(&tr, &wt, &sprite)
}

// SpawnChild creates an entity positioned relative to a parent. The
// local offset is composed with the parent chain each frame.
func (g *Game) SpawnChild(parent ecs.Entity, offX, offY float32, sprite components.Sprite) ecs.Entity {
	tr := components.Transform{X: offX, Y: offY}
	wt := components.WorldTransform{}
	p := components.Parent{Entity: parent}
	return g.childMapper.NewEntity(&tr, &wt, &p, &sprite)
}

// AttachDepth enables depth assignment for an entity. Static variants
// are computed once, on the entity's first frame with the component.
func (g *Game) AttachDepth(e ecs.Entity, base float32, variant components.DepthVariant) {
	if variant.ParentRelative() && g.parentMap.Get(e) == nil {
		slog.Warn("depth variant needs a parent, entity will be skipped",
			"variant", variant.String())
	}
	g.depthMap.Add(e, &components.Depth{Base: base, Variant: variant})
	if !variant.PerFrame() {
		g.pendingMap.Add(e, &components.DepthPending{})
	}
}
