package systems

import (
	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
)

// PhysicsSystem steps the chipmunk space and writes body positions
// back into entity transforms. This is the writeback stage the depth
// and camera stages depend on: after it runs, WorldTransform holds the
// frame's final world position for every physics-driven entity.
//
// Top-down games have no downward pull, so the space defaults to zero
// gravity.
type PhysicsSystem struct {
	space  *cp.Space
	filter ecs.Filter3[components.Transform, components.WorldTransform, components.RigidBody]
}

// NewPhysicsSystem creates a physics system with its own space.
func NewPhysicsSystem(w *ecs.World, gravityX, gravityY float64, iterations uint) *PhysicsSystem {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = iterations
	}
	space.SetGravity(cp.Vector{X: gravityX, Y: gravityY})
	return &PhysicsSystem{
		space:  space,
		filter: *ecs.NewFilter3[components.Transform, components.WorldTransform, components.RigidBody](w),
	}
}

// Space exposes the chipmunk space for spawning bodies and shapes.
func (s *PhysicsSystem) Space() *cp.Space {
	return s.space
}

// Update advances the simulation by the frame delta and writes body
// positions back. Physics-driven entities are roots, so their local
// transform and world transform coincide.
func (s *PhysicsSystem) Update(_ *ecs.World, ctx *Context) {
	if ctx.DT > 0 {
		s.space.Step(float64(ctx.DT))
	}

	query := s.filter.Query()
	for query.Next() {
		tr, wt, rb := query.Get()
		if rb.Body == nil {
			continue
		}
		pos := rb.Body.Position()
		tr.X = float32(pos.X)
		tr.Y = float32(pos.Y)
		wt.X = tr.X
		wt.Y = tr.Y
	}
}
