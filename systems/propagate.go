package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
)

// PropagationSystem resolves parent-relative transforms into absolute
// world positions. It is the final stage of the frame; the world
// positions it writes are what next frame's physics and depth stages
// read.
//
// Propagation composes translations only. Camera roll from shake does
// not cascade to children, matching a top-down presentation where
// sprites never inherit rotation.
type PropagationSystem struct {
	filter     ecs.Filter2[components.Transform, components.WorldTransform]
	transforms ecs.Map1[components.Transform]
	parents    ecs.Map1[components.Parent]
}

// NewPropagationSystem creates the transform propagation stage.
func NewPropagationSystem(w *ecs.World) *PropagationSystem {
	return &PropagationSystem{
		filter:     *ecs.NewFilter2[components.Transform, components.WorldTransform](w),
		transforms: *ecs.NewMap1[components.Transform](w),
		parents:    *ecs.NewMap1[components.Parent](w),
	}
}

// Update recomputes every entity's world transform by accumulating
// local translations up the parent chain. Walking the chain per
// entity keeps the result independent of iteration order.
func (s *PropagationSystem) Update(_ *ecs.World, _ *Context) {
	query := s.filter.Query()
	for query.Next() {
		tr, wt := query.Get()
		x, y := tr.X, tr.Y

		p := s.parents.Get(query.Entity())
		for p != nil {
			pt := s.transforms.Get(p.Entity)
			if pt == nil {
				break
			}
			x += pt.X
			y += pt.Y
			p = s.parents.Get(p.Entity)
		}

		wt.X = x
		wt.Y = y
	}
}
