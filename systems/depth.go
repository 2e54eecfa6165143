package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
)

// DefaultDepthScale maps world Y into the renderer's usable depth
// range. Too small loses float precision between nearby sprites, too
// large overflows the range for plausible world coordinates.
const DefaultDepthScale = 0.0001

// DepthSystem assigns draw-order depth coordinates from world Y
// position. It must run after the physics writeback so it sees the
// frame's final world positions.
//
// Dynamic variants recompute every frame; static variants are
// processed once, while their DepthPending marker is present, and the
// marker is cleared afterwards. Child variants are layered relative to
// the parent's currently stored depth and are skipped for the frame
// when the parent lacks the matching variant.
type DepthSystem struct {
	scale float32

	filter     ecs.Filter3[components.Transform, components.WorldTransform, components.Depth]
	transforms ecs.Map1[components.Transform]
	depths     ecs.Map1[components.Depth]
	parents    ecs.Map1[components.Parent]
	pending    ecs.Map1[components.DepthPending]
}

// NewDepthSystem creates a depth system with the given Y-to-depth
// scale. Pass DefaultDepthScale unless the renderer needs another
// depth range.
func NewDepthSystem(w *ecs.World, scale float32) *DepthSystem {
	return &DepthSystem{
		scale:      scale,
		filter:     *ecs.NewFilter3[components.Transform, components.WorldTransform, components.Depth](w),
		transforms: *ecs.NewMap1[components.Transform](w),
		depths:     *ecs.NewMap1[components.Depth](w),
		parents:    *ecs.NewMap1[components.Parent](w),
		pending:    *ecs.NewMap1[components.DepthPending](w),
	}
}

// Update runs the four depth passes. Pass order matters: parents
// before children, so a child subtracts the parent depth stored this
// frame, and dynamic before static so a freshly attached static child
// of a dynamic parent sees a current parent depth.
func (s *DepthSystem) Update(w *ecs.World, _ *Context) {
	s.applyDynamic()
	s.applyDynamicChild()
	done := s.applyStatic(nil)
	done = s.applyStaticChild(done)

	// Structural changes happen outside the queries.
	for _, e := range done {
		s.pending.Remove(e)
	}
}

func (s *DepthSystem) applyDynamic() {
	query := s.filter.Query()
	for query.Next() {
		tr, wt, d := query.Get()
		if d.Variant != components.DepthDynamic {
			continue
		}
		tr.Z = (d.Base - wt.Y) * s.scale
	}
}

func (s *DepthSystem) applyDynamicChild() {
	query := s.filter.Query()
	for query.Next() {
		tr, wt, d := query.Get()
		if d.Variant != components.DepthDynamicChild {
			continue
		}
		pt, ok := s.parentTransform(query.Entity(), d)
		if !ok {
			continue
		}
		tr.Z = (d.Base-wt.Y)*s.scale - pt.Z
	}
}

func (s *DepthSystem) applyStatic(done []ecs.Entity) []ecs.Entity {
	query := s.filter.Query()
	for query.Next() {
		tr, wt, d := query.Get()
		if d.Variant != components.DepthStatic {
			continue
		}
		e := query.Entity()
		if s.pending.Get(e) == nil {
			continue
		}
		tr.Z = (d.Base - wt.Y) * s.scale
		done = append(done, e)
	}
	return done
}

func (s *DepthSystem) applyStaticChild(done []ecs.Entity) []ecs.Entity {
	query := s.filter.Query()
	for query.Next() {
		tr, wt, d := query.Get()
		if d.Variant != components.DepthStaticChild {
			continue
		}
		e := query.Entity()
		if s.pending.Get(e) == nil {
			continue
		}
		// Parent missing its tag: leave the marker, retry next frame.
		pt, ok := s.parentTransform(e, d)
		if !ok {
			continue
		}
		tr.Z = (d.Base-wt.Y)*s.scale - pt.Z
		done = append(done, e)
	}
	return done
}

// parentTransform resolves the parent's transform for a child variant,
// requiring the parent to carry the corresponding non-child variant.
func (s *DepthSystem) parentTransform(e ecs.Entity, d *components.Depth) (*components.Transform, bool) {
	parent := s.parents.Get(e)
	if parent == nil {
		return nil, false
	}
	pd := s.depths.Get(parent.Entity)
	if pd == nil || pd.Variant != d.Variant.ParentVariant() {
		return nil, false
	}
	pt := s.transforms.Get(parent.Entity)
	if pt == nil {
		return nil, false
	}
	return pt, true
}
