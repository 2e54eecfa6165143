package components

// DepthVariant selects how an entity's depth coordinate is maintained.
type DepthVariant uint8

const (
	// DepthDynamic recomputes the depth every frame from world Y.
	DepthDynamic DepthVariant = iota
	// DepthDynamicChild recomputes every frame, layered relative to the
	// parent's current depth. The parent must carry DepthDynamic.
	DepthDynamicChild
	// DepthStatic computes the depth once, when the component is
	// attached, and never touches it again.
	DepthStatic
	// DepthStaticChild is DepthStatic layered relative to a
	// DepthStatic parent.
	DepthStaticChild
)

// PerFrame reports whether the variant recomputes on every frame.
func (v DepthVariant) PerFrame() bool {
	return v == DepthDynamic || v == DepthDynamicChild
}

// ParentRelative reports whether the variant subtracts the parent's
// stored depth.
func (v DepthVariant) ParentRelative() bool {
	return v == DepthDynamicChild || v == DepthStaticChild
}

// ParentVariant returns the variant the parent entity must carry for a
// child variant to resolve. Only meaningful when ParentRelative().
func (v DepthVariant) ParentVariant() DepthVariant {
	if v == DepthDynamicChild {
		return DepthDynamic
	}
	return DepthStatic
}

func (v DepthVariant) String() string {
	switch v {
	case DepthDynamic:
		return "dynamic"
	case DepthDynamicChild:
		return "dynamicChild"
	case DepthStatic:
		return "static"
	case DepthStaticChild:
		return "staticChild"
	}
	return "unknown"
}

// Depth assigns a draw-order coordinate derived from world Y position.
// Base shifts the entity's layer relative to others at the same Y.
// Exactly one Depth per renderable entity.
type Depth struct {
	Base    float32
	Variant DepthVariant
}

// DepthPending marks an entity whose depth has not been computed yet.
// The static variants are processed once while this tag is present and
// the tag is removed afterwards. Attached together with Depth for the
// static variants only.
type DepthPending struct{}
