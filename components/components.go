// Package components defines ECS components for the camera pipeline.
package components

import "github.com/mlange-42/ark/ecs"

// Transform is an entity's local transform. For root entities the
// translation is in world space; for entities with a Parent it is
// relative to the parent. Z is the derived depth (draw-order)
// coordinate, Rotation is in radians.
type Transform struct {
	X, Y, Z  float32
	Rotation float32
}

// WorldTransform is the absolute world position resolved by the
// propagation stage at the end of the previous frame. Physics and
// depth assignment read from here, never from Transform directly.
type WorldTransform struct {
	X, Y float32
}

// Parent links an entity to its parent for transform propagation
// and parent-relative depth.
type Parent struct {
	Entity ecs.Entity
}
