package components

import "github.com/jakecoffman/cp"

// RigidBody attaches a chipmunk body to an entity. The physics system
// steps the space and writes the body position back into the entity's
// Transform and WorldTransform.
type RigidBody struct {
	Body *cp.Body
}

// Sprite is a renderable colored quad, used by the demo renderer.
// W and H are in world units; RGBA is straight alpha.
type Sprite struct {
	W, H       float32
	R, G, B, A uint8
}
