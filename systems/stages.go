package systems

// DefaultStages wires the built-in systems into the standard frame
// order. The constraints, not the slice order, define what must hold:
// depth and the camera transform run after the physics writeback and
// before propagation, and within the camera work the target update
// precedes trauma decay, which precedes the transform, which precedes
// zoom.
func DefaultStages(
	physics *PhysicsSystem,
	depth *DepthSystem,
	target *TargetUpdateSystem,
	cam *CameraSystem,
	zoom *ZoomSystem,
	propagate *PropagationSystem,
) []Stage {
	return []Stage{
		{ID: StagePhysics, System: physics},
		{ID: StageDepth, After: []string{StagePhysics}, Before: []string{StagePropagate}, System: depth},
		{ID: StageTargetUpdate, After: []string{StagePhysics}, System: target},
		{ID: StageShakeDecay, After: []string{StageTargetUpdate}, System: ShakeDecaySystem{}},
		{ID: StageCameraTransform, After: []string{StageShakeDecay}, Before: []string{StagePropagate}, System: cam},
		{ID: StageZoom, After: []string{StageCameraTransform}, Before: []string{StagePropagate}, System: zoom},
		{ID: StagePropagate, System: propagate},
	}
}
