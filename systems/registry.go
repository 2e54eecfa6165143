package systems

// SystemInfo describes a pipeline stage for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this stage does
	Category    string // Grouping (e.g., "camera", "external")
}

// SystemRegistry holds metadata about all pipeline stages.
// This centralizes stage naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known stages.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known stages to the registry.
// Update this when adding new stages.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: StagePhysics, Name: "Physics", Description: "Steps the space and writes positions back", Category: "external"})
	r.Register(SystemInfo{ID: StageDepth, Name: "Depth", Description: "Assigns draw-order depth from world Y", Category: "camera"})
	r.Register(SystemInfo{ID: StageTargetUpdate, Name: "Target Update", Description: "Runs gameplay camera-target logic", Category: "camera"})
	r.Register(SystemInfo{ID: StageShakeDecay, Name: "Shake Decay", Description: "Decays shake trauma over time", Category: "camera"})
	r.Register(SystemInfo{ID: StageCameraTransform, Name: "Camera Transform", Description: "Applies target, shake and bounds to the camera", Category: "camera"})
	r.Register(SystemInfo{ID: StageZoom, Name: "Zoom", Description: "Applies debug zoom events to the projection", Category: "camera"})
	r.Register(SystemInfo{ID: StagePropagate, Name: "Propagation", Description: "Resolves parent-relative transforms to world space", Category: "external"})
}

// Register adds a stage to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns stage info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// ByCategory returns stages filtered by category, in registration
// order.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
