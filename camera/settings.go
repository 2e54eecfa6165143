// Package camera implements the trauma-based shake controller for the
// main camera: decaying trauma state, seeded coherent noise offsets,
// and viewport bounds clamping. It is pure state and math with no ECS
// dependency; the systems package drives it once per frame.
package camera

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise channels. Each channel evaluates the same noise point with a
// different seed offset so the three offsets are uncorrelated.
const (
	ChannelX        = 0 // X translation
	ChannelY        = 1 // Y translation
	ChannelRotation = 2 // roll around the view axis
)

// Default shake tuning.
const (
	DefaultNoiseStrength       = 10.0
	DefaultTranslationStrength = 15.0
	DefaultRotationStrength    = 2.5
)

// SeedSource produces a fresh shake seed. Called once per shake burst,
// when trauma rises from zero.
type SeedSource func() float32

// TimeSeed is the default SeedSource: wall-clock milliseconds masked
// to 16 bits. Good enough for gameplay; inject a deterministic source
// for tests.
func TimeSeed() float32 {
	return float32(time.Now().UnixMilli() & 0xFFFF)
}

// Settings owns the camera shake state and target position. It is a
// process-wide singleton owned by the frame scheduler and passed by
// pointer to the systems that need it; there is exactly one writer per
// frame, so it carries no locking.
type Settings struct {
	trauma              float32
	seed                float32
	targetX, targetY    float32
	noiseStrength       float32
	translationStrength float32
	rotationStrength    float32

	bounds *Bounds
	seedFn SeedSource
	noise  [3]opensimplex.Noise
}

// NewSettings creates shake settings with the default tuning and the
// wall-clock seed source.
func NewSettings() *Settings {
	s := &Settings{
		noiseStrength:       DefaultNoiseStrength,
		translationStrength: DefaultTranslationStrength,
		rotationStrength:    DefaultRotationStrength,
		seedFn:              TimeSeed,
	}
	s.rebuildNoise()
	return s
}

// SetSeedSource replaces the seed source used when a new shake burst
// starts. Pass a deterministic function for reproducible shakes.
func (s *Settings) SetSeedSource(fn SeedSource) {
	if fn != nil {
		s.seedFn = fn
	}
}

// AddTrauma adds trauma to the camera shake. Trauma is capped at 1.
// The first addition after trauma reached zero draws a fresh noise
// seed, so consecutive shake bursts differ.
func (s *Settings) AddTrauma(trauma float32) {
	if s.trauma == 0 {
		s.seed = s.seedFn()
		s.rebuildNoise()
	}
	s.trauma = min32(s.trauma+abs32(trauma), 1)
}

// AddTraumaWithThreshold adds trauma unless the current trauma is
// already at or above threshold. Useful to keep incremental additions
// from escalating.
func (s *Settings) AddTraumaWithThreshold(trauma, threshold float32) {
	if s.trauma >= threshold {
		return
	}
	s.AddTrauma(trauma)
}

// ReduceTrauma decays trauma by the elapsed frame time, at a fixed
// rate of 1 trauma per second. Clamped at zero.
func (s *Settings) ReduceTrauma(deltaSeconds float32) {
	s.trauma = max32(s.trauma-abs32(deltaSeconds), 0)
}

// Trauma returns the current trauma in [0, 1].
func (s *Settings) Trauma() float32 {
	return s.trauma
}

// Seed returns the seed of the current shake burst.
func (s *Settings) Seed() float32 {
	return s.seed
}

// SetNoiseStrength updates how fast the noise point moves with trauma.
func (s *Settings) SetNoiseStrength(noiseStrength float32) {
	s.noiseStrength = noiseStrength
}

// NoiseStrength returns the current noise movement scale.
func (s *Settings) NoiseStrength() float32 {
	return s.noiseStrength
}

// TranslationShakeStrength returns the translation offset scale.
func (s *Settings) TranslationShakeStrength() float32 {
	return s.translationStrength
}

// RotationShakeStrength returns the rotation offset scale.
func (s *Settings) RotationShakeStrength() float32 {
	return s.rotationStrength
}

// SetTranslationShakeStrength updates the translation offset scale.
func (s *Settings) SetTranslationShakeStrength(strength float32) {
	s.translationStrength = strength
}

// SetRotationShakeStrength updates the rotation offset scale, in
// degrees at full trauma and unit noise.
func (s *Settings) SetRotationShakeStrength(strength float32) {
	s.rotationStrength = strength
}

// UpdateTarget sets the camera target position. The transform update
// stage moves the camera here (plus shake, minus bounds) every frame;
// this is the only way to move the camera.
func (s *Settings) UpdateTarget(x, y float32) {
	s.targetX = x
	s.targetY = y
}

// Target returns the current camera target position.
func (s *Settings) Target() (x, y float32) {
	return s.targetX, s.targetY
}

// SetBound sets the camera bounds rectangle. The transform update
// keeps the visible area inside it.
func (s *Settings) SetBound(bounds Bounds) {
	b := bounds
	s.bounds = &b
}

// NoiseValue evaluates the shake noise for one channel at the current
// trauma. Deterministic for a given (trauma, seed) pair and smooth as
// trauma changes.
func (s *Settings) NoiseValue(channel int) float32 {
	point := float64(s.trauma * s.noiseStrength)
	return float32(s.noise[channel].Eval2(point, 0))
}

// Offsets returns the shake offsets for this frame: translation in
// world units and rotation in degrees. All three scale with trauma
// squared, so they are exactly zero at zero trauma.
func (s *Settings) Offsets() (offX, offY, rotDeg float32) {
	t2 := s.trauma * s.trauma
	offX = s.NoiseValue(ChannelX) * t2 * s.translationStrength
	offY = s.NoiseValue(ChannelY) * t2 * s.translationStrength
	rotDeg = s.NoiseValue(ChannelRotation) * t2 * s.rotationStrength
	return offX, offY, rotDeg
}

func (s *Settings) rebuildNoise() {
	for c := range s.noise {
		s.noise[c] = opensimplex.New(int64(s.seed) + int64(c))
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
