package camera

// Bounds is an axis-aligned rectangle constraining where the camera's
// visible area may be centered.
type Bounds struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Width returns the horizontal extent of the rectangle.
func (b Bounds) Width() float32 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the rectangle.
func (b Bounds) Height() float32 {
	return b.MaxY - b.MinY
}

// ClampPos restricts a candidate camera center so the visible area
// (areaW x areaH) stays inside the configured bounds.
//
// Without bounds the position passes through unchanged. If the visible
// area is at least as large as the bounds rectangle on either axis,
// clamping would invert the valid range, so the position also passes
// through unchanged.
func (s *Settings) ClampPos(x, y, areaW, areaH float32) (float32, float32) {
	b := s.bounds
	if b == nil {
		return x, y
	}
	if areaW >= b.Width() || areaH >= b.Height() {
		return x, y
	}
	halfW := areaW / 2
	halfH := areaH / 2
	return clamp(x, b.MinX+halfW, b.MaxX-halfW),
		clamp(y, b.MinY+halfH, b.MaxY-halfH)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
