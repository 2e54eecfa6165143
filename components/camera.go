package components

// MainCamera tags the authoritative camera entity. There should be
// exactly one; the camera systems skip their update and log when the
// count is anything else.
type MainCamera struct{}

// Projection is an orthographic projection with a fixed vertical
// world extent: at Scale 1 the camera sees FixedVertical world units
// vertically, with width following the viewport aspect ratio.
type Projection struct {
	Scale         float32
	FixedVertical float32
	ViewportW     float32
	ViewportH     float32
}

// Area returns the size of the visible world area under the current
// scale and viewport.
func (p *Projection) Area() (w, h float32) {
	h = p.FixedVertical * p.Scale
	if p.ViewportH > 0 {
		w = h * p.ViewportW / p.ViewportH
	}
	return w, h
}
