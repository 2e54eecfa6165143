package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/components"
)

// Default zoom scale clamp.
const (
	DefaultZoomMin = 1.0
	DefaultZoomMax = 10.0
)

// ZoomSystem applies queued zoom events to the main camera's
// projection scale. Zooming is a developer aid: events are dropped
// unless the debug flag is active.
type ZoomSystem struct {
	filter   ecs.Filter2[components.Projection, components.MainCamera]
	min, max float32
}

// NewZoomSystem creates a zoom system clamping the scale to
// [min, max].
func NewZoomSystem(w *ecs.World, min, max float32) *ZoomSystem {
	return &ZoomSystem{
		filter: *ecs.NewFilter2[components.Projection, components.MainCamera](w),
		min:    min,
		max:    max,
	}
}

// Update drains the zoom queue. Events outside debug mode are
// consumed but ignored; events without a unique camera projection are
// skipped.
func (s *ZoomSystem) Update(_ *ecs.World, ctx *Context) {
	events := ctx.ZoomEvents.Drain()
	if len(events) == 0 {
		return
	}

	for _, ev := range events {
		if !ctx.Debug.Active {
			continue
		}

		var proj *components.Projection
		count := 0
		query := s.filter.Query()
		for query.Next() {
			p, _ := query.Get()
			count++
			if count == 1 {
				proj = p
			}
		}
		if count != 1 {
			slog.Warn("zoom event skipped: need exactly one main camera projection", "count", count)
			continue
		}

		proj.Scale = clamp(proj.Scale+float32(ev.Delta), s.min, s.max)
	}
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
