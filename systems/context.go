// Package systems contains the per-frame ECS systems of the camera
// pipeline and the stage scheduler that orders them.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/topdown/camera"
)

// Context carries the shared single-owner resources through one frame.
// The frame scheduler owns it; systems receive it by pointer. All
// access is single-threaded within a frame tick.
type Context struct {
	// DT is the frame's elapsed time in seconds.
	DT float32

	// Settings is the camera shake/target singleton.
	Settings *camera.Settings

	// Debug gates developer-only behavior such as zoom events.
	Debug *DebugState

	// ZoomEvents buffers zoom deltas until the zoom stage drains them.
	ZoomEvents *ZoomQueue
}

// System is one pipeline stage's work for a single frame.
type System interface {
	Update(w *ecs.World, ctx *Context)
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(w *ecs.World, ctx *Context)

// Update calls the wrapped function.
func (f SystemFunc) Update(w *ecs.World, ctx *Context) {
	f(w, ctx)
}

// DebugState indicates whether the game is currently in debug mode.
// Used for developer info and as a trigger to allow cheats.
type DebugState struct {
	Active bool
}

// Toggle flips the debug flag.
func (d *DebugState) Toggle() {
	d.Active = !d.Active
}

// ZoomEvent adjusts the camera view scale by a signed amount.
type ZoomEvent struct {
	Delta int
}

// ZoomQueue is a FIFO for zoom events, drained once per frame.
type ZoomQueue struct {
	items []ZoomEvent
}

// Push adds an event.
func (q *ZoomQueue) Push(ev ZoomEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, ev)
}

// Drain returns all pending events and clears the queue.
func (q *ZoomQueue) Drain() []ZoomEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
