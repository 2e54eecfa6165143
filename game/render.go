package game

import (
	"fmt"
	"math"
	"sort"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawCall is one sprite resolved to world space, ready for ordering.
type drawCall struct {
	x, y, z float32
	w, h    float32
	color   rl.Color
}

// Draw renders the demo scene with a raylib 2D camera derived from
// the ECS camera entity.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 24, G: 26, B: 32, A: 255})

	if cam, ok := g.raylibCamera(); ok {
		rl.BeginMode2D(cam)
		g.drawSprites()
		rl.EndMode2D()
	}

	g.drawHUD()
	rl.EndDrawing()
}

// raylibCamera converts the ECS camera transform and projection into
// a raylib Camera2D. Zoom is pixels per world unit so the fixed
// vertical extent always fills the viewport height.
func (g *Game) raylibCamera() (rl.Camera2D, bool) {
	var cam rl.Camera2D
	var found bool

	query := g.camFilter.Query()
	for query.Next() {
		tr, proj, _ := query.Get()
		_, areaH := proj.Area()
		var zoom float32 = 1
		if areaH > 0 {
			zoom = proj.ViewportH / areaH
		}
		cam = rl.Camera2D{
			Target:   rl.Vector2{X: tr.X, Y: tr.Y},
			Offset:   rl.Vector2{X: proj.ViewportW / 2, Y: proj.ViewportH / 2},
			Rotation: tr.Rotation * (180.0 / math.Pi),
			Zoom:     zoom,
		}
		found = true
	}
	return cam, found
}

// drawSprites draws all sprites back to front by assigned depth.
func (g *Game) drawSprites() {
	var calls []drawCall

	query := g.spriteFilter.Query()
	for query.Next() {
		tr, wt, sp := query.Get()
		calls = append(calls, drawCall{
			x: wt.X, y: wt.Y, z: tr.Z,
			w: sp.W, h: sp.H,
			color: rl.Color{R: sp.R, G: sp.G, B: sp.B, A: sp.A},
		})
	}

	// Lower depth first, higher depth drawn on top
	sort.Slice(calls, func(i, j int) bool { return calls[i].z < calls[j].z })

	for _, c := range calls {
		rl.DrawRectangleV(
			rl.Vector2{X: c.x - c.w/2, Y: c.y - c.h/2},
			rl.Vector2{X: c.w, Y: c.h},
			c.color,
		)
	}
}

// drawHUD draws the overlay text and, in debug mode, the shake
// tuning sliders.
func (g *Game) drawHUD() {
	rl.DrawText("WASD move | SPACE shake | F1 debug | +/- zoom (debug)", 10, 10, 18, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("trauma %.2f", g.settings.Trauma()), 10, 34, 18, rl.RayWhite)

	if !g.debug.Active {
		return
	}

	panelX := float32(10)
	panelY := float32(70)
	rl.DrawText("Shake tuning", int32(panelX), int32(panelY), 18, rl.SkyBlue)
	panelY += 28

	rl.DrawText("Noise strength", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	noise := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0", "30",
		g.settings.NoiseStrength(), 0, 30,
	)
	g.settings.SetNoiseStrength(noise)
	panelY += 30

	rl.DrawText("Translation strength", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	trans := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0", "50",
		g.settings.TranslationShakeStrength(), 0, 50,
	)
	g.settings.SetTranslationShakeStrength(trans)
	panelY += 30

	rl.DrawText("Rotation strength", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	rot := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 20},
		"0", "10",
		g.settings.RotationShakeStrength(), 0, 10,
	)
	g.settings.SetRotationShakeStrength(rot)
	panelY += 30

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 220, Height: 26}, "Burst shake") {
		g.AddTrauma(0.8)
	}

	stats := g.perf.Stats()
	panelY += 36
	rl.DrawText(fmt.Sprintf("frame %dus  fps %d",
		stats.AvgFrameDuration.Microseconds(), int(stats.FramesPerSecond)),
		int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 20

	// Per-stage breakdown, camera stages first
	for _, category := range []string{"camera", "external"} {
		rl.DrawText(category, int32(panelX), int32(panelY), 14, rl.SkyBlue)
		panelY += 16
		for _, info := range g.registry.ByCategory(category) {
			pct, ok := stats.StagePct[info.ID]
			if !ok {
				continue
			}
			rl.DrawText(fmt.Sprintf("  %s %.1f%%", info.Name, pct),
				int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}
	}
}
