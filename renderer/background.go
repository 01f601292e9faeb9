// Package renderer draws the world view with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/components"
)

// BackgroundRenderer draws the selected backdrop. The image backdrop is
// painted once into a render texture and reused every frame.
type BackgroundRenderer struct {
	target rl.RenderTexture2D

	screenW, screenH int32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
	}
}

// Init paints the image backdrop (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}
	b.target = rl.LoadRenderTexture(b.screenW, b.screenH)

	rl.BeginTextureMode(b.target)
	paintSavanna(b.screenW, b.screenH)
	rl.EndTextureMode()

	b.initialized = true
}

// Draw renders bg over the whole screen.
func (b *BackgroundRenderer) Draw(bg components.Background) {
	switch bg {
	case components.BackgroundGreen:
		rl.ClearBackground(rl.Color{R: 60, G: 140, B: 70, A: 255})
	case components.BackgroundImage:
		if !b.initialized {
			b.Init()
		}
		// Render textures are stored upside down.
		src := rl.Rectangle{X: 0, Y: 0, Width: float32(b.screenW), Height: -float32(b.screenH)}
		rl.DrawTextureRec(b.target.Texture, src, rl.Vector2{}, rl.White)
	default:
		rl.ClearBackground(rl.RayWhite)
	}
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
		b.initialized = false
	}
}

// paintSavanna draws sky, grass bands and a sun.
func paintSavanna(w, h int32) {
	horizon := h / 3
	rl.DrawRectangleGradientV(0, 0, w, horizon, rl.Color{R: 120, G: 180, B: 230, A: 255}, rl.Color{R: 230, G: 220, B: 180, A: 255})
	rl.DrawRectangleGradientV(0, horizon, w, h-horizon, rl.Color{R: 200, G: 180, B: 90, A: 255}, rl.Color{R: 150, G: 130, B: 60, A: 255})
	rl.DrawCircle(w-90, horizon/2, 30, rl.Color{R: 250, G: 210, B: 80, A: 255})

	tuft := rl.Color{R: 110, G: 120, B: 40, A: 160}
	for y := horizon + 20; y < h; y += 40 {
		offset := (y / 40 % 2) * 30
		for x := offset; x < w; x += 60 {
			rl.DrawTriangle(
				rl.Vector2{X: float32(x), Y: float32(y)},
				rl.Vector2{X: float32(x + 6), Y: float32(y)},
				rl.Vector2{X: float32(x + 3), Y: float32(y - 12)},
				tuft,
			)
		}
	}
}
