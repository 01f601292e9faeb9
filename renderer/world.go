package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/game"
)

// ColorFunc maps a configured color name to a tint.
type ColorFunc func(name string) rl.Color

// WorldRenderer draws food and animals from a world view.
type WorldRenderer struct {
	background *BackgroundRenderer
	tint       ColorFunc
}

// NewWorldRenderer creates a renderer for a screenW x screenH world.
func NewWorldRenderer(screenW, screenH int32, tint ColorFunc) *WorldRenderer {
	return &WorldRenderer{
		background: NewBackgroundRenderer(screenW, screenH),
		tint:       tint,
	}
}

// Draw renders one frame of v. Call between BeginDrawing and EndDrawing.
func (r *WorldRenderer) Draw(v game.View) {
	r.background.Draw(v.Background)
	if v.Plant != nil {
		drawFood(*v.Plant)
	}
	if v.Meat != nil {
		drawFood(*v.Meat)
	}
	for _, a := range v.Animals {
		r.drawAnimal(a)
	}
}

// Unload frees resources.
func (r *WorldRenderer) Unload() {
	r.background.Unload()
}

func drawFood(f game.FoodView) {
	x, y := int32(f.Pos.X), int32(f.Pos.Y)
	h := float32(f.Height)
	switch f.Kind {
	case components.MeatChunk:
		rl.DrawRectangleRounded(rl.Rectangle{X: float32(x) - h/2, Y: float32(y) - h/3, Width: h, Height: h * 2 / 3}, 0.5, 6,
			rl.Color{R: 170, G: 40, B: 40, A: 255})
		rl.DrawCircle(x+int32(h/2), y, h/6, rl.Color{R: 240, G: 230, B: 210, A: 255})
	case components.Cabbage:
		rl.DrawCircle(x, y, h/2, rl.Color{R: 120, G: 170, B: 80, A: 255})
		rl.DrawCircleLines(x, y, h/3, rl.Color{R: 80, G: 130, B: 50, A: 255})
	default:
		rl.DrawEllipse(x, y, h/2, h/3, rl.Color{R: 90, G: 200, B: 80, A: 255})
	}
}

// drawAnimal draws a body spanning size pixels from the animal's position,
// with the head on the side it is heading towards.
func (r *WorldRenderer) drawAnimal(a game.AnimalView) {
	size := float32(a.Size)
	x, y := float32(a.Pos.X), float32(a.Pos.Y)
	tint := r.tint(a.Color)
	if a.Suspended {
		tint = rl.Fade(tint, 0.5)
	}

	body := rl.Rectangle{X: x, Y: y + size*0.2, Width: size * 0.75, Height: size * 0.45}
	headX := x + size*0.75
	if a.XDir < 0 {
		body.X = x + size*0.25
		headX = x + size*0.25
	}
	rl.DrawRectangleRounded(body, 0.6, 8, tint)
	rl.DrawCircle(int32(headX), int32(y+size*0.25), size*0.18, tint)

	legTop := body.Y + body.Height - 2
	for _, lx := range []float32{body.X + size*0.1, body.X + body.Width - size*0.15} {
		rl.DrawRectangle(int32(lx), int32(legTop), int32(size*0.06)+1, int32(size*0.25), tint)
	}

	rl.DrawText(a.Species, int32(x), int32(y), 10, rl.Black)
}
