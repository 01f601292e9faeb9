package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Animals    int
	Running    int
	Queued     int
	History    int
	Tick       int64
	FPS        int32
	Background string
	Species    string
	Color      string
	Target     int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer

	notice      string
	noticeErr   bool
	noticeUntil time.Time
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Notify shows a transient message under the status lines.
func (h *HUD) Notify(msg string, isErr bool, d time.Duration) {
	h.notice = msg
	h.noticeErr = isErr
	h.noticeUntil = time.Now().Add(d)
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Animals: %d | Running: %d | Queued: %d | Saved: %d", data.Animals, data.Running, data.Queued, data.History),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Background: %s", data.Tick, data.FPS, data.Background),
		10, 55, 16, rl.LightGray,
	)
	next := fmt.Sprintf("Next: %s (%s)", data.Species, data.Color)
	if data.Target >= 0 {
		next += fmt.Sprintf(" | Recolor row %d", data.Target+1)
	}
	rl.DrawText(next, 10, 75, 16, rl.Yellow)

	if h.notice != "" && time.Now().Before(h.noticeUntil) {
		color := h.renderer.Theme.NoticeColor
		if h.noticeErr {
			color = h.renderer.Theme.ErrorColor
		}
		rl.DrawText(h.notice, 10, 95, 16, color)
	}
}

// DrawControls renders the key legend at the given height.
func (h *HUD) DrawControls(y int32, controls string) {
	rl.DrawText(controls, 10, y, 14, rl.Gray)
}

// InfoPanel renders the animal information table.
type InfoPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewInfoPanel creates a hidden info panel.
func NewInfoPanel(x, y, width int32) *InfoPanel {
	return &InfoPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *InfoPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *InfoPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the table when visible, marking the selected row.
func (p *InfoPanel) Draw(table telemetry.InfoTable, maxWeight float64, selected int) {
	if !p.visible {
		return
	}
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	height := int32(len(table.Rows)+3)*(lineHeight+2) + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+padding, p.y+padding, "Animals")
	cols := []int32{0, 30, 110, 170}
	headers := []string{"ID", "Name", "Color", "Weight"}
	for i, hdr := range headers {
		rl.DrawText(hdr, p.x+padding+cols[i], y, r.Theme.FontSize, r.Theme.SectionHeader)
	}
	rl.DrawText("Speed", p.x+p.width-140, y, r.Theme.FontSize, r.Theme.SectionHeader)
	rl.DrawText("Eats", p.x+p.width-60, y, r.Theme.FontSize, r.Theme.SectionHeader)
	y += lineHeight + 2

	for i, row := range table.Rows {
		x := p.x + padding
		if i == selected {
			rl.DrawRectangle(p.x+2, y-1, p.width-4, lineHeight+2, r.Theme.BarBg)
		}
		rl.DrawText(fmt.Sprintf("%d", row.ID), x+cols[0], y, r.Theme.FontSize, r.Theme.ValueColor)
		rl.DrawText(row.Name, x+cols[1], y, r.Theme.FontSize, r.Theme.ValueColor)
		r.DrawColorSwatch(x+cols[2], y, AnimalColor(row.Color))
		rl.DrawText(row.Color, x+cols[2]+14, y, r.Theme.FontSize, r.Theme.ValueColor)

		barWidth := p.width - cols[3] - 150
		fill := barWidth
		if maxWeight > 0 {
			fill = int32(float64(barWidth) * row.Weight / maxWeight)
		}
		rl.DrawRectangle(x+cols[3], y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
		rl.DrawRectangle(x+cols[3], y+2, fill, r.Theme.BarHeight, r.Theme.BarFill)
		rl.DrawText(fmt.Sprintf("%.1f", row.Weight), x+cols[3]+4, y, r.Theme.FontSize, rl.White)

		rl.DrawText(fmt.Sprintf("%d/%d", row.HorSpeed, row.VerSpeed), p.x+p.width-140, y, r.Theme.FontSize, r.Theme.ValueColor)
		rl.DrawText(fmt.Sprintf("%d", row.EatCount), p.x+p.width-60, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += lineHeight + 2
	}

	r.DrawLabelValue(p.x+padding, y+4, "Total eats", fmt.Sprintf("%d", table.TotalEats))
}
