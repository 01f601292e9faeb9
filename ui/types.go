// Package ui draws the command bar, HUD and information panel on top of the
// world view and turns button clicks into commands.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	NoticeColor    rl.Color
	ErrorColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    float32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		NoticeColor:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		ErrorColor:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
		ButtonWidth:    60,
		ButtonHeight:   24,
	}
}

// AnimalColor maps a configured color name to its tint.
func AnimalColor(name string) rl.Color {
	switch name {
	case "Red":
		return rl.Color{R: 220, G: 70, B: 60, A: 255}
	case "Blue":
		return rl.Color{R: 70, G: 110, B: 220, A: 255}
	default:
		return rl.Color{R: 190, G: 150, B: 100, A: 255}
	}
}
