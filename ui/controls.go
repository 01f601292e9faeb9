package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/scenario"
)

// CommandKind identifies a user command issued from the control bar or keyboard.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdAddAnimal
	CmdSuspend
	CmdResume
	CmdRecolor
	CmdClear
	CmdFood
	CmdInfo
	CmdExportInfo
	CmdSave
	CmdRestore
	CmdBackground
	CmdExit
)

func (k CommandKind) String() string {
	switch k {
	case CmdAddAnimal:
		return "add"
	case CmdSuspend:
		return "sleep"
	case CmdResume:
		return "wake"
	case CmdRecolor:
		return "recolor"
	case CmdClear:
		return "clear"
	case CmdFood:
		return "food"
	case CmdInfo:
		return "info"
	case CmdExportInfo:
		return "export"
	case CmdSave:
		return "save"
	case CmdRestore:
		return "restore"
	case CmdBackground:
		return "background"
	case CmdExit:
		return "exit"
	default:
		return "none"
	}
}

// Command is one user request. Descriptor is set for CmdAddAnimal, Food
// for CmdFood, and Target and Color for CmdRecolor.
type Command struct {
	Kind       CommandKind
	Descriptor scenario.Descriptor
	Food       components.FoodKind
	Target     int
	Color      string
}

func recolorCommand(form *scenario.Form, animals int) Command {
	return Command{Kind: CmdRecolor, Target: form.Target(animals), Color: form.Color()}
}

// CommandBar renders the command buttons and the add-animal form along the
// bottom of the screen.
type CommandBar struct {
	renderer *Renderer
	form     *scenario.Form
	x, y     float32
	width    float32
}

// NewCommandBar creates a command bar anchored at (x, y).
func NewCommandBar(form *scenario.Form, x, y, width float32) *CommandBar {
	return &CommandBar{
		renderer: NewRenderer(),
		form:     form,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the vertical space the bar occupies.
func (c *CommandBar) Height() float32 {
	t := c.renderer.Theme
	return t.ButtonHeight*2 + float32(t.Padding)*3
}

// Draw renders the bar and returns the command of the clicked button, if any.
// animals is the number of live animals the recolor target cycles over.
func (c *CommandBar) Draw(animals int) Command {
	r := c.renderer
	t := r.Theme
	pad := float32(t.Padding)
	r.DrawPanel(int32(c.x), int32(c.y), int32(c.width), int32(c.Height()))

	cmd := Command{}
	set := func(k CommandKind) {
		if cmd.Kind == CmdNone {
			cmd.Kind = k
		}
	}

	// Row 1: add-animal form.
	x := c.x + pad
	y := c.y + pad
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth + 20, Height: t.ButtonHeight}, c.form.Species()) {
		c.form.NextSpecies()
	}
	x += t.ButtonWidth + 20 + pad
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, c.form.Color()) {
		c.form.NextColor()
	}
	x += t.ButtonWidth + pad

	l := c.form.Limits()
	size := gui.SliderBar(rl.Rectangle{X: x + 30, Y: y + 4, Width: 110, Height: t.ButtonHeight - 8},
		"Size", fmt.Sprintf("%d", c.form.Size), float32(c.form.Size), float32(l.MinSize), float32(l.MaxSize))
	c.form.SetSize(int(size))
	x += 110 + 30 + 40

	hor := gui.SliderBar(rl.Rectangle{X: x + 30, Y: y + 4, Width: 70, Height: t.ButtonHeight - 8},
		"Hor", fmt.Sprintf("%d", c.form.HorSpeed), float32(c.form.HorSpeed), float32(l.MinSpeed), float32(l.MaxSpeed))
	x += 70 + 30 + 30
	ver := gui.SliderBar(rl.Rectangle{X: x + 30, Y: y + 4, Width: 70, Height: t.ButtonHeight - 8},
		"Ver", fmt.Sprintf("%d", c.form.VerSpeed), float32(c.form.VerSpeed), float32(l.MinSpeed), float32(l.MaxSpeed))
	c.form.SetSpeeds(int(hor+0.5), int(ver+0.5))
	x += 70 + 30 + 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth + 20, Height: t.ButtonHeight}, "Add Animal") {
		set(CmdAddAnimal)
		cmd.Descriptor = c.form.Descriptor()
	}
	x += t.ButtonWidth + 20 + pad

	target := "Row -"
	if i := c.form.Target(animals); i >= 0 {
		target = fmt.Sprintf("Row %d", i+1)
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, target) {
		c.form.NextTarget(animals)
	}

	// Row 2: world commands.
	x = c.x + pad
	y += t.ButtonHeight + pad
	button := func(label string, k CommandKind) {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, label) {
			set(k)
		}
		x += t.ButtonWidth + 4
	}
	food := func(label string, kind components.FoodKind) {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, label) {
			set(CmdFood)
			cmd.Food = kind
		}
		x += t.ButtonWidth + 4
	}

	button("Sleep", CmdSuspend)
	button("Wake up", CmdResume)
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: t.ButtonWidth, Height: t.ButtonHeight}, "Recolor") {
		if cmd.Kind == CmdNone {
			cmd = recolorCommand(c.form, animals)
		}
	}
	x += t.ButtonWidth + 4
	button("Clear", CmdClear)
	food("Lettuce", components.Lettuce)
	food("Cabbage", components.Cabbage)
	food("Meat", components.MeatChunk)
	button("Info", CmdInfo)
	button("Save", CmdSave)
	button("Restore", CmdRestore)
	button("Backgrnd", CmdBackground)
	button("Exit", CmdExit)

	return cmd
}

// KeyCommand maps the keyboard shortcuts to commands.
func KeyCommand(form *scenario.Form, animals int) Command {
	switch {
	case rl.IsKeyPressed(rl.KeyA):
		return Command{Kind: CmdAddAnimal, Descriptor: form.Descriptor()}
	case rl.IsKeyPressed(rl.KeyTab):
		form.NextSpecies()
	case rl.IsKeyPressed(rl.KeyC):
		form.NextColor()
	case rl.IsKeyPressed(rl.KeySpace):
		return Command{Kind: CmdSuspend}
	case rl.IsKeyPressed(rl.KeyW):
		return Command{Kind: CmdResume}
	case rl.IsKeyPressed(rl.KeyT):
		form.NextTarget(animals)
	case rl.IsKeyPressed(rl.KeyK):
		return recolorCommand(form, animals)
	case rl.IsKeyPressed(rl.KeyX):
		return Command{Kind: CmdClear}
	case rl.IsKeyPressed(rl.KeyOne):
		return Command{Kind: CmdFood, Food: components.Lettuce}
	case rl.IsKeyPressed(rl.KeyTwo):
		return Command{Kind: CmdFood, Food: components.Cabbage}
	case rl.IsKeyPressed(rl.KeyThree):
		return Command{Kind: CmdFood, Food: components.MeatChunk}
	case rl.IsKeyPressed(rl.KeyI):
		return Command{Kind: CmdInfo}
	case rl.IsKeyPressed(rl.KeyE):
		return Command{Kind: CmdExportInfo}
	case rl.IsKeyPressed(rl.KeyS):
		return Command{Kind: CmdSave}
	case rl.IsKeyPressed(rl.KeyR):
		return Command{Kind: CmdRestore}
	case rl.IsKeyPressed(rl.KeyB):
		return Command{Kind: CmdBackground}
	}
	return Command{}
}
