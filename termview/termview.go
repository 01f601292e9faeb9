// Package termview renders the world in a terminal with tcell and maps key
// presses to game commands.
package termview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/game"
	"github.com/pthm-cable/menagerie/scenario"
)

const statusRows = 3

const keyHelp = "a add  tab species  c color  +/- size  space sleep  w wake  t target  k recolor  x clear  1/2/3 food  s save  r restore  b bg  i info  q quit"

// View draws a scaled copy of the world on a tcell screen.
type View struct {
	screen tcell.Screen
	game   *game.Game
	form   *scenario.Form

	showInfo bool
	notice   string
	noticeAt time.Time
}

// New creates a view over an initialized screen.
func New(screen tcell.Screen, g *game.Game) *View {
	return &View{
		screen: screen,
		game:   g,
		form:   scenario.NewForm(g.Config()),
	}
}

// Run steps the game every interval and redraws until ctx is cancelled or
// the user quits.
func (v *View) Run(ctx context.Context, interval time.Duration, maxTicks int64) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			v.game.Step()
			v.Draw()
			if maxTicks > 0 && v.game.Tick() >= maxTicks {
				return nil
			}
		}
	}
}

// HandleKey applies the command bound to ev. It returns false on quit.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	g := v.game
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		v.form.NextSpecies()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'a':
		adm, err := g.AddAnimal(v.form.Descriptor())
		if err != nil {
			v.notify(err.Error())
		} else {
			v.notify(fmt.Sprintf("%s %s", v.form.Species(), adm))
		}
	case 'c':
		v.form.NextColor()
	case '+', '=':
		v.form.SetSize(v.form.Size + 10)
	case '-':
		v.form.SetSize(v.form.Size - 10)
	case ' ':
		g.SuspendAll()
	case 'w':
		g.ResumeAll()
	case 't':
		v.form.NextTarget(g.World().Len())
	case 'k':
		id, err := g.RecolorAt(v.form.Target(g.World().Len()), v.form.Color())
		v.report(err, fmt.Sprintf("animal %d is now %s", id, v.form.Color()))
	case 'x':
		g.Clear()
	case '1':
		g.SetFood(components.Lettuce)
	case '2':
		g.SetFood(components.Cabbage)
	case '3':
		g.SetFood(components.MeatChunk)
	case 's':
		v.report(g.Save(), "saved")
	case 'r':
		v.report(g.Restore(), "restored")
	case 'b':
		v.notify("background " + g.NextBackground().String())
	case 'i':
		v.showInfo = !v.showInfo
	case 'e':
		path, err := g.ExportInfo()
		v.report(err, "exported "+path)
	}
	return true
}

func (v *View) report(err error, ok string) {
	if err != nil {
		if !errors.Is(err, game.ErrEmptyHistory) {
			slog.Debug("command failed", "error", err)
		}
		v.notify(err.Error())
		return
	}
	v.notify(ok)
}

func (v *View) notify(msg string) {
	v.notice = msg
	v.noticeAt = time.Now()
}

// Draw renders one frame.
func (v *View) Draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	fieldH := h - statusRows
	if w <= 0 || fieldH <= 0 {
		s.Show()
		return
	}

	view := v.game.World().View()
	bounds := v.game.World().Params().Bounds
	cell := func(p components.Position) (int, int) {
		return p.X * w / bounds.Width, p.Y * fieldH / bounds.Height
	}

	if view.Background == components.BackgroundGreen || view.Background == components.BackgroundImage {
		bg := tcell.StyleDefault.Background(tcell.ColorDarkGreen)
		for y := 0; y < fieldH; y++ {
			for x := 0; x < w; x++ {
				s.SetContent(x, y, ' ', nil, bg)
			}
		}
	}

	for _, f := range []*game.FoodView{view.Plant, view.Meat} {
		if f == nil {
			continue
		}
		x, y := cell(f.Pos)
		r, style := '*', tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if f.Kind == components.MeatChunk {
			r, style = '#', tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		s.SetContent(x, y, r, nil, style)
	}

	for _, a := range view.Animals {
		x, y := cell(a.Pos)
		style := tcell.StyleDefault.Foreground(animalColor(a.Color)).Bold(true)
		if a.Suspended {
			style = style.Dim(true)
		}
		r, _ := utf8.DecodeRuneInString(a.Species)
		if a.XDir < 0 {
			r = unicode.ToLower(r)
		}
		s.SetContent(x, y, r, nil, style)
	}

	if v.showInfo {
		v.drawInfo(w)
	}
	v.drawStatus(fieldH, w)
	s.Show()
}

func (v *View) drawInfo(w int) {
	table := v.game.Info()
	y := 0
	put(v.screen, 0, y, w, fmt.Sprintf("%-4s %-9s %-8s %9s %5s %4s", "ID", "Name", "Color", "Weight", "Speed", "Eats"), tcell.StyleDefault.Reverse(true))
	target := v.form.Target(len(table.Rows))
	for i, r := range table.Rows {
		y++
		style := tcell.StyleDefault
		if i == target {
			style = style.Bold(true).Foreground(tcell.ColorYellow)
		}
		put(v.screen, 0, y, w, fmt.Sprintf("%-4d %-9s %-8s %9.2f %2d/%-2d %4d", r.ID, r.Name, r.Color, r.Weight, r.HorSpeed, r.VerSpeed, r.EatCount), style)
	}
	put(v.screen, 0, y+1, w, fmt.Sprintf("total eats %d", table.TotalEats), tcell.StyleDefault.Reverse(true))
}

func (v *View) drawStatus(top, w int) {
	world := v.game.World()
	pool := world.Pool()
	status := fmt.Sprintf("animals %d  running %d  queued %d  saved %d  tick %d  next %s size %d %s",
		world.Len(), pool.Running(), pool.Queued(), v.game.History().Len(), v.game.Tick(),
		v.form.Species(), v.form.Size, v.form.Color())
	put(v.screen, 0, top, w, status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	if v.notice != "" && time.Since(v.noticeAt) < 3*time.Second {
		put(v.screen, 0, top+1, w, v.notice, tcell.StyleDefault.Foreground(tcell.ColorAqua))
	}
	put(v.screen, 0, top+2, w, keyHelp, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func put(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func animalColor(name string) tcell.Color {
	switch name {
	case "Red":
		return tcell.ColorRed
	case "Blue":
		return tcell.ColorBlue
	default:
		return tcell.ColorOlive
	}
}
