package termview

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/game"
)

func newTestView(t *testing.T) (*View, tcell.SimulationScreen) {
	t.Helper()
	cfg := config.Default()
	cfg.Derived.Cycle = time.Hour

	g, err := game.NewGame(game.Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	return New(screen, g), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestHandleKeyCommands(t *testing.T) {
	v, _ := newTestView(t)
	w := v.game.World()

	if !v.HandleKey(key('a')) {
		t.Fatal("add key quit the view")
	}
	if w.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", w.Len())
	}

	v.HandleKey(key('1'))
	if w.Plant() == nil {
		t.Error("lettuce key did not place a plant")
	}
	v.HandleKey(key('s'))
	if v.game.History().Len() != 1 {
		t.Errorf("History().Len() = %d, want 1", v.game.History().Len())
	}
	v.HandleKey(key('x'))
	if w.Len() != 0 {
		t.Errorf("Len() after clear = %d, want 0", w.Len())
	}
	v.HandleKey(key('r'))
	if w.Len() != 1 {
		t.Errorf("Len() after restore = %d, want 1", w.Len())
	}

	if v.HandleKey(key('q')) {
		t.Error("q did not quit")
	}
	if v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not quit")
	}
}

func TestHandleKeyForm(t *testing.T) {
	v, _ := newTestView(t)
	first := v.form.Species()

	v.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if v.form.Species() == first {
		t.Error("tab did not change species")
	}

	size := v.form.Size
	v.HandleKey(key('+'))
	if v.form.Size != size+10 {
		t.Errorf("Size = %d, want %d", v.form.Size, size+10)
	}
}

func TestHandleKeyRecolor(t *testing.T) {
	v, _ := newTestView(t)
	v.HandleKey(key('a'))
	v.HandleKey(key('a'))

	v.HandleKey(key('t'))
	v.HandleKey(key('c'))
	want := v.form.Color()
	v.HandleKey(key('k'))

	rows := v.game.Info().Rows
	if rows[1].Color != want {
		t.Errorf("row 1 color = %q, want %q", rows[1].Color, want)
	}
	if rows[0].Color == want {
		t.Errorf("row 0 recolored to %q", want)
	}
	if !strings.Contains(v.notice, "is now "+want) {
		t.Errorf("notice = %q", v.notice)
	}
}

func TestDrawShowsAnimalsAndStatus(t *testing.T) {
	v, screen := newTestView(t)
	v.HandleKey(key('a'))
	v.HandleKey(key('3'))
	v.Draw()

	text := screenText(screen)
	if !strings.Contains(text, "animals 1") {
		t.Errorf("status line missing from screen:\n%s", text)
	}
	if !strings.Contains(text, "#") {
		t.Errorf("meat marker missing from screen:\n%s", text)
	}
	if !strings.ContainsAny(text, "Ll") {
		t.Errorf("animal marker missing from screen:\n%s", text)
	}
}
