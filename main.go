package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/audio"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/game"
	"github.com/pthm-cable/menagerie/renderer"
	"github.com/pthm-cable/menagerie/scenario"
	"github.com/pthm-cable/menagerie/telemetry"
	"github.com/pthm-cable/menagerie/termview"
	"github.com/pthm-cable/menagerie/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("term", false, "Render in the terminal instead of a window")
	scenarioPath := flag.String("scenario", "", "Scenario file with the initial animals and food")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N arbitration passes (0 = unlimited)")
	withAudio := flag.Bool("audio", false, "Play meal sounds (overrides config)")
	debug := flag.Bool("debug", false, "Log behavior loop transitions")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logOut := os.Stdout
	if *term {
		// stdout belongs to the terminal view
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	opts := game.Options{
		Config:   cfg,
		Output:   output,
		LogStats: *logStats,
	}
	if *withAudio || cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the simulation runs without sound
			slog.Warn("audio initialization failed", "error", err)
		} else {
			defer sm.Cleanup()
			opts.Sound = sm
		}
	}

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	if *scenarioPath != "" {
		if err := g.LoadScenario(*scenarioPath); err != nil {
			if errors.Is(err, game.ErrWorldFull) || errors.Is(err, scenario.ErrInvalidDescriptor) {
				slog.Warn("scenario partially applied", "path", *scenarioPath, "error", err)
			} else {
				slog.Error("failed to load scenario", "path", *scenarioPath, "error", err)
				return
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *headless:
		runHeadless(ctx, g, cfg, *maxTicks)
	case *term:
		if err := runTerminal(ctx, g, cfg, *maxTicks); err != nil {
			slog.Error("terminal view failed", "error", err)
		}
	default:
		runWindow(g, cfg, *maxTicks)
	}
}

// runHeadless arbitrates on a fixed cadence with no rendering.
func runHeadless(ctx context.Context, g *game.Game, cfg *config.Config, maxTicks int64) {
	slog.Info("starting headless simulation",
		"stats_window", cfg.Telemetry.StatsWindow,
		"interval", cfg.Derived.ArbitrationInterval,
		"max_ticks", maxTicks,
	)

	ticker := time.NewTicker(cfg.Derived.ArbitrationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return
		case <-ticker.C:
			g.Step()
			if maxTicks > 0 && g.Tick() >= maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}
}

func runTerminal(ctx context.Context, g *game.Game, cfg *config.Config, maxTicks int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	err = termview.New(screen, g).Run(ctx, cfg.Derived.ArbitrationInterval, maxTicks)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runWindow is the graphical mode: one arbitration pass per frame.
func runWindow(g *game.Game, cfg *config.Config, maxTicks int64) {
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	form := scenario.NewForm(cfg)
	bar := ui.NewCommandBar(form, 0, float32(height), float32(width))

	rl.InitWindow(width, height+int32(bar.Height()), "Menagerie")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := renderer.NewWorldRenderer(width, height, ui.AnimalColor)
	defer view.Unload()
	hud := ui.NewHUD()
	info := ui.NewInfoPanel(width-380, 10, 370)

	for !rl.WindowShouldClose() {
		g.Step()

		rl.BeginDrawing()
		v := g.World().View()
		view.Draw(v)

		pool := g.World().Pool()
		target := form.Target(len(v.Animals))
		hud.Draw(ui.HUDData{
			Title:      "Menagerie",
			Animals:    len(v.Animals),
			Running:    pool.Running(),
			Queued:     pool.Queued(),
			History:    g.History().Len(),
			Tick:       g.Tick(),
			FPS:        rl.GetFPS(),
			Background: v.Background.String(),
			Species:    form.Species(),
			Color:      form.Color(),
			Target:     target,
		})
		hud.DrawControls(height-20, "[A]dd [Tab]species [C]olor [Space]sleep [W]ake [T]arget [K]recolor [X]clear [1-3]food [I]nfo [E]xport [S]ave [R]estore [B]ackground")
		if info.IsVisible() {
			table := g.Info()
			info.Draw(table, maxWeight(table), target)
		}
		cmd := bar.Draw(len(v.Animals))
		rl.EndDrawing()

		if cmd.Kind == ui.CmdNone {
			cmd = ui.KeyCommand(form, len(v.Animals))
		}
		if !apply(g, cmd, hud, info) {
			break
		}
		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

// apply runs a UI command against the game. It returns false on exit.
func apply(g *game.Game, cmd ui.Command, hud *ui.HUD, info *ui.InfoPanel) bool {
	const noticeFor = 3 * time.Second

	report := func(err error, ok string) {
		if err != nil {
			hud.Notify(err.Error(), true, noticeFor)
			return
		}
		hud.Notify(ok, false, noticeFor)
	}

	switch cmd.Kind {
	case ui.CmdExit:
		return false
	case ui.CmdAddAnimal:
		adm, err := g.AddAnimal(cmd.Descriptor)
		report(err, fmt.Sprintf("%s %s", cmd.Descriptor.Species, adm))
	case ui.CmdSuspend:
		g.SuspendAll()
	case ui.CmdResume:
		g.ResumeAll()
	case ui.CmdRecolor:
		id, err := g.RecolorAt(cmd.Target, cmd.Color)
		report(err, fmt.Sprintf("animal %d is now %s", id, cmd.Color))
	case ui.CmdClear:
		g.Clear()
	case ui.CmdFood:
		g.SetFood(cmd.Food)
	case ui.CmdInfo:
		info.Toggle()
	case ui.CmdExportInfo:
		path, err := g.ExportInfo()
		if err == nil && path == "" {
			err = errors.New("no output directory")
		}
		report(err, "exported "+path)
	case ui.CmdSave:
		report(g.Save(), "saved")
	case ui.CmdRestore:
		report(g.Restore(), "restored")
	case ui.CmdBackground:
		hud.Notify("background "+g.NextBackground().String(), false, noticeFor)
	}
	return true
}

func maxWeight(t telemetry.InfoTable) float64 {
	m := 0.0
	for _, r := range t.Rows {
		m = max(m, r.Weight)
	}
	return m
}
