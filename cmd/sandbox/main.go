package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/casement/engine/assets"
	"github.com/hubastard/casement/engine/colors"
	"github.com/hubastard/casement/engine/config"
	"github.com/hubastard/casement/engine/core"
	"github.com/hubastard/casement/engine/geom"
	glbackend "github.com/hubastard/casement/engine/gfx/gl"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/profiler"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// glRenderer defers to the GL renderer once the first context exists.
type glRenderer struct{ r *glbackend.Renderer }

func (g *glRenderer) Resize(w, h int) {
	if g.r != nil {
		g.r.Resize(w, h)
	}
}

func (g *glRenderer) Clear(r, gr, b, a float32) {
	if g.r != nil {
		g.r.Clear(r, gr, b, a)
	}
}

type App struct {
	gl    *glRenderer
	title string
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 16)
	e.Layers.Push(&LayerDebug{title: a.title})
	e.Layers.Push(&LayerControls{})
	e.Layers.ForEach(func(l core.Layer) { l.OnAttach(e) })
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	window.CloseOnEsc(e.World, e.Events, e.Input.Keys)
}

// OnRender marks the cursor; its position is already bottom-left based,
// like GL's window coordinates.
func (a *App) OnRender(e *core.Engine, win world.Entity, size geom.PhysicalSize) {
	if a.gl.r == nil {
		return
	}
	cp, _ := world.Get[window.CursorPosition](e.World, win)
	pos, inside := cp.Physical()
	if !inside {
		return
	}
	color := colors.Yellow
	if f, _ := world.Get[window.Focus](e.World, win); !f {
		color = colors.Gray
	}
	a.gl.r.DrawMarker(float32(pos.X/float64(size.Width)), float32(pos.Y/float64(size.Height)), color)
}

func (a *App) OnEvent(e *core.Engine, ev any) {}

func (a *App) OnShutdown(e *core.Engine) {
	for l, ok := e.Layers.Pop(); ok; l, ok = e.Layers.Pop() {
		l.OnDetach(e)
	}
	if a.gl.r != nil {
		a.gl.r.Shutdown()
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("config", "casement.yaml", "configuration file; defaults apply when it does not exist")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	gl := &glRenderer{}
	backend, err := platform.NewGLFW(platform.GLFWConfig{
		Logger: logger,
		OnContext: func() error {
			r, err := glbackend.New()
			if err != nil {
				return err
			}
			gl.r = r
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer backend.Terminate()

	ecfg := cfg.Engine()
	ecfg.Renderer = gl
	ecfg.Logger = logger
	ecfg.LoadIcon = assets.LoadIcon
	return core.Run(&App{gl: gl, title: cfg.Title}, backend, ecfg)
}
