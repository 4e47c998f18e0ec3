package core

import (
	"image"
	"log/slog"
	"time"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                                            // called once before the first cycle
	OnUpdate(e *Engine, dt float64)                               // called whenever the scheduler lets logic run
	OnRender(e *Engine, win world.Entity, size geom.PhysicalSize) // once per live window after an update
	OnEvent(e *Engine, ev any)                                    // domain and input events not handled by a layer
	OnShutdown(e *Engine)                                         // before Run returns
}

// Engine exposes core services to the App.
type Engine struct {
	World   *world.World
	Events  *event.Bus
	Input   *input.State
	Layers  *LayerStack
	Backend platform.Backend
	Logger  *slog.Logger

	start  time.Time
	frames uint64
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Frames counts completed updates.
func (e *Engine) Frames() uint64 { return e.frames }

// RequestRedraw asks for another update even in a low-power mode.
func (e *Engine) RequestRedraw() { e.Events.Send(window.RequestRedraw{}) }

// Exit stops the event loop at the end of the current cycle.
func (e *Engine) Exit() { e.Events.Send(window.AppExit{}) }

// PrimaryWindow returns the primary window record, if any.
func (e *Engine) PrimaryWindow() (world.Entity, bool) { return window.PrimaryWindow(e.World) }

// SpawnWindow opens a new window; it becomes Live in the next cycle.
func (e *Engine) SpawnWindow(d window.Descriptor) world.Entity { return window.Spawn(e.World, d) }

// Renderer draws into the surface a backend presents.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
}

// Config for the engine run.
type Config struct {
	Settings      Settings
	ExitCondition window.ExitCondition
	// CloseWhenRequested closes windows as soon as the user asks.
	CloseWhenRequested bool
	// PrimaryWindow is spawned and designated primary before OnStart.
	PrimaryWindow *window.Descriptor
	ClearColor    [4]float32 // RGBA
	Renderer      Renderer
	Logger        *slog.Logger
	LoadIcon      func(path string) ([]image.Image, error)
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// DefaultConfig opens one primary window, closes windows on request and
// exits once all are closed.
func DefaultConfig() Config {
	d := window.DefaultDescriptor()
	return Config{
		Settings:           GameSettings(),
		ExitCondition:      window.OnAllClosed,
		CloseWhenRequested: true,
		PrimaryWindow:      &d,
		ClearColor:         [4]float32{0.1, 0.1, 0.12, 1},
	}
}
