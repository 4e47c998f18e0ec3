package core

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/profiler"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/winsync"
	"github.com/hubastard/casement/engine/world"
)

// runner is the whole per-loop state; the backend handler is its only
// entry point.
type runner struct {
	app     App
	cfg     Config
	eng     *Engine
	sync    *winsync.Sync
	sched   *Scheduler
	closer  *window.CloseWhenRequested
	logger  *slog.Logger
	now     func() time.Time
	appEvs  *event.Reader
	loopEvs *event.Reader
	updated bool
}

// Run wires the backend and executes the event loop until an AppExit is
// observed. It must be called from the thread that created the backend.
func Run(app App, backend platform.Backend, cfg Config) error {
	// Native windowing requires the main OS thread.
	runtime.LockOSThread()

	r := newRunner(app, backend, cfg)
	if cfg.PrimaryWindow != nil {
		window.SpawnPrimary(r.eng.World, *cfg.PrimaryWindow)
	}
	app.OnStart(r.eng)

	r.logger.Info("event loop started", "backend", backend.Info().Name,
		"focused_mode", cfg.Settings.Focused, "unfocused_mode", cfg.Settings.Unfocused)
	err := backend.Run(r.handle)
	app.OnShutdown(r.eng)
	r.logger.Info("event loop stopped", "frames", r.eng.frames, "error", err)
	return err
}

func newRunner(app App, backend platform.Backend, cfg Config) *runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	w := world.New()
	bus := event.NewBus()
	r := &runner{
		app:    app,
		cfg:    cfg,
		logger: logger,
		now:    now,
		sched:  NewScheduler(cfg.Settings),
		sync:   winsync.New(w, bus, backend, winsync.Config{Logger: logger, LoadIcon: cfg.LoadIcon}),
		eng: &Engine{
			World:   w,
			Events:  bus,
			Input:   input.NewState(),
			Layers:  &LayerStack{},
			Backend: backend,
			Logger:  logger,
			start:   now(),
		},
		appEvs:  bus.NewReader(),
		loopEvs: bus.NewReader(),
	}
	if cfg.CloseWhenRequested {
		r.closer = window.NewCloseWhenRequested(bus)
	}
	return r
}

func (r *runner) focused() bool { return window.AnyFocused(r.eng.World) }

// handle processes one backend event in cycle order.
func (r *runner) handle(ev platform.Event, cf *platform.ControlFlow) {
	switch e := ev.(type) {
	case platform.NewEvents:
		r.updated = false
		r.sched.Begin(e.Cause, r.now(), r.focused())

	case platform.WindowEvent:
		r.sched.NoteEvent()
		r.sync.Translator.HandleWindow(e)

	case platform.DeviceEvent:
		r.sync.Translator.HandleDevice(e)

	case platform.Suspended:
		r.logger.Info("application suspended")
		r.sched.SetActive(false)

	case platform.Resumed:
		r.logger.Info("application resumed")
		r.sched.SetActive(true)

	case platform.MainEventsCleared:
		endLifecycle := profiler.Start("lifecycle")
		r.sync.Manager.DestroyClosing()
		r.sync.Manager.CreatePending()
		endLifecycle()
		if r.sched.ShouldUpdate(r.focused()) {
			r.update()
		}

	case platform.RedrawEventsCleared:
		if r.updated {
			r.present()
		}
		redraw, exit := false, false
		for _, le := range r.loopEvs.Read(r.eng.Events) {
			switch le.(type) {
			case window.RequestRedraw, window.Closed:
				// A Closed sent by application logic still has to be
				// dispatched and collected.
				redraw = true
			case window.AppExit:
				exit = true
			}
		}
		*cf = r.sched.End(r.now(), r.focused(), redraw, exit)

	case platform.LoopDestroyed:
		r.sync.Manager.DestroyClosing()
		r.logger.Debug("backend loop destroyed", "windows_left", r.sync.Handles.Len())
	}
}

// update runs one application update: dispatch, closed windows to
// Closing, application logic, the exit check and the push.
func (r *runner) update() {
	defer profiler.Start("update")()
	eng := r.eng
	now := r.now()
	dt := 0.0
	if last := r.sched.LastUpdate(); !last.IsZero() {
		dt = now.Sub(last).Seconds()
	}

	eng.Events.Update()
	// Honoured requests are visible to the app in the same update.
	if r.closer != nil {
		r.closer.Run(eng.World, eng.Events)
	}
	evs := r.appEvs.Read(eng.Events)
	eng.Input.Apply(evs)
	for _, ev := range evs {
		handled := eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) })
		if !handled {
			r.app.OnEvent(eng, ev)
		}
	}
	// Only Closed events consumers have just seen are collected; those sent
	// below are dispatched, then collected, in the next update.
	r.sync.Manager.CollectClosed()

	r.app.OnUpdate(eng, dt)
	eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })

	r.cfg.ExitCondition.Check(eng.World, eng.Events)
	eng.World.Flush()

	endPush := profiler.Start("push")
	r.sync.Syncer.Push()
	endPush()

	r.sched.Ran(now)
	eng.frames++
	r.updated = true
}

// present draws every live window when the backend owns surfaces.
func (r *runner) present() {
	p, ok := r.eng.Backend.(platform.Presenter)
	if !ok {
		return
	}
	defer profiler.Start("present")()
	clear := r.cfg.ClearColor
	for _, e := range r.sync.Handles.Entities() {
		if l, _ := world.Get[window.Lifecycle](r.eng.World, e); l != window.Live {
			continue
		}
		id, _ := r.sync.Handles.ID(e)
		mode, _ := world.Get[window.PresentMode](r.eng.World, e)
		err := p.Present(id, mode, func(size geom.PhysicalSize) {
			if size.IsZero() {
				return
			}
			if rd := r.cfg.Renderer; rd != nil {
				rd.Resize(size.Width, size.Height)
				rd.Clear(clear[0], clear[1], clear[2], clear[3])
			}
			r.app.OnRender(r.eng, e, size)
			r.eng.Layers.ForEach(func(l Layer) { l.OnRender(r.eng, e, size) })
		})
		if err != nil {
			r.logger.Error("presenting window failed", "window", e, "error", err)
		}
	}
}
