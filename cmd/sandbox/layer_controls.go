package main

import (
	"fmt"

	"github.com/hubastard/casement/engine/core"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/profiler"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// LayerControls maps keys to window record edits on the window that got
// the key:
//
//	N    open another window
//	C    toggle cursor lock
//	F11  toggle borderless fullscreen
//	M    toggle maximized
//	V    toggle vsync
//	F12  dump the profile (profile builds)
type LayerControls struct {
	spawned int
}

func (l *LayerControls) OnAttach(e *core.Engine) {}

func (l *LayerControls) OnDetach(e *core.Engine) {}

func (l *LayerControls) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerControls) OnRender(e *core.Engine, win world.Entity, size geom.PhysicalSize) {}

func (l *LayerControls) OnEvent(e *core.Engine, ev any) bool {
	k, ok := ev.(input.KeyboardInput)
	if !ok || !k.State.IsPressed() {
		return false
	}
	w := e.World
	switch k.Key {
	case input.KeyN:
		l.spawned++
		d := window.DefaultDescriptor()
		d.Title = window.Title(fmt.Sprintf("casement #%d", l.spawned+1))
		d.Resolution = window.NewResolution(640, 480)
		d.Position = geom.CenteredOn(geom.CurrentMonitor())
		e.SpawnWindow(d)
	case input.KeyC:
		world.Update(w, k.Window, func(c *window.Cursor) {
			c.Locked = !c.Locked
			c.Visible = !c.Locked
		})
	case input.KeyF11:
		world.Update(w, k.Window, func(m *window.Mode) {
			if *m == window.Windowed {
				*m = window.BorderlessFullscreen
			} else {
				*m = window.Windowed
			}
		})
	case input.KeyM:
		world.Update(w, k.Window, func(s *window.State) {
			if *s == window.Maximized {
				*s = window.Normal
			} else {
				*s = window.Maximized
			}
		})
	case input.KeyV:
		world.Update(w, k.Window, func(p *window.PresentMode) {
			if *p == window.AutoVsync {
				*p = window.AutoNoVsync
			} else {
				*p = window.AutoVsync
			}
		})
	case input.KeyF12:
		path, err := profiler.OpenProfilerGraph()
		if err != nil {
			e.Logger.Warn("profile dump failed", "error", err)
		} else if path != "" {
			e.Logger.Info("profile written", "path", path)
		}
	default:
		return false
	}
	e.RequestRedraw()
	return true
}
