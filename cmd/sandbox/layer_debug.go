package main

import (
	"fmt"

	"github.com/hubastard/casement/engine/core"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// LayerDebug logs window events and keeps a frame counter in each title.
type LayerDebug struct {
	title string
}

func (l *LayerDebug) OnAttach(e *core.Engine) {}

func (l *LayerDebug) OnDetach(e *core.Engine) {
	e.Logger.Debug("debug layer detached", "frames", e.Frames(), "uptime", e.Uptime())
}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {
	if e.Frames()%30 != 0 {
		return
	}
	p, ok := e.PrimaryWindow()
	if !ok {
		return
	}
	res, _ := world.Get[window.Resolution](e.World, p)
	title := fmt.Sprintf("%s | frame %d | %.0fx%.0f @%.2g", l.title, e.Frames(), res.Width(), res.Height(), res.ScaleFactor())
	world.Set(e.World, p, window.Title(title))
}

func (l *LayerDebug) OnRender(e *core.Engine, win world.Entity, size geom.PhysicalSize) {}

func (l *LayerDebug) OnEvent(e *core.Engine, ev any) bool {
	log := e.Logger
	switch v := ev.(type) {
	case window.Created:
		log.Debug("created", "window", v.Window)
	case window.Closed:
		log.Debug("closed", "window", v.Window)
	case window.Resized:
		log.Debug("resized", "window", v.Window, "width", v.Width, "height", v.Height)
	case window.ScaleFactorChanged:
		log.Debug("scale factor changed", "window", v.Window, "scale_factor", v.ScaleFactor)
	case window.Moved:
		log.Debug("moved", "window", v.Window, "x", v.Position.X, "y", v.Position.Y)
	case window.Focused:
		log.Debug("focus", "window", v.Window, "focused", v.Focused)
	case window.FileDragAndDrop:
		if v.Kind == window.DroppedFile {
			log.Info("file dropped", "window", v.Window, "path", v.Path)
		}
	}
	return false
}
