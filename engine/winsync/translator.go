package winsync

import (
	"log/slog"
	"math"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// Translator folds backend events into window records and domain events,
// in delivery order. Record writes are ordinary changes; each also lands
// in the handle's last-applied values so the Syncer does not echo it.
type Translator struct {
	world   *world.World
	bus     *event.Bus
	backend platform.Backend
	handles *Handles
	logger  *slog.Logger
	info    platform.Info
}

func NewTranslator(w *world.World, bus *event.Bus, backend platform.Backend, h *Handles, cfg Config) *Translator {
	return &Translator{
		world:   w,
		bus:     bus,
		backend: backend,
		handles: h,
		logger:  cfg.logger(),
		info:    backend.Info(),
	}
}

// HandleDevice translates raw device input.
func (t *Translator) HandleDevice(ev platform.DeviceEvent) {
	switch e := ev.Event.(type) {
	case platform.MouseMotion:
		t.bus.Send(input.MouseMotion{Delta: e.Delta})
	}
}

// HandleWindow translates one window event. Events for unknown ids are
// logged and dropped.
func (t *Translator) HandleWindow(ev platform.WindowEvent) {
	e, ok := t.handles.Entity(ev.Window)
	if !ok {
		if t.handles.Retired(ev.Window) {
			t.logger.Debug("event for destroyed window dropped", "native_id", ev.Window)
		} else {
			t.logger.Warn("event for unknown window dropped", "native_id", ev.Window)
		}
		return
	}
	res, ok := world.Get[window.Resolution](t.world, e)
	if !ok {
		t.logger.Warn("window record lost its resolution", "window", e)
		return
	}

	n := t.handles.byEntity[e]

	switch we := ev.Event.(type) {
	case platform.Resized:
		res.Acknowledge(we.Size.Width, we.Size.Height)
		n.requested = res.RequestedSize()
		world.Set(t.world, e, res)
		t.bus.Send(window.Resized{Window: e, Width: res.Width(), Height: res.Height()})

	case platform.CloseRequested:
		t.bus.Send(window.CloseRequested{Window: e})

	case platform.KeyboardInput:
		t.bus.Send(input.KeyboardInput{Window: e, ScanCode: we.ScanCode, Key: we.Key, State: we.State, Mods: we.Mods})

	case platform.MouseInput:
		t.bus.Send(input.MouseButtonInput{Window: e, Button: we.Button, State: we.State})

	case platform.MouseWheel:
		t.bus.Send(input.MouseWheel{Window: e, Unit: we.Unit, X: we.Delta.X, Y: we.Delta.Y})

	case platform.Touch:
		pos := we.Location.Div(res.ScaleFactor())
		if t.info.TouchOriginTopLeft {
			pos.Y = res.Height() - pos.Y
		}
		t.bus.Send(input.TouchInput{Window: e, ID: we.ID, Phase: we.Phase, Position: pos, Force: we.Force})

	case platform.CursorMoved:
		p := geom.Vec2{X: we.Position.X, Y: float64(res.PhysicalHeight()) - we.Position.Y}
		n.cursorPos = window.NewCursorPosition(p)
		world.Set(t.world, e, n.cursorPos)
		t.bus.Send(window.CursorMoved{Window: e, Position: p.Div(res.ScaleFactor())})

	case platform.CursorEntered:
		t.bus.Send(window.CursorEntered{Window: e})

	case platform.CursorLeft:
		n.cursorPos = window.CursorPosition{}
		world.Set(t.world, e, n.cursorPos)
		t.bus.Send(window.CursorLeft{Window: e})

	case platform.ReceivedCharacter:
		t.bus.Send(input.ReceivedCharacter{Window: e, Char: we.Char})

	case platform.ScaleFactorChanged:
		t.scaleFactorChanged(e, n, res, we)

	case platform.Focused:
		world.Set(t.world, e, window.Focus(we.Focused))
		t.bus.Send(window.Focused{Window: e, Focused: we.Focused})

	case platform.DroppedFile:
		t.bus.Send(window.FileDragAndDrop{Window: e, Kind: window.DroppedFile, Path: we.Path})
	case platform.HoveredFile:
		t.bus.Send(window.FileDragAndDrop{Window: e, Kind: window.HoveredFile, Path: we.Path})
	case platform.HoveredFileCancelled:
		t.bus.Send(window.FileDragAndDrop{Window: e, Kind: window.HoveredFileCancelled})

	case platform.Moved:
		scale := res.ScaleFactor()
		logical := window.Position(geom.At(
			int(math.Round(float64(we.Position.X)/scale)),
			int(math.Round(float64(we.Position.Y)/scale)),
		))
		n.position = logical
		world.Set(t.world, e, logical)
		t.bus.Send(window.Moved{Window: e, Position: we.Position})
	}

	t.refreshState(e, n)
}

// scaleFactorChanged records the new backend factor. With an override the
// backend's proposed size is replaced by the override-driven one; without,
// the change is announced, the new size becomes the request and, if the
// logical size moved, a resize is announced too.
func (t *Translator) scaleFactorChanged(e world.Entity, n *native, res window.Resolution, ev platform.ScaleFactorChanged) {
	t.bus.Send(window.BackendScaleFactorChanged{Window: e, ScaleFactor: ev.ScaleFactor})

	prevFactor := res.ScaleFactor()
	prevLogical := res.Size()
	res.SetScaleFactor(ev.ScaleFactor)

	_, overridden := res.ScaleFactorOverride()
	if overridden {
		if ev.NewInnerSize != nil {
			*ev.NewInnerSize = res.TargetPhysicalSize()
		}
	} else if ev.ScaleFactor != prevFactor {
		t.bus.Send(window.ScaleFactorChanged{Window: e, ScaleFactor: ev.ScaleFactor})
	}

	if ev.NewInnerSize != nil {
		if overridden {
			res.SetPhysical(ev.NewInnerSize.Width, ev.NewInnerSize.Height)
		} else {
			res.Acknowledge(ev.NewInnerSize.Width, ev.NewInnerSize.Height)
		}
	}
	n.requested = res.RequestedSize()
	world.Set(t.world, e, res)

	if cur := res.Size(); cur != prevLogical {
		t.bus.Send(window.Resized{Window: e, Width: cur.Width, Height: cur.Height})
	}
}

// refreshState derives the window state from the backend's maximized flag
// and whether the surface collapsed to zero.
func (t *Translator) refreshState(e world.Entity, n *native) {
	cur, ok := world.Get[window.State](t.world, e)
	if !ok {
		return
	}
	res, _ := world.Get[window.Resolution](t.world, e)
	next := window.Normal
	if res.IsZero() {
		next = window.Minimized
	} else if maximized, err := t.backend.IsMaximized(n.id); err == nil && maximized {
		next = window.Maximized
	}
	if next != cur {
		t.logger.Debug("window state changed", "window", e, "from", cur, "to", next)
		n.state = next
		world.Set(t.world, e, next)
	}
}
