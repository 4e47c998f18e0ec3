package winsync

import (
	"log/slog"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// Manager drives each record through Pending -> Live -> Closing -> Gone.
type Manager struct {
	world   *world.World
	bus     *event.Bus
	backend platform.Backend
	handles *Handles
	cfg     Config
	logger  *slog.Logger
	closed  *event.Reader
	closing []world.Entity
}

func NewManager(w *world.World, bus *event.Bus, backend platform.Backend, h *Handles, cfg Config) *Manager {
	return &Manager{
		world:   w,
		bus:     bus,
		backend: backend,
		handles: h,
		cfg:     cfg,
		logger:  cfg.logger(),
		closed:  bus.NewReader(),
	}
}

// CreatePending creates native windows for every Pending record and
// returns how many were created.
func (m *Manager) CreatePending() int {
	n := 0
	for _, e := range window.Windows(m.world) {
		window.EnsureDefaults(m.world, e)
		if l, _ := world.Get[window.Lifecycle](m.world, e); l != window.Pending {
			continue
		}
		if m.create(e) {
			n++
		}
	}
	return n
}

func (m *Manager) create(e world.Entity) bool {
	d := snapshotDisplays(m.backend, 0, false)
	attrs := m.attributes(e, d)
	id, err := m.backend.CreateWindow(attrs)
	if err != nil {
		m.logger.Error("creating window failed", "window", e, "error", err)
		window.ClearPrimary(m.world, e)
		m.world.Despawn(e)
		return false
	}

	res, _ := world.Get[window.Resolution](m.world, e)
	if scale, err := m.backend.ScaleFactor(id); err == nil {
		res.SetScaleFactor(scale)
	}
	if size, err := m.backend.InnerSize(id); err == nil {
		res.SetPhysical(size.Width, size.Height)
	}
	world.Set(m.world, e, res)
	world.Set(m.world, e, window.Live)
	n := &native{id: id, cursor: attrs.Cursor, requested: res.RequestedSize()}
	n.cursorPos, _ = world.Get[window.CursorPosition](m.world, e)
	n.position, _ = world.Get[window.Position](m.world, e)
	n.state, _ = world.Get[window.State](m.world, e)
	n.synced = m.world.ChangeTick()
	m.handles.insert(e, n)

	title, _ := world.Get[window.Title](m.world, e)
	m.logger.Info("window created", "window", e, "native_id", id, "title", string(title),
		"width", res.PhysicalWidth(), "height", res.PhysicalHeight(), "scale_factor", res.ScaleFactor())
	m.bus.Send(window.Created{Window: e})
	return true
}

// attributes composes the initial native configuration from the record.
// Physical sizes use the override, else the scale of the monitor the
// window will most likely open on; the real factor is read back after.
func (m *Manager) attributes(e world.Entity, d displays) platform.WindowAttributes {
	title, _ := world.Get[window.Title](m.world, e)
	res, _ := world.Get[window.Resolution](m.world, e)
	pos, _ := world.Get[window.Position](m.world, e)
	mode, _ := world.Get[window.Mode](m.world, e)
	dec, _ := world.Get[window.Decorations](m.world, e)
	rz, _ := world.Get[window.Resizing](m.world, e)
	tr, _ := world.Get[window.Transparency](m.world, e)
	cur, _ := world.Get[window.Cursor](m.world, e)
	rc, _ := world.Get[window.ResizeConstraints](m.world, e)
	st, _ := world.Get[window.State](m.world, e)

	scale := res.ScaleFactor()
	if _, ok := res.ScaleFactorOverride(); !ok {
		if mon, ok := d.target(); ok && mon.ScaleFactor > 0 {
			scale = mon.ScaleFactor
		}
	}
	rc = rc.Check(m.logger)

	attrs := platform.WindowAttributes{
		Title:       string(title),
		InnerSize:   res.RequestedSize().ToPhysical(scale),
		MinSize:     geom.LogicalSize{Width: rc.MinWidth, Height: rc.MinHeight}.ToPhysical(scale),
		Maximized:   st == window.Maximized,
		Minimized:   st == window.Minimized,
		Resizable:   rz == window.Resizable,
		Decorated:   dec == window.Decorated,
		Transparent: tr == window.Transparent,
		Cursor:      cur,
	}
	if rc.HasMax() {
		attrs.MaxSize = geom.LogicalSize{Width: rc.MaxWidth, Height: rc.MaxHeight}.ToPhysical(scale)
	}

	if fs, ok := fullscreenFor(mode, res, d); ok {
		attrs.Fullscreen = fs
	} else {
		m.logger.Warn("no monitor for fullscreen mode, opening windowed", "window", e, "mode", mode)
	}

	pt, ok, err := geom.ResolvePosition(pos, res.RequestedSize(), scale, d.all, d.primary, d.current)
	switch {
	case err != nil:
		m.logger.Warn("could not resolve window position", "window", e, "error", err)
	case ok:
		attrs.Position, attrs.HasPosition = pt, true
	}

	if icon, ok := world.Get[window.Icon](m.world, e); ok && icon.Path != "" && m.cfg.LoadIcon != nil {
		imgs, err := m.cfg.LoadIcon(icon.Path)
		if err != nil {
			m.logger.Warn("loading window icon failed", "window", e, "path", icon.Path, "error", err)
		}
		attrs.Icon = imgs
	}
	return attrs
}

// CollectClosed moves every window named by a Closed event to Closing and
// queues it for destruction in the next cycle.
func (m *Manager) CollectClosed() int {
	n := 0
	for _, c := range event.Of[window.Closed](m.closed.Read(m.bus)) {
		l, ok := world.Get[window.Lifecycle](m.world, c.Window)
		if !ok || l == window.Closing {
			continue
		}
		world.Set(m.world, c.Window, window.Closing)
		m.closing = append(m.closing, c.Window)
		n++
	}
	return n
}

// DestroyClosing destroys the windows queued by the previous
// CollectClosed, removing their records and any primary designation.
func (m *Manager) DestroyClosing() int {
	queue := m.closing
	m.closing = nil
	for _, e := range queue {
		if id, ok := m.handles.remove(e); ok {
			if err := m.backend.DestroyWindow(id); err != nil {
				m.logger.Error("destroying window failed", "window", e, "native_id", id, "error", err)
			}
		}
		if window.ClearPrimary(m.world, e) {
			m.logger.Debug("primary window cleared", "window", e)
		}
		m.world.Despawn(e)
		m.logger.Info("window destroyed", "window", e)
	}
	return len(queue)
}

// Closing lists windows waiting for destruction.
func (m *Manager) Closing() []world.Entity { return m.closing }
