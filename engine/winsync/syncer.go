package winsync

import (
	"errors"
	"log/slog"

	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// Syncer pushes record changes made since the previous Push to the
// backend, one routine per field group.
type Syncer struct {
	world   *world.World
	backend platform.Backend
	handles *Handles
	cfg     Config
	logger  *slog.Logger
	last    uint64
}

func NewSyncer(w *world.World, backend platform.Backend, h *Handles, cfg Config) *Syncer {
	return &Syncer{
		world:   w,
		backend: backend,
		handles: h,
		cfg:     cfg,
		logger:  cfg.logger(),
	}
}

// Push runs every push routine once. Backend failures are logged and do
// not stop the remaining routines.
func (s *Syncer) Push() {
	s.PushTitle()
	s.PushMode()
	s.PushResolution()
	s.PushCursorPosition()
	s.PushCursor()
	s.PushResizeConstraints()
	s.PushPosition()
	s.PushState()
	s.PushDecorations()
	s.PushResizable()
	s.PushIcon()
	s.last = s.world.ChangeTick()
}

// changed calls fn for every live record whose T changed after both the
// previous push and its window's creation.
func changed[T any](s *Syncer, fn func(e world.Entity, id platform.WindowID, v T)) {
	world.EachChanged(s.world, s.last, func(e world.Entity, v T) {
		n, ok := s.handles.byEntity[e]
		if !ok || !world.ChangedSince[T](s.world, e, n.synced) {
			return
		}
		fn(e, n.id, v)
	})
}

func (s *Syncer) report(op string, e world.Entity, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, platform.ErrNotSupported) {
		s.logger.Warn("backend does not support operation", "op", op, "window", e, "error", err)
		return
	}
	s.logger.Error("backend call failed", "op", op, "window", e, "error", err)
}

func (s *Syncer) PushTitle() {
	changed(s, func(e world.Entity, id platform.WindowID, t window.Title) {
		s.report("set_title", e, s.backend.SetTitle(id, string(t)))
	})
}

// PushMode applies fullscreen changes. SizedFullscreen also follows
// changes to the requested size, since the video mode is picked from it.
func (s *Syncer) PushMode() {
	apply := func(e world.Entity, id platform.WindowID, mode window.Mode) {
		res, _ := world.Get[window.Resolution](s.world, e)
		s.handles.byEntity[e].requested = res.RequestedSize()
		fs, ok := fullscreenFor(mode, res, snapshotDisplays(s.backend, id, true))
		if !ok {
			s.logger.Warn("no monitor for fullscreen mode", "window", e, "mode", mode)
			return
		}
		s.report("set_fullscreen", e, s.backend.SetFullscreen(id, fs))
	}
	changed(s, apply)
	changed(s, func(e world.Entity, id platform.WindowID, res window.Resolution) {
		mode, _ := world.Get[window.Mode](s.world, e)
		if mode != window.SizedFullscreen || world.ChangedSince[window.Mode](s.world, e, s.last) {
			return
		}
		if res.RequestedSize() != s.handles.byEntity[e].requested {
			apply(e, id, mode)
		}
	})
}

// PushResolution asks for the requested size at the effective scale
// factor. The record's physical size follows once the backend reports it,
// so a size the backend already has is never asked for. Minimized
// windows are left alone.
func (s *Syncer) PushResolution() {
	changed(s, func(e world.Entity, id platform.WindowID, res window.Resolution) {
		if mode, _ := world.Get[window.Mode](s.world, e); mode != window.Windowed || res.IsZero() {
			return
		}
		target := res.TargetPhysicalSize()
		if target == res.PhysicalSize() {
			return
		}
		s.handles.byEntity[e].requested = res.RequestedSize()
		s.report("set_inner_size", e, s.backend.SetInnerSize(id, target))
	})
}

// PushCursorPosition warps the pointer, converting back to the backend's
// top-left origin.
func (s *Syncer) PushCursorPosition() {
	changed(s, func(e world.Entity, id platform.WindowID, cp window.CursorPosition) {
		n := s.handles.byEntity[e]
		if cp == n.cursorPos {
			return
		}
		n.cursorPos = cp
		p, inside := cp.Physical()
		if !inside {
			return
		}
		res, _ := world.Get[window.Resolution](s.world, e)
		pos := geom.Vec2{X: p.X, Y: float64(res.PhysicalHeight()) - p.Y}
		s.report("set_cursor_position", e, s.backend.SetCursorPosition(id, pos))
	})
}

// PushCursor only calls the setters whose part of the cursor changed.
func (s *Syncer) PushCursor() {
	changed(s, func(e world.Entity, id platform.WindowID, c window.Cursor) {
		n := s.handles.byEntity[e]
		prev := n.cursor
		if c.Icon != prev.Icon {
			s.report("set_cursor_icon", e, s.backend.SetCursorIcon(id, c.Icon))
		}
		if c.Visible != prev.Visible {
			s.report("set_cursor_visible", e, s.backend.SetCursorVisible(id, c.Visible))
		}
		if c.Locked != prev.Locked {
			s.report("set_cursor_grab", e, s.backend.SetCursorGrab(id, c.Locked))
		}
		// The record keeps the desired cursor even when a setter failed.
		n.cursor = c
	})
}

func (s *Syncer) PushResizeConstraints() {
	changed(s, func(e world.Entity, id platform.WindowID, rc window.ResizeConstraints) {
		res, _ := world.Get[window.Resolution](s.world, e)
		scale := res.ScaleFactor()
		rc = rc.Check(s.logger)
		minSize := geom.LogicalSize{Width: rc.MinWidth, Height: rc.MinHeight}.ToPhysical(scale)
		s.report("set_min_inner_size", e, s.backend.SetMinInnerSize(id, minSize))
		var maxSize geom.PhysicalSize
		if rc.HasMax() {
			maxSize = geom.LogicalSize{Width: rc.MaxWidth, Height: rc.MaxHeight}.ToPhysical(scale)
		}
		s.report("set_max_inner_size", e, s.backend.SetMaxInnerSize(id, maxSize))
	})
}

func (s *Syncer) PushPosition() {
	changed(s, func(e world.Entity, id platform.WindowID, pos window.Position) {
		n := s.handles.byEntity[e]
		if pos == n.position {
			return
		}
		n.position = pos
		if pos.IsAutomatic() {
			return
		}
		res, _ := world.Get[window.Resolution](s.world, e)
		d := snapshotDisplays(s.backend, id, true)
		pt, ok, err := geom.ResolvePosition(pos, res.Size(), res.ScaleFactor(), d.all, d.primary, d.current)
		if err != nil {
			s.logger.Warn("could not resolve window position", "window", e, "error", err)
			return
		}
		if ok {
			s.report("set_outer_position", e, s.backend.SetOuterPosition(id, pt))
		}
	})
}

func (s *Syncer) PushState() {
	changed(s, func(e world.Entity, id platform.WindowID, st window.State) {
		n := s.handles.byEntity[e]
		if st == n.state {
			return
		}
		n.state = st
		switch st {
		case window.Minimized:
			s.report("set_minimized", e, s.backend.SetMinimized(id, true))
		case window.Maximized:
			s.report("set_maximized", e, s.backend.SetMaximized(id, true))
		default:
			s.report("set_minimized", e, s.backend.SetMinimized(id, false))
			s.report("set_maximized", e, s.backend.SetMaximized(id, false))
		}
	})
}

func (s *Syncer) PushDecorations() {
	changed(s, func(e world.Entity, id platform.WindowID, d window.Decorations) {
		s.report("set_decorations", e, s.backend.SetDecorations(id, d == window.Decorated))
	})
}

func (s *Syncer) PushResizable() {
	changed(s, func(e world.Entity, id platform.WindowID, r window.Resizing) {
		s.report("set_resizable", e, s.backend.SetResizable(id, r == window.Resizable))
	})
}

func (s *Syncer) PushIcon() {
	if s.cfg.LoadIcon == nil {
		return
	}
	changed(s, func(e world.Entity, id platform.WindowID, icon window.Icon) {
		if icon.Path == "" {
			s.report("set_icon", e, s.backend.SetIcon(id, nil))
			return
		}
		imgs, err := s.cfg.LoadIcon(icon.Path)
		if err != nil {
			s.logger.Warn("loading window icon failed", "window", e, "path", icon.Path, "error", err)
			return
		}
		s.report("set_icon", e, s.backend.SetIcon(id, imgs))
	})
}
