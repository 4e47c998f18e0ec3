// Package window is the declarative window record: one world record per
// window, each property an independently change-tracked field, plus the
// domain events and the close/exit policies built on them.
package window

import (
	"github.com/hubastard/casement/engine/world"
)

// Descriptor bundles every field of a new window.
type Descriptor struct {
	Title             Title
	Resolution        Resolution
	Position          Position
	Mode              Mode
	Decorations       Decorations
	Resizing          Resizing
	Transparency      Transparency
	PresentMode       PresentMode
	Cursor            Cursor
	ResizeConstraints ResizeConstraints
	State             State
	Icon              Icon
}

func DefaultDescriptor() Descriptor {
	return Descriptor{
		Title:             DefaultTitle,
		Resolution:        DefaultResolution(),
		Cursor:            DefaultCursor(),
		ResizeConstraints: DefaultResizeConstraints(),
	}
}

// Spawn creates a Pending window record from d. The backend window is
// created by the lifecycle manager on the next cycle.
func Spawn(w *world.World, d Descriptor) world.Entity {
	e := w.Spawn()
	world.Insert(w, e, Window{})
	world.Insert(w, e, d.Title)
	world.Insert(w, e, d.Resolution)
	world.Insert(w, e, d.Position)
	world.Insert(w, e, d.Mode)
	world.Insert(w, e, d.Decorations)
	world.Insert(w, e, d.Resizing)
	world.Insert(w, e, d.Transparency)
	world.Insert(w, e, d.PresentMode)
	world.Insert(w, e, d.Cursor)
	world.Insert(w, e, CursorPosition{})
	world.Insert(w, e, d.ResizeConstraints)
	world.Insert(w, e, Focus(false))
	world.Insert(w, e, d.State)
	world.Insert(w, e, Pending)
	if d.Icon.Path != "" {
		world.Insert(w, e, d.Icon)
	}
	return e
}

// SpawnPrimary spawns a window and designates it primary, replacing any
// previous designation.
func SpawnPrimary(w *world.World, d Descriptor) world.Entity {
	e := Spawn(w, d)
	SetPrimary(w, e)
	return e
}

// EnsureDefaults inserts a default for every field a window record lacks,
// for records built field by field instead of through Spawn.
func EnsureDefaults(w *world.World, e world.Entity) {
	world.InsertIfAbsent(w, e, DefaultTitle)
	world.InsertIfAbsent(w, e, DefaultResolution())
	world.InsertIfAbsent(w, e, Position{})
	world.InsertIfAbsent(w, e, Windowed)
	world.InsertIfAbsent(w, e, Decorated)
	world.InsertIfAbsent(w, e, Resizable)
	world.InsertIfAbsent(w, e, Opaque)
	world.InsertIfAbsent(w, e, AutoVsync)
	world.InsertIfAbsent(w, e, DefaultCursor())
	world.InsertIfAbsent(w, e, CursorPosition{})
	world.InsertIfAbsent(w, e, DefaultResizeConstraints())
	world.InsertIfAbsent(w, e, Focus(false))
	world.InsertIfAbsent(w, e, Normal)
	world.InsertIfAbsent(w, e, Pending)
}

// Windows returns every window record in creation order.
func Windows(w *world.World) []world.Entity {
	return w.Query(world.With[Window](w))
}

// Primary designates the main window. At most one exists; its absence is a
// legal state.
type Primary struct {
	Window world.Entity
}

func SetPrimary(w *world.World, e world.Entity) {
	world.SetResource(w, Primary{Window: e})
}

func PrimaryWindow(w *world.World) (world.Entity, bool) {
	p, ok := world.Resource[Primary](w)
	if !ok || !w.Alive(p.Window) {
		return 0, false
	}
	return p.Window, true
}

// ClearPrimary drops the designation if it points at e.
func ClearPrimary(w *world.World, e world.Entity) bool {
	p, ok := world.Resource[Primary](w)
	if !ok || p.Window != e {
		return false
	}
	return world.RemoveResource[Primary](w)
}

// AnyFocused reports whether any window currently has focus.
func AnyFocused(w *world.World) bool {
	focused := false
	world.Each(w, func(_ world.Entity, f Focus) {
		if f {
			focused = true
		}
	})
	return focused
}
