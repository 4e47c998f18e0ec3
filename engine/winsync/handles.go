package winsync

import (
	"maps"
	"slices"

	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/world"
)

// native is what the table remembers about one backend window.
type native struct {
	id platform.WindowID
	// synced is the world change tick right after creation; field writes
	// up to it are already part of the window's initial state.
	synced uint64
	// The values below are what the backend last applied or reported.
	// Pushes skip a field whose record value still equals them, so state
	// the Translator folds in is observable without being echoed back.
	cursor    window.Cursor
	requested geom.LogicalSize
	cursorPos window.CursorPosition
	position  window.Position
	state     window.State
}

// Handles maps records to native windows and back. A record is in the
// table exactly while its native window exists.
type Handles struct {
	byEntity map[world.Entity]*native
	byID     map[platform.WindowID]world.Entity
	retired  map[platform.WindowID]struct{}
}

func NewHandles() *Handles {
	return &Handles{
		byEntity: map[world.Entity]*native{},
		byID:     map[platform.WindowID]world.Entity{},
		retired:  map[platform.WindowID]struct{}{},
	}
}

func (h *Handles) insert(e world.Entity, n *native) {
	h.byEntity[e] = n
	h.byID[n.id] = e
	delete(h.retired, n.id)
}

func (h *Handles) remove(e world.Entity) (platform.WindowID, bool) {
	n, ok := h.byEntity[e]
	if !ok {
		return 0, false
	}
	delete(h.byEntity, e)
	delete(h.byID, n.id)
	h.retired[n.id] = struct{}{}
	return n.id, true
}

func (h *Handles) ID(e world.Entity) (platform.WindowID, bool) {
	n, ok := h.byEntity[e]
	if !ok {
		return 0, false
	}
	return n.id, true
}

func (h *Handles) Entity(id platform.WindowID) (world.Entity, bool) {
	e, ok := h.byID[id]
	return e, ok
}

// Retired reports whether id belonged to a window destroyed earlier.
func (h *Handles) Retired(id platform.WindowID) bool {
	_, ok := h.retired[id]
	return ok
}

func (h *Handles) Len() int { return len(h.byEntity) }

// Entities lists records with a native window in creation order.
func (h *Handles) Entities() []world.Entity {
	return slices.Sorted(maps.Keys(h.byEntity))
}
