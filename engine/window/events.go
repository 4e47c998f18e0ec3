package window

import (
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/world"
)

// Created is sent once the backend window for a record exists.
type Created struct {
	Window world.Entity
}

// Resized carries the new logical size.
type Resized struct {
	Window        world.Entity
	Width, Height float64
}

// CloseRequested is sent when the user asks to close a window. Nothing is
// closed until a policy answers with Close.
type CloseRequested struct {
	Window world.Entity
}

// Closed starts the window's teardown. Its record survives until the next
// cycle so consumers can still read it.
type Closed struct {
	Window world.Entity
}

// CursorMoved carries the logical position, bottom-left origin.
type CursorMoved struct {
	Window   world.Entity
	Position geom.Vec2
}

type CursorEntered struct {
	Window world.Entity
}

type CursorLeft struct {
	Window world.Entity
}

type Focused struct {
	Window  world.Entity
	Focused bool
}

// ScaleFactorChanged is sent when the effective factor changes.
type ScaleFactorChanged struct {
	Window      world.Entity
	ScaleFactor float64
}

// BackendScaleFactorChanged is sent for every OS-reported factor, even when
// an override hides it.
type BackendScaleFactorChanged struct {
	Window      world.Entity
	ScaleFactor float64
}

// Moved carries the new outer position in physical pixels.
type Moved struct {
	Window   world.Entity
	Position geom.IVec2
}

type FileDragKind uint8

const (
	DroppedFile FileDragKind = iota
	HoveredFile
	HoveredFileCancelled
)

// FileDragAndDrop reports a file dragged over or onto a window. Path is
// empty for HoveredFileCancelled.
type FileDragAndDrop struct {
	Window world.Entity
	Kind   FileDragKind
	Path   string
}

// RequestRedraw asks the event loop to run another update even when its
// update mode would otherwise keep waiting.
type RequestRedraw struct{}

// AppExit asks the event loop to stop.
type AppExit struct{}
