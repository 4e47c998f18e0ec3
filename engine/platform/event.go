package platform

import (
	"time"

	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
)

// Event is anything a backend delivers to the loop handler.
type Event interface{ isEvent() }

type StartCause uint8

const (
	StartInit StartCause = iota
	StartPoll
	StartWaitCancelled
	StartResumeTimeReached
)

// NewEvents opens a cycle.
type NewEvents struct{ Cause StartCause }

// WindowEvent targets one native window.
type WindowEvent struct {
	Window WindowID
	Event  WindowEventKind
}

// DeviceEvent is raw device input not tied to a window.
type DeviceEvent struct {
	Event DeviceEventKind
}

type Suspended struct{}
type Resumed struct{}

// MainEventsCleared follows the last input event of a cycle.
type MainEventsCleared struct{}

// RedrawEventsCleared closes a cycle; the handler sets the control flow
// here.
type RedrawEventsCleared struct{}

// LoopDestroyed is the last event before Run returns.
type LoopDestroyed struct{}

func (NewEvents) isEvent()           {}
func (WindowEvent) isEvent()         {}
func (DeviceEvent) isEvent()         {}
func (Suspended) isEvent()           {}
func (Resumed) isEvent()             {}
func (MainEventsCleared) isEvent()   {}
func (RedrawEventsCleared) isEvent() {}
func (LoopDestroyed) isEvent()       {}

type WindowEventKind interface{ isWindowEvent() }

type Resized struct{ Size geom.PhysicalSize }

type CloseRequested struct{}

type KeyboardInput struct {
	ScanCode int
	Key      input.KeyCode
	State    input.ButtonState
	Mods     input.Mod
}

type MouseInput struct {
	Button input.MouseButton
	State  input.ButtonState
}

type MouseWheel struct {
	Unit  input.MouseScrollUnit
	Delta geom.Vec2
}

// Touch locations are physical pixels in the platform's own orientation.
type Touch struct {
	ID       uint64
	Phase    input.TouchPhase
	Location geom.Vec2
	Force    float64
}

// CursorMoved positions are physical pixels, top-left origin.
type CursorMoved struct{ Position geom.Vec2 }

type CursorEntered struct{}
type CursorLeft struct{}
type ReceivedCharacter struct{ Char rune }

// ScaleFactorChanged carries the size the backend proposes for the new
// factor. The handler may rewrite *NewInnerSize; the backend applies the
// final value after the handler returns.
type ScaleFactorChanged struct {
	ScaleFactor  float64
	NewInnerSize *geom.PhysicalSize
}

type Focused struct{ Focused bool }
type DroppedFile struct{ Path string }
type HoveredFile struct{ Path string }
type HoveredFileCancelled struct{}

// Moved positions are physical outer positions.
type Moved struct{ Position geom.IVec2 }

func (Resized) isWindowEvent()              {}
func (CloseRequested) isWindowEvent()       {}
func (KeyboardInput) isWindowEvent()        {}
func (MouseInput) isWindowEvent()           {}
func (MouseWheel) isWindowEvent()           {}
func (Touch) isWindowEvent()                {}
func (CursorMoved) isWindowEvent()          {}
func (CursorEntered) isWindowEvent()        {}
func (CursorLeft) isWindowEvent()           {}
func (ReceivedCharacter) isWindowEvent()    {}
func (ScaleFactorChanged) isWindowEvent()   {}
func (Focused) isWindowEvent()              {}
func (DroppedFile) isWindowEvent()          {}
func (HoveredFile) isWindowEvent()          {}
func (HoveredFileCancelled) isWindowEvent() {}
func (Moved) isWindowEvent()                {}

type DeviceEventKind interface{ isDeviceEvent() }

type MouseMotion struct{ Delta geom.Vec2 }

func (MouseMotion) isDeviceEvent() {}

type ControlFlowKind uint8

const (
	Poll ControlFlowKind = iota
	Wait
	WaitUntil
	Exit
)

// ControlFlow tells the backend how to wait before the next cycle.
type ControlFlow struct {
	Kind     ControlFlowKind
	Deadline time.Time // WaitUntil only
}

// Handler receives every backend event in delivery order.
type Handler func(ev Event, cf *ControlFlow)
