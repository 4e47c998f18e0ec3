// Package input defines the engine's input event shapes and the per-update
// button state derived from them.
package input

import (
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/world"
)

type KeyboardInput struct {
	Window   world.Entity
	ScanCode int
	Key      KeyCode
	State    ButtonState
	Mods     Mod
}

type MouseButtonInput struct {
	Window world.Entity
	Button MouseButton
	State  ButtonState
}

type MouseScrollUnit uint8

const (
	ScrollLine MouseScrollUnit = iota
	ScrollPixel
)

type MouseWheel struct {
	Window world.Entity
	Unit   MouseScrollUnit
	X, Y   float64
}

// MouseMotion is raw device movement, not tied to any window.
type MouseMotion struct {
	Delta geom.Vec2
}

type TouchPhase uint8

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// TouchInput positions are logical pixels with a bottom-left origin.
type TouchInput struct {
	Window   world.Entity
	ID       uint64
	Phase    TouchPhase
	Position geom.Vec2
	Force    float64 // 0 when the device does not report pressure
}

type ReceivedCharacter struct {
	Window world.Entity
	Char   rune
}
