// Package platform is the contract between the window synchroniser and a
// native windowing library, plus the glfw implementation of it. All calls
// must come from the thread running Backend.Run.
package platform

import (
	"errors"
	"image"

	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/window"
)

// WindowID is a backend-native window identifier.
type WindowID uint64

var (
	// ErrNotSupported reports an operation the platform cannot perform.
	ErrNotSupported = errors.New("operation not supported by platform")
	// ErrUnknownWindow reports an id the backend does not know.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrNoMonitor reports that no suitable monitor is connected.
	ErrNoMonitor = errors.New("no monitor available")
)

type FullscreenKind uint8

const (
	NotFullscreen FullscreenKind = iota
	BorderlessFullscreen
	ExclusiveFullscreen
)

// Fullscreen describes the fullscreen state to apply. Monitor is ignored for
// NotFullscreen; Mode is only used for ExclusiveFullscreen.
type Fullscreen struct {
	Kind    FullscreenKind
	Monitor geom.Monitor
	Mode    geom.VideoMode
}

// WindowAttributes is the initial configuration of a native window.
type WindowAttributes struct {
	Title       string
	InnerSize   geom.PhysicalSize
	Position    geom.IVec2
	HasPosition bool
	Fullscreen  Fullscreen
	MinSize     geom.PhysicalSize
	MaxSize     geom.PhysicalSize // zero means unbounded
	Maximized   bool
	Minimized   bool
	Resizable   bool
	Decorated   bool
	Transparent bool
	Cursor      window.Cursor
	Icon        []image.Image
}

// Info describes platform conventions the translator must respect.
type Info struct {
	Name string
	// TouchOriginTopLeft is set when touch coordinates grow downwards.
	TouchOriginTopLeft bool
}

// Backend is the native windowing library as seen by the engine.
type Backend interface {
	Info() Info

	CreateWindow(attrs WindowAttributes) (WindowID, error)
	DestroyWindow(id WindowID) error

	SetTitle(id WindowID, title string) error
	InnerSize(id WindowID) (geom.PhysicalSize, error)
	SetInnerSize(id WindowID, size geom.PhysicalSize) error
	ScaleFactor(id WindowID) (float64, error)
	OuterPosition(id WindowID) (geom.IVec2, error)
	SetOuterPosition(id WindowID, pos geom.IVec2) error
	SetFullscreen(id WindowID, fs Fullscreen) error
	SetMinInnerSize(id WindowID, size geom.PhysicalSize) error
	SetMaxInnerSize(id WindowID, size geom.PhysicalSize) error
	SetDecorations(id WindowID, decorated bool) error
	SetResizable(id WindowID, resizable bool) error
	SetMinimized(id WindowID, minimized bool) error
	SetMaximized(id WindowID, maximized bool) error
	IsMaximized(id WindowID) (bool, error)
	SetIcon(id WindowID, icon []image.Image) error

	SetCursorIcon(id WindowID, icon window.CursorIcon) error
	SetCursorVisible(id WindowID, visible bool) error
	SetCursorGrab(id WindowID, grab bool) error
	// SetCursorPosition warps the pointer; pos is physical, top-left origin.
	SetCursorPosition(id WindowID, pos geom.Vec2) error

	Monitors() ([]geom.Monitor, error)
	PrimaryMonitor() (geom.Monitor, bool)
	CurrentMonitor(id WindowID) (geom.Monitor, bool)

	// Run delivers events to h until h sets the control flow to Exit.
	Run(h Handler) error
}

// Presenter is implemented by backends that own a drawable surface per
// window. draw runs with the window's surface current, and the frame is
// shown according to mode.
type Presenter interface {
	Present(id WindowID, mode window.PresentMode, draw func(size geom.PhysicalSize)) error
}
