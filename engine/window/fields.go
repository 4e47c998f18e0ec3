package window

import "github.com/hubastard/casement/engine/geom"

// Window marks a record as a window.
type Window struct{}

// Title is the text shown in the window's title bar.
type Title string

const DefaultTitle Title = "casement"

// Position aliases the geometry type so records read naturally.
type Position = geom.Position

type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorCrosshair
	CursorHand
	CursorText
	CursorMove
	CursorWait
	CursorHelp
	CursorNotAllowed
	CursorEwResize
	CursorNsResize
)

// Cursor is the pointer's appearance and confinement over the window.
type Cursor struct {
	Icon    CursorIcon
	Visible bool
	Locked  bool
}

func DefaultCursor() Cursor { return Cursor{Icon: CursorDefault, Visible: true} }

// CursorPosition is the pointer location in physical pixels with a
// bottom-left origin, absent while the pointer is outside the window.
type CursorPosition struct {
	pos    geom.Vec2
	inside bool
}

func NewCursorPosition(p geom.Vec2) CursorPosition { return CursorPosition{pos: p, inside: true} }

func (c CursorPosition) Physical() (geom.Vec2, bool) { return c.pos, c.inside }

// Logical returns the position divided by the given scale factor.
func (c CursorPosition) Logical(scale float64) (geom.Vec2, bool) {
	return c.pos.Div(scale), c.inside
}

type Mode uint8

const (
	Windowed Mode = iota
	BorderlessFullscreen
	SizedFullscreen
	Fullscreen
)

func (m Mode) String() string {
	switch m {
	case BorderlessFullscreen:
		return "borderless_fullscreen"
	case SizedFullscreen:
		return "sized_fullscreen"
	case Fullscreen:
		return "fullscreen"
	default:
		return "windowed"
	}
}

type Decorations uint8

const (
	Decorated Decorations = iota
	Undecorated
)

type Resizing uint8

const (
	Resizable Resizing = iota
	Unresizable
)

type Transparency uint8

const (
	Opaque Transparency = iota
	Transparent
)

// PresentMode picks how a window's frames are synchronized with the
// display. The backend applies it when presenting.
type PresentMode uint8

const (
	AutoVsync   PresentMode = iota // wait for vertical blank
	AutoNoVsync                    // present as soon as drawn, tearing allowed
)

func (p PresentMode) String() string {
	if p == AutoNoVsync {
		return "auto_no_vsync"
	}
	return "auto_vsync"
}

// Focus is true while the window has keyboard focus.
type Focus bool

type State uint8

const (
	Normal State = iota
	Minimized
	Maximized
)

func (s State) String() string {
	switch s {
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// Icon names an image file to use as the window icon.
type Icon struct {
	Path string
}

// Lifecycle is the record's place in Pending -> Live -> Closing. A Gone
// record no longer exists.
type Lifecycle uint8

const (
	Pending Lifecycle = iota
	Live
	Closing
)

func (l Lifecycle) String() string {
	switch l {
	case Live:
		return "live"
	case Closing:
		return "closing"
	default:
		return "pending"
	}
}
