// Package platformtest provides a scripted in-memory platform.Backend that
// records every call, for tests of code driving a backend.
package platformtest

import (
	"fmt"
	"image"
	"time"

	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/window"
)

// Call is one recorded backend operation.
type Call struct {
	Op     string
	Window platform.WindowID
	Arg    any
}

// Native is the fake backend's view of one window.
type Native struct {
	Attrs       platform.WindowAttributes
	Title       string
	Size        geom.PhysicalSize
	Position    geom.IVec2
	ScaleFactor float64
	Fullscreen  platform.Fullscreen
	MinSize     geom.PhysicalSize
	MaxSize     geom.PhysicalSize
	Decorated   bool
	Resizable   bool
	Minimized   bool
	Maximized   bool
	Cursor      window.Cursor
	CursorPos   geom.Vec2
	Icon        []image.Image
}

// Backend is a fake platform.Backend. Zero value is not usable; call New.
type Backend struct {
	Calls    []Call
	Windows  map[platform.WindowID]*Native
	Displays []geom.Monitor
	// Primary indexes Displays; -1 means no primary monitor.
	Primary  int
	Platform platform.Info
	// Scale is the factor new windows start with.
	Scale float64
	// Unsupported ops return platform.ErrNotSupported.
	Unsupported map[string]bool
	// Flows records the control flow left by the handler after each cycle.
	Flows []platform.ControlFlow
	// Presented counts Present calls per window.
	Presented map[platform.WindowID]int
	// PresentModes holds the mode of each window's latest Present.
	PresentModes map[platform.WindowID]window.PresentMode
	// BeforeCycle runs before cycle n is delivered; it may Queue events.
	BeforeCycle func(n int)
	// MaxCycles stops Run after this many cycles even without Exit.
	MaxCycles int
	// Now, when set, decides whether a WaitUntil deadline has passed.
	Now func() time.Time

	next    platform.WindowID
	scripts [][]platform.Event
}

func New() *Backend {
	return &Backend{
		Windows: make(map[platform.WindowID]*Native),
		Displays: []geom.Monitor{{
			Name:        "fake-0",
			Size:        geom.PhysicalSize{Width: 1920, Height: 1080},
			ScaleFactor: 1,
			Modes: []geom.VideoMode{
				{Width: 1920, Height: 1080, RefreshRate: 60},
				{Width: 1280, Height: 720, RefreshRate: 60},
			},
		}},
		Unsupported:  make(map[string]bool),
		Presented:    make(map[platform.WindowID]int),
		PresentModes: make(map[platform.WindowID]window.PresentMode),
		Scale:        1,
		Platform:     platform.Info{Name: "fake", TouchOriginTopLeft: true},
		MaxCycles:    64,
	}
}

// Queue appends one cycle's worth of events.
func (b *Backend) Queue(evs ...platform.Event) {
	b.scripts = append(b.scripts, evs)
}

// Ops returns the recorded operation names, optionally only for one op.
func (b *Backend) Ops(filter ...string) []Call {
	if len(filter) == 0 {
		return b.Calls
	}
	var out []Call
	for _, c := range b.Calls {
		for _, f := range filter {
			if c.Op == f {
				out = append(out, c)
			}
		}
	}
	return out
}

// Reset forgets recorded calls.
func (b *Backend) Reset() { b.Calls = nil }

func (b *Backend) record(op string, id platform.WindowID, arg any) (*Native, error) {
	b.Calls = append(b.Calls, Call{Op: op, Window: id, Arg: arg})
	if b.Unsupported[op] {
		return nil, platform.ErrNotSupported
	}
	n, ok := b.Windows[id]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, platform.ErrUnknownWindow)
	}
	return n, nil
}

func (b *Backend) Info() platform.Info { return b.Platform }

func (b *Backend) CreateWindow(attrs platform.WindowAttributes) (platform.WindowID, error) {
	b.Calls = append(b.Calls, Call{Op: "CreateWindow", Arg: attrs})
	if b.Unsupported["CreateWindow"] {
		return 0, platform.ErrNotSupported
	}
	b.next++
	b.Windows[b.next] = &Native{
		Attrs:       attrs,
		Title:       attrs.Title,
		Size:        attrs.InnerSize,
		Position:    attrs.Position,
		ScaleFactor: b.Scale,
		Fullscreen:  attrs.Fullscreen,
		MinSize:     attrs.MinSize,
		MaxSize:     attrs.MaxSize,
		Decorated:   attrs.Decorated,
		Resizable:   attrs.Resizable,
		Minimized:   attrs.Minimized,
		Maximized:   attrs.Maximized,
		Cursor:      attrs.Cursor,
		Icon:        attrs.Icon,
	}
	return b.next, nil
}

func (b *Backend) DestroyWindow(id platform.WindowID) error {
	if _, err := b.record("DestroyWindow", id, nil); err != nil {
		return err
	}
	delete(b.Windows, id)
	return nil
}

func (b *Backend) SetTitle(id platform.WindowID, title string) error {
	n, err := b.record("SetTitle", id, title)
	if err == nil {
		n.Title = title
	}
	return err
}

func (b *Backend) InnerSize(id platform.WindowID) (geom.PhysicalSize, error) {
	n, ok := b.Windows[id]
	if !ok {
		return geom.PhysicalSize{}, platform.ErrUnknownWindow
	}
	return n.Size, nil
}

func (b *Backend) SetInnerSize(id platform.WindowID, size geom.PhysicalSize) error {
	n, err := b.record("SetInnerSize", id, size)
	if err == nil {
		n.Size = size
	}
	return err
}

func (b *Backend) ScaleFactor(id platform.WindowID) (float64, error) {
	n, ok := b.Windows[id]
	if !ok {
		return 0, platform.ErrUnknownWindow
	}
	return n.ScaleFactor, nil
}

func (b *Backend) OuterPosition(id platform.WindowID) (geom.IVec2, error) {
	n, ok := b.Windows[id]
	if !ok {
		return geom.IVec2{}, platform.ErrUnknownWindow
	}
	return n.Position, nil
}

func (b *Backend) SetOuterPosition(id platform.WindowID, pos geom.IVec2) error {
	n, err := b.record("SetOuterPosition", id, pos)
	if err == nil {
		n.Position = pos
	}
	return err
}

func (b *Backend) SetFullscreen(id platform.WindowID, fs platform.Fullscreen) error {
	n, err := b.record("SetFullscreen", id, fs)
	if err == nil {
		n.Fullscreen = fs
	}
	return err
}

func (b *Backend) SetMinInnerSize(id platform.WindowID, size geom.PhysicalSize) error {
	n, err := b.record("SetMinInnerSize", id, size)
	if err == nil {
		n.MinSize = size
	}
	return err
}

func (b *Backend) SetMaxInnerSize(id platform.WindowID, size geom.PhysicalSize) error {
	n, err := b.record("SetMaxInnerSize", id, size)
	if err == nil {
		n.MaxSize = size
	}
	return err
}

func (b *Backend) SetDecorations(id platform.WindowID, decorated bool) error {
	n, err := b.record("SetDecorations", id, decorated)
	if err == nil {
		n.Decorated = decorated
	}
	return err
}

func (b *Backend) SetResizable(id platform.WindowID, resizable bool) error {
	n, err := b.record("SetResizable", id, resizable)
	if err == nil {
		n.Resizable = resizable
	}
	return err
}

func (b *Backend) SetMinimized(id platform.WindowID, minimized bool) error {
	n, err := b.record("SetMinimized", id, minimized)
	if err == nil {
		n.Minimized = minimized
	}
	return err
}

func (b *Backend) SetMaximized(id platform.WindowID, maximized bool) error {
	n, err := b.record("SetMaximized", id, maximized)
	if err == nil {
		n.Maximized = maximized
	}
	return err
}

func (b *Backend) IsMaximized(id platform.WindowID) (bool, error) {
	n, ok := b.Windows[id]
	if !ok {
		return false, platform.ErrUnknownWindow
	}
	return n.Maximized, nil
}

func (b *Backend) SetIcon(id platform.WindowID, icon []image.Image) error {
	n, err := b.record("SetIcon", id, len(icon))
	if err == nil {
		n.Icon = icon
	}
	return err
}

func (b *Backend) SetCursorIcon(id platform.WindowID, icon window.CursorIcon) error {
	n, err := b.record("SetCursorIcon", id, icon)
	if err == nil {
		n.Cursor.Icon = icon
	}
	return err
}

func (b *Backend) SetCursorVisible(id platform.WindowID, visible bool) error {
	n, err := b.record("SetCursorVisible", id, visible)
	if err == nil {
		n.Cursor.Visible = visible
	}
	return err
}

func (b *Backend) SetCursorGrab(id platform.WindowID, grab bool) error {
	n, err := b.record("SetCursorGrab", id, grab)
	if err == nil {
		n.Cursor.Locked = grab
	}
	return err
}

func (b *Backend) SetCursorPosition(id platform.WindowID, pos geom.Vec2) error {
	n, err := b.record("SetCursorPosition", id, pos)
	if err == nil {
		n.CursorPos = pos
	}
	return err
}

func (b *Backend) Monitors() ([]geom.Monitor, error) {
	if len(b.Displays) == 0 {
		return nil, platform.ErrNoMonitor
	}
	return b.Displays, nil
}

func (b *Backend) PrimaryMonitor() (geom.Monitor, bool) {
	if b.Primary < 0 || b.Primary >= len(b.Displays) {
		return geom.Monitor{}, false
	}
	return b.Displays[b.Primary], true
}

// CurrentMonitor reports the first monitor for every known window.
func (b *Backend) CurrentMonitor(id platform.WindowID) (geom.Monitor, bool) {
	if _, ok := b.Windows[id]; !ok || len(b.Displays) == 0 {
		return geom.Monitor{}, false
	}
	return b.Displays[0], true
}

func (b *Backend) Present(id platform.WindowID, mode window.PresentMode, draw func(size geom.PhysicalSize)) error {
	n, ok := b.Windows[id]
	if !ok {
		return platform.ErrUnknownWindow
	}
	b.Presented[id]++
	b.PresentModes[id] = mode
	draw(n.Size)
	return nil
}

// Run delivers each queued cycle framed by NewEvents, MainEventsCleared and
// RedrawEventsCleared. It stops on Exit, at MaxCycles, or when the script
// is exhausted and the handler asked to Wait with nothing to wake it.
func (b *Backend) Run(h platform.Handler) error {
	cf := platform.ControlFlow{Kind: platform.Poll}
	for n := 0; n < b.MaxCycles; n++ {
		if b.BeforeCycle != nil {
			b.BeforeCycle(n)
		}
		var evs []platform.Event
		if n < len(b.scripts) {
			evs = b.scripts[n]
		}
		cause := platform.StartInit
		if n > 0 {
			if cf.Kind == platform.Wait && len(evs) == 0 {
				break
			}
			cause = b.cause(cf, len(evs) > 0)
		}
		h(platform.NewEvents{Cause: cause}, &cf)
		for _, ev := range evs {
			h(ev, &cf)
			b.applyNegotiated(ev)
		}
		h(platform.MainEventsCleared{}, &cf)
		h(platform.RedrawEventsCleared{}, &cf)
		b.Flows = append(b.Flows, cf)
		if cf.Kind == platform.Exit {
			break
		}
	}
	h(platform.LoopDestroyed{}, &cf)
	return nil
}

// cause picks the start cause a real backend would report. Without a
// clock, a cycle with no scripted events counts as the deadline passing.
func (b *Backend) cause(cf platform.ControlFlow, events bool) platform.StartCause {
	switch cf.Kind {
	case platform.Poll:
		return platform.StartPoll
	case platform.WaitUntil:
		if b.Now != nil {
			if b.Now().Before(cf.Deadline) {
				return platform.StartWaitCancelled
			}
			return platform.StartResumeTimeReached
		}
		if events {
			return platform.StartWaitCancelled
		}
		return platform.StartResumeTimeReached
	default:
		return platform.StartWaitCancelled
	}
}

func (b *Backend) applyNegotiated(ev platform.Event) {
	we, ok := ev.(platform.WindowEvent)
	if !ok {
		return
	}
	switch e := we.Event.(type) {
	case platform.ScaleFactorChanged:
		if n, ok := b.Windows[we.Window]; ok {
			n.ScaleFactor = e.ScaleFactor
			if e.NewInnerSize != nil {
				n.Size = *e.NewInnerSize
			}
		}
	case platform.Resized:
		if n, ok := b.Windows[we.Window]; ok {
			n.Size = e.Size
		}
	}
}

// Clock is a manually advanced time source.
type Clock struct{ T time.Time }

func NewClock() *Clock { return &Clock{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *Clock) Now() time.Time          { return c.T }
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

var (
	_ platform.Backend   = (*Backend)(nil)
	_ platform.Presenter = (*Backend)(nil)
)
