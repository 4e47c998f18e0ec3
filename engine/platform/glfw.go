package platform

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/window"
)

// GLFWConfig configures the glfw backend.
type GLFWConfig struct {
	Logger *slog.Logger
	// OnContext runs once, with the first window's GL context current.
	OnContext func() error
}

type glfwWindow struct {
	w        *glfw.Window
	visible  bool
	locked   bool
	windowed [4]int // x, y, w, h before entering fullscreen
	lastPos  geom.Vec2
	hasPos   bool
	interval int // swap interval last applied, -1 before the first frame
}

// GLFW implements Backend and Presenter on top of glfw 3.3 with one
// OpenGL context per window, all sharing objects with the first.
type GLFW struct {
	cfg     GLFWConfig
	logger  *slog.Logger
	windows map[WindowID]*glfwWindow
	next    WindowID
	queue   []Event
	cursors map[glfw.StandardCursor]*glfw.Cursor
	glReady bool
}

// NewGLFW initialises glfw. Must be called on the main thread.
func NewGLFW(cfg GLFWConfig) (*GLFW, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GLFW{
		cfg:     cfg,
		logger:  logger,
		windows: make(map[WindowID]*glfwWindow),
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}, nil
}

// Terminate destroys any remaining windows and releases glfw.
func (g *GLFW) Terminate() {
	for id := range g.windows {
		_ = g.DestroyWindow(id)
	}
	for _, c := range g.cursors {
		c.Destroy()
	}
	glfw.Terminate()
}

func (g *GLFW) Info() Info {
	return Info{Name: "glfw " + glfw.GetVersionString(), TouchOriginTopLeft: true}
}

// guard turns glfw's programmer-error panics into returned errors.
func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			gerr, ok := r.(*glfw.Error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("glfw %s: %w", op, gerr)
		}
	}()
	fn()
	return nil
}

func (g *GLFW) lookup(id WindowID) (*glfwWindow, error) {
	gw, ok := g.windows[id]
	if !ok {
		return nil, fmt.Errorf("window %d: %w", id, ErrUnknownWindow)
	}
	return gw, nil
}

func (g *GLFW) share() *glfw.Window {
	for _, gw := range g.windows {
		return gw.w
	}
	return nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (g *GLFW) CreateWindow(attrs WindowAttributes) (WindowID, error) {
	var (
		win *glfw.Window
		err error
	)
	perr := guard("create window", func() {
		glfw.DefaultWindowHints()
		// GL 3.2+ core profile (Mac requires forward-compatible flag).
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 2)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.Samples, 0)
		glfw.WindowHint(glfw.Resizable, boolHint(attrs.Resizable))
		glfw.WindowHint(glfw.Decorated, boolHint(attrs.Decorated))
		glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(attrs.Transparent))
		glfw.WindowHint(glfw.Maximized, boolHint(attrs.Maximized))

		w, h := attrs.InnerSize.Width, attrs.InnerSize.Height
		var mon *glfw.Monitor
		switch attrs.Fullscreen.Kind {
		case BorderlessFullscreen:
			if mon = findMonitor(attrs.Fullscreen.Monitor.Name); mon != nil {
				vm := mon.GetVideoMode()
				glfw.WindowHint(glfw.RedBits, vm.RedBits)
				glfw.WindowHint(glfw.GreenBits, vm.GreenBits)
				glfw.WindowHint(glfw.BlueBits, vm.BlueBits)
				glfw.WindowHint(glfw.RefreshRate, vm.RefreshRate)
				w, h = vm.Width, vm.Height
			}
		case ExclusiveFullscreen:
			if mon = findMonitor(attrs.Fullscreen.Monitor.Name); mon != nil {
				glfw.WindowHint(glfw.RefreshRate, attrs.Fullscreen.Mode.RefreshRate)
				w, h = attrs.Fullscreen.Mode.Width, attrs.Fullscreen.Mode.Height
			}
		}
		win, err = glfw.CreateWindow(max(w, 1), max(h, 1), attrs.Title, mon, g.share())
	})
	if perr != nil {
		return 0, perr
	}
	if err != nil {
		return 0, err
	}

	g.next++
	id := g.next
	gw := &glfwWindow{w: win, visible: attrs.Cursor.Visible, locked: attrs.Cursor.Locked, interval: -1}
	g.windows[id] = gw

	win.MakeContextCurrent()
	if !g.glReady && g.cfg.OnContext != nil {
		if err := g.cfg.OnContext(); err != nil {
			_ = g.DestroyWindow(id)
			return 0, err
		}
	}
	g.glReady = true

	if attrs.HasPosition && attrs.Fullscreen.Kind == NotFullscreen {
		win.SetPos(attrs.Position.X, attrs.Position.Y)
	}
	g.applyLimits(gw, attrs.MinSize, attrs.MaxSize)
	g.applyCursorMode(gw)
	if err := g.SetCursorIcon(id, attrs.Cursor.Icon); err != nil {
		g.logger.Debug("cursor icon fell back to arrow", "window", id, "error", err)
	}
	if len(attrs.Icon) > 0 {
		if err := g.SetIcon(id, attrs.Icon); err != nil {
			g.logger.Warn("window icon rejected", "window", id, "error", err)
		}
	}
	if attrs.Minimized {
		win.Iconify()
	}
	g.install(id, gw)
	return id, nil
}

// install routes glfw callbacks into the cycle queue.
func (g *GLFW) install(id WindowID, gw *glfwWindow) {
	win := gw.w
	push := func(ev WindowEventKind) { g.queue = append(g.queue, WindowEvent{Window: id, Event: ev}) }

	win.SetCloseCallback(func(w *glfw.Window) {
		w.SetShouldClose(false)
		push(CloseRequested{})
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		push(Resized{Size: geom.PhysicalSize{Width: w, Height: h}})
	})
	win.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		if iconified {
			push(Resized{})
			return
		}
		fw, fh := w.GetFramebufferSize()
		push(Resized{Size: geom.PhysicalSize{Width: fw, Height: fh}})
	})
	win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		push(Moved{Position: geom.IVec2{X: x, Y: y}})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		push(Focused{Focused: focused})
	})
	win.SetContentScaleCallback(func(w *glfw.Window, x, _ float32) {
		fw, fh := w.GetFramebufferSize()
		push(ScaleFactorChanged{
			ScaleFactor:  float64(x),
			NewInnerSize: &geom.PhysicalSize{Width: fw, Height: fh},
		})
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			push(CursorEntered{})
		} else {
			push(CursorLeft{})
		}
	})
	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		r := pixelRatio(w)
		pos := geom.Vec2{X: x * r, Y: y * r}
		if gw.locked && gw.hasPos {
			delta := geom.Vec2{X: pos.X - gw.lastPos.X, Y: pos.Y - gw.lastPos.Y}
			g.queue = append(g.queue, DeviceEvent{Event: MouseMotion{Delta: delta}})
		}
		gw.lastPos, gw.hasPos = pos, true
		push(CursorMoved{Position: pos})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		push(MouseInput{Button: translateButton(b), State: translateAction(action)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		push(MouseWheel{Unit: input.ScrollLine, Delta: geom.Vec2{X: xoff, Y: yoff}})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		push(KeyboardInput{
			ScanCode: scancode,
			Key:      translateKey(key),
			State:    translateAction(action),
			Mods:     translateMods(mods),
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		push(ReceivedCharacter{Char: r})
	})
	win.SetDropCallback(func(_ *glfw.Window, names []string) {
		for _, n := range names {
			push(DroppedFile{Path: n})
		}
	})
}

func (g *GLFW) DestroyWindow(id WindowID) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	delete(g.windows, id)
	return guard("destroy window", gw.w.Destroy)
}

// pixelRatio converts glfw screen coordinates to framebuffer pixels.
func pixelRatio(w *glfw.Window) float64 {
	ww, _ := w.GetSize()
	fw, _ := w.GetFramebufferSize()
	if ww == 0 || fw == 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

func toScreen(w *glfw.Window, px int) int {
	return int(float64(px)/pixelRatio(w) + 0.5)
}

func (g *GLFW) SetTitle(id WindowID, title string) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set title", func() { gw.w.SetTitle(title) })
}

func (g *GLFW) InnerSize(id WindowID) (geom.PhysicalSize, error) {
	gw, err := g.lookup(id)
	if err != nil {
		return geom.PhysicalSize{}, err
	}
	w, h := gw.w.GetFramebufferSize()
	return geom.PhysicalSize{Width: w, Height: h}, nil
}

func (g *GLFW) SetInnerSize(id WindowID, size geom.PhysicalSize) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set size", func() {
		gw.w.SetSize(toScreen(gw.w, size.Width), toScreen(gw.w, size.Height))
	})
}

func (g *GLFW) ScaleFactor(id WindowID) (float64, error) {
	gw, err := g.lookup(id)
	if err != nil {
		return 0, err
	}
	x, _ := gw.w.GetContentScale()
	if x <= 0 {
		return 1, nil
	}
	return float64(x), nil
}

func (g *GLFW) OuterPosition(id WindowID) (geom.IVec2, error) {
	gw, err := g.lookup(id)
	if err != nil {
		return geom.IVec2{}, err
	}
	x, y := gw.w.GetPos()
	return geom.IVec2{X: x, Y: y}, nil
}

func (g *GLFW) SetOuterPosition(id WindowID, pos geom.IVec2) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set position", func() { gw.w.SetPos(pos.X, pos.Y) })
}

func (g *GLFW) SetFullscreen(id WindowID, fs Fullscreen) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	win := gw.w
	if fs.Kind == NotFullscreen {
		if win.GetMonitor() == nil {
			return nil
		}
		r := gw.windowed
		return guard("leave fullscreen", func() { win.SetMonitor(nil, r[0], r[1], r[2], r[3], 0) })
	}

	mon := findMonitor(fs.Monitor.Name)
	if mon == nil {
		mon = glfw.GetPrimaryMonitor()
	}
	if mon == nil {
		return ErrNoMonitor
	}
	if win.GetMonitor() == nil {
		x, y := win.GetPos()
		w, h := win.GetSize()
		gw.windowed = [4]int{x, y, w, h}
	}
	return guard("enter fullscreen", func() {
		if fs.Kind == BorderlessFullscreen {
			vm := mon.GetVideoMode()
			win.SetMonitor(mon, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
			return
		}
		win.SetMonitor(mon, 0, 0, fs.Mode.Width, fs.Mode.Height, fs.Mode.RefreshRate)
	})
}

func (g *GLFW) applyLimits(gw *glfwWindow, minSize, maxSize geom.PhysicalSize) {
	limit := func(v int) int {
		if v <= 0 {
			return glfw.DontCare
		}
		return toScreen(gw.w, v)
	}
	gw.w.SetSizeLimits(limit(minSize.Width), limit(minSize.Height), limit(maxSize.Width), limit(maxSize.Height))
}

func (g *GLFW) SetMinInnerSize(id WindowID, size geom.PhysicalSize) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set min size", func() {
		gw.w.SetSizeLimits(toScreen(gw.w, size.Width), toScreen(gw.w, size.Height), glfw.DontCare, glfw.DontCare)
	})
}

// SetMaxInnerSize keeps the current minimum; glfw sets both together, so
// callers set the minimum first.
func (g *GLFW) SetMaxInnerSize(id WindowID, size geom.PhysicalSize) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set max size", func() {
		limit := func(v int) int {
			if v <= 0 {
				return glfw.DontCare
			}
			return toScreen(gw.w, v)
		}
		gw.w.SetSizeLimits(glfw.DontCare, glfw.DontCare, limit(size.Width), limit(size.Height))
	})
}

func (g *GLFW) SetDecorations(id WindowID, decorated bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set decorated", func() { gw.w.SetAttrib(glfw.Decorated, boolHint(decorated)) })
}

func (g *GLFW) SetResizable(id WindowID, resizable bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	return guard("set resizable", func() { gw.w.SetAttrib(glfw.Resizable, boolHint(resizable)) })
}

func (g *GLFW) SetMinimized(id WindowID, minimized bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	if minimized {
		return guard("iconify", gw.w.Iconify)
	}
	if gw.w.GetAttrib(glfw.Iconified) == glfw.True {
		return guard("restore", gw.w.Restore)
	}
	return nil
}

func (g *GLFW) SetMaximized(id WindowID, maximized bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	if maximized {
		return guard("maximize", gw.w.Maximize)
	}
	if gw.w.GetAttrib(glfw.Maximized) == glfw.True {
		return guard("restore", gw.w.Restore)
	}
	return nil
}

func (g *GLFW) IsMaximized(id WindowID) (bool, error) {
	gw, err := g.lookup(id)
	if err != nil {
		return false, err
	}
	return gw.w.GetAttrib(glfw.Maximized) == glfw.True, nil
}

func (g *GLFW) SetIcon(id WindowID, icon []image.Image) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		return ErrNotSupported
	}
	return guard("set icon", func() { gw.w.SetIcon(icon) })
}

func (g *GLFW) standardCursor(shape glfw.StandardCursor) *glfw.Cursor {
	c, ok := g.cursors[shape]
	if !ok {
		c = glfw.CreateStandardCursor(shape)
		g.cursors[shape] = c
	}
	return c
}

// SetCursorIcon falls back to the arrow for shapes glfw 3.3 lacks and
// reports ErrNotSupported for them.
func (g *GLFW) SetCursorIcon(id WindowID, icon window.CursorIcon) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	shape, ok := cursorShape(icon)
	if perr := guard("set cursor", func() { gw.w.SetCursor(g.standardCursor(shape)) }); perr != nil {
		return perr
	}
	if !ok {
		return fmt.Errorf("cursor icon %d: %w", icon, ErrNotSupported)
	}
	return nil
}

func cursorShape(icon window.CursorIcon) (glfw.StandardCursor, bool) {
	switch icon {
	case window.CursorDefault:
		return glfw.ArrowCursor, true
	case window.CursorCrosshair:
		return glfw.CrosshairCursor, true
	case window.CursorHand:
		return glfw.HandCursor, true
	case window.CursorText:
		return glfw.IBeamCursor, true
	case window.CursorEwResize:
		return glfw.HResizeCursor, true
	case window.CursorNsResize:
		return glfw.VResizeCursor, true
	default:
		return glfw.ArrowCursor, false
	}
}

func (g *GLFW) applyCursorMode(gw *glfwWindow) {
	mode := glfw.CursorNormal
	switch {
	case gw.locked:
		mode = glfw.CursorDisabled
	case !gw.visible:
		mode = glfw.CursorHidden
	}
	gw.w.SetInputMode(glfw.CursorMode, mode)
	gw.hasPos = false
}

func (g *GLFW) SetCursorVisible(id WindowID, visible bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	gw.visible = visible
	return guard("set cursor visible", func() { g.applyCursorMode(gw) })
}

func (g *GLFW) SetCursorGrab(id WindowID, grab bool) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	gw.locked = grab
	return guard("set cursor grab", func() { g.applyCursorMode(gw) })
}

func (g *GLFW) SetCursorPosition(id WindowID, pos geom.Vec2) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	r := pixelRatio(gw.w)
	return guard("set cursor position", func() { gw.w.SetCursorPos(pos.X/r, pos.Y/r) })
}

func findMonitor(name string) *glfw.Monitor {
	if name == "" {
		return nil
	}
	for _, m := range glfw.GetMonitors() {
		if m.GetName() == name {
			return m
		}
	}
	return nil
}

func toMonitor(m *glfw.Monitor) geom.Monitor {
	x, y := m.GetPos()
	sx, _ := m.GetContentScale()
	out := geom.Monitor{
		Name:        m.GetName(),
		Position:    geom.IVec2{X: x, Y: y},
		ScaleFactor: float64(sx),
	}
	if vm := m.GetVideoMode(); vm != nil {
		out.Size = geom.PhysicalSize{Width: vm.Width, Height: vm.Height}
	}
	for _, vm := range m.GetVideoModes() {
		out.Modes = append(out.Modes, geom.VideoMode{Width: vm.Width, Height: vm.Height, RefreshRate: vm.RefreshRate})
	}
	return out
}

func (g *GLFW) Monitors() ([]geom.Monitor, error) {
	ms := glfw.GetMonitors()
	if len(ms) == 0 {
		return nil, ErrNoMonitor
	}
	out := make([]geom.Monitor, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMonitor(m))
	}
	return out, nil
}

func (g *GLFW) PrimaryMonitor() (geom.Monitor, bool) {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return geom.Monitor{}, false
	}
	return toMonitor(m), true
}

// CurrentMonitor is the fullscreen monitor, or else the one containing the
// window's centre.
func (g *GLFW) CurrentMonitor(id WindowID) (geom.Monitor, bool) {
	gw, ok := g.windows[id]
	if !ok {
		return geom.Monitor{}, false
	}
	if m := gw.w.GetMonitor(); m != nil {
		return toMonitor(m), true
	}
	x, y := gw.w.GetPos()
	w, h := gw.w.GetSize()
	cx, cy := x+w/2, y+h/2
	for _, m := range glfw.GetMonitors() {
		mon := toMonitor(m)
		if cx >= mon.Position.X && cx < mon.Position.X+mon.Size.Width &&
			cy >= mon.Position.Y && cy < mon.Position.Y+mon.Size.Height {
			return mon, true
		}
	}
	return geom.Monitor{}, false
}

func (g *GLFW) Present(id WindowID, mode window.PresentMode, draw func(size geom.PhysicalSize)) error {
	gw, err := g.lookup(id)
	if err != nil {
		return err
	}
	gw.w.MakeContextCurrent()
	// The swap interval belongs to the current context.
	interval := 1
	if mode == window.AutoNoVsync {
		interval = 0
	}
	if interval != gw.interval {
		glfw.SwapInterval(interval)
		gw.interval = interval
	}
	w, h := gw.w.GetFramebufferSize()
	draw(geom.PhysicalSize{Width: w, Height: h})
	gw.w.SwapBuffers()
	return nil
}

// Wake interrupts a blocking wait from another goroutine.
func (g *GLFW) Wake() { glfw.PostEmptyEvent() }

func (g *GLFW) Run(h Handler) error {
	cf := ControlFlow{Kind: Poll}
	cause := StartInit
	for {
		h(NewEvents{Cause: cause}, &cf)
		g.dispatch(h, &cf)
		h(MainEventsCleared{}, &cf)
		h(RedrawEventsCleared{}, &cf)
		if cf.Kind == Exit {
			h(LoopDestroyed{}, &cf)
			return nil
		}
		cause = g.pump(cf)
	}
}

func (g *GLFW) dispatch(h Handler, cf *ControlFlow) {
	// Handlers may create windows, whose callbacks append to the queue.
	for len(g.queue) > 0 {
		ev := g.queue[0]
		g.queue = g.queue[1:]
		h(ev, cf)
		we, ok := ev.(WindowEvent)
		if !ok {
			continue
		}
		if sf, ok := we.Event.(ScaleFactorChanged); ok {
			if cur, err := g.InnerSize(we.Window); err == nil && cur != *sf.NewInnerSize {
				if err := g.SetInnerSize(we.Window, *sf.NewInnerSize); err != nil {
					g.logger.Warn("applying negotiated size failed", "window", we.Window, "error", err)
				}
			}
		}
	}
	g.queue = g.queue[:0]
}

func (g *GLFW) pump(cf ControlFlow) StartCause {
	switch cf.Kind {
	case Wait:
		glfw.WaitEvents()
		return StartWaitCancelled
	case WaitUntil:
		if d := time.Until(cf.Deadline); d > 0 {
			glfw.WaitEventsTimeout(d.Seconds())
		} else {
			glfw.PollEvents()
		}
		if time.Now().Before(cf.Deadline) {
			return StartWaitCancelled
		}
		return StartResumeTimeReached
	default:
		glfw.PollEvents()
		return StartPoll
	}
}

func translateAction(a glfw.Action) input.ButtonState {
	if a == glfw.Release {
		return input.Released
	}
	return input.Pressed
}

func translateButton(b glfw.MouseButton) input.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft
	case glfw.MouseButtonRight:
		return input.MouseRight
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle
	default:
		return input.MouseButton(b)
	}
}

func translateKey(k glfw.Key) input.KeyCode {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return input.KeyA + input.KeyCode(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return input.Key0 + input.KeyCode(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return input.KeyF1 + input.KeyCode(k-glfw.KeyF1)
	}
	switch k {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyEnter:
		return input.KeyEnter
	case glfw.KeyTab:
		return input.KeyTab
	case glfw.KeyBackspace:
		return input.KeyBackspace
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyLeftShift:
		return input.KeyLShift
	case glfw.KeyRightShift:
		return input.KeyRShift
	case glfw.KeyLeftControl:
		return input.KeyLControl
	case glfw.KeyRightControl:
		return input.KeyRControl
	case glfw.KeyLeftAlt:
		return input.KeyLAlt
	case glfw.KeyRightAlt:
		return input.KeyRAlt
	default:
		return input.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) input.Mod {
	var out input.Mod
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}

var (
	_ Backend   = (*GLFW)(nil)
	_ Presenter = (*GLFW)(nil)
)
