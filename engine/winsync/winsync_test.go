package winsync_test

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/platform"
	"github.com/hubastard/casement/engine/platform/platformtest"
	"github.com/hubastard/casement/engine/window"
	"github.com/hubastard/casement/engine/winsync"
	"github.com/hubastard/casement/engine/world"
)

type rig struct {
	w       *world.World
	bus     *event.Bus
	backend *platformtest.Backend
	sync    *winsync.Sync
	events  *event.Reader
	log     *bytes.Buffer
}

func newRig(t *testing.T) *rig {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := &rig{
		w:       world.New(),
		bus:     event.NewBus(),
		backend: platformtest.New(),
		log:     &buf,
	}
	r.sync = winsync.New(r.w, r.bus, r.backend, winsync.Config{Logger: logger})
	r.events = r.bus.NewReader()
	return r
}

// open spawns a window from d and creates its native counterpart.
func (r *rig) open(t *testing.T, d window.Descriptor) (world.Entity, platform.WindowID) {
	t.Helper()
	e := window.Spawn(r.w, d)
	if n := r.sync.Manager.CreatePending(); n != 1 {
		t.Fatalf("CreatePending() = %d, want 1", n)
	}
	id, ok := r.sync.Handles.ID(e)
	if !ok {
		t.Fatalf("no native handle for %d", e)
	}
	r.sync.Syncer.Push()
	r.events.Read(r.bus)
	r.backend.Reset()
	return e, id
}

func (r *rig) send(id platform.WindowID, ev platform.WindowEventKind) {
	r.sync.Translator.HandleWindow(platform.WindowEvent{Window: id, Event: ev})
}

func descriptor(width, height float64) window.Descriptor {
	d := window.DefaultDescriptor()
	d.Resolution = window.NewResolution(width, height)
	return d
}

func TestCreatePendingBuildsAttributes(t *testing.T) {
	r := newRig(t)
	d := descriptor(800, 600)
	d.Title = "hello"
	d.Position = geom.CenteredOn(geom.PrimaryMonitor())
	d.Decorations = window.Undecorated
	e := window.Spawn(r.w, d)

	if got := r.sync.Manager.CreatePending(); got != 1 {
		t.Fatalf("CreatePending() = %d, want 1", got)
	}
	calls := r.backend.Ops("CreateWindow")
	if len(calls) != 1 {
		t.Fatalf("CreateWindow calls = %d, want 1", len(calls))
	}
	attrs := calls[0].Arg.(platform.WindowAttributes)
	if attrs.Title != "hello" {
		t.Errorf("title = %q", attrs.Title)
	}
	if diff := cmp.Diff(geom.PhysicalSize{Width: 800, Height: 600}, attrs.InnerSize); diff != "" {
		t.Errorf("inner size (-want +got):\n%s", diff)
	}
	if !attrs.HasPosition || attrs.Position != (geom.IVec2{X: 560, Y: 240}) {
		t.Errorf("position = %v (set %v), want (560,240)", attrs.Position, attrs.HasPosition)
	}
	if attrs.Decorated || !attrs.Resizable {
		t.Errorf("decorated=%v resizable=%v", attrs.Decorated, attrs.Resizable)
	}
	if attrs.MinSize != (geom.PhysicalSize{Width: 180, Height: 120}) || attrs.MaxSize != (geom.PhysicalSize{}) {
		t.Errorf("limits = %v..%v", attrs.MinSize, attrs.MaxSize)
	}
	if l, _ := world.Get[window.Lifecycle](r.w, e); l != window.Live {
		t.Errorf("lifecycle = %v, want live", l)
	}
	evs := r.events.Read(r.bus)
	if diff := cmp.Diff([]any{window.Created{Window: e}}, evs); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	if got := r.sync.Manager.CreatePending(); got != 0 {
		t.Errorf("second CreatePending() = %d, want 0", got)
	}
}

func TestCreatePendingReadsBackScale(t *testing.T) {
	r := newRig(t)
	r.backend.Displays[0].ScaleFactor = 2
	r.backend.Scale = 2
	e, _ := r.open(t, descriptor(800, 600))

	res, _ := world.Get[window.Resolution](r.w, e)
	if res.PhysicalWidth() != 1600 || res.PhysicalHeight() != 1200 {
		t.Errorf("physical = %dx%d, want 1600x1200", res.PhysicalWidth(), res.PhysicalHeight())
	}
	if res.Width() != 800 || res.Height() != 600 || res.ScaleFactor() != 2 {
		t.Errorf("logical = %vx%v @%v", res.Width(), res.Height(), res.ScaleFactor())
	}
}

func TestCreateFailureDropsRecord(t *testing.T) {
	r := newRig(t)
	r.backend.Unsupported["CreateWindow"] = true
	e := window.SpawnPrimary(r.w, descriptor(800, 600))

	if got := r.sync.Manager.CreatePending(); got != 0 {
		t.Fatalf("CreatePending() = %d, want 0", got)
	}
	if r.w.Alive(e) {
		t.Error("record survived a failed create")
	}
	if _, ok := window.PrimaryWindow(r.w); ok {
		t.Error("primary still designated")
	}
	if !strings.Contains(r.log.String(), "creating window failed") {
		t.Errorf("missing error log:\n%s", r.log)
	}
}

func TestEnsureDefaultsForBareRecords(t *testing.T) {
	r := newRig(t)
	e := r.w.Spawn()
	world.Insert(r.w, e, window.Window{})
	world.Insert(r.w, e, window.Title("bare"))

	if got := r.sync.Manager.CreatePending(); got != 1 {
		t.Fatalf("CreatePending() = %d, want 1", got)
	}
	attrs := r.backend.Ops("CreateWindow")[0].Arg.(platform.WindowAttributes)
	if attrs.Title != "bare" || attrs.InnerSize != (geom.PhysicalSize{Width: 1280, Height: 720}) {
		t.Errorf("attrs = %+v", attrs)
	}
}

func TestPushOnlyChangedLiveRecords(t *testing.T) {
	r := newRig(t)
	e := window.Spawn(r.w, descriptor(800, 600))
	world.Set(r.w, e, window.Title("before create"))
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Fatalf("pushed to a record without a native window: %v", r.backend.Calls)
	}

	r.sync.Manager.CreatePending()
	r.backend.Reset()
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Fatalf("creation state pushed again: %v", r.backend.Calls)
	}

	world.Set(r.w, e, window.Title("after"))
	r.sync.Syncer.Push()
	want := []platformtest.Call{{Op: "SetTitle", Window: 1, Arg: "after"}}
	if diff := cmp.Diff(want, r.backend.Calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}

	r.backend.Reset()
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Errorf("unchanged field pushed: %v", r.backend.Calls)
	}
}

func TestPushGroups(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *world.World, e world.Entity)
		want   []platformtest.Call
	}{
		{
			name: "resolution",
			mutate: func(w *world.World, e world.Entity) {
				world.Update(w, e, func(r *window.Resolution) { r.SetRequested(1024, 768) })
			},
			want: []platformtest.Call{{Op: "SetInnerSize", Window: 1, Arg: geom.PhysicalSize{Width: 1024, Height: 768}}},
		},
		{
			name: "scale override",
			mutate: func(w *world.World, e world.Entity) {
				world.Update(w, e, func(r *window.Resolution) { r.SetScaleFactorOverride(2) })
			},
			want: []platformtest.Call{{Op: "SetInnerSize", Window: 1, Arg: geom.PhysicalSize{Width: 1600, Height: 1200}}},
		},
		{
			name: "position at",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Position(geom.At(100, 50)))
			},
			want: []platformtest.Call{{Op: "SetOuterPosition", Window: 1, Arg: geom.IVec2{X: 100, Y: 50}}},
		},
		{
			name: "position centered",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Position(geom.CenteredOn(geom.MonitorAt(0))))
			},
			want: []platformtest.Call{{Op: "SetOuterPosition", Window: 1, Arg: geom.IVec2{X: 560, Y: 240}}},
		},
		{
			name: "cursor lock only",
			mutate: func(w *world.World, e world.Entity) {
				world.Update(w, e, func(c *window.Cursor) { c.Locked = true })
			},
			want: []platformtest.Call{{Op: "SetCursorGrab", Window: 1, Arg: true}},
		},
		{
			name: "cursor icon and visibility",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Cursor{Icon: window.CursorHand, Visible: false})
			},
			want: []platformtest.Call{
				{Op: "SetCursorIcon", Window: 1, Arg: window.CursorHand},
				{Op: "SetCursorVisible", Window: 1, Arg: false},
			},
		},
		{
			name: "cursor position flips to top-left",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.NewCursorPosition(geom.Vec2{X: 20, Y: 50}))
			},
			want: []platformtest.Call{{Op: "SetCursorPosition", Window: 1, Arg: geom.Vec2{X: 20, Y: 550}}},
		},
		{
			name: "inverted constraints",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.ResizeConstraints{MinWidth: 200, MinHeight: 100, MaxWidth: 150, MaxHeight: 50})
			},
			want: []platformtest.Call{
				{Op: "SetMinInnerSize", Window: 1, Arg: geom.PhysicalSize{Width: 200, Height: 100}},
				{Op: "SetMaxInnerSize", Window: 1, Arg: geom.PhysicalSize{Width: 200, Height: 100}},
			},
		},
		{
			name: "maximize",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Maximized)
			},
			want: []platformtest.Call{{Op: "SetMaximized", Window: 1, Arg: true}},
		},
		{
			name: "minimize",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Minimized)
			},
			want: []platformtest.Call{{Op: "SetMinimized", Window: 1, Arg: true}},
		},
		{
			name: "decorations and resizable",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Undecorated)
				world.Set(w, e, window.Unresizable)
			},
			want: []platformtest.Call{
				{Op: "SetDecorations", Window: 1, Arg: false},
				{Op: "SetResizable", Window: 1, Arg: false},
			},
		},
		{
			name: "exclusive fullscreen picks best mode",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Fullscreen)
			},
			want: []platformtest.Call{{Op: "SetFullscreen", Window: 1, Arg: platform.Fullscreen{
				Kind:    platform.ExclusiveFullscreen,
				Monitor: platformtest.New().Displays[0],
				Mode:    geom.VideoMode{Width: 1920, Height: 1080, RefreshRate: 60},
			}}},
		},
		{
			name: "back to windowed",
			mutate: func(w *world.World, e world.Entity) {
				world.Set(w, e, window.Windowed)
			},
			want: []platformtest.Call{{Op: "SetFullscreen", Window: 1, Arg: platform.Fullscreen{Kind: platform.NotFullscreen}}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			e, _ := r.open(t, descriptor(800, 600))
			tc.mutate(r.w, e)
			r.sync.Syncer.Push()
			if diff := cmp.Diff(tc.want, r.backend.Calls); diff != "" {
				t.Errorf("calls (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSizedFullscreenFitsWindowSize(t *testing.T) {
	r := newRig(t)
	e, _ := r.open(t, descriptor(1280, 720))
	world.Set(r.w, e, window.SizedFullscreen)
	r.sync.Syncer.Push()

	calls := r.backend.Ops("SetFullscreen")
	if len(calls) != 1 {
		t.Fatalf("SetFullscreen calls = %d, want 1", len(calls))
	}
	fs := calls[0].Arg.(platform.Fullscreen)
	if fs.Kind != platform.ExclusiveFullscreen || fs.Mode != (geom.VideoMode{Width: 1280, Height: 720, RefreshRate: 60}) {
		t.Errorf("fullscreen = %+v", fs)
	}
}

func TestUnsupportedOperationIsLogged(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))
	r.backend.Unsupported["SetCursorGrab"] = true

	world.Update(r.w, e, func(c *window.Cursor) { c.Locked = true })
	world.Set(r.w, e, window.Title("still pushed"))
	r.sync.Syncer.Push()

	if got := r.backend.Windows[id].Title; got != "still pushed" {
		t.Errorf("title = %q, later pushes were skipped", got)
	}
	if c, _ := world.Get[window.Cursor](r.w, e); !c.Locked {
		t.Error("desired lock state was reverted")
	}
	if !strings.Contains(r.log.String(), "backend does not support operation") {
		t.Errorf("missing warning:\n%s", r.log)
	}
}

func TestResizedIsObservedButNotEchoed(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))
	seen := r.w.ChangeTick()

	r.send(id, platform.Resized{Size: geom.PhysicalSize{Width: 1000, Height: 700}})
	res, _ := world.Get[window.Resolution](r.w, e)
	if res.PhysicalSize() != (geom.PhysicalSize{Width: 1000, Height: 700}) {
		t.Errorf("physical = %v", res.PhysicalSize())
	}
	if res.RequestedSize() != (geom.LogicalSize{Width: 1000, Height: 700}) {
		t.Errorf("requested = %v, want the size the backend chose", res.RequestedSize())
	}
	if !world.ChangedSince[window.Resolution](r.w, e, seen) {
		t.Error("backend resize not visible as a resolution change")
	}
	want := []any{window.Resized{Window: e, Width: 1000, Height: 700}}
	if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Errorf("backend report echoed back: %v", r.backend.Calls)
	}
}

func TestBackendResizeSurvivesLaterResolutionPush(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))

	r.send(id, platform.Resized{Size: geom.PhysicalSize{Width: 1000, Height: 700}})
	r.sync.Syncer.Push()
	world.Update(r.w, e, func(res *window.Resolution) { res.SetScaleFactorOverride(1) })
	r.sync.Syncer.Push()
	if calls := r.backend.Ops("SetInnerSize"); len(calls) != 0 {
		t.Errorf("window snapped back: %v", calls)
	}

	r.send(id, platform.Resized{})
	r.sync.Syncer.Push()
	if calls := r.backend.Ops("SetInnerSize"); len(calls) != 0 {
		t.Errorf("minimized window resized: %v", calls)
	}
	res, _ := world.Get[window.Resolution](r.w, e)
	if res.RequestedSize() != (geom.LogicalSize{Width: 1000, Height: 700}) {
		t.Errorf("requested after minimize = %v, want 1000x700", res.RequestedSize())
	}
}

func TestBackendReportsAreObservedButNotEchoed(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))
	seen := r.w.ChangeTick()

	r.send(id, platform.CursorMoved{Position: geom.Vec2{X: 10, Y: 100}})
	r.send(id, platform.Moved{Position: geom.IVec2{X: 30, Y: 40}})
	r.backend.Windows[id].Maximized = true
	r.send(id, platform.Resized{Size: geom.PhysicalSize{Width: 1920, Height: 1040}})

	if !world.ChangedSince[window.CursorPosition](r.w, e, seen) {
		t.Error("cursor report not visible as a change")
	}
	if !world.ChangedSince[window.Position](r.w, e, seen) {
		t.Error("move report not visible as a change")
	}
	if !world.ChangedSince[window.State](r.w, e, seen) {
		t.Error("maximize report not visible as a change")
	}
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Fatalf("backend reports echoed back: %v", r.backend.Calls)
	}

	// Restoring a window the backend maximized still reaches the backend.
	world.Set(r.w, e, window.Normal)
	r.sync.Syncer.Push()
	want := []platformtest.Call{
		{Op: "SetMinimized", Window: id, Arg: false},
		{Op: "SetMaximized", Window: id, Arg: false},
	}
	if diff := cmp.Diff(want, r.backend.Calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestScaleFactorChanged(t *testing.T) {
	t.Run("logical size kept", func(t *testing.T) {
		r := newRig(t)
		e, id := r.open(t, descriptor(800, 600))

		size := geom.PhysicalSize{Width: 1600, Height: 1200}
		r.send(id, platform.ScaleFactorChanged{ScaleFactor: 2, NewInnerSize: &size})

		res, _ := world.Get[window.Resolution](r.w, e)
		if res.PhysicalSize() != size {
			t.Errorf("physical = %v, want %v", res.PhysicalSize(), size)
		}
		if res.Size() != (geom.LogicalSize{Width: 800, Height: 600}) {
			t.Errorf("logical = %v, want 800x600", res.Size())
		}
		want := []any{
			window.BackendScaleFactorChanged{Window: e, ScaleFactor: 2},
			window.ScaleFactorChanged{Window: e, ScaleFactor: 2},
		}
		if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
			t.Errorf("events (-want +got):\n%s", diff)
		}
	})

	t.Run("logical size shrinks", func(t *testing.T) {
		r := newRig(t)
		e, id := r.open(t, descriptor(800, 600))

		size := geom.PhysicalSize{Width: 800, Height: 600}
		r.send(id, platform.ScaleFactorChanged{ScaleFactor: 2, NewInnerSize: &size})
		want := []any{
			window.BackendScaleFactorChanged{Window: e, ScaleFactor: 2},
			window.ScaleFactorChanged{Window: e, ScaleFactor: 2},
			window.Resized{Window: e, Width: 400, Height: 300},
		}
		if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
			t.Errorf("events (-want +got):\n%s", diff)
		}
	})

	t.Run("override rewrites proposed size", func(t *testing.T) {
		r := newRig(t)
		d := window.DefaultDescriptor()
		d.Resolution = window.NewResolutionWithOverride(800, 600, 1.5)
		e, id := r.open(t, d)

		size := geom.PhysicalSize{Width: 1600, Height: 1200}
		r.send(id, platform.ScaleFactorChanged{ScaleFactor: 2, NewInnerSize: &size})
		if size != (geom.PhysicalSize{Width: 1200, Height: 900}) {
			t.Errorf("negotiated size = %v, want 1200x900", size)
		}
		res, _ := world.Get[window.Resolution](r.w, e)
		if res.BaseScaleFactor() != 2 || res.ScaleFactor() != 1.5 {
			t.Errorf("scale base=%v effective=%v", res.BaseScaleFactor(), res.ScaleFactor())
		}
		want := []any{window.BackendScaleFactorChanged{Window: e, ScaleFactor: 2}}
		if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
			t.Errorf("events (-want +got):\n%s", diff)
		}
	})
}

func TestCursorTranslation(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))

	r.send(id, platform.CursorEntered{})
	r.send(id, platform.CursorMoved{Position: geom.Vec2{X: 10, Y: 100}})
	cp, _ := world.Get[window.CursorPosition](r.w, e)
	if p, inside := cp.Physical(); !inside || p != (geom.Vec2{X: 10, Y: 500}) {
		t.Errorf("cursor position = %v (inside %v), want (10,500)", p, inside)
	}

	r.send(id, platform.CursorLeft{})
	cp, _ = world.Get[window.CursorPosition](r.w, e)
	if _, inside := cp.Physical(); inside {
		t.Error("cursor position survived CursorLeft")
	}

	want := []any{
		window.CursorEntered{Window: e},
		window.CursorMoved{Window: e, Position: geom.Vec2{X: 10, Y: 500}},
		window.CursorLeft{Window: e},
	}
	if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Errorf("cursor report echoed back: %v", r.backend.Calls)
	}
}

func TestInputReshaping(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))

	r.send(id, platform.KeyboardInput{ScanCode: 9, Key: input.KeyEscape, State: input.Pressed})
	r.send(id, platform.MouseInput{Button: input.MouseLeft, State: input.Released})
	r.send(id, platform.MouseWheel{Unit: input.ScrollPixel, Delta: geom.Vec2{X: 1, Y: -2}})
	r.send(id, platform.ReceivedCharacter{Char: 'x'})
	r.send(id, platform.Touch{ID: 3, Phase: input.TouchStarted, Location: geom.Vec2{X: 40, Y: 100}})
	r.sync.Translator.HandleDevice(platform.DeviceEvent{Event: platform.MouseMotion{Delta: geom.Vec2{X: 3, Y: 4}}})

	want := []any{
		input.KeyboardInput{Window: e, ScanCode: 9, Key: input.KeyEscape, State: input.Pressed},
		input.MouseButtonInput{Window: e, Button: input.MouseLeft, State: input.Released},
		input.MouseWheel{Window: e, Unit: input.ScrollPixel, X: 1, Y: -2},
		input.ReceivedCharacter{Window: e, Char: 'x'},
		input.TouchInput{Window: e, ID: 3, Phase: input.TouchStarted, Position: geom.Vec2{X: 40, Y: 500}},
		input.MouseMotion{Delta: geom.Vec2{X: 3, Y: 4}},
	}
	if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestTouchKeptWhenOriginBottomLeft(t *testing.T) {
	r := newRig(t)
	r.backend.Platform.TouchOriginTopLeft = false
	r.sync = winsync.New(r.w, r.bus, r.backend, winsync.Config{})
	e, id := r.open(t, descriptor(800, 600))

	r.send(id, platform.Touch{ID: 1, Phase: input.TouchMoved, Location: geom.Vec2{X: 40, Y: 100}})
	got := event.Of[input.TouchInput](r.events.Read(r.bus))
	if len(got) != 1 || got[0].Window != e || got[0].Position != (geom.Vec2{X: 40, Y: 100}) {
		t.Errorf("touch = %+v", got)
	}
}

func TestFocusMoveAndFileDrop(t *testing.T) {
	r := newRig(t)
	r.backend.Displays[0].ScaleFactor = 2
	r.backend.Scale = 2
	e, id := r.open(t, descriptor(400, 300))

	r.send(id, platform.Focused{Focused: true})
	r.send(id, platform.Moved{Position: geom.IVec2{X: 200, Y: 100}})
	r.send(id, platform.HoveredFile{Path: "/tmp/a.png"})
	r.send(id, platform.HoveredFileCancelled{})
	r.send(id, platform.DroppedFile{Path: "/tmp/a.png"})

	if f, _ := world.Get[window.Focus](r.w, e); !bool(f) || !window.AnyFocused(r.w) {
		t.Error("focus not recorded")
	}
	if pos, _ := world.Get[window.Position](r.w, e); pos != window.Position(geom.At(100, 50)) {
		t.Errorf("position = %+v, want At(100,50)", pos)
	}
	want := []any{
		window.Focused{Window: e, Focused: true},
		window.Moved{Window: e, Position: geom.IVec2{X: 200, Y: 100}},
		window.FileDragAndDrop{Window: e, Kind: window.HoveredFile, Path: "/tmp/a.png"},
		window.FileDragAndDrop{Window: e, Kind: window.HoveredFileCancelled},
		window.FileDragAndDrop{Window: e, Kind: window.DroppedFile, Path: "/tmp/a.png"},
	}
	if diff := cmp.Diff(want, r.events.Read(r.bus)); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	r.sync.Syncer.Push()
	if len(r.backend.Ops("SetOuterPosition")) != 0 {
		t.Error("move report echoed back")
	}
}

func TestStateFollowsBackend(t *testing.T) {
	r := newRig(t)
	e, id := r.open(t, descriptor(800, 600))

	r.send(id, platform.Resized{})
	if st, _ := world.Get[window.State](r.w, e); st != window.Minimized {
		t.Errorf("state after 0x0 resize = %v, want minimized", st)
	}

	r.backend.Windows[id].Maximized = true
	r.send(id, platform.Resized{Size: geom.PhysicalSize{Width: 1920, Height: 1040}})
	if st, _ := world.Get[window.State](r.w, e); st != window.Maximized {
		t.Errorf("state = %v, want maximized", st)
	}

	r.backend.Windows[id].Maximized = false
	r.send(id, platform.Focused{Focused: false})
	if st, _ := world.Get[window.State](r.w, e); st != window.Normal {
		t.Errorf("state = %v, want normal", st)
	}
	r.sync.Syncer.Push()
	if len(r.backend.Calls) != 0 {
		t.Errorf("state report echoed back: %v", r.backend.Calls)
	}
}

func TestUnknownWindowIsIgnored(t *testing.T) {
	r := newRig(t)
	r.send(42, platform.Resized{Size: geom.PhysicalSize{Width: 1, Height: 1}})
	r.send(42, platform.CloseRequested{})
	if n := len(r.events.Read(r.bus)); n != 0 {
		t.Errorf("%d events for an unknown window", n)
	}
	if !strings.Contains(r.log.String(), "event for unknown window dropped") {
		t.Errorf("missing warning:\n%s", r.log)
	}
}

func TestClosingIsDeferredOneCycle(t *testing.T) {
	r := newRig(t)
	e := window.SpawnPrimary(r.w, descriptor(800, 600))
	r.sync.Manager.CreatePending()
	id, _ := r.sync.Handles.ID(e)
	policy := window.NewCloseWhenRequested(r.bus)
	consumer := r.bus.NewReader()

	// Cycle 1: the request arrives and is honoured.
	if n := r.sync.Manager.DestroyClosing(); n != 0 {
		t.Fatalf("DestroyClosing() = %d before any close", n)
	}
	r.send(id, platform.CloseRequested{})
	r.bus.Update()
	policy.Run(r.w, r.bus)
	if n := r.sync.Manager.CollectClosed(); n != 1 {
		t.Fatalf("CollectClosed() = %d, want 1", n)
	}
	if l, _ := world.Get[window.Lifecycle](r.w, e); l != window.Closing {
		t.Errorf("lifecycle = %v, want closing", l)
	}
	if !r.w.Alive(e) || len(r.backend.Ops("DestroyWindow")) != 0 {
		t.Fatal("window destroyed in the cycle it closed")
	}
	closed := event.Of[window.Closed](consumer.Read(r.bus))
	if diff := cmp.Diff([]window.Closed{{Window: e}}, closed); diff != "" {
		t.Errorf("closed events (-want +got):\n%s", diff)
	}
	// A second Close in the same cycle is refused.
	if window.Close(r.w, r.bus, e) {
		t.Error("Close accepted for a closing window")
	}

	// Cycle 2: the queue drains.
	if n := r.sync.Manager.DestroyClosing(); n != 1 {
		t.Fatalf("DestroyClosing() = %d, want 1", n)
	}
	if r.w.Alive(e) {
		t.Error("record survived destruction")
	}
	if diff := cmp.Diff([]platformtest.Call{{Op: "DestroyWindow", Window: id}}, r.backend.Ops("DestroyWindow")); diff != "" {
		t.Errorf("destroy calls (-want +got):\n%s", diff)
	}
	if _, ok := window.PrimaryWindow(r.w); ok {
		t.Error("primary designation dangles")
	}
	if _, ok := r.sync.Handles.ID(e); ok || !r.sync.Handles.Retired(id) {
		t.Error("handle not retired")
	}

	// Late events for the destroyed window are dropped quietly.
	r.send(id, platform.Focused{Focused: true})
	if !strings.Contains(r.log.String(), "event for destroyed window dropped") {
		t.Errorf("missing debug log:\n%s", r.log)
	}
	if n := r.sync.Manager.DestroyClosing(); n != 0 {
		t.Errorf("queue not drained: %d", n)
	}
}

func TestClosingPendingWindow(t *testing.T) {
	r := newRig(t)
	e := window.Spawn(r.w, descriptor(800, 600))
	window.Close(r.w, r.bus, e)
	r.bus.Update()
	r.sync.Manager.CollectClosed()
	r.sync.Manager.DestroyClosing()
	if r.w.Alive(e) {
		t.Error("pending record not removed")
	}
	if r.sync.Manager.CreatePending() != 0 || len(r.backend.Calls) != 0 {
		t.Errorf("closed pending window reached the backend: %v", r.backend.Calls)
	}
}

func TestIconLoadedAtCreateAndPushed(t *testing.T) {
	r := newRig(t)
	loaded := map[string]int{"a.png": 1, "b.png": 3}
	r.sync = winsync.New(r.w, r.bus, r.backend, winsync.Config{
		Logger: slog.New(slog.NewTextHandler(r.log, nil)),
		LoadIcon: func(path string) ([]image.Image, error) {
			n, ok := loaded[path]
			if !ok {
				return nil, errors.New("no such icon")
			}
			imgs := make([]image.Image, n)
			for i := range imgs {
				imgs[i] = image.NewRGBA(image.Rect(0, 0, 16, 16))
			}
			return imgs, nil
		},
	})
	d := descriptor(800, 600)
	d.Icon = window.Icon{Path: "a.png"}
	window.Spawn(r.w, d)
	r.sync.Manager.CreatePending()
	attrs := r.backend.Ops("CreateWindow")[0].Arg.(platform.WindowAttributes)
	if len(attrs.Icon) != 1 {
		t.Fatalf("create icon images = %d, want 1", len(attrs.Icon))
	}
	e := r.sync.Handles.Entities()[0]
	r.sync.Syncer.Push()
	r.backend.Reset()

	world.Set(r.w, e, window.Icon{Path: "b.png"})
	r.sync.Syncer.Push()
	world.Set(r.w, e, window.Icon{Path: "missing.png"})
	r.sync.Syncer.Push()
	world.Set(r.w, e, window.Icon{})
	r.sync.Syncer.Push()

	var got []any
	for _, c := range r.backend.Ops("SetIcon") {
		got = append(got, c.Arg)
	}
	if diff := cmp.Diff([]any{3, 0}, got); diff != "" {
		t.Errorf("SetIcon args (-want +got):\n%s", diff)
	}
	if !strings.Contains(r.log.String(), "loading window icon failed") {
		t.Errorf("missing warning:\n%s", r.log)
	}
}
