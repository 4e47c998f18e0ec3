package window

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/geom"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/world"
)

func TestResolutionScaleFactor(t *testing.T) {
	r := NewResolution(800, 600)
	if r.PhysicalSize() != (geom.PhysicalSize{Width: 800, Height: 600}) {
		t.Fatalf("expected physical 800x600, got %v", r.PhysicalSize())
	}

	r.SetScaleFactor(2)
	r.SetPhysical(1600, 1200)
	if r.Width() != 800 || r.Height() != 600 {
		t.Fatalf("expected logical 800x600, got %vx%v", r.Width(), r.Height())
	}

	r.SetScaleFactorOverride(1.5)
	if r.ScaleFactor() != 1.5 || r.BaseScaleFactor() != 2 {
		t.Fatalf("override should win: effective %v base %v", r.ScaleFactor(), r.BaseScaleFactor())
	}
	if got := r.TargetPhysicalSize(); got != (geom.PhysicalSize{Width: 1200, Height: 900}) {
		t.Fatalf("expected target 1200x900, got %v", got)
	}
	r.ClearScaleFactorOverride()
	if _, ok := r.ScaleFactorOverride(); ok || r.ScaleFactor() != 2 {
		t.Fatalf("override should be cleared, effective %v", r.ScaleFactor())
	}
}

func TestResolutionWithOverrideStartsScaled(t *testing.T) {
	r := NewResolutionWithOverride(640, 480, 2)
	if r.PhysicalSize() != (geom.PhysicalSize{Width: 1280, Height: 960}) {
		t.Fatalf("expected 1280x960, got %v", r.PhysicalSize())
	}
}

func TestResolutionAcknowledgeAdoptsBackendSize(t *testing.T) {
	r := NewResolution(800, 600)
	r.SetScaleFactor(2)
	r.Acknowledge(2000, 1400)
	if r.RequestedSize() != (geom.LogicalSize{Width: 1000, Height: 700}) {
		t.Fatalf("requested = %v, want 1000x700", r.RequestedSize())
	}
	if r.TargetPhysicalSize() != r.PhysicalSize() {
		t.Fatalf("target %v differs from acknowledged %v", r.TargetPhysicalSize(), r.PhysicalSize())
	}

	r.Acknowledge(0, 0)
	if r.RequestedSize() != (geom.LogicalSize{Width: 1000, Height: 700}) {
		t.Fatalf("minimize dropped the requested size: %v", r.RequestedSize())
	}
}

func TestResizeConstraintsNormalized(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		in   ResizeConstraints
		want ResizeConstraints
	}{
		{"default untouched", DefaultResizeConstraints(), DefaultResizeConstraints()},
		{"max below min", ResizeConstraints{200, 100, 150, 50}, ResizeConstraints{200, 100, 200, 100}},
		{"zero minimums", ResizeConstraints{0, -5, inf, inf}, ResizeConstraints{1, 1, inf, inf}},
		{"zero everything", ResizeConstraints{}, ResizeConstraints{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("normalized mismatch (-want +got):\n%s", diff)
			}
			if again := got.Normalized(); again != got {
				t.Fatalf("normalization not idempotent: %v -> %v", got, again)
			}
			if got.MinWidth < 1 || got.MinHeight < 1 || got.MaxWidth < got.MinWidth || got.MaxHeight < got.MinHeight {
				t.Fatalf("invariant broken: %+v", got)
			}
		})
	}
}

func TestResizeConstraintsCheckLogsButDoesNotFail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	got := ResizeConstraints{MinWidth: 300, MinHeight: 200, MaxWidth: 10, MaxHeight: 10}.Check(logger)
	if got.MaxWidth != 300 || got.MaxHeight != 200 {
		t.Fatalf("expected max raised to min, got %+v", got)
	}
	if got.HasMax() != true {
		t.Fatalf("finite maximums expected")
	}
	if DefaultResizeConstraints().HasMax() {
		t.Fatalf("default maximums are unbounded")
	}
}

func TestEnsureDefaultsFillsOnlyMissing(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	world.Insert(w, e, Window{})
	world.Insert(w, e, Title("custom"))

	EnsureDefaults(w, e)

	if v, _ := world.Get[Title](w, e); v != "custom" {
		t.Fatalf("existing title overwritten: %q", v)
	}
	if v, _ := world.Get[Cursor](w, e); v != DefaultCursor() {
		t.Fatalf("expected default cursor, got %+v", v)
	}
	if v, _ := world.Get[ResizeConstraints](w, e); v != DefaultResizeConstraints() {
		t.Fatalf("expected default constraints, got %+v", v)
	}
	if v, ok := world.Get[PresentMode](w, e); !ok || v != AutoVsync {
		t.Fatalf("expected vsync present mode, got %v (present %v)", v, ok)
	}
	if v, ok := world.Get[Lifecycle](w, e); !ok || v != Pending {
		t.Fatalf("expected pending lifecycle, got %v", v)
	}
	if v, _ := world.Get[Resolution](w, e); v.RequestedWidth() != 1280 || v.RequestedHeight() != 720 {
		t.Fatalf("expected default 1280x720, got %vx%v", v.RequestedWidth(), v.RequestedHeight())
	}
}

func TestPrimaryDesignation(t *testing.T) {
	w := world.New()
	if _, ok := PrimaryWindow(w); ok {
		t.Fatalf("no primary expected")
	}
	a := SpawnPrimary(w, DefaultDescriptor())
	b := SpawnPrimary(w, DefaultDescriptor())
	if p, _ := PrimaryWindow(w); p != b {
		t.Fatalf("latest designation should win, got %v", p)
	}
	if ClearPrimary(w, a) {
		t.Fatalf("clearing a non-primary window must not drop the designation")
	}
	if !ClearPrimary(w, b) {
		t.Fatalf("clearing the primary should succeed")
	}
	if _, ok := PrimaryWindow(w); ok {
		t.Fatalf("primary should be gone")
	}
}

func TestPrimaryWindowIgnoresDespawnedRecord(t *testing.T) {
	w := world.New()
	e := SpawnPrimary(w, DefaultDescriptor())
	w.Despawn(e)
	if _, ok := PrimaryWindow(w); ok {
		t.Fatalf("dangling primary must not be reported")
	}
}

func TestCloseWhenRequested(t *testing.T) {
	w := world.New()
	bus := event.NewBus()
	policy := NewCloseWhenRequested(bus)
	watch := bus.NewReader()
	e := Spawn(w, DefaultDescriptor())

	bus.Send(CloseRequested{Window: e})
	policy.Run(w, bus)

	closed := event.Of[Closed](watch.Read(bus))
	if diff := cmp.Diff([]Closed{{Window: e}}, closed); diff != "" {
		t.Fatalf("closed events mismatch (-want +got):\n%s", diff)
	}

	world.Set(w, e, Closing)
	if Close(w, bus, e) {
		t.Fatalf("closing window cannot be closed again")
	}
}

func TestCloseOnEscClosesFocusedWindows(t *testing.T) {
	w := world.New()
	bus := event.NewBus()
	watch := bus.NewReader()
	a := Spawn(w, DefaultDescriptor())
	Spawn(w, DefaultDescriptor())
	world.Set(w, a, Focus(true))

	keys := input.NewButtonInput[input.KeyCode]()
	CloseOnEsc(w, bus, keys)
	if len(watch.Read(bus)) != 0 {
		t.Fatalf("nothing should close without escape")
	}
	keys.Press(input.KeyEscape)
	CloseOnEsc(w, bus, keys)
	if diff := cmp.Diff([]Closed{{Window: a}}, event.Of[Closed](watch.Read(bus))); diff != "" {
		t.Fatalf("closed events mismatch (-want +got):\n%s", diff)
	}
}

func TestExitConditions(t *testing.T) {
	t.Run("all closed", func(t *testing.T) {
		w := world.New()
		bus := event.NewBus()
		e := Spawn(w, DefaultDescriptor())
		if OnAllClosed.Check(w, bus) {
			t.Fatalf("open window should keep the app alive")
		}
		world.Set(w, e, Closing)
		if !OnAllClosed.Check(w, bus) {
			t.Fatalf("closing windows do not count as open")
		}
	})
	t.Run("primary closed", func(t *testing.T) {
		w := world.New()
		bus := event.NewBus()
		p := SpawnPrimary(w, DefaultDescriptor())
		Spawn(w, DefaultDescriptor())
		if OnPrimaryClosed.Check(w, bus) {
			t.Fatalf("primary still exists")
		}
		world.Set(w, p, Closing)
		if !OnPrimaryClosed.Check(w, bus) {
			t.Fatalf("closing primary should exit")
		}
		ClearPrimary(w, p)
		w.Despawn(p)
		if !OnPrimaryClosed.Check(w, bus) {
			t.Fatalf("missing primary should exit even with other windows open")
		}
	})
	t.Run("headless primary policy", func(t *testing.T) {
		w := world.New()
		bus := event.NewBus()
		watch := bus.NewReader()
		if !OnPrimaryClosed.Check(w, bus) {
			t.Fatalf("no primary at all counts as satisfied")
		}
		if len(event.Of[AppExit](watch.Read(bus))) != 1 {
			t.Fatalf("expected one AppExit")
		}
	})
	t.Run("dont exit", func(t *testing.T) {
		w := world.New()
		if DontExit.Check(w, event.NewBus()) {
			t.Fatalf("DontExit never exits")
		}
	})
}
