package core

import (
	"fmt"
	"math"
	"time"

	"github.com/hubastard/casement/engine/platform"
)

type UpdateModeKind uint8

const (
	// Continuous runs an update every cycle and never waits.
	Continuous UpdateModeKind = iota
	// Reactive waits up to MaxWait for an event, but updates every cycle.
	Reactive
	// ReactiveLowPower also skips the update unless a window event
	// arrived, a redraw was requested or MaxWait elapsed.
	ReactiveLowPower
)

func (k UpdateModeKind) String() string {
	switch k {
	case Reactive:
		return "reactive"
	case ReactiveLowPower:
		return "reactive_low_power"
	default:
		return "continuous"
	}
}

// Forever as MaxWait blocks until the next event.
const Forever = time.Duration(math.MaxInt64)

type UpdateMode struct {
	Kind    UpdateModeKind
	MaxWait time.Duration
}

func ContinuousMode() UpdateMode { return UpdateMode{Kind: Continuous} }

func ReactiveMode(maxWait time.Duration) UpdateMode {
	return UpdateMode{Kind: Reactive, MaxWait: maxWait}
}

func ReactiveLowPowerMode(maxWait time.Duration) UpdateMode {
	return UpdateMode{Kind: ReactiveLowPower, MaxWait: maxWait}
}

func (m UpdateMode) String() string {
	if m.Kind == Continuous {
		return m.Kind.String()
	}
	if m.MaxWait == Forever {
		return fmt.Sprintf("%s(forever)", m.Kind)
	}
	return fmt.Sprintf("%s(%s)", m.Kind, m.MaxWait)
}

// Settings maps window focus to an update mode.
type Settings struct {
	Focused   UpdateMode
	Unfocused UpdateMode
}

// GameSettings updates continuously regardless of focus.
func GameSettings() Settings {
	return Settings{Focused: ContinuousMode(), Unfocused: ContinuousMode()}
}

// DesktopAppSettings only updates on input, and rarely when unfocused.
func DesktopAppSettings() Settings {
	return Settings{
		Focused:   ReactiveMode(5 * time.Second),
		Unfocused: ReactiveLowPowerMode(60 * time.Second),
	}
}

func (s Settings) Mode(focused bool) UpdateMode {
	if focused {
		return s.Focused
	}
	return s.Unfocused
}

// Scheduler holds the state that decides, once per backend cycle, whether
// application logic runs and how long the backend may block afterwards.
type Scheduler struct {
	settings Settings

	active            bool
	lowPowerEvent     bool
	redrawRequestSent bool
	timeoutReached    bool
	lastUpdate        time.Time
}

func NewScheduler(s Settings) *Scheduler {
	return &Scheduler{settings: s, active: true}
}

func (s *Scheduler) Settings() Settings         { return s.settings }
func (s *Scheduler) SetSettings(set Settings)   { s.settings = set }
func (s *Scheduler) Active() bool               { return s.active }
func (s *Scheduler) SetActive(active bool)      { s.active = active }
func (s *Scheduler) LastUpdate() time.Time      { return s.lastUpdate }
func (s *Scheduler) TimeoutReached() bool       { return s.timeoutReached }
func (s *Scheduler) RedrawRequestSent() bool    { return s.redrawRequestSent }
func (s *Scheduler) LowPowerEventPending() bool { return s.lowPowerEvent }

// Begin opens a cycle. The timeout counts as reached when the backend woke
// on its deadline or when MaxWait has passed since the last update anyway.
func (s *Scheduler) Begin(cause platform.StartCause, now time.Time, focused bool) {
	auto := cause == platform.StartResumeTimeReached
	manual := false
	if m := s.settings.Mode(focused); m.Kind != Continuous {
		manual = now.Sub(s.lastUpdate) >= m.MaxWait
	}
	s.lowPowerEvent = false
	s.timeoutReached = auto || manual
}

// NoteEvent records a window event in the current cycle.
func (s *Scheduler) NoteEvent() { s.lowPowerEvent = true }

// ShouldUpdate reports whether application logic runs this cycle.
func (s *Scheduler) ShouldUpdate(focused bool) bool {
	if !s.active {
		return false
	}
	if s.settings.Mode(focused).Kind != ReactiveLowPower {
		return true
	}
	return s.lowPowerEvent || s.redrawRequestSent || s.timeoutReached
}

// Ran records an update at now.
func (s *Scheduler) Ran(now time.Time) { s.lastUpdate = now }

// End closes the cycle and returns the control flow for the backend. The
// redraw flag is stored only after the deadline is computed, so a redraw
// requested by this cycle's update gates the next one.
func (s *Scheduler) End(now time.Time, focused, redrawRequested, exitRequested bool) platform.ControlFlow {
	var cf platform.ControlFlow
	switch m := s.settings.Mode(focused); m.Kind {
	case Continuous:
		cf = platform.ControlFlow{Kind: platform.Poll}
	default:
		cf = platform.ControlFlow{Kind: platform.WaitUntil, Deadline: now.Add(m.MaxWait)}
		if m.MaxWait == Forever || cf.Deadline.Before(now) {
			cf = platform.ControlFlow{Kind: platform.Wait}
		}
	}
	if redrawRequested {
		cf = platform.ControlFlow{Kind: platform.Poll}
	}
	if exitRequested {
		cf = platform.ControlFlow{Kind: platform.Exit}
	}
	s.redrawRequestSent = redrawRequested
	return cf
}
