package window

import (
	"github.com/hubastard/casement/engine/event"
	"github.com/hubastard/casement/engine/input"
	"github.com/hubastard/casement/engine/world"
)

// Close starts closing window e. It returns false when e is not an open
// window.
func Close(w *world.World, bus *event.Bus, e world.Entity) bool {
	l, ok := world.Get[Lifecycle](w, e)
	if !ok || l == Closing {
		return false
	}
	bus.Send(Closed{Window: e})
	return true
}

// CloseWhenRequested honours every CloseRequested by closing the window.
type CloseWhenRequested struct {
	reader *event.Reader
}

func NewCloseWhenRequested(bus *event.Bus) *CloseWhenRequested {
	return &CloseWhenRequested{reader: bus.NewReader()}
}

func (p *CloseWhenRequested) Run(w *world.World, bus *event.Bus) {
	for _, req := range event.Of[CloseRequested](p.reader.Read(bus)) {
		Close(w, bus, req.Window)
	}
}

// CloseOnEsc closes the focused windows when Escape was just pressed. Handy
// for examples and prototypes.
func CloseOnEsc(w *world.World, bus *event.Bus, keys *input.ButtonInput[input.KeyCode]) {
	if !keys.JustPressed(input.KeyEscape) {
		return
	}
	world.Each(w, func(e world.Entity, f Focus) {
		if f {
			Close(w, bus, e)
		}
	})
}

// ExitCondition decides when closing windows ends the application.
type ExitCondition uint8

const (
	// OnAllClosed exits once no Pending or Live window is left.
	OnAllClosed ExitCondition = iota
	// OnPrimaryClosed exits once the primary window is closing or gone, or
	// was never designated.
	OnPrimaryClosed
	// DontExit leaves exiting to the application, e.g. headless programs.
	DontExit
)

func (c ExitCondition) String() string {
	switch c {
	case OnPrimaryClosed:
		return "on_primary_closed"
	case DontExit:
		return "dont_exit"
	default:
		return "on_all_closed"
	}
}

// Check sends AppExit when the condition holds and reports whether it did.
func (c ExitCondition) Check(w *world.World, bus *event.Bus) bool {
	var exit bool
	switch c {
	case OnAllClosed:
		exit = OpenCount(w) == 0
	case OnPrimaryClosed:
		p, ok := PrimaryWindow(w)
		if ok {
			l, _ := world.Get[Lifecycle](w, p)
			ok = l != Closing
		}
		exit = !ok
	}
	if exit {
		bus.Send(AppExit{})
	}
	return exit
}

// OpenCount counts windows that are Pending or Live.
func OpenCount(w *world.World) int {
	n := 0
	world.Each(w, func(_ world.Entity, l Lifecycle) {
		if l != Closing {
			n++
		}
	})
	return n
}
