package geom

import (
	"errors"
	"fmt"
)

// ErrMonitorUnavailable is returned when a MonitorSelection matches no
// connected monitor.
var ErrMonitorUnavailable = errors.New("monitor unavailable")

type MonitorSelectionKind uint8

const (
	MonitorCurrent MonitorSelectionKind = iota
	MonitorPrimary
	MonitorNumber
)

// MonitorSelection names a monitor relative to the window or the system.
type MonitorSelection struct {
	Kind  MonitorSelectionKind
	Index int // for MonitorNumber, in enumeration order
}

func CurrentMonitor() MonitorSelection { return MonitorSelection{Kind: MonitorCurrent} }
func PrimaryMonitor() MonitorSelection { return MonitorSelection{Kind: MonitorPrimary} }
func MonitorAt(n int) MonitorSelection { return MonitorSelection{Kind: MonitorNumber, Index: n} }
func (s MonitorSelection) String() string {
	switch s.Kind {
	case MonitorCurrent:
		return "current"
	case MonitorPrimary:
		return "primary"
	default:
		return fmt.Sprintf("monitor %d", s.Index)
	}
}

type PositionKind uint8

const (
	PositionAutomatic PositionKind = iota
	PositionCentered
	PositionAt
)

// Position is where a window should be placed. The zero value lets the
// backend decide.
type Position struct {
	Kind    PositionKind
	Monitor MonitorSelection // PositionCentered
	Point   IVec2            // PositionAt, logical pixels
}

func Automatic() Position                      { return Position{} }
func CenteredOn(sel MonitorSelection) Position { return Position{Kind: PositionCentered, Monitor: sel} }
func At(x, y int) Position                     { return Position{Kind: PositionAt, Point: IVec2{X: x, Y: y}} }
func (p Position) IsAutomatic() bool           { return p.Kind == PositionAutomatic }

// SelectMonitor resolves sel against the enumerated monitors. primary and
// current may be nil when the backend cannot tell.
func SelectMonitor(sel MonitorSelection, monitors []Monitor, primary, current *Monitor) (Monitor, error) {
	var m *Monitor
	switch sel.Kind {
	case MonitorCurrent:
		m = current
	case MonitorPrimary:
		m = primary
	case MonitorNumber:
		if sel.Index >= 0 && sel.Index < len(monitors) {
			m = &monitors[sel.Index]
		}
	}
	if m == nil {
		return Monitor{}, fmt.Errorf("select %s: %w", sel, ErrMonitorUnavailable)
	}
	return *m, nil
}

// ResolvePosition turns a Position into a concrete physical outer position.
// ok is false for Automatic, or when the monitor could not be selected, in
// which case err says why.
func ResolvePosition(pos Position, size LogicalSize, scale float64, monitors []Monitor, primary, current *Monitor) (pt IVec2, ok bool, err error) {
	switch pos.Kind {
	case PositionCentered:
		m, err := SelectMonitor(pos.Monitor, monitors, primary, current)
		if err != nil {
			return IVec2{}, false, err
		}
		return CenterIn(m, size.ToPhysical(scale)), true, nil
	case PositionAt:
		return pos.Point.ToVec2().ToPhysical(scale), true, nil
	default:
		return IVec2{}, false, nil
	}
}
