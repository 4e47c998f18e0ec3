package geom

import (
	"fmt"
	"sort"
)

// VideoMode is a resolution/refresh pair a monitor can drive in exclusive
// fullscreen.
type VideoMode struct {
	Width       int
	Height      int
	RefreshRate int // Hz
}

// Monitor describes a connected display as reported by a backend.
type Monitor struct {
	Name        string
	Position    IVec2
	Size        PhysicalSize
	ScaleFactor float64
	Modes       []VideoMode
}

// BestVideoMode picks the widest mode, then the tallest, then the fastest.
// A monitor without modes is an environment fault and panics.
func BestVideoMode(m Monitor) VideoMode {
	modes := sortedModes(m)
	sort.SliceStable(modes, func(i, j int) bool {
		a, b := modes[i], modes[j]
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.RefreshRate > b.RefreshRate
	})
	return modes[0]
}

// FittingVideoMode picks the mode closest to width, then closest to height,
// then the fastest.
func FittingVideoMode(m Monitor, width, height int) VideoMode {
	modes := sortedModes(m)
	sort.SliceStable(modes, func(i, j int) bool {
		a, b := modes[i], modes[j]
		if da, db := absDiff(a.Width, width), absDiff(b.Width, width); da != db {
			return da < db
		}
		if da, db := absDiff(a.Height, height), absDiff(b.Height, height); da != db {
			return da < db
		}
		return a.RefreshRate > b.RefreshRate
	})
	return modes[0]
}

func sortedModes(m Monitor) []VideoMode {
	if len(m.Modes) == 0 {
		panic(fmt.Sprintf("geom: monitor %q reports no video modes", m.Name))
	}
	return append([]VideoMode(nil), m.Modes...)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// CenterIn returns the top-left corner that centres a window of the given
// physical size on the monitor. Windows larger than the monitor are pinned
// to its origin on that axis.
func CenterIn(m Monitor, window PhysicalSize) IVec2 {
	return IVec2{
		X: max(m.Size.Width-window.Width, 0)/2 + m.Position.X,
		Y: max(m.Size.Height-window.Height, 0)/2 + m.Position.Y,
	}
}
