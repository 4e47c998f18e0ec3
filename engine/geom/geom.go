// Package geom holds the pixel-space math shared by the window record, the
// backends and the synchroniser: logical/physical conversion, monitor
// selection and video mode choice. Everything here is pure.
package geom

import "math"

// IVec2 is an integer point, usually in physical pixels.
type IVec2 struct{ X, Y int }

// Vec2 is a floating point position.
type Vec2 struct{ X, Y float64 }

// PhysicalSize is a size in device pixels.
type PhysicalSize struct{ Width, Height int }

// LogicalSize is a size in scale-independent pixels.
type LogicalSize struct{ Width, Height float64 }

// ToPhysical converts a logical length to the nearest whole physical pixel.
func ToPhysical(logical, scale float64) int {
	return int(math.Round(logical * scale))
}

// ToLogical converts a physical length to logical units.
func ToLogical(physical int, scale float64) float64 {
	return float64(physical) / scale
}

func (s LogicalSize) ToPhysical(scale float64) PhysicalSize {
	return PhysicalSize{Width: ToPhysical(s.Width, scale), Height: ToPhysical(s.Height, scale)}
}

func (s PhysicalSize) ToLogical(scale float64) LogicalSize {
	return LogicalSize{Width: ToLogical(s.Width, scale), Height: ToLogical(s.Height, scale)}
}

// IsZero reports whether both dimensions are zero, which backends use to
// signal a minimized window.
func (s PhysicalSize) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// ToPhysical rounds a logical point to physical pixels.
func (p Vec2) ToPhysical(scale float64) IVec2 {
	return IVec2{X: ToPhysical(p.X, scale), Y: ToPhysical(p.Y, scale)}
}

// Div divides both coordinates, e.g. a physical point by the scale factor.
func (p Vec2) Div(factor float64) Vec2 {
	return Vec2{X: p.X / factor, Y: p.Y / factor}
}

func (p IVec2) ToVec2() Vec2 { return Vec2{X: float64(p.X), Y: float64(p.Y)} }
