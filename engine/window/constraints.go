package window

import (
	"log/slog"
	"math"
)

// ResizeConstraints bound the inner size in logical pixels. A resizable
// window may still exceed them while maximized.
type ResizeConstraints struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

func DefaultResizeConstraints() ResizeConstraints {
	return ResizeConstraints{
		MinWidth:  180,
		MinHeight: 120,
		MaxWidth:  math.Inf(1),
		MaxHeight: math.Inf(1),
	}
}

// Normalized clamps the minimums to at least 1 and raises any maximum that
// is below its minimum. Applying it twice is the same as applying it once.
func (c ResizeConstraints) Normalized() ResizeConstraints {
	c.MinWidth = max(c.MinWidth, 1)
	c.MinHeight = max(c.MinHeight, 1)
	if c.MaxWidth < c.MinWidth {
		c.MaxWidth = c.MinWidth
	}
	if c.MaxHeight < c.MinHeight {
		c.MaxHeight = c.MinHeight
	}
	return c
}

// Check normalizes c, warning about each inverted axis.
func (c ResizeConstraints) Check(logger *slog.Logger) ResizeConstraints {
	n := c.Normalized()
	if c.MaxWidth < n.MinWidth {
		logger.Warn("maximum width is smaller than minimum width", "max_width", c.MaxWidth, "min_width", n.MinWidth)
	}
	if c.MaxHeight < n.MinHeight {
		logger.Warn("maximum height is smaller than minimum height", "max_height", c.MaxHeight, "min_height", n.MinHeight)
	}
	return n
}

// HasMax reports whether both maximums are finite; backends only accept a
// maximum size for both axes at once.
func (c ResizeConstraints) HasMax() bool {
	return !math.IsInf(c.MaxWidth, 1) && !math.IsInf(c.MaxHeight, 1)
}
