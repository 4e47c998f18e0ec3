package window

import "github.com/hubastard/casement/engine/geom"

// Resolution is the requested logical size of a window together with the
// physical size the backend last acknowledged and the scale factor relating
// them. The effective scale factor is the override when one is set, the
// backend-reported factor otherwise.
type Resolution struct {
	requestedWidth  float64
	requestedHeight float64
	physicalWidth   int
	physicalHeight  int
	scaleFactor     float64
	override        float64
	hasOverride     bool
}

func NewResolution(width, height float64) Resolution {
	r := Resolution{requestedWidth: width, requestedHeight: height, scaleFactor: 1}
	r.syncPhysical()
	return r
}

// NewResolutionWithOverride pins the scale factor regardless of what the
// backend reports.
func NewResolutionWithOverride(width, height, scale float64) Resolution {
	r := Resolution{requestedWidth: width, requestedHeight: height, scaleFactor: 1, override: scale, hasOverride: true}
	r.syncPhysical()
	return r
}

func DefaultResolution() Resolution { return NewResolution(1280, 720) }

func (r *Resolution) syncPhysical() {
	p := r.RequestedSize().ToPhysical(r.ScaleFactor())
	r.physicalWidth, r.physicalHeight = p.Width, p.Height
}

func (r Resolution) RequestedWidth() float64  { return r.requestedWidth }
func (r Resolution) RequestedHeight() float64 { return r.requestedHeight }

func (r Resolution) RequestedSize() geom.LogicalSize {
	return geom.LogicalSize{Width: r.requestedWidth, Height: r.requestedHeight}
}

// Width is the current logical width derived from the physical size.
func (r Resolution) Width() float64  { return geom.ToLogical(r.physicalWidth, r.ScaleFactor()) }
func (r Resolution) Height() float64 { return geom.ToLogical(r.physicalHeight, r.ScaleFactor()) }

func (r Resolution) Size() geom.LogicalSize {
	return geom.LogicalSize{Width: r.Width(), Height: r.Height()}
}

func (r Resolution) PhysicalWidth() int  { return r.physicalWidth }
func (r Resolution) PhysicalHeight() int { return r.physicalHeight }

func (r Resolution) PhysicalSize() geom.PhysicalSize {
	return geom.PhysicalSize{Width: r.physicalWidth, Height: r.physicalHeight}
}

// IsZero reports a degenerate 0x0 surface, which backends use for minimized
// windows.
func (r Resolution) IsZero() bool { return r.PhysicalSize().IsZero() }

func (r Resolution) ScaleFactor() float64 {
	if r.hasOverride {
		return r.override
	}
	return r.scaleFactor
}

func (r Resolution) BaseScaleFactor() float64 { return r.scaleFactor }

func (r Resolution) ScaleFactorOverride() (float64, bool) { return r.override, r.hasOverride }

// TargetPhysicalSize is the physical size the backend should be asked for.
func (r Resolution) TargetPhysicalSize() geom.PhysicalSize {
	return r.RequestedSize().ToPhysical(r.ScaleFactor())
}

func (r *Resolution) SetRequested(width, height float64) {
	r.requestedWidth, r.requestedHeight = width, height
}

// SetPhysical records a size acknowledged by the backend.
func (r *Resolution) SetPhysical(width, height int) {
	r.physicalWidth, r.physicalHeight = width, height
}

// Acknowledge records a size the backend chose on its own, such as a
// user drag, and adopts it as the requested size so the next push does
// not undo it. A 0x0 surface keeps the previous request.
func (r *Resolution) Acknowledge(width, height int) {
	r.SetPhysical(width, height)
	if r.IsZero() {
		return
	}
	r.requestedWidth, r.requestedHeight = r.Width(), r.Height()
}

// SetScaleFactor records the backend-reported factor.
func (r *Resolution) SetScaleFactor(scale float64) { r.scaleFactor = scale }

func (r *Resolution) SetScaleFactorOverride(scale float64) {
	r.override, r.hasOverride = scale, true
}

func (r *Resolution) ClearScaleFactorOverride() {
	r.override, r.hasOverride = 0, false
}
