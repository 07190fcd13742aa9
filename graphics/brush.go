package graphics

// Brush describes what to paint with, independent of any native paint
// object. This is a sealed interface - only types in this package
// implement it.
//
// Supported brush types:
//   - SolidBrush: a single solid color
//   - LinearGradientBrush: a linear color transition at an angle
//   - RadialGradientBrush: a circular color transition from the center
//   - NoBrush: paints nothing
type Brush interface {
	// brushMarker is an unexported method that seals this interface.
	brushMarker()

	// IsTransparent reports whether the brush would paint nothing at all.
	IsTransparent() bool
}

// GradientStop describes a single color stop in a gradient. The colors
// between stops are interpolated. Position is normalized to [0, 1] and is
// float32 to match the runtime's representation; the caller supplies stops
// already ordered by position.
type GradientStop struct {
	Position float32
	Color    Color
}

// SolidBrush is a single-color brush.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// IsTransparent implements Brush.
func (b SolidBrush) IsTransparent() bool { return b.Color.IsTransparent() }

// Solid creates a SolidBrush from a Color.
func Solid(c Color) SolidBrush {
	return SolidBrush{Color: c}
}

// LinearGradientBrush is a linear color transition along a line derived
// from the angle (in degrees, clockwise, 0 pointing up) and the bounding
// box of the shape being filled.
type LinearGradientBrush struct {
	Angle float64
	Stops []GradientStop
}

func (LinearGradientBrush) brushMarker() {}

// IsTransparent implements Brush. A gradient with no stops paints nothing.
func (b LinearGradientBrush) IsTransparent() bool { return len(b.Stops) == 0 }

// RadialGradientBrush is a circular color transition centered in the
// bounding box of the shape being filled.
type RadialGradientBrush struct {
	Stops []GradientStop
}

func (RadialGradientBrush) brushMarker() {}

// IsTransparent implements Brush.
func (b RadialGradientBrush) IsTransparent() bool { return len(b.Stops) == 0 }

// NoBrush paints nothing. It is the fallback for brush variants the
// builder does not recognize, and the zero value for optional brushes
// such as a path's stroke.
type NoBrush struct{}

func (NoBrush) brushMarker() {}

// IsTransparent implements Brush.
func (NoBrush) IsTransparent() bool { return true }

// IsTransparentBrush reports whether b is nil or paints nothing.
func IsTransparentBrush(b Brush) bool {
	return b == nil || b.IsTransparent()
}
