package graphics

import (
	"math"
	"sort"
)

type paintKind uint8

const (
	paintNone paintKind = iota
	paintSolid
	paintLinear
	paintRadial
)

// Paint is a built, samplable paint: the result of resolving a Brush
// against the bounding box of the shape being filled. Gradient geometry is
// fixed at build time; ColorAt samples in the shape's local coordinates.
type Paint struct {
	kind  paintKind
	color Color

	// Gradient state.
	start, end Point   // linear: the gradient line
	center     Point   // radial
	radius     float64 // radial
	stops      []GradientStop
}

// BuildPaint converts a brush into a Paint for a shape of the given size.
//
// Linear gradients span the bounding box corner-to-corner along the
// brush's angle. Radial gradients are centered with radius
// (width+height)/4. Stops are taken in encounter order - the caller's
// sequence is assumed ordered by position - and their positions are made
// strictly unique (see manglePosition) because native gradient engines may
// merge stops at exactly equal positions.
//
// An unrecognized brush variant yields a fully transparent paint, never an
// error.
func BuildPaint(brush Brush, width, height float64) Paint {
	switch b := brush.(type) {
	case SolidBrush:
		return Paint{kind: paintSolid, color: b.Color}
	case LinearGradientBrush:
		start, end := lineForAngle(b.Angle, width, height)
		return Paint{
			kind:  paintLinear,
			start: start,
			end:   end,
			stops: mangleStops(b.Stops),
		}
	case RadialGradientBrush:
		return Paint{
			kind:   paintRadial,
			center: Pt(width/2, height/2),
			radius: (width + height) / 4,
			stops:  mangleStops(b.Stops),
		}
	default:
		return Paint{kind: paintNone}
	}
}

// SolidPaint returns a Paint that fills with a single color.
func SolidPaint(c Color) Paint {
	return Paint{kind: paintSolid, color: c}
}

// IsTransparent reports whether the paint would not change any pixel.
func (p *Paint) IsTransparent() bool {
	switch p.kind {
	case paintSolid:
		return p.color.IsTransparent()
	case paintLinear, paintRadial:
		return len(p.stops) == 0
	default:
		return true
	}
}

// IsSolid reports whether the paint is a single color.
func (p *Paint) IsSolid() bool { return p.kind == paintSolid }

// SolidColor returns the color of a solid paint, or Transparent.
func (p *Paint) SolidColor() Color {
	if p.kind == paintSolid {
		return p.color
	}
	return Transparent
}

// Stops returns the nudged gradient stops, nil for non-gradient paints.
func (p *Paint) Stops() []GradientStop { return p.stops }

// ColorAt samples the paint at a point in the shape's local coordinates.
func (p *Paint) ColorAt(x, y float64) Color {
	switch p.kind {
	case paintSolid:
		return p.color
	case paintLinear:
		dx := p.end.X - p.start.X
		dy := p.end.Y - p.start.Y
		lengthSq := dx*dx + dy*dy
		if lengthSq == 0 {
			return firstStopColor(p.stops)
		}
		t := ((x-p.start.X)*dx + (y-p.start.Y)*dy) / lengthSq
		return colorAtOffset(p.stops, t)
	case paintRadial:
		if p.radius <= 0 {
			return firstStopColor(p.stops)
		}
		dx := x - p.center.X
		dy := y - p.center.Y
		t := math.Sqrt(dx*dx+dy*dy) / p.radius
		return colorAtOffset(p.stops, t)
	default:
		return Transparent
	}
}

// manglePivot is the split point deciding whether a stop position is
// nudged upward or downward. Stops below it move up by idx epsilons, stops
// above move down, so positions stay inside [0, 1] and become strictly
// unique. Two stops both within an epsilon of the pivot may still collide;
// that is an accepted approximation.
const manglePivot = 0.54321

// mangleEpsilon is the smallest representable positive offset for a
// float32 position (the runtime stores stop positions as float32).
const mangleEpsilon = float32(1.1920929e-07) // 2^-23

// manglePosition makes the stop position at ordinal idx of count strictly
// unique while changing the gradient by an imperceptible amount.
func manglePosition(position float32, idx, count int) float32 {
	if position < manglePivot+67.8*mangleEpsilon {
		return position + mangleEpsilon*float32(idx)
	}
	return position - mangleEpsilon*float32(count-idx-1)
}

func mangleStops(stops []GradientStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		out[i] = GradientStop{
			Position: manglePosition(s.Position, i, len(stops)),
			Color:    s.Color,
		}
	}
	return out
}

// lineForAngle returns the start and end points of a gradient line within
// a box of the given size, based on the angle in degrees. The line spans
// the box corner-to-corner along the given direction.
func lineForAngle(angleDeg, width, height float64) (Point, Point) {
	angle := (angleDeg + 90) * math.Pi / 180
	s, c := math.Sincos(angle)

	if math.Abs(s) < 1e-7 {
		y := height / 2
		if c < 0 {
			return Pt(0, y), Pt(width, y)
		}
		return Pt(width, y), Pt(0, y)
	}

	var a, b Point
	if c*s < 0 {
		x := (s*width + c*height) * s / 2
		y := -c*x/s + height
		a = Pt(x, y)
		b = Pt(width-x, height-y)
	} else {
		x := (s*width - c*height) * s / 2
		y := -c * x / s
		a = Pt(width-x, height-y)
		b = Pt(x, y)
	}

	if s > 0 {
		return a, b
	}
	return b, a
}

func firstStopColor(stops []GradientStop) Color {
	if len(stops) == 0 {
		return Transparent
	}
	return stops[0].Color
}

// colorAtOffset returns the interpolated color at offset t with pad
// extension beyond [0, 1]. Interpolation happens in linear sRGB space.
func colorAtOffset(stops []GradientStop, t float64) Color {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	idx := sort.Search(len(stops), func(i int) bool {
		return float64(stops[i].Position) >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Position == s1.Position {
		return s1.Color
	}
	localT := (t - float64(s1.Position)) / float64(s2.Position-s1.Position)
	return lerpLinearSRGB(s1.Color, s2.Color, localT)
}

// lerpLinearSRGB interpolates two colors in linear sRGB space, which
// avoids the dark band plain component interpolation produces.
func lerpLinearSRGB(c1, c2 Color, t float64) Color {
	l1r, l1g, l1b := srgbToLinear(c1.R), srgbToLinear(c1.G), srgbToLinear(c1.B)
	l2r, l2g, l2b := srgbToLinear(c2.R), srgbToLinear(c2.G), srgbToLinear(c2.B)
	return Color{
		R: linearToSRGB(l1r + t*(l2r-l1r)),
		G: linearToSRGB(l1g + t*(l2g-l1g)),
		B: linearToSRGB(l1b + t*(l2b-l1b)),
		A: c1.A + t*(c2.A-c1.A),
	}
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
