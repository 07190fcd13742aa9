package painter

import (
	"github.com/slint-ui/slint-sub001/graphics"
)

// LineCap is the shape of stroked line endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape of stroked line joins.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// Stroke defines the style for stroking paths.
type Stroke struct {
	// Width is the line width in logical pixels. A width of zero
	// requests a hairline stroke of one device pixel.
	Width float64

	Cap  LineCap
	Join LineJoin

	// MiterLimit is the limit for miter joins before they fall back
	// to bevels.
	MiterLimit float64
}

// DefaultStroke returns a solid one pixel stroke with butt caps and
// miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// Painter is the drawing surface handed to item renderers. Coordinates
// are logical pixels; implementations apply the scale factor when
// producing device pixels.
//
// The state affected by Save/Restore is the current transform, the clip
// region, and the accumulated opacity. Clips only ever shrink the
// visible region.
type Painter interface {
	// Save pushes the current state onto the state stack.
	Save()
	// Restore pops the state stack. Restoring past the bottom entry
	// is a no-op.
	Restore()

	// Translate moves the origin of the coordinate system.
	Translate(x, y float64)
	// Rotate rotates the coordinate system by an angle in degrees,
	// clockwise, around the current origin.
	Rotate(angleDegrees float64)

	// ApplyOpacity multiplies the accumulated opacity by factor,
	// clamped to [0, 1].
	ApplyOpacity(factor float64)

	// CombineClip intersects the clip region with a rounded rectangle,
	// adjusted inward for the given border width so that the border's
	// outer half remains visible outside the clip. It reports whether
	// the resulting clip region is still non-empty.
	CombineClip(rect graphics.Rect, radii graphics.CornerRadii, borderWidth float64) bool
	// ClipBounds returns the bounding rectangle of the current clip
	// region in the current coordinate system.
	ClipBounds() graphics.Rect

	// FillRect fills a rectangle with a paint.
	FillRect(rect graphics.Rect, paint graphics.Paint)
	// DrawRect draws a rectangle with optional rounded corners, fill
	// and border. The border straddles the rectangle edge: half of it
	// lies inside, half outside.
	DrawRect(rect graphics.Rect, radii graphics.CornerRadii, fill, border graphics.Paint, borderWidth float64)

	// FillPath fills a path with a paint using the given fill rule.
	FillPath(path *Path, paint graphics.Paint, rule FillRule)
	// StrokePath strokes the outline of a path.
	StrokePath(path *Path, paint graphics.Paint, stroke Stroke)

	// DrawPixmap draws a sub-rectangle of a pixmap into a destination
	// rectangle, scaling as needed. Smooth selects bilinear filtering
	// over nearest neighbor.
	DrawPixmap(dst graphics.Rect, pm *graphics.Pixmap, src graphics.Rect, smooth bool)

	// ScaleFactor returns the device pixel ratio of the target.
	ScaleFactor() float64
}
