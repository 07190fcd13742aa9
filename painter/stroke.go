package painter

import (
	"math"

	"github.com/slint-ui/slint-sub001/graphics"
)

// strokeOutline converts a stroke of the given path into fill geometry.
// Each segment becomes a quad and each joint a wedge; the pieces overlap
// and are meant to be filled with the nonzero rule, which makes the
// construction robust against self-intersection.
func strokeOutline(p *Path, stroke Stroke) [][]graphics.Point {
	subpaths, closed := p.Flatten()
	half := stroke.Width / 2
	if half <= 0 {
		half = 0.5
	}

	var out [][]graphics.Point
	for si, pts := range subpaths {
		pts = dedupPoints(pts)
		if len(pts) < 2 {
			continue
		}
		isClosed := closed[si]
		if isClosed && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
			if len(pts) < 2 {
				continue
			}
		}

		segs := len(pts) - 1
		if isClosed {
			segs = len(pts)
		}
		for i := 0; i < segs; i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			out = append(out, segmentQuad(a, b, half))
		}

		joints := 0
		if isClosed {
			joints = len(pts)
		} else if len(pts) > 2 {
			joints = len(pts) - 2
		}
		for j := 0; j < joints; j++ {
			var prev, at, next graphics.Point
			if isClosed {
				prev = pts[j]
				at = pts[(j+1)%len(pts)]
				next = pts[(j+2)%len(pts)]
			} else {
				prev = pts[j]
				at = pts[j+1]
				next = pts[j+2]
			}
			if wedge := joinWedge(prev, at, next, half, stroke); wedge != nil {
				out = append(out, wedge)
			}
		}

		if !isClosed {
			if poly := capGeometry(pts[1], pts[0], half, stroke.Cap); poly != nil {
				out = append(out, poly)
			}
			if poly := capGeometry(pts[len(pts)-2], pts[len(pts)-1], half, stroke.Cap); poly != nil {
				out = append(out, poly)
			}
		}
	}
	return out
}

func dedupPoints(pts []graphics.Point) []graphics.Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if math.Abs(p.X-last.X) > rasterEpsilon || math.Abs(p.Y-last.Y) > rasterEpsilon {
			out = append(out, p)
		}
	}
	return out
}

// segmentQuad returns the rectangle covering a segment widened by half
// on each side.
func segmentQuad(a, b graphics.Point, half float64) []graphics.Point {
	nx, ny := segmentNormal(a, b)
	return []graphics.Point{
		{X: a.X + nx*half, Y: a.Y + ny*half},
		{X: b.X + nx*half, Y: b.Y + ny*half},
		{X: b.X - nx*half, Y: b.Y - ny*half},
		{X: a.X - nx*half, Y: a.Y - ny*half},
	}
}

func segmentNormal(a, b graphics.Point) (nx, ny float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < rasterEpsilon {
		return 0, 0
	}
	return -dy / length, dx / length
}

// joinWedge fills the gap on the outer side of a joint.
func joinWedge(prev, at, next graphics.Point, half float64, stroke Stroke) []graphics.Point {
	n1x, n1y := segmentNormal(prev, at)
	n2x, n2y := segmentNormal(at, next)

	cross := n1x*n2y - n1y*n2x
	if math.Abs(cross) < rasterEpsilon {
		return nil
	}
	// Outer side has the normals pointing away from the turn.
	sign := 1.0
	if cross > 0 {
		sign = -1.0
	}

	p1 := graphics.Pt(at.X+sign*n1x*half, at.Y+sign*n1y*half)
	p2 := graphics.Pt(at.X+sign*n2x*half, at.Y+sign*n2y*half)

	switch stroke.Join {
	case LineJoinRound:
		return roundFan(at, p1, p2, half)
	case LineJoinMiter:
		// Miter point where the two offset edges meet.
		dot := n1x*n2x + n1y*n2y
		scale := 1 / (1 + dot)
		if dot > -1+rasterEpsilon {
			mx := at.X + sign*(n1x+n2x)*half*scale
			my := at.Y + sign*(n1y+n2y)*half*scale
			miterLen := math.Hypot(mx-at.X, my-at.Y)
			if miterLen <= stroke.MiterLimit*half {
				return []graphics.Point{at, p1, {X: mx, Y: my}, p2}
			}
		}
		fallthrough
	default:
		return []graphics.Point{at, p1, p2}
	}
}

// capGeometry extends an open subpath end. from is the neighboring
// point, end the endpoint being capped.
func capGeometry(from, end graphics.Point, half float64, capStyle LineCap) []graphics.Point {
	dx, dy := end.X-from.X, end.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < rasterEpsilon {
		return nil
	}
	dx /= length
	dy /= length
	nx, ny := -dy, dx

	switch capStyle {
	case LineCapSquare:
		return []graphics.Point{
			{X: end.X + nx*half, Y: end.Y + ny*half},
			{X: end.X + nx*half + dx*half, Y: end.Y + ny*half + dy*half},
			{X: end.X - nx*half + dx*half, Y: end.Y - ny*half + dy*half},
			{X: end.X - nx*half, Y: end.Y - ny*half},
		}
	case LineCapRound:
		p1 := graphics.Pt(end.X+nx*half, end.Y+ny*half)
		p2 := graphics.Pt(end.X-nx*half, end.Y-ny*half)
		return roundFan(end, p1, p2, half)
	default:
		return nil
	}
}

// roundFan approximates the circular arc from p1 to p2 around center
// with a triangle fan polygon. It always takes the shorter sweep.
func roundFan(center, p1, p2 graphics.Point, r float64) []graphics.Point {
	a1 := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	a2 := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	sweep := a2 - a1
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	steps := maxInt(2, int(math.Ceil(math.Abs(sweep)/(math.Pi/8))))
	fan := make([]graphics.Point, 0, steps+2)
	fan = append(fan, center)
	for i := 0; i <= steps; i++ {
		a := a1 + sweep*float64(i)/float64(steps)
		fan = append(fan, graphics.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a)))
	}
	return fan
}
