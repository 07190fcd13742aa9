package painter

import (
	"math"
	"sort"

	"github.com/slint-ui/slint-sub001/graphics"
)

// edge is a non-horizontal line segment normalized so y0 < y1, used for
// scanline conversion.
type edge struct {
	y0, y1 float64
	x0     float64
	dxdy   float64
	dir    int
}

const rasterEpsilon = 1e-9

// xAt returns the x coordinate of the edge at the given y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// buildEdges converts flattened subpaths into an edge list. Every
// subpath is treated as closed for filling. Horizontal edges carry no
// winding and are skipped.
func buildEdges(subpaths [][]graphics.Point) []edge {
	var edges []edge
	for _, pts := range subpaths {
		if len(pts) < 2 {
			continue
		}
		n := len(pts)
		for i := 0; i < n; i++ {
			p0 := pts[i]
			p1 := pts[(i+1)%n]
			x0, y0 := p0.X, p0.Y
			x1, y1 := p1.X, p1.Y
			dir := 1
			if y0 > y1 {
				x0, x1 = x1, x0
				y0, y1 = y1, y0
				dir = -1
			}
			dy := y1 - y0
			if dy < rasterEpsilon {
				continue
			}
			edges = append(edges, edge{
				y0:   y0,
				y1:   y1,
				x0:   x0,
				dxdy: (x1 - x0) / dy,
				dir:  dir,
			})
		}
	}
	return edges
}

// supersample is the number of sub-scanlines per pixel row. Four rows
// with fractional horizontal coverage give 1/4-pixel vertical and
// continuous horizontal anti-aliasing.
const supersample = 4

// crossing is an edge intersection with a scanline.
type crossing struct {
	x   float64
	dir int
}

// fillEdges scanline-converts the edges within the integer clip
// rectangle [clipX0, clipX1) x [clipY0, clipY1) and calls row once per
// covered pixel row with a coverage buffer. cov[i] is the coverage in
// [0, 1] of pixel (x0+i, y).
func fillEdges(edges []edge, rule FillRule, clipX0, clipY0, clipX1, clipY1 int, row func(y, x0 int, cov []float64)) {
	if len(edges) == 0 || clipX0 >= clipX1 || clipY0 >= clipY1 {
		return
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	xMin, xMax := math.Inf(1), math.Inf(-1)
	for i := range edges {
		e := &edges[i]
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
		xMin = math.Min(xMin, math.Min(e.x0, e.xAt(e.y1)))
		xMax = math.Max(xMax, math.Max(e.x0, e.xAt(e.y1)))
	}

	py0 := maxInt(clipY0, int(math.Floor(yMin)))
	py1 := minInt(clipY1, int(math.Ceil(yMax)))
	px0 := maxInt(clipX0, int(math.Floor(xMin)))
	px1 := minInt(clipX1, int(math.Ceil(xMax)))
	if py0 >= py1 || px0 >= px1 {
		return
	}

	width := px1 - px0
	cov := make([]float64, width)
	crossings := make([]crossing, 0, 16)

	for py := py0; py < py1; py++ {
		for i := range cov {
			cov[i] = 0
		}
		covered := false

		for sub := 0; sub < supersample; sub++ {
			y := float64(py) + (float64(sub)+0.5)/supersample

			crossings = crossings[:0]
			for i := range edges {
				e := &edges[i]
				if e.y0 <= y && y < e.y1 {
					crossings = append(crossings, crossing{x: e.xAt(y), dir: e.dir})
				}
			}
			if len(crossings) == 0 {
				continue
			}
			sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

			if rule == FillNonzero {
				winding := 0
				var spanStart float64
				for _, c := range crossings {
					if winding == 0 {
						spanStart = c.x
					}
					winding += c.dir
					if winding == 0 {
						covered = accumulateSpan(cov, px0, px1, spanStart, c.x) || covered
					}
				}
			} else {
				for i := 0; i+1 < len(crossings); i += 2 {
					covered = accumulateSpan(cov, px0, px1, crossings[i].x, crossings[i+1].x) || covered
				}
			}
		}

		if covered {
			row(py, px0, cov)
		}
	}
}

// accumulateSpan adds one sub-scanline's worth of coverage for the span
// [x1, x2) to the coverage buffer. Partial pixels at the span ends get
// fractional coverage.
func accumulateSpan(cov []float64, px0, px1 int, x1, x2 float64) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1 = math.Max(x1, float64(px0))
	x2 = math.Min(x2, float64(px1))
	if x1 >= x2 {
		return false
	}

	const subWeight = 1.0 / supersample

	i1 := int(math.Floor(x1))
	i2 := int(math.Ceil(x2)) - 1
	if i1 == i2 {
		cov[i1-px0] += (x2 - x1) * subWeight
		return true
	}
	cov[i1-px0] += (float64(i1+1) - x1) * subWeight
	for i := i1 + 1; i < i2; i++ {
		cov[i-px0] += subWeight
	}
	cov[i2-px0] += (x2 - float64(i2)) * subWeight
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
