// Package drawutil turns edge endpoints into drawable geometry: ribbon
// quads for the scene (Line) and clipped cell lines for the terminal
// backend (ClipSegment, DrawLine).
package drawutil

import (
	"image"
	"math"

	"github.com/wesen/graphview/pkg/geom"
)

// ClipSegment clips a–b to r with Liang–Barsky. It reports false when the
// segment lies entirely outside r or an endpoint is not finite, so
// callers never rasterize a line that runs far off screen.
func ClipSegment(a, b geom.Vec, r geom.Rect) (geom.Vec, geom.Vec, bool) {
	if !finite(a) || !finite(b) {
		return a, b, false
	}
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, a.X - r.Min.X},
		{d.X, r.Max.X - a.X},
		{-d.Y, a.Y - r.Min.Y},
		{d.Y, r.Max.Y - a.Y},
	} {
		p, q := e[0], e[1]
		switch {
		case p == 0 && q < 0:
			return a, b, false
		case p == 0:
			continue
		case p < 0:
			t0 = math.Max(t0, q/p)
		default:
			t1 = math.Min(t1, q/p)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

func finite(v geom.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Bresenham returns the cells on the line from (x0,y0) to (x1,y1),
// both endpoints included. The walk stops after dx+dy+1 cells.
func Bresenham(x0, y0, x1, y1 int) []image.Point {
	from, to := image.Pt(x0, y0), image.Pt(x1, y1)
	d := to.Sub(from)
	step := image.Pt(sign(d.X), sign(d.Y))
	dx, dy := abs(d.X), abs(d.Y)

	pts := make([]image.Point, 0, dx+dy+1)
	p, e := from, dx-dy
	for len(pts) <= dx+dy {
		pts = append(pts, p)
		if p == to {
			break
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			p.X += step.X
		}
		if e2 < dx {
			e += dx
			p.Y += step.Y
		}
	}
	return pts
}

// LineChar returns the box-drawing character for a line segment with the
// given direction vector (dx, dy). Segments within roughly 27° of an axis
// use the straight character for that axis.
func LineChar(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return '•'
	case abs(dy)*2 < abs(dx):
		return '─'
	case abs(dx)*2 < abs(dy):
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	}
	return '/'
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
