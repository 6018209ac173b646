package drawutil

import (
	"image/color"
	"math"

	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// LineStyle selects how a Line is tessellated.
type LineStyle int

const (
	// Full is one solid quad from end to end.
	Full LineStyle = iota
	// Dashed is a run of quads separated by gaps.
	Dashed
)

func (s LineStyle) String() string {
	switch s {
	case Full:
		return "full"
	case Dashed:
		return "dashed"
	default:
		return "unknown"
	}
}

const (
	// DashPeriodFactor is the dash period in multiples of the line width.
	DashPeriodFactor = 4.0
	// DefaultDashFill is the fraction of each period covered by a dash.
	DefaultDashFill = 0.5
)

// Line is a ribbon of width Width from From to To.
//
// A zero DashFill means DefaultDashFill. Quads are regenerated from
// scratch on every call; there is no incremental patching.
type Line struct {
	From, To geom.Vec
	Width    float64
	Style    LineStyle
	DashFill float64
}

func (l Line) dashFill() float64 {
	if l.DashFill == 0 {
		return DefaultDashFill
	}
	return l.DashFill
}

// Validate reports whether the line can be tessellated.
// ValidWidth reports whether w is a usable line width: finite and > 0.
func ValidWidth(w float64) bool {
	return w > 0 && !math.IsInf(w, 0)
}

func (l Line) Validate() error {
	if !ValidWidth(l.Width) {
		return errors.New(errors.ErrCodeInvalidGeometry, "line width must be positive, got %v", l.Width)
	}
	if f := l.dashFill(); !(f > 0 && f <= 1) {
		return errors.New(errors.ErrCodeInvalidGeometry, "dash fill must be in (0,1], got %v", f)
	}
	switch l.Style {
	case Full, Dashed:
	default:
		return errors.New(errors.ErrCodeInvalidGeometry, "unknown line style %d", l.Style)
	}
	return nil
}

// Quads tessellates the line. Coincident endpoints yield no quads.
func (l Line) Quads() ([]geom.Quad, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if l.From.Eq(l.To) {
		return nil, nil
	}
	if l.Style == Dashed {
		return dashedQuads(l.From, l.To, l.Width, l.dashFill()), nil
	}
	return []geom.Quad{segmentQuad(l.From, l.To, halfWidthNormal(l.From, l.To, l.Width))}, nil
}

// Vertices tessellates the line and colors every vertex with c, four
// vertices per quad.
func (l Line) Vertices(c color.RGBA) ([]geom.Vertex, error) {
	quads, err := l.Quads()
	if err != nil {
		return nil, err
	}
	out := make([]geom.Vertex, 0, 4*len(quads))
	for _, q := range quads {
		vs := q.Vertices(c)
		out = append(out, vs[:]...)
	}
	return out, nil
}

// halfWidthNormal is the unit normal of u→v scaled to half the width.
func halfWidthNormal(u, v geom.Vec, w float64) geom.Vec {
	return v.Sub(u).Perp().Unit().Mul(w / 2)
}

// segmentQuad returns u-n, u+n, v+n, v-n.
func segmentQuad(u, v, n geom.Vec) geom.Quad {
	return geom.Quad{u.Sub(n), u.Add(n), v.Add(n), v.Sub(n)}
}

func dashedQuads(u, v geom.Vec, w, fill float64) []geom.Quad {
	period := DashPeriodFactor * w
	d := v.Sub(u)
	length := d.Len()
	dir := d.Div(length)
	n := halfWidthNormal(u, v, w)

	count := int(length / period)
	quads := make([]geom.Quad, 0, count+1)
	for i := 0; i < count; i++ {
		a := u.Add(dir.Mul(period * float64(i)))
		b := u.Add(dir.Mul(period * (float64(i) + fill)))
		quads = append(quads, segmentQuad(a, b, n))
	}

	// The last dash starts at the last period boundary and is clamped to
	// the segment end; it is zero-length when the length is a whole
	// number of periods.
	a := u.Add(dir.Mul(period * float64(count)))
	b := u.Add(dir.Mul(math.Min(period*(float64(count)+fill), length)))
	quads = append(quads, segmentQuad(a, b, n))
	return quads
}
