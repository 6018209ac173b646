package scene

import (
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/drawutil"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// EdgeType tags an edge as directed or undirected. Both render the same.
type EdgeType int

const (
	Undirected EdgeType = iota
	Directed
)

func (t EdgeType) String() string {
	if t == Directed {
		return "directed"
	}
	return "undirected"
}

// optional is a float that may be unset.
type optional struct {
	v  float64
	ok bool
}

// Edge is a straight ribbon between two nodes. It stores the endpoint ids
// and the positions they had when the geometry was last derived.
type Edge struct {
	id        int
	typ       EdgeType
	fromID    int
	toID      int
	from, to  geom.Vec
	label     string
	color     color.RGBA
	dashed    bool
	thickness float64
	weight    optional
	flow      optional

	style textStyle

	vertices []geom.Vertex
	text     backend.Text
}

// NewEdge creates an edge between two nodes with the built-in defaults:
// black, solid, thickness 5.
func NewEdge(id int, from, to *Node, typ EdgeType) *Edge {
	e := &Edge{
		id:        id,
		typ:       typ,
		fromID:    from.ID(),
		toID:      to.ID(),
		from:      from.Position(),
		to:        to.Position(),
		color:     DefaultEdgeColor,
		thickness: DefaultEdgeThickness,
	}
	e.update()
	return e
}

func (e *Edge) ID() int                 { return e.id }
func (e *Edge) Type() EdgeType          { return e.typ }
func (e *Edge) FromID() int             { return e.fromID }
func (e *Edge) ToID() int               { return e.toID }
func (e *Edge) From() geom.Vec          { return e.from }
func (e *Edge) To() geom.Vec            { return e.to }
func (e *Edge) Label() string           { return e.label }
func (e *Edge) Color() color.RGBA       { return e.color }
func (e *Edge) Dashed() bool            { return e.dashed }
func (e *Edge) Thickness() float64      { return e.thickness }
func (e *Edge) Weight() (float64, bool) { return e.weight.v, e.weight.ok }
func (e *Edge) Flow() (float64, bool)   { return e.flow.v, e.flow.ok }

// Vertices returns a copy of the derived geometry, four vertices per quad.
func (e *Edge) Vertices() []geom.Vertex { return slices.Clone(e.vertices) }

// Text is the positioned label, empty when there is nothing to show.
func (e *Edge) Text() backend.Text { return e.text }

// Line describes the edge geometry.
func (e *Edge) Line() drawutil.Line {
	style := drawutil.Full
	if e.dashed {
		style = drawutil.Dashed
	}
	return drawutil.Line{From: e.from, To: e.to, Width: e.thickness, Style: style}
}

// SetFont sets the font labels are measured with.
func (e *Edge) SetFont(f backend.Font, size int) {
	e.style = textStyle{font: f, size: size}
	e.update()
}

// SetFrom reconnects the edge to n at its current position.
func (e *Edge) SetFrom(n *Node) {
	e.fromID, e.from = n.ID(), n.Position()
	e.update()
}

// SetTo reconnects the edge to n at its current position.
func (e *Edge) SetTo(n *Node) {
	e.toID, e.to = n.ID(), n.Position()
	e.update()
}

func (e *Edge) SetType(t EdgeType) {
	e.typ = t
	e.update()
}

func (e *Edge) SetLabel(label string) {
	e.label = label
	e.update()
}

func (e *Edge) SetColor(c color.RGBA) {
	e.color = c
	e.update()
}

func (e *Edge) SetDashed(dashed bool) {
	e.dashed = dashed
	e.update()
}

func (e *Edge) SetThickness(t float64) error {
	if !drawutil.ValidWidth(t) {
		return errors.New(errors.ErrCodeInvalidGeometry, "edge %d: thickness must be finite and > 0, got %v", e.id, t)
	}
	e.thickness = t
	e.update()
	return nil
}

func (e *Edge) SetWeight(w float64) {
	e.weight = optional{v: w, ok: true}
	e.update()
}

func (e *Edge) ClearWeight() {
	e.weight = optional{}
	e.update()
}

func (e *Edge) SetFlow(f float64) {
	e.flow = optional{v: f, ok: true}
	e.update()
}

func (e *Edge) ClearFlow() {
	e.flow = optional{}
	e.update()
}

// setEndpoints moves the cached endpoint positions without changing ids.
func (e *Edge) setEndpoints(from, to geom.Vec) {
	e.from, e.to = from, to
	e.update()
}

func (e *Edge) update() {
	vs, err := e.Line().Vertices(e.color)
	if err != nil {
		// Thickness is validated by SetThickness.
		vs = nil
	}
	e.vertices = vs
	e.text = labelAt(e.style.text(e.labelText()), e.from.Mid(e.to))
}

// labelText joins the label, weight and flow, skipping empty parts.
func (e *Edge) labelText() string {
	parts := make([]string, 0, 3)
	if e.label != "" {
		parts = append(parts, e.label)
	}
	if e.weight.ok {
		parts = append(parts, "w: "+strconv.FormatInt(int64(math.Round(e.weight.v)), 10))
	}
	if e.flow.ok {
		parts = append(parts, "f: "+strconv.FormatInt(int64(math.Round(e.flow.v)), 10))
	}
	return strings.Join(parts, " ")
}
