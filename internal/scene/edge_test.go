package scene

import (
	"math"
	"reflect"
	"testing"

	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

func testEdge(dashed bool) *Edge {
	u := NewNode(0, geom.Pt(100, 100))
	v := NewNode(1, geom.Pt(200, 100))
	e := NewEdge(0, u, v, Undirected)
	e.SetDashed(dashed)
	return e
}

// ── Geometry ──

func TestEdgeEndToEndGeometry(t *testing.T) {
	e := testEdge(false)
	if err := e.SetThickness(3); err != nil {
		t.Fatal(err)
	}
	if e.From() != geom.Pt(100, 100) || e.To() != geom.Pt(200, 100) {
		t.Errorf("endpoints = %v %v", e.From(), e.To())
	}
	vs := e.Vertices()
	if len(vs) != 4 {
		t.Fatalf("expected one quad, got %d vertices", len(vs))
	}
	want := []geom.Vec{geom.Pt(100, 98.5), geom.Pt(100, 101.5), geom.Pt(200, 101.5), geom.Pt(200, 98.5)}
	for i, v := range vs {
		if v.Pos != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, v.Pos, want[i])
		}
		if v.Color != colors.Black {
			t.Errorf("vertex %d color = %v, want black", i, v.Color)
		}
	}
}

func TestEdgeDashedGeometry(t *testing.T) {
	e := testEdge(true)
	// length 100, thickness 5 → period 20: five dashes plus a zero-length tail.
	if got := len(e.Vertices()) / 4; got != 6 {
		t.Errorf("dashed quads = %d, want 6", got)
	}
	e.SetDashed(false)
	if got := len(e.Vertices()) / 4; got != 1 {
		t.Errorf("solid quads = %d, want 1", got)
	}
}

func TestEdgeColorAppliesToAllVertices(t *testing.T) {
	e := testEdge(true)
	e.SetColor(colors.Orange)
	for i, v := range e.Vertices() {
		if v.Color != colors.Orange {
			t.Fatalf("vertex %d color = %v", i, v.Color)
		}
	}
}

func TestEdgeThicknessInvalid(t *testing.T) {
	e := testEdge(false)
	before := e.Vertices()
	for _, th := range []float64{0, -2, math.Inf(1), math.Inf(-1), math.NaN()} {
		if err := e.SetThickness(th); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			t.Errorf("SetThickness(%v) = %v, want INVALID_GEOMETRY", th, err)
		}
	}
	if e.Thickness() != 5 || !reflect.DeepEqual(before, e.Vertices()) {
		t.Error("failed SetThickness changed the edge")
	}
}

func TestEdgeCoincidentEndpoints(t *testing.T) {
	n := NewNode(0, geom.Pt(5, 5))
	e := NewEdge(0, n, n, Directed)
	if len(e.Vertices()) != 0 {
		t.Errorf("self-loop at one point should have no geometry, got %d vertices", len(e.Vertices()))
	}
}

func TestEdgeSetEndpointsUsesCurrentPosition(t *testing.T) {
	e := testEdge(false)
	w := NewNode(7, geom.Pt(0, 0))
	w.SetPosition(geom.Pt(100, 300))
	e.SetTo(w)
	if e.ToID() != 7 || e.To() != geom.Pt(100, 300) {
		t.Errorf("to = %d at %v", e.ToID(), e.To())
	}
	if vs := e.Vertices(); vs[2].Pos.Y < 299 {
		t.Errorf("geometry not re-derived: %v", vs)
	}
}

// ── Labels ──

func TestEdgeLabelText(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		weight *float64
		flow   *float64
		want   string
	}{
		{"empty", "", nil, nil, ""},
		{"label only", "road", nil, nil, "road"},
		{"weight only", "", ptr(2.6), nil, "w: 3"},
		{"flow only", "", nil, ptr(-1.5), "f: -2"},
		{"all", "a", ptr(1.4), ptr(2.5), "a w: 1 f: 3"},
		{"label and flow", "b", nil, ptr(0), "b f: 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := testEdge(false)
			e.SetLabel(tc.label)
			if tc.weight != nil {
				e.SetWeight(*tc.weight)
			}
			if tc.flow != nil {
				e.SetFlow(*tc.flow)
			}
			if got := e.Text().Str; got != tc.want {
				t.Errorf("label = %q, want %q", got, tc.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }

func TestEdgeClearWeightAndFlow(t *testing.T) {
	e := testEdge(false)
	e.SetWeight(4)
	e.SetFlow(2)
	e.ClearWeight()
	if _, ok := e.Weight(); ok || e.Text().Str != "f: 2" {
		t.Errorf("after ClearWeight: %q", e.Text().Str)
	}
	e.ClearFlow()
	if _, ok := e.Flow(); ok || e.Text().Str != "" {
		t.Errorf("after ClearFlow: %q", e.Text().Str)
	}
}

func TestEdgeLabelAtMidpoint(t *testing.T) {
	e := testEdge(false)
	e.SetFont(fakeFont{}, 16)
	e.SetLabel("ab")
	if want := geom.Pt(150-8, 100-8); e.Text().Pos != want {
		t.Errorf("label pos = %v, want %v", e.Text().Pos, want)
	}
}

// ── Idempotence ──

func TestEdgeSettersIdempotent(t *testing.T) {
	base := testEdge(true)
	base.SetFont(fakeFont{}, 16)
	base.SetLabel("x")
	base.SetWeight(3)

	tests := []struct {
		name string
		set  func(e *Edge)
	}{
		{"label", func(e *Edge) { e.SetLabel(e.Label()) }},
		{"color", func(e *Edge) { e.SetColor(e.Color()) }},
		{"dashed", func(e *Edge) { e.SetDashed(e.Dashed()) }},
		{"thickness", func(e *Edge) { e.SetThickness(e.Thickness()) }},
		{"weight", func(e *Edge) { w, _ := e.Weight(); e.SetWeight(w) }},
		{"type", func(e *Edge) { e.SetType(e.Type()) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := *base
			tc.set(&e)
			if !reflect.DeepEqual(e.Vertices(), base.Vertices()) || e.Text() != base.Text() {
				t.Error("derived state changed")
			}
		})
	}
}
