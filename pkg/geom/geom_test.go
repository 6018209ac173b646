package geom

import (
	"image/color"
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Pt(3, 4)
	b := Pt(1, -2)
	if got := a.Add(b); got != Pt(4, 2) {
		t.Errorf("Add = %v, want (4,2)", got)
	}
	if got := a.Sub(b); got != Pt(2, 6) {
		t.Errorf("Sub = %v, want (2,6)", got)
	}
	if got := a.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul = %v, want (6,8)", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := a.Mid(b); got != Pt(2, 1) {
		t.Errorf("Mid = %v, want (2,1)", got)
	}
	if got := a.Perp(); got != Pt(-4, 3) {
		t.Errorf("Perp = %v, want (-4,3)", got)
	}
}

func TestUnit(t *testing.T) {
	u := Pt(0, 10).Unit()
	if u != Pt(0, 1) {
		t.Errorf("Unit = %v, want (0,1)", u)
	}
	if math.Abs(Pt(3, 4).Unit().Len()-1) > 1e-12 {
		t.Error("Unit length should be 1")
	}
	if z := (Vec{}).Unit(); !z.IsZero() {
		t.Errorf("zero Unit = %v, want zero", z)
	}
}

func TestQuadVertices(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	q := Quad{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}
	vs := q.Vertices(red)
	for i, v := range vs {
		if v.Pos != q[i] || v.Color != red {
			t.Errorf("vertex %d = %+v", i, v)
		}
	}
}

func TestRect(t *testing.T) {
	r := RectFromCenter(Pt(10, 10), Pt(4, 2))
	if r.Min != Pt(8, 9) || r.Max != Pt(12, 11) {
		t.Errorf("RectFromCenter = %+v", r)
	}
	if r.Size() != Pt(4, 2) || r.Center() != Pt(10, 10) {
		t.Errorf("Size/Center = %v %v", r.Size(), r.Center())
	}
	if !r.Contains(Pt(8, 9)) || r.Contains(Pt(12, 10)) {
		t.Error("Contains edge handling wrong")
	}
}
