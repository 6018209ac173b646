package scene

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// fakeFont measures 8 units per byte and 10 units of height.
type fakeFont struct{}

func (fakeFont) Measure(s string, size int) geom.Vec {
	return geom.Pt(float64(8*len(s)), 10)
}

type fakeImage struct{ w, h int }

func (i fakeImage) Size() (int, int) { return i.w, i.h }

func fakeLoader(paths map[string]backend.Image) ImageLoader {
	return func(p string) (backend.Image, error) {
		if img, ok := paths[p]; ok {
			return img, nil
		}
		return nil, fmt.Errorf("no such file %s", p)
	}
}

// ── Construction ──

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(3, geom.Pt(1, 2))
	if n.ID() != 3 || n.Position() != geom.Pt(1, 2) {
		t.Fatalf("id/pos = %d/%v", n.ID(), n.Position())
	}
	if n.Size() != 10 || n.Color() != colors.Red || n.OutlineThickness() != 1 || n.OutlineColor() != colors.Black {
		t.Errorf("defaults = size %v color %v outline %v/%v", n.Size(), n.Color(), n.OutlineThickness(), n.OutlineColor())
	}
	want := backend.Circle{Center: geom.Pt(1, 2), Radius: 5, Fill: colors.Red, Outline: 1, OutlineColor: colors.Black}
	if n.Shape() != want {
		t.Errorf("Shape = %+v, want %+v", n.Shape(), want)
	}
	if n.Text().Str != "" {
		t.Errorf("label text = %q, want empty", n.Text().Str)
	}
}

// ── Setters ──

func TestNodeSettersRederive(t *testing.T) {
	n := NewNode(0, geom.Pt(0, 0))
	n.SetPosition(geom.Pt(50, 60))
	n.SetColor(colors.Blue)
	if err := n.SetSize(20); err != nil {
		t.Fatal(err)
	}
	if err := n.SetOutlineThickness(2); err != nil {
		t.Fatal(err)
	}
	n.SetOutlineColor(colors.Green)

	c, ok := n.Shape().(backend.Circle)
	if !ok {
		t.Fatalf("Shape is %T, want Circle", n.Shape())
	}
	want := backend.Circle{Center: geom.Pt(50, 60), Radius: 10, Fill: colors.Blue, Outline: 2, OutlineColor: colors.Green}
	if c != want {
		t.Errorf("Circle = %+v, want %+v", c, want)
	}
}

func TestNodeLabelPosition(t *testing.T) {
	n := NewNode(0, geom.Pt(100, 100))
	n.SetFont(fakeFont{}, 16)
	n.SetLabel("abcd")
	txt := n.Text()
	if txt.Str != "abcd" || txt.Size != 16 {
		t.Errorf("text = %q size %d", txt.Str, txt.Size)
	}
	if want := geom.Pt(100-16, 100-8); txt.Pos != want {
		t.Errorf("label pos = %v, want %v", txt.Pos, want)
	}

	n.SetPosition(geom.Pt(0, 0))
	if want := geom.Pt(-16, -8); n.Text().Pos != want {
		t.Errorf("label pos after move = %v, want %v", n.Text().Pos, want)
	}
}

func TestNodeInvalidGeometry(t *testing.T) {
	n := NewNode(0, geom.Pt(0, 0))
	before := *n
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := n.SetSize(v); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			t.Errorf("SetSize(%v) = %v, want INVALID_GEOMETRY", v, err)
		}
		if err := n.SetOutlineThickness(v); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			t.Errorf("SetOutlineThickness(%v) = %v, want INVALID_GEOMETRY", v, err)
		}
	}
	if !reflect.DeepEqual(before.Shape(), n.Shape()) || n.Size() != 10 {
		t.Error("failed setter changed the node")
	}
	if err := n.SetSize(0); err != nil {
		t.Errorf("SetSize(0) = %v, want nil", err)
	}
}

func TestNodeIcon(t *testing.T) {
	icon := fakeImage{16, 16}
	n := NewNode(0, geom.Pt(10, 10))
	n.images = fakeLoader(map[string]backend.Image{"icon.png": icon})

	if err := n.SetIcon("icon.png"); err != nil {
		t.Fatalf("SetIcon: %v", err)
	}
	sp, ok := n.Shape().(backend.Sprite)
	if !ok {
		t.Fatalf("Shape is %T, want Sprite", n.Shape())
	}
	if want := (geom.Rect{Min: geom.Pt(5, 5), Max: geom.Pt(15, 15)}); sp.Rect != want {
		t.Errorf("sprite rect = %v, want %v", sp.Rect, want)
	}

	// A failed load keeps the previous icon.
	err := n.SetIcon("missing.png")
	if !errors.Is(err, errors.ErrCodeResourceLoad) {
		t.Errorf("SetIcon(missing) = %v, want RESOURCE_LOAD", err)
	}
	if n.IconPath() != "icon.png" || n.Icon() != icon {
		t.Errorf("icon after failed load = %q", n.IconPath())
	}

	if err := n.SetIcon(""); err != nil {
		t.Fatal(err)
	}
	if _, ok := n.Shape().(backend.Circle); !ok || n.Icon() != nil {
		t.Errorf("after clearing icon Shape is %T", n.Shape())
	}
}

func TestNodeIconDefaultLoader(t *testing.T) {
	n := NewNode(0, geom.Pt(0, 0))
	if err := n.SetIcon("/nonexistent/icon.png"); !errors.Is(err, errors.ErrCodeResourceLoad) {
		t.Errorf("SetIcon = %v, want RESOURCE_LOAD", err)
	}
	if _, ok := n.Shape().(backend.Circle); !ok {
		t.Error("failed load changed the shape")
	}
}

// ── Idempotence ──

func TestNodeSettersIdempotent(t *testing.T) {
	base := NewNode(1, geom.Pt(3, 4))
	base.SetFont(fakeFont{}, 16)
	base.SetLabel("x")

	tests := []struct {
		name string
		set  func(n *Node)
	}{
		{"position", func(n *Node) { n.SetPosition(n.Position()) }},
		{"size", func(n *Node) { n.SetSize(n.Size()) }},
		{"label", func(n *Node) { n.SetLabel(n.Label()) }},
		{"color", func(n *Node) { n.SetColor(n.Color()) }},
		{"icon", func(n *Node) { n.SetIcon(n.IconPath()) }},
		{"outline", func(n *Node) { n.SetOutlineThickness(n.OutlineThickness()) }},
		{"outline color", func(n *Node) { n.SetOutlineColor(n.OutlineColor()) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := *base
			tc.set(&n)
			if !reflect.DeepEqual(n.Shape(), base.Shape()) || n.Text() != base.Text() {
				t.Errorf("derived state changed: %+v / %+v", n.Shape(), n.Text())
			}
		})
	}
}
