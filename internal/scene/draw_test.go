package scene

import (
	"image/color"
	"slices"
	"strings"
	"testing"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/geom"
)

// recorder logs canvas calls as short strings.
type recorder struct {
	ops   []string
	views []backend.View
}

func (r *recorder) Clear(color.RGBA) { r.ops = append(r.ops, "clear") }
func (r *recorder) SetView(v backend.View) {
	r.ops = append(r.ops, "view")
	r.views = append(r.views, v)
}
func (r *recorder) DrawQuads(vs []geom.Vertex) { r.ops = append(r.ops, "quads") }
func (r *recorder) DrawCircle(backend.Circle)  { r.ops = append(r.ops, "circle") }
func (r *recorder) DrawSprite(backend.Sprite)  { r.ops = append(r.ops, "sprite") }
func (r *recorder) DrawText(t backend.Text)    { r.ops = append(r.ops, "text:"+t.Str) }

func (s *Scene) record() *recorder {
	r := &recorder{}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawFrame(r)
	return r
}

func populate(t *testing.T, s *Scene) {
	t.Helper()
	err := s.Update(func(tx *Tx) error {
		if err := tx.AddNode(0, geom.Pt(0, 0)); err != nil {
			return err
		}
		if err := tx.AddNode(1, geom.Pt(100, 0)); err != nil {
			return err
		}
		if err := tx.AddEdge(0, 0, 1, Undirected); err != nil {
			return err
		}
		if err := tx.AddEdge(1, 1, 0, Directed); err != nil {
			return err
		}
		if err := tx.UpdateNode(0, func(n *Node) error { n.SetLabel("n0"); return nil }); err != nil {
			return err
		}
		return tx.UpdateEdge(0, func(e *Edge) error { e.SetLabel("e0"); return nil })
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetBackground(writePNG(t, 2, 2)); err != nil {
		t.Fatal(err)
	}
}

func TestDrawOrder(t *testing.T) {
	s, _ := startScene(t, quietOptions())
	populate(t, s)

	got := s.record().ops
	want := []string{"clear", "view", "sprite", "quads", "quads", "circle", "circle", "text:e0", "text:n0"}
	if !slices.Equal(got, want) {
		t.Errorf("draw ops = %v\nwant %v", got, want)
	}
}

func TestDrawOrderBatched(t *testing.T) {
	s, _ := startScene(t, quietOptions())
	populate(t, s)
	s.SetBatching(true)

	got := s.record().ops
	want := []string{"clear", "view", "sprite", "quads", "circle", "circle", "text:e0", "text:n0"}
	if !slices.Equal(got, want) {
		t.Errorf("draw ops = %v\nwant %v", got, want)
	}
}

func TestDrawVisibility(t *testing.T) {
	tests := []struct {
		name string
		set  func(s *Scene)
		want []string
	}{
		{"no edges", func(s *Scene) { s.SetEdgesVisible(false) },
			[]string{"clear", "view", "sprite", "circle", "circle", "text:n0"}},
		{"no nodes", func(s *Scene) { s.SetNodesVisible(false) },
			[]string{"clear", "view", "sprite", "quads", "quads", "text:e0"}},
		{"no labels", func(s *Scene) { s.SetNodeLabelsVisible(false); s.SetEdgeLabelsVisible(false) },
			[]string{"clear", "view", "sprite", "quads", "quads", "circle", "circle"}},
		{"no background", func(s *Scene) { s.ClearBackground() },
			[]string{"clear", "view", "quads", "quads", "circle", "circle", "text:e0", "text:n0"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := startScene(t, quietOptions())
			populate(t, s)
			tc.set(s)
			if got := s.record().ops; !slices.Equal(got, tc.want) {
				t.Errorf("draw ops = %v\nwant %v", got, tc.want)
			}
		})
	}
}

func TestDebugOverlayInScreenSpace(t *testing.T) {
	s, _ := startScene(t, quietOptions())
	populate(t, s)
	s.SetCamera(geom.Pt(-1000, 50), 4)
	s.SetDebug(true)

	r := s.record()
	last := r.ops[len(r.ops)-1]
	if !strings.HasPrefix(last, "text:FPS: ") {
		t.Fatalf("last op = %q, want FPS text", last)
	}
	if r.ops[len(r.ops)-2] != "view" {
		t.Fatalf("overlay not preceded by a view change: %v", r.ops)
	}
	if v := r.views[len(r.views)-1]; v != backend.ScreenView(800, 600) {
		t.Errorf("overlay view = %+v, want screen view", v)
	}
	if v := r.views[0]; v.Center != geom.Pt(-1000, 50) || v.Size != geom.Pt(3200, 2400) {
		t.Errorf("world view = %+v", v)
	}
}
