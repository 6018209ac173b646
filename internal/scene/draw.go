package scene

import (
	"fmt"
	"math"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/geom"
)

// drawFrame draws one frame onto c. Called with the lock held.
//
// Order: background, edges, nodes, edge labels, node labels, then the
// debug overlay in screen space.
func (s *Scene) drawFrame(c backend.Canvas) {
	c.Clear(s.opts.ClearColor)
	view := s.camera.View()
	c.SetView(view)

	if s.background != nil {
		coverSprite(s.background.image, view).DrawTo(c)
	}

	edges := s.edgeList()
	if s.show.Edges {
		if s.batching {
			backend.Quads(s.batch.Vertices()).DrawTo(c)
		} else {
			for _, e := range edges {
				backend.Quads(e.vertices).DrawTo(c)
			}
		}
	}

	nodes := s.graph.Nodes()
	if s.show.Nodes {
		for _, n := range nodes {
			n.shape.DrawTo(c)
		}
	}
	if s.show.Edges && s.show.EdgeLabels {
		for _, e := range edges {
			e.text.DrawTo(c)
		}
	}
	if s.show.Nodes && s.show.NodeLabels {
		for _, n := range nodes {
			n.text.DrawTo(c)
		}
	}

	s.fps.Count()
	s.frames++

	if s.debug {
		c.SetView(s.camera.ScreenView())
		s.debugText().DrawTo(c)
	}
}

// coverSprite scales img to the smallest size covering the view, centered
// on it.
func coverSprite(img backend.Image, view backend.View) backend.Sprite {
	iw, ih := img.Size()
	if iw == 0 || ih == 0 {
		return backend.Sprite{Image: img, Rect: view.Rect()}
	}
	k := math.Max(view.Size.X/float64(iw), view.Size.Y/float64(ih))
	size := geom.Pt(float64(iw)*k, float64(ih)*k)
	return backend.Sprite{Image: img, Rect: geom.RectFromCenter(view.Center, size)}
}

// debugText is the FPS readout anchored to the bottom-left corner.
func (s *Scene) debugText() backend.Text {
	t := s.debugStyle.text(fmt.Sprintf("FPS: %d", int(s.fps.FPS())))
	fs := float64(s.debugStyle.size)
	h := t.Bounds().Y
	t.Pos = geom.Pt(0.2*fs, float64(s.camera.Height)-0.7*fs-h)
	return t
}
