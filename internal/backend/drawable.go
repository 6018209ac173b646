package backend

import (
	"image/color"

	"github.com/wesen/graphview/pkg/geom"
)

// Drawable is anything that can put itself on a canvas.
type Drawable interface {
	DrawTo(c Canvas)
}

// Circle is a filled disc with an optional outline drawn inside the
// radius.
type Circle struct {
	Center       geom.Vec
	Radius       float64
	Fill         color.RGBA
	Outline      float64
	OutlineColor color.RGBA
}

func (c Circle) DrawTo(cv Canvas) { cv.DrawCircle(c) }

// Sprite is an image stretched over Rect.
type Sprite struct {
	Image Image
	Rect  geom.Rect
}

func (s Sprite) DrawTo(cv Canvas) { cv.DrawSprite(s) }

// Text is a string whose top-left corner sits at Pos.
type Text struct {
	Str   string
	Pos   geom.Vec
	Size  int
	Color color.RGBA
	Font  Font
}

func (t Text) DrawTo(cv Canvas) {
	if t.Str == "" {
		return
	}
	cv.DrawText(t)
}

// Bounds returns the measured size of the text, zero without a font.
func (t Text) Bounds() geom.Vec {
	if t.Font == nil || t.Str == "" {
		return geom.Vec{}
	}
	return t.Font.Measure(t.Str, t.Size)
}

// Quads is a flat vertex list, four vertices per quad.
type Quads []geom.Vertex

func (q Quads) DrawTo(cv Canvas) {
	if len(q) == 0 {
		return
	}
	cv.DrawQuads(q)
}
