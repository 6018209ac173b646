package term

import (
	"image"
	"image/color"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/cellbuf"
	"github.com/wesen/graphview/pkg/drawutil"
	"github.com/wesen/graphview/pkg/geom"
)

const (
	dotRune    = '●'
	tintSample = 64 // samples per axis when averaging a sprite
)

// Clear fills every cell with c as background.
func (w *Window) Clear(c color.RGBA) {
	w.bg = c
	w.buf.Fill(cellbuf.Style{BG: c})
}

// SetView sets the world rectangle mapped onto the canvas. A zero size
// selects the screen view.
func (w *Window) SetView(v backend.View) {
	if v.Size.X == 0 || v.Size.Y == 0 {
		v = backend.ScreenView(w.Size())
	}
	w.view = v
}

// toCells maps a world point to fractional cell coordinates.
func (w *Window) toCells(p geom.Vec) geom.Vec {
	width, height := w.Size()
	s := w.view.ToScreen(p, width, height)
	return geom.Pt(s.X/CellWidth, s.Y/CellHeight)
}

func cellOf(p geom.Vec) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// over keeps the background already in the cell.
func (w *Window) over(x, y int, fg color.RGBA) cellbuf.Style {
	st := cellbuf.Style{FG: fg, BG: w.bg}
	if w.buf.InBounds(x, y) {
		st.BG = w.buf.At(x, y).Style.BG
	}
	return st
}

// DrawQuads draws each quad as a line along its center, from the middle
// of its first side to the middle of its opposite side.
func (w *Window) DrawQuads(vs []geom.Vertex) {
	bounds := geom.Rect{Max: geom.Pt(float64(w.buf.W), float64(w.buf.H))}
	for i := 0; i+3 < len(vs); i += 4 {
		a := w.toCells(vs[i].Pos.Mid(vs[i+1].Pos))
		b := w.toCells(vs[i+2].Pos.Mid(vs[i+3].Pos))
		a, b, ok := drawutil.ClipSegment(a, b, bounds)
		if !ok {
			continue
		}
		x0, y0 := cellOf(a)
		x1, y1 := cellOf(b)
		drawutil.DrawLine(w.buf, x0, y0, x1, y1, w.over(x0, y0, vs[i].Color))
	}
}

// DrawCircle fills the cells whose centers lie inside the circle, using
// the outline color for the outer ring. A circle too small to cover any
// cell center becomes a dot.
func (w *Window) DrawCircle(c backend.Circle) {
	width, _ := w.Size()
	k := float64(width) / w.view.Size.X
	center := w.toCells(c.Center)
	r := c.Radius * k
	inner := r - c.Outline*k

	rx, ry := r/CellWidth, r/CellHeight
	x0 := max(0, int(math.Floor(center.X-rx)))
	x1 := min(w.buf.W-1, int(math.Ceil(center.X+rx)))
	y0 := max(0, int(math.Floor(center.Y-ry)))
	y1 := min(w.buf.H-1, int(math.Ceil(center.Y+ry)))

	filled := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - center.X) * CellWidth
			dy := (float64(y) + 0.5 - center.Y) * CellHeight
			d := math.Hypot(dx, dy)
			if d > r {
				continue
			}
			bg := c.Fill
			if d > inner && c.Outline > 0 {
				bg = c.OutlineColor
			}
			w.buf.Set(x, y, ' ', cellbuf.Style{BG: bg})
			filled++
		}
	}
	if filled == 0 {
		x, y := cellOf(center)
		w.buf.Set(x, y, dotRune, w.over(x, y, c.Fill))
	}
}

// DrawSprite fills the sprite's cells with the image's average color.
func (w *Window) DrawSprite(s backend.Sprite) {
	if s.Image == nil {
		return
	}
	tint := w.tint(s.Image)
	minX, minY := cellOf(w.toCells(s.Rect.Min))
	maxX, maxY := cellOf(w.toCells(s.Rect.Max))
	minX, minY = max(0, minX), max(0, minY)
	maxX, maxY = min(w.buf.W-1, maxX), min(w.buf.H-1, maxY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w.buf.Set(x, y, ' ', cellbuf.Style{BG: tint})
		}
	}
}

func (w *Window) tint(img backend.Image) color.RGBA {
	if t, ok := w.tints[img]; ok {
		return t
	}
	t := averageColor(img)
	w.tints[img] = t
	return t
}

// averageColor samples at most tintSample×tintSample pixels. Images that
// expose no pixels are gray.
func averageColor(img backend.Image) color.RGBA {
	src, ok := img.(image.Image)
	if !ok {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	b := src.Bounds()
	if b.Empty() {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	stepX := max(1, b.Dx()/tintSample)
	stepY := max(1, b.Dy()/tintSample)
	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := src.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: 0xff}
}

// DrawText writes the string from the cell containing its top-left
// corner, keeping the backgrounds underneath.
func (w *Window) DrawText(t backend.Text) {
	x, y := cellOf(w.toCells(t.Pos))
	for _, r := range t.Str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		w.buf.SetString(x, y, string(r), w.over(x, y, t.Color))
		x += rw
	}
}
