// Package cellbuf provides a 2D character buffer with per-cell colors and
// run-merged Lipgloss rendering. The terminal backend rasterizes each frame
// into a Buffer and renders it once per Display.
//
// Double-width runes occupy two cells: the rune itself and a continuation
// cell holding rune 0, which renderers skip.
package cellbuf

import (
	"image/color"

	"github.com/mattn/go-runewidth"
)

// Style is the visual attribute set of a cell. A zero-alpha color means
// "terminal default" for that channel. Style is comparable so runs of
// equal styles can be merged at render time.
type Style struct {
	FG   color.RGBA
	BG   color.RGBA
	Bold bool
}

// WithFG returns s with its foreground replaced.
func (s Style) WithFG(c color.RGBA) Style {
	s.FG = c
	return s
}

// Cell is a single character in the buffer with an associated style.
type Cell struct {
	Ch    rune
	Style Style
}

// Buffer is a 2D grid of styled cells.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]
}

// New creates a Buffer of the given size, filled with spaces in the
// given default style.
func New(w, h int, bg Style) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: bg}
		}
		b.Cells[y] = row
	}
	return b
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes a single character at (x, y). Out-of-bounds writes are
// silently ignored.
func (b *Buffer) Set(x, y int, ch rune, style Style) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// At returns the cell at (x, y), or a zero Cell when out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.Cells[y][x]
}

// SetString writes a string starting at (x, y), advancing x by each
// rune's display width. Characters that fall outside the buffer are
// silently skipped. It returns the number of columns consumed.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	i := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		b.Set(x+i, y, ch, style)
		if w == 2 {
			b.Set(x+i+1, y, 0, style)
		}
		i += w
	}
	return i
}

// Fill resets every cell to a space with the given style.
func (b *Buffer) Fill(style Style) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// Resize reallocates the buffer when the size changed and fills it.
func (b *Buffer) Resize(w, h int, style Style) {
	if w == b.W && h == b.H {
		b.Fill(style)
		return
	}
	*b = *New(w, h, style)
}
