package drawutil

import (
	"github.com/wesen/graphview/pkg/cellbuf"
)

// DrawLine draws a Bresenham line into buf. Every cell uses the character
// of the overall segment direction so short dashes stay readable.
// Coordinates are buffer-local (not world).
func DrawLine(buf *cellbuf.Buffer, x0, y0, x1, y1 int, style cellbuf.Style) {
	ch := LineChar(x1-x0, y1-y0)
	for _, p := range Bresenham(x0, y0, x1, y1) {
		buf.Set(p.X, p.Y, ch, style)
	}
}
