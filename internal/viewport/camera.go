// Package viewport maps window input onto a pan/zoom camera.
package viewport

import (
	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/geom"
)

// DefaultZoomBase is the scale factor applied per wheel notch.
const DefaultZoomBase = 1.5

// Camera is the world-to-window transform: Center is the world point in
// the middle of the canvas and Scale the world units per pixel.
type Camera struct {
	Center geom.Vec
	Scale  float64
	Width  int
	Height int
}

// NewCamera centers a 1:1 camera on a w×h canvas so world coordinates
// start at the top-left corner.
func NewCamera(w, h int) Camera {
	return Camera{
		Center: geom.Pt(float64(w)/2, float64(h)/2),
		Scale:  1,
		Width:  w,
		Height: h,
	}
}

// View returns the backend view for the camera.
func (c Camera) View() backend.View {
	return backend.View{
		Center: c.Center,
		Size:   geom.Pt(float64(c.Width)*c.Scale, float64(c.Height)*c.Scale),
	}
}

// ScreenView is the fixed pixel view used for overlays.
func (c Camera) ScreenView() backend.View {
	return backend.ScreenView(c.Width, c.Height)
}

// ToWorld maps a window position to world coordinates.
func (c Camera) ToWorld(p geom.Vec) geom.Vec {
	return c.View().ToWorld(p, c.Width, c.Height)
}
