// Package backend defines the 2D rendering backend a scene draws through:
// windows with an event queue, a canvas taking drawables in world
// coordinates, and loaders for images and fonts.
//
// Two implementations live in subpackages: raster (headless, draws into an
// image.RGBA) and term (interactive, draws into a terminal cell grid).
package backend

import (
	"image/color"

	"github.com/wesen/graphview/pkg/geom"
)

// Font names understood by every backend's LoadFont in addition to file
// paths.
const (
	BuiltinRegular = "builtin:regular"
	BuiltinMono    = "builtin:mono"
)

// WindowConfig describes a window to open.
type WindowConfig struct {
	Width, Height int
	Title         string
}

// Backend opens windows and loads resources.
type Backend interface {
	OpenWindow(cfg WindowConfig) (Window, error)
	LoadImage(path string) (Image, error)
	LoadFont(name string) (Font, error)
}

// Window is an open window. All methods are called from the goroutine
// that runs the render loop.
type Window interface {
	Canvas
	// Size returns the current canvas size in pixels (or cells).
	Size() (int, int)
	// PollEvent returns the next pending event without blocking.
	PollEvent() (Event, bool)
	// Display presents everything drawn since the last Clear.
	Display() error
	Close() error
}

// Canvas receives one frame of drawing. Positions are in world
// coordinates, mapped to the window through the current View.
type Canvas interface {
	Clear(c color.RGBA)
	SetView(v View)
	DrawQuads(vs []geom.Vertex)
	DrawCircle(c Circle)
	DrawSprite(s Sprite)
	DrawText(t Text)
}

// Font measures text.
type Font interface {
	// Measure returns the width and height of s rendered at size.
	Measure(s string, size int) geom.Vec
}

// Image is a loaded picture.
type Image interface {
	Size() (int, int)
}

// View is the visible world rectangle: Size world units centered on
// Center fill the whole window.
type View struct {
	Center geom.Vec
	Size   geom.Vec
}

// ScreenView maps world units 1:1 onto a w×h window with the origin in
// the top-left corner.
func ScreenView(w, h int) View {
	return View{
		Center: geom.Pt(float64(w)/2, float64(h)/2),
		Size:   geom.Pt(float64(w), float64(h)),
	}
}

// Rect returns the visible world rectangle.
func (v View) Rect() geom.Rect {
	return geom.RectFromCenter(v.Center, v.Size)
}

// ToScreen maps a world point into a w×h window.
func (v View) ToScreen(p geom.Vec, w, h int) geom.Vec {
	r := v.Rect()
	return geom.Pt(
		(p.X-r.Min.X)*float64(w)/v.Size.X,
		(p.Y-r.Min.Y)*float64(h)/v.Size.Y,
	)
}

// ToWorld is the inverse of ToScreen.
func (v View) ToWorld(p geom.Vec, w, h int) geom.Vec {
	r := v.Rect()
	return geom.Pt(
		r.Min.X+p.X*v.Size.X/float64(w),
		r.Min.Y+p.Y*v.Size.Y/float64(h),
	)
}
