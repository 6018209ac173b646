package viewport

import (
	"math"
	"unicode"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/geom"
)

// DefaultDebugKey toggles the debug overlay.
const DefaultDebugKey = 'd'

// Effect is what an event asks of the scene beyond moving the camera.
type Effect int

const (
	EffectNone Effect = iota
	EffectToggleDebug
	EffectClose
)

// Controller turns window events into camera changes. It keeps the drag
// anchor between events and is not safe for concurrent use; the scene
// calls it under its lock.
type Controller struct {
	ZoomBase float64
	DebugKey rune

	dragging     bool
	anchorCenter geom.Vec
	anchorCursor geom.Vec
}

// NewController returns a controller with the default zoom base and debug
// key.
func NewController() *Controller {
	return &Controller{ZoomBase: DefaultZoomBase, DebugKey: DefaultDebugKey}
}

// Dragging reports whether a left-button drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Apply updates cam for ev and reports any scene-level effect.
func (c *Controller) Apply(cam *Camera, ev backend.Event) Effect {
	switch ev := ev.(type) {
	case backend.ClosedEvent:
		return EffectClose

	case backend.ResizeEvent:
		cam.Width, cam.Height = ev.Width, ev.Height

	case backend.ScrollEvent:
		cam.Scale *= math.Pow(c.zoomBase(), -ev.Delta)

	case backend.MouseDownEvent:
		if ev.Button == backend.ButtonLeft {
			c.dragging = true
			c.anchorCenter = cam.Center
			c.anchorCursor = ev.Pos
		}

	case backend.MouseUpEvent:
		if ev.Button == backend.ButtonLeft {
			c.dragging = false
		}

	case backend.MouseMoveEvent:
		if c.dragging {
			cam.Center = c.anchorCenter.Sub(ev.Pos.Sub(c.anchorCursor).Mul(cam.Scale))
		}

	case backend.TextEvent:
		if unicode.ToLower(ev.Rune) == unicode.ToLower(c.debugKey()) {
			return EffectToggleDebug
		}
	}
	return EffectNone
}

func (c *Controller) zoomBase() float64 {
	if c.ZoomBase <= 0 {
		return DefaultZoomBase
	}
	return c.ZoomBase
}

func (c *Controller) debugKey() rune {
	if c.DebugKey == 0 {
		return DefaultDebugKey
	}
	return c.DebugKey
}
