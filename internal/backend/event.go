package backend

import "github.com/wesen/graphview/pkg/geom"

// Event is a window event. Switch on the concrete type.
type Event interface {
	isEvent()
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ClosedEvent is sent when the user closes the window.
type ClosedEvent struct{}

// ResizeEvent reports a new canvas size.
type ResizeEvent struct {
	Width, Height int
}

// ScrollEvent is a wheel movement; positive Delta scrolls up.
type ScrollEvent struct {
	Delta float64
	Pos   geom.Vec
}

// MouseDownEvent is a button press at a window position.
type MouseDownEvent struct {
	Button MouseButton
	Pos    geom.Vec
}

// MouseUpEvent is a button release.
type MouseUpEvent struct {
	Button MouseButton
	Pos    geom.Vec
}

// MouseMoveEvent reports the cursor position.
type MouseMoveEvent struct {
	Pos geom.Vec
}

// TextEvent is one typed character.
type TextEvent struct {
	Rune rune
}

func (ClosedEvent) isEvent()    {}
func (ResizeEvent) isEvent()    {}
func (ScrollEvent) isEvent()    {}
func (MouseDownEvent) isEvent() {}
func (MouseUpEvent) isEvent()   {}
func (MouseMoveEvent) isEvent() {}
func (TextEvent) isEvent()      {}
