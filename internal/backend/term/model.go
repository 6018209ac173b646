package term

import (
	"fmt"
	"image/color"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/geom"
	"github.com/wesen/graphview/pkg/tealayout"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

var (
	toolbarStyle = lipgloss.NewStyle().
			Background(c("#0a1510")).
			Foreground(c("#00ffc8")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(c("#666666"))

	canvasStyle = lipgloss.NewStyle().
			Background(c("#ffffff"))
)

const helpText = "drag pan │ wheel zoom │ d debug │ q quit"

// model is the Bubbletea side of a Window. It translates terminal input
// into backend events and shows the latest frame between the chrome rows.
type model struct {
	title         string
	width, height int
	frame         string
	cursor        geom.Vec
	queue         *eventQueue
}

func newModel(title string, q *eventQueue) model {
	return model{title: title, queue: q}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		r := m.canvas().Rect
		m.queue.push(backend.ResizeEvent{
			Width:  max(1, r.Dx()) * CellWidth,
			Height: max(1, r.Dy()) * CellHeight,
		})

	case frameMsg:
		m.frame = string(msg)

	case tea.KeyPressMsg:
		for _, ev := range keyEvents(msg) {
			m.queue.push(ev)
		}

	case tea.MouseMsg:
		ev, ok := m.mouseEvent(msg)
		if !ok {
			break
		}
		if mv, isMove := ev.(backend.MouseMoveEvent); isMove {
			m.cursor = mv.Pos
		}
		m.queue.push(ev)
	}
	return m, nil
}

func (m model) canvas() tealayout.Region {
	return tealayout.Standard(m.width, m.height).Get(tealayout.Canvas)
}

// keyEvents maps a key press to close or text events.
func keyEvents(msg tea.KeyPressMsg) []backend.Event {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return []backend.Event{backend.ClosedEvent{}}
	}
	var evs []backend.Event
	for _, r := range msg.Text {
		evs = append(evs, backend.TextEvent{Rune: r})
	}
	return evs
}

func buttonOf(b tea.MouseButton) (backend.MouseButton, bool) {
	switch b {
	case tea.MouseLeft:
		return backend.ButtonLeft, true
	case tea.MouseRight:
		return backend.ButtonRight, true
	case tea.MouseMiddle:
		return backend.ButtonMiddle, true
	}
	return 0, false
}

// mouseEvent translates a terminal mouse message. Positions are the
// virtual pixel at the center of the canvas cell. Presses and wheel turns
// outside the canvas are dropped; releases and motion always pass so a
// drag can end anywhere.
func (m model) mouseEvent(msg tea.MouseMsg) (backend.Event, bool) {
	mouse := msg.Mouse()
	local, inside := m.canvas().Local(mouse.X, mouse.Y)
	pos := geom.Pt(
		float64(local.X*CellWidth+CellWidth/2),
		float64(local.Y*CellHeight+CellHeight/2),
	)

	switch msg.(type) {
	case tea.MouseReleaseMsg:
		btn, ok := buttonOf(mouse.Button)
		if !ok {
			// legacy encodings do not say which button was released
			btn = backend.ButtonLeft
		}
		return backend.MouseUpEvent{Button: btn, Pos: pos}, true
	case tea.MouseMotionMsg:
		return backend.MouseMoveEvent{Pos: pos}, true
	}

	if !inside {
		return nil, false
	}
	switch msg.(type) {
	case tea.MouseClickMsg:
		btn, ok := buttonOf(mouse.Button)
		if !ok {
			return nil, false
		}
		return backend.MouseDownEvent{Button: btn, Pos: pos}, true
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			return backend.ScrollEvent{Delta: 1, Pos: pos}, true
		case tea.MouseWheelDown:
			return backend.ScrollEvent{Delta: -1, Pos: pos}, true
		}
	}
	return nil, false
}

// render composes the chrome and the latest frame.
func (m model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	layout := tealayout.Standard(m.width, m.height)
	cv := layout.Get(tealayout.Canvas)

	layers := []*lipgloss.Layer{
		tealayout.FillLayer(layout.Get(tealayout.Toolbar), toolbarStyle, "toolbar-bg", 0),
		tealayout.FillLayer(cv, canvasStyle, "canvas-bg", 0),
		tealayout.ToolbarLayer(fmt.Sprintf(" %s  │  %s", m.title, helpText), m.width, toolbarStyle),
		tealayout.FooterLayer(
			fmt.Sprintf(" cursor (%.0f,%.0f)  canvas %dx%d px", m.cursor.X, m.cursor.Y, cv.Rect.Dx()*CellWidth, cv.Rect.Dy()*CellHeight),
			m.width, m.height-1, footerStyle),
	}
	if m.frame != "" && !cv.Rect.Empty() {
		layers = append(layers, tealayout.ContentLayer(cv, m.frame, "frame", 1))
	}

	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.width, m.height)
	canvas.Compose(comp)
	return canvas.Render()
}

// View implements tea.Model.
func (m model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = m.title
	return v
}
