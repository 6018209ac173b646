package tealayout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ToolbarLayer creates a Layer for a toolbar at the top of the screen.
func ToolbarLayer(content string, width int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Width(width).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(0).Y(0).Z(1).ID(Toolbar)
}

// FooterLayer creates a Layer for a footer at a given y position.
func FooterLayer(content string, width, y int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Width(width).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(0).Y(y).Z(1).ID(Footer)
}

// ContentLayer places pre-rendered content at a region's origin.
func ContentLayer(r Region, content, id string, z int) *lipgloss.Layer {
	return lipgloss.NewLayer(content).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}

// FillLayer creates a Layer filled with the given style at a region's position.
func FillLayer(r Region, style lipgloss.Style, id string, z int) *lipgloss.Layer {
	w := r.Rect.Dx()
	h := r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	rendered := style.Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}
