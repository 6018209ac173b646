package scene

import (
	"image/color"

	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/drawutil"
	"github.com/wesen/graphview/pkg/errors"
)

const (
	DefaultNodeSize      = 10.0
	DefaultNodeOutline   = 1.0
	DefaultEdgeThickness = 5.0
)

var (
	DefaultNodeColor        = colors.Red
	DefaultNodeOutlineColor = colors.Black
	DefaultEdgeColor        = colors.Black
)

// NodeDefaults are applied to nodes created by Scene.AddNode.
type NodeDefaults struct {
	Size             float64
	Color            color.RGBA
	Icon             string
	OutlineThickness float64
	OutlineColor     color.RGBA
}

// BuiltinNodeDefaults returns the defaults of NewNode.
func BuiltinNodeDefaults() NodeDefaults {
	return NodeDefaults{
		Size:             DefaultNodeSize,
		Color:            DefaultNodeColor,
		OutlineThickness: DefaultNodeOutline,
		OutlineColor:     DefaultNodeOutlineColor,
	}
}

// Validate rejects negative sizes and outline thicknesses.
func (d NodeDefaults) Validate() error {
	if !nonNegative(d.Size) {
		return errors.New(errors.ErrCodeInvalidGeometry, "default node size must be finite and >= 0, got %v", d.Size)
	}
	if !nonNegative(d.OutlineThickness) {
		return errors.New(errors.ErrCodeInvalidGeometry, "default outline thickness must be finite and >= 0, got %v", d.OutlineThickness)
	}
	return nil
}

// apply sets every default except the icon, which needs a loader.
func (d NodeDefaults) apply(n *Node) {
	n.size = d.Size
	n.color = d.Color
	n.outline = d.OutlineThickness
	n.outlineColor = d.OutlineColor
	n.update()
}

// EdgeDefaults are applied to edges created by Scene.AddEdge.
type EdgeDefaults struct {
	Color     color.RGBA
	Thickness float64
	Dashed    bool
}

// BuiltinEdgeDefaults returns the defaults of NewEdge.
func BuiltinEdgeDefaults() EdgeDefaults {
	return EdgeDefaults{Color: DefaultEdgeColor, Thickness: DefaultEdgeThickness}
}

func (d EdgeDefaults) Validate() error {
	if !drawutil.ValidWidth(d.Thickness) {
		return errors.New(errors.ErrCodeInvalidGeometry, "default edge thickness must be finite and > 0, got %v", d.Thickness)
	}
	return nil
}

func (d EdgeDefaults) apply(e *Edge) {
	e.color = d.Color
	e.thickness = d.Thickness
	e.dashed = d.Dashed
	e.update()
}
