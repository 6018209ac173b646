package scene

import (
	"image/color"
	"math"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// LabelColor is the color of node and edge labels.
var LabelColor = colors.Black

// ImageLoader loads icons and backgrounds.
type ImageLoader func(path string) (backend.Image, error)

// textStyle is the font labels are measured and drawn with.
type textStyle struct {
	font backend.Font
	size int
}

func (ts textStyle) text(s string) backend.Text {
	return backend.Text{Str: s, Size: ts.size, Color: LabelColor, Font: ts.font}
}

// Node is a positioned circle or icon with an optional label. Its shape
// and label text are re-derived by every setter, so they always match the
// attributes.
type Node struct {
	id           int
	pos          geom.Vec
	size         float64
	label        string
	color        color.RGBA
	iconPath     string
	icon         backend.Image
	outline      float64
	outlineColor color.RGBA

	style  textStyle
	images ImageLoader

	shape backend.Drawable
	text  backend.Text
}

// NewNode creates a node with the built-in defaults: size 10, red fill,
// black outline of thickness 1, no label and no icon.
func NewNode(id int, pos geom.Vec) *Node {
	n := &Node{
		id:           id,
		pos:          pos,
		size:         DefaultNodeSize,
		color:        DefaultNodeColor,
		outline:      DefaultNodeOutline,
		outlineColor: DefaultNodeOutlineColor,
	}
	n.update()
	return n
}

func (n *Node) ID() int                   { return n.id }
func (n *Node) Position() geom.Vec        { return n.pos }
func (n *Node) Size() float64             { return n.size }
func (n *Node) Label() string             { return n.label }
func (n *Node) Color() color.RGBA         { return n.color }
func (n *Node) IconPath() string          { return n.iconPath }
func (n *Node) Icon() backend.Image       { return n.icon }
func (n *Node) OutlineThickness() float64 { return n.outline }
func (n *Node) OutlineColor() color.RGBA  { return n.outlineColor }

// Shape is a backend.Circle, or a backend.Sprite when an icon is set.
func (n *Node) Shape() backend.Drawable { return n.shape }

// Text is the positioned label.
func (n *Node) Text() backend.Text { return n.text }

// SetFont sets the font labels are measured with. Nodes added to a scene
// use the scene's label font.
func (n *Node) SetFont(f backend.Font, size int) {
	n.style = textStyle{font: f, size: size}
	n.update()
}

func (n *Node) SetPosition(p geom.Vec) {
	n.pos = p
	n.update()
}

// SetSize sets the circle diameter or icon side.
func (n *Node) SetSize(size float64) error {
	if !nonNegative(size) {
		return errors.New(errors.ErrCodeInvalidGeometry, "node %d: size must be finite and >= 0, got %v", n.id, size)
	}
	n.size = size
	n.update()
	return nil
}

func (n *Node) SetLabel(label string) {
	n.label = label
	n.update()
}

func (n *Node) SetColor(c color.RGBA) {
	n.color = c
	n.update()
}

// SetIcon switches the node to an icon loaded from path. An empty path
// clears the icon. A load failure leaves the previous icon in place.
func (n *Node) SetIcon(path string) error {
	if path == "" {
		n.iconPath, n.icon = "", nil
		n.update()
		return nil
	}
	load := n.images
	if load == nil {
		load = func(p string) (backend.Image, error) { return backend.DecodeImage(p) }
	}
	img, err := load(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResourceLoad, err, "node %d: load icon", n.id)
	}
	n.iconPath, n.icon = path, img
	n.update()
	return nil
}

func (n *Node) SetOutlineThickness(t float64) error {
	if !nonNegative(t) {
		return errors.New(errors.ErrCodeInvalidGeometry, "node %d: outline thickness must be finite and >= 0, got %v", n.id, t)
	}
	n.outline = t
	n.update()
	return nil
}

func (n *Node) SetOutlineColor(c color.RGBA) {
	n.outlineColor = c
	n.update()
}

func (n *Node) update() {
	if n.icon != nil {
		n.shape = backend.Sprite{
			Image: n.icon,
			Rect:  geom.RectFromCenter(n.pos, geom.Pt(n.size, n.size)),
		}
	} else {
		n.shape = backend.Circle{
			Center:       n.pos,
			Radius:       n.size / 2,
			Fill:         n.color,
			Outline:      n.outline,
			OutlineColor: n.outlineColor,
		}
	}
	n.text = labelAt(n.style.text(n.label), n.pos)
}

// labelAt centers t horizontally on anchor and lifts it by 0.8 of its
// height.
func labelAt(t backend.Text, anchor geom.Vec) backend.Text {
	b := t.Bounds()
	t.Pos = anchor.Sub(geom.Pt(b.X/2, 0.8*b.Y))
	return t
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
