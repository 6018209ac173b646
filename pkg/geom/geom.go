// Package geom provides the float64 2D primitives shared by the geometry
// generator, the scene and the rendering backends.
package geom

import (
	"image/color"
	"math"
)

// Vec is a point or direction in world or screen space.
type Vec struct {
	X, Y float64
}

// Pt is shorthand for Vec{x, y}.
func Pt(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec     { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec     { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Div(k float64) Vec { return Vec{v.X / k, v.Y / k} }
func (v Vec) Scale(o Vec) Vec   { return Vec{v.X * o.X, v.Y * o.Y} }
func (v Vec) Len() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec) Eq(o Vec) bool     { return v.X == o.X && v.Y == o.Y }
func (v Vec) Mid(o Vec) Vec     { return Vec{(v.X + o.X) / 2, (v.Y + o.Y) / 2} }
func (v Vec) Perp() Vec         { return Vec{-v.Y, v.X} }
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec) IsZero() bool      { return v.X == 0 && v.Y == 0 }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Div(l)
}

// Vertex is a colored point; four consecutive vertices form one quad.
type Vertex struct {
	Pos   Vec
	Color color.RGBA
}

// Quad holds the corners of a quadrilateral in winding order.
type Quad [4]Vec

// Vertices colors the quad's corners uniformly.
func (q Quad) Vertices(c color.RGBA) [4]Vertex {
	return [4]Vertex{{q[0], c}, {q[1], c}, {q[2], c}, {q[3], c}}
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Vec
}

// RectFromCenter builds the rectangle of the given size centered on c.
func RectFromCenter(c, size Vec) Rect {
	half := size.Div(2)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

func (r Rect) Size() Vec   { return r.Max.Sub(r.Min) }
func (r Rect) Center() Vec { return r.Min.Mid(r.Max) }

// Contains reports whether p lies inside r (max edges exclusive).
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}
