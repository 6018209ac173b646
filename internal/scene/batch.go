package scene

import "github.com/wesen/graphview/pkg/geom"

// Batch is the concatenated geometry of every edge, drawn with one call.
// Any edge change rebuilds the whole buffer.
type Batch struct {
	vertices []geom.Vertex
}

// Rebuild clears the buffer and appends each edge's vertices in order.
func (b *Batch) Rebuild(edges []*Edge) {
	b.vertices = b.vertices[:0]
	for _, e := range edges {
		b.vertices = append(b.vertices, e.vertices...)
	}
}

// Reset drops the buffer.
func (b *Batch) Reset() {
	b.vertices = nil
}

// Vertices returns the buffer. It is only valid until the next Rebuild
// and must not be modified.
func (b *Batch) Vertices() []geom.Vertex {
	return b.vertices
}

// Len returns the number of vertices.
func (b *Batch) Len() int { return len(b.vertices) }
