package scene

import (
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// Tx is exclusive access to a Scene inside Update. It must not be used
// after Update returns.
type Tx struct {
	s          *Scene
	edgesDirty bool
}

func (tx *Tx) commit() {
	if tx.edgesDirty && tx.s.batching {
		tx.s.rebuildBatch()
	}
}

// rebuildBatch refills the batch from the graph's edge order. Called with
// the lock held.
func (s *Scene) rebuildBatch() {
	s.batch.Rebuild(s.edgeList())
}

func (s *Scene) edgeList() []*Edge {
	edges := s.graph.Edges()
	out := make([]*Edge, len(edges))
	for i, e := range edges {
		out[i] = e.Data
	}
	return out
}

// ── Nodes ──

// AddNode creates node id at pos with the scene's node defaults.
func (tx *Tx) AddNode(id int, pos geom.Vec) error {
	s := tx.s
	if s.graph.HasNode(id) {
		return errors.DuplicateID("node", id)
	}
	n := NewNode(id, pos)
	n.style = s.labelStyle
	n.images = s.loadImage
	s.nodeDefs.apply(n)
	if s.nodeDefs.Icon != "" {
		if err := n.SetIcon(s.nodeDefs.Icon); err != nil {
			return err
		}
	}
	if err := s.graph.AddNode(id, n); err != nil {
		return err
	}
	s.logger.Debug("node added", "id", id, "x", pos.X, "y", pos.Y)
	return nil
}

// Node returns a copy of node id. The copy is detached from the scene's
// image cache, so SetIcon on it decodes directly.
func (tx *Tx) Node(id int) (Node, error) {
	n, ok := tx.s.graph.Node(id)
	if !ok {
		return Node{}, errors.NotFound("node", id)
	}
	c := *n
	c.images = nil
	return c, nil
}

// UpdateNode applies fn to a copy of node id and stores the copy if fn
// succeeds. Moving the node re-derives every edge that touches it.
func (tx *Tx) UpdateNode(id int, fn func(n *Node) error) error {
	s := tx.s
	old, ok := s.graph.Node(id)
	if !ok {
		return errors.NotFound("node", id)
	}
	n := *old
	if err := fn(&n); err != nil {
		return err
	}
	if err := s.graph.SetNode(id, &n); err != nil {
		return err
	}
	if !n.pos.Eq(old.pos) {
		tx.refreshIncident(id)
	}
	return nil
}

// refreshIncident re-reads endpoint positions for every edge touching
// node id.
func (tx *Tx) refreshIncident(id int) {
	s := tx.s
	for _, eid := range s.graph.IncidentEdges(id) {
		ge, _ := s.graph.Edge(eid)
		from, _ := s.graph.Node(ge.FromID)
		to, _ := s.graph.Node(ge.ToID)
		ge.Data.setEndpoints(from.pos, to.pos)
		tx.edgesDirty = true
	}
}

// RemoveNode removes node id and all edges touching it.
func (tx *Tx) RemoveNode(id int) error {
	removed, err := tx.s.graph.RemoveNode(id)
	if err != nil {
		return err
	}
	if len(removed) > 0 {
		tx.edgesDirty = true
	}
	tx.s.logger.Debug("node removed", "id", id, "edges", len(removed))
	return nil
}

// NodeIDs lists node ids in insertion order.
func (tx *Tx) NodeIDs() []int { return tx.s.graph.NodeIDs() }

// ── Edges ──

// AddEdge connects two existing nodes with the scene's edge defaults.
func (tx *Tx) AddEdge(id, from, to int, typ EdgeType) error {
	s := tx.s
	if _, ok := s.graph.Edge(id); ok {
		return errors.DuplicateID("edge", id)
	}
	u, ok := s.graph.Node(from)
	if !ok {
		return errors.NotFound("node", from)
	}
	v, ok := s.graph.Node(to)
	if !ok {
		return errors.NotFound("node", to)
	}
	e := NewEdge(id, u, v, typ)
	e.style = s.labelStyle
	s.edgeDefs.apply(e)
	if err := s.graph.AddEdge(id, from, to, e); err != nil {
		return err
	}
	tx.edgesDirty = true
	s.logger.Debug("edge added", "id", id, "from", from, "to", to, "type", typ)
	return nil
}

// Edge returns a copy of edge id.
func (tx *Tx) Edge(id int) (Edge, error) {
	ge, ok := tx.s.graph.Edge(id)
	if !ok {
		return Edge{}, errors.NotFound("edge", id)
	}
	return *ge.Data, nil
}

// UpdateEdge applies fn to a copy of edge id and stores the copy if fn
// succeeds. Endpoints cannot change here; use SetEdgeEndpoints.
func (tx *Tx) UpdateEdge(id int, fn func(e *Edge) error) error {
	s := tx.s
	ge, ok := s.graph.Edge(id)
	if !ok {
		return errors.NotFound("edge", id)
	}
	e := *ge.Data
	if err := fn(&e); err != nil {
		return err
	}
	if e.fromID != ge.FromID || e.toID != ge.ToID {
		return errors.New(errors.ErrCodeInvalidInput, "edge %d: endpoints change through SetEdgeEndpoints", id)
	}
	// fn may have handed in stale node copies.
	from, _ := s.graph.Node(ge.FromID)
	to, _ := s.graph.Node(ge.ToID)
	e.setEndpoints(from.pos, to.pos)
	if err := s.graph.SetEdge(id, &e); err != nil {
		return err
	}
	tx.edgesDirty = true
	return nil
}

// SetEdgeEndpoints reconnects edge id to two existing nodes.
func (tx *Tx) SetEdgeEndpoints(id, from, to int) error {
	s := tx.s
	if err := s.graph.SetEndpoints(id, from, to); err != nil {
		return err
	}
	ge, _ := s.graph.Edge(id)
	u, _ := s.graph.Node(from)
	v, _ := s.graph.Node(to)
	e := *ge.Data
	e.SetFrom(u)
	e.SetTo(v)
	if err := s.graph.SetEdge(id, &e); err != nil {
		return err
	}
	tx.edgesDirty = true
	return nil
}

// RemoveEdge removes edge id.
func (tx *Tx) RemoveEdge(id int) error {
	if err := tx.s.graph.RemoveEdge(id); err != nil {
		return err
	}
	tx.edgesDirty = true
	tx.s.logger.Debug("edge removed", "id", id)
	return nil
}

// EdgeIDs lists edge ids in insertion order.
func (tx *Tx) EdgeIDs() []int { return tx.s.graph.EdgeIDs() }

// ── Background ──

// SetBackground loads path as the background image. On failure the
// previous background stays.
func (tx *Tx) SetBackground(path string) error {
	img, err := tx.s.backend.LoadImage(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResourceLoad, err, "load background")
	}
	tx.s.background = &background{path: path, image: img}
	return nil
}

// ClearBackground removes the background image.
func (tx *Tx) ClearBackground() {
	tx.s.background = nil
}
