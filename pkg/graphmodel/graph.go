// Package graphmodel provides a generic id-keyed graph with stable
// insertion-order iteration and cascading node removal.
package graphmodel

import (
	"slices"

	"github.com/wesen/graphview/pkg/errors"
)

// Edge connects two node ids and carries user data.
type Edge[E any] struct {
	ID     int
	FromID int
	ToID   int
	Data   E
}

// Graph stores nodes and edges under caller-assigned ids. Every edge
// references two nodes that exist in the graph; removing a node removes
// the edges that touch it.
type Graph[N, E any] struct {
	nodes     map[int]N
	edges     map[int]*Edge[E]
	nodeOrder []int // insertion order for deterministic iteration
	edgeOrder []int
}

// New creates an empty graph.
func New[N, E any]() *Graph[N, E] {
	return &Graph[N, E]{
		nodes: make(map[int]N),
		edges: make(map[int]*Edge[E]),
	}
}

// ── Node operations ──

// AddNode inserts a node under id. An existing id is a DUPLICATE_ID error
// and the graph is left unchanged.
func (g *Graph[N, E]) AddNode(id int, data N) error {
	if _, ok := g.nodes[id]; ok {
		return errors.DuplicateID("node", id)
	}
	g.nodes[id] = data
	g.nodeOrder = append(g.nodeOrder, id)
	return nil
}

// Node returns the node stored under id.
func (g *Graph[N, E]) Node(id int) (N, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id is a node of the graph.
func (g *Graph[N, E]) HasNode(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// SetNode replaces the data of an existing node.
func (g *Graph[N, E]) SetNode(id int, data N) error {
	if _, ok := g.nodes[id]; !ok {
		return errors.NotFound("node", id)
	}
	g.nodes[id] = data
	return nil
}

// Nodes returns all node data in insertion order.
func (g *Graph[N, E]) Nodes() []N {
	result := make([]N, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		result = append(result, g.nodes[id])
	}
	return result
}

// NodeIDs returns all node ids in insertion order.
func (g *Graph[N, E]) NodeIDs() []int {
	return slices.Clone(g.nodeOrder)
}

// NodeCount returns the number of nodes.
func (g *Graph[N, E]) NodeCount() int { return len(g.nodes) }

// RemoveNode deletes the node and all connected edges, returning the ids
// of the removed edges in edge order.
func (g *Graph[N, E]) RemoveNode(id int) ([]int, error) {
	if _, ok := g.nodes[id]; !ok {
		return nil, errors.NotFound("node", id)
	}
	removed := g.IncidentEdges(id)
	for _, eid := range removed {
		delete(g.edges, eid)
	}
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(eid int) bool {
		return slices.Contains(removed, eid)
	})

	delete(g.nodes, id)
	if i := slices.Index(g.nodeOrder, id); i >= 0 {
		g.nodeOrder = slices.Delete(g.nodeOrder, i, i+1)
	}
	return removed, nil
}

// ── Edge operations ──

// AddEdge adds edge id between two existing nodes. Parallel edges are
// allowed; only the edge id must be unique.
func (g *Graph[N, E]) AddEdge(id, fromID, toID int, data E) error {
	if _, ok := g.edges[id]; ok {
		return errors.DuplicateID("edge", id)
	}
	if err := g.checkEndpoints(fromID, toID); err != nil {
		return err
	}
	g.edges[id] = &Edge[E]{ID: id, FromID: fromID, ToID: toID, Data: data}
	g.edgeOrder = append(g.edgeOrder, id)
	return nil
}

func (g *Graph[N, E]) checkEndpoints(fromID, toID int) error {
	if _, ok := g.nodes[fromID]; !ok {
		return errors.NotFound("node", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return errors.NotFound("node", toID)
	}
	return nil
}

// Edge returns the edge stored under id.
func (g *Graph[N, E]) Edge(id int) (Edge[E], bool) {
	e, ok := g.edges[id]
	if !ok {
		return Edge[E]{}, false
	}
	return *e, true
}

// SetEdge replaces the data of an existing edge.
func (g *Graph[N, E]) SetEdge(id int, data E) error {
	e, ok := g.edges[id]
	if !ok {
		return errors.NotFound("edge", id)
	}
	e.Data = data
	return nil
}

// SetEndpoints reconnects an existing edge to two existing nodes.
func (g *Graph[N, E]) SetEndpoints(id, fromID, toID int) error {
	e, ok := g.edges[id]
	if !ok {
		return errors.NotFound("edge", id)
	}
	if err := g.checkEndpoints(fromID, toID); err != nil {
		return err
	}
	e.FromID, e.ToID = fromID, toID
	return nil
}

// RemoveEdge removes edge id.
func (g *Graph[N, E]) RemoveEdge(id int) error {
	if _, ok := g.edges[id]; !ok {
		return errors.NotFound("edge", id)
	}
	delete(g.edges, id)
	if i := slices.Index(g.edgeOrder, id); i >= 0 {
		g.edgeOrder = slices.Delete(g.edgeOrder, i, i+1)
	}
	return nil
}

// Edges returns all edges in insertion order.
func (g *Graph[N, E]) Edges() []Edge[E] {
	result := make([]Edge[E], 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		result = append(result, *g.edges[id])
	}
	return result
}

// EdgeIDs returns all edge ids in insertion order.
func (g *Graph[N, E]) EdgeIDs() []int {
	return slices.Clone(g.edgeOrder)
}

// EdgeCount returns the number of edges.
func (g *Graph[N, E]) EdgeCount() int { return len(g.edges) }

// OutEdges returns edges originating from the given node.
func (g *Graph[N, E]) OutEdges(fromID int) []Edge[E] {
	var result []Edge[E]
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.FromID == fromID {
			result = append(result, *e)
		}
	}
	return result
}

// InEdges returns edges terminating at the given node.
func (g *Graph[N, E]) InEdges(toID int) []Edge[E] {
	var result []Edge[E]
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.ToID == toID {
			result = append(result, *e)
		}
	}
	return result
}

// IncidentEdges returns the ids of edges touching the node, in edge order.
// A self-loop is listed once.
func (g *Graph[N, E]) IncidentEdges(nodeID int) []int {
	var result []int
	for _, id := range g.edgeOrder {
		if e := g.edges[id]; e.FromID == nodeID || e.ToID == nodeID {
			result = append(result, id)
		}
	}
	return result
}
