package loader

import (
	"image/color"

	"github.com/wesen/graphview/internal/scene"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/geom"
)

// Demo returns the built-in sample: a small flowchart summing 1..5, with
// a loop through a connector node.
func Demo() *Graph {
	g := &Graph{
		Name: "demo",
		Window: Window{
			Width:  scene.DefaultWidth,
			Height: scene.DefaultHeight,
			Scale:  1,
		},
	}

	node := func(x, y float64, label string, c color.RGBA, size float64) {
		g.Nodes = append(g.Nodes, Node{
			ID:    len(g.Nodes),
			Pos:   geom.Pt(x, y),
			Color: c,
			Label: label,
			Size:  size,
		})
	}
	start := len(g.Nodes)
	node(120, 60, "START", colors.Green, 30)
	initN := len(g.Nodes)
	node(120, 170, "INIT", colors.Blue, 24)
	cond := len(g.Nodes)
	node(120, 290, "i<=5?", colors.Cyan, 28)
	accum := len(g.Nodes)
	node(120, 470, "ACCUMULATE", colors.Blue, 24)
	conn := len(g.Nodes)
	node(400, 380, "", colors.Gray, 10)
	printN := len(g.Nodes)
	node(560, 290, "PRINT", colors.Orange, 24)
	end := len(g.Nodes)
	node(640, 420, "END", colors.Green, 30)

	edge := func(from, to int, label string) *Edge {
		g.Edges = append(g.Edges, Edge{
			ID:        len(g.Edges),
			From:      from,
			To:        to,
			Type:      scene.Directed,
			Color:     colors.Black,
			Thickness: 3,
			Label:     label,
		})
		return &g.Edges[len(g.Edges)-1]
	}
	edge(start, initN, "")
	edge(initN, cond, "")
	loop := edge(cond, accum, "Y")
	loop.Weight, loop.HasWeight = 5, true
	edge(accum, conn, "")
	back := edge(conn, cond, "")
	back.Flow, back.HasFlow = 4, true
	edge(cond, printN, "N")
	edge(printN, end, "")
	return g
}
