package loader

import (
	"github.com/wesen/graphview/internal/scene"
)

// Apply adds the graph to a running scene in one update: background,
// then nodes, then edges. Edges take the window's dashed setting. It
// stops at the first failure.
func (g *Graph) Apply(s *scene.Scene) error {
	return s.Update(func(tx *scene.Tx) error {
		if g.Window.Background != "" {
			if err := tx.SetBackground(g.Window.Background); err != nil {
				return err
			}
		}
		for _, n := range g.Nodes {
			if err := tx.AddNode(n.ID, n.Pos); err != nil {
				return err
			}
			err := tx.UpdateNode(n.ID, func(sn *scene.Node) error {
				sn.SetColor(n.Color)
				sn.SetLabel(n.Label)
				if err := sn.SetSize(n.Size); err != nil {
					return err
				}
				if n.Icon != "" {
					return sn.SetIcon(n.Icon)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		for _, e := range g.Edges {
			if err := tx.AddEdge(e.ID, e.From, e.To, e.Type); err != nil {
				return err
			}
			err := tx.UpdateEdge(e.ID, func(se *scene.Edge) error {
				se.SetColor(e.Color)
				se.SetLabel(e.Label)
				se.SetDashed(g.Window.Dashed)
				if e.HasFlow {
					se.SetFlow(e.Flow)
				}
				if e.HasWeight {
					se.SetWeight(e.Weight)
				}
				return se.SetThickness(e.Thickness)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
