package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wesen/graphview/internal/loader"
	"github.com/wesen/graphview/pkg/errors"
)

func addRenderFlags(cmd *cobra.Command, o *renderOptions) {
	cmd.Flags().StringVar(&o.backend, "backend", backendTerm, "rendering backend: term or raster")
	cmd.Flags().IntVar(&o.frames, "frames", 2, "frames to render with the raster backend")
	cmd.Flags().StringVar(&o.out, "out", "", "directory for raster PNG snapshots")
}

func newShowCmd(a *app) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "show DIR...",
		Short: "Open graph directories (window.txt, nodes.txt, edges.txt)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs := make([]*loader.Graph, 0, len(args))
			for _, dir := range args {
				g, err := loader.Load(dir)
				if err != nil {
					return err
				}
				graphs = append(graphs, g)
			}
			if err := ensureDir(o.out); err != nil {
				return err
			}
			return a.render(cmd.Context(), graphs, o)
		},
	}
	addRenderFlags(cmd, &o)
	return cmd
}

func newDemoCmd(a *app) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the built-in sample graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := loader.Demo()
			g.Window.Width = a.cfg.Window.Width
			g.Window.Height = a.cfg.Window.Height
			if err := ensureDir(o.out); err != nil {
				return err
			}
			return a.render(cmd.Context(), []*loader.Graph{g}, o)
		},
	}
	addRenderFlags(cmd, &o)
	return cmd
}

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		out    string
		frames int
	)
	cmd := &cobra.Command{
		Use:   "snapshot DIR",
		Short: "Render a graph directory to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--out is required")
			}
			if frames < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--frames must be at least 1, got %d", frames)
			}
			g, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			return a.rasterize(cmd.Context(), g, frames, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG file")
	cmd.Flags().IntVar(&frames, "frames", 2, "frames to render before the snapshot")
	return cmd
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeResourceLoad, err, "create %s", dir)
	}
	return nil
}
