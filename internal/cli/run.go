package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/internal/backend/raster"
	"github.com/wesen/graphview/internal/backend/term"
	"github.com/wesen/graphview/internal/loader"
	"github.com/wesen/graphview/internal/scene"
	"github.com/wesen/graphview/pkg/errors"
)

// renderOptions are the flags shared by show and demo.
type renderOptions struct {
	backend string
	frames  int
	out     string
}

func (o renderOptions) validate(graphs int) error {
	switch o.backend {
	case backendTerm:
		if graphs != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "the terminal backend shows one graph at a time, got %d", graphs)
		}
	case backendRaster:
		if o.frames < 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--frames must be at least 1, got %d", o.frames)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown backend %q (want %s or %s)", o.backend, backendTerm, backendRaster)
	}
	return nil
}

// startScene opens a window for g and applies it.
func (a *app) startScene(ctx context.Context, b backend.Backend, g *loader.Graph) (*scene.Scene, error) {
	opts, err := a.cfg.SceneOptions()
	if err != nil {
		return nil, err
	}
	opts.Title = fmt.Sprintf("%s: %s", opts.Title, g.Name)
	opts.Logger = loggerFromContext(ctx).With("graph", g.Name)

	s, err := scene.New(b, opts)
	if err != nil {
		return nil, err
	}
	if err := s.CreateWindow(g.Window.Width, g.Window.Height); err != nil {
		return nil, err
	}
	if err := g.Apply(s); err != nil {
		s.CloseWindow()
		s.Join()
		return nil, err
	}
	return s, nil
}

// interactive shows g in the terminal until the user quits or ctx ends.
func (a *app) interactive(ctx context.Context, g *loader.Graph) error {
	b := term.New(tea.WithContext(ctx), tea.WithoutSignalHandler())
	ctx = withLogger(ctx, screenLogger(loggerFromContext(ctx)))
	s, err := a.startScene(ctx, b, g)
	if err != nil {
		return err
	}
	select {
	case <-s.Done():
	case <-ctx.Done():
		s.CloseWindow()
	}
	err = s.Join()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// rasterize renders g headlessly for the given number of frames and writes the last
// one to path when path is set.
func (a *app) rasterize(ctx context.Context, g *loader.Graph, frames int, path string) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	b := raster.New()
	s, err := a.startScene(ctx, b, g)
	if err != nil {
		return err
	}
	defer func() {
		s.CloseWindow()
		s.Join()
	}()

	win := b.LastWindow()
	// a frame drawn before Apply may still be in flight
	if err := win.WaitFrames(ctx, win.Frames()+frames+1); err != nil {
		return err
	}
	if path != "" {
		if err := win.WritePNG(path); err != nil {
			return err
		}
		logger.Debug("snapshot written", "path", path)
	}
	p.done(fmt.Sprintf("Rendered %s", g.Name))
	return nil
}

// render dispatches graphs to the selected backend. Raster renders run
// concurrently, one scene per graph.
func (a *app) render(ctx context.Context, graphs []*loader.Graph, o renderOptions) error {
	if err := o.validate(len(graphs)); err != nil {
		return err
	}
	if o.backend == backendTerm {
		return a.interactive(ctx, graphs[0])
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, g := range graphs {
		path := ""
		if o.out != "" {
			path = filepath.Join(o.out, g.Name+".png")
		}
		eg.Go(func() error {
			return a.rasterize(ctx, g, o.frames, path)
		})
	}
	return eg.Wait()
}
