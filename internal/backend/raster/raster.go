// Package raster is a headless backend that draws into an image.RGBA.
// Events are injected by the caller, which makes it the backend for tests,
// snapshots and batch rendering.
package raster

import (
	"os"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/errors"
)

// Backend opens raster windows.
type Backend struct {
	mu      sync.Mutex
	windows []*Window
}

var _ backend.Backend = (*Backend)(nil)

// New creates a raster backend.
func New() *Backend {
	return &Backend{}
}

// OpenWindow creates an offscreen window of the configured size.
func (b *Backend) OpenWindow(cfg backend.WindowConfig) (backend.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	w := newWindow(cfg)
	b.mu.Lock()
	b.windows = append(b.windows, w)
	b.mu.Unlock()
	return w, nil
}

// Windows returns every window opened so far, oldest first.
func (b *Backend) Windows() []*Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Window(nil), b.windows...)
}

// LastWindow returns the most recently opened window, or nil.
func (b *Backend) LastWindow() *Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.windows) == 0 {
		return nil
	}
	return b.windows[len(b.windows)-1]
}

// LoadImage decodes an image file.
func (b *Backend) LoadImage(path string) (backend.Image, error) {
	return backend.DecodeImage(path)
}

// LoadFont loads a TrueType/OpenType font from a path, or one of the
// bundled Go fonts by builtin name.
func (b *Backend) LoadFont(name string) (backend.Font, error) {
	var data []byte
	switch name {
	case backend.BuiltinRegular:
		data = goregular.TTF
	case backend.BuiltinMono:
		data = gomono.TTF
	default:
		var err error
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "read font %s", name)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "parse font %s", name)
	}
	return newFont(f), nil
}
