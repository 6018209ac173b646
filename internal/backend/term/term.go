// Package term is the interactive backend. It renders each frame into a
// terminal cell grid shown through Bubbletea. Coordinates are virtual
// pixels: one cell covers CellWidth×CellHeight of them, so scene sizes
// keep their meaning at any terminal size.
package term

import (
	"os"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// Virtual pixel size of one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Backend runs at most one window at a time, since it owns the terminal.
type Backend struct {
	programOpts []tea.ProgramOption

	mu   sync.Mutex
	open *Window
}

var _ backend.Backend = (*Backend)(nil)

// New creates a terminal backend. The options are passed to every
// tea.Program it starts.
func New(opts ...tea.ProgramOption) *Backend {
	return &Backend{programOpts: opts}
}

// OpenWindow takes over the terminal and starts the event program.
func (b *Backend) OpenWindow(cfg backend.WindowConfig) (backend.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open != nil && !b.open.Closed() {
		return nil, errors.New(errors.ErrCodeInvalidLifecycle, "terminal already shows window %q", b.open.title)
	}
	w := newWindow(cfg)
	w.start(b.programOpts)
	b.open = w
	return w, nil
}

// LoadImage decodes an image file.
func (b *Backend) LoadImage(path string) (backend.Image, error) {
	return backend.DecodeImage(path)
}

// LoadFont accepts the builtin names and any readable font file. Glyphs
// are always drawn by the terminal, so every font measures the same.
func (b *Backend) LoadFont(name string) (backend.Font, error) {
	switch name {
	case backend.BuiltinRegular, backend.BuiltinMono:
		return Font{}, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "load font %q", name)
	}
	return Font{}, nil
}

// Font measures text in cells.
type Font struct{}

// Measure returns the display width of s in virtual pixels and the height
// of one cell. The size is ignored.
func (Font) Measure(s string, size int) geom.Vec {
	return geom.Pt(float64(runewidth.StringWidth(s)*CellWidth), CellHeight)
}
