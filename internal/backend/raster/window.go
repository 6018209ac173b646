package raster

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Window is an offscreen window. Drawing happens on the back buffer;
// Display copies it to the front buffer that Snapshot returns.
type Window struct {
	title string

	// Owned by the render goroutine.
	back   *image.RGBA
	view   backend.View
	raster *vector.Rasterizer

	mu        sync.Mutex
	front     *image.RGBA
	events    []backend.Event
	frames    int
	closed    bool
	presented chan struct{} // closed and replaced on every Display
}

var _ backend.Window = (*Window)(nil)

func newWindow(cfg backend.WindowConfig) *Window {
	w := &Window{
		title:     cfg.Title,
		presented: make(chan struct{}),
	}
	w.resize(cfg.Width, cfg.Height)
	return w
}

func (w *Window) resize(width, height int) {
	w.back = image.NewRGBA(image.Rect(0, 0, width, height))
	w.raster = vector.NewRasterizer(width, height)
	w.view = backend.ScreenView(width, height)
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// ── Event injection ──

// Inject queues an event for the render loop. A ResizeEvent also resizes
// the back buffer when the loop polls it.
func (w *Window) Inject(ev backend.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
}

// PollEvent pops the next injected event.
func (w *Window) PollEvent() (backend.Event, bool) {
	w.mu.Lock()
	if len(w.events) == 0 {
		w.mu.Unlock()
		return nil, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	w.mu.Unlock()

	if r, ok := ev.(backend.ResizeEvent); ok && r.Width > 0 && r.Height > 0 {
		w.resize(r.Width, r.Height)
	}
	return ev, true
}

// ── Presentation ──

// Size returns the back buffer size.
func (w *Window) Size() (int, int) {
	b := w.back.Bounds()
	return b.Dx(), b.Dy()
}

// Display publishes the back buffer as the current frame.
func (w *Window) Display() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New(errors.ErrCodeInvalidLifecycle, "display on closed window")
	}
	if w.front == nil || w.front.Bounds() != w.back.Bounds() {
		w.front = image.NewRGBA(w.back.Bounds())
	}
	copy(w.front.Pix, w.back.Pix)
	w.frames++
	close(w.presented)
	w.presented = make(chan struct{})
	return nil
}

// Close marks the window closed and wakes frame waiters. Closing twice is
// a no-op.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.presented)
	return nil
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Frames returns the number of presented frames.
func (w *Window) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// WaitFrames blocks until at least n frames were presented, the window is
// closed, or ctx is done.
func (w *Window) WaitFrames(ctx context.Context, n int) error {
	for {
		w.mu.Lock()
		frames, closed, ch := w.frames, w.closed, w.presented
		w.mu.Unlock()
		if frames >= n {
			return nil
		}
		if closed {
			return errors.New(errors.ErrCodeInvalidLifecycle, "window closed after %d of %d frames", frames, n)
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first Display.
func (w *Window) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.front == nil {
		return nil
	}
	out := image.NewRGBA(w.front.Bounds())
	copy(out.Pix, w.front.Pix)
	return out
}

// WritePNG encodes the last presented frame to path.
func (w *Window) WritePNG(path string) error {
	img := w.Snapshot()
	if img == nil {
		return errors.New(errors.ErrCodeInvalidLifecycle, "no frame presented yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return f.Close()
}

// ── Canvas ──

func (w *Window) Clear(c color.RGBA) {
	draw.Draw(w.back, w.back.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (w *Window) SetView(v backend.View) {
	if v.Size.X == 0 || v.Size.Y == 0 {
		width, height := w.Size()
		v = backend.ScreenView(width, height)
	}
	w.view = v
}

func (w *Window) toScreen(p geom.Vec) (float32, float32) {
	width, height := w.Size()
	s := w.view.ToScreen(p, width, height)
	return float32(s.X), float32(s.Y)
}

// scale is the number of pixels per world unit along x.
func (w *Window) scale() float64 {
	width, _ := w.Size()
	return float64(width) / w.view.Size.X
}

func (w *Window) fill(c color.RGBA) {
	b := w.back.Bounds()
	w.raster.Draw(w.back, b, image.NewUniform(c), image.Point{})
	w.raster.Reset(b.Dx(), b.Dy())
}

func (w *Window) DrawQuads(vs []geom.Vertex) {
	for i := 0; i+3 < len(vs); i += 4 {
		x, y := w.toScreen(vs[i].Pos)
		w.raster.MoveTo(x, y)
		for _, v := range vs[i+1 : i+4] {
			x, y = w.toScreen(v.Pos)
			w.raster.LineTo(x, y)
		}
		w.raster.ClosePath()
		// Quads are colored uniformly; the first vertex carries it.
		w.fill(vs[i].Color)
	}
}

func (w *Window) disc(center geom.Vec, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	cx, cy := w.toScreen(center)
	rs := float32(r * w.scale())
	k := float32(kappa) * rs
	z := w.raster
	z.MoveTo(cx+rs, cy)
	z.CubeTo(cx+rs, cy+k, cx+k, cy+rs, cx, cy+rs)
	z.CubeTo(cx-k, cy+rs, cx-rs, cy+k, cx-rs, cy)
	z.CubeTo(cx-rs, cy-k, cx-k, cy-rs, cx, cy-rs)
	z.CubeTo(cx+k, cy-rs, cx+rs, cy-k, cx+rs, cy)
	z.ClosePath()
	w.fill(c)
}

func (w *Window) DrawCircle(c backend.Circle) {
	if c.Outline > 0 {
		w.disc(c.Center, c.Radius, c.OutlineColor)
		w.disc(c.Center, math.Max(c.Radius-c.Outline, 0), c.Fill)
		return
	}
	w.disc(c.Center, c.Radius, c.Fill)
}

func (w *Window) DrawSprite(s backend.Sprite) {
	src, ok := s.Image.(image.Image)
	if !ok {
		return
	}
	x0, y0 := w.toScreen(s.Rect.Min)
	x1, y1 := w.toScreen(s.Rect.Max)
	dst := image.Rect(int(math.Round(float64(x0))), int(math.Round(float64(y0))),
		int(math.Round(float64(x1))), int(math.Round(float64(y1))))
	if dst.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(w.back, dst, src, src.Bounds(), xdraw.Over, nil)
}

func (w *Window) DrawText(t backend.Text) {
	f, ok := t.Font.(*Font)
	if !ok || t.Str == "" {
		return
	}
	px := int(math.Round(float64(t.Size) * w.scale()))
	face := f.Face(px)
	x, y := w.toScreen(t.Pos)
	d := &font.Drawer{
		Dst:  w.back,
		Src:  image.NewUniform(t.Color),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y*64) + face.Metrics().Ascent,
		},
	}
	d.DrawString(t.Str)
}
