package backend

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

// ── View ──

func TestScreenViewIsIdentity(t *testing.T) {
	v := ScreenView(800, 600)
	for _, p := range []geom.Vec{geom.Pt(0, 0), geom.Pt(400, 300), geom.Pt(800, 600), geom.Pt(13, 77)} {
		if got := v.ToScreen(p, 800, 600); got != p {
			t.Errorf("ToScreen(%v) = %v, want identity", p, got)
		}
	}
}

func TestViewRoundTrip(t *testing.T) {
	v := View{Center: geom.Pt(100, -50), Size: geom.Pt(400, 300)}
	p := geom.Pt(130, -20)
	s := v.ToScreen(p, 800, 600)
	if want := geom.Pt(460, 360); s != want {
		t.Errorf("ToScreen = %v, want %v", s, want)
	}
	if back := v.ToWorld(s, 800, 600); back != p {
		t.Errorf("ToWorld(ToScreen(p)) = %v, want %v", back, p)
	}
}

// ── Drawables ──

type countingCanvas struct {
	quads, circles, sprites, texts int
}

func (c *countingCanvas) Clear(color.RGBA)        {}
func (c *countingCanvas) SetView(View)            {}
func (c *countingCanvas) DrawQuads([]geom.Vertex) { c.quads++ }
func (c *countingCanvas) DrawCircle(Circle)       { c.circles++ }
func (c *countingCanvas) DrawSprite(Sprite)       { c.sprites++ }
func (c *countingCanvas) DrawText(Text)           { c.texts++ }

func TestDrawablesDispatch(t *testing.T) {
	cv := &countingCanvas{}
	for _, d := range []Drawable{
		Circle{Radius: 1},
		Sprite{},
		Text{Str: "x"},
		Text{},
		Quads(make([]geom.Vertex, 4)),
		Quads(nil),
	} {
		d.DrawTo(cv)
	}
	if cv.circles != 1 || cv.sprites != 1 || cv.texts != 1 || cv.quads != 1 {
		t.Errorf("dispatch counts = %+v", *cv)
	}
}

// ── DecodeImage ──

func TestDecodeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	pic, err := DecodeImage(path)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if w, h := pic.Size(); w != 3 || h != 2 {
		t.Errorf("Size = %dx%d, want 3x2", w, h)
	}
}

func TestDecodeImageErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{filepath.Join(dir, "missing.png"), garbage} {
		if _, err := DecodeImage(path); !errors.Is(err, errors.ErrCodeResourceLoad) {
			t.Errorf("DecodeImage(%s) = %v, want RESOURCE_LOAD", filepath.Base(path), err)
		}
	}
}
