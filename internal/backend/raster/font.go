package raster

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/wesen/graphview/pkg/geom"
)

// Font is a parsed OpenType font with one face cached per pixel size.
type Font struct {
	src *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

func newFont(src *opentype.Font) *Font {
	return &Font{src: src, faces: make(map[int]font.Face)}
}

// Face returns the face for a pixel size; sizes below 1 are clamped.
func (f *Font) Face(size int) font.Face {
	if size < 1 {
		size = 1
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only fails for invalid options, which we never pass.
		panic(err)
	}
	f.faces[size] = face
	return face
}

// Measure returns the advance width and line height of s.
func (f *Font) Measure(s string, size int) geom.Vec {
	face := f.Face(size)
	m := face.Metrics()
	w := font.MeasureString(face, s)
	return geom.Pt(float64(w)/64, float64(m.Ascent+m.Descent)/64)
}
