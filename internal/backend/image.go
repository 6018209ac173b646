package backend

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/wesen/graphview/pkg/errors"
)

// Picture is a decoded image. Both bundled backends return it from
// LoadImage.
type Picture struct {
	image.Image
}

// Size returns the pixel dimensions.
func (p *Picture) Size() (int, int) {
	b := p.Bounds()
	return b.Dx(), b.Dy()
}

// DecodeImage reads and decodes a PNG, JPEG, GIF, BMP or WebP file.
func DecodeImage(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "decode image %s", path)
	}
	return &Picture{Image: img}, nil
}
