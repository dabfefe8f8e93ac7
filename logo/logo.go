// Package logo loads the company logo and fits it into the configured box.
package logo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lvillar/invoicepdf"
)

// Image is a decoded logo re-encoded as PNG. Width and Height are the
// intrinsic size in points, taking one pixel per point.
type Image struct {
	PNG    []byte
	Width  float64
	Height float64
}

// Load reads and decodes the logo at path. Images whose longer side exceeds
// maxPixels are downscaled first; maxPixels <= 0 disables the cap. The
// intrinsic size reported is always that of the original image.
//
// Every failure is a *invoicepdf.LogoLoadError.
func Load(path string, maxPixels int) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &invoicepdf.LogoLoadError{Path: path, Err: err}
	}
	img, err := Decode(data, maxPixels)
	if err != nil {
		return nil, &invoicepdf.LogoLoadError{Path: path, Err: err}
	}
	return img, nil
}

// Decode is Load for an image already in memory.
func Decode(data []byte, maxPixels int) (*Image, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("logo: decode: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("logo: %s image has no pixels", format)
	}

	out := src
	if maxPixels > 0 && (b.Dx() > maxPixels || b.Dy() > maxPixels) {
		w, h := Fit(float64(b.Dx()), float64(b.Dy()), float64(maxPixels), float64(maxPixels))
		dst := image.NewNRGBA(image.Rect(0, 0, max(1, int(w)), max(1, int(h))))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("logo: encode: %w", err)
	}
	return &Image{
		PNG:    buf.Bytes(),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}, nil
}

// Fit scales w x h into maxW x maxH preserving the aspect ratio. Width is
// clamped first, then height; the other dimension follows from the ratio.
// Images already inside the box are returned unchanged.
func Fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return w, h
}
