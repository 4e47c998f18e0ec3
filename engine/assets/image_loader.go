// Package assets loads files referenced by window records.
package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// IconSizes are the edge lengths offered to the platform besides the source
// image; it picks whichever suits the context best.
var IconSizes = []int{16, 32, 48}

// LoadIcon decodes a PNG, JPEG, BMP or WebP file and returns it as RGBA
// followed by downscaled copies at each of IconSizes smaller than the
// source's longest edge. The aspect ratio is preserved.
func LoadIcon(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %q: %w", path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode icon %q: empty %s image", path, format)
	}

	out := []image.Image{imageToRGBA(img)}
	edge := max(b.Dx(), b.Dy())
	for _, n := range IconSizes {
		if n >= edge {
			continue
		}
		out = append(out, scale(img, n, edge))
	}
	return out, nil
}

func scale(img image.Image, n, edge int) *image.RGBA {
	b := img.Bounds()
	w := max(1, b.Dx()*n/edge)
	h := max(1, b.Dy()*n/edge)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
