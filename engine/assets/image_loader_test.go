package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func sizes(imgs []image.Image) []image.Point {
	var out []image.Point
	for _, img := range imgs {
		out = append(out, img.Bounds().Size())
	}
	return out
}

func TestLoadIconScales(t *testing.T) {
	imgs, err := LoadIcon(writePNG(t, 64, 32))
	if err != nil {
		t.Fatalf("LoadIcon: %v", err)
	}
	want := []image.Point{{64, 32}, {16, 8}, {32, 16}, {48, 24}}
	if diff := cmp.Diff(want, sizes(imgs)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if _, ok := imgs[0].(*image.RGBA); !ok {
		t.Errorf("source image is %T, want *image.RGBA", imgs[0])
	}
	if got := imgs[1].(*image.RGBA).RGBAAt(8, 4); got.R < 190 || got.A != 255 {
		t.Errorf("scaled pixel = %v", got)
	}
}

func TestLoadIconSmallSource(t *testing.T) {
	imgs, err := LoadIcon(writePNG(t, 16, 16))
	if err != nil {
		t.Fatalf("LoadIcon: %v", err)
	}
	if diff := cmp.Diff([]image.Point{{16, 16}}, sizes(imgs)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIconErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadIcon(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file accepted")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadIcon(junk); err == nil {
		t.Error("undecodable file accepted")
	}
}
