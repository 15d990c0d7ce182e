package effects

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ivlev/frameit/internal/distortion"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: 80, B: uint8(y * 255 / h), A: 255})
		}
	}
	return img
}

func TestFiltersZeroIsNoop(t *testing.T) {
	img := gradientImage(40, 30)
	orig := append([]byte(nil), img.Pix...)

	ApplyFilters(img, FilterParams{})
	if !bytes.Equal(img.Pix, orig) {
		t.Error("zero filters modified the image")
	}
}

func TestFiltersChangePixels(t *testing.T) {
	tests := []struct {
		name string
		f    FilterParams
	}{
		{"blur", FilterParams{Blur: 6}},
		{"saturation", FilterParams{Saturation: -100}},
		{"hue", FilterParams{Hue: 120}},
		{"contrast", FilterParams{Contrast: 50}},
		{"brightness", FilterParams{Brightness: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := gradientImage(40, 30)
			orig := append([]byte(nil), img.Pix...)
			ApplyFilters(img, tt.f)
			if bytes.Equal(img.Pix, orig) {
				t.Errorf("%s filter left the image unchanged", tt.name)
			}
		})
	}
}

func TestDesaturateIsGray(t *testing.T) {
	img := gradientImage(20, 20)
	ApplyFilters(img, FilterParams{Saturation: -100})
	c := img.RGBAAt(15, 5)
	if absDiff(c.R, c.G) > 1 || absDiff(c.G, c.B) > 1 {
		t.Errorf("expected gray pixel, got %v", c)
	}
}

func TestHueRotateIdentity(t *testing.T) {
	m := HueRotate(0)
	in := color.NRGBA{R: 200, G: 40, B: 90, A: 128}
	if out := m.ApplyNRGBA(in); out != in {
		t.Errorf("hue 0 changed color: %v -> %v", in, out)
	}

	// A full turn returns to the start.
	full := HueRotate(360).ApplyNRGBA(in)
	if absDiff(full.R, in.R) > 1 || absDiff(full.G, in.G) > 1 || absDiff(full.B, in.B) > 1 {
		t.Errorf("hue 360 drifted: %v -> %v", in, full)
	}
}

func TestPipelineOrder(t *testing.T) {
	p := Pipeline(distortion.Params{Wave: 40}, FilterParams{Brightness: 10})
	if _, ok := p[0].(DistortionEffect); !ok {
		t.Errorf("first pass should be distortion, got %T", p[0])
	}
	if _, ok := p[1].(FilterEffect); !ok {
		t.Errorf("second pass should be filters, got %T", p[1])
	}

	img := gradientImage(64, 64)
	orig := append([]byte(nil), img.Pix...)
	Run(img, Pipeline(distortion.Params{}, FilterParams{}))
	if !bytes.Equal(img.Pix, orig) {
		t.Error("inactive pipeline modified the image")
	}
}

func TestTextures(t *testing.T) {
	kinds := []string{TextureNoise, TextureGrain, TextureScanlines, TextureHalftone, TextureGrid, TextureFabric, TextureVignette}
	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			tex := Texture(kind, 300, 200, 1)
			if tex == nil {
				t.Fatal("expected a texture")
			}
			if tex.Bounds() != image.Rect(0, 0, 300, 200) {
				t.Errorf("unexpected bounds %v", tex.Bounds())
			}
			_ = tex.At(299, 199)
		})
	}

	if Texture(TextureNone, 10, 10, 0) != nil || Texture("lava", 10, 10, 0) != nil {
		t.Error("none and unknown kinds should produce no texture")
	}
}

func TestVignetteDarkensEdges(t *testing.T) {
	v := vignette(200, 100)
	center := v.NRGBAAt(100, 50).A
	corner := v.NRGBAAt(0, 0).A
	if center != 0 {
		t.Errorf("vignette center should be clear, alpha=%d", center)
	}
	if corner < 150 {
		t.Errorf("vignette corner too light, alpha=%d", corner)
	}
}

func TestNoiseSeeded(t *testing.T) {
	a := noiseTile(16, 5, true)
	b := noiseTile(16, 5, true)
	c := noiseTile(16, 6, true)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed gave different noise")
	}
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different seeds gave identical noise")
	}
}

func TestTiledWraps(t *testing.T) {
	tile := gridTile(4)
	tex := &Tiled{Tile: tile, Rect: image.Rect(0, 0, 20, 20)}
	if tex.At(0, 0) != tex.At(8, 12) {
		t.Error("tile should repeat every 4 pixels")
	}
	if tex.At(-4, 0) != tex.At(0, 0) {
		t.Error("negative coordinates should wrap")
	}
}

func absDiff(a, b uint8) int {
	return int(math.Abs(float64(a) - float64(b)))
}
