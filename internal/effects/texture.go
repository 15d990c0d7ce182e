package effects

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// Texture kinds.
const (
	TextureNone      = "none"
	TextureNoise     = "noise"
	TextureGrain     = "grain"
	TextureScanlines = "scanlines"
	TextureHalftone  = "halftone"
	TextureGrid      = "grid"
	TextureFabric    = "fabric"
	TextureVignette  = "vignette"
)

var textureKinds = map[string]bool{
	TextureNone: true, TextureNoise: true, TextureGrain: true, TextureScanlines: true,
	TextureHalftone: true, TextureGrid: true, TextureFabric: true, TextureVignette: true,
}

// IsTexture reports whether kind is known.
func IsTexture(kind string) bool {
	return textureKinds[kind]
}

// Tiled repeats a small tile over a w x h frame.
type Tiled struct {
	Tile *image.NRGBA
	Rect image.Rectangle
}

func (t *Tiled) ColorModel() color.Model { return color.NRGBAModel }
func (t *Tiled) Bounds() image.Rectangle { return t.Rect }

func (t *Tiled) At(x, y int) color.Color {
	tb := t.Tile.Bounds()
	tx := mod(x, tb.Dx()) + tb.Min.X
	ty := mod(y, tb.Dy()) + tb.Min.Y
	return t.Tile.NRGBAAt(tx, ty)
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// Texture builds the overlay image for kind at w x h. Random textures are
// derived from seed so repeated frames get the same pattern. Returns nil
// for "none" and unknown kinds.
func Texture(kind string, w, h int, seed uint64) image.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	rect := image.Rect(0, 0, w, h)
	switch kind {
	case TextureNoise:
		return &Tiled{Tile: noiseTile(128, seed, false), Rect: rect}
	case TextureGrain:
		return &Tiled{Tile: noiseTile(128, seed, true), Rect: rect}
	case TextureScanlines:
		return &Tiled{Tile: scanlineTile(), Rect: rect}
	case TextureHalftone:
		return &Tiled{Tile: halftoneTile(12), Rect: rect}
	case TextureGrid:
		return &Tiled{Tile: gridTile(48), Rect: rect}
	case TextureFabric:
		return &Tiled{Tile: fabricTile(8), Rect: rect}
	case TextureVignette:
		return vignette(w, h)
	}
	return nil
}

func noiseTile(size int, seed uint64, mono bool) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, 0x6e6f697365))
	tile := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(rng.IntN(256))
			c := color.NRGBA{R: v, G: v, B: v, A: 255}
			if !mono {
				c.G = uint8(rng.IntN(256))
				c.B = uint8(rng.IntN(256))
			}
			tile.SetNRGBA(x, y, c)
		}
	}
	return tile
}

// scanlineTile darkens every fourth row; the other rows are mid-gray so the
// overlay blend leaves them unchanged.
func scanlineTile() *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, 1, 4))
	for y := 0; y < 4; y++ {
		v := uint8(128)
		if y == 3 {
			v = 0
		}
		tile.SetNRGBA(0, y, color.NRGBA{R: v, G: v, B: v, A: 255})
	}
	return tile
}

func halftoneTile(cell int) *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, cell, cell))
	c := float64(cell) / 2
	r := float64(cell) * 0.35
	for y := 0; y < cell; y++ {
		for x := 0; x < cell; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			// Antialiased dot edge.
			a := math.Max(0, math.Min(1, r-d+0.5))
			v := uint8(128 - 128*a)
			tile.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return tile
}

func gridTile(cell int) *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, cell, cell))
	for y := 0; y < cell; y++ {
		for x := 0; x < cell; x++ {
			v := uint8(128)
			if x == 0 || y == 0 {
				v = 255
			}
			tile.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return tile
}

// fabricTile is a two-over-two weave.
func fabricTile(cell int) *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, cell, cell))
	half := cell / 2
	for y := 0; y < cell; y++ {
		for x := 0; x < cell; x++ {
			warp := (x/half+y/half)%2 == 0
			v := uint8(110)
			if warp {
				v = 150
			}
			if x%half == 0 || y%half == 0 {
				v -= 30
			}
			tile.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return tile
}

// vignette is a full-frame radial gradient from clear to black.
func vignette(w, h int) *image.NRGBA {
	cx, cy := float64(w)/2, float64(h)/2
	outer := math.Hypot(cx, cy)
	brush := gg.NewRadialGradientBrush(cx, cy, 0, outer).
		AddColorStop(0, gg.RGBA{A: 0}).
		AddColorStop(0.55, gg.RGBA{A: 0}).
		AddColorStop(1, gg.RGBA{A: 0.85})

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := brush.ColorAt(float64(x)+0.5, float64(y)+0.5)
			img.SetNRGBA(x, y, color.NRGBA{A: uint8(math.Round(c.A * 255))})
		}
	}
	return img
}
