package effects

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// FilterParams are the post color filters applied to the background.
// Every field is an offset where zero means no change.
type FilterParams struct {
	Blur       float64 `yaml:"blur,omitempty"`       // 0..50, gaussian sigma = Blur/2
	Saturation float64 `yaml:"saturation,omitempty"` // -100..100 percent
	Hue        float64 `yaml:"hue,omitempty"`        // -180..180 degrees
	Contrast   float64 `yaml:"contrast,omitempty"`   // -100..100 percent
	Brightness float64 `yaml:"brightness,omitempty"` // -100..100 percent
}

// Active reports whether any filter changes pixels.
func (f FilterParams) Active() bool {
	return f.Blur > 0 || f.Saturation != 0 || f.Hue != 0 || f.Contrast != 0 || f.Brightness != 0
}

// Normalize clamps every filter into its range.
func (f FilterParams) Normalize() FilterParams {
	f.Blur = clamp(f.Blur, 0, 50)
	f.Saturation = clamp(f.Saturation, -100, 100)
	f.Hue = clamp(f.Hue, -180, 180)
	f.Contrast = clamp(f.Contrast, -100, 100)
	f.Brightness = clamp(f.Brightness, -100, 100)
	return f
}

// ApplyFilters runs blur, saturation, hue, contrast and brightness, in that
// order, and writes the result back into img.
func ApplyFilters(img *image.RGBA, f FilterParams) {
	f = f.Normalize()
	if !f.Active() {
		return
	}

	var out image.Image = img
	if f.Blur > 0 {
		out = imaging.Blur(out, f.Blur/2)
	}
	if f.Saturation != 0 {
		out = imaging.AdjustSaturation(out, f.Saturation)
	}
	if f.Hue != 0 {
		m := HueRotate(f.Hue)
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			return m.ApplyNRGBA(c)
		})
	}
	if f.Contrast != 0 {
		out = imaging.AdjustContrast(out, f.Contrast)
	}
	if f.Brightness != 0 {
		out = imaging.AdjustBrightness(out, f.Brightness)
	}

	draw.Draw(img, img.Bounds(), out, out.Bounds().Min, draw.Src)
}

// Blur returns a gaussian-blurred copy of src, used for soft shadows.
func Blur(src image.Image, sigma float64) *image.NRGBA {
	if sigma <= 0 {
		return imaging.Clone(src)
	}
	return imaging.Blur(src, sigma)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
