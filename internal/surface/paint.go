package surface

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// Stop is a gradient color stop.
type Stop struct {
	Offset float64
	Color  color.Color
}

type brush interface {
	ColorAt(x, y float64) gg.RGBA
}

// brushImage adapts a gg gradient brush to image.Image so it can be used as
// a paint source. It is unbounded like image.Uniform.
type brushImage struct {
	b brush
}

func (g *brushImage) ColorModel() color.Model { return color.NRGBAModel }

func (g *brushImage) Bounds() image.Rectangle {
	return image.Rectangle{Min: image.Point{X: -1e9, Y: -1e9}, Max: image.Point{X: 1e9, Y: 1e9}}
}

func (g *brushImage) At(x, y int) color.Color {
	return toNRGBA(g.b.ColorAt(float64(x)+0.5, float64(y)+0.5))
}

// LinearGradient paints along the line (x0,y0)-(x1,y1).
func LinearGradient(x0, y0, x1, y1 float64, stops ...Stop) image.Image {
	b := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, s := range stops {
		b.AddColorStop(s.Offset, fromColor(s.Color))
	}
	return &brushImage{b: b}
}

// AngleGradient paints a linear gradient across w x h at angle degrees
// (0 = left to right, 90 = top to bottom).
func AngleGradient(w, h, angle float64, stops ...Stop) image.Image {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	// Half the projection of the frame onto the gradient axis.
	half := (math.Abs(dx)*w + math.Abs(dy)*h) / 2
	cx, cy := w/2, h/2
	return LinearGradient(cx-dx*half, cy-dy*half, cx+dx*half, cy+dy*half, stops...)
}

// RadialGradient paints circles around (cx, cy) out to radius.
func RadialGradient(cx, cy, radius float64, stops ...Stop) image.Image {
	b := gg.NewRadialGradientBrush(cx, cy, 0, radius)
	for _, s := range stops {
		b.AddColorStop(s.Offset, fromColor(s.Color))
	}
	return &brushImage{b: b}
}

// ParseColor parses #RGB, #RGBA, #RRGGBB and #RRGGBBAA. Invalid input
// yields fallback.
func ParseColor(s string, fallback color.Color) color.Color {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return fallback
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fallback
		}
	}
	return toNRGBA(gg.Hex(hex))
}

// WithAlpha scales the alpha of c by a.
func WithAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * clamp01(a)))
	return n
}

// toNRGBA rounds a gg color to 8 bits.
func toNRGBA(c gg.RGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(c.A) * 255)),
	}
}

// fromColor converts to gg's straight-alpha color.
func fromColor(c color.Color) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255, A: float64(n.A) / 255}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
