package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/distortion"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
	"github.com/ivlev/frameit/internal/surface"
)

var defaultBackground = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x2e, A: 0xff}

type bgKey struct {
	w, h       int
	bg         config.Background
	distortion distortion.Params
	filters    effects.FilterParams
	img        image.Image
}

// background returns the painted, distorted and filtered background. The
// result is reused while size and settings stay the same, so distortion
// kernels only run when a parameter changes.
func (r *Renderer) background(w, h int, scene *config.Scene, img image.Image) *image.RGBA {
	key := bgKey{
		w: w, h: h,
		bg:         scene.Background,
		distortion: scene.Distortion,
		filters:    scene.Filters,
		img:        img,
	}
	if r.bg != nil && r.bgKey == key {
		return r.bg
	}

	c := surface.NewCanvas(w, h)
	paintBackground(c, scene.Background, img, float64(w), float64(h))

	buf := c.Image()
	effects.Run(buf, effects.Pipeline(scene.Distortion, scene.Filters))

	r.bgKey, r.bg = key, buf
	return buf
}

func paintBackground(c surface.Surface, bg config.Background, img image.Image, w, h float64) {
	full := surface.Rect{W: w, H: h}
	base := surface.ParseColor(bg.Color, defaultBackground)
	from := surface.ParseColor(bg.From, base)
	to := surface.ParseColor(bg.To, base)

	switch bg.Type {
	case config.BackgroundLinear:
		c.FillRect(full, surface.AngleGradient(w, h, bg.Angle,
			surface.Stop{Offset: 0, Color: from},
			surface.Stop{Offset: 1, Color: to},
		))
	case config.BackgroundRadial:
		c.FillRect(full, surface.RadialGradient(w/2, h/2, math.Hypot(w, h)/2,
			surface.Stop{Offset: 0, Color: from},
			surface.Stop{Offset: 1, Color: to},
		))
	case config.BackgroundImage:
		c.FillRect(full, surface.Solid(base))
		if img == nil {
			return
		}
		ib := img.Bounds()
		p := geometry.FitImage(ib.Dx(), ib.Dy(), full, geometry.FitCover, 1, 0, 0)
		if !p.Empty() {
			c.DrawImage(img, p.Crop.Add(ib.Min), p.Draw)
		}
	default:
		c.FillRect(full, surface.Solid(base))
	}
}
