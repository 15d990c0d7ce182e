package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/sync/errgroup"
)

// blendInto mixes src into dst with a separable blend mode. Destination alpha
// is kept; the source alpha scales the effect together with opacity.
func blendInto(dst *image.RGBA, src image.Image, mode BlendMode, opacity float64) {
	b := dst.Bounds()
	s, ok := src.(*image.NRGBA)
	if !ok || s.Bounds() != b {
		s = image.NewNRGBA(b)
		draw.Draw(s, b, src, b.Min, draw.Src)
	}
	fn := blendFunc(mode)

	var g errgroup.Group
	const band = 64
	for y0 := b.Min.Y; y0 < b.Max.Y; y0 += band {
		y1 := min(y0+band, b.Max.Y)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					sc := s.NRGBAAt(x, y)
					if sc.A == 0 {
						continue
					}
					di := dst.PixOffset(x, y)
					da := dst.Pix[di+3]
					if da == 0 {
						continue
					}
					k := opacity * float64(sc.A) / 255
					fa := float64(da)
					for ch := 0; ch < 3; ch++ {
						// Unpremultiply, blend, premultiply.
						base := float64(dst.Pix[di+ch]) / fa
						top := float64(channel(sc, ch)) / 255
						out := base + (fn(base, top)-base)*k
						dst.Pix[di+ch] = uint8(math.Round(clamp01(out) * fa))
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func channel(c color.NRGBA, i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	}
	return c.B
}

func blendFunc(mode BlendMode) func(a, b float64) float64 {
	switch mode {
	case BlendMultiply:
		return func(a, b float64) float64 { return a * b }
	case BlendScreen:
		return func(a, b float64) float64 { return 1 - (1-a)*(1-b) }
	case BlendSoft:
		return func(a, b float64) float64 {
			return (1-2*b)*a*a + 2*b*a
		}
	case BlendOverlay:
		return overlay
	}
	return func(_, b float64) float64 { return b }
}

func overlay(a, b float64) float64 {
	if a < 0.5 {
		return 2 * a * b
	}
	return 1 - 2*(1-a)*(1-b)
}
