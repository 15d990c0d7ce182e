package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
	"github.com/ivlev/frameit/internal/source"
	"github.com/ivlev/frameit/internal/surface"
)

var (
	bezelColor   = color.NRGBA{R: 0x11, G: 0x11, B: 0x14, A: 0xff}
	toolbarColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xf2, A: 0xff}
	addressColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lightColors  = []color.NRGBA{
		{R: 0xff, G: 0x5f, B: 0x57, A: 0xff},
		{R: 0xfe, G: 0xbc, B: 0x2e, A: 0xff},
		{R: 0x28, G: 0xc8, B: 0x40, A: 0xff},
	}
)

// frame is the geometry of one framed image: device is the outer body
// (shadow and chrome), screen is where the pixels go.
type frame struct {
	device geometry.Rect
	screen geometry.Rect
	radius float64
}

func chromeFrame(chrome string, screen geometry.Rect, radius float64) frame {
	short := math.Min(screen.W, screen.H)
	switch chrome {
	case config.ChromePhone:
		bezel := math.Max(4, short*0.035)
		return frame{
			device: geometry.Rect{X: screen.X - bezel, Y: screen.Y - bezel, W: screen.W + 2*bezel, H: screen.H + 2*bezel},
			screen: screen,
			radius: radius,
		}
	case config.ChromeBrowser:
		bar := math.Max(16, short*0.07)
		return frame{
			device: geometry.Rect{X: screen.X, Y: screen.Y - bar, W: screen.W, H: screen.H + bar},
			screen: screen,
			radius: radius,
		}
	}
	return frame{device: screen, screen: screen, radius: radius}
}

func (r *Renderer) drawImages(dst surface.Surface, scene *config.Scene, assets *source.Assets, f Frame, w, h float64) {
	n := len(scene.Images)
	layout := geometry.ResolveLayout(scene.Layout, n)
	regions := geometry.ComputeRegions(layout, n, w, h, scene.Padding*w)

	for i, region := range regions {
		if i >= n || i >= len(assets.Images) || assets.Images[i] == nil {
			continue
		}
		img := assets.Images[i]
		p := r.placement(scene, scene.Images[i], img, region)
		if p.Empty() {
			continue
		}

		fr := chromeFrame(scene.Chrome, p.Draw, scene.CornerRadius)
		d := r.delta(f, i)
		cx, cy := fr.device.Center()

		withDelta(dst, d, cx, cy, 1, func() {
			r.drawShadow(dst, scene.Shadow, fr, d.Opacity)
			drawChrome(dst, scene.Chrome, fr)

			dst.Save()
			dst.ClipRoundedRect(fr.screen, fr.radius)
			dst.DrawImage(img, p.Crop, p.Draw)
			dst.Restore()

			if scene.Chrome == config.ChromePhone {
				drawNotch(dst, fr)
			}
		})
	}
}

func drawChrome(dst surface.Surface, chrome string, fr frame) {
	switch chrome {
	case config.ChromePhone:
		bezel := fr.screen.X - fr.device.X
		dst.FillRoundedRect(fr.device, fr.radius+bezel, surface.Solid(bezelColor))
	case config.ChromeBrowser:
		bar := fr.screen.Y - fr.device.Y
		dst.Save()
		dst.ClipRoundedRect(fr.device, fr.radius)
		dst.FillRect(geometry.Rect{X: fr.device.X, Y: fr.device.Y, W: fr.device.W, H: bar}, surface.Solid(toolbarColor))
		dst.Restore()

		dot := bar * 0.14
		for i, c := range lightColors {
			dst.FillCircle(fr.device.X+bar*0.5+float64(i)*dot*3, fr.device.Y+bar/2, dot, surface.Solid(c))
		}
		left := fr.device.X + bar*0.5 + dot*9
		addr := geometry.Rect{X: left, Y: fr.device.Y + bar*0.22, W: math.Max(0, fr.device.X+fr.device.W-left-bar*0.5), H: bar * 0.56}
		dst.FillRoundedRect(addr, addr.H/2, surface.Solid(addressColor))
	}
}

// drawNotch covers the top center of a phone screen.
func drawNotch(dst surface.Surface, fr frame) {
	bezel := fr.screen.X - fr.device.X
	nw, nh := fr.screen.W*0.3, bezel*1.6
	dst.FillRoundedRect(geometry.Rect{
		X: fr.screen.X + (fr.screen.W-nw)/2, Y: fr.screen.Y - bezel*0.2, W: nw, H: nh,
	}, nh/2, surface.Solid(bezelColor))
}

type shadowKey struct {
	w, h   int
	radius float64
	blur   float64
	color  string
}

// drawShadow draws the blurred silhouette of the device under the current
// transform so it rotates and scales with the element.
func (r *Renderer) drawShadow(dst surface.Surface, s config.Shadow, fr frame, opacity float64) {
	if s.Opacity <= 0 || fr.device.Empty() {
		return
	}
	sil := r.shadowImage(fr.device.W, fr.device.H, fr.radius, s.Blur, s.Color)
	pad := float64(sil.Bounds().Dx()-int(math.Ceil(fr.device.W))) / 2

	dst.Save()
	dst.SetAlpha(s.Opacity * opacity)
	dst.DrawImage(sil, sil.Bounds(), geometry.Rect{
		X: fr.device.X + s.OffsetX - pad,
		Y: fr.device.Y + s.OffsetY - pad,
		W: float64(sil.Bounds().Dx()),
		H: float64(sil.Bounds().Dy()),
	})
	dst.Restore()
}

// shadowImage renders and blurs a rounded rectangle, padded by three sigma
// on every side. Results are cached by size, radius, blur and color.
func (r *Renderer) shadowImage(w, h, radius, blur float64, col string) *image.NRGBA {
	key := shadowKey{w: int(math.Ceil(w)), h: int(math.Ceil(h)), radius: radius, blur: blur, color: col}
	if img, ok := r.shadows[key]; ok {
		return img
	}

	sigma := blur / 2
	pad := int(math.Ceil(sigma * 3))
	c := surface.NewCanvas(key.w+2*pad, key.h+2*pad)
	c.FillRoundedRect(geometry.Rect{X: float64(pad), Y: float64(pad), W: float64(key.w), H: float64(key.h)},
		radius, surface.Solid(surface.ParseColor(col, color.Black)))
	img := effects.Blur(c.Image(), sigma)

	if len(r.shadows) >= maxCached {
		clear(r.shadows)
	}
	r.shadows[key] = img
	return img
}

// drawText draws a text layer anchored at its fractional position.
func (r *Renderer) drawText(dst surface.Surface, t config.TextLayer, w, h float64, d animation.Delta) {
	if t.Content == "" {
		return
	}
	font := surface.Font{Family: t.FontFamily, Size: t.FontSize, Bold: t.Bold, Italic: t.Italic}
	col := surface.ParseColor(t.Color, color.White)
	align := surface.Align(t.Align)
	x, y := t.X*w, t.Y*h

	tw, th, ok := dst.MeasureText(t.Content, font)
	if !ok {
		return
	}

	withDelta(dst, d, x, y, 1, func() {
		if t.Shadow {
			off := math.Max(1, t.FontSize/24)
			dst.Save()
			dst.SetAlpha(0.5 * d.Opacity)
			dst.DrawText(t.Content, x+off, y+off*1.5, font, color.Black, align)
			dst.Restore()
		}
		dst.DrawText(t.Content, x, y, font, col, align)

		if t.Underline {
			left := x
			switch align {
			case surface.AlignCenter:
				left = x - tw/2
			case surface.AlignRight:
				left = x - tw
			}
			thick := math.Max(1, t.FontSize/16)
			dst.FillRect(geometry.Rect{X: left, Y: y + th/2 + thick, W: tw, H: thick}, surface.Solid(col))
		}
	})
}

// anchorBox positions a box of size bw x bh at a named anchor with margin.
func anchorBox(anchor string, bw, bh, w, h, margin float64) geometry.Rect {
	x, y := w-bw-margin, h-bh-margin
	switch anchor {
	case config.AnchorTopLeft, config.AnchorBottomLeft:
		x = margin
	case config.AnchorTopCenter, config.AnchorBottomCenter, config.AnchorCenter:
		x = (w - bw) / 2
	}
	switch anchor {
	case config.AnchorTopLeft, config.AnchorTopCenter, config.AnchorTopRight:
		y = margin
	case config.AnchorCenter:
		y = (h - bh) / 2
	}
	return geometry.Rect{X: x, Y: y, W: bw, H: bh}
}

// imageRect scales img to width bw keeping its aspect.
func imageRect(img image.Image, bw float64) (float64, float64) {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 0, 0
	}
	return bw, bw * float64(b.Dy()) / float64(b.Dx())
}
