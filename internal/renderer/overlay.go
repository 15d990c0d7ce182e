package renderer

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
	"github.com/ivlev/frameit/internal/surface"
)

var guideColor = color.NRGBA{R: 0xff, G: 0x3e, B: 0xa5, A: 0xff}

const (
	guideDash  = 18.0
	guideGap   = 10.0
	guideWidth = 2.0
)

type qrKey struct {
	content string
	size    int
}

type textureKey struct {
	kind string
	w, h int
	seed uint64
}

func (r *Renderer) drawWatermark(dst surface.Surface, wm config.Watermark, img image.Image, w, h float64) {
	if !wm.Enabled || wm.Opacity <= 0 {
		return
	}
	margin := w * 0.04
	bw := w * wm.Size

	dst.Save()
	defer dst.Restore()
	dst.SetAlpha(wm.Opacity)

	switch wm.Kind {
	case config.WatermarkImage:
		if img == nil {
			return
		}
		iw, ih := imageRect(img, bw)
		dst.DrawImage(img, img.Bounds(), anchorBox(wm.Anchor, iw, ih, w, h, margin))

	case config.WatermarkQR:
		q := r.qrImage(wm.Text, int(math.Round(bw)))
		if q == nil {
			return
		}
		dst.DrawImage(q, q.Bounds(), anchorBox(wm.Anchor, bw, bw, w, h, margin))

	default:
		if wm.Text == "" {
			return
		}
		font := surface.Font{Family: surface.FamilySans, Size: math.Max(12, bw/4), Bold: true}
		tw, th, ok := dst.MeasureText(wm.Text, font)
		if !ok {
			return
		}
		box := anchorBox(wm.Anchor, tw, th, w, h, margin)
		cx, cy := box.Center()
		dst.DrawText(wm.Text, cx, cy, font, surface.ParseColor(wm.Color, color.White), surface.AlignCenter)
	}
}

// qrImage encodes content as a QR code of size x size pixels.
func (r *Renderer) qrImage(content string, size int) image.Image {
	if content == "" || size <= 0 {
		return nil
	}
	key := qrKey{content: content, size: size}
	if img, ok := r.qrs[key]; ok {
		return img
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		log.Printf("[!] Не удалось построить QR-код: %v", err)
		return nil
	}
	q.DisableBorder = true
	img := q.Image(size)

	if len(r.qrs) >= maxCached {
		clear(r.qrs)
	}
	r.qrs[key] = img
	return img
}

// drawCTA draws the call-to-action pill near the bottom edge.
func (r *Renderer) drawCTA(dst surface.Surface, cta config.CTA, w, h float64) {
	if !cta.Enabled || cta.Text == "" {
		return
	}
	size := cta.FontSize
	if size <= 0 {
		size = w * 0.04
	}
	font := surface.Font{Family: surface.FamilySans, Size: size, Bold: true}
	tw, th, ok := dst.MeasureText(cta.Text, font)
	if !ok {
		return
	}

	pw, ph := tw+size*2.4, th+size*0.9
	pill := geometry.Rect{X: (w - pw) / 2, Y: h - h*0.08 - ph, W: pw, H: ph}

	sil := r.shadowImage(pill.W, pill.H, ph/2, ph*0.5, "#000000")
	pad := float64(sil.Bounds().Dx()-int(math.Ceil(pill.W))) / 2
	dst.Save()
	dst.SetAlpha(0.3)
	dst.DrawImage(sil, sil.Bounds(), geometry.Rect{
		X: pill.X - pad,
		Y: pill.Y + ph*0.15 - pad,
		W: float64(sil.Bounds().Dx()),
		H: float64(sil.Bounds().Dy()),
	})
	dst.Restore()

	dst.FillRoundedRect(pill, ph/2, surface.Solid(surface.ParseColor(cta.Color, color.NRGBA{R: 0xff, G: 0x5a, B: 0x5f, A: 0xff})))
	cx, cy := pill.Center()
	dst.DrawText(cta.Text, cx, cy, font, surface.ParseColor(cta.TextColor, color.White), surface.AlignCenter)
}

// drawTexture blends the static full-frame texture over everything drawn so far.
func (r *Renderer) drawTexture(dst surface.Surface, t config.Texture, w, h int) {
	if t.Kind == "" || t.Kind == effects.TextureNone || t.Opacity <= 0 {
		return
	}
	key := textureKey{kind: t.Kind, w: w, h: h, seed: t.Seed}
	tex, ok := r.textures[key]
	if !ok {
		tex = effects.Texture(t.Kind, w, h, t.Seed)
		if len(r.textures) >= maxCached {
			clear(r.textures)
		}
		r.textures[key] = tex
	}
	if tex == nil {
		return
	}
	mode := surface.BlendMode(t.Blend)
	if t.Kind == effects.TextureVignette {
		// The vignette is an alpha ramp of black and needs plain compositing.
		mode = surface.BlendNormal
	}
	dst.Composite(tex, mode, t.Opacity)
}

// drawGuides draws dashed snap lines on the center axes.
func drawGuides(dst surface.Surface, g config.Guides, w, h float64) {
	paint := surface.Solid(guideColor)
	if g.Vertical {
		x := w/2 - guideWidth/2
		for y := 0.0; y < h; y += guideDash + guideGap {
			dst.FillRect(geometry.Rect{X: x, Y: y, W: guideWidth, H: math.Min(guideDash, h-y)}, paint)
		}
	}
	if g.Horizontal {
		y := h/2 - guideWidth/2
		for x := 0.0; x < w; x += guideDash + guideGap {
			dst.FillRect(geometry.Rect{X: x, Y: y, W: math.Min(guideDash, w-x), H: guideWidth}, paint)
		}
	}
}
