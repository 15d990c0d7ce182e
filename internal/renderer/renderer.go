// Package renderer composites a scene onto a surface in a fixed layer
// order: background, behind text, images, front text, watermark, call to
// action, texture and guides.
package renderer

import (
	"image"
	"math"
	"sync"
	"time"

	"github.com/ivlev/frameit/internal/analyzer"
	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/geometry"
	"github.com/ivlev/frameit/internal/source"
	"github.com/ivlev/frameit/internal/surface"
)

// Frame is everything one render needs.
type Frame struct {
	Scene  *config.Scene
	Assets *source.Assets
	// Now is the animation clock; it is compared with Scene.Animation.Start.
	Now time.Duration
	// Rand feeds the glitch style. Nil disables it.
	Rand animation.Rand
}

// Renderer keeps derived rasters between frames: the processed background,
// blurred shadow silhouettes, textures, QR codes and smart-crop focus
// points. Every cache is keyed by all of its inputs, so a changed scene or
// buffer size recomputes instead of serving stale pixels.
type Renderer struct {
	mu sync.Mutex

	Detector analyzer.Detector

	bgKey bgKey
	bg    *image.RGBA

	shadows  map[shadowKey]*image.NRGBA
	textures map[textureKey]image.Image
	qrs      map[qrKey]image.Image
	focus    map[image.Image][2]float64
}

// New returns a renderer with empty caches and the contrast detector.
func New() *Renderer {
	return &Renderer{
		Detector: analyzer.NewContrastDetector(),
		shadows:  make(map[shadowKey]*image.NRGBA),
		textures: make(map[textureKey]image.Image),
		qrs:      make(map[qrKey]image.Image),
		focus:    make(map[image.Image][2]float64),
	}
}

// maxCached bounds the small per-key caches.
const maxCached = 64

// Render draws one frame of f.Scene onto dst. Missing images and fonts are
// skipped; the frame is always completed.
func (r *Renderer) Render(dst surface.Surface, f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scene := f.Scene
	if scene == nil {
		dst.Clear()
		return
	}
	assets := f.Assets
	if assets == nil {
		assets = &source.Assets{}
	}

	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	dst.Clear()

	bg := r.background(b.Dx(), b.Dy(), scene, assets.Background)
	dst.DrawImage(bg, bg.Bounds(), surface.Rect{W: w, H: h})

	imageCount := len(scene.Images)

	// Text behind the images does not animate.
	for _, t := range scene.Text {
		if !t.Front() {
			r.drawText(dst, t, w, h, animation.Identity)
		}
	}

	r.drawImages(dst, scene, assets, f, w, h)

	// Front text continues the stagger after the images.
	for i, t := range scene.Text {
		if t.Front() {
			r.drawText(dst, t, w, h, r.delta(f, imageCount+i))
		}
	}

	r.drawWatermark(dst, scene.Watermark, assets.Watermark, w, h)
	r.drawCTA(dst, scene.CTA, w, h)
	r.drawTexture(dst, scene.Texture, b.Dx(), b.Dy())
	drawGuides(dst, scene.Guides, w, h)
}

// delta evaluates the motion of element index for this frame.
func (r *Renderer) delta(f Frame, index int) animation.Delta {
	a := f.Scene.Animation
	p, active := animation.Progress(f.Now, a, index)
	if !active {
		return animation.Identity
	}
	return animation.Apply(a.Style, p, a.Intensity, a.Direction, f.Rand)
}

// withDelta applies d around (cx, cy) inside a Save/Restore pair.
func withDelta(dst surface.Surface, d animation.Delta, cx, cy, alpha float64, draw func()) {
	dst.Save()
	defer dst.Restore()

	dst.Translate(cx+d.XOffset, cy+d.YOffset)
	if d.RotationDeg != 0 {
		dst.Rotate(d.RotationDeg * math.Pi / 180)
	}
	if d.Scale != 1 {
		dst.Scale(d.Scale, d.Scale)
	}
	dst.Translate(-cx, -cy)
	dst.SetAlpha(alpha * d.Opacity)
	draw()
}

// placement fits image i into region, deriving the pan from the image
// focus when smart crop is on and the slot has no manual pan.
func (r *Renderer) placement(scene *config.Scene, slot config.ImageSlot, img image.Image, region geometry.Rect) geometry.Placement {
	ib := img.Bounds()
	iw, ih := ib.Dx(), ib.Dy()
	p := geometry.FitImage(iw, ih, region, scene.Fit, slot.Scale, slot.PanX, slot.PanY)

	if scene.Fit != geometry.FitCover || !scene.SmartCrop || slot.PanX != 0 || slot.PanY != 0 || p.Empty() {
		p.Crop = p.Crop.Add(ib.Min)
		return p
	}

	fp, ok := r.focus[img]
	if !ok {
		fx, fy := analyzer.Focus(img, r.Detector)
		fp = [2]float64{fx, fy}
		if len(r.focus) >= maxCached {
			clear(r.focus)
		}
		r.focus[img] = fp
	}
	panX := analyzer.PanToward(fp[0], float64(iw), float64(p.Crop.Dx()))
	panY := analyzer.PanToward(fp[1], float64(ih), float64(p.Crop.Dy()))
	p = geometry.FitImage(iw, ih, region, scene.Fit, slot.Scale, panX, panY)
	p.Crop = p.Crop.Add(ib.Min)
	return p
}
