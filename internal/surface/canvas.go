package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// kappa is the cubic Bézier control distance for a quarter circle.
const kappa = 0.5522847498

type state struct {
	m     gg.Matrix
	alpha float64
	clip  *image.Alpha // nil means unclipped
}

// Canvas is a Surface over a zero-origin *image.RGBA.
type Canvas struct {
	img   *image.RGBA
	st    state
	stack []state

	z       *vector.Rasterizer
	scratch *image.Alpha
	fonts   *FontCache

	// Interp is used by DrawImage.
	Interp xdraw.Interpolator
}

// NewCanvas allocates a transparent w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return Wrap(image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))))
}

// Wrap draws into an existing buffer. The buffer must start at (0, 0).
func Wrap(img *image.RGBA) *Canvas {
	b := img.Bounds()
	return &Canvas{
		img:     img,
		st:      state{m: gg.Identity(), alpha: 1},
		z:       vector.NewRasterizer(b.Dx(), b.Dy()),
		scratch: image.NewAlpha(b),
		fonts:   DefaultFonts,
		Interp:  xdraw.BiLinear,
	}
}

// SetFonts replaces the font cache used for text.
func (c *Canvas) SetFonts(fc *FontCache) {
	c.fonts = fc
}

func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.st)
}

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(x, y float64) {
	c.st.m = c.st.m.Multiply(gg.Translate(x, y))
}

func (c *Canvas) Rotate(radians float64) {
	c.st.m = c.st.m.Multiply(gg.Rotate(radians))
}

func (c *Canvas) Scale(sx, sy float64) {
	c.st.m = c.st.m.Multiply(gg.Scale(sx, sy))
}

func (c *Canvas) SetAlpha(a float64) {
	c.st.alpha = clamp01(a)
}

func (c *Canvas) ClipRoundedRect(r Rect, radius float64) {
	cov := image.NewAlpha(c.img.Bounds())
	c.rasterize(cov, func(p *pather) { p.roundedRect(r, radius) })
	if c.st.clip != nil {
		for i, v := range cov.Pix {
			cov.Pix[i] = uint8(uint32(v) * uint32(c.st.clip.Pix[i]) / 255)
		}
	}
	c.st.clip = cov
}

func (c *Canvas) FillRect(r Rect, paint image.Image) {
	c.fill(paint, func(p *pather) { p.rect(r) })
}

func (c *Canvas) FillRoundedRect(r Rect, radius float64, paint image.Image) {
	c.fill(paint, func(p *pather) { p.roundedRect(r, radius) })
}

func (c *Canvas) FillCircle(cx, cy, radius float64, paint image.Image) {
	c.fill(paint, func(p *pather) { p.ellipse(cx, cy, radius, radius) })
}

// fill rasterizes a path into the scratch mask, folds in clip and alpha,
// and composites paint through it.
func (c *Canvas) fill(paint image.Image, build func(p *pather)) {
	if paint == nil || c.st.alpha == 0 {
		return
	}
	bbox := c.rasterize(c.scratch, build)
	if bbox.Empty() {
		return
	}
	c.applyStateMask(c.scratch, bbox)
	draw.DrawMask(c.img, bbox, paint, bbox.Min, c.scratch, bbox.Min, draw.Over)
}

// rasterize fills dst (full canvas size) with path coverage and returns the
// device-space bounding box of the path.
func (c *Canvas) rasterize(dst *image.Alpha, build func(p *pather)) image.Rectangle {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Src
	p := &pather{z: c.z, m: c.st.m, minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	build(p)
	c.z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	bbox := image.Rect(
		int(math.Floor(p.minX)), int(math.Floor(p.minY)),
		int(math.Ceil(p.maxX)), int(math.Ceil(p.maxY)),
	)
	return bbox.Intersect(b)
}

// applyStateMask multiplies mask by the clip and global alpha inside bbox.
func (c *Canvas) applyStateMask(mask *image.Alpha, bbox image.Rectangle) {
	clip := c.st.clip
	alpha := uint32(math.Round(c.st.alpha * 255))
	if clip == nil && alpha == 255 {
		return
	}
	for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
		row := mask.PixOffset(bbox.Min.X, y)
		for i := row; i < row+bbox.Dx(); i++ {
			v := uint32(mask.Pix[i])
			if clip != nil {
				v = v * uint32(clip.Pix[i]) / 255
			}
			mask.Pix[i] = uint8(v * alpha / 255)
		}
	}
}

// stateMask returns the destination mask for image blits, or nil when the
// state neither clips nor fades.
func (c *Canvas) stateMask() image.Image {
	if c.st.clip == nil {
		if c.st.alpha >= 1 {
			return nil
		}
		return image.NewUniform(color.Alpha{A: uint8(math.Round(c.st.alpha * 255))})
	}
	if c.st.alpha >= 1 {
		return c.st.clip
	}
	m := image.NewAlpha(c.st.clip.Rect)
	copy(m.Pix, c.st.clip.Pix)
	c.applyStateMask(m, m.Rect)
	return m
}

func (c *Canvas) DrawImage(img image.Image, src image.Rectangle, dst Rect) {
	if img == nil || c.st.alpha == 0 {
		return
	}
	src = src.Intersect(img.Bounds())
	if src.Empty() || dst.Empty() {
		return
	}

	m := c.st.m.
		Multiply(gg.Translate(dst.X, dst.Y)).
		Multiply(gg.Scale(dst.W/float64(src.Dx()), dst.H/float64(src.Dy()))).
		Multiply(gg.Translate(-float64(src.Min.X), -float64(src.Min.Y)))

	s2d := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	var opts *xdraw.Options
	if mask := c.stateMask(); mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	c.Interp.Transform(c.img, s2d, img, src, xdraw.Over, opts)
}

func (c *Canvas) Composite(img image.Image, mode BlendMode, opacity float64) {
	if img == nil {
		return
	}
	opacity = clamp01(opacity)
	if opacity == 0 {
		return
	}
	b := c.img.Bounds()
	if mode == BlendNormal || mode == "" {
		var mask image.Image
		if opacity < 1 {
			mask = image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
		}
		draw.DrawMask(c.img, b, img, b.Min, mask, image.Point{}, draw.Over)
		return
	}
	blendInto(c.img, img, mode, opacity)
}

// pather feeds transformed path segments to the rasterizer and tracks the
// device-space bounding box.
type pather struct {
	z                      *vector.Rasterizer
	m                      gg.Matrix
	minX, minY, maxX, maxY float64
}

func (p *pather) tx(x, y float64) (float32, float32) {
	q := p.m.TransformPoint(gg.Pt(x, y))
	p.minX = math.Min(p.minX, q.X)
	p.minY = math.Min(p.minY, q.Y)
	p.maxX = math.Max(p.maxX, q.X)
	p.maxY = math.Max(p.maxY, q.Y)
	return float32(q.X), float32(q.Y)
}

func (p *pather) moveTo(x, y float64) {
	p.z.MoveTo(p.tx(x, y))
}

func (p *pather) lineTo(x, y float64) {
	p.z.LineTo(p.tx(x, y))
}

func (p *pather) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := p.tx(x1, y1)
	bx, by := p.tx(x2, y2)
	cx, cy := p.tx(x3, y3)
	p.z.CubeTo(ax, ay, bx, by, cx, cy)
}

func (p *pather) rect(r Rect) {
	p.moveTo(r.X, r.Y)
	p.lineTo(r.X+r.W, r.Y)
	p.lineTo(r.X+r.W, r.Y+r.H)
	p.lineTo(r.X, r.Y+r.H)
	p.z.ClosePath()
}

func (p *pather) roundedRect(r Rect, radius float64) {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	if radius == 0 {
		p.rect(r)
		return
	}
	k := radius * kappa
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H

	p.moveTo(x0+radius, y0)
	p.lineTo(x1-radius, y0)
	p.cubeTo(x1-radius+k, y0, x1, y0+radius-k, x1, y0+radius)
	p.lineTo(x1, y1-radius)
	p.cubeTo(x1, y1-radius+k, x1-radius+k, y1, x1-radius, y1)
	p.lineTo(x0+radius, y1)
	p.cubeTo(x0+radius-k, y1, x0, y1-radius+k, x0, y1-radius)
	p.lineTo(x0, y0+radius)
	p.cubeTo(x0, y0+radius-k, x0+radius-k, y0, x0+radius, y0)
	p.z.ClosePath()
}

func (p *pather) ellipse(cx, cy, rx, ry float64) {
	kx, ky := rx*kappa, ry*kappa
	p.moveTo(cx+rx, cy)
	p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.z.ClosePath()
}
