// Package surface abstracts the raster target the compositor draws on.
// The renderer only talks to the Surface interface; Canvas is the headless
// implementation backed by a premultiplied *image.RGBA.
package surface

import (
	"image"
	"image/color"

	"github.com/ivlev/frameit/internal/geometry"
)

// Rect is a rectangle in user space (before the current transform).
type Rect = geometry.Rect

// Align is the horizontal anchor of a text run.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// BlendMode selects how Composite mixes an image into the surface.
type BlendMode string

const (
	BlendNormal   BlendMode = "normal"
	BlendOverlay  BlendMode = "overlay"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendSoft     BlendMode = "soft-light"
)

// Font selects a face. Family is one of the bundled families (sans, mono,
// smallcaps) or a path to a TrueType/OpenType file.
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// Surface is the set of drawing operations the compositor needs.
//
// Transform, alpha and clip form a state that Save pushes and Restore pops.
// Paint arguments are images sampled in device pixels; use Solid for flat
// colors and LinearGradient/RadialGradient for gradients.
type Surface interface {
	Bounds() image.Rectangle
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)
	// SetAlpha sets the global opacity for subsequent drawing.
	SetAlpha(a float64)
	// ClipRoundedRect intersects the clip with a rounded rectangle.
	ClipRoundedRect(r Rect, radius float64)

	FillRect(r Rect, paint image.Image)
	FillRoundedRect(r Rect, radius float64, paint image.Image)
	FillCircle(cx, cy, radius float64, paint image.Image)

	// DrawImage maps the src rectangle of img onto dst.
	DrawImage(img image.Image, src image.Rectangle, dst Rect)
	// DrawText draws s with its vertical center at y. Returns false when the
	// font is unavailable and nothing was drawn.
	DrawText(s string, x, y float64, f Font, c color.Color, align Align) bool
	// MeasureText returns the size of the laid-out text block.
	MeasureText(s string, f Font) (w, h float64, ok bool)

	// Composite blends a full-frame image over the surface, ignoring the
	// transform and clip.
	Composite(img image.Image, mode BlendMode, opacity float64)

	// Image exposes the backing pixels for raster passes and encoding.
	Image() *image.RGBA
}

// Solid returns a flat paint.
func Solid(c color.Color) image.Image {
	return image.NewUniform(c)
}
