package distortion

import (
	"image"
	"math"
	"math/rand/v2"
)

// Kernel writes a distorted copy of src into dst. dst and src must have the
// same size and must not alias. An amount of 0 copies src unchanged.
type Kernel func(dst, src *image.RGBA, amount float64)

// Tuning constants for the amount knob. Amounts are in [0, 100] except
// Zoom and Lens, which accept negative values too.
const (
	twirlMaxDegrees = 360.0 // twirl angle at amount 100
	waveFrequency   = 0.03  // radians per row
	waveMaxAmp      = 40.0  // pixels at amount 100
	rippleK         = 0.08  // radians per pixel of radius
	rippleMaxAmp    = 20.0  // pixels at amount 100
	shakeMaxJitter  = 5.0   // pixels at amount 100
	lensMaxK        = 0.5   // barrel coefficient at amount 100
)

// Twirl rotates pixels around the center, strongest at the center and
// fading to zero at the inscribed radius. Samples outside the buffer are
// transparent; pixels beyond the radius are copied unchanged.
func Twirl(dst, src *image.RGBA, amount float64) {
	if amount == 0 {
		copyPixels(dst, src)
		return
	}
	dst, src = normalize(dst), normalize(src)
	cx, cy := center(src)
	maxRadius := math.Min(cx, cy)
	angle := amount / 100 * twirlMaxDegrees * math.Pi / 180

	remap(dst, src, func(y int) func(x int) (float64, float64) {
		fy := float64(y) + 0.5 - cy
		return func(x int) (float64, float64) {
			fx := float64(x) + 0.5 - cx
			d := math.Hypot(fx, fy)
			if d >= maxRadius {
				return float64(x), float64(y)
			}
			theta := angle * (1 - d/maxRadius)
			sin, cos := math.Sincos(theta)
			return cx + fx*cos - fy*sin, cy + fx*sin + fy*cos
		}
	}, Transparent)
}

// Wave shifts every row horizontally by a sine of its y coordinate.
// Samples are clamped to the nearest valid column.
func Wave(dst, src *image.RGBA, amount float64) {
	if amount == 0 {
		copyPixels(dst, src)
		return
	}
	dst, src = normalize(dst), normalize(src)
	amp := amount / 100 * waveMaxAmp

	remap(dst, src, func(y int) func(x int) (float64, float64) {
		dx := math.Sin(float64(y)*waveFrequency) * amp
		fy := float64(y) + 0.5
		return func(x int) (float64, float64) {
			return float64(x) + 0.5 + dx, fy
		}
	}, ClampEdge)
}

// Ripple displaces pixels radially with a decaying sine inside the
// inscribed radius. Out-of-bounds samples fall back to the pixel at the
// destination position so no holes appear.
func Ripple(dst, src *image.RGBA, amount float64) {
	if amount == 0 {
		copyPixels(dst, src)
		return
	}
	dst, src = normalize(dst), normalize(src)
	cx, cy := center(src)
	maxRadius := math.Min(cx, cy)
	strength := amount / 100 * rippleMaxAmp

	remap(dst, src, func(y int) func(x int) (float64, float64) {
		fy := float64(y) + 0.5 - cy
		return func(x int) (float64, float64) {
			fx := float64(x) + 0.5 - cx
			d := math.Hypot(fx, fy)
			if d >= maxRadius || d == 0 {
				return float64(x), float64(y)
			}
			dr := math.Sin(d*rippleK) * strength * (1 - d/maxRadius)
			k := (d + dr) / d
			return cx + fx*k, cy + fy*k
		}
	}, SamePosition)
}

// Zoom scales the image about its center by 1 + amount/100. Negative
// amounts zoom out and leave a transparent border.
func Zoom(dst, src *image.RGBA, amount float64) {
	factor := 1 + amount/100
	if amount == 0 || factor <= 0 {
		copyPixels(dst, src)
		return
	}
	dst, src = normalize(dst), normalize(src)
	cx, cy := center(src)

	remap(dst, src, func(y int) func(x int) (float64, float64) {
		sy := cy + (float64(y)+0.5-cy)/factor
		return func(x int) (float64, float64) {
			return cx + (float64(x)+0.5-cx)/factor, sy
		}
	}, Transparent)
}

// Shake jitters every pixel independently by up to 5px scaled by amount.
// The jitter is derived from seed and the row index, so the result is
// reproducible for a given seed regardless of band scheduling.
func Shake(seed uint64) Kernel {
	return func(dst, src *image.RGBA, amount float64) {
		if amount == 0 {
			copyPixels(dst, src)
			return
		}
		dst, src = normalize(dst), normalize(src)
		jitter := amount / 100 * shakeMaxJitter

		remap(dst, src, func(y int) func(x int) (float64, float64) {
			rng := rand.New(rand.NewPCG(seed, uint64(y)))
			fy := float64(y) + 0.5
			return func(x int) (float64, float64) {
				jx := (rng.Float64()*2 - 1) * jitter
				jy := (rng.Float64()*2 - 1) * jitter
				return float64(x) + 0.5 + jx, fy + jy
			}
		}, SamePosition)
	}
}

// Lens applies barrel (positive amount) or pincushion (negative amount)
// distortion: distortion(d) = 1 + k*(d/maxRadius)^2 with maxRadius the
// half diagonal.
func Lens(dst, src *image.RGBA, amount float64) {
	if amount == 0 {
		copyPixels(dst, src)
		return
	}
	dst, src = normalize(dst), normalize(src)
	cx, cy := center(src)
	maxRadius := math.Hypot(cx, cy)
	k := amount / 100 * lensMaxK

	remap(dst, src, func(y int) func(x int) (float64, float64) {
		fy := float64(y) + 0.5 - cy
		return func(x int) (float64, float64) {
			fx := float64(x) + 0.5 - cx
			r := math.Hypot(fx, fy) / maxRadius
			f := 1 + k*r*r
			return cx + fx*f, cy + fy*f
		}
	}, SamePosition)
}

// Apply runs one kernel into a freshly allocated buffer and returns it.
func Apply(k Kernel, src *image.RGBA, amount float64) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
	k(dst, src, amount)
	return dst
}
