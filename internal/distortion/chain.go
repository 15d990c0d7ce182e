package distortion

import (
	"image"
	"math"

	"github.com/ivlev/frameit/internal/system"
)

// Params holds one amount per effect. Zero disables an effect.
type Params struct {
	Twirl  float64 `yaml:"twirl,omitempty"`
	Wave   float64 `yaml:"wave,omitempty"`
	Ripple float64 `yaml:"ripple,omitempty"`
	Zoom   float64 `yaml:"zoom,omitempty"`
	Shake  float64 `yaml:"shake,omitempty"`
	Lens   float64 `yaml:"lens,omitempty"`
	// Seed drives the shake jitter.
	Seed uint64 `yaml:"seed,omitempty"`
}

// Active reports whether any effect is enabled.
func (p Params) Active() bool {
	return p.Twirl != 0 || p.Wave != 0 || p.Ripple != 0 || p.Zoom != 0 || p.Shake != 0 || p.Lens != 0
}

// Normalize clamps every amount into its accepted range.
func (p Params) Normalize() Params {
	p.Twirl = clamp(p.Twirl, 0, 100)
	p.Wave = clamp(p.Wave, 0, 100)
	p.Ripple = clamp(p.Ripple, 0, 100)
	p.Zoom = clamp(p.Zoom, -90, 100)
	p.Shake = clamp(p.Shake, 0, 100)
	p.Lens = clamp(p.Lens, -100, 100)
	return p
}

type step struct {
	kernel Kernel
	amount float64
}

// steps returns the enabled effects in their fixed order:
// twirl, wave, ripple, zoom, shake, lens.
func (p Params) steps() []step {
	all := []step{
		{Twirl, p.Twirl},
		{Wave, p.Wave},
		{Ripple, p.Ripple},
		{Zoom, p.Zoom},
		{Shake(p.Seed), p.Shake},
		{Lens, p.Lens},
	}
	active := all[:0]
	for _, s := range all {
		if s.amount != 0 {
			active = append(active, s)
		}
	}
	return active
}

// Chain applies every enabled effect of p to src and writes the result into
// dst. Intermediate results ping-pong between two pooled scratch buffers
// that are returned to the pool before Chain exits, so repeated calls share
// no state. dst may be src.
func Chain(dst, src *image.RGBA, p Params) {
	steps := p.Normalize().steps()
	if len(steps) == 0 {
		copyPixels(normalize(dst), normalize(src))
		return
	}

	rect := image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy())
	a := system.GetImage(rect)
	b := system.GetImage(rect)
	defer system.PutImage(a)
	defer system.PutImage(b)

	cur := normalize(src)
	next := a
	for _, s := range steps {
		s.kernel(next, cur, s.amount)
		cur = next
		if next == a {
			next = b
		} else {
			next = a
		}
	}
	copyPixels(normalize(dst), cur)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
