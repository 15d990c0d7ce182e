package effects

import (
	"image"

	"github.com/ivlev/frameit/internal/distortion"
)

// Effect is a full-frame pass over a rendered buffer.
type Effect interface {
	Apply(img *image.RGBA)
	Active() bool
}

// DistortionEffect runs the distortion chain in place.
type DistortionEffect struct {
	Params distortion.Params
}

func (e DistortionEffect) Apply(img *image.RGBA) {
	distortion.Chain(img, img, e.Params)
}

func (e DistortionEffect) Active() bool {
	return e.Params.Active()
}

// FilterEffect applies the post color filters.
type FilterEffect struct {
	Params FilterParams
}

func (e FilterEffect) Apply(img *image.RGBA) {
	ApplyFilters(img, e.Params)
}

func (e FilterEffect) Active() bool {
	return e.Params.Active()
}

// Pipeline returns the background passes in their fixed order:
// distortions first, then color filters.
func Pipeline(d distortion.Params, f FilterParams) []Effect {
	return []Effect{DistortionEffect{Params: d}, FilterEffect{Params: f}}
}

// Run applies every active effect to img.
func Run(img *image.RGBA, pipeline []Effect) {
	for _, e := range pipeline {
		if e.Active() {
			e.Apply(img)
		}
	}
}
