package effects

import (
	"image/color"
	"math"
)

// ColorMatrix is a 3x3 matrix applied to straight (non-premultiplied) RGB.
type ColorMatrix [9]float64

// HueRotate returns the luminance-preserving hue rotation matrix for deg
// degrees, built on the 0.213/0.715/0.072 luma weights.
func HueRotate(deg float64) ColorMatrix {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return ColorMatrix{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
	}
}

// ApplyNRGBA transforms one straight-alpha color. Alpha passes through.
func (m ColorMatrix) ApplyNRGBA(c color.NRGBA) color.NRGBA {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return color.NRGBA{
		R: clampByte(m[0]*r + m[1]*g + m[2]*b),
		G: clampByte(m[3]*r + m[4]*g + m[5]*b),
		B: clampByte(m[6]*r + m[7]*g + m[8]*b),
		A: c.A,
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
