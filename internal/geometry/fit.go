package geometry

import (
	"image"
	"math"
)

// Fit modes.
const (
	FitContain = "contain"
	FitCover   = "cover"
)

// Placement is where and how an image lands inside a region.
type Placement struct {
	Draw Rect            // destination rectangle in buffer pixels
	Crop image.Rectangle // source rectangle that maps onto Draw
}

// Empty reports whether nothing should be drawn.
func (p Placement) Empty() bool {
	return p.Draw.Empty() || p.Crop.Empty()
}

// FitImage places an iw x ih image into region.
//
// contain: the whole image is scaled to fit, centered, then multiplied by
// scale around the region center (it may overflow when scale > 1).
//
// cover: the image fills the region and the overflowing axis is cropped;
// panX/panY in [-100, 100] slide the crop window, clamped to the source.
// A scale above 1 zooms into the crop window, below 1 is treated as 1 so the
// region stays covered.
func FitImage(iw, ih int, region Rect, mode string, scale, panX, panY float64) Placement {
	if region.Empty() || iw <= 0 || ih <= 0 {
		return Placement{}
	}
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	panX = clampPan(panX)
	panY = clampPan(panY)

	fw, fh := float64(iw), float64(ih)

	if mode == FitCover {
		if scale < 1 {
			scale = 1
		}
		s := math.Max(region.W/fw, region.H/fh) * scale
		cropW := math.Min(region.W/s, fw)
		cropH := math.Min(region.H/s, fh)

		cx := panOffset(fw, cropW, panX)
		cy := panOffset(fh, cropH, panY)

		crop := image.Rect(
			int(math.Floor(cx)),
			int(math.Floor(cy)),
			int(math.Ceil(cx+cropW)),
			int(math.Ceil(cy+cropH)),
		).Intersect(image.Rect(0, 0, iw, ih))

		return Placement{Draw: region, Crop: crop}
	}

	ratio := math.Max(fw/region.W, fh/region.H)
	dw := fw / ratio * scale
	dh := fh / ratio * scale
	cx, cy := region.Center()

	return Placement{
		Draw: Rect{X: cx - dw/2, Y: cy - dh/2, W: dw, H: dh},
		Crop: image.Rect(0, 0, iw, ih),
	}
}

// panOffset returns the crop origin along one axis.
func panOffset(full, crop, pan float64) float64 {
	slack := full - crop
	if slack <= 0 {
		return 0
	}
	off := slack/2 + pan/100*slack/2
	return math.Max(0, math.Min(off, slack))
}

func clampPan(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-100, math.Min(100, v))
}
