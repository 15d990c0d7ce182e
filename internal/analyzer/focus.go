// Package analyzer locates the visually busy part of an image so smart crop
// can keep it inside the cover window.
package analyzer

import (
	"image"
	"math"
)

// Block is a detected region of interest in source image coordinates.
type Block struct {
	Rect       image.Rectangle
	Type       string  // "text", "image", "unknown"
	Confidence float64 // 0.0-1.0
}

// Detector finds regions of interest.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// Focus returns the focus point of img as fractions of its width and
// height. Blocks are weighted by area times confidence; with no blocks the
// focus is the center.
func Focus(img image.Image, d Detector) (fx, fy float64) {
	fx, fy = 0.5, 0.5
	if img == nil || d == nil {
		return fx, fy
	}
	b := img.Bounds()
	if b.Empty() {
		return fx, fy
	}
	blocks, err := d.Detect(img)
	if err != nil || len(blocks) == 0 {
		return fx, fy
	}

	var sx, sy, sw float64
	for _, bl := range blocks {
		w := float64(bl.Rect.Dx()*bl.Rect.Dy()) * bl.Confidence
		if w <= 0 {
			continue
		}
		cx := float64(bl.Rect.Min.X+bl.Rect.Max.X) / 2
		cy := float64(bl.Rect.Min.Y+bl.Rect.Max.Y) / 2
		sx += cx * w
		sy += cy * w
		sw += w
	}
	if sw == 0 {
		return fx, fy
	}
	fx = (sx/sw - float64(b.Min.X)) / float64(b.Dx())
	fy = (sy/sw - float64(b.Min.Y)) / float64(b.Dy())
	return clamp01(fx), clamp01(fy)
}

// PanToward converts a focus fraction into the pan value (-100..100) that
// centers a crop window of size crop on it inside a source axis of size
// full. The result is clamped; no slack yields 0.
func PanToward(focus, full, crop float64) float64 {
	slack := full - crop
	if slack <= 0 || full <= 0 {
		return 0
	}
	offset := focus*full - crop/2
	pan := (offset - slack/2) / (slack / 2) * 100
	return math.Max(-100, math.Min(100, pan))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
