package distortion

import (
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// OutOfBounds selects what a kernel writes when its source sample falls
// outside the buffer.
type OutOfBounds int

const (
	// Transparent writes a zero pixel.
	Transparent OutOfBounds = iota
	// ClampEdge samples the nearest valid pixel.
	ClampEdge
	// SamePosition copies the source pixel at the destination coordinate.
	SamePosition
)

// rowMapper returns the inverse mapping for one destination row: for a
// destination x it yields the source coordinate to sample.
type rowMapper func(y int) func(x int) (sx, sy float64)

// minBandRows keeps bands large enough that goroutine overhead stays small.
const minBandRows = 32

// remap fills dst by inverse mapping into src with nearest-neighbour
// sampling. Rows are split into bands processed concurrently; each band
// only writes its own rows of dst and only reads src.
func remap(dst, src *image.RGBA, mapper rowMapper, oob OutOfBounds) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	bands := runtime.GOMAXPROCS(0)
	if maxBands := h / minBandRows; bands > maxBands {
		bands = maxBands
	}
	if bands < 1 {
		bands = 1
	}
	rowsPerBand := (h + bands - 1) / bands

	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, h)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				rowMap := mapper(y)
				do := y * dst.Stride
				for x := 0; x < w; x++ {
					sx, sy := rowMap(x)
					ix := int(math.Floor(sx))
					iy := int(math.Floor(sy))

					if ix < 0 || ix >= w || iy < 0 || iy >= h {
						switch oob {
						case Transparent:
							copy(dst.Pix[do+x*4:do+x*4+4], zeroPixel[:])
							continue
						case ClampEdge:
							ix = max(0, min(ix, w-1))
							iy = max(0, min(iy, h-1))
						case SamePosition:
							ix, iy = x, y
						}
					}

					so := iy*src.Stride + ix*4
					copy(dst.Pix[do+x*4:do+x*4+4], src.Pix[so:so+4])
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

var zeroPixel [4]byte

// copyPixels copies src into dst. Both must share dimensions.
func copyPixels(dst, src *image.RGBA) {
	if dst == src {
		return
	}
	h := src.Bounds().Dy()
	rowBytes := src.Bounds().Dx() * 4
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowBytes], src.Pix[y*src.Stride:y*src.Stride+rowBytes])
	}
}

// normalize returns a buffer with a zero-origin rectangle so kernels can
// address pixels from 0.
func normalize(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	out := *img
	out.Rect = image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy())
	out.Pix = img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y):]
	return &out
}

func center(img *image.RGBA) (cx, cy float64) {
	b := img.Bounds()
	return float64(b.Dx()) / 2, float64(b.Dy()) / 2
}
