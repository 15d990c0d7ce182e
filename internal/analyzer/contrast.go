package analyzer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ContrastDetector finds high-detail regions with a Sobel edge pass.
// Large images are downscaled to AnalysisWidth first; block rectangles are
// reported in the coordinates of the original image.
type ContrastDetector struct {
	MinBlockArea  int     // minimum area in analysis pixels²
	EdgeThreshold float64 // gradient magnitude threshold
	AnalysisWidth int     // 0 keeps the original size
}

// NewContrastDetector creates a new contrast-based detector with default settings
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  60,
		EdgeThreshold: 30.0,
		AnalysisWidth: 256,
	}
}

// Detect finds regions of interest using edge detection and morphology
func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}

	work := imaging.Grayscale(img)
	factor := 1.0
	if d.AnalysisWidth > 0 && b.Dx() > d.AnalysisWidth {
		work = imaging.Resize(work, d.AnalysisWidth, 0, imaging.Box)
		factor = float64(b.Dx()) / float64(work.Bounds().Dx())
	}
	gray := luma(work)

	edges, energy := sobel(gray, d.EdgeThreshold)
	dilated := dilate(edgeMask{w: gray.w, h: gray.h, pix: edges}, 5, 2)

	var blocks []Block
	for _, rect := range findContours(dilated) {
		area := rect.Dx() * rect.Dy()
		if area < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{
			Rect:       scaleRect(rect, factor, b.Min).Intersect(b),
			Type:       classify(rect),
			Confidence: density(energy, rect),
		})
	}
	return blocks, nil
}

// luma extracts the red channel of a grayscale NRGBA into a plane.
func luma(img *image.NRGBA) *plane {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	p := newPlane(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			p.pix[y*w+x] = float64(row[x*4])
		}
	}
	return p
}

// plane is a dense float image in analysis coordinates.
type plane struct {
	w, h int
	pix  []float64
}

func newPlane(w, h int) *plane {
	return &plane{w: w, h: h, pix: make([]float64, w*h)}
}

func (p *plane) at(x, y int) float64 { return p.pix[y*p.w+x] }

// sobel returns the thresholded edge mask and the raw gradient magnitude.
func sobel(gray *plane, threshold float64) (mask []bool, energy *plane) {
	w, h := gray.w, gray.h
	mask = make([]bool, w*h)
	energy = newPlane(w, h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl, t, tr := gray.at(x-1, y-1), gray.at(x, y-1), gray.at(x+1, y-1)
			l, r := gray.at(x-1, y), gray.at(x+1, y)
			bl, bm, br := gray.at(x-1, y+1), gray.at(x, y+1), gray.at(x+1, y+1)

			gx := (tr + 2*r + br) - (tl + 2*l + bl)
			gy := (bl + 2*bm + br) - (tl + 2*t + tr)
			m := math.Hypot(gx, gy)

			energy.pix[y*w+x] = m
			mask[y*w+x] = m > threshold
		}
	}
	return mask, energy
}

// dilate grows the mask with a square kernel to connect nearby edges.
func dilate(m edgeMask, kernel, iterations int) edgeMask {
	half := kernel / 2
	w, h := m.w, m.h
	cur := m.pix
	for range iterations {
		next := make([]bool, len(cur))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !cur[y*w+x] {
					continue
				}
				for ky := max(0, y-half); ky <= min(h-1, y+half); ky++ {
					for kx := max(0, x-half); kx <= min(w-1, x+half); kx++ {
						next[ky*w+kx] = true
					}
				}
			}
		}
		cur = next
	}
	return edgeMask{w: w, h: h, pix: cur}
}

// findContours returns the bounding boxes of 4-connected components.
func findContours(m edgeMask) []image.Rectangle {
	visited := make([]bool, len(m.pix))
	var out []image.Rectangle
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			i := y*m.w + x
			if m.pix[i] && !visited[i] {
				out = append(out, floodFill(m, visited, x, y))
			}
		}
	}
	return out
}

type edgeMask struct {
	w, h int
	pix  []bool
}

func floodFill(m edgeMask, visited []bool, sx, sy int) image.Rectangle {
	minX, minY, maxX, maxY := sx, sy, sx, sy
	stack := []image.Point{{X: sx, Y: sy}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.X < 0 || p.X >= m.w || p.Y < 0 || p.Y >= m.h {
			continue
		}
		i := p.Y*m.w + p.X
		if visited[i] || !m.pix[i] {
			continue
		}
		visited[i] = true

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// classify guesses the block type from its shape: wide thin strips are
// usually text lines.
func classify(r image.Rectangle) string {
	w, h := float64(r.Dx()), float64(r.Dy())
	switch {
	case h > 0 && w/h >= 4:
		return "text"
	case w > 0 && h/w >= 4:
		return "unknown"
	default:
		return "image"
	}
}

// density is the share of the block covered by strong gradients, mapped
// into 0.3..1.
func density(energy *plane, r image.Rectangle) float64 {
	var sum float64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sum += math.Min(energy.at(x, y), 255)
		}
	}
	area := float64(r.Dx() * r.Dy())
	if area == 0 {
		return 0
	}
	return 0.3 + 0.7*math.Min(1, sum/area/255*2)
}

func scaleRect(r image.Rectangle, f float64, origin image.Point) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X)*f)), int(math.Floor(float64(r.Min.Y)*f)),
		int(math.Ceil(float64(r.Max.X)*f)), int(math.Ceil(float64(r.Max.Y)*f)),
	).Add(origin)
}
