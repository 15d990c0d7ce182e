package video

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"

	"github.com/ivlev/frameit/internal/system"
)

// gifSink quantizes every frame on arrival and encodes the whole
// animation on Close, looping forever.
type gifSink struct {
	path  string
	delay int
	anim  gif.GIF
}

func newGIFSink(spec Spec) (*gifSink, error) {
	frames := max(spec.Frames, 1)
	if err := system.CheckMemory(uint64(spec.Width) * uint64(spec.Height) * uint64(frames)); err != nil {
		return nil, fmt.Errorf("GIF не поместится в память: %w", err)
	}
	// GIF delays are in hundredths of a second; most viewers clamp below 2.
	delay := max(2, int(math.Round(100/float64(spec.FPS))))
	return &gifSink{path: spec.Path, delay: delay, anim: gif.GIF{LoopCount: 0}}, nil
}

func (s *gifSink) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	paletted := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), img, b.Min)
	s.anim.Image = append(s.anim.Image, paletted)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *gifSink) Close() error {
	if len(s.anim.Image) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return fmt.Errorf("ошибка кодирования GIF: %w", err)
	}
	return f.Close()
}
