package video

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

const defaultJPEGQuality = 90

// mjpegSink writes an AVI of JPEG frames without external tools.
type mjpegSink struct {
	aw      mjpeg.AviWriter
	quality int
	buf     bytes.Buffer
	frames  int
}

func newMJPEGSink(spec Spec) (*mjpegSink, error) {
	aw, err := mjpeg.New(spec.Path, int32(spec.Width), int32(spec.Height), int32(spec.FPS))
	if err != nil {
		return nil, fmt.Errorf("не удалось создать AVI: %w", err)
	}
	q := spec.Quality
	if q <= 0 || q > 100 {
		q = defaultJPEGQuality
	}
	return &mjpegSink{aw: aw, quality: q}, nil
}

func (s *mjpegSink) WriteFrame(img *image.RGBA) error {
	s.buf.Reset()
	if err := jpeg.Encode(&s.buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("failed to encode frame %d as JPEG: %w", s.frames, err)
	}
	if err := s.aw.AddFrame(s.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to add frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

func (s *mjpegSink) Close() error {
	if err := s.aw.Close(); err != nil {
		return err
	}
	if s.frames == 0 {
		return ErrNoFrames
	}
	return nil
}
