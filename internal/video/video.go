// Package video turns rendered frames into files: animated sequences
// through a Sink and single frames through EncodeStill.
package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/system"
)

// ErrNoFrames is returned by Close when a sink received nothing.
var ErrNoFrames = errors.New("no frames written")

// Sink consumes frames of a fixed size. The frame buffer may be reused by
// the caller after WriteFrame returns.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Spec describes one animated export.
type Spec struct {
	Path    string
	Format  string
	Width   int
	Height  int
	FPS     int
	Quality int // 0 = по умолчанию для кодека
	// Frames is the expected frame count, used for memory estimates.
	Frames int
}

// Result reports where the output went and whether the format changed.
type Result struct {
	Path   string
	Format string
	Notice string
}

// hasFFmpeg is replaced in tests.
var hasFFmpeg = system.HasFFmpeg

// Open creates a sink for spec. When the requested codec is unavailable a
// fallback format is chosen and described in Result.Notice.
func Open(ctx context.Context, spec Spec) (Sink, Result, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, Result{}, fmt.Errorf("некорректный размер кадра %dx%d", spec.Width, spec.Height)
	}
	if spec.FPS <= 0 {
		spec.FPS = 30
	}
	res := Result{Path: spec.Path, Format: spec.Format}

	switch spec.Format {
	case config.FormatMP4, config.FormatWebM:
		if hasFFmpeg() {
			s, err := newFFmpegSink(ctx, spec)
			return s, res, err
		}
		res.Notice = fmt.Sprintf("ffmpeg не найден: %s заменён на avi (MJPEG)", spec.Format)
		res.Format = config.FormatAVI
		res.Path = withExt(spec.Path, config.FormatAVI)
		spec.Path, spec.Format = res.Path, res.Format
		s, err := newMJPEGSink(spec)
		return s, res, err

	case config.FormatAVI:
		s, err := newMJPEGSink(spec)
		return s, res, err

	case config.FormatGIF:
		s, err := newGIFSink(spec)
		return s, res, err
	}
	return nil, res, fmt.Errorf("формат %q не поддерживает анимацию", spec.Format)
}

// withExt swaps the extension of path for format.
func withExt(path, format string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + Ext(format)
}

// Ext returns the file extension for an export format.
func Ext(format string) string {
	if format == config.FormatJPEG {
		return "jpg"
	}
	return format
}
