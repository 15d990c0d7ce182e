package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/system"
)

// ffmpegSink pipes raw RGBA frames into an ffmpeg process.
type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	size   image.Point
	frames int
}

func newFFmpegSink(ctx context.Context, spec Spec) (*ffmpegSink, error) {
	s := &ffmpegSink{size: image.Pt(spec.Width, spec.Height)}
	s.cmd = exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(spec)...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin
	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func buildFFmpegArgs(spec Spec) []string {
	args := []string{
		"-y",
		"-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"-framerate", fmt.Sprintf("%d", spec.FPS),
		"-i", "-",
		// yuv420p needs even dimensions.
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
	}

	if spec.Format == config.FormatWebM {
		q := spec.Quality
		if q <= 0 {
			q = 32
		}
		args = append(args, "-c:v", "libvpx-vp9", "-crf", fmt.Sprintf("%d", q), "-b:v", "0")
		return append(args, spec.Path)
	}

	encoderName := system.GetBestH264Encoder()
	quality := spec.Quality
	if quality <= 0 {
		quality = system.DefaultQuality(encoderName)
	}
	args = append(args, "-c:v", encoderName)
	switch encoderName {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}
	args = append(args, "-movflags", "+faststart")
	return append(args, spec.Path)
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if img.Bounds().Size() != s.size {
		return fmt.Errorf("кадр %v не совпадает с размером видео %v", img.Bounds().Size(), s.size)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	s.frames++
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	if s.frames == 0 {
		return ErrNoFrames
	}
	return nil
}

// writeRawRGBA writes tightly packed RGBA rows, copying when img has a
// stride or origin ffmpeg would misread.
func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
