package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/system"
)

// hasWebPEncoder is replaced in tests.
var hasWebPEncoder = func() bool { return hasFFmpeg() && system.HasEncoder("libwebp") }

// EncodeStill writes img to path in format. WebP is produced by ffmpeg;
// without it the frame is saved as PNG and the notice says so.
func EncodeStill(ctx context.Context, img image.Image, path, format string, quality int) (Result, error) {
	res := Result{Path: path, Format: format}

	if format == config.FormatWebP && !hasWebPEncoder() {
		res.Notice = "кодек WebP недоступен: кадр сохранён в PNG"
		res.Format = config.FormatPNG
		res.Path = withExt(path, config.FormatPNG)
	}

	var err error
	switch res.Format {
	case config.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = defaultJPEGQuality
		}
		err = writeFile(res.Path, func(buf *bytes.Buffer) error {
			return jpeg.Encode(buf, img, &jpeg.Options{Quality: quality})
		})
	case config.FormatWebP:
		err = encodeWebP(ctx, img, res.Path, quality)
	default:
		res.Format = config.FormatPNG
		err = writeFile(res.Path, func(buf *bytes.Buffer) error {
			return png.Encode(buf, img)
		})
	}
	if err != nil {
		return res, fmt.Errorf("ошибка сохранения %s: %w", res.Path, err)
	}
	return res, nil
}

func writeFile(path string, encode func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// encodeWebP feeds a PNG of img to ffmpeg's libwebp encoder.
func encodeWebP(ctx context.Context, img image.Image, path string, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-f", "png_pipe", "-i", "-",
		"-c:v", "libwebp", "-quality", fmt.Sprintf("%d", quality),
		path,
	)
	cmd.Stdin = &in
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg webp error: %v, output: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
