package video

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ivlev/frameit/internal/config"
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func withoutFFmpeg(t *testing.T) {
	t.Helper()
	oldFF, oldWebP := hasFFmpeg, hasWebPEncoder
	hasFFmpeg = func() bool { return false }
	hasWebPEncoder = func() bool { return false }
	t.Cleanup(func() { hasFFmpeg, hasWebPEncoder = oldFF, oldWebP })
}

func TestGIFSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameit-animation.gif")
	sink, res, err := Open(context.Background(), Spec{Path: path, Format: config.FormatGIF, Width: 16, Height: 8, FPS: 30, Frames: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Notice != "" {
		t.Errorf("unexpected notice %q", res.Notice)
	}

	frames := []color.RGBA{{R: 255, A: 255}, {B: 255, A: 255}, {R: 255, A: 255}}
	for _, c := range frames {
		if err := sink.WriteFrame(filled(16, 8, c)); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("frames = %d, want 3", len(g.Image))
	}
	if g.Delay[0] != 3 {
		t.Errorf("delay = %d, want 3 at 30 fps", g.Delay[0])
	}
	r, _, b, _ := g.Image[1].At(4, 4).RGBA()
	t.Logf("second frame pixel r=%d b=%d", r>>8, b>>8)
	if b>>8 < 200 || r>>8 > 60 {
		t.Error("second frame should be blue")
	}
}

func TestSinkWithoutFrames(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{config.FormatGIF, config.FormatAVI} {
		sink, _, err := Open(context.Background(), Spec{Path: filepath.Join(dir, "x."+format), Format: format, Width: 8, Height: 8, FPS: 10})
		if err != nil {
			t.Fatal(err)
		}
		if err := sink.Close(); !errors.Is(err, ErrNoFrames) {
			t.Errorf("%s: Close() = %v, want ErrNoFrames", format, err)
		}
	}
}

func TestMJPEGSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameit-animation.avi")
	sink, _, err := Open(context.Background(), Spec{Path: path, Format: config.FormatAVI, Width: 32, Height: 16, FPS: 24})
	if err != nil {
		t.Fatal(err)
	}
	for range 4 {
		if err := sink.WriteFrame(filled(32, 16, color.RGBA{G: 200, A: 255})); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:16], []byte("AVI ")) {
		t.Errorf("not an AVI file: % x", data[:16])
	}
}

func TestOpenFallsBackWithoutFFmpeg(t *testing.T) {
	withoutFFmpeg(t)
	dir := t.TempDir()

	for _, format := range []string{config.FormatMP4, config.FormatWebM} {
		path := filepath.Join(dir, "frameit-animation."+format)
		sink, res, err := Open(context.Background(), Spec{Path: path, Format: format, Width: 8, Height: 8, FPS: 10})
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("%s -> %+v", format, res)
		if res.Format != config.FormatAVI || filepath.Ext(res.Path) != ".avi" || res.Notice == "" {
			t.Errorf("%s: fallback result %+v", format, res)
		}
		if err := sink.WriteFrame(filled(8, 8, color.RGBA{A: 255})); err != nil {
			t.Fatal(err)
		}
		if err := sink.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(res.Path); err != nil {
			t.Error(err)
		}
	}
}

func TestOpenRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []Spec{
		{Path: filepath.Join(dir, "a.png"), Format: config.FormatPNG, Width: 8, Height: 8},
		{Path: filepath.Join(dir, "a.gif"), Format: config.FormatGIF, Width: 0, Height: 8},
	}
	for _, spec := range tests {
		if _, _, err := Open(context.Background(), spec); err == nil {
			t.Errorf("Open(%+v) should fail", spec)
		}
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := buildFFmpegArgs(Spec{Path: "out.webm", Format: config.FormatWebM, Width: 10, Height: 20, FPS: 25})
	t.Logf("args: %v", args)
	if args[len(args)-1] != "out.webm" {
		t.Error("output path must be the last argument")
	}
	for _, want := range []string{"libvpx-vp9", "10x20", "25", "rgba"} {
		if !slices.Contains(args, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := filled(4, 4, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3))

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Fatalf("wrote %d bytes, want 16", buf.Len())
	}
	if !bytes.Equal(buf.Bytes()[:4], []byte{1, 2, 3, 255}) {
		t.Errorf("first pixel % x", buf.Bytes()[:4])
	}
}

func TestEncodeStill(t *testing.T) {
	withoutFFmpeg(t)
	dir := t.TempDir()
	img := filled(6, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	res, err := EncodeStill(context.Background(), img, filepath.Join(dir, "frameit-story.png"), config.FormatPNG, 0)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b, _ := got.At(2, 2).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("png pixel = %d %d %d", r>>8, g>>8, b>>8)
	}

	res, err = EncodeStill(context.Background(), img, filepath.Join(dir, "frameit-story.jpg"), config.FormatJPEG, 80)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(res.Path)
	if !bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
		t.Error("jpeg output lacks SOI marker")
	}

	res, err = EncodeStill(context.Background(), img, filepath.Join(dir, "frameit-story.webp"), config.FormatWebP, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("webp -> %+v", res)
	if res.Format != config.FormatPNG || filepath.Ext(res.Path) != ".png" || res.Notice == "" {
		t.Errorf("webp fallback result %+v", res)
	}
}
