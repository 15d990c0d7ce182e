package surface

import (
	"image"
	"image/color"
	"math"
	"testing"
)

var _ Surface = (*Canvas)(nil)

func TestFillRect(t *testing.T) {
	c := NewCanvas(50, 40)
	c.FillRect(Rect{X: 10, Y: 10, W: 20, H: 10}, Solid(color.RGBA{R: 255, A: 255}))

	img := c.Image()
	if got := img.RGBAAt(20, 15); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside: got %v", got)
	}
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("outside should stay clear, got %v", got)
	}
}

func TestTransformStack(t *testing.T) {
	c := NewCanvas(60, 60)
	red := Solid(color.RGBA{R: 255, A: 255})

	c.Save()
	c.Translate(30, 30)
	c.FillRect(Rect{X: 0, Y: 0, W: 10, H: 10}, red)
	c.Restore()
	c.FillRect(Rect{X: 0, Y: 0, W: 10, H: 10}, red)

	if c.Image().RGBAAt(35, 35).A != 255 {
		t.Error("translated rect missing")
	}
	if c.Image().RGBAAt(5, 5).A != 255 {
		t.Error("restore should reset the transform")
	}
	if c.Image().RGBAAt(20, 20).A != 0 {
		t.Error("unexpected paint between the rects")
	}

	// Extra Restore is harmless.
	c.Restore()
}

func TestRotateAroundCenter(t *testing.T) {
	c := NewCanvas(100, 100)
	c.Translate(50, 50)
	c.Rotate(math.Pi / 2)
	// A wide bar becomes a tall bar.
	c.FillRect(Rect{X: -40, Y: -5, W: 80, H: 10}, Solid(color.Black))

	if c.Image().RGBAAt(50, 15).A != 255 {
		t.Error("rotated bar should cover the vertical axis")
	}
	if c.Image().RGBAAt(15, 50).A != 0 {
		t.Error("rotated bar should not cover the horizontal axis")
	}
}

func TestAlpha(t *testing.T) {
	c := NewCanvas(20, 20)
	c.SetAlpha(0.5)
	c.FillRect(Rect{W: 20, H: 20}, Solid(color.White))
	a := c.Image().RGBAAt(10, 10).A
	if a < 125 || a > 130 {
		t.Errorf("expected half alpha, got %d", a)
	}

	c.Clear()
	c.SetAlpha(0)
	c.FillRect(Rect{W: 20, H: 20}, Solid(color.White))
	if c.Image().RGBAAt(10, 10).A != 0 {
		t.Error("zero alpha should draw nothing")
	}
}

func TestClipRoundedRect(t *testing.T) {
	c := NewCanvas(100, 100)
	c.Save()
	c.ClipRoundedRect(Rect{X: 0, Y: 0, W: 100, H: 100}, 40)
	c.FillRect(Rect{W: 100, H: 100}, Solid(color.Black))
	c.Restore()

	if c.Image().RGBAAt(1, 1).A != 0 {
		t.Error("corner should be clipped")
	}
	if c.Image().RGBAAt(50, 50).A != 255 {
		t.Error("center should be painted")
	}

	// Clip is gone after Restore.
	c.FillRect(Rect{W: 5, H: 5}, Solid(color.Black))
	if c.Image().RGBAAt(1, 1).A != 255 {
		t.Error("clip leaked past Restore")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(40, 40)
	c.FillCircle(20, 20, 10, Solid(color.Black))
	if c.Image().RGBAAt(20, 20).A != 255 {
		t.Error("circle center not painted")
	}
	if c.Image().RGBAAt(20, 5).A != 0 || c.Image().RGBAAt(12, 12).A == 255 {
		t.Error("circle covers too much")
	}
}

func TestDrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	c := NewCanvas(40, 40)
	c.DrawImage(src, src.Bounds(), Rect{X: 10, Y: 10, W: 20, H: 20})

	if c.Image().RGBAAt(20, 20).A != 255 {
		t.Error("scaled image missing")
	}
	if c.Image().RGBAAt(5, 5).A != 0 || c.Image().RGBAAt(35, 35).A != 0 {
		t.Error("image drawn outside its rect")
	}
}

func TestDrawImageClipped(t *testing.T) {
	src := image.NewUniform(color.White)
	c := NewCanvas(40, 40)
	c.ClipRoundedRect(Rect{X: 0, Y: 0, W: 20, H: 40}, 0)
	c.DrawImage(src, image.Rect(0, 0, 40, 40), Rect{W: 40, H: 40})

	if c.Image().RGBAAt(10, 20).A != 255 {
		t.Error("inside clip should be drawn")
	}
	if c.Image().RGBAAt(30, 20).A != 0 {
		t.Error("outside clip should be clear")
	}
}

func TestText(t *testing.T) {
	c := NewCanvas(300, 100)
	f := Font{Family: FamilySans, Size: 32, Bold: true}

	w, h, ok := c.MeasureText("Hello", f)
	if !ok || w <= 0 || h <= 0 {
		t.Fatalf("measure failed: %v %v %v", w, h, ok)
	}
	w2, h2, _ := c.MeasureText("Hello\nWorld", f)
	if h2 <= h || w2 < w {
		t.Errorf("two lines should be taller: %v vs %v", h2, h)
	}

	if !c.DrawText("Hello", 150, 50, f, color.Black, AlignCenter) {
		t.Fatal("draw failed")
	}
	painted := 0
	pix := c.Image().Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] > 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("text left no pixels")
	}
}

func TestMissingFontFile(t *testing.T) {
	c := NewCanvas(10, 10)
	f := Font{Family: "/nonexistent/font.ttf", Size: 12}
	if c.DrawText("x", 5, 5, f, color.Black, AlignLeft) {
		t.Error("missing font file should report false")
	}
	if _, _, ok := c.MeasureText("x", f); ok {
		t.Error("missing font file should not measure")
	}
}

func TestCompositeModes(t *testing.T) {
	gray := image.NewUniform(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	tests := []struct {
		mode BlendMode
		// expected red channel for a base of 200
		lo, hi uint8
	}{
		{BlendOverlay, 198, 202},
		{BlendMultiply, 98, 102},
		{BlendScreen, 225, 230},
		{BlendNormal, 126, 130},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := NewCanvas(4, 4)
			c.FillRect(Rect{W: 4, H: 4}, Solid(color.RGBA{R: 200, G: 200, B: 200, A: 255}))
			c.Composite(gray, tt.mode, 1)
			r := c.Image().RGBAAt(1, 1).R
			if r < tt.lo || r > tt.hi {
				t.Errorf("%s: red=%d, want %d..%d", tt.mode, r, tt.lo, tt.hi)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	fallback := color.NRGBA{A: 255}
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"00ff00", color.NRGBA{G: 255, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#0000ff80", color.NRGBA{B: 255, A: 128}},
		{"nope", fallback},
		{"#12345", fallback},
	}
	for _, tt := range tests {
		got := color.NRGBAModel.Convert(ParseColor(tt.in, fallback)).(color.NRGBA)
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGradients(t *testing.T) {
	g := AngleGradient(100, 100, 0,
		Stop{0, color.Black},
		Stop{1, color.White},
	)
	left := color.GrayModel.Convert(g.At(0, 50)).(color.Gray).Y
	right := color.GrayModel.Convert(g.At(99, 50)).(color.Gray).Y
	if left >= right {
		t.Errorf("0° gradient should brighten left to right: %d vs %d", left, right)
	}

	r := RadialGradient(50, 50, 50, Stop{0, color.White}, Stop{1, color.Black})
	center := color.GrayModel.Convert(r.At(50, 50)).(color.Gray).Y
	edge := color.GrayModel.Convert(r.At(99, 50)).(color.Gray).Y
	if center <= edge {
		t.Errorf("radial should darken outward: %d vs %d", center, edge)
	}
}
