package analyzer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// squareOn draws a white square at (x0,y0) of size s on a black w x h image.
func squareOn(w, h, x0, y0, s int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := y0; y < y0+s; y++ {
		for x := x0; x < x0+s; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestContrastDetector(t *testing.T) {
	img := squareOn(200, 200, 50, 50, 100)

	detector := NewContrastDetector()
	blocks, err := detector.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("Expected at least one block, got none")
	}

	block := blocks[0]
	if block.Rect.Dx() < 80 || block.Rect.Dy() < 80 {
		t.Errorf("Block too small: %v", block.Rect)
	}

	t.Logf("Detected %d blocks", len(blocks))
	for i, b := range blocks {
		t.Logf("Block %d: %v (type: %s, confidence: %.2f)", i, b.Rect, b.Type, b.Confidence)
	}
}

func TestDetectDownscaledCoordinates(t *testing.T) {
	// 1024 wide image is analyzed at 256; the block must come back in full-size coordinates.
	img := squareOn(1024, 512, 700, 200, 200)

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil || len(blocks) == 0 {
		t.Fatalf("no blocks: %v", err)
	}
	r := blocks[0].Rect
	if r.Min.X < 650 || r.Max.X > 950 || r.Min.Y < 150 || r.Max.Y > 450 {
		t.Errorf("block not mapped back to source scale: %v", r)
	}
}

func TestDetectFlatImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 0 {
		t.Errorf("flat image should have no blocks, got %d", len(blocks))
	}
}

func TestFocus(t *testing.T) {
	tests := []struct {
		name   string
		img    image.Image
		wantFx float64
		wantFy float64
	}{
		{"right side", squareOn(400, 200, 300, 50, 80), 0.85, 0.45},
		{"left side", squareOn(400, 200, 20, 50, 80), 0.15, 0.45},
		{"flat is centered", image.NewGray(image.Rect(0, 0, 100, 100)), 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, fy := Focus(tt.img, NewContrastDetector())
			t.Logf("focus=(%.3f, %.3f)", fx, fy)
			if math.Abs(fx-tt.wantFx) > 0.08 || math.Abs(fy-tt.wantFy) > 0.08 {
				t.Errorf("focus (%.2f, %.2f), want about (%.2f, %.2f)", fx, fy, tt.wantFx, tt.wantFy)
			}
		})
	}

	if fx, fy := Focus(squareOn(10, 10, 0, 0, 5), CenterDetector{}); fx != 0.5 || fy != 0.5 {
		t.Error("center detector should keep the focus in the middle")
	}
}

func TestPanToward(t *testing.T) {
	tests := []struct {
		focus, full, crop float64
		want              float64
	}{
		{0.5, 400, 100, 0},
		{0.0, 400, 100, -100},
		{1.0, 400, 100, 100},
		{0.625, 400, 100, 33.333},
		{0.9, 100, 100, 0}, // no slack
	}
	for _, tt := range tests {
		got := PanToward(tt.focus, tt.full, tt.crop)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("PanToward(%v, %v, %v) = %v, want %v", tt.focus, tt.full, tt.crop, got, tt.want)
		}
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false}, // default
		{"center", false},
		{"ocr", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if detector == nil {
					t.Error("Expected detector, got nil")
				}
			}
		})
	}
}
