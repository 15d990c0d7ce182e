package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  Resolution
	}{
		{"story", Scene{Resolution: PresetStory}, Resolution{PresetStory, 1080, 1920}},
		{"portrait", Scene{Resolution: PresetPortrait}, Resolution{PresetPortrait, 1080, 1350}},
		{"square", Scene{Resolution: PresetSquare}, Resolution{PresetSquare, 1080, 1080}},
		{"landscape", Scene{Resolution: PresetLandscape}, Resolution{PresetLandscape, 1920, 1080}},
		{"unknown falls back", Scene{Resolution: "billboard"}, Resolution{PresetStory, 1080, 1920}},
		{"custom", Scene{Resolution: PresetSquare, Width: 640, Height: 480}, Resolution{PresetCustom, 640, 480}},
		{"custom capped", Scene{Width: 100000, Height: 10}, Resolution{PresetCustom, maxSide, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scene.Resolve(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeReplacesBadInput(t *testing.T) {
	s := Scene{
		Resolution: "nope",
		Width:      -5,
		Height:     100,
		Layout:     "hexagon",
		Padding:    3,
		Fit:        "stretch",
		Chrome:     "tablet",
		Images:     []ImageSlot{{Path: "a.png", Scale: -1, PanX: 500, PanY: -500}},
		Background: Background{Type: "plasma"},
		Text:       []TextLayer{{Content: "hi", X: 2, Y: -1, Align: "justify"}},
		Watermark:  Watermark{Kind: "hologram", Anchor: "middle-ish", Size: -1, Opacity: 4},
		Texture:    Texture{Kind: "lava", Opacity: 9, Blend: "dodge"},
		Animation: animation.State{
			Style: "teleport", Easing: "wiggle", Loop: "forever", Direction: "sideways",
			Duration: -3, Speed: 0, Intensity: 400, FPS: 0,
		},
		Export: Export{Format: "bmp", DurationMs: -1},
	}
	s.Normalize()

	checks := []struct {
		name string
		ok   bool
	}{
		{"resolution", s.Resolution == PresetStory},
		{"size reset", s.Width == 0 && s.Height == 0},
		{"layout", s.Layout == geometry.LayoutAuto},
		{"padding", s.Padding == 0.5},
		{"fit", s.Fit == geometry.FitContain},
		{"chrome", s.Chrome == ChromeNone},
		{"image scale", s.Images[0].Scale == 1},
		{"pan", s.Images[0].PanX == 100 && s.Images[0].PanY == -100},
		{"background", s.Background.Type == BackgroundSolid},
		{"text position", s.Text[0].X == 1 && s.Text[0].Y == 0},
		{"text align", s.Text[0].Align == "center"},
		{"text id", s.Text[0].ID != ""},
		{"text size", s.Text[0].FontSize > 0},
		{"watermark kind", s.Watermark.Kind == WatermarkText},
		{"watermark anchor", s.Watermark.Anchor == AnchorBottomRight},
		{"watermark size", s.Watermark.Size == 0.2},
		{"watermark opacity", s.Watermark.Opacity == 1},
		{"texture", s.Texture.Kind == effects.TextureNone && s.Texture.Opacity == 1 && s.Texture.Blend == "overlay"},
		{"style", s.Animation.Style == animation.StyleNone},
		{"easing", s.Animation.Easing == animation.EaseLinear},
		{"loop", s.Animation.Loop == animation.LoopRepeat},
		{"direction", s.Animation.Direction == animation.DirectionUp},
		{"duration", s.Animation.Duration == 0},
		{"speed", s.Animation.Speed == 1},
		{"intensity", s.Animation.Intensity == 100},
		{"fps", s.Animation.FPS == 30},
		{"format", s.Export.Format == FormatPNG},
		{"export duration", s.Export.DurationMs == 3000},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("%s not normalized: %+v", c.name, s)
		}
	}
}

func TestNormalizeKeepsValidScene(t *testing.T) {
	s := DefaultScene()
	s.Animation.Style = animation.StylePulse
	s.Export.Format = FormatGIF
	want := s
	s.Normalize()

	if s.Layout != want.Layout || s.Padding != want.Padding || s.Animation != want.Animation || s.Export != want.Export {
		t.Errorf("valid scene changed:\n got %+v\nwant %+v", s, want)
	}
}

func TestJPGAlias(t *testing.T) {
	s := DefaultScene()
	s.Export.Format = "jpg"
	s.Normalize()
	if s.Export.Format != FormatJPEG {
		t.Errorf("jpg should map to jpeg, got %s", s.Export.Format)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	yamlText := `resolution: square
layout: grid
images:
  - path: shot1.png
  - path: shot2.png
    panX: 40
animation:
  style: fade
  enabled: true
`
	if err := os.WriteFile(path, []byte(yamlText), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Resolve().ID != PresetSquare || s.Layout != geometry.LayoutGrid {
		t.Errorf("explicit keys lost: %+v", s)
	}
	if s.Padding != 0.15 || s.Shadow.Opacity != 0.35 {
		t.Errorf("defaults lost: padding=%v shadow=%v", s.Padding, s.Shadow.Opacity)
	}
	if len(s.Images) != 2 || s.Images[0].Scale != 1 || s.Images[1].PanX != 40 {
		t.Errorf("images: %+v", s.Images)
	}
	if s.Animation.Style != animation.StyleFade || !s.Animation.Enabled || s.Animation.FPS != 30 {
		t.Errorf("animation: %+v", s.Animation)
	}
}

func TestSaveLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	s := DefaultScene()
	s.Text = append(s.Text, NewTextLayer("Hello"))
	s.Distortion.Wave = 30
	s.Filters.Hue = 45

	if err := Save(&s, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "playing") {
		t.Error("runtime playback state should not be persisted")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Text[0].ID != s.Text[0].ID || got.Distortion.Wave != 30 || got.Filters.Hue != 45 {
		t.Errorf("scene did not survive save/load: %+v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("layout: [unterminated"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestTextLayers(t *testing.T) {
	s := DefaultScene()
	a := NewTextLayer("A")
	b := NewTextLayer("B")
	b.ZIndex = 1
	s.Text = []TextLayer{a, b}

	if a.ID == b.ID {
		t.Fatal("text layer ids must be unique")
	}
	if !a.Front() || b.Front() {
		t.Error("front/behind split by z-index is wrong")
	}
	if s.TextByID(b.ID) != 1 {
		t.Error("lookup by id failed")
	}
	if !s.RemoveText(a.ID) || len(s.Text) != 1 || s.Text[0].ID != b.ID {
		t.Errorf("remove failed: %+v", s.Text)
	}
	if s.RemoveText("missing") {
		t.Error("removing an unknown id should report false")
	}
}
