package config

import (
	"math"

	"github.com/google/uuid"

	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
	"github.com/ivlev/frameit/internal/surface"
)

var blends = map[string]bool{
	string(surface.BlendNormal): true, string(surface.BlendOverlay): true,
	string(surface.BlendMultiply): true, string(surface.BlendScreen): true,
	string(surface.BlendSoft): true,
}

// Normalize приводит настройки к безопасным значениям. Ошибочный ввод не
// отклоняется: неизвестные имена заменяются значениями по умолчанию,
// числа зажимаются в допустимые диапазоны.
func (s *Scene) Normalize() {
	if !IsPreset(s.Resolution) {
		s.Resolution = PresetStory
	}
	if s.Width < 0 || s.Height < 0 || (s.Width == 0) != (s.Height == 0) {
		s.Width, s.Height = 0, 0
	}

	if !geometry.IsLayout(s.Layout) {
		s.Layout = geometry.LayoutAuto
	}
	s.Padding = clamp(s.Padding, 0, 0.5)
	if s.Fit != geometry.FitCover {
		s.Fit = geometry.FitContain
	}
	s.CornerRadius = clamp(s.CornerRadius, 0, 1000)
	switch s.Chrome {
	case ChromePhone, ChromeBrowser:
	default:
		s.Chrome = ChromeNone
	}
	for i := range s.Images {
		img := &s.Images[i]
		if img.Scale <= 0 || math.IsNaN(img.Scale) {
			img.Scale = 1
		}
		img.Scale = math.Min(img.Scale, 10)
		img.PanX = clamp(img.PanX, -100, 100)
		img.PanY = clamp(img.PanY, -100, 100)
	}

	switch s.Background.Type {
	case BackgroundSolid, BackgroundLinear, BackgroundRadial, BackgroundImage:
	default:
		s.Background.Type = BackgroundSolid
	}
	s.Distortion = s.Distortion.Normalize()
	s.Filters = s.Filters.Normalize()

	s.Shadow.Opacity = clamp(s.Shadow.Opacity, 0, 1)
	s.Shadow.Blur = clamp(s.Shadow.Blur, 0, 200)

	for i := range s.Text {
		normalizeText(&s.Text[i])
	}

	w := &s.Watermark
	switch w.Kind {
	case WatermarkText, WatermarkImage, WatermarkQR:
	default:
		w.Kind = WatermarkText
	}
	if !anchors[w.Anchor] {
		w.Anchor = AnchorBottomRight
	}
	if w.Size <= 0 || math.IsNaN(w.Size) {
		w.Size = 0.2
	}
	w.Size = math.Min(w.Size, 1)
	w.Opacity = clamp(w.Opacity, 0, 1)

	if s.CTA.FontSize < 0 || math.IsNaN(s.CTA.FontSize) {
		s.CTA.FontSize = 0
	}

	if !effects.IsTexture(s.Texture.Kind) {
		s.Texture.Kind = effects.TextureNone
	}
	s.Texture.Opacity = clamp(s.Texture.Opacity, 0, 1)
	if !blends[s.Texture.Blend] {
		s.Texture.Blend = string(surface.BlendOverlay)
	}

	normalizeAnimation(&s.Animation)

	if !IsStillFormat(s.Export.Format) && !IsMotionFormat(s.Export.Format) {
		if s.Export.Format == "jpg" {
			s.Export.Format = FormatJPEG
		} else {
			s.Export.Format = FormatPNG
		}
	}
	if s.Export.DurationMs <= 0 {
		s.Export.DurationMs = 3000
	}
	s.Export.DurationMs = min(s.Export.DurationMs, 60000)
	if s.Export.Quality < 0 {
		s.Export.Quality = 0
	}
}

func normalizeText(t *TextLayer) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.X = clamp(t.X, 0, 1)
	t.Y = clamp(t.Y, 0, 1)
	if t.FontSize <= 0 || math.IsNaN(t.FontSize) {
		t.FontSize = 64
	}
	t.FontSize = math.Min(t.FontSize, 600)
	if t.FontFamily == "" {
		t.FontFamily = surface.FamilySans
	}
	switch surface.Align(t.Align) {
	case surface.AlignLeft, surface.AlignCenter, surface.AlignRight:
	default:
		t.Align = string(surface.AlignCenter)
	}
	if t.Color == "" {
		t.Color = "#ffffff"
	}
}

func normalizeAnimation(a *animation.State) {
	if !animation.IsStyle(a.Style) {
		a.Style = animation.StyleNone
	}
	if !animation.IsEasing(a.Easing) {
		a.Easing = animation.EaseLinear
	}
	switch a.Loop {
	case animation.LoopOnce, animation.LoopRepeat, animation.LoopAlternate:
	default:
		a.Loop = animation.LoopRepeat
	}
	switch a.Direction {
	case animation.DirectionUp, animation.DirectionDown, animation.DirectionLeft, animation.DirectionRight:
	default:
		a.Direction = animation.DirectionUp
	}
	// Нулевая длительность допустима: анимация тогда не двигается.
	a.Duration = clamp(a.Duration, 0, 60)
	if a.Speed <= 0 || math.IsNaN(a.Speed) {
		a.Speed = 1
	}
	a.Speed = math.Min(a.Speed, 10)
	a.Intensity = clamp(a.Intensity, 0, 100)
	a.OffsetMs = clamp(a.OffsetMs, 0, 10000)
	if a.FPS <= 0 {
		a.FPS = 30
	}
	a.FPS = min(a.FPS, 60)
}

// NewTextLayer creates a centered front text layer with a fresh id.
func NewTextLayer(content string) TextLayer {
	return TextLayer{
		ID:         uuid.NewString(),
		Content:    content,
		X:          0.5,
		Y:          0.1,
		FontSize:   64,
		FontFamily: surface.FamilySans,
		Color:      "#ffffff",
		ZIndex:     FrontZ,
		Align:      string(surface.AlignCenter),
		Bold:       true,
	}
}

// TextByID returns the index of the layer with id, or -1.
func (s Scene) TextByID(id string) int {
	for i, t := range s.Text {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// RemoveText deletes the layer with id. Returns false when it is absent.
func (s *Scene) RemoveText(id string) bool {
	i := s.TextByID(id)
	if i < 0 {
		return false
	}
	s.Text = append(s.Text[:i], s.Text[i+1:]...)
	return true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
