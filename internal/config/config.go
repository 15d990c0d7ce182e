package config

import (
	"github.com/ivlev/frameit/internal/animation"
	"github.com/ivlev/frameit/internal/distortion"
	"github.com/ivlev/frameit/internal/effects"
	"github.com/ivlev/frameit/internal/geometry"
)

// Scene: полный набор настроек одного макета. Рендерер читает его
// один раз на кадр и никогда не изменяет.
type Scene struct {
	Resolution string `yaml:"resolution"`
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`

	Layout       string      `yaml:"layout"`
	Padding      float64     `yaml:"padding"` // доля ширины кадра
	Fit          string      `yaml:"fit"`
	SmartCrop    bool        `yaml:"smartCrop"`
	CornerRadius float64     `yaml:"cornerRadius"`
	Chrome       string      `yaml:"chrome"`
	Images       []ImageSlot `yaml:"images"`

	Background Background           `yaml:"background"`
	Distortion distortion.Params    `yaml:"distortion,omitempty"`
	Filters    effects.FilterParams `yaml:"filters,omitempty"`
	Shadow     Shadow               `yaml:"shadow"`

	Text      []TextLayer `yaml:"text,omitempty"`
	Watermark Watermark   `yaml:"watermark"`
	CTA       CTA         `yaml:"cta"`
	Texture   Texture     `yaml:"texture"`
	Guides    Guides      `yaml:"guides,omitempty"`

	Animation animation.State `yaml:"animation"`
	Export    Export          `yaml:"export"`
}

// ImageSlot: одно исходное изображение и его ручная подгонка.
type ImageSlot struct {
	Path  string  `yaml:"path"`
	Scale float64 `yaml:"scale,omitempty"`
	PanX  float64 `yaml:"panX,omitempty"` // -100..100
	PanY  float64 `yaml:"panY,omitempty"`
}

// Background kinds.
const (
	BackgroundSolid  = "solid"
	BackgroundLinear = "linear"
	BackgroundRadial = "radial"
	BackgroundImage  = "image"
)

type Background struct {
	Type      string  `yaml:"type"`
	Color     string  `yaml:"color,omitempty"`
	From      string  `yaml:"from,omitempty"`
	To        string  `yaml:"to,omitempty"`
	Angle     float64 `yaml:"angle,omitempty"` // градусы, 0 = слева направо
	ImagePath string  `yaml:"image,omitempty"`
}

type Shadow struct {
	Opacity float64 `yaml:"opacity"` // 0..1, 0 выключает проход тени
	Blur    float64 `yaml:"blur"`    // px
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Color   string  `yaml:"color,omitempty"`
}

// Chrome frames.
const (
	ChromeNone    = "none"
	ChromePhone   = "phone"
	ChromeBrowser = "browser"
)

// FrontZ is the first z-index drawn in front of the images.
const FrontZ = 5

// MaxTextLayers is the cap the editor enforces; the renderer draws whatever it gets.
const MaxTextLayers = 5

// TextLayer: текстовый слой. X и Y задаются долями кадра (0..1) и
// указывают на точку привязки текста.
type TextLayer struct {
	ID         string  `yaml:"id"`
	Content    string  `yaml:"content"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	FontSize   float64 `yaml:"fontSize"`
	FontFamily string  `yaml:"fontFamily,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	ZIndex     int     `yaml:"zIndex"`
	Align      string  `yaml:"align,omitempty"`
	Bold       bool    `yaml:"bold,omitempty"`
	Italic     bool    `yaml:"italic,omitempty"`
	Underline  bool    `yaml:"underline,omitempty"`
	Shadow     bool    `yaml:"shadow,omitempty"`
}

// Front reports whether the layer is drawn over the images.
func (t TextLayer) Front() bool {
	return t.ZIndex >= FrontZ
}

// Watermark kinds.
const (
	WatermarkText  = "text"
	WatermarkImage = "image"
	WatermarkQR    = "qr"
)

// Anchors.
const (
	AnchorTopLeft      = "top-left"
	AnchorTopCenter    = "top-center"
	AnchorTopRight     = "top-right"
	AnchorCenter       = "center"
	AnchorBottomLeft   = "bottom-left"
	AnchorBottomCenter = "bottom-center"
	AnchorBottomRight  = "bottom-right"
)

var anchors = map[string]bool{
	AnchorTopLeft: true, AnchorTopCenter: true, AnchorTopRight: true, AnchorCenter: true,
	AnchorBottomLeft: true, AnchorBottomCenter: true, AnchorBottomRight: true,
}

// Watermark описывает метку в углу кадра. Size задаёт её ширину в долях
// ширины кадра (для текста кегль считается от неё же).
type Watermark struct {
	Enabled   bool    `yaml:"enabled"`
	Kind      string  `yaml:"kind"`
	Text      string  `yaml:"text,omitempty"`
	ImagePath string  `yaml:"image,omitempty"`
	Anchor    string  `yaml:"anchor"`
	Size      float64 `yaml:"size"`
	Opacity   float64 `yaml:"opacity"`
	Color     string  `yaml:"color,omitempty"`
}

// CTA: кнопка-призыв внизу кадра.
type CTA struct {
	Enabled   bool    `yaml:"enabled"`
	Text      string  `yaml:"text"`
	Color     string  `yaml:"color,omitempty"`
	TextColor string  `yaml:"textColor,omitempty"`
	FontSize  float64 `yaml:"fontSize,omitempty"`
}

type Texture struct {
	Kind    string  `yaml:"kind"`
	Opacity float64 `yaml:"opacity"`
	Blend   string  `yaml:"blend,omitempty"`
	Seed    uint64  `yaml:"seed,omitempty"`
}

// Guides are the snap lines shown while a drag sits on a center axis.
type Guides struct {
	Vertical   bool `yaml:"vertical,omitempty"`
	Horizontal bool `yaml:"horizontal,omitempty"`
}

// Export formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
	FormatMP4  = "mp4"
	FormatWebM = "webm"
	FormatAVI  = "avi"
	FormatGIF  = "gif"
)

var stillFormats = map[string]bool{FormatPNG: true, FormatJPEG: true, FormatWebP: true}
var motionFormats = map[string]bool{FormatMP4: true, FormatWebM: true, FormatAVI: true, FormatGIF: true}

// IsStillFormat reports whether format encodes a single frame.
func IsStillFormat(format string) bool {
	return stillFormats[format]
}

// IsMotionFormat reports whether format encodes a frame sequence.
func IsMotionFormat(format string) bool {
	return motionFormats[format]
}

type Export struct {
	Format     string `yaml:"format"`
	DurationMs int    `yaml:"durationMs"`
	Quality    int    `yaml:"quality,omitempty"` // 0 = по умолчанию для кодека
	Dir        string `yaml:"dir,omitempty"`
}

// DefaultScene returns the scene a fresh canvas starts with.
func DefaultScene() Scene {
	return Scene{
		Resolution: PresetStory,
		Layout:     geometry.LayoutAuto,
		Padding:    0.15,
		Fit:        geometry.FitContain,
		Chrome:     ChromeNone,
		Background: Background{
			Type:  BackgroundLinear,
			From:  "#667eea",
			To:    "#764ba2",
			Color: "#1e1e2e",
			Angle: 135,
		},
		CornerRadius: 24,
		Shadow: Shadow{
			Opacity: 0.35,
			Blur:    30,
			OffsetY: 20,
			Color:   "#000000",
		},
		Watermark: Watermark{
			Kind:    WatermarkText,
			Anchor:  AnchorBottomRight,
			Size:    0.2,
			Opacity: 0.6,
			Color:   "#ffffff",
		},
		CTA: CTA{
			Text:      "Download now",
			Color:     "#ff5a5f",
			TextColor: "#ffffff",
		},
		Texture: Texture{
			Kind:    effects.TextureNone,
			Opacity: 0.15,
			Blend:   "overlay",
		},
		Animation: animation.DefaultState(),
		Export: Export{
			Format:     FormatPNG,
			DurationMs: 3000,
		},
	}
}
