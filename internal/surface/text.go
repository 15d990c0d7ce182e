package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// Bundled font families.
const (
	FamilySans      = "sans"
	FamilyMono      = "mono"
	FamilySmallCaps = "smallcaps"
)

// lineSpacing multiplies the face line height between lines.
const lineSpacing = 1.15

type fontKey struct {
	family       string
	bold, italic bool
}

// FontCache parses font sources once and hands out faces.
type FontCache struct {
	mu      sync.Mutex
	sources map[fontKey]*text.FontSource
	failed  map[fontKey]error
}

// DefaultFonts is shared by canvases unless replaced with SetFonts.
var DefaultFonts = NewFontCache()

func NewFontCache() *FontCache {
	return &FontCache{
		sources: make(map[fontKey]*text.FontSource),
		failed:  make(map[fontKey]error),
	}
}

func bundled(k fontKey) []byte {
	switch k.family {
	case FamilyMono:
		switch {
		case k.bold && k.italic:
			return gomonobolditalic.TTF
		case k.bold:
			return gomonobold.TTF
		case k.italic:
			return gomonoitalic.TTF
		}
		return gomono.TTF
	case FamilySmallCaps:
		if k.italic {
			return gosmallcapsitalic.TTF
		}
		return gosmallcaps.TTF
	}
	switch {
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

// isPath reports whether family names a font file rather than a bundled family.
func isPath(family string) bool {
	lower := strings.ToLower(family)
	return strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
}

// Face returns a face for f. An empty family means sans. Unknown bundled
// names fall back to sans; a font file that fails to load is an error.
func (fc *FontCache) Face(f Font) (text.Face, error) {
	if f.Size <= 0 {
		return nil, fmt.Errorf("размер шрифта должен быть положительным: %v", f.Size)
	}
	k := fontKey{family: f.Family, bold: f.Bold, italic: f.Italic}
	if !isPath(k.family) {
		switch k.family {
		case FamilyMono, FamilySmallCaps:
		default:
			k.family = FamilySans
		}
	} else {
		// Files carry their own style.
		k.bold, k.italic = false, false
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if err, ok := fc.failed[k]; ok {
		return nil, err
	}
	src, ok := fc.sources[k]
	if !ok {
		var err error
		if isPath(k.family) {
			src, err = text.NewFontSourceFromFile(k.family)
		} else {
			src, err = text.NewFontSource(bundled(k))
		}
		if err != nil {
			err = fmt.Errorf("ошибка загрузки шрифта %s: %w", k.family, err)
			fc.failed[k] = err
			return nil, err
		}
		fc.sources[k] = src
	}
	return src.Face(f.Size), nil
}

type textBlock struct {
	lines  []string
	widths []float64
	width  float64
	lineH  float64
	ascent float64
}

func (b textBlock) height() float64 {
	if len(b.lines) == 0 {
		return 0
	}
	return b.lineH * (1 + lineSpacing*float64(len(b.lines)-1))
}

func layoutText(s string, face text.Face) textBlock {
	m := face.Metrics()
	b := textBlock{lines: strings.Split(s, "\n"), lineH: m.LineHeight(), ascent: m.Ascent}
	b.widths = make([]float64, len(b.lines))
	for i, line := range b.lines {
		w, _ := text.Measure(line, face)
		b.widths[i] = w
		b.width = math.Max(b.width, w)
	}
	return b
}

func (c *Canvas) MeasureText(s string, f Font) (w, h float64, ok bool) {
	face, err := c.fonts.Face(f)
	if err != nil {
		return 0, 0, false
	}
	b := layoutText(s, face)
	return b.width, b.height(), true
}

// DrawText renders the block into a temporary image and blits it through
// DrawImage so the current transform, alpha and clip apply.
func (c *Canvas) DrawText(s string, x, y float64, f Font, col color.Color, align Align) bool {
	face, err := c.fonts.Face(f)
	if err != nil {
		return false
	}
	if s == "" {
		return true
	}
	b := layoutText(s, face)
	pad := math.Ceil(b.lineH * 0.25)
	w := int(math.Ceil(b.width + 2*pad))
	h := int(math.Ceil(b.height() + 2*pad))
	if w <= 0 || h <= 0 {
		return true
	}

	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	step := b.lineH * lineSpacing
	for i, line := range b.lines {
		lx := pad
		switch align {
		case AlignCenter:
			lx += (b.width - b.widths[i]) / 2
		case AlignRight:
			lx += b.width - b.widths[i]
		}
		text.Draw(tmp, line, face, lx, pad+b.ascent+step*float64(i), col)
	}

	left := x - pad
	switch align {
	case AlignCenter:
		left = x - b.width/2 - pad
	case AlignRight:
		left = x - b.width - pad
	}
	top := y - b.height()/2 - pad
	c.DrawImage(tmp, tmp.Bounds(), Rect{X: left, Y: top, W: float64(w), H: float64(h)})
	return true
}
