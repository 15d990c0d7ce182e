package config

// Resolution preset ids.
const (
	PresetStory     = "story"
	PresetPortrait  = "portrait"
	PresetSquare    = "square"
	PresetLandscape = "landscape"
	PresetCustom    = "custom"
)

// Resolution: размер целевого буфера и его идентификатор для имени файла.
type Resolution struct {
	ID     string
	Width  int
	Height int
}

var presets = map[string]Resolution{
	PresetStory:     {ID: PresetStory, Width: 1080, Height: 1920},
	PresetPortrait:  {ID: PresetPortrait, Width: 1080, Height: 1350},
	PresetSquare:    {ID: PresetSquare, Width: 1080, Height: 1080},
	PresetLandscape: {ID: PresetLandscape, Width: 1920, Height: 1080},
}

// maxSide limits custom sizes so a typo cannot allocate gigabytes.
const maxSide = 8192

// Preset looks up a named resolution. Unknown ids fall back to story.
func Preset(id string) Resolution {
	if r, ok := presets[id]; ok {
		return r
	}
	return presets[PresetStory]
}

// IsPreset reports whether id names a preset.
func IsPreset(id string) bool {
	_, ok := presets[id]
	return ok
}

// Resolve returns the buffer size for the scene. Explicit width and height
// override the preset and produce the id "custom".
func (s Scene) Resolve() Resolution {
	if s.Width > 0 && s.Height > 0 {
		return Resolution{
			ID:     PresetCustom,
			Width:  min(s.Width, maxSide),
			Height: min(s.Height, maxSide),
		}
	}
	return Preset(s.Resolution)
}
