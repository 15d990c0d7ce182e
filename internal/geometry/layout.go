package geometry

// Gap is the fixed spacing between sibling regions in pixels.
const Gap = 20.0

// Layout names understood by ComputeRegions.
const (
	LayoutAuto   = "auto"
	LayoutSingle = "single"
	LayoutRow    = "row"
	LayoutRow3   = "row-3"
	LayoutCol    = "col"
	LayoutGrid   = "grid"
)

// Rect is an axis-aligned rectangle in buffer pixels.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether o lies inside r, allowing eps of rounding slack.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.X+o.W <= r.X+r.W+eps && o.Y+o.H <= r.Y+r.H+eps
}

// Intersects reports whether r and o share a positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// grid describes how many columns and rows a layout splits into.
type grid struct {
	cols, rows int
}

var layouts = map[string]grid{
	LayoutSingle: {1, 1},
	LayoutRow:    {2, 1},
	LayoutRow3:   {3, 1},
	LayoutCol:    {1, 2},
	LayoutGrid:   {2, 2},
}

// IsLayout reports whether name is a known layout (auto included).
func IsLayout(name string) bool {
	if name == LayoutAuto {
		return true
	}
	_, ok := layouts[name]
	return ok
}

// ResolveLayout maps "auto", empty and unknown names to a concrete layout.
// Auto picks the smallest layout that holds imageCount images.
func ResolveLayout(name string, imageCount int) string {
	if _, ok := layouts[name]; ok {
		return name
	}
	if name != LayoutAuto && name != "" {
		return LayoutSingle
	}
	switch {
	case imageCount <= 1:
		return LayoutSingle
	case imageCount == 2:
		return LayoutRow
	case imageCount == 3:
		return LayoutRow3
	default:
		return LayoutGrid
	}
}

// RegionCount returns how many regions the layout provides.
func RegionCount(name string) int {
	g, ok := layouts[name]
	if !ok {
		return 1
	}
	return g.cols * g.rows
}

// ComputeRegions returns the ordered regions of a layout, row-major.
// Padding is removed from every side first, then the remainder is split
// evenly with Gap between siblings. Images beyond the region count are
// not drawn by callers.
func ComputeRegions(layout string, imageCount int, width, height, padding float64) []Rect {
	g := layouts[ResolveLayout(layout, imageCount)]

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if padding < 0 {
		padding = 0
	}
	maxPad := width / 2
	if height/2 < maxPad {
		maxPad = height / 2
	}
	if padding > maxPad {
		padding = maxPad
	}

	innerW := width - 2*padding
	innerH := height - 2*padding

	gapX, gapY := Gap, Gap
	cellW := (innerW - gapX*float64(g.cols-1)) / float64(g.cols)
	cellH := (innerH - gapY*float64(g.rows-1)) / float64(g.rows)
	// Too small for the gap: collapse everything onto the padded origin.
	if cellW <= 0 {
		cellW, gapX = 0, 0
	}
	if cellH <= 0 {
		cellH, gapY = 0, 0
	}

	regions := make([]Rect, 0, g.cols*g.rows)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			regions = append(regions, Rect{
				X: padding + float64(col)*(cellW+gapX),
				Y: padding + float64(row)*(cellH+gapY),
				W: cellW,
				H: cellH,
			})
		}
	}
	return regions
}
