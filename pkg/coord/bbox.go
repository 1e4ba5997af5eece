package coord

import "math"

// BBox is an axis-aligned bounding box in internal units.
type BBox struct {
	Min Coord
	Max Coord
}

// EmptyBox returns a box that any Expand call replaces.
func EmptyBox() BBox {
	return BBox{
		Min: Coord{X: math.Inf(1), Y: math.Inf(1)},
		Max: Coord{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// PointBox returns the degenerate box covering only p.
func PointBox(p Coord) BBox {
	return BBox{Min: p, Max: p}
}

// Box returns the box spanned by two arbitrary corners.
func Box(a, b Coord) BBox {
	lo, hi := Sort(a, b)
	return BBox{Min: lo, Max: hi}
}

// IsEmpty reports whether the box has not been expanded yet.
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Expand grows the box to include p.
func (b *BBox) Expand(p Coord) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// ExpandBox grows the box to include o. Empty boxes are ignored.
func (b *BBox) ExpandBox(o BBox) {
	if o.IsEmpty() {
		return
	}
	b.Expand(o.Min)
	b.Expand(o.Max)
}

// Grow returns the box enlarged by d on every side.
func (b BBox) Grow(d float64) BBox {
	return BBox{
		Min: Coord{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Coord{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Intersects checks if two boxes overlap, touching edges included.
func (b BBox) Intersects(o BBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Contains checks if p is within the box.
func (b BBox) Contains(p Coord) bool {
	return InsideRect(p, b.Min, b.Max)
}

// ContainsBox checks if o lies entirely within b.
func (b BBox) ContainsBox(o BBox) bool {
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Width returns the horizontal extent.
func (b BBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent.
func (b BBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box.
func (b BBox) Center() Coord {
	return Coord{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}
