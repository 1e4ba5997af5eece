package inst

import (
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
)

// primitive is a circle or an axis-aligned rectangle.
type primitive struct {
	circle   bool
	center   coord.Coord
	r        float64
	min, max coord.Coord
}

func circleCircle(a, b primitive) bool {
	return coord.DistPoint(a.center, b.center) <= a.r+b.r
}

func circleRect(c, r primitive) bool {
	if c.center.X < r.min.X-c.r || c.center.X > r.max.X+c.r {
		return false
	}
	if c.center.Y < r.min.Y-c.r || c.center.Y > r.max.Y+c.r {
		return false
	}
	return true
}

func rectRect(a, b primitive) bool {
	if a.max.X < b.min.X || b.max.X < a.min.X {
		return false
	}
	if a.max.Y < b.min.Y || b.max.Y < a.min.Y {
		return false
	}
	return true
}

func primitivesOverlap(a, b primitive) bool {
	switch {
	case a.circle && b.circle:
		return circleCircle(a, b)
	case a.circle:
		return circleRect(a, b)
	case b.circle:
		return circleRect(b, a)
	}
	return rectRect(a, b)
}

func circle(x, y, r float64) primitive {
	return primitive{circle: true, center: coord.Pt(x, y), r: r}
}

func rect(x, y, w, h float64) primitive {
	return primitive{min: coord.Pt(x, y), max: coord.Pt(x+w, y+h)}
}

// decompose splits a pad or hole into the primitives it is made of. A
// rounded pad is a rectangle capped by two circles on its short sides, or a
// single circle when it is square. Holes are rounded.
func decompose(i *Instance) []primitive {
	min, max := i.Corners()
	w := max.X - min.X
	h := max.Y - min.Y

	rounded := false
	switch s := i.Shape.(type) {
	case *PadShape:
		rounded = s.Rounded
	case *HoleShape:
		rounded = true
	}
	if !rounded {
		return []primitive{rect(min.X, min.Y, w, h)}
	}

	switch {
	case h > w:
		r := w / 2
		return []primitive{
			circle(min.X+r, max.Y-r, r),
			rect(min.X, min.Y+r, w, h-2*r),
			circle(min.X+r, min.Y+r, r),
		}
	case w > h:
		r := h / 2
		return []primitive{
			circle(min.X+r, min.Y+r, r),
			rect(min.X+r, min.Y, w-2*r, h),
			circle(max.X-r, min.Y+r, r),
		}
	}
	return []primitive{circle(min.X+w/2, min.Y+h/2, w/2)}
}

// Overlap reports whether two pad or hole instances share any area. Touching
// counts as overlapping.
func Overlap(a, b *Instance) bool {
	pa, pb := decompose(a), decompose(b)
	for _, x := range pa {
		for _, y := range pb {
			if primitivesOverlap(x, y) {
				return true
			}
		}
	}
	return false
}

// Inside reports whether the rectangle spanned by a lies within the one
// spanned by b. Rounded corners are not taken into account.
func Inside(a, b *Instance) bool {
	minA, maxA := a.Corners()
	minB, maxB := b.Corners()
	return minA.X >= minB.X && maxA.X <= maxB.X &&
		minA.Y >= minB.Y && maxA.Y <= maxB.Y
}
