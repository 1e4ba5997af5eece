package coord

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DistPoint returns the distance between a and b.
func DistPoint(a, b Coord) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// DistLine returns the distance from p to the segment a-b.
func DistLine(p, a, b Coord) float64 {
	d := math.Min(DistPoint(p, a), DistPoint(p, b))
	ab := r2.Sub(a.vec(), b.vec())
	n2 := r2.Norm2(ab)
	if n2 == 0 {
		return d
	}
	bp := r2.Sub(p.vec(), b.vec())
	f := r2.Dot(ab, bp) / n2
	if f >= 0 && f <= 1 {
		d = math.Min(d, r2.Norm(r2.Sub(bp, r2.Scale(f, ab))))
	}
	return d
}

// DistRect returns the distance from p to the outline of the rectangle
// spanned by min and max.
func DistRect(p, min, max Coord) float64 {
	d := DistLine(p, min, Coord{X: max.X, Y: min.Y})
	d = math.Min(d, DistLine(p, min, Coord{X: min.X, Y: max.Y}))
	d = math.Min(d, DistLine(p, Coord{X: min.X, Y: max.Y}, max))
	d = math.Min(d, DistLine(p, Coord{X: max.X, Y: min.Y}, max))
	return d
}

// InsideRect reports whether p lies within min..max, edges included.
func InsideRect(p, min, max Coord) bool {
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

// DistCircle returns the distance from p to the circle around c with radius r.
func DistCircle(p, c Coord, r float64) float64 {
	return math.Abs(DistPoint(p, c) - r)
}
