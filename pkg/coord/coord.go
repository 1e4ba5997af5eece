package coord

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Coord is a point or displacement in internal units.
type Coord struct {
	X float64
	Y float64
}

// Pt is shorthand for Coord{X: x, Y: y}.
func Pt(x, y float64) Coord {
	return Coord{X: x, Y: y}
}

func (c Coord) vec() r2.Vec {
	return r2.Vec{X: c.X, Y: c.Y}
}

func fromVec(v r2.Vec) Coord {
	return Coord{X: v.X, Y: v.Y}
}

// String formats the coordinate in millimeters.
func (c Coord) String() string {
	return fmt.Sprintf("(%g, %g)", UnitsToMM(c.X, 1), UnitsToMM(c.Y, 1))
}

// Add returns c+o.
func (c Coord) Add(o Coord) Coord {
	return fromVec(r2.Add(c.vec(), o.vec()))
}

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord {
	return fromVec(r2.Sub(c.vec(), o.vec()))
}

// Neg returns -c.
func (c Coord) Neg() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// Scale returns c multiplied by f.
func (c Coord) Scale(f float64) Coord {
	return fromVec(r2.Scale(f, c.vec()))
}

// Len returns the euclidean length of c.
func (c Coord) Len() float64 {
	return r2.Norm(c.vec())
}

// Normalize scales v to length l. A zero vector stays zero.
func Normalize(v Coord, l float64) Coord {
	n := r2.Norm(v.vec())
	if n == 0 {
		return v
	}
	return v.Scale(l / n)
}

// Rotate turns v counter-clockwise by deg degrees around the origin.
func Rotate(v Coord, deg float64) Coord {
	return fromVec(r2.Rotate(v.vec(), deg*math.Pi/180, r2.Vec{}))
}

// Theta returns the angle of the vector from c to p in degrees.
func Theta(c, p Coord) float64 {
	d := p.Sub(c)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// Sort orders two corners so that min <= max componentwise.
func Sort(a, b Coord) (lo, hi Coord) {
	lo = Coord{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
	hi = Coord{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
	return lo, hi
}
