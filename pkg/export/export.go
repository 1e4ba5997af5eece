// Package export holds what the footprint writers share: package
// selection and number formatting.
package export

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

var ErrNoPackage = errors.New("export: no such package")

// Packages returns the packages to write: every named package, or only the
// one called name if name is not empty.
func Packages(res *inst.Result, name string) ([]*inst.Package, error) {
	if name == "" {
		return res.Packages(), nil
	}
	for _, p := range res.Packages() {
		if p.Name == name {
			return []*inst.Package{p}, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrNoPackage, name)
}

// MM formats a length in internal units as millimeters with at most six
// decimals and no trailing zeros.
func MM(u float64) string {
	v := math.Round(coord.UnitsToMM(u, 1)*1e6) / 1e6
	if v == 0 {
		// no "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ArcPoint returns the point at angle a (degrees) on the circle of radius r
// around c.
func ArcPoint(c coord.Coord, r, a float64) coord.Coord {
	rad := a * math.Pi / 180
	return coord.Pt(c.X+r*math.Cos(rad), c.Y+r*math.Sin(rad))
}

// Sweep returns the counter-clockwise angle from a1 to a2 in (0, 360].
func Sweep(a1, a2 float64) float64 {
	a := math.Mod(a2-a1, 360)
	if a <= 0 {
		a += 360
	}
	return a
}
