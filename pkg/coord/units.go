// Package coord holds the geometric primitives shared by the instantiation
// engine and the exporters: coordinates in internal units, unit conversion,
// distance helpers and bounding boxes.
package coord

import "math"

// Internal units. One millimeter is 10000 units, so the resolution is 0.1um.
const (
	MMUnits  = 10000.0
	MilInMM  = 0.0254
	MilUnits = MilInMM * MMUnits

	// KiCad legacy footprints use decimils, PCB uses centimils.
	KiCadUnits = MilUnits / 10
	PCBUnits   = MilUnits / 100
)

// MMToUnits converts a length (or area, for exponent 2) in millimeters to
// internal units.
func MMToUnits(mm float64, exponent int) float64 {
	return mm * math.Pow(MMUnits, float64(exponent))
}

// UnitsToMM is the inverse of MMToUnits.
func UnitsToMM(u float64, exponent int) float64 {
	return u / math.Pow(MMUnits, float64(exponent))
}

// MilToUnits converts mils to internal units.
func MilToUnits(mil float64, exponent int) float64 {
	return MMToUnits(MilToMM(mil, exponent), exponent)
}

// UnitsToMil converts internal units to mils.
func UnitsToMil(u float64, exponent int) float64 {
	return MMToMil(UnitsToMM(u, exponent), exponent)
}

// MMToMil converts a value of dimension mm^exponent to mil^exponent.
func MMToMil(mm float64, exponent int) float64 {
	return mm * math.Pow(MilInMM, float64(-exponent))
}

// MilToMM converts a value of dimension mil^exponent to mm^exponent.
func MilToMM(mil float64, exponent int) float64 {
	return mil * math.Pow(MilInMM, float64(exponent))
}

// UnitsToKiCad converts a length to KiCad decimils.
func UnitsToKiCad(u float64) float64 {
	return u / KiCadUnits
}

// UnitsToPCB converts a length to PCB centimils.
func UnitsToPCB(u float64) float64 {
	return u / PCBUnits
}
