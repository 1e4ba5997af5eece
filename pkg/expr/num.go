package expr

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
)

// Type is the unit family of a number.
type Type int

const (
	None Type = iota
	MM
	Mil
)

func (t Type) String() string {
	switch t {
	case MM:
		return "mm"
	case Mil:
		return "mil"
	default:
		return "?"
	}
}

// Num is a unit-typed value: N * Type^Exponent.
type Num struct {
	Type     Type
	Exponent int
	N        float64
}

// Scalar returns a dimensionless number.
func Scalar(n float64) Num { return Num{N: n} }

// MMNum returns a length in millimeters.
func MMNum(n float64) Num { return Num{Type: MM, Exponent: 1, N: n} }

// MilNum returns a length in mils.
func MilNum(n float64) Num { return Num{Type: Mil, Exponent: 1, N: n} }

// IsDimensionless reports whether n carries no unit.
func (n Num) IsDimensionless() bool { return n.Exponent == 0 }

// IsDistance reports whether n has a unit convertible to internal units.
func (n Num) IsDistance() bool {
	if n.Type != MM && n.Type != Mil {
		return false
	}
	switch n.Exponent {
	case -2, -1, 1, 2:
		return true
	}
	return false
}

// Unit returns the textual unit suffix, e.g. "mm" or "mil^2".
func (n Num) Unit() string {
	if n.Exponent == 0 {
		return ""
	}
	var name string
	switch n.Type {
	case MM:
		name = "mm"
	case Mil:
		name = "mil"
	default:
		return fmt.Sprintf("?^%d", n.Exponent)
	}
	switch n.Exponent {
	case 1:
		return name
	case 2:
		return name + "^2"
	case -1, -2:
		if n.Type == MM {
			return fmt.Sprintf("%s^%d", name, n.Exponent)
		}
		return fmt.Sprintf("%s^(%d)", name, n.Exponent)
	default:
		return fmt.Sprintf("%s^%d", name, n.Exponent)
	}
}

func (n Num) String() string {
	return strconv.FormatFloat(n.N, 'g', 6, 64) + n.Unit()
}

// ToUnit converts a distance to internal units of the same exponent.
func (n Num) ToUnit() (float64, error) {
	if !n.IsDistance() {
		return 0, fmt.Errorf("%w: %s^%d", ErrNotDistance, n.Type, n.Exponent)
	}
	if n.Type == Mil {
		return coord.MilToUnits(n.N, n.Exponent), nil
	}
	return coord.MMToUnits(n.N, n.Exponent), nil
}

// ToLength is ToUnit restricted to plain lengths.
func (n Num) ToLength() (float64, error) {
	if n.Exponent != 1 {
		return 0, fmt.Errorf("%w: %s^%d is not a length", ErrNotDistance, n.Type, n.Exponent)
	}
	return n.ToUnit()
}

// toMM converts a mil value to mm, each operand using its own exponent.
func (n Num) toMM() Num {
	if n.Type != Mil {
		return n
	}
	return Num{Type: MM, Exponent: n.Exponent, N: coord.MilToMM(n.N, n.Exponent)}
}

func normalize(a, b Num) (Num, Num) {
	if a.Exponent == 0 || b.Exponent == 0 || a.Type == b.Type {
		return a, b
	}
	return a.toMM(), b.toMM()
}

func resultType(a, b Num, exponent int) Type {
	switch {
	case exponent == 0:
		return None
	case a.Type == MM || b.Type == MM:
		return MM
	case a.Type == Mil || b.Type == Mil:
		return Mil
	}
	return None
}

// Add returns a+b. Both operands must have the same exponent.
func (a Num) Add(b Num) (Num, error) {
	a, b = normalize(a, b)
	if a.Exponent != b.Exponent {
		return Num{}, fmt.Errorf("%w (%d, %d)", ErrIncompatibleExponents, a.Exponent, b.Exponent)
	}
	return Num{Type: resultType(a, b, a.Exponent), Exponent: a.Exponent, N: a.N + b.N}, nil
}

// Sub returns a-b.
func (a Num) Sub(b Num) (Num, error) {
	return a.Add(b.Neg())
}

// Mul returns a*b.
func (a Num) Mul(b Num) Num {
	a, b = normalize(a, b)
	e := a.Exponent + b.Exponent
	return Num{Type: resultType(a, b, e), Exponent: e, N: a.N * b.N}
}

// Div returns a/b.
func (a Num) Div(b Num) (Num, error) {
	if b.N == 0 {
		return Num{}, ErrDivByZero
	}
	a, b = normalize(a, b)
	e := a.Exponent - b.Exponent
	return Num{Type: resultType(a, b, e), Exponent: e, N: a.N / b.N}, nil
}

// Neg returns -a.
func (a Num) Neg() Num {
	a.N = -a.N
	return a
}
