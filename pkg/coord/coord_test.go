package coord

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps*math.Max(1, math.Abs(b))
}

func TestUnitRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		exponent int
	}{
		{"length", 1.27, 1},
		{"area", 0.25, 2},
		{"inverse length", 3, -1},
		{"inverse area", 42, -2},
		{"negative", -0.8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := MMToUnits(tt.value, tt.exponent)
			if got := UnitsToMM(u, tt.exponent); !near(got, tt.value) {
				t.Errorf("UnitsToMM(MMToUnits(%v)) = %v, want %v", tt.value, got, tt.value)
			}
			mil := MMToMil(tt.value, tt.exponent)
			if got := MilToMM(mil, tt.exponent); !near(got, tt.value) {
				t.Errorf("MilToMM(MMToMil(%v)) = %v, want %v", tt.value, got, tt.value)
			}
		})
	}
}

func TestUnitConstants(t *testing.T) {
	if got := MMToUnits(1, 1); got != 10000 {
		t.Errorf("MMToUnits(1mm) = %v, want 10000", got)
	}
	if got := MilToUnits(1, 1); !near(got, 254) {
		t.Errorf("MilToUnits(1mil) = %v, want 254", got)
	}
	if got := MMToMil(0.0254, 1); !near(got, 1) {
		t.Errorf("MMToMil(0.0254) = %v, want 1", got)
	}
	if got := MMToMil(1, 2); !near(got, 1/(0.0254*0.0254)) {
		t.Errorf("MMToMil(1mm^2) = %v", got)
	}
	if got := UnitsToKiCad(MilToUnits(1, 1)); !near(got, 10) {
		t.Errorf("UnitsToKiCad(1mil) = %v, want 10", got)
	}
	if got := UnitsToPCB(MilToUnits(1, 1)); !near(got, 100) {
		t.Errorf("UnitsToPCB(1mil) = %v, want 100", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name string
		v    Coord
		deg  float64
		want Coord
	}{
		{"quarter", Pt(1, 0), 90, Pt(0, 1)},
		{"half", Pt(1, 2), 180, Pt(-1, -2)},
		{"negative", Pt(0, 1), -90, Pt(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.v, tt.deg)
			if DistPoint(got, tt.want) > eps {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.v, tt.deg, got, tt.want)
			}
		})
	}
}

func TestNormalizeAndTheta(t *testing.T) {
	if got := Normalize(Pt(3, 4), 10); DistPoint(got, Pt(6, 8)) > eps {
		t.Errorf("Normalize = %v, want (6,8)", got)
	}
	if got := Normalize(Coord{}, 10); got != (Coord{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
	if got := Theta(Pt(1, 1), Pt(1, 5)); !near(got, 90) {
		t.Errorf("Theta = %v, want 90", got)
	}
	if got := Theta(Pt(0, 0), Pt(-1, 0)); !near(got, 180) {
		t.Errorf("Theta = %v, want 180", got)
	}
}

func TestDistances(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"point", DistPoint(Pt(0, 0), Pt(3, 4)), 5},
		{"line projection", DistLine(Pt(5, 3), Pt(0, 0), Pt(10, 0)), 3},
		{"line beyond end", DistLine(Pt(13, 4), Pt(0, 0), Pt(10, 0)), 5},
		{"degenerate line", DistLine(Pt(3, 4), Pt(0, 0), Pt(0, 0)), 5},
		{"rect inside", DistRect(Pt(1, 5), Pt(0, 0), Pt(10, 10)), 1},
		{"rect outside", DistRect(Pt(13, 14), Pt(0, 0), Pt(10, 10)), 5},
		{"circle", DistCircle(Pt(0, 1), Pt(0, 0), 3), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestBBox(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox().IsEmpty() = false")
	}
	b.Expand(Pt(2, 3))
	b.Expand(Pt(-1, 5))
	want := BBox{Min: Pt(-1, 3), Max: Pt(2, 5)}
	if b != want {
		t.Fatalf("Expand = %+v, want %+v", b, want)
	}

	b.ExpandBox(EmptyBox())
	if b != want {
		t.Errorf("ExpandBox(empty) changed box to %+v", b)
	}

	if b.Width() != 3 || b.Height() != 2 {
		t.Errorf("size = %vx%v, want 3x2", b.Width(), b.Height())
	}
	if c := b.Center(); c != Pt(0.5, 4) {
		t.Errorf("Center = %v", c)
	}
	if g := b.Grow(1); g.Min != Pt(-2, 2) || g.Max != Pt(3, 6) {
		t.Errorf("Grow = %+v", g)
	}
	if !b.Intersects(Box(Pt(2, 5), Pt(4, 8))) {
		t.Error("touching boxes should intersect")
	}
	if b.Intersects(Box(Pt(2.1, 0), Pt(4, 8))) {
		t.Error("disjoint boxes should not intersect")
	}
	if !b.ContainsBox(Box(Pt(0, 4), Pt(1, 4.5))) {
		t.Error("ContainsBox = false for inner box")
	}
}
