package inst

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

type lessFunc func(a, b coord.Coord) bool

func lessX(a, b coord.Coord) bool { return a.X < b.X }
func lessY(a, b coord.Coord) bool { return a.Y < b.Y }

func lessXY(a, b coord.Coord) bool {
	return a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
}

func lessFor(t model.MeasType) lessFunc {
	switch t.Axis() {
	case "x":
		return lessX
	case "y":
		return lessY
	}
	return lessXY
}

func findMin(lt lessFunc, s []coord.Coord) coord.Coord {
	min := s[0]
	for _, c := range s[1:] {
		if lt(c, min) {
			min = c
		}
	}
	return min
}

func findMax(lt lessFunc, s []coord.Coord) coord.Coord {
	max := s[0]
	for _, c := range s[1:] {
		if lt(max, c) {
			max = c
		}
	}
	return max
}

// betterNext reports whether b is a better successor of a0 than the current
// candidate b0: the smallest sample strictly beyond a0.
func betterNext(lt lessFunc, a0, b0, b coord.Coord) bool {
	if !lt(a0, b0) {
		return true
	}
	if !lt(a0, b) {
		return false
	}
	return lt(b, b0)
}

func findNext(lt lessFunc, s []coord.Coord, a0 coord.Coord) coord.Coord {
	next := s[0]
	for _, c := range s[1:] {
		if betterNext(lt, a0, next, c) {
			next = c
		}
	}
	return next
}

// instantiateMeas resolves the measurements of the root frame once every
// vector sample of every package is known. Each package gets its own
// instance of each measurement.
func (p *pass) instantiateMeas() error {
	root := p.doc.Root()
	sc := p.scope(&level{frame: root})
	for _, o := range root.Objs {
		m, ok := o.Shape.(*model.Meas)
		if !ok {
			continue
		}
		if o.Base == nil || o.Base.Vec == nil || m.High == nil || m.High.Vec == nil {
			return fail(o, model.ErrMeasAnchor)
		}
		var offset float64
		if m.Offset != nil {
			var err error
			if offset, err = expr.EvalLength(m.Offset, sc); err != nil {
				return fail(o, err)
			}
		}
		for _, pkg := range p.res.packages {
			low := pkg.samples[o.Base.Vec]
			high := pkg.samples[m.High.Vec]
			if len(low) == 0 || len(high) == 0 {
				continue
			}
			lt := lessFor(m.Type)
			a := findMin(lt, low)
			var b coord.Coord
			if m.Type.IsMax() {
				b = findMax(lt, high)
			} else {
				b = findNext(lt, high, a)
			}
			if m.Inverted {
				a, b = b, a
			}
			p.addMeas(pkg, o, m, a, b, offset)
		}
	}
	return nil
}

func (p *pass) addMeas(pkg *Package, o *model.Obj, m *model.Meas, a, b coord.Coord, offset float64) {
	s := &MeasShape{End: b, Offset: offset, Type: m.Type, Label: m.Label}
	inst := &Instance{
		Obj:    o,
		Base:   a,
		BBox:   coord.Box(a, b),
		Outer:  p.res.root,
		Active: true,
		Shape:  s,
		prio:   PrioMeas,
	}
	la, lb := s.Line(a)
	inst.BBox.Expand(la)
	inst.BBox.Expand(lb)
	pkg.insts[PrioMeas] = append(pkg.insts[PrioMeas], inst)
	if p.res.root != nil {
		p.res.root.BBox.ExpandBox(inst.BBox)
	}
}

// Line returns the ends of the dimension line of a measurement starting at
// base: both ends projected onto the measured axis, then moved Offset to the
// left of the direction of measurement.
func (s *MeasShape) Line(base coord.Coord) (a, b coord.Coord) {
	a, b = base, s.End
	switch s.Type.Axis() {
	case "x":
		y := max(a.Y, b.Y)
		a.Y, b.Y = y, y
	case "y":
		x := max(a.X, b.X)
		a.X, b.X = x, x
	}
	d := b.Sub(a)
	if d.Len() == 0 || s.Offset == 0 {
		return a, b
	}
	off := coord.Rotate(coord.Normalize(d, 1), 90).Scale(s.Offset)
	return a.Add(off), b.Add(off)
}

// Length returns the measured distance in internal units.
func (s *MeasShape) Length(base coord.Coord) float64 {
	switch s.Type.Axis() {
	case "x":
		return math.Abs(s.End.X - base.X)
	case "y":
		return math.Abs(s.End.Y - base.Y)
	}
	return coord.DistPoint(base, s.End)
}
