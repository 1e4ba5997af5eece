// Package inst expands a parametric model.Document into concrete geometry.
//
// An instantiation pass walks every row of every table, every iteration of
// every loop and every frame reference, evaluating vectors and objects under
// each combination. The combination matching the document's active rows,
// loop indices and frame references is marked active.
package inst

import (
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

// Prio orders instances for drawing and export.
type Prio int

const (
	PrioPadCopper Prio = iota
	PrioPadSpecial
	PrioHole
	PrioLine
	PrioRect
	PrioCirc
	PrioArc
	PrioFrame
	PrioVec
	PrioMeas
	numPrios
)

var prioNames = [numPrios]string{
	"pad", "special pad", "hole", "line", "rect", "circle", "arc", "frame", "vec", "meas",
}

func (p Prio) String() string {
	if p < 0 || p >= numPrios {
		return "?"
	}
	return prioNames[p]
}

// Prios lists all priorities, lowest first.
func Prios() []Prio {
	res := make([]Prio, numPrios)
	for i := range res {
		res[i] = Prio(i)
	}
	return res
}

// Instance is one concrete rendering of a vector or object.
type Instance struct {
	Vec    *model.Vec // set for vector instances
	Obj    *model.Obj // set for object and frame instances (nil for the root frame)
	Base   coord.Coord
	BBox   coord.BBox
	Outer  *Instance // enclosing frame instance
	Active bool
	Shape  Shape

	prio Prio
}

// Prio returns the drawing priority of the instance.
func (i *Instance) Prio() Prio { return i.prio }

// Shape is the kind-specific part of an instance: VecShape, LineShape,
// RectShape, PadShape, HoleShape, ArcShape, FrameShape or MeasShape.
type Shape interface {
	instShape()
}

// VecShape is a vector from Base to End.
type VecShape struct {
	End coord.Coord
}

// LineShape is a line from Base to End.
type LineShape struct {
	End   coord.Coord
	Width float64
}

// RectShape is a rectangle outline spanned by Base and End.
type RectShape struct {
	End   coord.Coord
	Width float64
}

// PadShape is a pad spanned by Base and Other.
type PadShape struct {
	Name    string
	Other   coord.Coord
	Rounded bool
	Type    layer.PadType
	Layers  layer.Set
	Hole    *Instance // drill inside this pad, if any
}

// HoleShape is a drill spanned by Base and Other.
type HoleShape struct {
	Other coord.Coord
	Pad   *Instance // pad surrounding the hole, if any
}

// ArcShape is centered at Base with radius R, running from A1 to A2
// degrees counter-clockwise. A1 == A2 is a full circle.
type ArcShape struct {
	R      float64
	A1, A2 float64
	Width  float64
}

// FrameShape is a placed frame.
type FrameShape struct {
	Frame *model.Frame
	// ActiveFrame is set on instances of the edited frame that belong to the
	// active combination.
	ActiveFrame bool
}

// MeasShape is a dimension from Base to End, drawn Offset away.
type MeasShape struct {
	End    coord.Coord
	Offset float64
	Type   model.MeasType
	Label  string
}

func (*VecShape) instShape()   {}
func (*LineShape) instShape()  {}
func (*RectShape) instShape()  {}
func (*PadShape) instShape()   {}
func (*HoleShape) instShape()  {}
func (*ArcShape) instShape()   {}
func (*FrameShape) instShape() {}
func (*MeasShape) instShape()  {}

// Anchors returns the references an instance was built from: the vector's
// base for vectors, the object's anchors otherwise.
func (i *Instance) Anchors() []*model.Ref {
	switch {
	case i.Vec != nil:
		return []*model.Ref{i.Vec.Base}
	case i.Obj == nil:
		return nil
	}
	if _, ok := i.Shape.(*FrameShape); ok {
		return []*model.Ref{i.Obj.Base}
	}
	return i.Obj.Refs()
}

// Corners returns the sorted corners of a pad or hole.
func (i *Instance) Corners() (lo, hi coord.Coord) {
	switch s := i.Shape.(type) {
	case *PadShape:
		return coord.Sort(i.Base, s.Other)
	case *HoleShape:
		return coord.Sort(i.Base, s.Other)
	}
	return i.BBox.Min, i.BBox.Max
}
