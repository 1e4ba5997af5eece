// Package model holds the parametric definition of a footprint: frames of
// vectors, drawing objects, tables and loops. Nothing in here is evaluated;
// pkg/inst turns a Document into concrete geometry.
package model

import (
	"errors"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
)

var (
	ErrDuplicate    = errors.New("model: duplicate name")
	ErrCycle        = errors.New("model: frame reference cycle")
	ErrForeignVec   = errors.New("model: vector belongs to another frame")
	ErrVecOrder     = errors.New("model: base vector must be declared first")
	ErrSelfBase     = errors.New("model: vector cannot use self as base")
	ErrRowWidth     = errors.New("model: row width does not match table")
	ErrRange        = errors.New("model: index out of range")
	ErrRootFrame    = errors.New("model: operation not allowed on root frame")
	ErrMeasNotRoot  = errors.New("model: measurements belong to the root frame")
	ErrMeasAnchor   = errors.New("model: measurement ends must be direct vectors")
	ErrUnknownFrame = errors.New("model: unknown frame")
)

// FrameID indexes a frame in its document. The root frame is always 0.
type FrameID int

// Frame is a named scope of vectors, objects, tables and loops.
type Frame struct {
	ID     FrameID
	Name   string
	Vecs   []*Vec
	Objs   []*Obj
	Tables []*Table
	Loops  []*Loop

	// ActiveRef is the frame reference through which the instance shown for
	// editing is reached.
	ActiveRef *Obj
}

// IsRoot reports whether f is the unnamed root frame.
func (f *Frame) IsRoot() bool { return f.ID == 0 }

// FindVec returns the vector called name in this frame.
func (f *Frame) FindVec(name string) *Vec {
	if name == "" {
		return nil
	}
	for _, v := range f.Vecs {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Ref points at an anchor vector. A nil *Ref means the origin handed to the
// frame (or to the object) by its caller.
type Ref struct {
	// Vec is set for references resolved when the definition was built.
	Vec *Vec
	// Name is resolved outward through the frames of the current
	// instantiation path.
	Name string
	// Self refers to the object's own base.
	Self bool
}

// Direct returns a reference to a known vector.
func Direct(v *Vec) *Ref { return &Ref{Vec: v} }

// Named returns a reference resolved at instantiation time.
func Named(name string) *Ref { return &Ref{Name: name} }

// SelfRef returns a reference to the object's own base.
func SelfRef() *Ref { return &Ref{Self: true} }

func (r *Ref) String() string {
	switch {
	case r == nil:
		return "@"
	case r.Self:
		return "self"
	case r.Vec != nil:
		if r.Vec.Name == "" {
			return "<anonymous>"
		}
		return r.Vec.Name
	default:
		return r.Name
	}
}

// Vec is an anchor point: Base + (X, Y).
type Vec struct {
	Name   string
	Base   *Ref
	X, Y   expr.Expr
	Frame  *Frame
	Lineno int
}

// Obj is a drawing object anchored at Base.
type Obj struct {
	Frame  *Frame
	Base   *Ref
	Shape  Shape
	Lineno int
}

// Shape is the variant part of an object: FrameRef, Line, Rect, Pad, Hole,
// Arc, Meas or Iprint.
type Shape interface {
	shape()
}

// FrameRef places another frame at the object's base.
type FrameRef struct {
	Frame FrameID
}

// Line is a silk screen line from Base to Other.
type Line struct {
	Other *Ref
	Width expr.Expr // nil selects the default width
}

// Rect is a silk screen rectangle spanned by Base and Other.
type Rect struct {
	Other *Ref
	Width expr.Expr
}

// Pad spans Base and Other. Name is a template expanded per instance.
type Pad struct {
	Name    string
	Other   *Ref
	Type    layer.PadType
	Rounded bool
}

// Hole is a drill spanned by Base and Other. A round hole has equal width
// and height, otherwise it is an oval slot.
type Hole struct {
	Other *Ref
}

// Arc is centered at Base, runs counter-clockwise from Start to End. A
// circle has Start == End.
type Arc struct {
	Start *Ref
	End   *Ref
	Width expr.Expr
}

// MeasType selects which distance a measurement shows.
type MeasType int

const (
	MeasXYNext MeasType = iota
	MeasXNext
	MeasYNext
	MeasXYMax
	MeasXMax
	MeasYMax
)

// IsMax reports whether the measurement goes to the farthest sample rather
// than the next one.
func (t MeasType) IsMax() bool { return t >= MeasXYMax }

// Axis returns "xy", "x" or "y".
func (t MeasType) Axis() string {
	switch t % 3 {
	case 1:
		return "x"
	case 2:
		return "y"
	}
	return "xy"
}

// Meas is a dimension annotation from the low end (the object's base) to
// High. Both ends must be direct vector references.
type Meas struct {
	Type     MeasType
	Inverted bool
	Label    string
	High     *Ref
	Offset   expr.Expr
}

// Iprint logs the value of an expression on every instantiation.
type Iprint struct {
	Expr expr.Expr
}

func (*FrameRef) shape() {}
func (*Line) shape()     {}
func (*Rect) shape()     {}
func (*Pad) shape()      {}
func (*Hole) shape()     {}
func (*Arc) shape()      {}
func (*Meas) shape()     {}
func (*Iprint) shape()   {}

// Refs returns the anchor references of an object, base first.
func (o *Obj) Refs() []*Ref {
	refs := []*Ref{o.Base}
	switch s := o.Shape.(type) {
	case *Line:
		refs = append(refs, s.Other)
	case *Rect:
		refs = append(refs, s.Other)
	case *Pad:
		refs = append(refs, s.Other)
	case *Hole:
		refs = append(refs, s.Other)
	case *Arc:
		refs = append(refs, s.Start, s.End)
	case *Meas:
		refs = append(refs, s.High)
	}
	return refs
}

// Table is a grid of variables (columns) and rows of values.
type Table struct {
	Vars      []*Var
	Rows      []*Row
	ActiveRow int
	Frame     *Frame
}

// Var is a table column.
type Var struct {
	Name  string
	Table *Table
}

// Row holds one value per table variable.
type Row struct {
	Values []expr.Expr
	Table  *Table
}

// Loop is an induction variable running from From to To inclusive.
type Loop struct {
	Name   string
	From   expr.Expr
	To     expr.Expr
	Active int // iteration index selected for editing
	Frame  *Frame
}
