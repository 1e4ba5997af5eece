package model

import (
	"fmt"
	"slices"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
)

// DefaultPkgName is the package name template used when none is set.
const DefaultPkgName = "_"

// Document is an arena of frames. Frame IDs are stable for the lifetime of
// the document; deleted frames leave a hole.
type Document struct {
	frames []*Frame

	// Active is the frame being edited. Only its instances are marked active.
	Active *Frame

	// PkgName is expanded in the root frame's scope to name the package.
	PkgName string

	// Unit is the unit coordinates are shown in: "mm", "mil" or "auto".
	Unit string
}

// New returns a document holding only the root frame.
func New() *Document {
	d := &Document{PkgName: DefaultPkgName, Unit: "mm"}
	root := &Frame{ID: 0}
	d.frames = []*Frame{root}
	d.Active = root
	return d
}

// Root returns the root frame.
func (d *Document) Root() *Frame { return d.frames[0] }

// Frame returns the frame with the given ID, or nil.
func (d *Document) Frame(id FrameID) *Frame {
	if id < 0 || int(id) >= len(d.frames) {
		return nil
	}
	return d.frames[id]
}

// Frames returns all live frames, root first.
func (d *Document) Frames() []*Frame {
	res := make([]*Frame, 0, len(d.frames))
	for _, f := range d.frames {
		if f != nil {
			res = append(res, f)
		}
	}
	return res
}

// FrameByName looks up a named frame.
func (d *Document) FrameByName(name string) *Frame {
	for _, f := range d.frames {
		if f != nil && f.Name == name && !f.IsRoot() {
			return f
		}
	}
	return nil
}

// AddFrame creates a new, empty named frame.
func (d *Document) AddFrame(name string) (*Frame, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: frames need a name", ErrRootFrame)
	}
	if d.FrameByName(name) != nil {
		return nil, fmt.Errorf("%w: frame %q", ErrDuplicate, name)
	}
	f := &Frame{ID: FrameID(len(d.frames)), Name: name}
	d.frames = append(d.frames, f)
	return f, nil
}

// DeleteFrame removes f together with every reference to it.
func (d *Document) DeleteFrame(f *Frame) error {
	if f.IsRoot() {
		return ErrRootFrame
	}
	if d.Frame(f.ID) != f {
		return ErrUnknownFrame
	}
	for _, other := range d.Frames() {
		for _, o := range slices.Clone(other.Objs) {
			if ref, ok := o.Shape.(*FrameRef); ok && ref.Frame == f.ID {
				d.DeleteObj(o)
			}
		}
	}
	for _, v := range slices.Clone(f.Vecs) {
		d.DeleteVec(v)
	}
	d.frames[f.ID] = nil
	if d.Active == f {
		d.Active = d.Root()
	}
	return nil
}

// SetActive selects the frame being edited.
func (d *Document) SetActive(f *Frame) error {
	if d.Frame(f.ID) != f {
		return ErrUnknownFrame
	}
	d.Active = f
	return nil
}

func (f *Frame) nameTaken(name string) bool {
	for _, t := range f.Tables {
		for _, v := range t.Vars {
			if v.Name == name {
				return true
			}
		}
	}
	for _, l := range f.Loops {
		if l.Name == name {
			return true
		}
	}
	return false
}

// AddVec appends a vector to f. A direct base must be an earlier vector of
// the same frame.
func (d *Document) AddVec(f *Frame, name string, base *Ref, x, y expr.Expr) (*Vec, error) {
	if name != "" && f.FindVec(name) != nil {
		return nil, fmt.Errorf("%w: vector %q", ErrDuplicate, name)
	}
	if base != nil {
		if base.Self {
			return nil, ErrSelfBase
		}
		if base.Vec != nil {
			if base.Vec.Frame != f {
				return nil, fmt.Errorf("%w: %s", ErrForeignVec, base)
			}
			if !slices.Contains(f.Vecs, base.Vec) {
				return nil, fmt.Errorf("%w: %s", ErrVecOrder, base)
			}
		}
	}
	v := &Vec{Name: name, Base: base, X: x, Y: y, Frame: f}
	f.Vecs = append(f.Vecs, v)
	return v, nil
}

// DeleteVec removes v, every vector built on it and every object anchored
// on any of them.
func (d *Document) DeleteVec(v *Vec) {
	f := v.Frame
	idx := slices.Index(f.Vecs, v)
	if idx < 0 {
		return
	}
	f.Vecs = slices.Delete(f.Vecs, idx, idx+1)
	for _, dep := range slices.Clone(f.Vecs) {
		if dep.Base != nil && dep.Base.Vec == v {
			d.DeleteVec(dep)
		}
	}
	for _, frame := range d.Frames() {
		for _, o := range slices.Clone(frame.Objs) {
			for _, r := range o.Refs() {
				if r != nil && r.Vec == v {
					d.DeleteObj(o)
					break
				}
			}
		}
	}
}

// reaches reports whether from, directly or through other frames, places
// target.
func (d *Document) reaches(from, target *Frame, seen map[FrameID]bool) bool {
	if from == target {
		return true
	}
	if seen[from.ID] {
		return false
	}
	seen[from.ID] = true
	for _, o := range from.Objs {
		if ref, ok := o.Shape.(*FrameRef); ok {
			if next := d.Frame(ref.Frame); next != nil && d.reaches(next, target, seen) {
				return true
			}
		}
	}
	return false
}

func (d *Document) checkRef(f *Frame, r *Ref, anyFrame bool) error {
	if r == nil || r.Vec == nil {
		return nil
	}
	if !anyFrame && r.Vec.Frame != f {
		return fmt.Errorf("%w: %s", ErrForeignVec, r)
	}
	if !slices.Contains(r.Vec.Frame.Vecs, r.Vec) {
		return fmt.Errorf("model: vector %s is not part of the document", r)
	}
	return nil
}

// AddObj appends an object to f after checking its references.
func (d *Document) AddObj(f *Frame, base *Ref, shape Shape) (*Obj, error) {
	o := &Obj{Frame: f, Base: base, Shape: shape}

	switch s := shape.(type) {
	case *FrameRef:
		target := d.Frame(s.Frame)
		if target == nil {
			return nil, ErrUnknownFrame
		}
		if target.IsRoot() || d.reaches(target, f, map[FrameID]bool{}) {
			return nil, fmt.Errorf("%w: %q cannot place %q", ErrCycle, f.Name, target.Name)
		}
	case *Meas:
		if !f.IsRoot() {
			return nil, ErrMeasNotRoot
		}
		if base == nil || base.Vec == nil || s.High == nil || s.High.Vec == nil {
			return nil, ErrMeasAnchor
		}
	}

	_, isMeas := shape.(*Meas)
	for _, r := range o.Refs() {
		if err := d.checkRef(f, r, isMeas); err != nil {
			return nil, err
		}
	}

	f.Objs = append(f.Objs, o)
	if ref, ok := shape.(*FrameRef); ok {
		if target := d.Frame(ref.Frame); target.ActiveRef == nil {
			target.ActiveRef = o
		}
	}
	return o, nil
}

// DeleteObj removes o from its frame.
func (d *Document) DeleteObj(o *Obj) {
	f := o.Frame
	idx := slices.Index(f.Objs, o)
	if idx < 0 {
		return
	}
	f.Objs = slices.Delete(f.Objs, idx, idx+1)
	ref, ok := o.Shape.(*FrameRef)
	if !ok {
		return
	}
	target := d.Frame(ref.Frame)
	if target == nil || target.ActiveRef != o {
		return
	}
	target.ActiveRef = nil
	for _, frame := range d.Frames() {
		for _, other := range frame.Objs {
			if r, ok := other.Shape.(*FrameRef); ok && r.Frame == target.ID {
				target.ActiveRef = other
				return
			}
		}
	}
}

// AddTable appends a table with the given column names. Column names must
// not clash with other variables of the frame.
func (d *Document) AddTable(f *Frame, vars ...string) (*Table, error) {
	t := &Table{Frame: f}
	for i, name := range vars {
		if f.nameTaken(name) || slices.Contains(vars[:i], name) {
			return nil, fmt.Errorf("%w: variable %q", ErrDuplicate, name)
		}
		t.Vars = append(t.Vars, &Var{Name: name, Table: t})
	}
	f.Tables = append(f.Tables, t)
	return t, nil
}

// AddRow appends a row holding one value per variable.
func (d *Document) AddRow(t *Table, values ...expr.Expr) (*Row, error) {
	if len(values) != len(t.Vars) {
		return nil, fmt.Errorf("%w: %d values for %d variables", ErrRowWidth, len(values), len(t.Vars))
	}
	r := &Row{Values: values, Table: t}
	t.Rows = append(t.Rows, r)
	return r, nil
}

// DeleteRow removes row i, keeping the active row pointing at the same row
// where possible.
func (d *Document) DeleteRow(t *Table, i int) error {
	if i < 0 || i >= len(t.Rows) {
		return ErrRange
	}
	t.Rows = slices.Delete(t.Rows, i, i+1)
	if t.ActiveRow > i || t.ActiveRow >= len(t.Rows) {
		t.ActiveRow = max(t.ActiveRow-1, 0)
	}
	return nil
}

// DeleteTable removes t from its frame.
func (d *Document) DeleteTable(t *Table) {
	if idx := slices.Index(t.Frame.Tables, t); idx >= 0 {
		t.Frame.Tables = slices.Delete(t.Frame.Tables, idx, idx+1)
	}
}

// SetActiveRow selects the row shown for editing.
func (d *Document) SetActiveRow(t *Table, i int) error {
	if i < 0 || i >= len(t.Rows) {
		return ErrRange
	}
	t.ActiveRow = i
	return nil
}

// AddLoop appends a loop over name = from..to.
func (d *Document) AddLoop(f *Frame, name string, from, to expr.Expr) (*Loop, error) {
	if f.nameTaken(name) {
		return nil, fmt.Errorf("%w: variable %q", ErrDuplicate, name)
	}
	l := &Loop{Name: name, From: from, To: to, Frame: f}
	f.Loops = append(f.Loops, l)
	return l, nil
}

// DeleteLoop removes l from its frame.
func (d *Document) DeleteLoop(l *Loop) {
	if idx := slices.Index(l.Frame.Loops, l); idx >= 0 {
		l.Frame.Loops = slices.Delete(l.Frame.Loops, idx, idx+1)
	}
}
