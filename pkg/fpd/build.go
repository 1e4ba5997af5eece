package fpd

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

var (
	ErrUnknownFrame = errors.New("fpd: unknown frame")
	ErrUnknownVec   = errors.New("fpd: unknown vector")
)

// Error is a problem found while building a document, located in the
// source.
type Error struct {
	Pos lexer.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type builder struct {
	doc    *model.Document
	meas   []*MeasStmt
	frames map[string]*model.Frame
}

// Build turns a parsed file into a document. Frames are created up front so
// they can be placed before their definition; measurements are resolved
// last because they may name vectors of any frame.
func Build(f *File) (*model.Document, error) {
	b := &builder{doc: model.New(), frames: make(map[string]*model.Frame)}

	for _, it := range f.Items {
		if it.Frame == nil {
			continue
		}
		fr, err := b.doc.AddFrame(it.Frame.Name)
		if err != nil {
			return nil, &Error{Pos: it.Frame.Pos, Err: err}
		}
		b.frames[fr.Name] = fr
	}

	root := b.doc.Root()
	for _, it := range f.Items {
		var err error
		switch {
		case it.Package != nil:
			err = b.pkg(it.Package)
		case it.Unit != nil:
			b.doc.Unit = it.Unit.Unit
		case it.Frame != nil:
			err = b.stmts(b.frames[it.Frame.Name], it.Frame.Stmts)
		case it.Stmt != nil:
			err = b.stmt(root, it.Stmt)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, m := range b.meas {
		if err := b.measure(m); err != nil {
			return nil, err
		}
	}
	return b.doc, nil
}

func (b *builder) pkg(d *PackageDecl) error {
	if _, err := expr.Expand(d.Name, nil); err != nil {
		return &Error{Pos: d.Pos, Err: err}
	}
	b.doc.PkgName = d.Name
	return nil
}

func (b *builder) stmts(f *model.Frame, stmts []*Stmt) error {
	for _, s := range stmts {
		if err := b.stmt(f, s); err != nil {
			return err
		}
	}
	return nil
}

// ref resolves an anchor against the vectors declared so far. Unknown names
// are kept for the instantiation pass, which looks them up in the frames
// that place this one.
func (b *builder) ref(f *model.Frame, r *Ref) *model.Ref {
	switch {
	case r.Origin:
		return nil
	case r.Self:
		return model.SelfRef()
	case r.Prev:
		if len(f.Vecs) == 0 {
			return nil
		}
		return model.Direct(f.Vecs[len(f.Vecs)-1])
	}
	if v := f.FindVec(r.Name); v != nil {
		return model.Direct(v)
	}
	return model.Named(r.Name)
}

func (b *builder) obj(f *model.Frame, pos lexer.Position, base *Ref, shape model.Shape) error {
	o, err := b.doc.AddObj(f, b.ref(f, base), shape)
	if err != nil {
		return &Error{Pos: pos, Err: err}
	}
	o.Lineno = pos.Line
	return nil
}

func width(e *expr.Expression) expr.Expr {
	if e == nil {
		return nil
	}
	return e.Expr()
}

func (b *builder) stmt(f *model.Frame, s *Stmt) error {
	switch {
	case s.Set != nil:
		t, err := b.doc.AddTable(f, s.Set.Name)
		if err != nil {
			return &Error{Pos: s.Set.Pos, Err: err}
		}
		if _, err := b.doc.AddRow(t, s.Set.Value.Expr()); err != nil {
			return &Error{Pos: s.Set.Pos, Err: err}
		}

	case s.Table != nil:
		t, err := b.doc.AddTable(f, s.Table.Vars...)
		if err != nil {
			return &Error{Pos: s.Table.Pos, Err: err}
		}
		for _, row := range s.Table.Rows {
			values := make([]expr.Expr, len(row.Values))
			for i, v := range row.Values {
				values[i] = v.Expr()
			}
			if _, err := b.doc.AddRow(t, values...); err != nil {
				return &Error{Pos: row.Pos, Err: err}
			}
		}

	case s.Loop != nil:
		if _, err := b.doc.AddLoop(f, s.Loop.Name, s.Loop.From.Expr(), s.Loop.To.Expr()); err != nil {
			return &Error{Pos: s.Loop.Pos, Err: err}
		}

	case s.Vec != nil:
		v, err := b.doc.AddVec(f, s.Vec.Name, b.ref(f, s.Vec.Base), s.Vec.X.Expr(), s.Vec.Y.Expr())
		if err != nil {
			return &Error{Pos: s.Vec.Pos, Err: err}
		}
		v.Lineno = s.Vec.Pos.Line

	case s.FrameRef != nil:
		target, ok := b.frames[s.FrameRef.Frame]
		if !ok {
			return &Error{Pos: s.FrameRef.Pos, Err: fmt.Errorf("%w %q", ErrUnknownFrame, s.FrameRef.Frame)}
		}
		return b.obj(f, s.FrameRef.Pos, s.FrameRef.Base, &model.FrameRef{Frame: target.ID})

	case s.Pad != nil:
		p := s.Pad
		if _, err := expr.Expand(p.Name, nil); err != nil {
			return &Error{Pos: p.Pos, Err: err}
		}
		typ, _ := layer.ParsePadType(p.Type)
		return b.obj(f, p.Pos, p.From, &model.Pad{
			Name:    p.Name,
			Other:   b.ref(f, p.To),
			Type:    typ,
			Rounded: p.Kind == "rpad",
		})

	case s.Hole != nil:
		return b.obj(f, s.Hole.Pos, s.Hole.From, &model.Hole{Other: b.ref(f, s.Hole.To)})

	case s.Silk != nil:
		sk := s.Silk
		other := b.ref(f, sk.To)
		var shape model.Shape
		switch sk.Kind {
		case "line":
			shape = &model.Line{Other: other, Width: width(sk.Width)}
		case "rect":
			shape = &model.Rect{Other: other, Width: width(sk.Width)}
		default:
			shape = &model.Arc{Start: other, End: other, Width: width(sk.Width)}
		}
		return b.obj(f, sk.Pos, sk.From, shape)

	case s.Arc != nil:
		a := s.Arc
		return b.obj(f, a.Pos, a.Center, &model.Arc{
			Start: b.ref(f, a.Start),
			End:   b.ref(f, a.End),
			Width: width(a.Width),
		})

	case s.Meas != nil:
		if !f.IsRoot() {
			return &Error{Pos: s.Meas.Pos, Err: model.ErrMeasNotRoot}
		}
		b.meas = append(b.meas, s.Meas)

	case s.Iprint != nil:
		return b.obj(f, s.Iprint.Pos, nil, &model.Iprint{Expr: s.Iprint.Expr.Expr()})
	}
	return nil
}

// qualified looks up "vec" in the root frame or "frame.vec" anywhere.
func (b *builder) qualified(r *QualifiedRef) (*model.Vec, error) {
	f := b.doc.Root()
	if r.Frame != "" {
		var ok bool
		if f, ok = b.frames[r.Frame]; !ok {
			return nil, &Error{Pos: r.Pos, Err: fmt.Errorf("%w %q", ErrUnknownFrame, r.Frame)}
		}
	}
	v := f.FindVec(r.Vec)
	if v == nil {
		return nil, &Error{Pos: r.Pos, Err: fmt.Errorf("%w %q", ErrUnknownVec, r.Vec)}
	}
	return v, nil
}

var measTypes = map[string]model.MeasType{
	"meas":  model.MeasXYNext,
	"measx": model.MeasXNext,
	"measy": model.MeasYNext,
}

func (b *builder) measure(m *MeasStmt) error {
	low, err := b.qualified(m.From)
	if err != nil {
		return err
	}
	high, err := b.qualified(m.To)
	if err != nil {
		return err
	}
	meas := &model.Meas{Type: measTypes[m.Kind], High: model.Direct(high)}
	switch m.Arrow {
	case "->":
		meas.Type += model.MeasXYMax
	case "<-":
		meas.Type += model.MeasXYMax
		meas.Inverted = true
	case "<<":
		meas.Inverted = true
	}
	if m.Label != nil {
		meas.Label = *m.Label
	}
	if m.Offset != nil {
		meas.Offset = m.Offset.Expr()
	}
	o, err := b.doc.AddObj(b.doc.Root(), model.Direct(low), meas)
	if err != nil {
		return &Error{Pos: m.Pos, Err: err}
	}
	o.Lineno = m.Pos.Line
	return nil
}
