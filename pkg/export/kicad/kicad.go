// Package kicad writes packages as KiCad footprints (.kicad_mod).
package kicad

import (
	"io"
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/sexp"
)

const (
	// Version is the footprint file format version written.
	Version = "20221018"
	// Generator names the tool in the file header.
	Generator = "otfp"
	// Extension is the file name extension of KiCad footprints.
	Extension = ".kicad_mod"
)

// Options control the output.
type Options struct {
	// SilkLayer receives lines, rectangles, circles and arcs.
	SilkLayer string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{SilkLayer: "F.SilkS"}
}

func sym(s string) sexp.Sexp { return sexp.Symbol(s) }

// xy converts a position to KiCad's coordinate system, whose Y axis points
// down.
func xy(name string, c coord.Coord) *sexp.List {
	return sexp.NewList(name, sym(export.MM(c.X)), sym(export.MM(-c.Y)))
}

func stroke(width float64) *sexp.List {
	return sexp.NewList("stroke",
		sexp.NewList("width", sym(export.MM(width))),
		sexp.NewList("type", sym("solid")))
}

func layers(names ...string) *sexp.List {
	l := sexp.NewList("layers")
	for _, n := range names {
		l.Add(sexp.Str(n))
	}
	return l
}

// Footprint builds the footprint of package p.
func Footprint(res *inst.Result, p *inst.Package, opts Options) *sexp.List {
	silk := sexp.NewList("layer", sexp.Str(opts.SilkLayer))
	body := sexp.NewList("footprint", sexp.Str(p.Name),
		sexp.NewList("version", sym(Version)),
		sexp.NewList("generator", sexp.Str(Generator)),
		sexp.NewList("layer", sexp.Str("F.Cu")))

	var items []sexp.Sexp
	tht := false
	for _, i := range res.Footprint(p) {
		switch s := i.Shape.(type) {
		case *inst.PadShape:
			if s.Hole != nil {
				tht = true
			}
			items = append(items, pad(i, s))
		case *inst.HoleShape:
			if s.Pad == nil {
				tht = true
				items = append(items, hole(i, s))
			}
		case *inst.LineShape:
			items = append(items, sexp.NewList("fp_line",
				xy("start", i.Base), xy("end", s.End), stroke(s.Width), silk))
		case *inst.RectShape:
			items = append(items, sexp.NewList("fp_rect",
				xy("start", i.Base), xy("end", s.End), stroke(s.Width),
				sexp.NewList("fill", sym("none")), silk))
		case *inst.ArcShape:
			if i.Prio() == inst.PrioCirc {
				items = append(items, sexp.NewList("fp_circle",
					xy("center", i.Base), xy("end", coord.Pt(i.Base.X+s.R, i.Base.Y)),
					stroke(s.Width), sexp.NewList("fill", sym("none")), silk))
				continue
			}
			mid := s.A1 + export.Sweep(s.A1, s.A2)/2
			items = append(items, sexp.NewList("fp_arc",
				xy("start", export.ArcPoint(i.Base, s.R, s.A1)),
				xy("mid", export.ArcPoint(i.Base, s.R, mid)),
				xy("end", export.ArcPoint(i.Base, s.R, s.A2)),
				stroke(s.Width), silk))
		}
	}

	attr := "smd"
	if tht {
		attr = "through_hole"
	}
	body.Add(sexp.NewList("attr", sym(attr)))
	body.Add(text("reference", "REF**", "F.SilkS"))
	body.Add(text("value", p.Name, "F.Fab"))
	return body.Add(items...)
}

func text(kind, value, layer string) *sexp.List {
	return sexp.NewList("fp_text", sym(kind), sexp.Str(value),
		sexp.NewList("at", sym("0"), sym("0")),
		sexp.NewList("layer", sexp.Str(layer)),
		sexp.NewList("effects", sexp.NewList("font",
			sexp.NewList("size", sym("1"), sym("1")),
			sexp.NewList("thickness", sym("0.15")))))
}

// padShape picks the KiCad shape of a pad or hole of the given size.
func padShape(size coord.Coord, rounded bool) string {
	switch {
	case !rounded:
		return "rect"
	case size.X == size.Y:
		return "circle"
	}
	return "oval"
}

func center(i *inst.Instance) (c, size coord.Coord) {
	lo, hi := i.Corners()
	return lo.Add(hi).Scale(0.5), hi.Sub(lo)
}

func drill(d *inst.Instance, padCenter coord.Coord) *sexp.List {
	c, size := center(d)
	l := sexp.NewList("drill")
	if size.X == size.Y {
		l.Add(sym(export.MM(size.X)))
	} else {
		l.Add(sym("oval"), sym(export.MM(size.X)), sym(export.MM(size.Y)))
	}
	if off := c.Sub(padCenter); math.Abs(off.X) > 0.5 || math.Abs(off.Y) > 0.5 {
		l.Add(xy("offset", off))
	}
	return l
}

func pad(i *inst.Instance, s *inst.PadShape) *sexp.List {
	c, size := center(i)
	kind := "smd"
	if s.Hole != nil {
		kind = "thru_hole"
	}
	l := sexp.NewList("pad", sexp.Str(s.Name), sym(kind), sym(padShape(size, s.Rounded)),
		xy("at", c),
		sexp.NewList("size", sym(export.MM(size.X)), sym(export.MM(size.Y))))
	if s.Hole != nil {
		l.Add(drill(s.Hole, c))
	}
	return l.Add(layers(s.Layers.Names()...))
}

// hole writes a drill without a surrounding pad as a non-plated hole.
func hole(i *inst.Instance, s *inst.HoleShape) *sexp.List {
	c, size := center(i)
	shape := "circle"
	if size.X != size.Y {
		shape = "oval"
	}
	return sexp.NewList("pad", sexp.Str(""), sym("np_thru_hole"), sym(shape),
		xy("at", c),
		sexp.NewList("size", sym(export.MM(size.X)), sym(export.MM(size.Y))),
		drill(i, c),
		layers("*.Cu", "*.Mask"))
}

// Write writes package p as a footprint file.
func Write(w io.Writer, res *inst.Result, p *inst.Package, opts Options) error {
	return sexp.Write(w, Footprint(res, p, opts))
}
