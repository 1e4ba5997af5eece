// Package pcb writes packages as gEDA PCB elements.
//
// Coordinates are centimils relative to the element mark, with the Y axis
// pointing down. Pads without copper cannot be expressed and are skipped.
package pcb

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
)

// DefaultClearance is the copper clearance written for pads and pins.
var DefaultClearance = coord.MilToUnits(10, 1)

// Options control the output.
type Options struct {
	Clearance float64 // internal units
}

type writer struct {
	w    *bufio.Writer
	opts Options
}

// Write writes one element per package.
func Write(w io.Writer, res *inst.Result, pkgs []*inst.Package, opts Options) error {
	if opts.Clearance <= 0 {
		opts.Clearance = DefaultClearance
	}
	pw := &writer{w: bufio.NewWriter(w), opts: opts}
	for _, p := range pkgs {
		fmt.Fprintf(pw.w, "Element[\"\" %s \"\" \"\" 0 0 0 0 0 100 \"\"]\n(\n", strconv.Quote(p.Name))
		for _, i := range res.Footprint(p) {
			pw.inst(i)
		}
		pw.w.WriteString(")\n\n")
	}
	return pw.w.Flush()
}

// n converts a length to centimils.
func n(u float64) int {
	return int(math.Round(coord.UnitsToPCB(u)))
}

func (pw *writer) line(a, b coord.Coord, width float64) {
	fmt.Fprintf(pw.w, "\tElementLine[%d %d %d %d %d]\n", n(a.X), -n(a.Y), n(b.X), -n(b.Y), n(width))
}

func center(i *inst.Instance) (c, size coord.Coord) {
	lo, hi := i.Corners()
	return lo.Add(hi).Scale(0.5), hi.Sub(lo)
}

func flags(f ...string) string {
	var res []string
	for _, s := range f {
		if s != "" {
			res = append(res, s)
		}
	}
	return strconv.Quote(strings.Join(res, ","))
}

func (pw *writer) pad(i *inst.Instance, s *inst.PadShape) {
	if !s.Layers.Any(layer.Copper) {
		return
	}
	c, size := center(i)
	t := math.Min(size.X, size.Y)
	mask := 0.0
	if s.Layers.Any(layer.Mask) {
		mask = t
	}
	square := ""
	if !s.Rounded {
		square = "square"
	}
	name := strconv.Quote(s.Name)

	if s.Hole != nil {
		_, drill := center(s.Hole)
		fmt.Fprintf(pw.w, "\tPin[%d %d %d %d %d %d %s %s %s]\n",
			n(c.X), -n(c.Y), n(t), n(pw.opts.Clearance), n(mask), n(math.Min(drill.X, drill.Y)),
			name, name, flags(square))
		return
	}

	// a pad is a line of width t; its ends are inset by t/2
	d := coord.Pt((size.X-t)/2, 0)
	if size.Y > size.X {
		d = coord.Pt(0, (size.Y-t)/2)
	}
	a, b := c.Sub(d), c.Add(d)
	nopaste := ""
	if !s.Layers.Any(layer.Paste) {
		nopaste = "nopaste"
	}
	fmt.Fprintf(pw.w, "\tPad[%d %d %d %d %d %d %d %s %s %s]\n",
		n(a.X), -n(a.Y), n(b.X), -n(b.Y), n(t), n(pw.opts.Clearance), n(mask),
		name, name, flags(square, nopaste))
}

func (pw *writer) inst(i *inst.Instance) {
	switch s := i.Shape.(type) {
	case *inst.PadShape:
		pw.pad(i, s)
	case *inst.HoleShape:
		if s.Pad != nil {
			return
		}
		c, size := center(i)
		d := n(math.Min(size.X, size.Y))
		fmt.Fprintf(pw.w, "\tPin[%d %d %d 0 %d %d \"\" \"\" \"hole\"]\n", n(c.X), -n(c.Y), d, d, d)
	case *inst.LineShape:
		pw.line(i.Base, s.End, s.Width)
	case *inst.RectShape:
		a, b := i.Base, s.End
		pw.line(a, coord.Pt(a.X, b.Y), s.Width)
		pw.line(coord.Pt(a.X, b.Y), b, s.Width)
		pw.line(b, coord.Pt(b.X, a.Y), s.Width)
		pw.line(coord.Pt(b.X, a.Y), a, s.Width)
	case *inst.ArcShape:
		// PCB angles start at -X and grow towards +Y, which points down
		start := math.Mod(180+s.A1, 360)
		if start < 0 {
			start += 360
		}
		fmt.Fprintf(pw.w, "\tElementArc[%d %d %d %d %d %d %d]\n",
			n(i.Base.X), -n(i.Base.Y), n(s.R), n(s.R),
			int(math.Round(start)), int(math.Round(export.Sweep(s.A1, s.A2))), n(s.Width))
	}
}
