// Package gnuplot dumps the silk screen of packages as gnuplot 2D data.
//
// Each package starts with a "# name" line. Every object is a block of
// points in millimeters preceded by "#%id=" (the path of frames it was
// placed through) and "#%r=" (its line width), and followed by an empty
// line. Pads, holes, vectors, frames and measurements are not written.
package gnuplot

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

// DefaultArcStep is the default length, in millimeters, of the segments
// approximating circles and arcs.
const DefaultArcStep = 0.1

// Options control the output.
type Options struct {
	ArcStep float64 // mm
}

type writer struct {
	w    *bufio.Writer
	step float64
}

// Write writes the given packages of res.
func Write(w io.Writer, res *inst.Result, pkgs []*inst.Package, opts Options) error {
	gw := &writer{w: bufio.NewWriter(w), step: opts.ArcStep}
	if gw.step <= 0 {
		gw.step = DefaultArcStep
	}
	for _, p := range pkgs {
		fmt.Fprintf(gw.w, "# %s\n", p.Name)
		for _, i := range res.Footprint(p) {
			gw.inst(i)
		}
		gw.w.WriteByte('\n')
	}
	return gw.w.Flush()
}

// framePath returns the names of the frames between the root and i.
func framePath(i *inst.Instance) string {
	var names []string
	for o := i.Outer; o != nil; o = o.Outer {
		fs, ok := o.Shape.(*inst.FrameShape)
		if !ok || fs.Frame.IsRoot() {
			break
		}
		names = append(names, fs.Frame.Name)
	}
	var b strings.Builder
	for k := len(names) - 1; k >= 0; k-- {
		b.WriteByte('/')
		b.WriteString(names[k])
	}
	return b.String()
}

func mm(u float64) float64 { return coord.UnitsToMM(u, 1) }

func (g *writer) header(i *inst.Instance, width float64) {
	fmt.Fprintf(g.w, "#%%id=%s\n#%%r=%f\n", framePath(i), mm(width))
}

func (g *writer) point(c coord.Coord) {
	fmt.Fprintf(g.w, "%f %f\n", mm(c.X), mm(c.Y))
}

func (g *writer) inst(i *inst.Instance) {
	switch s := i.Shape.(type) {
	case *inst.LineShape:
		g.header(i, s.Width)
		g.point(i.Base)
		g.point(s.End)
	case *inst.RectShape:
		g.header(i, s.Width)
		a, b := i.Base, s.End
		for _, c := range []coord.Coord{a, coord.Pt(a.X, b.Y), b, coord.Pt(b.X, a.Y), a} {
			g.point(c)
		}
	case *inst.ArcShape:
		g.header(i, s.Width)
		sweep := export.Sweep(s.A1, s.A2)
		n := int(math.Ceil(2 * mm(s.R) * math.Pi / 360 * sweep / g.step))
		if n < 2 {
			n = 2
		}
		for k := 0; k <= n; k++ {
			g.point(export.ArcPoint(i.Base, s.R, s.A1+sweep/float64(n)*float64(k)))
		}
	default:
		return
	}
	g.w.WriteByte('\n')
}
