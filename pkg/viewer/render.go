// Package viewer draws instantiated footprints with gio.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/export"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

// Options select what is drawn besides pads, holes and silk screen.
type Options struct {
	ShowVectors      bool
	ShowFrames       bool
	ShowMeasurements bool
}

// Renderer draws results. It keeps the text shaper between frames.
type Renderer struct {
	Options
	shaper *text.Shaper
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		Options: opts,
		shaper:  text.NewShaper(text.WithCollection(gofont.Collection())),
	}
}

// Render draws res: inactive instances dimmed first, then the active ones
// on top, then the outline of the active frame and the selection.
func (r *Renderer) Render(gtx layout.Context, cam *Camera, res *inst.Result, selected *inst.Instance) {
	if res == nil {
		return
	}
	for _, active := range []bool{false, true} {
		res.Each(func(i *inst.Instance) {
			if i.Active == active {
				r.instance(gtx, cam, i, active)
			}
		})
	}
	if r.ShowFrames {
		if b := res.ActiveFrameBBox(); !b.IsEmpty() {
			outline(gtx, cam, b.Min, b.Max, 1, ColorFrame)
		}
	}
	if selected != nil {
		b := selected.BBox
		outline(gtx, cam, b.Min, b.Max, 1, ColorSelected)
	}
}

func shade(c color.NRGBA, active bool) color.NRGBA {
	if active {
		return c
	}
	return Dim(c)
}

// strokeWidth converts a line width to pixels, never thinner than one.
func strokeWidth(cam *Camera, w float64) float32 {
	return float32(math.Max(cam.Length(w), 1))
}

func (r *Renderer) instance(gtx layout.Context, cam *Camera, i *inst.Instance, active bool) {
	switch s := i.Shape.(type) {
	case *inst.PadShape:
		box(gtx, cam, i.Base, s.Other, s.Rounded, shade(PadColor(s.Type), active))
	case *inst.HoleShape:
		box(gtx, cam, i.Base, s.Other, true, shade(ColorHole, active))
	case *inst.LineShape:
		line(gtx, cam, []coord.Coord{i.Base, s.End}, strokeWidth(cam, s.Width), shade(ColorSilk, active))
	case *inst.RectShape:
		outline(gtx, cam, i.Base, s.End, strokeWidth(cam, s.Width), shade(ColorSilk, active))
	case *inst.ArcShape:
		line(gtx, cam, arcPoints(i.Base, s), strokeWidth(cam, s.Width), shade(ColorSilk, active))
	case *inst.VecShape:
		if r.ShowVectors {
			line(gtx, cam, []coord.Coord{i.Base, s.End}, 1, shade(ColorVec, active))
			x, y := cam.ToScreen(s.End)
			dot(gtx, x, y, 2, shade(ColorVec, active))
		}
	case *inst.FrameShape:
		if r.ShowFrames && i.Obj != nil {
			x, y := cam.ToScreen(i.Base)
			cross(gtx, x, y, 4, shade(ColorFrame, active))
		}
	case *inst.MeasShape:
		if r.ShowMeasurements {
			a, b := s.Line(i.Base)
			line(gtx, cam, []coord.Coord{i.Base, a, b, s.End}, 1, ColorMeas)
			label := fmt.Sprintf("%s%.3f", s.Label, coord.UnitsToMM(s.Length(i.Base), 1))
			r.text(gtx, cam, a.Add(b).Scale(0.5), label, ColorMeas)
		}
	}
}

// arcPoints approximates an arc by segments of at most five degrees.
func arcPoints(center coord.Coord, s *inst.ArcShape) []coord.Coord {
	sweep := export.Sweep(s.A1, s.A2)
	n := int(math.Ceil(sweep / 5))
	pts := make([]coord.Coord, n+1)
	for k := range pts {
		pts[k] = export.ArcPoint(center, s.R, s.A1+sweep*float64(k)/float64(n))
	}
	return pts
}

func line(gtx layout.Context, cam *Camera, pts []coord.Coord, width float32, c color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	for k, p := range pts {
		x, y := cam.ToScreen(p)
		if k == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	paint.FillShape(gtx.Ops, c, clip.Stroke{Path: path.End(), Width: width}.Op())
}

func outline(gtx layout.Context, cam *Camera, a, b coord.Coord, width float32, c color.NRGBA) {
	line(gtx, cam, []coord.Coord{a, coord.Pt(a.X, b.Y), b, coord.Pt(b.X, a.Y), a}, width, c)
}

// screenRect returns the pixel rectangle spanned by two corners.
func screenRect(cam *Camera, a, b coord.Coord) image.Rectangle {
	x1, y1 := cam.ToScreen(a)
	x2, y2 := cam.ToScreen(b)
	return image.Rect(int(x1), int(y1), int(x2), int(y2)).Canon()
}

// box fills a pad or hole; rounded ones have semicircular ends.
func box(gtx layout.Context, cam *Camera, a, b coord.Coord, rounded bool, c color.NRGBA) {
	rect := screenRect(cam, a, b)
	if rect.Dx() < 1 || rect.Dy() < 1 {
		rect.Max = rect.Max.Add(image.Pt(1, 1))
	}
	if !rounded {
		paint.FillShape(gtx.Ops, c, clip.Rect(rect).Op())
		return
	}
	r := min(rect.Dx(), rect.Dy()) / 2
	paint.FillShape(gtx.Ops, c, clip.RRect{Rect: rect, SE: r, SW: r, NW: r, NE: r}.Op(gtx.Ops))
}

func dot(gtx layout.Context, x, y float64, radius int, c color.NRGBA) {
	rect := image.Rect(int(x)-radius, int(y)-radius, int(x)+radius, int(y)+radius)
	paint.FillShape(gtx.Ops, c, clip.Ellipse(rect).Op(gtx.Ops))
}

func cross(gtx layout.Context, x, y, size float64, c color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(x-size), float32(y)))
	path.LineTo(f32.Pt(float32(x+size), float32(y)))
	path.MoveTo(f32.Pt(float32(x), float32(y-size)))
	path.LineTo(f32.Pt(float32(x), float32(y+size)))
	paint.FillShape(gtx.Ops, c, clip.Stroke{Path: path.End(), Width: 1}.Op())
}

func (r *Renderer) text(gtx layout.Context, cam *Camera, at coord.Coord, s string, c color.NRGBA) {
	x, y := cam.ToScreen(at)
	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	material := m.Stop()

	stack := op.Offset(image.Pt(int(x), int(y))).Push(gtx.Ops)
	label := widget.Label{Alignment: text.Start, MaxLines: 1}
	label.Layout(gtx, r.shaper, font.Font{}, unit.Sp(12), s, material)
	stack.Pop()
}
