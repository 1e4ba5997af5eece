package kicad

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/sexp"
)

const board = `
package "T"
a: vec @(-1mm, -0.5mm)
b: vec @(1mm, 0.5mm)
pad "1" a b
c: vec @(3mm, -1mm)
d: vec @(5mm, 1mm)
rpad "2" c d
e: vec @(3.5mm, -0.5mm)
f: vec @(4.5mm, 0.5mm)
hole e f
g: vec @(8mm, 0mm)
h: vec @(9mm, 1mm)
hole g h
line a b 0.2mm
o: vec @(0mm, 0mm)
s: vec @(1mm, 0mm)
t: vec @(0mm, 1mm)
arc o s t 0.1mm
circ o s 0.1mm
`

func instantiate(t *testing.T, src string) *inst.Result {
	t.Helper()
	p, err := fpd.NewParser()
	require.NoError(t, err)
	doc, err := p.ParseString("test.fpd", src)
	require.NoError(t, err)
	res, err := inst.NewEngine().Instantiate(doc)
	require.NoError(t, err)
	return res
}

func TestFootprint(t *testing.T) {
	res := instantiate(t, board)
	require.Len(t, res.Packages(), 1)

	fp := Footprint(res, res.Packages()[0], DefaultOptions())
	assert.Equal(t, "footprint", fp.Name())
	assert.Equal(t, "T", fp.Atom(1))
	assert.Equal(t, "through_hole", fp.Find("attr").Atom(1))

	pads := fp.FindAll("pad")
	require.Len(t, pads, 3)
	assert.Equal(t, `(pad "1" smd rect (at 0 0) (size 2 1) (layers "F.Mask" "F.Paste" "F.Cu"))`,
		pads[0].String())
	assert.Equal(t, `(pad "2" thru_hole circle (at 4 0) (size 2 2) (drill 1) `+
		`(layers "F.Mask" "B.Mask" "F.Cu" "B.Cu"))`, pads[1].String())
	assert.Equal(t, `(pad "" np_thru_hole circle (at 8.5 -0.5) (size 1 1) (drill 1) `+
		`(layers "*.Cu" "*.Mask"))`, pads[2].String())

	lines := fp.FindAll("fp_line")
	require.Len(t, lines, 1)
	assert.Equal(t, `(fp_line (start -1 0.5) (end 1 -0.5) (stroke (width 0.2) (type solid)) `+
		`(layer "F.SilkS"))`, lines[0].String())

	arcs := fp.FindAll("fp_arc")
	require.Len(t, arcs, 1)
	assert.Equal(t, `(fp_arc (start 1 0) (mid 0.707107 -0.707107) (end 0 -1) `+
		`(stroke (width 0.1) (type solid)) (layer "F.SilkS"))`, arcs[0].String())

	circles := fp.FindAll("fp_circle")
	require.Len(t, circles, 1)
	assert.Equal(t, "(center 0 0)", circles[0].Find("center").String())
	assert.Equal(t, "(end 1 0)", circles[0].Find("end").String())
}

func TestSurfaceMountAttr(t *testing.T) {
	res := instantiate(t, `package "SMD"
a: vec @(0mm, 0mm)
b: vec @(1mm, 1mm)
pad "1" a b
rect a b
`)
	fp := Footprint(res, res.Packages()[0], Options{SilkLayer: "B.SilkS"})
	assert.Equal(t, "smd", fp.Find("attr").Atom(1))
	rect := fp.Find("fp_rect")
	require.NotNil(t, rect)
	assert.Equal(t, "B.SilkS", rect.Find("layer").Atom(1))
	// default silk width is 15 mil
	assert.Equal(t, "0.381", rect.Find("stroke").Find("width").Atom(1))
}

func TestDrillOffset(t *testing.T) {
	res := instantiate(t, `package "OFF"
a: vec @(0mm, 0mm)
b: vec @(4mm, 2mm)
pad "1" a b
c: vec @(0.5mm, 0.5mm)
d: vec @(1.5mm, 1.5mm)
hole c d
`)
	fp := Footprint(res, res.Packages()[0], DefaultOptions())
	p := fp.Find("pad")
	require.NotNil(t, p)
	assert.Equal(t, "(drill 1 (offset -1 0))", p.Find("drill").String())
}

func TestWriteReadsBack(t *testing.T) {
	res := instantiate(t, board)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res, res.Packages()[0], DefaultOptions()))

	assert.Contains(t, buf.String(), "(footprint \"T\"\n")
	exprs, err := sexp.ParseString(buf.String())
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Len(t, exprs[0].(*sexp.List).FindAll("pad"), 3)
}
