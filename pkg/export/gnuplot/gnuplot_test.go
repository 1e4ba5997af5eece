package gnuplot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

const drawing = `
package "G"
frame tick {
	u: vec @(0mm, 0mm)
	v: vec u(0mm, 0.5mm)
	line u v 0.1mm
}
frame box {
	a: vec @(0mm, 0mm)
	b: vec @(1mm, 2mm)
	rect a b 0.1mm
	frame tick b
}
frame box @
o: vec @(0mm, 0mm)
p: vec o(1mm, 0mm)
line o p 0.2mm
circ o p 0.1mm
pad "1" o p
`

func dump(t *testing.T, opts Options) string {
	t.Helper()
	p, err := fpd.NewParser()
	require.NoError(t, err)
	doc, err := p.ParseString("drawing.fpd", drawing)
	require.NoError(t, err)
	res, err := inst.NewEngine().Instantiate(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res, res.Packages(), opts))
	return buf.String()
}

func TestWrite(t *testing.T) {
	out := dump(t, Options{ArcStep: 0.5})
	require.True(t, strings.HasPrefix(out, "# G\n"))

	blocks := strings.Split(strings.TrimRight(strings.TrimPrefix(out, "# G\n"), "\n"), "\n\n")
	require.Len(t, blocks, 4)

	// lines first, in generation order, then the rectangle, then the circle
	assert.Equal(t, "#%id=/box/tick\n#%r=0.100000\n1.000000 2.000000\n1.000000 2.500000", blocks[0])
	assert.Equal(t, "#%id=\n#%r=0.200000\n0.000000 0.000000\n1.000000 0.000000", blocks[1])
	assert.Equal(t, "#%id=/box\n#%r=0.100000\n"+
		"0.000000 0.000000\n0.000000 2.000000\n1.000000 2.000000\n1.000000 0.000000\n0.000000 0.000000",
		blocks[2])

	circle := strings.Split(blocks[3], "\n")
	// 2 pi / 0.5 rounds up to 13 segments
	require.Len(t, circle, 2+14)
	assert.Equal(t, "#%r=0.100000", circle[1])
	assert.Equal(t, "1.000000 0.000000", circle[2])
	assert.NotContains(t, out, "pad")
}

func TestDefaultArcStep(t *testing.T) {
	out := dump(t, Options{})
	blocks := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	circle := strings.Split(blocks[len(blocks)-1], "\n")
	// 2 pi / 0.1 rounds up to 63 segments
	assert.Len(t, circle, 2+64)
}
