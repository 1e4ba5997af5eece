package pcb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
)

func element(t *testing.T, src string) []string {
	t.Helper()
	p, err := fpd.NewParser()
	require.NoError(t, err)
	doc, err := p.ParseString("test.fpd", src)
	require.NoError(t, err)
	res, err := inst.NewEngine().Instantiate(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res, res.Packages(), Options{}))
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestPadsAndPins(t *testing.T) {
	lines := element(t, `package "P"
a: vec @(-40mil, -20mil)
b: vec @(40mil, 20mil)
pad "1" a b
c: vec @(100mil, -30mil)
d: vec @(160mil, 30mil)
rpad "2" c d
e: vec @(115mil, -15mil)
f: vec @(145mil, 15mil)
hole e f
g: vec @(300mil, 0mil)
h: vec @(320mil, 20mil)
hole g h
pad "" g h paste
line a b 10mil
`)
	want := []string{
		`Element["" "P" "" "" 0 0 0 0 0 100 ""]`,
		`(`,
		"\tPad[-2000 0 2000 0 4000 1000 4000 \"1\" \"1\" \"square\"]",
		"\tPin[13000 0 6000 1000 6000 3000 \"2\" \"2\" \"\"]",
		"\tPin[31000 -1000 2000 0 2000 2000 \"\" \"\" \"hole\"]",
		"\tElementLine[-4000 2000 4000 -2000 1000]",
		`)`,
	}
	assert.Equal(t, want, lines)
}

func TestBarePadHasNoPaste(t *testing.T) {
	lines := element(t, `package "B"
a: vec @(0mil, 0mil)
b: vec @(20mil, 60mil)
rpad "1" a b bare
`)
	require.Len(t, lines, 4)
	assert.Equal(t, "\tPad[1000 -1000 1000 -5000 2000 1000 2000 \"1\" \"1\" \"nopaste\"]", lines[2])
}

func TestArcs(t *testing.T) {
	lines := element(t, `package "A"
o: vec @(0mil, 0mil)
s: vec @(100mil, 0mil)
t: vec @(0mil, 100mil)
arc o s t
circ o t 5mil
`)
	require.Len(t, lines, 5)
	// arcs sort after circles
	assert.Equal(t, "\tElementArc[0 0 10000 10000 270 360 500]", lines[2])
	assert.Equal(t, "\tElementArc[0 0 10000 10000 180 90 1500]", lines[3])
}
