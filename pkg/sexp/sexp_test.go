package sexp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	exprs, err := ParseString(`(footprint "SOT23" (layer "F.Cu") # comment
  (pad "1" smd rect (at -0.95 1.1) (size 0.6 0.7)))`)
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	fp, ok := exprs[0].(*List)
	require.True(t, ok)
	assert.Equal(t, "footprint", fp.Name())
	assert.Equal(t, "SOT23", fp.Atom(1))
	assert.Equal(t, Str("SOT23"), fp.Get(1))
	assert.Equal(t, "F.Cu", fp.Find("layer").Atom(1))

	pad := fp.Find("pad")
	require.NotNil(t, pad)
	assert.Equal(t, Symbol("smd"), pad.Get(2))
	assert.Equal(t, "-0.95", pad.Find("at").Atom(1))
	assert.Nil(t, fp.Find("model"))
	assert.Nil(t, fp.Get(10))
	assert.Equal(t, "", fp.Atom(3))
}

func TestParseEscapes(t *testing.T) {
	exprs, err := ParseString(`(descr "a \"b\"\n") ()`)
	require.NoError(t, err)
	require.Len(t, exprs, 2)
	assert.Equal(t, "a \"b\"\n", exprs[0].(*List).Atom(1))
	assert.Equal(t, 0, exprs[1].(*List).Len())
	assert.Equal(t, "", exprs[1].(*List).Name())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
		line  string
	}{
		{"(a (b)", ErrUnbalanced, "line 1"},
		{"(a)\n)", ErrUnbalanced, "line 2"},
		{"(a\n\"open)", ErrUnterminated, "line 2"},
	}
	for _, tt := range tests {
		_, err := ParseString(tt.input)
		require.Error(t, err, "input %q", tt.input)
		assert.ErrorIs(t, err, tt.want)
		assert.Contains(t, err.Error(), tt.line)
	}
}

func TestSymbolQuoting(t *testing.T) {
	assert.Equal(t, "smd", Symbol("smd").String())
	assert.Equal(t, `"two words"`, Symbol("two words").String())
	assert.Equal(t, `""`, Symbol("").String())
	assert.Equal(t, `"1"`, Str("1").String())
	assert.Equal(t, `"a\\b"`, Str(`a\b`).String())
}

func TestWriteShortListOnOneLine(t *testing.T) {
	l := NewList("at", Symbol("1"), Symbol("2"))
	assert.Equal(t, "(at 1 2)\n", Format(l))
}

func TestWriteBreaksLongLists(t *testing.T) {
	fp := NewList("footprint", Str("X"))
	for i := 0; i < 6; i++ {
		fp.Add(NewList("fp_line", NewList("start", Symbol("0"), Symbol("0")),
			NewList("end", Symbol("1"), Symbol("1"))))
	}
	out := Format(fp)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, `(footprint "X"`, lines[0])
	assert.Equal(t, "  (fp_line (start 0 0) (end 1 1))", lines[1])
	assert.Equal(t, ")", lines[7])

	// the output reads back to the same tree
	exprs, err := ParseString(out)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, fp.String(), exprs[0].String())
}

func TestParseBuildsTree(t *testing.T) {
	exprs, err := ParseString(`(fp_line (start 0 -1) (end 2.5 -1) (layer "F.SilkS"))`)
	require.NoError(t, err)

	want := []Sexp{
		NewList("fp_line",
			NewList("start", Symbol("0"), Symbol("-1")),
			NewList("end", Symbol("2.5"), Symbol("-1")),
			NewList("layer", Str("F.SilkS"))),
	}
	if diff := cmp.Diff(want, exprs, cmp.AllowUnexported(List{})); diff != "" {
		t.Errorf("ParseString() mismatch (-want +got):\n%s", diff)
	}
}
