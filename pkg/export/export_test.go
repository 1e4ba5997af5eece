package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/expr"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/model"
)

func TestMM(t *testing.T) {
	tests := []struct {
		units float64
		want  string
	}{
		{10000, "1"},
		{-12700, "-1.27"},
		{254, "0.0254"},
		{-0.000001, "0"},
		{1.0 / 3, "0.000033"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MM(tt.units), "MM(%v)", tt.units)
	}
}

func TestSweep(t *testing.T) {
	assert.Equal(t, 90.0, Sweep(0, 90))
	assert.Equal(t, 270.0, Sweep(90, 0))
	assert.Equal(t, 360.0, Sweep(45, 45))
	assert.Equal(t, 20.0, Sweep(350, 10))
}

func TestArcPoint(t *testing.T) {
	p := ArcPoint(coord.Pt(1, 1), 2, 90)
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 3, p.Y, 1e-9)
}

func TestPackages(t *testing.T) {
	doc := model.New()
	doc.PkgName = "${name}"
	root := doc.Root()
	tbl, err := doc.AddTable(root, "name")
	require.NoError(t, err)
	for _, n := range []string{"A", "B"} {
		_, err := doc.AddRow(tbl, expr.Str(n))
		require.NoError(t, err)
	}
	res, err := inst.NewEngine().Instantiate(doc)
	require.NoError(t, err)

	all, err := Packages(res, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := Packages(res, "B")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "B", one[0].Name)

	_, err = Packages(res, "C")
	assert.ErrorIs(t, err, ErrNoPackage)
}
