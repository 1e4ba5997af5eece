package cmd

import (
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/fpd"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/inst"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/viewer"
)

func newViewState(t *testing.T) *viewState {
	t.Helper()
	p, err := fpd.NewParser()
	require.NoError(t, err)
	doc, err := p.ParseString("sot23.fpd", sot23)
	require.NoError(t, err)

	st := &viewState{
		session:  inst.NewSession(inst.NewEngine(), doc),
		camera:   viewer.NewCamera(1000, 800),
		renderer: viewer.NewRenderer(viewer.Options{}),
		log:      zap.NewNop(),
	}
	require.NoError(t, st.session.Instantiate())
	st.camera.UpdateScreenSize(1000, 800)
	st.fit()
	return st
}

// drawFrame runs one viewer frame and hands its ops to the router.
func drawFrame(t *testing.T, st *viewState, r *input.Router, ops *op.Ops) {
	t.Helper()
	ops.Reset()
	gtx := layout.Context{
		Ops:         ops,
		Constraints: layout.Exact(image.Pt(1000, 800)),
		Source:      r.Source(),
	}
	require.False(t, st.frame(gtx))
	r.Frame(ops)
}

func TestViewerClickActivatesInactiveRow(t *testing.T) {
	st := newViewState(t)
	table := st.session.Document().Root().Tables[0]
	require.Equal(t, 0, table.ActiveRow)

	var r input.Router
	var ops op.Ops
	drawFrame(t, st, &r, &ops)

	// inside the first pad of row B only
	x, y := st.camera.ToScreen(coord.Pt(0, 15800))
	r.Queue(pointer.Event{
		Kind:     pointer.Press,
		Source:   pointer.Mouse,
		Buttons:  pointer.ButtonPrimary,
		Position: f32.Pt(float32(x), float32(y)),
	})
	drawFrame(t, st, &r, &ops)

	assert.Equal(t, 1, table.ActiveRow)
	require.NotNil(t, st.selected)
	assert.True(t, st.selected.Active)
	assert.Equal(t, "1", st.selected.Shape.(*inst.PadShape).Name)
}

func TestViewerScrollZooms(t *testing.T) {
	st := newViewState(t)
	var r input.Router
	var ops op.Ops
	drawFrame(t, st, &r, &ops)

	zoom := st.camera.Zoom
	r.Queue(pointer.Event{
		Kind:     pointer.Scroll,
		Source:   pointer.Mouse,
		Position: f32.Pt(500, 400),
		Scroll:   f32.Pt(0, -50),
	})
	drawFrame(t, st, &r, &ops)

	assert.Greater(t, st.camera.Zoom, zoom)
}
