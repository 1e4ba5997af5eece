package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
)

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(800, 600)
	c.CenterX, c.CenterY = 1.5, -2

	tests := []coord.Coord{
		coord.Pt(0, 0),
		coord.Pt(15000, -20000),
		coord.Pt(-123456, 98765),
	}
	for _, p := range tests {
		x, y := c.ToScreen(p)
		back := c.ToWorld(x, y)
		assert.InDelta(t, p.X, back.X, 1e-6)
		assert.InDelta(t, p.Y, back.Y, 1e-6)
	}

	// the center maps to the middle of the screen, Y grows upwards
	x, y := c.ToScreen(coord.Pt(15000, -20000))
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	_, above := c.ToScreen(coord.Pt(15000, -10000))
	assert.Less(t, above, y)
}

func TestCameraFit(t *testing.T) {
	c := NewCamera(1000, 500)
	c.Fit(coord.Box(coord.Pt(-10000, -10000), coord.Pt(30000, 10000)))
	assert.InDelta(t, 1, c.CenterX, 1e-9)
	assert.InDelta(t, 0, c.CenterY, 1e-9)
	// 4mm wide needs 225 px/mm, 2mm high 225 px/mm
	assert.InDelta(t, 225, c.Zoom, 1e-9)

	c.Fit(coord.Box(coord.Pt(0, 0), coord.Pt(10000, 0)))
	assert.InDelta(t, 900, c.Zoom, 1e-9)
	assert.InDelta(t, 0.5, c.CenterX, 1e-9)

	zoom := c.Zoom
	c.Fit(coord.EmptyBox())
	assert.Equal(t, zoom, c.Zoom)
}

func TestCameraZoomAtKeepsCursor(t *testing.T) {
	c := NewCamera(800, 600)
	before := c.ToWorld(100, 50)
	c.ZoomAt(100, 50, 2)
	after := c.ToWorld(100, 50)
	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)
	assert.InDelta(t, 40, c.Zoom, 1e-9)

	c.ZoomAt(0, 0, 1e9)
	assert.Equal(t, MaxZoom, c.Zoom)
}

func TestPixelSize(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 10
	assert.InDelta(t, 1000, c.PixelSize(), 1e-9)
	assert.InDelta(t, 10, c.Length(10000), 1e-9)
}

func TestPan(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom = 10
	c.Pan(20, 10)
	assert.InDelta(t, -2, c.CenterX, 1e-9)
	assert.InDelta(t, 1, c.CenterY, 1e-9)
}

func TestColors(t *testing.T) {
	assert.Equal(t, ColorCopper, PadColor(layer.Normal))
	assert.Equal(t, ColorPaste, PadColor(layer.PasteOnly))
	assert.Equal(t, uint8(255/3), Dim(ColorCopper).A)
}
