package viewer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/coord"
)

// Zoom limits in pixels per millimeter.
const (
	MinZoom = 0.5
	MaxZoom = 5000.0
)

// Camera maps footprint coordinates to window pixels. Footprint Y grows
// upwards, screen Y downwards.
type Camera struct {
	// Center position in millimeters
	CenterX float64
	CenterY float64

	// Zoom level (pixels per mm)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera with default settings
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         20.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// ToScreen converts a position in internal units to screen pixels.
func (c *Camera) ToScreen(pos coord.Coord) (float64, float64) {
	x := (coord.UnitsToMM(pos.X, 1)-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2
	y := (coord.UnitsToMM(pos.Y, 1)-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2
	return x, float64(c.ScreenHeight) - y
}

// ToWorld converts screen pixels to a position in internal units.
func (c *Camera) ToWorld(screenX, screenY float64) coord.Coord {
	x := (screenX-float64(c.ScreenWidth)/2)/c.Zoom + c.CenterX
	y := (float64(c.ScreenHeight)-screenY-float64(c.ScreenHeight)/2)/c.Zoom + c.CenterY
	return coord.Pt(coord.MMToUnits(x, 1), coord.MMToUnits(y, 1))
}

// Length converts a length in internal units to pixels.
func (c *Camera) Length(u float64) float64 {
	return coord.UnitsToMM(u, 1) * c.Zoom
}

// PixelSize returns the size of one pixel in internal units.
func (c *Camera) PixelSize() float64 {
	return coord.MMToUnits(1/c.Zoom, 1)
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY += deltaY / c.Zoom
}

// ZoomAt zooms in/out at a specific screen position
// factor > 1 zooms in, factor < 1 zooms out
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
	if c.Zoom > MaxZoom {
		c.Zoom = MaxZoom
	}

	// keep the point under the cursor stationary
	after := c.ToWorld(screenX, screenY)
	c.CenterX += coord.UnitsToMM(before.X-after.X, 1)
	c.CenterY += coord.UnitsToMM(before.Y-after.Y, 1)
}

// Fit centers bbox and zooms so it fills 90% of the screen. An empty box
// leaves the camera alone and a single point is only centered.
func (c *Camera) Fit(bbox coord.BBox) {
	if bbox.IsEmpty() {
		return
	}
	center := bbox.Center()
	c.CenterX = coord.UnitsToMM(center.X, 1)
	c.CenterY = coord.UnitsToMM(center.Y, 1)

	// a line along one axis only constrains the other
	zoom := math.Inf(1)
	if w := coord.UnitsToMM(bbox.Width(), 1); w > 0 {
		zoom = float64(c.ScreenWidth) * 0.9 / w
	}
	if h := coord.UnitsToMM(bbox.Height(), 1); h > 0 {
		zoom = math.Min(zoom, float64(c.ScreenHeight)*0.9/h)
	}
	if !math.IsInf(zoom, 1) {
		c.Zoom = math.Max(MinZoom, math.Min(zoom, MaxZoom))
	}
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}
