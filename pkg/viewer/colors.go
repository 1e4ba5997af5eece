package viewer

import (
	"image/color"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/layer"
)

var (
	ColorBackground = color.NRGBA{R: 0, G: 16, B: 35, A: 255}    // dark blue
	ColorCopper     = color.NRGBA{R: 200, G: 52, B: 52, A: 255}  // F.Cu red
	ColorPaste      = color.NRGBA{R: 180, G: 160, B: 154, A: 230}
	ColorMask       = color.NRGBA{R: 216, G: 100, B: 255, A: 160}
	ColorBare       = color.NRGBA{R: 227, G: 183, B: 46, A: 255} // gold, copper without paste
	ColorHole       = color.NRGBA{R: 236, G: 236, B: 236, A: 255}
	ColorSilk       = color.NRGBA{R: 242, G: 237, B: 161, A: 255} // F.SilkS yellow
	ColorVec        = color.NRGBA{R: 38, G: 233, B: 255, A: 255}
	ColorFrame      = color.NRGBA{R: 255, G: 38, B: 226, A: 255}
	ColorMeas       = color.NRGBA{R: 127, G: 200, B: 127, A: 255}
	ColorSelected   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// PadColor returns the fill color of a pad of type t.
func PadColor(t layer.PadType) color.NRGBA {
	switch t {
	case layer.Bare:
		return ColorBare
	case layer.PasteOnly:
		return ColorPaste
	case layer.MaskOnly:
		return ColorMask
	}
	return ColorCopper
}

// Dim returns c faded for instances outside the active combination.
func Dim(c color.NRGBA) color.NRGBA {
	c.A /= 3
	return c
}
