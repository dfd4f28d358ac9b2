package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// HUD colours.
var (
	ColorKills    = tcell.NewRGBColor(0xff, 0x00, 0x00)
	ColorGameOver = tcell.NewRGBColor(0xff, 0x75, 0x00)
	ColorLoading  = tcell.ColorGray
	ColorHint     = tcell.ColorSilver
)

// cellColor converts a framebuffer pixel to a terminal colour.
func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
