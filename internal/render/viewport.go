package render

// Viewport maps the 3D view onto terminal cells. The HUD takes the top
// HUDRows rows; every remaining cell shows two vertically stacked pixels
// using the upper half block glyph.
type Viewport struct {
	Cols int
	Rows int // rows available to the scene
}

// HUDRows is the number of terminal rows reserved for the HUD.
const HUDRows = 1

// NewViewport sizes a viewport for a screen of cols×rows cells.
func NewViewport(cols, rows int) Viewport {
	return Viewport{Cols: max(cols, 1), Rows: max(rows-HUDRows, 1)}
}

// PixelSize returns the framebuffer size backing the viewport.
func (v Viewport) PixelSize() (int, int) {
	return v.Cols, v.Rows * 2
}

// CellOf returns the screen cell holding framebuffer pixel (px, py).
func (v Viewport) CellOf(px, py int) (col, row int) {
	return px, py/2 + HUDRows
}
