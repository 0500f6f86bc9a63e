// Package parser reads chart parts and data ranges out of xlsx workbooks.
package parser

// EMUPerPixel is the drawing unit scale at 96 DPI (914400 EMU per inch).
const EMUPerPixel = 9525

// Cell sizes assumed when a chart is placed by cell markers only.
const (
	DefaultColumnWidthPx = 64
	DefaultRowHeightPx   = 20
)

// EMUToPixels converts a drawing offset to pixels.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// cellMarker is an xdr:from or xdr:to anchor point: a zero-based cell plus
// an EMU offset inside it.
type cellMarker struct {
	col, row       int
	colOff, rowOff int64
}

// pixels approximates the marker position with default cell sizes. Custom
// column widths and row heights are not taken into account.
func (m cellMarker) pixels() (x, y int) {
	return m.col*DefaultColumnWidthPx + EMUToPixels(m.colOff),
		m.row*DefaultRowHeightPx + EMUToPixels(m.rowOff)
}
