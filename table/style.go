// Package table draws fixed-width tables onto a gofpdf document.
//
// It supports header rows repeated after page breaks, per-row grid control,
// colspan, bold rows and a rule drawn under a row, which is what invoice
// sections need.
package table

// RGBColor represents an RGB color value.
type RGBColor struct {
	R, G, B int
}

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of cell borders. A zero Width disables
// the grid.
type BorderStyle struct {
	Width float64
	Color RGBColor
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor *RGBColor
	Font      *FontSpec
	Align     string // "L", "C", "R", "J"
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Border      *BorderStyle
	HeaderStyle *CellStyle
	CellPadding Padding
	CellFont    *FontSpec
	// LineHeight is the height of one wrapped text line. Zero means 1.4
	// times the cell font size.
	LineHeight float64
}
