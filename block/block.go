// Package block defines the layout primitives an invoice is composed of.
//
// A composed invoice is an ordered []Block. Blocks carry their own styling
// and are engine-neutral: they hold sizes in points and alignment codes, but
// no font families or engine handles. A document sink turns them into pages.
package block

// Block is one layout primitive. The set is closed: Text, Spacer, Table,
// Image and Barcode.
type Block interface {
	block()
}

// Alignment codes shared by text and table cells.
const (
	AlignLeft    = "L"
	AlignCenter  = "C"
	AlignRight   = "R"
	AlignJustify = "J"
)

// Style is the font and paragraph styling of a text block.
type Style struct {
	FontSize   float64
	Leading    float64 // line height
	Align      string
	Bold       bool
	Italic     bool
	SpaceAfter float64
}

// FontStyle returns the gofpdf style string ("", "B", "I" or "BI").
func (s Style) FontStyle() string {
	return FontStyle(s.Bold, s.Italic)
}

// FontStyle maps bold and italic flags to a gofpdf style string.
func FontStyle(bold, italic bool) string {
	switch {
	case bold && italic:
		return "BI"
	case bold:
		return "B"
	case italic:
		return "I"
	}
	return ""
}

// Text is a wrapped paragraph.
type Text struct {
	Text  string
	Style Style
}

// Spacer is vertical whitespace.
type Spacer struct {
	Height float64
}

// Image is a raster image placed at the left margin.
type Image struct {
	Name   string // registration key, unique per document
	PNG    []byte
	Width  float64
	Height float64
}

// Barcode kinds.
const (
	QR      = "qr"
	Code128 = "code128"
	PDF417  = "pdf417"
)

// Barcode is a machine readable code placed at the left margin.
type Barcode struct {
	Kind    string
	Content string
	Width   float64
	Height  float64
}

// RGB is a color with 0-255 components.
type RGB struct {
	R, G, B int
}

// TableStyle applies to every cell of a table.
type TableStyle struct {
	FontSize       float64
	HeaderFontSize float64
	Leading        float64 // line height inside cells; 0 means 1.4 x font size
	Padding        float64
	GridWidth      float64 // 0 draws no grid
	HeaderFill     *RGB
}

// Cell is one table cell. Span > 1 merges it with the following cells.
type Cell struct {
	Text  string
	Span  int
	Align string // overrides the column alignment when set
}

// Row is one table row.
type Row struct {
	Cells     []Cell
	Bold      bool
	NoGrid    bool // suppresses the grid for this row
	RuleBelow bool // draws a full width rule under the row
}

// Table is a fixed-width table. Header, when present, is repeated at the top
// of every page the table spans.
type Table struct {
	Widths []float64
	Align  []string // per column; empty means left
	Header []Cell
	Rows   []Row
	Style  TableStyle
}

// Width returns the sum of the column widths.
func (t Table) Width() float64 {
	var w float64
	for _, c := range t.Widths {
		w += c
	}
	return w
}

func (Text) block()    {}
func (Spacer) block()  {}
func (Table) block()   {}
func (Image) block()   {}
func (Barcode) block() {}

// Cells is a shorthand for a row of single-span cells.
func Cells(texts ...string) []Cell {
	cells := make([]Cell, len(texts))
	for i, t := range texts {
		cells[i] = Cell{Text: t}
	}
	return cells
}
