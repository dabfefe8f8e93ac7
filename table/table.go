package table

import (
	"github.com/jung-kurt/gofpdf"
)

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width float64
	Align string // default alignment for this column ("L", "C", "R")
}

// Table is a fixed-width table builder.
type Table struct {
	pdf     *gofpdf.Fpdf
	columns []ColumnDef
	rows    []*Row
	style   TableStyle
	tr      func(string) string
	utf8    bool
}

// New creates a new Table associated with the given PDF document.
func New(pdf *gofpdf.Fpdf) *Table {
	return &Table{
		pdf: pdf,
		style: TableStyle{
			CellPadding: UniformPadding(1),
		},
		tr: func(s string) string { return s },
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths is a convenience method to set column widths directly.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetTranslator sets the function applied to cell text before it is measured
// and drawn, e.g. the cp1252 translator for core fonts.
func (t *Table) SetTranslator(tr func(string) string) *Table {
	if tr != nil {
		t.tr = tr
	}
	return t
}

// SetUTF8 selects rune based line splitting, required when the cell fonts
// were added with AddUTF8Font.
func (t *Table) SetUTF8(on bool) *Table {
	t.utf8 = on
	return t
}

// Width returns the total table width.
func (t *Table) Width() float64 {
	var w float64
	for _, c := range t.columns {
		w += c.Width
	}
	return w
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining. Header rows
// are drawn first and repeated at the top of each new page.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	return r
}

// Render draws the table at the current cursor position, leaving the cursor
// at the left edge under the last row.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}
	if len(t.columns) == 0 || len(t.rows) == 0 {
		return nil
	}

	// Rows are kept whole; page breaks are decided here, not by gofpdf.
	auto, breakMargin := t.pdf.GetAutoPageBreak()
	t.pdf.SetAutoPageBreak(false, breakMargin)
	defer t.pdf.SetAutoPageBreak(auto, breakMargin)

	cellMargin := t.pdf.GetCellMargin()
	t.pdf.SetCellMargin(0)
	defer t.pdf.SetCellMargin(cellMargin)

	startX := t.pdf.GetX()

	var headerRows, bodyRows []*Row
	for _, r := range t.rows {
		if r.isHeader {
			headerRows = append(headerRows, r)
		} else {
			bodyRows = append(bodyRows, r)
		}
	}

	headerH := 0.0
	for _, r := range headerRows {
		headerH += t.rowHeight(r)
	}

	// Keep the header together with the first body row.
	firstH := headerH
	if len(bodyRows) > 0 {
		firstH += t.rowHeight(bodyRows[0])
	}
	if t.overflows(firstH) {
		t.pdf.AddPage()
		t.pdf.SetX(startX)
	}

	for _, r := range headerRows {
		t.renderRow(r, startX)
	}

	for _, r := range bodyRows {
		if t.overflows(t.rowHeight(r)) {
			t.pdf.AddPage()
			for _, hr := range headerRows {
				t.renderRow(hr, startX)
			}
		}
		t.renderRow(r, startX)
	}

	return t.pdf.Error()
}

// overflows reports whether h no longer fits on the current page. A row that
// would not fit on an empty page either is drawn anyway.
func (t *Table) overflows(h float64) bool {
	_, pageH := t.pdf.GetPageSize()
	_, top, _, bottom := t.pdf.GetMargins()
	y := t.pdf.GetY()
	return y+h > pageH-bottom && y > top+1e-6
}

func (t *Table) lineHeight(font *FontSpec) float64 {
	if t.style.LineHeight > 0 {
		return t.style.LineHeight
	}
	size := 10.0
	if font != nil && font.Size > 0 {
		size = font.Size
	}
	return size * 1.4
}

func (t *Table) cellWidth(i int, cell *Cell) float64 {
	w := t.columns[i].Width
	for j := 1; j < cell.colspan && i+j < len(t.columns); j++ {
		w += t.columns[i+j].Width
	}
	return w
}

func (t *Table) applyFont(font *FontSpec) {
	if font != nil {
		t.pdf.SetFont(font.Family, font.Style, font.Size)
	}
}

// rowHeight computes the height needed for a row based on cell content.
func (t *Table) rowHeight(r *Row) float64 {
	padding := t.style.CellPadding
	var maxH float64

	for i, col := 0, 0; i < len(r.cells) && col < len(t.columns); i++ {
		cell := r.cells[i]
		style := t.resolveCellStyle(cell, r)
		t.applyFont(style.Font)

		contentW := t.cellWidth(col, cell) - padding.Left - padding.Right
		if contentW < 1 {
			contentW = 1
		}
		lines := t.lineCount(cell.text, contentW)
		if lines < 1 {
			lines = 1
		}
		h := float64(lines)*t.lineHeight(style.Font) + padding.Top + padding.Bottom
		if h > maxH {
			maxH = h
		}
		col += cell.colspan
	}
	return maxH
}

func (t *Table) lineCount(text string, w float64) int {
	if t.utf8 {
		return len(t.pdf.SplitText(text, w))
	}
	return len(t.pdf.SplitLines([]byte(t.tr(text)), w))
}

// renderRow renders a single row to the PDF.
func (t *Table) renderRow(r *Row, startX float64) {
	rowH := t.rowHeight(r)
	padding := t.style.CellPadding
	border := t.style.Border
	grid := border != nil && border.Width > 0 && !r.noGrid

	y := t.pdf.GetY()
	x := startX

	for i, col := 0, 0; i < len(r.cells) && col < len(t.columns); i++ {
		cell := r.cells[i]
		cellW := t.cellWidth(col, cell)
		style := t.resolveCellStyle(cell, r)

		if style.FillColor != nil {
			t.pdf.SetFillColor(style.FillColor.R, style.FillColor.G, style.FillColor.B)
			t.pdf.Rect(x, y, cellW, rowH, "F")
		}
		if grid {
			t.pdf.SetDrawColor(border.Color.R, border.Color.G, border.Color.B)
			t.pdf.SetLineWidth(border.Width)
			t.pdf.Rect(x, y, cellW, rowH, "D")
		}

		t.applyFont(style.Font)

		align := "L"
		if style.Align != "" {
			align = style.Align
		} else if t.columns[col].Align != "" {
			align = t.columns[col].Align
		}

		contentW := cellW - padding.Left - padding.Right
		if contentW < 1 {
			contentW = 1
		}
		t.pdf.SetXY(x+padding.Left, y+padding.Top)
		t.pdf.MultiCell(contentW, t.lineHeight(style.Font), t.tr(cell.text), "", align, false)

		x += cellW
		col += cell.colspan
	}

	if r.ruleBelow {
		w := 0.5
		if border != nil && border.Width > 0 {
			w = border.Width
		}
		t.pdf.SetDrawColor(0, 0, 0)
		t.pdf.SetLineWidth(w)
		t.pdf.Line(startX, y+rowH, startX+t.Width(), y+rowH)
	}

	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetFillColor(0, 0, 0)
	t.pdf.SetTextColor(0, 0, 0)

	t.pdf.SetXY(startX, y+rowH)
}

// resolveCellStyle determines the effective style for a cell by merging
// table, header, row, and cell-level styles.
func (t *Table) resolveCellStyle(cell *Cell, row *Row) CellStyle {
	var result CellStyle

	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}
	if row.isHeader && t.style.HeaderStyle != nil {
		mergeStyle(&result, t.style.HeaderStyle)
	}
	if row.style != nil {
		mergeStyle(&result, row.style)
	}
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}

	return result
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
