package table

// Cell represents a single cell in a table row.
type Cell struct {
	text    string
	colspan int
	style   *CellStyle
}

// SetColspan sets the number of columns this cell spans.
func (c *Cell) SetColspan(n int) *Cell {
	if n > 0 {
		c.colspan = n
	}
	return c
}

// SetAlign sets the horizontal alignment for this cell.
func (c *Cell) SetAlign(align string) *Cell {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	c.style.Align = align
	return c
}

// Row represents a single row in a table.
type Row struct {
	cells     []*Cell
	style     *CellStyle
	isHeader  bool
	noGrid    bool
	ruleBelow bool
}

// AddCell adds a text cell to the row and returns the cell for chaining.
func (r *Row) AddCell(text string) *Cell {
	c := &Cell{text: text, colspan: 1}
	r.cells = append(r.cells, c)
	return c
}

// SetStyle sets the style for all cells in this row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// SetGrid turns the table grid on or off for this row only.
func (r *Row) SetGrid(on bool) *Row {
	r.noGrid = !on
	return r
}

// SetRuleBelow draws a horizontal rule across the full table width under
// the row.
func (r *Row) SetRuleBelow(on bool) *Row {
	r.ruleBelow = on
	return r
}
