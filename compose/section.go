package compose

import (
	"github.com/shopspring/decimal"

	"github.com/lvillar/invoicepdf/block"
	"github.com/lvillar/invoicepdf/config"
	"github.com/lvillar/invoicepdf/lineitem"
	"github.com/lvillar/invoicepdf/money"
)

// Category names a line item section and its numeric column labels. A
// category without Units and Price labels is laid out with three columns.
type Category struct {
	Name  string
	Units string
	Price string
}

var (
	Services    = Category{Name: "Services", Units: "Hours", Price: "Rate"}
	Products    = Category{Name: "Products", Units: "Qty", Price: "Unit Price"}
	FlatCharges = Category{Name: "Flat Charges"}
)

func (c Category) collapsed() bool {
	return c.Units == "" && c.Price == ""
}

// BuildSection lays out one category: a heading, a table with one row per
// item and a subtotal row, then the section spacer. It returns the subtotal.
// An empty item list yields no blocks and a zero subtotal.
func BuildSection(cat Category, items []lineitem.Item, cfg *config.Render) ([]block.Block, decimal.Decimal) {
	subtotal := lineitem.Total(items)
	if len(items) == 0 {
		return nil, subtotal
	}

	sym := cfg.CurrencySymbol
	w := cfg.Table.Widths()
	tb := block.Table{Style: tableStyle(cfg)}

	if cat.collapsed() {
		// Description absorbs the two numeric columns so the table keeps
		// its width.
		tb.Widths = []float64{w[0], w[1] + w[2] + w[3], w[4]}
		tb.Align = []string{block.AlignLeft, block.AlignLeft, block.AlignRight}
		tb.Header = block.Cells("Date", "Description", "Amount")
		for _, it := range items {
			tb.Rows = append(tb.Rows, block.Row{
				Cells: block.Cells(it.Date, it.Description, money.Format(sym, it.Amount())),
			})
		}
	} else {
		tb.Widths = w[:]
		tb.Align = []string{block.AlignLeft, block.AlignLeft, block.AlignRight, block.AlignRight, block.AlignRight}
		tb.Header = block.Cells("Date", "Description", cat.Units, cat.Price, "Amount")
		for _, it := range items {
			tb.Rows = append(tb.Rows, block.Row{
				Cells: block.Cells(
					it.Date,
					it.Description,
					money.Quantity(it.Units),
					money.Format(sym, it.Price),
					money.Format(sym, it.Amount()),
				),
			})
		}
	}

	tb.Rows = append(tb.Rows, block.Row{
		Cells: []block.Cell{
			{Text: cat.Name + " Subtotal:", Span: len(tb.Widths) - 1, Align: block.AlignRight},
			{Text: money.Format(sym, subtotal)},
		},
		NoGrid: true,
	})

	return []block.Block{
		block.Text{Text: cat.Name, Style: style(cfg.Styles.SectionHeading)},
		tb,
		block.Spacer{Height: cfg.Spacing.AfterSection},
	}, subtotal
}

func tableStyle(cfg *config.Render) block.TableStyle {
	t := cfg.Table
	st := block.TableStyle{
		FontSize:       t.FontSize,
		HeaderFontSize: t.HeaderFontSize,
		Leading:        cfg.Styles.Body.Leading,
		Padding:        t.Padding,
		GridWidth:      t.GridWidth,
	}
	if t.HeaderFill != nil {
		st.HeaderFill = &block.RGB{R: t.HeaderFill.R, G: t.HeaderFill.G, B: t.HeaderFill.B}
	}
	return st
}

func style(s config.ParagraphStyle) block.Style {
	return block.Style{
		FontSize:   s.FontSize,
		Leading:    s.Leading,
		Align:      s.Align(),
		Bold:       s.Bold,
		Italic:     s.Italic,
		SpaceAfter: s.SpaceAfter,
	}
}
