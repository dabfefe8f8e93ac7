package table_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/invoicepdf/table"
)

func newTestPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(30, 30, 30)
	pdf.SetAutoPageBreak(true, 30)
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()
	return pdf
}

func output(t *testing.T, pdf *gofpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}
	return buf.Bytes()
}

func TestBasicTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(78, 234, 62.4, 72.8, 72.8)

	h := tb.AddHeaderRow()
	h.AddCell("Date")
	h.AddCell("Description")
	h.AddCell("Hours")
	h.AddCell("Rate")
	h.AddCell("Amount")

	r := tb.AddRow()
	r.AddCell("January 29, 2025")
	r.AddCell("Initial box-folding consultation call.")
	r.AddCell("8").SetAlign("R")
	r.AddCell("$70.00").SetAlign("R")
	r.AddCell("$560.00").SetAlign("R")

	startY := pdf.GetY()
	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if pdf.GetY() <= startY {
		t.Errorf("cursor did not advance: %v <= %v", pdf.GetY(), startY)
	}
	if x := pdf.GetX(); x != 30 {
		t.Errorf("cursor x = %v, want left margin", x)
	}
	output(t, pdf)
}

func TestTableWidth(t *testing.T) {
	tb := table.New(newTestPDF())
	tb.SetColumns(
		table.ColumnDef{Width: 78},
		table.ColumnDef{Width: 370.2},
		table.ColumnDef{Width: 72.8, Align: "R"},
	)
	if w := tb.Width(); math.Abs(w-521) > 1e-9 {
		t.Errorf("width = %v, want 521", w)
	}
}

func TestWrappedCellGrowsRow(t *testing.T) {
	short := newTestPDF()
	tb := table.New(short)
	tb.SetColumnWidths(100, 100)
	tb.AddRow().AddCell("one line")
	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	long := newTestPDF()
	tb = table.New(long)
	tb.SetColumnWidths(100, 100)
	tb.AddRow().AddCell("a description long enough to wrap onto several lines of the cell")
	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	if long.GetY() <= short.GetY() {
		t.Errorf("wrapped row height %v not greater than single line %v", long.GetY(), short.GetY())
	}
}

func TestHeaderRepeatsOnPageBreak(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(180, 180, 180)
	tb.SetStyle(table.TableStyle{
		Border:      &table.BorderStyle{Width: 0.25},
		CellPadding: table.UniformPadding(6),
		HeaderStyle: &table.CellStyle{
			FillColor: &table.RGBColor{R: 211, G: 211, B: 211},
			Font:      &table.FontSpec{Family: "Helvetica", Style: "B", Size: 10},
		},
	})

	h := tb.AddHeaderRow()
	h.AddCell("ID")
	h.AddCell("Name")
	h.AddCell("Value")

	for i := 0; i < 80; i++ {
		r := tb.AddRow()
		r.AddCell(fmt.Sprintf("%d", i+1))
		r.AddCell(fmt.Sprintf("Item %d", i+1))
		r.AddCell(fmt.Sprintf("$%.2f", float64(i+1)*1.5))
	}

	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if pdf.PageNo() < 2 {
		t.Errorf("expected at least 2 pages with 80 rows, got %d", pdf.PageNo())
	}

	_, pageH := pdf.GetPageSize()
	if y := pdf.GetY(); y > pageH-30 {
		t.Errorf("last row ends at %v, below the bottom margin", y)
	}
	output(t, pdf)
}

func TestColspan(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(78, 234, 62.4, 72.8, 72.8)

	r1 := tb.AddRow()
	r1.AddCell("Services Subtotal:").SetColspan(4).SetAlign("R")
	r1.AddCell("$560.00").SetAlign("R")

	r2 := tb.AddRow()
	for _, s := range []string{"A", "B", "C", "D", "E"} {
		r2.AddCell(s)
	}

	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	output(t, pdf)
}

func TestRowWithoutGridAndRule(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(400, 120)
	tb.SetStyle(table.TableStyle{
		Border:   &table.BorderStyle{Width: 0.25},
		CellFont: &table.FontSpec{Family: "Helvetica", Size: 10},
	})
	tb.AddRow().
		SetGrid(false).
		SetRuleBelow(true).
		SetStyle(table.CellStyle{Font: &table.FontSpec{Family: "Helvetica", Style: "B", Size: 10}}).
		AddCell("TOTAL DUE:").SetAlign("R")

	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	output(t, pdf)
}

func TestTranslatorAppliedToCoreFonts(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(260, 260)
	tb.SetTranslator(pdf.UnicodeTranslatorFromDescriptor(""))
	r := tb.AddRow()
	r.AddCell("€1,000.00")
	r.AddCell("• Net 30")

	if err := tb.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	output(t, pdf)
}

func TestEmptyTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.SetColumnWidths(60, 60)

	y := pdf.GetY()
	if err := tb.Render(); err != nil {
		t.Fatalf("render empty table: %v", err)
	}
	if pdf.GetY() != y {
		t.Error("empty table moved the cursor")
	}
}
