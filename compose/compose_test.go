package compose

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/invoicepdf"
	"github.com/lvillar/invoicepdf/block"
	"github.com/lvillar/invoicepdf/config"
	"github.com/lvillar/invoicepdf/lineitem"
	"github.com/lvillar/invoicepdf/logo"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testConfig() *config.Render {
	ps := func(size, leading float64, align string) config.ParagraphStyle {
		return config.ParagraphStyle{FontSize: size, Leading: leading, Alignment: align}
	}
	return &config.Render{
		Fonts:    config.Fonts{Family: "Helvetica", Builtin: true},
		PageSize: "Letter",
		Margins:  config.Margins{Top: 30, Right: 30, Bottom: 30, Left: 30},
		Styles: config.Styles{
			Body:           ps(10, 14, "left"),
			CompanyName:    ps(16, 20, "left"),
			InvoiceTitle:   config.ParagraphStyle{FontSize: 24, Leading: 30, Alignment: "center", Bold: true, SpaceAfter: 20},
			SectionHeading: config.ParagraphStyle{FontSize: 12, Leading: 16, Alignment: "left", Bold: true},
		},
		Spacing: config.Spacing{AfterCompany: 20, AfterMetadata: 20, AfterSection: 20, BeforeTerms: 30},
		Table: config.Table{
			Width:          520,
			Columns:        config.Columns{Date: 0.15, Description: 0.45, Quantity: 0.12, Rate: 0.14, Amount: 0.14},
			GridWidth:      0.25,
			Padding:        6,
			FontSize:       10,
			HeaderFontSize: 10,
			HeaderFill:     &config.RGB{R: 211, G: 211, B: 211},
		},
		Metadata:       config.MetadataTable{LabelWidth: 100, ValueWidth: 400, Padding: 3},
		Logo:           config.LogoBox{MaxWidth: 216, MaxHeight: 72, MaxPixels: 1200},
		CurrencySymbol: "$",
	}
}

func acme() *invoicepdf.CompanyProfile {
	return &invoicepdf.CompanyProfile{
		Name:    "Acme",
		Address: "1 Main Street",
		Email:   "billing@acme.test",
		TaxID:   "123456789",
		Terms:   []string{"Net 30"},
	}
}

func acmeInvoice() *invoicepdf.Invoice {
	return &invoicepdf.Invoice{
		Number:        "INV-2025-003",
		Date:          "February 1, 2025",
		DueDate:       "None (paid in full)",
		ClientName:    "Client who needs boxes folded",
		ClientAddress: "Client address",
		Items: []invoicepdf.LineItem{
			{Date: "January 29, 2025", Description: "Consultation", Hours: dec("8"), Rate: dec("70.0")},
			{Date: "January 26, 2025", Description: "Starting Bonus", Amount: dec("1000.0")},
		},
	}
}

func texts(blocks []block.Block) []string {
	var out []string
	for _, b := range blocks {
		if t, ok := b.(block.Text); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

func tables(blocks []block.Block) []block.Table {
	var out []block.Table
	for _, b := range blocks {
		if t, ok := b.(block.Table); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestComposeAcme(t *testing.T) {
	res, err := Compose(acme(), acmeInvoice(), testConfig(), Assets{})
	require.NoError(t, err)

	assert.Equal(t, "560.00", res.Services.StringFixed(2))
	assert.True(t, res.Products.IsZero())
	assert.Equal(t, "1000.00", res.FlatCharges.StringFixed(2))
	assert.Equal(t, "1560.00", res.Total.StringFixed(2))
	assert.Empty(t, res.Unclassified)

	got := texts(res.Blocks)
	assert.Equal(t, []string{
		"Acme",
		"1 Main Street",
		"Email: billing@acme.test",
		"EIN: **-**6789",
		"INVOICE",
		"Services",
		"Flat Charges",
		"Terms and Conditions",
		"• Net 30",
	}, got)

	_, isImage := res.Blocks[0].(block.Image)
	assert.False(t, isImage, "no logo asset, no logo block")

	tbs := tables(res.Blocks)
	require.Len(t, tbs, 4, "metadata, services, flat charges, grand total")

	meta := tbs[0]
	assert.Equal(t, []float64{100, 400}, meta.Widths)
	assert.Equal(t, block.Cells("Due Date:", "None (paid in full)"), meta.Rows[2].Cells)
	assert.Equal(t, block.Cells("", "Client address"), meta.Rows[4].Cells)

	services := tbs[1]
	assert.Equal(t, block.Cells("Date", "Description", "Hours", "Rate", "Amount"), services.Header)
	assert.Equal(t, block.Cells("January 29, 2025", "Consultation", "8", "$70.00", "$560.00"), services.Rows[0].Cells)
	subtotal := services.Rows[len(services.Rows)-1]
	assert.Equal(t, "Services Subtotal:", subtotal.Cells[0].Text)
	assert.Equal(t, 4, subtotal.Cells[0].Span)
	assert.Equal(t, "$560.00", subtotal.Cells[1].Text)
	assert.True(t, subtotal.NoGrid)

	total := tbs[3]
	require.Len(t, total.Rows, 1)
	assert.Equal(t, block.Cells("TOTAL DUE:", "$1,560.00"), total.Rows[0].Cells)
	assert.True(t, total.Rows[0].Bold)
	assert.True(t, total.Rows[0].RuleBelow)
	assert.InDelta(t, 520.0, total.Width(), 1e-9)
}

func TestFlatChargesCollapseColumns(t *testing.T) {
	cfg := testConfig()
	items := []lineitem.Item{lineitem.Classify(0, invoicepdf.LineItem{Date: "d", Description: "Bonus", Amount: dec("1234567.5")})}

	blocks, subtotal := BuildSection(FlatCharges, items, cfg)
	require.Len(t, blocks, 3)
	assert.Equal(t, "1234567.5", subtotal.String())

	tb := blocks[1].(block.Table)
	require.Len(t, tb.Widths, 3)
	assert.InDelta(t, cfg.Table.Width, tb.Width(), 1e-9, "total width is invariant")
	assert.InDelta(t, 520*(0.45+0.12+0.14), tb.Widths[1], 1e-9)
	assert.Equal(t, block.Cells("Date", "Description", "Amount"), tb.Header)
	assert.Equal(t, block.Cells("d", "Bonus", "$1,234,567.50"), tb.Rows[0].Cells)

	sub := tb.Rows[1]
	assert.Equal(t, "Flat Charges Subtotal:", sub.Cells[0].Text)
	assert.Equal(t, 2, sub.Cells[0].Span)

	assert.Equal(t, block.Spacer{Height: 20}, blocks[2])
}

func TestProductsSection(t *testing.T) {
	items := []lineitem.Item{
		lineitem.Classify(0, invoicepdf.LineItem{Description: "Boxes", Quantity: dec("3"), UnitPrice: dec("2.5")}),
		lineitem.Classify(1, invoicepdf.LineItem{Description: "Tape", Quantity: dec("1.5"), UnitPrice: dec("4")}),
	}
	blocks, subtotal := BuildSection(Products, items, testConfig())
	assert.Equal(t, "13.50", subtotal.StringFixed(2))

	tb := blocks[1].(block.Table)
	assert.Equal(t, "Qty", tb.Header[2].Text)
	assert.Equal(t, "Unit Price", tb.Header[3].Text)
	assert.Equal(t, "1.5", tb.Rows[1].Cells[2].Text)
	assert.Len(t, tb.Rows, 3)
}

func TestEmptySectionEmitsNothing(t *testing.T) {
	blocks, subtotal := BuildSection(Products, nil, testConfig())
	assert.Nil(t, blocks)
	assert.True(t, subtotal.IsZero())

	res, err := Compose(acme(), acmeInvoice(), testConfig(), Assets{})
	require.NoError(t, err)
	assert.NotContains(t, texts(res.Blocks), "Products")
}

func TestTotalIndependentOfOrder(t *testing.T) {
	inv := acmeInvoice()
	inv.Items = append(inv.Items, invoicepdf.LineItem{Description: "Boxes", Quantity: dec("3"), UnitPrice: dec("2.5")})
	first, err := Compose(acme(), inv, testConfig(), Assets{})
	require.NoError(t, err)

	items := inv.Items
	inv.Items = []invoicepdf.LineItem{items[2], items[0], items[1]}
	second, err := Compose(acme(), inv, testConfig(), Assets{})
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, "1567.50", second.Total.StringFixed(2))
	assert.True(t, second.Total.Equal(second.Services.Add(second.Products).Add(second.FlatCharges)))
}

func TestShapelessItemExcluded(t *testing.T) {
	inv := acmeInvoice()
	inv.Items = append(inv.Items, invoicepdf.LineItem{Date: "x", Description: "mystery"})

	res, err := Compose(acme(), inv, testConfig(), Assets{})
	require.NoError(t, err)
	assert.Equal(t, "1560.00", res.Total.StringFixed(2))
	require.Len(t, res.Unclassified, 1)
	assert.Equal(t, 2, res.Unclassified[0].Index)

	for _, tb := range tables(res.Blocks) {
		for _, r := range tb.Rows {
			for _, c := range r.Cells {
				assert.NotEqual(t, "mystery", c.Text)
			}
		}
	}
}

func TestStrictRejectsShapelessItem(t *testing.T) {
	inv := acmeInvoice()
	inv.Items = append(inv.Items, invoicepdf.LineItem{Description: "mystery"})

	_, err := Compose(acme(), inv, testConfig(), Assets{}, Strict())
	require.Error(t, err)
	assert.True(t, errors.Is(err, invoicepdf.ErrUnclassifiedItem))

	var malformed *invoicepdf.MalformedLineItemError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Index)
}

func TestPaymentLines(t *testing.T) {
	inv := acmeInvoice()
	inv.PaymentDate = "Feb 1, 2025"
	inv.PaymentDates = []string{"Feb 1, 2025: $480"}

	res, err := Compose(acme(), inv, testConfig(), Assets{})
	require.NoError(t, err)
	for _, s := range texts(res.Blocks) {
		assert.NotContains(t, s, "Payment", "payment lines need a status")
	}

	inv.PaymentStatus = "Paid in Full"
	res, err = Compose(acme(), inv, testConfig(), Assets{})
	require.NoError(t, err)
	got := texts(res.Blocks)
	assert.Contains(t, got, "Payment Status: Paid in Full")
	assert.Contains(t, got, "Payment Date: Feb 1, 2025")
	assert.Contains(t, got, "Payment Received: Feb 1, 2025: $480")
}

func TestLogoBlockScaled(t *testing.T) {
	img := &logo.Image{PNG: []byte("png"), Width: 864, Height: 144}
	res, err := Compose(acme(), acmeInvoice(), testConfig(), Assets{Logo: img})
	require.NoError(t, err)

	lb, ok := res.Blocks[0].(block.Image)
	require.True(t, ok)
	assert.InDelta(t, 216.0, lb.Width, 1e-9)
	assert.InDelta(t, 36.0, lb.Height, 1e-9)
}

func TestPaymentCode(t *testing.T) {
	cfg := testConfig()
	cfg.PaymentCode = &config.PaymentCode{Kind: "code128", Size: 40}

	res, err := Compose(acme(), acmeInvoice(), cfg, Assets{})
	require.NoError(t, err)

	var codes []block.Barcode
	for _, b := range res.Blocks {
		if bc, ok := b.(block.Barcode); ok {
			codes = append(codes, bc)
		}
	}
	require.Len(t, codes, 1)
	assert.Equal(t, block.Barcode{Kind: "code128", Content: "INV-2025-003 1560.00", Width: 120, Height: 40}, codes[0])
}

func TestNoTermsNoHeading(t *testing.T) {
	company := acme()
	company.Terms = nil
	res, err := Compose(company, acmeInvoice(), testConfig(), Assets{})
	require.NoError(t, err)
	assert.NotContains(t, texts(res.Blocks), "Terms and Conditions")
}

func TestMaskTaxID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"123456789", "**-**6789"},
		{"12-3456789", "**-***6789"},
		{"1234567", "**-4567"},
		{"12345", "**-2345"},
		{"1234", "**-1234"},
	}
	for _, tt := range tests {
		got := MaskTaxID(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in[len(tt.in)-4:], got[len(got)-4:])
		if len(tt.in) > 4 {
			assert.NotContains(t, got[:len(got)-4], tt.in[:len(tt.in)-4])
		}
	}
}
