// Package compose turns a company profile and an invoice record into the
// ordered block list of the invoice. It performs no I/O: the logo, when
// there is one, is loaded by the caller and passed in as an asset.
package compose

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lvillar/invoicepdf"
	"github.com/lvillar/invoicepdf/block"
	"github.com/lvillar/invoicepdf/config"
	"github.com/lvillar/invoicepdf/lineitem"
	"github.com/lvillar/invoicepdf/logo"
	"github.com/lvillar/invoicepdf/money"
)

// Assets are resources the composer embeds but does not load.
type Assets struct {
	Logo *logo.Image // nil omits the logo block
}

// Result is a composed invoice.
type Result struct {
	Blocks []block.Block

	Services    decimal.Decimal
	Products    decimal.Decimal
	FlatCharges decimal.Decimal
	Total       decimal.Decimal

	// Unclassified holds the items that matched no shape. They appear in no
	// section and add nothing to the total.
	Unclassified []lineitem.Item
}

// Option configures Compose.
type Option func(*options)

type options struct {
	strict bool
}

// Strict rejects invoices containing unclassified line items instead of
// dropping them.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Compose builds the invoice layout. The only error is a
// *invoicepdf.MalformedLineItemError in strict mode.
func Compose(company *invoicepdf.CompanyProfile, inv *invoicepdf.Invoice, cfg *config.Render, assets Assets, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	groups := lineitem.Partition(inv.Items)
	if o.strict {
		if err := groups.Strict(); err != nil {
			return nil, err
		}
	}

	res := &Result{Unclassified: groups.Unclassified}
	body := style(cfg.Styles.Body)
	add := func(b ...block.Block) { res.Blocks = append(res.Blocks, b...) }

	if assets.Logo != nil {
		w, h := logo.Fit(assets.Logo.Width, assets.Logo.Height, cfg.Logo.MaxWidth, cfg.Logo.MaxHeight)
		add(block.Image{Name: "logo", PNG: assets.Logo.PNG, Width: w, Height: h})
	}

	add(
		block.Text{Text: company.Name, Style: style(cfg.Styles.CompanyName)},
		block.Text{Text: company.Address, Style: body},
		block.Text{Text: "Email: " + company.Email, Style: body},
		block.Text{Text: "EIN: " + MaskTaxID(company.TaxID), Style: body},
		block.Spacer{Height: cfg.Spacing.AfterCompany},
		block.Text{Text: "INVOICE", Style: style(cfg.Styles.InvoiceTitle)},
		metadata(inv, cfg),
		block.Spacer{Height: cfg.Spacing.AfterMetadata},
	)

	var section []block.Block
	section, res.Services = BuildSection(Services, groups.Services, cfg)
	add(section...)
	section, res.Products = BuildSection(Products, groups.Products, cfg)
	add(section...)
	section, res.FlatCharges = BuildSection(FlatCharges, groups.FlatCharges, cfg)
	add(section...)

	res.Total = res.Services.Add(res.Products).Add(res.FlatCharges)
	add(grandTotal(res.Total, cfg))

	if inv.PaymentStatus != "" {
		add(block.Text{Text: "Payment Status: " + inv.PaymentStatus, Style: body})
		if inv.PaymentDate != "" {
			add(block.Text{Text: "Payment Date: " + inv.PaymentDate, Style: body})
		}
		for _, p := range inv.PaymentDates {
			add(block.Text{Text: "Payment Received: " + p, Style: body})
		}
	}

	if pc := cfg.PaymentCode; pc != nil {
		add(block.Spacer{Height: cfg.Spacing.AfterSection}, paymentCode(pc, inv.Number, res.Total))
	}

	if len(company.Terms) > 0 {
		add(
			block.Spacer{Height: cfg.Spacing.BeforeTerms},
			block.Text{Text: "Terms and Conditions", Style: style(cfg.Styles.SectionHeading)},
		)
		for _, term := range company.Terms {
			add(block.Text{Text: "• " + term, Style: body})
		}
	}

	return res, nil
}

func metadata(inv *invoicepdf.Invoice, cfg *config.Render) block.Table {
	m := cfg.Metadata
	return block.Table{
		Widths: []float64{m.LabelWidth, m.ValueWidth},
		Rows: []block.Row{
			{Cells: block.Cells("Invoice Number:", inv.Number)},
			{Cells: block.Cells("Date:", inv.Date)},
			{Cells: block.Cells("Due Date:", inv.DueDate)},
			{Cells: block.Cells("Bill To:", inv.ClientName)},
			{Cells: block.Cells("", inv.ClientAddress)},
		},
		Style: block.TableStyle{
			FontSize: cfg.Styles.Body.FontSize,
			Leading:  cfg.Styles.Body.Leading,
			Padding:  m.Padding,
		},
	}
}

// grandTotal is a single bold row spanning the line item table width with
// the amount under the amount column and a rule beneath.
func grandTotal(total decimal.Decimal, cfg *config.Render) block.Table {
	w := cfg.Table.Widths()
	amount := w[4]
	st := tableStyle(cfg)
	st.GridWidth = 0
	st.HeaderFill = nil
	return block.Table{
		Widths: []float64{cfg.Table.Width*cfg.Table.Columns.Sum() - amount, amount},
		Align:  []string{block.AlignRight, block.AlignRight},
		Rows: []block.Row{{
			Cells:     block.Cells("TOTAL DUE:", money.Format(cfg.CurrencySymbol, total)),
			Bold:      true,
			RuleBelow: true,
		}},
		Style: st,
	}
}

func paymentCode(pc *config.PaymentCode, number string, total decimal.Decimal) block.Barcode {
	b := block.Barcode{
		Kind:    pc.Kind,
		Content: fmt.Sprintf("%s %s", number, total.StringFixed(2)),
		Width:   pc.Size,
		Height:  pc.Size,
	}
	if pc.Kind != block.QR {
		b.Width = pc.Size * 3
	}
	return b
}
