// Package invoicepdf renders billing data into PDF invoices.
//
// The root package holds the input records and the error taxonomy shared by
// the subpackages:
//
//   - config loads the company profile and the render configuration
//   - lineitem classifies raw line items into services, products and flat charges
//   - compose turns the records into an ordered list of layout blocks
//   - render paginates the blocks into a PDF with gofpdf
//   - generator wires the above into a single call that writes the file
//
// Example:
//
//	gen := generator.New(generator.WithOutputDir("outputs"))
//	path, err := gen.GenerateFiles("company.json", "render.json", "invoice.json")
package invoicepdf

import "github.com/shopspring/decimal"

// CompanyProfile is the issuing company. It is read once per invoice and
// never mutated.
type CompanyProfile struct {
	Name     string   `json:"name" yaml:"name"`
	Address  string   `json:"address" yaml:"address"`
	Email    string   `json:"email" yaml:"email"`
	TaxID    string   `json:"tax_id" yaml:"tax_id"`
	LogoPath string   `json:"logo_path,omitempty" yaml:"logo_path,omitempty"`
	Terms    []string `json:"terms" yaml:"terms"`
}

// Invoice is a single invoice record.
type Invoice struct {
	Number        string     `json:"invoice_number"`
	Date          string     `json:"date"`
	DueDate       string     `json:"due_date"` // may hold a sentinel such as "None (paid in full)"
	ClientName    string     `json:"client_name"`
	ClientAddress string     `json:"client_address"`
	Items         []LineItem `json:"services"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	PaymentDate   string     `json:"payment_date,omitempty"`
	PaymentDates  []string   `json:"payment_dates,omitempty"` // payment history, e.g. "Feb 1, 2025: $480"
}

// LineItem is a raw billable entry. Which numeric fields are set decides its
// category; see package lineitem.
type LineItem struct {
	Date        string           `json:"date,omitempty"`
	Description string           `json:"description,omitempty"`
	Hours       *decimal.Decimal `json:"hours,omitempty"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}
