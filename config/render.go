package config

import (
	"strings"

	"github.com/lvillar/invoicepdf/block"
)

// Render is the validated presentation configuration. All values are in
// points.
type Render struct {
	Fonts          Fonts
	PageSize       string // A3, A4, A5, Letter, Legal, Tabloid
	Margins        Margins
	Styles         Styles
	Spacing        Spacing
	Table          Table
	Metadata       MetadataTable
	Logo           LogoBox
	CurrencySymbol string

	PaymentCode *PaymentCode // nil disables the payment code
	Stamp       *Stamp       // nil disables the payment stamp
	Letterhead  string       // PDF whose first page is drawn under every page
	Footer      *Footer
}

// Fonts binds a family name to its regular, bold and italic resources.
// Builtin families (Helvetica, Times, Courier) are PDF core fonts and take no
// files.
type Fonts struct {
	Family  string
	Builtin bool
	Regular string
	Bold    string
	Italic  string
}

// Margins are page insets.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// ParagraphStyle describes one named text style.
type ParagraphStyle struct {
	FontSize   float64
	Leading    float64
	Alignment  string // left, center, right, justify
	Bold       bool
	Italic     bool
	SpaceAfter float64
}

// Align returns the gofpdf alignment string for the style.
func (s ParagraphStyle) Align() string {
	switch strings.ToLower(s.Alignment) {
	case "center":
		return block.AlignCenter
	case "right":
		return block.AlignRight
	case "justify":
		return block.AlignJustify
	default:
		return block.AlignLeft
	}
}

// Styles holds the named paragraph styles used by the composer.
type Styles struct {
	Body           ParagraphStyle
	CompanyName    ParagraphStyle
	InvoiceTitle   ParagraphStyle
	SectionHeading ParagraphStyle
}

// Spacing holds the vertical gaps between invoice sections.
type Spacing struct {
	AfterCompany  float64
	AfterMetadata float64
	AfterSection  float64
	BeforeTerms   float64
}

// Columns are fractions of Table.Width. They sum to at most 1.
type Columns struct {
	Date        float64
	Description float64
	Quantity    float64 // hours for services, quantity for products
	Rate        float64 // rate for services, unit price for products
	Amount      float64
}

// Sum returns the total of all fractions.
func (c Columns) Sum() float64 {
	return c.Date + c.Description + c.Quantity + c.Rate + c.Amount
}

// Table is the line item table geometry and style.
type Table struct {
	Width          float64
	Columns        Columns
	GridWidth      float64
	Padding        float64
	FontSize       float64
	HeaderFontSize float64
	HeaderFill     *RGB
}

// Widths returns the absolute widths of the five line item columns.
func (t Table) Widths() [5]float64 {
	c := t.Columns
	return [5]float64{
		t.Width * c.Date,
		t.Width * c.Description,
		t.Width * c.Quantity,
		t.Width * c.Rate,
		t.Width * c.Amount,
	}
}

// MetadataTable is the two column invoice details table.
type MetadataTable struct {
	LabelWidth float64
	ValueWidth float64
	Padding    float64
}

// LogoBox bounds the rendered logo. MaxPixels caps the decoded image before
// it is embedded.
type LogoBox struct {
	MaxWidth  float64
	MaxHeight float64
	MaxPixels int
}

// RGB is a color with 0-255 components.
type RGB struct {
	R, G, B int
}

// PaymentCode configures the barcode printed below the total.
type PaymentCode struct {
	Kind string // qr, code128, pdf417
	Size float64
}

// Stamp configures the diagonal watermark shown for settled invoices.
type Stamp struct {
	Text     string
	Statuses []string
	FontSize float64
	Opacity  float64
	Angle    float64
	Color    RGB
}

// Matches reports whether the payment status should carry the stamp.
func (s *Stamp) Matches(status string) bool {
	if s == nil || status == "" {
		return false
	}
	for _, st := range s.Statuses {
		if strings.EqualFold(strings.TrimSpace(st), strings.TrimSpace(status)) {
			return true
		}
	}
	return false
}

// Footer is repeated at the bottom of every page. Text supports {page} and
// {pages}.
type Footer struct {
	Text     string
	FontSize float64
}
