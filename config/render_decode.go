package config

import (
	"io"
	"math"
	"strings"
)

type rawFonts struct {
	Family  *string `json:"family" yaml:"family"`
	Builtin bool    `json:"builtin" yaml:"builtin"`
	Regular string  `json:"regular" yaml:"regular"`
	Bold    string  `json:"bold" yaml:"bold"`
	Italic  string  `json:"italic" yaml:"italic"`
}

type rawMargins struct {
	Top    *float64 `json:"top" yaml:"top"`
	Right  *float64 `json:"right" yaml:"right"`
	Bottom *float64 `json:"bottom" yaml:"bottom"`
	Left   *float64 `json:"left" yaml:"left"`
}

type rawStyle struct {
	FontSize   *float64 `json:"font_size" yaml:"font_size"`
	Leading    *float64 `json:"leading" yaml:"leading"`
	Alignment  *string  `json:"alignment" yaml:"alignment"`
	Bold       bool     `json:"bold" yaml:"bold"`
	Italic     bool     `json:"italic" yaml:"italic"`
	SpaceAfter *float64 `json:"space_after" yaml:"space_after"`
}

type rawStyles struct {
	Body           *rawStyle `json:"body" yaml:"body"`
	CompanyName    *rawStyle `json:"company_name" yaml:"company_name"`
	InvoiceTitle   *rawStyle `json:"invoice_title" yaml:"invoice_title"`
	SectionHeading *rawStyle `json:"section_heading" yaml:"section_heading"`
}

type rawSpacing struct {
	AfterCompany  *float64 `json:"after_company" yaml:"after_company"`
	AfterMetadata *float64 `json:"after_metadata" yaml:"after_metadata"`
	AfterSection  *float64 `json:"after_section" yaml:"after_section"`
	BeforeTerms   *float64 `json:"before_terms" yaml:"before_terms"`
}

type rawColumns struct {
	Date        *float64 `json:"date" yaml:"date"`
	Description *float64 `json:"description" yaml:"description"`
	Quantity    *float64 `json:"quantity" yaml:"quantity"`
	Rate        *float64 `json:"rate" yaml:"rate"`
	Amount      *float64 `json:"amount" yaml:"amount"`
}

type rawTable struct {
	Width          *float64    `json:"width" yaml:"width"`
	Columns        *rawColumns `json:"columns" yaml:"columns"`
	GridWidth      *float64    `json:"grid_width" yaml:"grid_width"`
	Padding        *float64    `json:"padding" yaml:"padding"`
	FontSize       *float64    `json:"font_size" yaml:"font_size"`
	HeaderFontSize *float64    `json:"header_font_size" yaml:"header_font_size"`
	HeaderFill     []int       `json:"header_fill" yaml:"header_fill"`
}

type rawMetadata struct {
	LabelWidth *float64 `json:"label_width" yaml:"label_width"`
	ValueWidth *float64 `json:"value_width" yaml:"value_width"`
	Padding    *float64 `json:"padding" yaml:"padding"`
}

type rawLogo struct {
	MaxWidth  *float64 `json:"max_width" yaml:"max_width"`
	MaxHeight *float64 `json:"max_height" yaml:"max_height"`
	MaxPixels *int     `json:"max_pixels" yaml:"max_pixels"`
}

type rawPaymentCode struct {
	Kind *string  `json:"kind" yaml:"kind"`
	Size *float64 `json:"size" yaml:"size"`
}

type rawStamp struct {
	Text     *string   `json:"text" yaml:"text"`
	Statuses *[]string `json:"statuses" yaml:"statuses"`
	FontSize *float64  `json:"font_size" yaml:"font_size"`
	Opacity  *float64  `json:"opacity" yaml:"opacity"`
	Angle    *float64  `json:"angle" yaml:"angle"`
	Color    []int     `json:"color" yaml:"color"`
}

type rawFooter struct {
	Text     *string  `json:"text" yaml:"text"`
	FontSize *float64 `json:"font_size" yaml:"font_size"`
}

type rawRender struct {
	Fonts          *rawFonts       `json:"fonts" yaml:"fonts"`
	PageSize       *string         `json:"page_size" yaml:"page_size"`
	Margins        *rawMargins     `json:"margins" yaml:"margins"`
	Styles         *rawStyles      `json:"styles" yaml:"styles"`
	Spacing        *rawSpacing     `json:"spacing" yaml:"spacing"`
	Table          *rawTable       `json:"table" yaml:"table"`
	Metadata       *rawMetadata    `json:"metadata" yaml:"metadata"`
	Logo           *rawLogo        `json:"logo" yaml:"logo"`
	CurrencySymbol *string         `json:"currency_symbol" yaml:"currency_symbol"`
	PaymentCode    *rawPaymentCode `json:"payment_code" yaml:"payment_code"`
	Stamp          *rawStamp       `json:"stamp" yaml:"stamp"`
	Letterhead     string          `json:"letterhead" yaml:"letterhead"`
	Footer         *rawFooter      `json:"footer" yaml:"footer"`
}

var pageSizes = map[string]string{
	"a3":      "A3",
	"a4":      "A4",
	"a5":      "A5",
	"letter":  "Letter",
	"legal":   "Legal",
	"tabloid": "Tabloid",
}

var builtinFamilies = map[string]bool{
	"helvetica": true,
	"arial":     true,
	"times":     true,
	"courier":   true,
}

// columnTolerance absorbs float rounding in fractions such as 0.15+0.45+...
const columnTolerance = 1e-9

func decodeRender(r io.Reader, format Format, path string) (*Render, error) {
	var raw rawRender
	if err := decode(r, format, true, &raw); err != nil {
		return nil, decodeError(path, err)
	}

	c := &checker{path: path}
	cfg := &Render{Letterhead: raw.Letterhead}

	cfg.Fonts = c.fonts(raw.Fonts)

	if raw.PageSize == nil {
		c.missing("page_size")
	} else if size, ok := pageSizes[strings.ToLower(*raw.PageSize)]; ok {
		cfg.PageSize = size
	} else {
		c.invalid("page_size", "unknown page size %q", *raw.PageSize)
	}

	if raw.Margins == nil {
		c.missing("margins")
	} else {
		cfg.Margins = Margins{
			Top:    c.nonNegative("margins.top", raw.Margins.Top),
			Right:  c.nonNegative("margins.right", raw.Margins.Right),
			Bottom: c.nonNegative("margins.bottom", raw.Margins.Bottom),
			Left:   c.nonNegative("margins.left", raw.Margins.Left),
		}
	}

	if raw.Styles == nil {
		c.missing("styles")
	} else {
		cfg.Styles = Styles{
			Body:           c.style("styles.body", raw.Styles.Body),
			CompanyName:    c.style("styles.company_name", raw.Styles.CompanyName),
			InvoiceTitle:   c.style("styles.invoice_title", raw.Styles.InvoiceTitle),
			SectionHeading: c.style("styles.section_heading", raw.Styles.SectionHeading),
		}
	}

	if raw.Spacing == nil {
		c.missing("spacing")
	} else {
		cfg.Spacing = Spacing{
			AfterCompany:  c.nonNegative("spacing.after_company", raw.Spacing.AfterCompany),
			AfterMetadata: c.nonNegative("spacing.after_metadata", raw.Spacing.AfterMetadata),
			AfterSection:  c.nonNegative("spacing.after_section", raw.Spacing.AfterSection),
			BeforeTerms:   c.nonNegative("spacing.before_terms", raw.Spacing.BeforeTerms),
		}
	}

	cfg.Table = c.table(raw.Table)

	if raw.Metadata == nil {
		c.missing("metadata")
	} else {
		cfg.Metadata = MetadataTable{
			LabelWidth: c.positive("metadata.label_width", raw.Metadata.LabelWidth),
			ValueWidth: c.positive("metadata.value_width", raw.Metadata.ValueWidth),
			Padding:    c.nonNegative("metadata.padding", raw.Metadata.Padding),
		}
	}

	if raw.Logo == nil {
		c.missing("logo")
	} else {
		cfg.Logo = LogoBox{
			MaxWidth:  c.positive("logo.max_width", raw.Logo.MaxWidth),
			MaxHeight: c.positive("logo.max_height", raw.Logo.MaxHeight),
		}
		switch {
		case raw.Logo.MaxPixels == nil:
			c.missing("logo.max_pixels")
		case *raw.Logo.MaxPixels <= 0:
			c.invalid("logo.max_pixels", "must be positive, got %d", *raw.Logo.MaxPixels)
		default:
			cfg.Logo.MaxPixels = *raw.Logo.MaxPixels
		}
	}

	// An empty symbol is a legitimate choice, only absence is an error.
	if raw.CurrencySymbol == nil {
		c.missing("currency_symbol")
	} else {
		cfg.CurrencySymbol = *raw.CurrencySymbol
	}

	if raw.PaymentCode != nil {
		cfg.PaymentCode = c.paymentCode(raw.PaymentCode)
	}
	if raw.Stamp != nil {
		cfg.Stamp = c.stamp(raw.Stamp)
	}
	if raw.Footer != nil {
		cfg.Footer = &Footer{
			Text:     c.text("footer.text", raw.Footer.Text),
			FontSize: c.positive("footer.font_size", raw.Footer.FontSize),
		}
	}
	if cfg.Letterhead != "" {
		c.openable("letterhead", cfg.Letterhead)
	}

	if c.err != nil {
		return nil, c.err
	}
	return cfg, nil
}

func (c *checker) fonts(raw *rawFonts) Fonts {
	if raw == nil {
		c.missing("fonts")
		return Fonts{}
	}
	f := Fonts{
		Family:  c.text("fonts.family", raw.Family),
		Builtin: raw.Builtin,
		Regular: raw.Regular,
		Bold:    raw.Bold,
		Italic:  raw.Italic,
	}
	if f.Builtin {
		if f.Family != "" && !builtinFamilies[strings.ToLower(f.Family)] {
			c.invalid("fonts.family", "%q is not a builtin font family", f.Family)
		}
		if f.Regular != "" || f.Bold != "" || f.Italic != "" {
			c.invalid("fonts", "builtin fonts take no files")
		}
		return f
	}
	for _, b := range []struct{ key, file string }{
		{"fonts.regular", f.Regular},
		{"fonts.bold", f.Bold},
		{"fonts.italic", f.Italic},
	} {
		if b.file == "" {
			c.missing(b.key)
			continue
		}
		c.fontFile(b.key, b.file)
	}
	return f
}

func (c *checker) style(key string, raw *rawStyle) ParagraphStyle {
	if raw == nil {
		c.missing(key)
		return ParagraphStyle{}
	}
	s := ParagraphStyle{
		FontSize:   c.positive(key+".font_size", raw.FontSize),
		Leading:    c.positive(key+".leading", raw.Leading),
		Alignment:  c.text(key+".alignment", raw.Alignment),
		Bold:       raw.Bold,
		Italic:     raw.Italic,
		SpaceAfter: c.optional(key+".space_after", raw.SpaceAfter),
	}
	switch strings.ToLower(s.Alignment) {
	case "", "left", "center", "right", "justify":
	default:
		c.invalid(key+".alignment", "unknown alignment %q", s.Alignment)
	}
	return s
}

func (c *checker) table(raw *rawTable) Table {
	if raw == nil {
		c.missing("table")
		return Table{}
	}
	t := Table{
		Width:          c.positive("table.width", raw.Width),
		GridWidth:      c.nonNegative("table.grid_width", raw.GridWidth),
		Padding:        c.nonNegative("table.padding", raw.Padding),
		FontSize:       c.positive("table.font_size", raw.FontSize),
		HeaderFontSize: c.positive("table.header_font_size", raw.HeaderFontSize),
	}
	if raw.HeaderFill != nil {
		fill := c.rgb("table.header_fill", raw.HeaderFill)
		t.HeaderFill = &fill
	}
	if raw.Columns == nil {
		c.missing("table.columns")
		return t
	}
	t.Columns = Columns{
		Date:        c.positive("table.columns.date", raw.Columns.Date),
		Description: c.positive("table.columns.description", raw.Columns.Description),
		Quantity:    c.positive("table.columns.quantity", raw.Columns.Quantity),
		Rate:        c.positive("table.columns.rate", raw.Columns.Rate),
		Amount:      c.positive("table.columns.amount", raw.Columns.Amount),
	}
	if sum := t.Columns.Sum(); sum > 1+columnTolerance {
		c.invalid("table.columns", "fractions sum to %g, must not exceed 1", math.Round(sum*1e6)/1e6)
	}
	return t
}

func (c *checker) paymentCode(raw *rawPaymentCode) *PaymentCode {
	pc := &PaymentCode{
		Kind: strings.ToLower(c.text("payment_code.kind", raw.Kind)),
		Size: c.positive("payment_code.size", raw.Size),
	}
	switch pc.Kind {
	case "", "qr", "code128", "pdf417":
	default:
		c.invalid("payment_code.kind", "unknown barcode kind %q", pc.Kind)
	}
	return pc
}

func (c *checker) stamp(raw *rawStamp) *Stamp {
	s := &Stamp{
		Text:     c.text("stamp.text", raw.Text),
		FontSize: c.positive("stamp.font_size", raw.FontSize),
		Opacity:  c.positive("stamp.opacity", raw.Opacity),
	}
	if s.Opacity > 1 {
		c.invalid("stamp.opacity", "must be at most 1, got %g", s.Opacity)
	}
	if raw.Angle == nil {
		c.missing("stamp.angle")
	} else {
		s.Angle = *raw.Angle
	}
	if raw.Statuses == nil {
		c.missing("stamp.statuses")
	} else {
		s.Statuses = append([]string(nil), (*raw.Statuses)...)
	}
	if raw.Color == nil {
		c.missing("stamp.color")
	} else {
		s.Color = c.rgb("stamp.color", raw.Color)
	}
	return s
}
