package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/lvillar/invoicepdf"
	"github.com/lvillar/invoicepdf/block"
	"github.com/lvillar/invoicepdf/config"
	"github.com/lvillar/invoicepdf/table"
)

// PDF is a Sink that lays blocks out top to bottom with gofpdf, in points.
type PDF struct {
	pageSize string
	margins  config.Margins
	fonts    config.Fonts
	registry *FontRegistry
}

// NewPDF returns a sink using the page geometry and fonts of cfg. A nil
// registry selects the process-wide Fonts.
func NewPDF(cfg *config.Render, registry *FontRegistry) *PDF {
	if registry == nil {
		registry = Fonts
	}
	return &PDF{
		pageSize: cfg.PageSize,
		margins:  cfg.Margins,
		fonts:    cfg.Fonts,
		registry: registry,
	}
}

// page carries the per-document state shared by the block renderers.
type page struct {
	pdf  *gofpdf.Fpdf
	face face
}

// Render paginates doc and writes the PDF to w.
func (s *PDF) Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "pt", s.pageSize, "")
	m := s.margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(true, m.Bottom)
	pdf.SetCellMargin(0)

	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}
	pdf.SetCreator("invoicepdf", true)
	if !doc.Created.IsZero() {
		pdf.SetCreationDate(doc.Created)
	}
	// The alias must be set before UTF-8 fonts are added.
	if doc.Footer != nil {
		pdf.AliasNbPages("{nb}")
	}

	f, err := s.registry.register(pdf, s.fonts)
	if err != nil {
		return err
	}
	p := &page{pdf: pdf, face: f}

	if doc.Letterhead != "" {
		if err := p.letterhead(doc.Letterhead); err != nil {
			return err
		}
	}
	if doc.Stamp != nil || doc.Footer != nil {
		pdf.SetFooterFunc(func() {
			if doc.Stamp != nil {
				p.stamp(*doc.Stamp)
			}
			if doc.Footer != nil {
				p.footer(*doc.Footer)
			}
		})
	}

	pdf.AddPage()
	for i, b := range doc.Blocks {
		if err := p.draw(b); err != nil {
			return &invoicepdf.RenderError{Op: fmt.Sprintf("block %d", i), Err: err}
		}
		if pdf.Err() {
			return &invoicepdf.RenderError{Op: fmt.Sprintf("block %d", i), Err: pdf.Error()}
		}
	}

	if err := pdf.Output(w); err != nil {
		return &invoicepdf.RenderError{Op: "Output", Err: err}
	}
	return nil
}

func (p *page) draw(b block.Block) error {
	switch b := b.(type) {
	case block.Text:
		p.text(b)
	case block.Spacer:
		p.pdf.Ln(b.Height)
	case block.Table:
		return p.table(b)
	case block.Image:
		p.image(b)
	case block.Barcode:
		return p.barcode(b)
	default:
		return fmt.Errorf("unknown block type %T", b)
	}
	return nil
}

func (p *page) contentWidth() float64 {
	pageW, _ := p.pdf.GetPageSize()
	lm, _, rm, _ := p.pdf.GetMargins()
	return pageW - lm - rm
}

// reserve starts a new page unless h fits above the bottom margin.
func (p *page) reserve(h float64) {
	_, pageH := p.pdf.GetPageSize()
	_, top, _, bottom := p.pdf.GetMargins()
	if y := p.pdf.GetY(); y+h > pageH-bottom && y > top {
		p.pdf.AddPage()
	}
}

func (p *page) text(t block.Text) {
	st := t.Style
	leading := st.Leading
	if leading <= 0 {
		leading = st.FontSize * 1.2
	}
	p.pdf.SetFont(p.face.family, st.FontStyle(), st.FontSize)
	align := st.Align
	if align == "" {
		align = block.AlignLeft
	}
	p.pdf.MultiCell(p.contentWidth(), leading, p.face.tr(t.Text), "", align, false)
	if st.SpaceAfter > 0 {
		p.pdf.Ln(st.SpaceAfter)
	}
}

func (p *page) table(b block.Table) error {
	tb := table.New(p.pdf).
		SetTranslator(p.face.tr).
		SetUTF8(p.face.utf8)

	cols := make([]table.ColumnDef, len(b.Widths))
	for i, w := range b.Widths {
		cols[i].Width = w
		if i < len(b.Align) {
			cols[i].Align = b.Align[i]
		}
	}
	tb.SetColumns(cols...)

	st := b.Style
	regular := &table.FontSpec{Family: p.face.family, Size: st.FontSize}
	bold := &table.FontSpec{Family: p.face.family, Style: "B", Size: st.FontSize}
	style := table.TableStyle{
		CellPadding: table.UniformPadding(st.Padding),
		CellFont:    regular,
		LineHeight:  st.Leading,
	}
	if st.GridWidth > 0 {
		style.Border = &table.BorderStyle{Width: st.GridWidth}
	}
	if len(b.Header) > 0 {
		size := st.HeaderFontSize
		if size <= 0 {
			size = st.FontSize
		}
		hs := &table.CellStyle{Font: &table.FontSpec{Family: p.face.family, Style: "B", Size: size}}
		if st.HeaderFill != nil {
			hs.FillColor = &table.RGBColor{R: st.HeaderFill.R, G: st.HeaderFill.G, B: st.HeaderFill.B}
		}
		style.HeaderStyle = hs

		hr := tb.AddHeaderRow()
		addCells(hr, b.Header)
	}
	tb.SetStyle(style)

	for _, r := range b.Rows {
		row := tb.AddRow().SetGrid(!r.NoGrid).SetRuleBelow(r.RuleBelow)
		if r.Bold {
			row.SetStyle(table.CellStyle{Font: bold})
		}
		addCells(row, r.Cells)
	}

	return tb.Render()
}

func addCells(row *table.Row, cells []block.Cell) {
	for _, c := range cells {
		cell := row.AddCell(c.Text)
		if c.Span > 1 {
			cell.SetColspan(c.Span)
		}
		if c.Align != "" {
			cell.SetAlign(c.Align)
		}
	}
}

func (p *page) image(img block.Image) {
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.PNG))

	p.reserve(img.Height)
	x, y := p.pdf.GetX(), p.pdf.GetY()
	p.pdf.ImageOptions(img.Name, x, y, img.Width, img.Height, false, opts, 0, "")
	p.pdf.SetY(y + img.Height)
}

func (p *page) barcode(b block.Barcode) error {
	var key string
	switch b.Kind {
	case block.QR:
		key = barcode.RegisterQR(p.pdf, b.Content, qr.M, qr.Auto)
	case block.Code128:
		key = barcode.RegisterCode128(p.pdf, b.Content)
	case block.PDF417:
		key = barcode.RegisterPdf417(p.pdf, b.Content, 10, 5)
	default:
		return fmt.Errorf("unknown barcode kind %q", b.Kind)
	}
	if p.pdf.Err() {
		return p.pdf.Error()
	}

	p.reserve(b.Height)
	x, y := p.pdf.GetX(), p.pdf.GetY()
	barcode.Barcode(p.pdf, key, x, y, b.Width, b.Height, false)
	p.pdf.SetY(y + b.Height)
	return nil
}

// letterhead imports the first page of the PDF at path and draws it under
// the content of every page.
func (p *page) letterhead(path string) (err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &invoicepdf.RenderError{
			Op:  "Letterhead",
			Err: fmt.Errorf("%w: %v", invoicepdf.ErrResourceUnavailable, err),
		}
	}

	// gofpdi panics on input it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			err = &invoicepdf.RenderError{Op: "Letterhead", Err: fmt.Errorf("%s: %v", path, r)}
		}
	}()

	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))
	tpl := imp.ImportPageFromStream(p.pdf, &rs, 1, "/MediaBox")
	if p.pdf.Err() {
		return &invoicepdf.RenderError{Op: "Letterhead", Err: p.pdf.Error()}
	}

	p.pdf.SetHeaderFuncMode(func() {
		w, h := p.pdf.GetPageSize()
		imp.UseImportedTemplate(p.pdf, tpl, 0, 0, w, h)
	}, true)
	return nil
}

// stamp draws the stamp text rotated about the page center.
func (p *page) stamp(s Stamp) {
	pdf := p.pdf
	pageW, pageH := pdf.GetPageSize()
	text := p.face.tr(s.Text)

	pdf.SetFont(p.face.family, "B", s.FontSize)
	pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
	pdf.SetAlpha(s.Opacity, "Normal")

	cx, cy := pageW/2, pageH/2
	pdf.TransformBegin()
	pdf.TransformRotate(s.Angle, cx, cy)
	pdf.Text(cx-pdf.GetStringWidth(text)/2, cy+s.FontSize/3, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}

func (p *page) footer(f Footer) {
	pdf := p.pdf
	_, pageH := pdf.GetPageSize()
	lm, _, _, bottom := pdf.GetMargins()

	text := strings.ReplaceAll(f.Text, "{page}", strconv.Itoa(pdf.PageNo()))
	text = strings.ReplaceAll(text, "{pages}", "{nb}")

	pdf.SetFont(p.face.family, "", f.FontSize)
	pdf.SetTextColor(128, 128, 128)
	pdf.SetXY(lm, pageH-(bottom+f.FontSize)/2)
	pdf.CellFormat(p.contentWidth(), f.FontSize, p.face.tr(text), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
