// Package render paginates composed invoice blocks into a PDF document.
//
// Callers depend on the Sink interface; PDF is the gofpdf backed
// implementation. Page geometry and fonts come from the render configuration,
// everything else travels in the Document.
package render

import (
	"io"
	"time"

	"github.com/lvillar/invoicepdf/block"
)

// Sink accepts an ordered block list and writes a paginated document.
type Sink interface {
	Render(w io.Writer, doc Document) error
}

// Document is one invoice ready for pagination.
type Document struct {
	Title   string
	Author  string
	Created time.Time

	Stamp      *Stamp  // drawn over every page when set
	Letterhead string  // PDF whose first page is drawn under every page
	Footer     *Footer // repeated at the bottom of every page

	Blocks []block.Block
}

// Stamp is diagonal translucent text centered on the page.
type Stamp struct {
	Text     string
	FontSize float64
	Opacity  float64 // 0-1
	Angle    float64 // degrees, counter-clockwise
	Color    block.RGB
}

// Footer is a line of text centered in the bottom margin. {page} and {pages}
// are replaced with the page number and the page count.
type Footer struct {
	Text     string
	FontSize float64
}
