// Package generator produces invoice PDF files.
//
// A Generator loads the logo, composes the invoice, renders it and writes the
// result atomically into the output directory:
//
//	gen := generator.New(
//	    generator.WithOutputDir("outputs"),
//	    generator.WithLogger(logger),
//	)
//	path, err := gen.GenerateFiles("company.json", "render.yaml", "invoice.json")
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lvillar/invoicepdf"
	"github.com/lvillar/invoicepdf/block"
	"github.com/lvillar/invoicepdf/compose"
	"github.com/lvillar/invoicepdf/config"
	"github.com/lvillar/invoicepdf/logo"
	"github.com/lvillar/invoicepdf/render"
)

// TimestampLayout is the time format of the file name suffix.
const TimestampLayout = "20060102_150405"

// Generator writes invoices. It holds no per-invoice state and may be
// reused.
type Generator struct {
	s settings
}

// New creates a Generator. With no options it writes to DefaultOutputDir and
// logs nothing.
func New(opts ...Option) *Generator {
	s := settings{
		outputDir: DefaultOutputDir,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Generator{s: s}
}

// NewIdentifier returns a random identifier suitable for WithIdentifier.
func NewIdentifier() string {
	return uuid.NewString()
}

// GenerateFiles loads the company profile, render configuration and invoice
// from files and generates the invoice.
func (g *Generator) GenerateFiles(companyPath, renderPath, invoicePath string) (string, error) {
	company, err := config.LoadCompany(companyPath)
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadRender(renderPath)
	if err != nil {
		return "", err
	}
	inv, err := config.LoadInvoice(invoicePath)
	if err != nil {
		return "", err
	}
	return g.Generate(company, inv, cfg)
}

// Generate renders inv and returns the path of the written PDF, named
// Invoice_<number>_<timestamp>.pdf. A logo that cannot be loaded is logged
// and skipped. On failure no file with that name is left behind.
func (g *Generator) Generate(company *invoicepdf.CompanyProfile, inv *invoicepdf.Invoice, cfg *config.Render) (string, error) {
	log := g.s.logger.With(zap.String("invoice", inv.Number))
	now := g.s.now()

	var assets compose.Assets
	if company.LogoPath != "" {
		img, err := logo.Load(company.LogoPath, cfg.Logo.MaxPixels)
		if err != nil {
			log.Warn("logo skipped", zap.Error(err))
		} else {
			assets.Logo = img
		}
	}

	var opts []compose.Option
	if g.s.strict {
		opts = append(opts, compose.Strict())
	}
	res, err := compose.Compose(company, inv, cfg, assets, opts...)
	if err != nil {
		return "", err
	}
	for _, it := range res.Unclassified {
		log.Warn("line item matches no known shape, left out",
			zap.Int("index", it.Index),
			zap.String("description", it.Description),
		)
	}

	doc := render.Document{
		Title:      "Invoice " + inv.Number,
		Author:     company.Name,
		Created:    now,
		Letterhead: cfg.Letterhead,
		Blocks:     res.Blocks,
	}
	if cfg.Stamp.Matches(inv.PaymentStatus) {
		st := cfg.Stamp
		doc.Stamp = &render.Stamp{
			Text:     st.Text,
			FontSize: st.FontSize,
			Opacity:  st.Opacity,
			Angle:    st.Angle,
			Color:    block.RGB{R: st.Color.R, G: st.Color.G, B: st.Color.B},
		}
	}
	if cfg.Footer != nil {
		doc.Footer = &render.Footer{Text: cfg.Footer.Text, FontSize: cfg.Footer.FontSize}
	}

	sink := g.s.sink
	if sink == nil {
		sink = render.NewPDF(cfg, g.s.fonts)
	}

	suffix := g.s.identifier
	if suffix == "" {
		suffix = now.Format(TimestampLayout)
	}
	path := filepath.Join(g.s.outputDir, fmt.Sprintf("Invoice_%s_%s.pdf", fileSafe(inv.Number), suffix))

	if err := write(path, sink, doc); err != nil {
		return "", err
	}

	log.Info("created invoice",
		zap.String("path", path),
		zap.String("total", res.Total.StringFixed(2)),
		zap.Int("blocks", len(res.Blocks)),
	)
	return path, nil
}

// write renders doc into a pending file next to path and renames it into
// place once complete.
func write(path string, sink render.Sink, doc render.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &invoicepdf.FilesystemError{Op: "mkdir", Path: dir, Err: err}
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithTempDir(dir), renameio.WithPermissions(0o644))
	if err != nil {
		return &invoicepdf.FilesystemError{Op: "create", Path: dir, Err: err}
	}
	defer pf.Cleanup() // no-op after a successful replace

	if err := sink.Render(pf, doc); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return &invoicepdf.FilesystemError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// fileSafe keeps an invoice number from escaping the output directory.
func fileSafe(number string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		}
		return r
	}, number)
}
