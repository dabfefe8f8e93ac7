package generator

import (
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/invoicepdf/render"
)

// DefaultOutputDir is where invoices are written unless WithOutputDir is
// given.
const DefaultOutputDir = "outputs"

// Option is a functional option for configuring a Generator via New.
type Option func(*settings)

type settings struct {
	outputDir  string
	logger     *zap.Logger
	now        func() time.Time
	identifier string
	strict     bool
	sink       render.Sink
	fonts      *render.FontRegistry
}

// WithOutputDir sets the directory invoices are written to. It is created on
// first use.
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outputDir = dir
	}
}

// WithLogger sets the logger for warnings and the per-invoice summary.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for the file name timestamp and
// the PDF creation date.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIdentifier replaces the timestamp in the output file name with id.
// Callers generating invoices concurrently should pass a value from
// NewIdentifier, since two invoices with the same number generated within
// the same second otherwise resolve to the same file.
func WithIdentifier(id string) Option {
	return func(s *settings) {
		s.identifier = id
	}
}

// WithStrictLineItems fails generation when a line item has none of the
// service, product or flat charge field sets. By default such items are
// logged and left out.
func WithStrictLineItems() Option {
	return func(s *settings) {
		s.strict = true
	}
}

// WithSink replaces the gofpdf sink.
func WithSink(sink render.Sink) Option {
	return func(s *settings) {
		s.sink = sink
	}
}

// WithFontRegistry sets the font cache used by the default sink. Without it
// the process-wide render.Fonts is shared.
func WithFontRegistry(r *render.FontRegistry) Option {
	return func(s *settings) {
		s.fonts = r
	}
}
