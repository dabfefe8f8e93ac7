package render

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/invoicepdf"
	"github.com/lvillar/invoicepdf/config"
)

// Fonts is the process-wide registry used by sinks created without one.
var Fonts = NewFontRegistry()

// FontRegistry caches TTF bytes by path so each font file is read once per
// process. It is safe for concurrent use.
type FontRegistry struct {
	mu       sync.Mutex
	files    map[string][]byte
	readFile func(string) ([]byte, error)
}

// NewFontRegistry returns an empty registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{
		files:    make(map[string][]byte),
		readFile: os.ReadFile,
	}
}

// Bytes returns the contents of the font file at path, reading and checking
// it on first use. Only fonts that parse as TrueType are cached.
func (r *FontRegistry) Bytes(path string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.files[path]; ok {
		return b, nil
	}
	b, err := r.readFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.CheckTrueType(b); err != nil {
		return nil, err
	}
	r.files[path] = b
	return b, nil
}

func fontError(key, path string, err error) error {
	return &invoicepdf.ConfigurationError{
		Key:  key,
		Path: path,
		Err:  fmt.Errorf("%w: %v", invoicepdf.ErrResourceUnavailable, err),
	}
}

// face is a font family bound to a document.
type face struct {
	family string
	utf8   bool
	tr     func(string) string
}

// register binds fonts to pdf. Core families need no files and get the
// cp1252 translator; TTF families are added as UTF-8 fonts in their regular,
// bold, italic and bold italic styles. Registering the same family twice on
// one document is a no-op. A font file that is missing or not TrueType is a
// *invoicepdf.ConfigurationError naming its key.
func (r *FontRegistry) register(pdf *gofpdf.Fpdf, fonts config.Fonts) (face, error) {
	if fonts.Builtin {
		return face{
			family: strings.ToLower(fonts.Family),
			tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		}, nil
	}

	styles := []struct{ key, style, path string }{
		{"fonts.regular", "", fonts.Regular},
		{"fonts.bold", "B", fonts.Bold},
		{"fonts.italic", "I", fonts.Italic},
		// No bold italic file is configured; bold stands in for it.
		{"fonts.bold", "BI", fonts.Bold},
	}
	for _, s := range styles {
		b, err := r.Bytes(s.path)
		if err != nil {
			return face{}, fontError(s.key, s.path, err)
		}
		pdf.AddUTF8FontFromBytes(fonts.Family, s.style, b)
		if pdf.Err() {
			return face{}, &invoicepdf.RenderError{Op: "RegisterFont", Err: pdf.Error()}
		}
		// gofpdf reports unparsable fonts on stdout and leaves them out.
		if pdf.GetFontDesc(fonts.Family, s.style) == (gofpdf.FontDescType{}) {
			return face{}, fontError(s.key, s.path, fmt.Errorf("font was not accepted by the PDF engine"))
		}
	}
	return face{
		family: fonts.Family,
		utf8:   true,
		tr:     func(s string) string { return s },
	}, nil
}
