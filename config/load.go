// Package config resolves the company profile, the render configuration and
// invoice records from JSON or YAML files.
//
// Loading never substitutes defaults for structural values: every missing key
// is reported, by its dotted path, in the returned error.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/invoicepdf"
)

// Format is the encoding of a configuration source.
type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf infers the format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

func decode(r io.Reader, format Format, strict bool, v any) error {
	if format == YAML {
		dec := yaml.NewDecoder(r)
		dec.KnownFields(strict)
		return dec.Decode(v)
	}
	dec := json.NewDecoder(r)
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &invoicepdf.ConfigurationError{
			Path: path,
			Err:  fmt.Errorf("%w: %v", invoicepdf.ErrResourceUnavailable, err),
		}
	}
	return f, nil
}

func decodeError(path string, err error) error {
	return &invoicepdf.ConfigurationError{
		Path: path,
		Err:  fmt.Errorf("%w: decoding: %v", invoicepdf.ErrInvalidValue, err),
	}
}

// LoadCompany reads and validates a company profile file.
func LoadCompany(path string) (*invoicepdf.CompanyProfile, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCompany(f, FormatOf(path), path)
}

// DecodeCompany reads and validates a company profile from r.
func DecodeCompany(r io.Reader, format Format) (*invoicepdf.CompanyProfile, error) {
	return decodeCompany(r, format, "")
}

// LoadRender reads and validates a render configuration file. Referenced font
// files must parse as TrueType and the letterhead must exist. A single
// failure is a *invoicepdf.ConfigurationError; several are combined with
// multierr, and multierr.Errors lists them.
func LoadRender(path string) (*Render, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeRender(f, FormatOf(path), path)
}

// DecodeRender reads and validates a render configuration from r. Errors are
// reported as by LoadRender.
func DecodeRender(r io.Reader, format Format) (*Render, error) {
	return decodeRender(r, format, "")
}

// LoadInvoice reads and validates a JSON invoice record.
func LoadInvoice(path string) (*invoicepdf.Invoice, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeInvoice(f, path)
}

// DecodeInvoice reads and validates a JSON invoice record from r.
func DecodeInvoice(r io.Reader) (*invoicepdf.Invoice, error) {
	return decodeInvoice(r, "")
}
