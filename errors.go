package invoicepdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the invoice generation failure conditions.
var (
	ErrMissingKey          = errors.New("invoicepdf: required configuration key missing")
	ErrInvalidValue        = errors.New("invoicepdf: invalid configuration value")
	ErrResourceUnavailable = errors.New("invoicepdf: resource cannot be opened")
	ErrUnclassifiedItem    = errors.New("invoicepdf: line item matches no known shape")
)

// ConfigurationError is fatal: it aborts generation before any output is
// produced.
type ConfigurationError struct {
	Key  string // configuration key, e.g. "table.columns.rate"
	Path string // file the key was read from, if any
	Err  error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Key != "" && e.Path != "":
		return fmt.Sprintf("invoicepdf: config %s (%s): %v", e.Key, e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("invoicepdf: config %s: %v", e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("invoicepdf: config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invoicepdf: config: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LogoLoadError reports a logo that is missing or cannot be decoded. It is
// recovered: the logo block is skipped and generation continues.
type LogoLoadError struct {
	Path string
	Err  error
}

func (e *LogoLoadError) Error() string {
	return fmt.Sprintf("invoicepdf: logo %s: %v", e.Path, e.Err)
}

func (e *LogoLoadError) Unwrap() error {
	return e.Err
}

// MalformedLineItemError reports a line item that carries none of the
// service, product or flat charge field sets.
type MalformedLineItemError struct {
	Index       int // position in the invoice's item list
	Description string
}

func (e *MalformedLineItemError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("invoicepdf: line item %d (%q): %v", e.Index, e.Description, ErrUnclassifiedItem)
	}
	return fmt.Sprintf("invoicepdf: line item %d: %v", e.Index, ErrUnclassifiedItem)
}

func (e *MalformedLineItemError) Unwrap() error {
	return ErrUnclassifiedItem
}

// FilesystemError is returned when the output directory cannot be created or
// the PDF cannot be written.
type FilesystemError struct {
	Op   string // "mkdir", "create", "write", "rename"
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("invoicepdf: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// RenderError wraps a failure reported by the PDF engine.
type RenderError struct {
	Op  string // operation name, e.g. "RegisterFont", "Output"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invoicepdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("invoicepdf.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// MissingKey returns a ConfigurationError for an absent key.
func MissingKey(path, key string) *ConfigurationError {
	return &ConfigurationError{Key: key, Path: path, Err: ErrMissingKey}
}

// InvalidValue returns a ConfigurationError for a key whose value is present
// but unusable.
func InvalidValue(path, key, reason string) *ConfigurationError {
	return &ConfigurationError{Key: key, Path: path, Err: fmt.Errorf("%w: %s", ErrInvalidValue, reason)}
}
