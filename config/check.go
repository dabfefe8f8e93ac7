package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/lvillar/invoicepdf"
)

// checker accumulates validation failures for one source so that a single
// load reports every missing key at once.
type checker struct {
	path string
	err  error
}

func (c *checker) missing(key string) {
	c.err = multierr.Append(c.err, invoicepdf.MissingKey(c.path, key))
}

func (c *checker) invalid(key, format string, args ...any) {
	c.err = multierr.Append(c.err, invoicepdf.InvalidValue(c.path, key, fmt.Sprintf(format, args...)))
}

func (c *checker) text(key string, v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		c.missing(key)
		return ""
	}
	return *v
}

func (c *checker) positive(key string, v *float64) float64 {
	if v == nil {
		c.missing(key)
		return 0
	}
	if *v <= 0 {
		c.invalid(key, "must be positive, got %g", *v)
	}
	return *v
}

func (c *checker) nonNegative(key string, v *float64) float64 {
	if v == nil {
		c.missing(key)
		return 0
	}
	if *v < 0 {
		c.invalid(key, "must not be negative, got %g", *v)
	}
	return *v
}

func (c *checker) optional(key string, v *float64) float64 {
	if v == nil {
		return 0
	}
	if *v < 0 {
		c.invalid(key, "must not be negative, got %g", *v)
	}
	return *v
}

func (c *checker) rgb(key string, v []int) RGB {
	if len(v) != 3 {
		c.invalid(key, "want [r, g, b], got %d components", len(v))
		return RGB{}
	}
	for _, n := range v {
		if n < 0 || n > 255 {
			c.invalid(key, "component %d out of range 0-255", n)
			return RGB{}
		}
	}
	return RGB{R: v[0], G: v[1], B: v[2]}
}

// openable checks that a referenced resource can be read now rather than
// midway through rendering.
func (c *checker) openable(key, file string) {
	f, err := os.Open(file)
	if err != nil {
		c.err = multierr.Append(c.err, &invoicepdf.ConfigurationError{
			Key:  key,
			Path: c.path,
			Err:  fmt.Errorf("%w: %v", invoicepdf.ErrResourceUnavailable, err),
		})
		return
	}
	f.Close()
}

// fontFile checks that a font can be read and parsed as TrueType.
func (c *checker) fontFile(key, file string) {
	b, err := os.ReadFile(file)
	if err == nil {
		err = CheckTrueType(b)
	}
	if err != nil {
		c.err = multierr.Append(c.err, &invoicepdf.ConfigurationError{
			Key:  key,
			Path: c.path,
			Err:  fmt.Errorf("%w: %s: %v", invoicepdf.ErrResourceUnavailable, file, err),
		})
	}
}
