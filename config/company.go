package config

import (
	"io"
	"unicode/utf8"

	"github.com/lvillar/invoicepdf"
)

type rawCompany struct {
	Name     *string   `json:"name" yaml:"name"`
	Address  *string   `json:"address" yaml:"address"`
	Email    *string   `json:"email" yaml:"email"`
	TaxID    *string   `json:"tax_id" yaml:"tax_id"`
	LogoPath string    `json:"logo_path" yaml:"logo_path"`
	Terms    *[]string `json:"terms" yaml:"terms"`
}

func decodeCompany(r io.Reader, format Format, path string) (*invoicepdf.CompanyProfile, error) {
	var raw rawCompany
	if err := decode(r, format, false, &raw); err != nil {
		return nil, decodeError(path, err)
	}

	c := &checker{path: path}
	company := &invoicepdf.CompanyProfile{
		Name:     c.text("name", raw.Name),
		Address:  c.text("address", raw.Address),
		Email:    c.text("email", raw.Email),
		TaxID:    c.text("tax_id", raw.TaxID),
		LogoPath: raw.LogoPath,
	}
	if company.TaxID != "" && utf8.RuneCountInString(company.TaxID) < 4 {
		c.invalid("tax_id", "must have at least 4 characters")
	}
	if raw.Terms == nil {
		c.missing("terms")
	} else {
		company.Terms = append([]string(nil), (*raw.Terms)...)
	}

	if c.err != nil {
		return nil, c.err
	}
	return company, nil
}
