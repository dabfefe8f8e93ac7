package config

import (
	"io"

	"github.com/lvillar/invoicepdf"
)

type rawInvoice struct {
	Number        *string                `json:"invoice_number"`
	Date          *string                `json:"date"`
	DueDate       *string                `json:"due_date"`
	ClientName    *string                `json:"client_name"`
	ClientAddress *string                `json:"client_address"`
	Items         *[]invoicepdf.LineItem `json:"services"`
	PaymentStatus string                 `json:"payment_status"`
	PaymentDate   string                 `json:"payment_date"`
	PaymentDates  []string               `json:"payment_dates"`
}

func decodeInvoice(r io.Reader, path string) (*invoicepdf.Invoice, error) {
	var raw rawInvoice
	if err := decode(r, JSON, false, &raw); err != nil {
		return nil, decodeError(path, err)
	}

	c := &checker{path: path}
	inv := &invoicepdf.Invoice{
		Number:        c.text("invoice_number", raw.Number),
		Date:          c.text("date", raw.Date),
		DueDate:       c.text("due_date", raw.DueDate),
		ClientName:    c.text("client_name", raw.ClientName),
		ClientAddress: c.text("client_address", raw.ClientAddress),
		PaymentStatus: raw.PaymentStatus,
		PaymentDate:   raw.PaymentDate,
		PaymentDates:  raw.PaymentDates,
	}
	if raw.Items == nil {
		c.missing("services")
	} else {
		inv.Items = *raw.Items
	}

	if c.err != nil {
		return nil, c.err
	}
	return inv, nil
}
