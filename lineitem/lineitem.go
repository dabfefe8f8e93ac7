// Package lineitem classifies raw invoice line items into services, products
// and flat charges.
package lineitem

import (
	"github.com/shopspring/decimal"

	"github.com/lvillar/invoicepdf"
)

// Kind is the shape a line item was classified as.
type Kind int

const (
	Unclassified Kind = iota
	Service
	Product
	FlatCharge
)

func (k Kind) String() string {
	switch k {
	case Service:
		return "service"
	case Product:
		return "product"
	case FlatCharge:
		return "flat charge"
	default:
		return "unclassified"
	}
}

// Item is a classified line item. Only the fields of its Kind are set.
type Item struct {
	Kind        Kind
	Index       int // position in the original item list
	Date        string
	Description string

	// Service: Units is hours, Price is the hourly rate.
	// Product: Units is the quantity, Price is the unit price.
	Units decimal.Decimal
	Price decimal.Decimal

	// FlatCharge only.
	Flat decimal.Decimal
}

// Amount returns the billable amount of the item. Unclassified items are worth
// zero.
func (it Item) Amount() decimal.Decimal {
	switch it.Kind {
	case Service, Product:
		return it.Units.Mul(it.Price)
	case FlatCharge:
		return it.Flat
	default:
		return decimal.Zero
	}
}

// Classify resolves the shape of a raw line item. The rule is applied in
// priority order: hours and rate, then quantity and unit price, then amount.
func Classify(index int, raw invoicepdf.LineItem) Item {
	it := Item{
		Index:       index,
		Date:        raw.Date,
		Description: raw.Description,
	}
	switch {
	case raw.Hours != nil && raw.Rate != nil:
		it.Kind = Service
		it.Units, it.Price = *raw.Hours, *raw.Rate
	case raw.Quantity != nil && raw.UnitPrice != nil:
		it.Kind = Product
		it.Units, it.Price = *raw.Quantity, *raw.UnitPrice
	case raw.Amount != nil:
		it.Kind = FlatCharge
		it.Flat = *raw.Amount
	}
	return it
}

// Groups is the result of Partition. Each slice keeps the relative order of
// the input.
type Groups struct {
	Services     []Item
	Products     []Item
	FlatCharges  []Item
	Unclassified []Item
}

// Partition classifies every raw item and splits them by kind.
func Partition(raw []invoicepdf.LineItem) Groups {
	var g Groups
	for i, r := range raw {
		it := Classify(i, r)
		switch it.Kind {
		case Service:
			g.Services = append(g.Services, it)
		case Product:
			g.Products = append(g.Products, it)
		case FlatCharge:
			g.FlatCharges = append(g.FlatCharges, it)
		default:
			g.Unclassified = append(g.Unclassified, it)
		}
	}
	return g
}

// Total sums the amounts of items.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount())
	}
	return sum
}

// Strict returns a MalformedLineItemError for the first unclassified item, or
// nil when every item was classified.
func (g Groups) Strict() error {
	if len(g.Unclassified) == 0 {
		return nil
	}
	it := g.Unclassified[0]
	return &invoicepdf.MalformedLineItemError{Index: it.Index, Description: it.Description}
}
