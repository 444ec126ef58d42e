package pricing

import (
	"github.com/fjod/maison/internal/domain"
	"github.com/shopspring/decimal"
)

// Policy holds the shipping rule applied on top of the cart subtotal.
type Policy struct {
	// FreeShippingThreshold is exclusive: shipping is free only when subtotal is strictly greater.
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// Totals is the derived money summary of a set of lines.
type Totals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(500),
		FlatShippingFee:       decimal.NewFromInt(25),
	}
}

// ItemCount sums the quantities of all lines.
func ItemCount(lines []domain.LineItem) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// Subtotal sums price * quantity over all lines.
func Subtotal(lines []domain.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

func (p Policy) Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(p.Shipping(subtotal))
}

// Summarize computes every derived figure for lines in one pass.
func (p Policy) Summarize(lines []domain.LineItem) Totals {
	subtotal := Subtotal(lines)
	shipping := p.Shipping(subtotal)
	return Totals{
		ItemCount: ItemCount(lines),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
	}
}
