package invoice

import (
	"autoparts-backend/models"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed UK VAT rate applied to every invoice subtotal.
// It is a constant of the system, not configurable per order.
var VATRate = decimal.NewFromInt(20).Div(decimal.NewFromInt(100))

// Totals are derived fresh on every invoice request and never persisted.
type Totals struct {
	Subtotal        decimal.Decimal
	VAT             decimal.Decimal
	Total           decimal.Decimal
	PaymentPlan     string
	AmountPaid      decimal.Decimal
	RemainingAmount decimal.Decimal
}

// CalculateTotals derives invoice totals from the order and its resolved
// lines. Pure and defensive: absent fields default, nothing errors.
func CalculateTotals(order models.Order, items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = subtotal.Round(2)
	vat := subtotal.Mul(VATRate).Round(2)

	t := Totals{
		Subtotal:    subtotal,
		VAT:         vat,
		Total:       subtotal.Add(vat),
		PaymentPlan: order.PaymentPlan,
		AmountPaid:  order.AmountPaid,
	}
	if t.PaymentPlan == "" {
		t.PaymentPlan = models.PlanFull
	}
	// A remaining balance is only meaningful on the deposit plan; for full
	// payment it displays as zero regardless of what the row holds.
	if t.PaymentPlan == models.PlanHalf {
		t.RemainingAmount = order.RemainingAmount
	}
	return t
}
