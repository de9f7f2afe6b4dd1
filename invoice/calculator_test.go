package invoice

import (
	"testing"

	"autoparts-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotalsVAT(t *testing.T) {
	items := []LineItem{
		{Name: "Brake Disc", Quantity: 2, UnitPrice: dec("30.00")},
		{Name: "Oil Filter", Quantity: 4, UnitPrice: dec("10.00")},
	}

	totals := CalculateTotals(models.Order{}, items)

	assert.True(t, totals.Subtotal.Equal(dec("100.00")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.VAT.Equal(dec("20.00")), "vat = %s", totals.VAT)
	assert.True(t, totals.Total.Equal(dec("120.00")), "total = %s", totals.Total)
}

func TestCalculateTotalsRounding(t *testing.T) {
	// 3 x 9.99 = 29.97, VAT 5.994 rounds to 5.99
	items := []LineItem{{Quantity: 3, UnitPrice: dec("9.99")}}

	totals := CalculateTotals(models.Order{}, items)

	assert.True(t, totals.VAT.Equal(dec("5.99")), "vat = %s", totals.VAT)
	assert.True(t, totals.Total.Equal(dec("35.96")), "total = %s", totals.Total)
}

func TestCalculateTotalsPlanDefaults(t *testing.T) {
	totals := CalculateTotals(models.Order{}, nil)

	assert.Equal(t, models.PlanFull, totals.PaymentPlan)
	assert.True(t, totals.AmountPaid.IsZero())
	assert.True(t, totals.RemainingAmount.IsZero())
}

func TestCalculateTotalsFullPlanZeroesRemaining(t *testing.T) {
	// A stale remaining_amount on a full-payment order must display as zero.
	order := models.Order{
		PaymentPlan:     models.PlanFull,
		AmountPaid:      dec("120.00"),
		RemainingAmount: dec("60.00"),
	}

	totals := CalculateTotals(order, nil)

	assert.True(t, totals.RemainingAmount.IsZero())
	assert.True(t, totals.AmountPaid.Equal(dec("120.00")))
}

func TestCalculateTotalsHalfPlanKeepsRemaining(t *testing.T) {
	order := models.Order{
		PaymentPlan:     models.PlanHalf,
		AmountPaid:      dec("60.00"),
		RemainingAmount: dec("60.00"),
	}

	totals := CalculateTotals(order, nil)

	assert.Equal(t, models.PlanHalf, totals.PaymentPlan)
	assert.True(t, totals.RemainingAmount.Equal(dec("60.00")))
}
