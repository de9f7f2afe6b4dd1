package invoice

import (
	"testing"
	"time"

	"autoparts-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func fixedClock() time.Time {
	return time.Date(2025, time.October, 24, 9, 30, 0, 0, time.UTC)
}

func testRenderer() *Renderer {
	return NewRendererWithClock(fixedClock)
}

func baseOrder() models.Order {
	return models.Order{
		Id:        "ord-1001",
		Status:    models.StatusPaid,
		CreatedAt: time.Date(2025, time.October, 23, 12, 0, 0, 0, time.UTC),
		Customer: &models.CustomerProfile{
			FirstName: "Jamie",
			LastName:  "Carter",
			Email:     "jamie@example.com",
		},
		BillingAddress: datatypes.NewJSONType(models.Address{
			Line1:    "14 Castle Way",
			City:     "Southampton",
			Postcode: "SO14 2BX",
			Country:  "United Kingdom",
		}),
	}
}

func baseItems() []LineItem {
	return []LineItem{
		{Name: "Brake Disc", Category: "Brakes", Description: "Front axle, vented", Quantity: 2, UnitPrice: dec("30.00")},
	}
}

func render(t *testing.T, order models.Order, items []LineItem) string {
	t.Helper()
	html, err := testRenderer().Render(order, items, CalculateTotals(order, items))
	require.NoError(t, err)
	return html
}

func TestRenderHeaderAndDates(t *testing.T) {
	html := render(t, baseOrder(), baseItems())

	assert.Contains(t, html, "RPM Auto Parts Ltd")
	assert.Contains(t, html, "ord-1001")
	assert.Contains(t, html, "23 October 2025")       // order date, en-GB long form
	assert.Contains(t, html, "Generated on 24 October 2025") // render-time footer
	assert.Contains(t, html, "PAID")                  // status uppercased
	assert.Contains(t, html, "Thank you for your business!")
}

func TestRenderLineItemsAndTotals(t *testing.T) {
	html := render(t, baseOrder(), baseItems())

	assert.Contains(t, html, "Brake Disc")
	assert.Contains(t, html, "Front axle, vented")
	assert.Contains(t, html, "Brakes")
	// subtotal 60.00, VAT 12.00, total 72.00
	assert.Contains(t, html, "£60.00")
	assert.Contains(t, html, "VAT (20%)")
	assert.Contains(t, html, "£12.00")
	assert.Contains(t, html, "£72.00")
}

func TestRenderCurrencyFormatting(t *testing.T) {
	items := []LineItem{{Name: "Engine Block", Quantity: 1, UnitPrice: dec("1234.5")}}
	html := render(t, baseOrder(), items)

	assert.Contains(t, html, "£1,234.50")
	assert.NotContains(t, html, "£1234.5")
}

func TestRenderHalfPlanRemainingBalance(t *testing.T) {
	order := baseOrder()
	order.PaymentPlan = models.PlanHalf
	order.AmountPaid = dec("60.00")
	order.RemainingAmount = dec("60.00")

	items := []LineItem{{Name: "Clutch Kit", Quantity: 1, UnitPrice: dec("100.00")}}
	html := render(t, order, items)

	assert.Contains(t, html, "Payment Plan: 50% Deposit")
	assert.Contains(t, html, "Amount Paid")
	assert.Contains(t, html, "Remaining Balance")
	assert.Contains(t, html, "£60.00")
}

func TestRenderHalfPlanNoRemainingRowWhenSettled(t *testing.T) {
	order := baseOrder()
	order.PaymentPlan = models.PlanHalf
	order.AmountPaid = dec("120.00")
	order.RemainingAmount = dec("0.00")

	html := render(t, order, baseItems())

	assert.Contains(t, html, "Payment Plan: 50% Deposit")
	assert.NotContains(t, html, "Remaining Balance")
}

func TestRenderFullPlanHasNoDepositMarker(t *testing.T) {
	order := baseOrder()
	order.PaymentPlan = models.PlanFull
	order.AmountPaid = dec("72.00")

	html := render(t, order, baseItems())

	assert.NotContains(t, html, "Payment Plan: 50% Deposit")
	assert.NotContains(t, html, "Remaining Balance")
	assert.Contains(t, html, "Amount Paid")
}

func TestRenderShippingFallback(t *testing.T) {
	// No shipping address captured: the block says so explicitly.
	html := render(t, baseOrder(), baseItems())
	assert.Contains(t, html, "Same as billing address")
}

func TestRenderShippingAddressAndTracking(t *testing.T) {
	order := baseOrder()
	order.ShippingAddress = datatypes.NewJSONType(models.Address{
		Line1:    "Unit 3, Dockside Park",
		Line2:    "Berth 12",
		City:     "Portsmouth",
		Postcode: "PO1 3AX",
		Country:  "United Kingdom",
	})
	tracking := "TRK-998877"
	order.TrackingNumber = &tracking

	html := render(t, order, baseItems())

	assert.Contains(t, html, "Unit 3, Dockside Park")
	assert.Contains(t, html, "Berth 12")
	assert.Contains(t, html, "Portsmouth, PO1 3AX")
	assert.Contains(t, html, "Tracking Number: TRK-998877")
	assert.NotContains(t, html, "Same as billing address")
}

func TestRenderMissingBillingAddress(t *testing.T) {
	order := baseOrder()
	order.BillingAddress = datatypes.JSONType[models.Address]{}

	html := render(t, order, baseItems())

	// Header and customer details stay; the address lines are simply absent.
	assert.Contains(t, html, "Bill To:")
	assert.Contains(t, html, "Jamie Carter")
	assert.Contains(t, html, "jamie@example.com")
	assert.NotContains(t, html, "14 Castle Way")
}

func TestRenderMissingCustomerProfile(t *testing.T) {
	order := baseOrder()
	order.Customer = nil

	html := render(t, order, baseItems())

	assert.Contains(t, html, "Customer Details Not Available")
}

func TestRenderEscapesCustomerSuppliedText(t *testing.T) {
	order := baseOrder()
	order.Customer.FirstName = `<script>alert("x")</script>`

	items := []LineItem{{Name: "<b>Turbo</b>", Quantity: 1, UnitPrice: dec("10.00")}}
	html := render(t, order, items)

	assert.NotContains(t, html, `<script>alert`)
	assert.NotContains(t, html, "<b>Turbo</b>")
	assert.Contains(t, html, "&lt;b&gt;Turbo&lt;/b&gt;")
}

func TestRenderPrintControlHiddenInPrint(t *testing.T) {
	html := render(t, baseOrder(), baseItems())

	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, `class="print-bar no-print"`)
	assert.Contains(t, html, "@media print")
}

func TestRenderDeterministic(t *testing.T) {
	order := baseOrder()
	items := baseItems()
	totals := CalculateTotals(order, items)

	r := testRenderer()
	first, err := r.Render(order, items, totals)
	require.NoError(t, err)
	second, err := r.Render(order, items, totals)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
