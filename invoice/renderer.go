package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"autoparts-backend/models"
	"autoparts-backend/utils"

	"github.com/shopspring/decimal"
)

// Fixed company identity printed on every invoice.
const (
	companyName    = "RPM Auto Parts Ltd"
	companyAddress = "Unit 7, Millbrook Trading Estate, Southampton SO15 0HW, United Kingdom"
	companyPhone   = "+44 23 8001 4455"
	companyEmail   = "support@rpmautoparts.co.uk"
)

// longDateLayout formats dates the en-GB way: "23 October 2025".
const longDateLayout = "2 January 2006"

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Order.Id}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #b91c1c;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .brand { font-size: 14px; }
    .brand strong { font-size: 18px; }
    .meta { text-align: right; font-size: 14px; }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .addresses { display: flex; gap: 48px; margin-bottom: 24px; }
    .section { font-size: 14px; margin-bottom: 24px; }
    .tracking {
      margin-top: 8px;
      padding: 6px 8px;
      background: #f3f4f6;
      font-size: 13px;
    }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.num, th.num { text-align: right; }
    .sub { color: #6b7280; font-size: 12px; }
    .totals { width: 320px; margin-left: auto; margin-top: 12px; }
    .totals td { border-bottom: none; padding: 4px 10px; }
    .totals .grand td { border-top: 1px solid #111827; font-weight: bold; }
    .plan td {
      background: #fef3c7;
      font-weight: bold;
    }
    .remaining td { color: #b91c1c; font-weight: bold; }
    .print-bar { margin: 24px 0; }
    .print-bar button {
      padding: 8px 16px;
      border: 1px solid #b91c1c;
      background: #b91c1c;
      color: #ffffff;
      cursor: pointer;
    }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
    @media print {
      .no-print { display: none; }
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div class="brand">
        <strong>{{.CompanyName}}</strong><br />
        {{.CompanyAddress}}<br />
        {{.CompanyPhone}} &middot; {{.CompanyEmail}}
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div><strong>{{.Order.Id}}</strong></div>
        <div>Date: {{longDate .Order.CreatedAt}}</div>
        <div>Status: {{upper .Order.Status}}</div>
      </div>
    </div>

    <div class="addresses">
      <div class="section">
        <div class="label">Bill To:</div>
        {{if .Customer}}
        <div>{{.Customer.FirstName}} {{.Customer.LastName}}</div>
        <div>{{.Customer.Email}}</div>
        {{else}}
        <div>Customer Details Not Available</div>
        {{end}}
        {{if .Billing}}
        <div>{{.Billing.Line1}}</div>
        {{if .Billing.Line2}}<div>{{.Billing.Line2}}</div>{{end}}
        <div>{{.Billing.City}}, {{.Billing.Postcode}}</div>
        <div>{{.Billing.Country}}</div>
        {{end}}
      </div>
      <div class="section">
        <div class="label">Ship To:</div>
        {{if .Shipping}}
        <div>{{.Shipping.Line1}}</div>
        {{if .Shipping.Line2}}<div>{{.Shipping.Line2}}</div>{{end}}
        <div>{{.Shipping.City}}, {{.Shipping.Postcode}}</div>
        <div>{{.Shipping.Country}}</div>
        {{else}}
        <div>Same as billing address</div>
        {{end}}
        {{if .Order.TrackingNumber}}
        <div class="tracking">Tracking Number: {{.Order.TrackingNumber}}</div>
        {{end}}
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th>Category</th>
          <th class="num">Quantity</th>
          <th class="num">Unit Price</th>
          <th class="num">Line Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>
            {{.Name}}
            {{if .Description}}<div class="sub">{{.Description}}</div>{{end}}
          </td>
          <td>{{.Category}}</td>
          <td class="num">{{.Quantity}}</td>
          <td class="num">{{money .UnitPrice}}</td>
          <td class="num">{{money .LineTotal}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <table class="totals">
      <tr><td>Subtotal</td><td class="num">{{money .Totals.Subtotal}}</td></tr>
      <tr><td>VAT (20%)</td><td class="num">{{money .Totals.VAT}}</td></tr>
      <tr class="grand"><td>Total</td><td class="num">{{money .Totals.Total}}</td></tr>
      {{if .HalfPlan}}
      <tr class="plan"><td colspan="2">Payment Plan: 50% Deposit</td></tr>
      <tr><td>Amount Paid</td><td class="num">{{money .Totals.AmountPaid}}</td></tr>
      {{if .RemainingDue}}
      <tr class="remaining"><td>Remaining Balance</td><td class="num">{{money .Totals.RemainingAmount}}</td></tr>
      {{end}}
      {{else}}
      <tr><td>Amount Paid</td><td class="num">{{money .Totals.AmountPaid}}</td></tr>
      {{end}}
    </table>

    <div class="print-bar no-print">
      <button onclick="window.print()">Print Invoice</button>
    </div>

    <div class="footer">
      <div>Thank you for your business!</div>
      <div>Generated on {{longDate .GeneratedAt}}</div>
      <div>Questions about this invoice? Contact {{.CompanyEmail}}</div>
    </div>
  </div>
</body>
</html>
`

// Renderer produces a self-contained HTML invoice. html/template escapes every
// interpolated field, so customer-supplied text cannot inject markup.
type Renderer struct {
	tpl *template.Template
	now func() time.Time
}

func NewRenderer() *Renderer {
	return NewRendererWithClock(time.Now)
}

// NewRendererWithClock fixes the "generated on" footer timestamp, which keeps
// rendered output deterministic under test.
func NewRendererWithClock(now func() time.Time) *Renderer {
	funcs := template.FuncMap{
		"money":    utils.FormatGBP,
		"longDate": formatLongDate,
		"upper":    strings.ToUpper,
	}
	return &Renderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
		now: now,
	}
}

type itemRow struct {
	Name        string
	Category    string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type renderData struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	Order    models.Order
	Customer *models.CustomerProfile
	Billing  *models.Address
	Shipping *models.Address
	Items    []itemRow
	Totals   Totals

	HalfPlan     bool
	RemainingDue bool
	GeneratedAt  time.Time
}

// Render produces the complete invoice document for one order.
func (r *Renderer) Render(order models.Order, items []LineItem, totals Totals) (string, error) {
	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, itemRow{
			Name:        item.Name,
			Category:    item.Category,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	data := renderData{
		CompanyName:    companyName,
		CompanyAddress: companyAddress,
		CompanyPhone:   companyPhone,
		CompanyEmail:   companyEmail,
		Order:          order,
		Customer:       order.Customer,
		Billing:        presentAddress(order.BillingAddress.Data()),
		Shipping:       presentAddress(order.ShippingAddress.Data()),
		Items:          rows,
		Totals:         totals,
		HalfPlan:       totals.PaymentPlan == models.PlanHalf,
		RemainingDue:   totals.PaymentPlan == models.PlanHalf && totals.RemainingAmount.IsPositive(),
		GeneratedAt:    r.now(),
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}

// presentAddress maps the stored jsonb value to a pointer the template can
// nil-check. A zero address means none was captured.
func presentAddress(a models.Address) *models.Address {
	if a.IsZero() {
		return nil
	}
	return &a
}

func formatLongDate(t time.Time) string {
	return t.Format(longDateLayout)
}
