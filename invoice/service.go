package invoice

import (
	"context"

	"autoparts-backend/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fallbacks applied when a product reference or legacy field is missing.
const (
	fallbackProductName = "Auto Parts"
	fallbackCategory    = "Auto Parts"
)

// LineItem is one invoice line after normalization. Every default is resolved
// here so the renderer never applies fallbacks of its own.
type LineItem struct {
	Name        string
	Category    string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderWithItems bundles an order row with its resolved invoice lines.
type OrderWithItems struct {
	Order models.Order
	Items []LineItem
}

// Service reads order data and produces rendered invoices. The database
// handle is injected at construction; nothing here touches global state.
type Service struct {
	db       *gorm.DB
	renderer *Renderer
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, renderer: NewRenderer()}
}

// NewServiceWithRenderer allows a renderer with a fixed clock.
func NewServiceWithRenderer(db *gorm.DB, r *Renderer) *Service {
	return &Service{db: db, renderer: r}
}

// FetchOrder loads one order with its line items. A failed or empty item read
// falls back to a single line synthesized from the order's legacy product
// fields, so pre-line-item orders still produce an invoice.
func (s *Service) FetchOrder(ctx context.Context, orderID string) (*OrderWithItems, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Customer").First(&order, "id = ?", orderID).Error
	if err != nil {
		log.Debug().Str("order_id", orderID).Err(err).Msg("order lookup failed")
		return nil, &NotFoundError{OrderID: orderID, Err: err}
	}

	var rows []models.OrderItem
	itemErr := s.db.WithContext(ctx).Preload("Product").Where("order_id = ?", orderID).Find(&rows).Error
	if itemErr != nil {
		log.Warn().Str("order_id", orderID).Err(itemErr).Msg("line item lookup failed, using legacy fallback")
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		item := LineItem{
			Name:      fallbackProductName,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		}
		if row.Product != nil {
			if row.Product.Name != "" {
				item.Name = row.Product.Name
			}
			item.Category = row.Product.Category
			item.Description = row.Product.Description
		}
		items = append(items, item)
	}

	if itemErr != nil || len(items) == 0 {
		items = []LineItem{legacyLineItem(order)}
	}

	return &OrderWithItems{Order: order, Items: items}, nil
}

// GenerateInvoice runs the whole pipeline: fetch, calculate, render.
func (s *Service) GenerateInvoice(ctx context.Context, orderID string) (string, error) {
	data, err := s.FetchOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	totals := CalculateTotals(data.Order, data.Items)
	return s.renderer.Render(data.Order, data.Items, totals)
}

// legacyLineItem rebuilds a single invoice line from the order's embedded
// product fields. Quantity and unit price fall back independently: the unit
// price is product_price when present, otherwise the order total — so
// quantity x price can legitimately differ from total_amount. Kept as-is for
// parity with historical invoices.
func legacyLineItem(order models.Order) LineItem {
	item := LineItem{
		Name:      fallbackProductName,
		Category:  fallbackCategory,
		Quantity:  1,
		UnitPrice: order.TotalAmount,
	}
	if order.ProductName != nil && *order.ProductName != "" {
		item.Name = *order.ProductName
	}
	if order.Quantity != nil && *order.Quantity > 0 {
		item.Quantity = *order.Quantity
	}
	if order.ProductPrice != nil {
		item.UnitPrice = *order.ProductPrice
	}
	return item
}
