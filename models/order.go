package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order payment lifecycle states.
const (
	StatusPending       = "pending"
	StatusPaid          = "paid"
	StatusPartiallyPaid = "partially_paid"
	StatusCompleted     = "completed"
	StatusCancelled     = "cancelled"
)

// Payment plans. "half" means a 50% deposit was taken at checkout.
const (
	PlanFull = "full"
	PlanHalf = "half"
)

// Address is stored as jsonb on the order. The zero value means "not provided".
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

func (a Address) IsZero() bool {
	return a.Line1 == "" && a.Line2 == "" && a.City == "" && a.Postcode == "" && a.Country == ""
}

type Order struct {
	Id         string           `json:"id" gorm:"primaryKey"`
	CustomerId *string          `json:"-"`
	Customer   *CustomerProfile `json:"customer" gorm:"foreignKey:CustomerId;references:Id"`

	Status        string `json:"status" gorm:"type:VARCHAR(20);default:pending"`
	PaymentMethod string `json:"payment_method" gorm:"type:VARCHAR(20)"` // paypal | bank_transfer | card
	PaymentPlan   string `json:"payment_plan" gorm:"type:VARCHAR(10)"`   // full | half; empty means full

	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	AmountPaid      decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2)"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" gorm:"type:numeric(12,2)"`

	TrackingNumber *string `json:"tracking_number"`

	BillingAddress  datatypes.JSONType[Address] `json:"billing_address" gorm:"type:jsonb"`
	ShippingAddress datatypes.JSONType[Address] `json:"shipping_address" gorm:"type:jsonb"`

	// Legacy single-product fields. Orders created before the order_items table
	// existed carry the purchased product directly on the row.
	ProductName  *string          `json:"product_name"`
	Quantity     *int             `json:"quantity"`
	ProductPrice *decimal.Decimal `json:"product_price" gorm:"type:numeric(12,2)"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if order.Id == "" {
		order.Id = uuid.NewString()
	}
	return
}

type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderId   string          `json:"-" gorm:"index"`
	ProductId *string         `json:"product_id"`
	Product   *Product        `json:"product" gorm:"foreignKey:ProductId;references:Id"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
}
