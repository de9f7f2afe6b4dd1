package controllers

import (
	"autoparts-backend/invoice"
	"autoparts-backend/middlewares"
	"autoparts-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderController handles checkout and the staff order views.
type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

type AddressDTO struct {
	Line1    string `json:"line1" validate:"required"`
	Line2    string `json:"line2"`
	City     string `json:"city" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

func (a *AddressDTO) toModel() models.Address {
	return models.Address{
		Line1:    a.Line1,
		Line2:    a.Line2,
		City:     a.City,
		Postcode: a.Postcode,
		Country:  a.Country,
	}
}

type CheckoutItemDTO struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutCustomerDTO struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

type CheckoutDTO struct {
	Customer        *CheckoutCustomerDTO `json:"customer"`
	PaymentMethod   string               `json:"payment_method" validate:"required,oneof=paypal bank_transfer card"`
	PaymentPlan     string               `json:"payment_plan" validate:"omitempty,oneof=full half"`
	BillingAddress  *AddressDTO          `json:"billing_address"`
	ShippingAddress *AddressDTO          `json:"shipping_address"`
	Items           []CheckoutItemDTO    `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder is the checkout endpoint: validates the cart, prices every line
// from the live catalog, decrements stock, and stores the order with its
// VAT-inclusive total.
func (ctl *OrderController) CreateOrder(c *fiber.Ctx) error {
	var dto CheckoutDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	if dto.Customer != nil {
		if err := middlewares.ValidateStruct(dto.Customer); err != nil {
			return err
		}
	}

	tx := ctl.DB.Begin()
	if tx.Error != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "could not begin transaction"})
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(dto.Items))
	for _, line := range dto.Items {
		var product models.Product
		if err := tx.First(&product, "id = ? AND active = ?", line.ProductID, true).Error; err != nil {
			tx.Rollback()
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{"message": "unknown product: " + line.ProductID})
		}
		if product.Stock < line.Quantity {
			tx.Rollback()
			c.Status(fiber.StatusConflict)
			return c.JSON(fiber.Map{"message": "insufficient stock for " + product.Name})
		}
		if err := tx.Model(&product).Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
			tx.Rollback()
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{"message": "could not reserve stock", "error": err.Error()})
		}

		productID := product.Id
		items = append(items, models.OrderItem{
			ProductId: &productID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	subtotal = subtotal.Round(2)
	vat := subtotal.Mul(invoice.VATRate).Round(2)
	total := subtotal.Add(vat)

	plan := dto.PaymentPlan
	if plan == "" {
		plan = models.PlanFull
	}

	order := models.Order{
		Status:        models.StatusPending,
		PaymentMethod: dto.PaymentMethod,
		PaymentPlan:   plan,
		TotalAmount:   total,
		AmountPaid:    decimal.Zero,
		Items:         items,
	}
	if plan == models.PlanHalf {
		order.RemainingAmount = total
	}

	if dto.Customer != nil {
		customer := models.CustomerProfile{
			FirstName: dto.Customer.FirstName,
			LastName:  dto.Customer.LastName,
			Email:     dto.Customer.Email,
		}
		if err := tx.Create(&customer).Error; err != nil {
			tx.Rollback()
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{"message": "could not store customer", "error": err.Error()})
		}
		order.CustomerId = &customer.Id
		order.Customer = &customer
	}

	if dto.BillingAddress != nil {
		order.BillingAddress = datatypes.NewJSONType(dto.BillingAddress.toModel())
	}
	if dto.ShippingAddress != nil {
		order.ShippingAddress = datatypes.NewJSONType(dto.ShippingAddress.toModel())
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "Could not create order", "error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "could not commit order", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (ctl *OrderController) GetOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := ctl.DB.Preload("Customer").Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{"message": "Could not list orders", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"orders":  orders,
		"message": "success",
	})
}

func (ctl *OrderController) GetOrder(c *fiber.Ctx) error {
	var order models.Order
	err := ctl.DB.Preload("Customer").Preload("Items.Product").First(&order, "id = ?", c.Params("id")).Error
	if err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "order not found"})
	}
	return c.JSON(order)
}

type UpdateOrderStatusDTO struct {
	Status         *string  `json:"status" validate:"omitempty,oneof=pending paid partially_paid completed cancelled"`
	AmountPaid     *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	TrackingNumber *string  `json:"tracking_number"`
}

// UpdateOrderStatus records payments and fulfilment progress. On the half
// plan the remaining balance is kept equal to total minus what was paid.
func (ctl *OrderController) UpdateOrderStatus(c *fiber.Ctx) error {
	var dto UpdateOrderStatusDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	var order models.Order
	if err := ctl.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "order not found"})
	}

	updates := map[string]any{}
	if dto.Status != nil {
		updates["status"] = *dto.Status
	}
	if dto.TrackingNumber != nil {
		updates["tracking_number"] = *dto.TrackingNumber
	}
	if dto.AmountPaid != nil {
		paid := decimal.NewFromFloat(*dto.AmountPaid).Round(2)
		updates["amount_paid"] = paid
		if order.PaymentPlan == models.PlanHalf {
			remaining := order.TotalAmount.Sub(paid)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			updates["remaining_amount"] = remaining
		}
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&order).Updates(updates).Error; err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{"message": "Could not update order", "error": err.Error()})
		}
	}

	return c.JSON(order)
}
