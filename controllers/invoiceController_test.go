package controllers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"autoparts-backend/controllers"
	"autoparts-backend/invoice"
	"autoparts-backend/middlewares"
	"autoparts-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")

	err = db.AutoMigrate(
		&models.CustomerProfile{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.IdempotencyKey{},
	)
	require.NoError(t, err, "failed to auto-migrate models")

	return db
}

func setupInvoiceApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := setupTestDB(t)

	clock := func() time.Time {
		return time.Date(2025, time.October, 24, 9, 30, 0, 0, time.UTC)
	}
	svc := invoice.NewServiceWithRenderer(db, invoice.NewRendererWithClock(clock))
	ctl := controllers.NewInvoiceController(svc)

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Get("/api/orders/:orderId/invoice", ctl.DownloadInvoice)

	return app, db
}

func TestDownloadInvoiceSuccess(t *testing.T) {
	app, db := setupInvoiceApp(t)

	order := models.Order{
		Status:      models.StatusPaid,
		TotalAmount: decimal.RequireFromString("72.00"),
		Items: []models.OrderItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("30.00")},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.Id+"/invoice", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	assert.Equal(t, `inline; filename="invoice-`+order.Id+`.html"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "RPM Auto Parts Ltd")
	assert.Contains(t, html, order.Id)
	assert.Contains(t, html, "£60.00") // subtotal
	assert.Contains(t, html, "£72.00") // total with VAT
}

func TestDownloadInvoiceNotFound(t *testing.T) {
	app, _ := setupInvoiceApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/no-such-order/invoice", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Order not found")
}

func TestDownloadInvoiceLegacyOrder(t *testing.T) {
	app, db := setupInvoiceApp(t)

	name := "Brake Pad"
	qty := 2
	order := models.Order{
		Status:      models.StatusPending,
		TotalAmount: decimal.RequireFromString("40.00"),
		ProductName: &name,
		Quantity:    &qty,
	}
	require.NoError(t, db.Create(&order).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.Id+"/invoice", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)

	// Synthesized line: 2 x £40.00 = £80.00 subtotal (unit price falls back
	// to the order total, independently of quantity).
	assert.Contains(t, html, "Brake Pad")
	assert.Contains(t, html, "£80.00")
	assert.Contains(t, html, "<td>Auto Parts</td>") // synthesized category cell
}
