package routes

import (
	"autoparts-backend/controllers"
	"autoparts-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controllers bundles the constructed handlers for route registration.
type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Invoices *controllers.InvoiceController
}

// Register wires all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, ctl Controllers) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", ctl.Auth.Register)
	api.Post("/login", ctl.Auth.Login)
	api.Post("/logout", ctl.Auth.Logout)

	// Public storefront
	api.Get("/products", ctl.Products.GetProducts)
	api.Get("/products/:id", ctl.Products.GetProduct)
	api.Post("/orders", middlewares.Idempotency(db), ctl.Orders.CreateOrder)
	api.Get("/orders/:orderId/invoice", ctl.Invoices.DownloadInvoice)

	// Staff endpoints (JWT auth)
	staff := api.Group("")
	staff.Use(middlewares.IsAuthenticatedHeader())

	staff.Post("/products", ctl.Products.CreateProduct)
	staff.Put("/products/:id", ctl.Products.UpdateProduct)

	staff.Get("/orders", ctl.Orders.GetOrders)
	staff.Get("/orders/:id", ctl.Orders.GetOrder)
	staff.Put("/orders/:id/status", ctl.Orders.UpdateOrderStatus)
}
