package controllers

import (
	"errors"

	"autoparts-backend/invoice"

	"github.com/gofiber/fiber/v2"
)

// InvoiceController serves rendered order invoices.
type InvoiceController struct {
	Invoices *invoice.Service
}

func NewInvoiceController(svc *invoice.Service) *InvoiceController {
	return &InvoiceController{Invoices: svc}
}

// DownloadInvoice renders the invoice for one order. The document is sent
// inline so browsers display it for viewing/printing rather than forcing a
// download. Failures produce a JSON error body, never a partial document.
func (ctl *InvoiceController) DownloadInvoice(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	html, err := ctl.Invoices.GenerateInvoice(c.UserContext(), orderID)
	if err != nil {
		if errors.Is(err, invoice.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate invoice: " + err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/html")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="invoice-`+orderID+`.html"`)
	return c.SendString(html)
}
