package controllers

import (
	"autoparts-backend/middlewares"
	"autoparts-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductController exposes the catalog: public reads, staff writes.
type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type CreateProductDTO struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (ctl *ProductController) CreateProduct(c *fiber.Ctx) error {
	var dto CreateProductDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	product := models.Product{
		Name:        dto.Name,
		Category:    dto.Category,
		Description: dto.Description,
		Price:       decimal.NewFromFloat(dto.Price).Round(2),
		Stock:       dto.Stock,
		Active:      true,
	}

	if err := ctl.DB.Create(&product).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.JSON(product)
}

func (ctl *ProductController) GetProducts(c *fiber.Ctx) error {
	var products []models.Product

	q := ctl.DB.Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&products).Error; err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": "Could not list products",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

func (ctl *ProductController) GetProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(product)
}

type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

// UpdateProduct applies a partial update; only fields present in the body change.
func (ctl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	var dto UpdateProductDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{"message": "product not found"})
	}

	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Price != nil {
		updates["price"] = decimal.NewFromFloat(*dto.Price).Round(2)
	}
	if dto.Stock != nil {
		updates["stock"] = *dto.Stock
	}
	if dto.Active != nil {
		updates["active"] = *dto.Active
	}

	if len(updates) > 0 {
		if err := ctl.DB.Model(&product).Updates(updates).Error; err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"message": "Could not update product",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(product)
}
