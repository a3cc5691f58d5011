package handlers

import (
	"fmt"
	"slices"

	"crm/internal/export"
	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/tealeg/xlsx"
)

// ExportHandler serves xlsx downloads of the listings.
type ExportHandler struct {
	customers *services.CustomerService
	products  *services.ProductService
	orders    *services.OrderService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(customers *services.CustomerService, products *services.ProductService, orders *services.OrderService) *ExportHandler {
	return &ExportHandler{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// RegisterRoutes registers the export routes with the Fiber app.
func (h *ExportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/export/:entity", h.HandleExport)
}

// HandleExport writes the unfiltered listing of :entity as a workbook.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	entity := c.Params("entity")
	if !slices.Contains(export.Entities, entity) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown export %q", entity),
		})
	}

	file, err := h.build(c, entity)
	if err != nil {
		return respondError(c, err, "export "+entity)
	}

	c.Attachment(entity + ".xlsx")
	c.Set(fiber.HeaderContentType, export.ContentType)
	if err := export.Write(c, file); err != nil {
		return respondError(c, err, "export "+entity)
	}
	return nil
}

func (h *ExportHandler) build(c *fiber.Ctx, entity string) (*xlsx.File, error) {
	ctx := c.UserContext()
	switch entity {
	case "customers":
		customers, err := h.customers.GetAllCustomers(ctx, models.CustomerFilter{})
		if err != nil {
			return nil, err
		}
		return export.Customers(customers)
	case "products":
		products, err := h.products.GetAllProducts(ctx, models.ProductFilter{})
		if err != nil {
			return nil, err
		}
		return export.Products(products)
	default:
		orders, err := h.orders.GetAllOrders(ctx, models.OrderFilter{})
		if err != nil {
			return nil, err
		}
		return export.Orders(orders)
	}
}
