package handlers

import (
	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductResult is the response of createProduct.
type ProductResult struct {
	Success bool            `json:"success"`
	Product *models.Product `json:"product"`
	Message string          `json:"message"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service           *services.ProductService
	lowStockThreshold int
	restockIncrement  int
}

// NewProductHandler creates a new ProductHandler. Restock requests use
// threshold and increment.
func NewProductHandler(service *services.ProductService, threshold, increment int) *ProductHandler {
	return &ProductHandler{
		service:           service,
		lowStockThreshold: threshold,
		restockIncrement:  increment,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Post("/restock", h.HandleRestockLowStock)
}

// HandleGetProducts lists products matching the query filters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c, err)
	}
	products, err := h.service.GetAllProducts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return respondError(c, err, "create product")
	}

	return c.Status(fiber.StatusCreated).JSON(ProductResult{
		Success: true,
		Product: product,
		Message: "Product created successfully.",
	})
}

// HandleRestockLowStock tops up every product below the stock threshold.
func (h *ProductHandler) HandleRestockLowStock(c *fiber.Ctx) error {
	result, err := h.service.RestockLowStock(c.UserContext(), h.lowStockThreshold, h.restockIncrement)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.RestockResult{
			Success:         false,
			Message:         err.Error(),
			UpdatedProducts: []models.Product{},
		})
	}
	return c.JSON(result)
}
