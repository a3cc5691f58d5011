package handlers

import (
	"log"

	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderResult is the response of createOrder.
type OrderResult struct {
	Success bool          `json:"success"`
	Order   *models.Order `json:"order"`
	Message string        `json:"message"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleGetOrders lists orders matching the query filters, with their
// customer and products.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	var filter models.OrderFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c, err)
	}
	orders, err := h.service.GetAllOrders(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	order, err := h.service.GetOrderByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "retrieve order")
	}
	return c.JSON(order)
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input models.OrderInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	// The service handles validation, the transactional write and event publishing.
	order, err := h.service.CreateOrder(c.UserContext(), input)
	if err != nil {
		return respondError(c, err, "create order")
	}

	log.Printf("Order %d created for customer %d, total %s", order.ID, order.CustomerID, order.TotalAmount.StringFixed(2))
	return c.Status(fiber.StatusCreated).JSON(OrderResult{
		Success: true,
		Order:   order,
		Message: "Order created successfully.",
	})
}
