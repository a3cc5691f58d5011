package handlers

import (
	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerResult is the response of createCustomer. Validation problems are
// reported here with Success false rather than as an HTTP error.
type CustomerResult struct {
	Success  bool             `json:"success"`
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message"`
}

// BulkCustomersResult is the response of bulkCreateCustomers; both lists
// follow input order.
type BulkCustomersResult struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service: service,
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Get("/:id", h.HandleGetCustomerByID)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Post("/bulk", h.HandleBulkCreateCustomers)
}

// HandleGetCustomers lists customers matching the query filters.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	var filter models.CustomerFilter
	if err := c.QueryParser(&filter); err != nil {
		return invalidQuery(c, err)
	}
	customers, err := h.service.GetAllCustomers(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err, "retrieve customers")
	}
	return c.JSON(customers)
}

// HandleGetCustomerByID retrieves a single customer by its ID.
func (h *CustomerHandler) HandleGetCustomerByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	customer, err := h.service.GetCustomerByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "retrieve customer")
	}
	return c.JSON(customer)
}

// HandleCreateCustomer creates one customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var input models.CustomerInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	customer, err := h.service.CreateCustomer(c.UserContext(), input)
	if err != nil {
		if apperrors.IsValidation(err) {
			return c.JSON(CustomerResult{Success: false, Message: apperrors.Message(err)})
		}
		return respondError(c, err, "create customer")
	}

	return c.Status(fiber.StatusCreated).JSON(CustomerResult{
		Success:  true,
		Customer: customer,
		Message:  "Customer created successfully.",
	})
}

// HandleBulkCreateCustomers creates every valid customer of the batch and
// reports the others.
func (h *CustomerHandler) HandleBulkCreateCustomers(c *fiber.Ctx) error {
	var input models.BulkCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	customers, errs, err := h.service.BulkCreateCustomers(c.UserContext(), input.Input)
	if err != nil {
		return respondError(c, err, "create customers")
	}
	return c.JSON(BulkCustomersResult{Customers: customers, Errors: errs})
}
