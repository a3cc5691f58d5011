package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/validation"

	"github.com/google/uuid"
)

// OrderEventPublisher publishes order lifecycle events to a message broker.
type OrderEventPublisher interface {
	PublishOrderCreated(event models.OrderCreatedEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	validate  *validation.Validator
	publisher OrderEventPublisher // optional
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, validate *validation.Validator, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		validate:  validate,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetAllOrders retrieves the orders matching filter.
func (s *OrderService) GetAllOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, err
	}
	return s.orderRepo.List(ctx, filter)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder creates one order over the requested products and computes
// its total. Nothing is written when the product list is empty or a
// reference does not resolve.
func (s *OrderService) CreateOrder(ctx context.Context, input models.OrderInput) (*models.Order, error) {
	if len(input.ProductIDs) == 0 {
		return nil, apperrors.Validation(validation.EmptyProductsMessage)
	}

	orderDate := s.now().UTC()
	if input.OrderDate != nil && !input.OrderDate.IsZero() {
		orderDate = input.OrderDate.UTC()
	}
	order := &models.Order{
		CustomerID: input.CustomerID,
		OrderDate:  orderDate,
		Status:     models.OrderStatusPending,
	}

	if err := s.orderRepo.CreateWithProducts(ctx, order, input.ProductIDs); err != nil {
		if apperrors.IsReference(err) || apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated never fails the request; the order is already committed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	productIDs := make([]uint, 0, len(order.Products))
	for _, p := range order.Products {
		productIDs = append(productIDs, p.ID)
	}
	event := models.OrderCreatedEvent{
		EventID:     uuid.New().String(),
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		ProductIDs:  productIDs,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		OrderDate:   order.OrderDate,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.publisher.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %d: %v", order.ID, err)
		return
	}
	log.Printf("Published order created event for order %d", order.ID)
}
