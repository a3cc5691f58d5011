package repositories

import (
	"context"

	"crm/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// CreateWithProducts inserts order, links it to productIDs and stores the
	// computed total, all in one transaction. Unknown customer or product ids
	// return an *apperrors.ReferenceError and write nothing.
	CreateWithProducts(ctx context.Context, order *models.Order, productIDs []uint) error
}
