package repositories

import (
	"context"

	"crm/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// RestockBelow adds increment to the stock of every product whose stock is
	// below threshold and returns the updated products.
	RestockBelow(ctx context.Context, threshold, increment int) ([]models.Product, error)
}
