package repositories

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/models"

	"gorm.io/gorm"
)

var productOrderColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves the products matching filter.
func (r *GORMProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var scopes []scope
	if filter.Name != "" {
		scopes = append(scopes, containsScope("name", filter.Name))
	}
	scopes, err := amountRange(scopes, "price", "price_gte", filter.PriceGte, "price_lte", filter.PriceLte)
	if err != nil {
		return nil, err
	}
	if filter.StockGte != nil {
		scopes = append(scopes, compareScope("stock", ">=", *filter.StockGte))
	}
	if filter.StockLte != nil {
		scopes = append(scopes, compareScope("stock", "<=", *filter.StockLte))
	}
	order, err := orderByScope(filter.OrderBy, productOrderColumns)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Scopes(scopes...).Scopes(order).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// RestockBelow raises low stock in one transaction.
func (r *GORMProductRepository) RestockBelow(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	var updated []models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Product{}).Where("stock < ?", threshold).Order("id").Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to find low-stock products: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Model(&models.Product{}).Where("id IN ?", ids).
			Update("stock", gorm.Expr("stock + ?", increment)).Error; err != nil {
			return fmt.Errorf("failed to restock products: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Order("id").Find(&updated).Error; err != nil {
			return fmt.Errorf("failed to reload restocked products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
