package repositories

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/apperrors"
	"crm/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var orderOrderColumns = map[string]string{
	"id":           "id",
	"order_date":   "order_date",
	"total_amount": "total_amount",
	"status":       "status",
	"customer_id":  "customer_id",
	"created_at":   "created_at",
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

func preloadOrderRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.id")
	})
}

// List retrieves the orders matching filter with customer and products loaded.
func (r *GORMOrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	var scopes []scope
	if filter.CustomerName != "" {
		pattern := containsScope("name", filter.CustomerName)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			sub := pattern(db.Session(&gorm.Session{NewDB: true}).Model(&models.Customer{}).Select("id"))
			return db.Where("customer_id IN (?)", sub)
		})
	}
	if filter.ProductName != "" {
		pattern := containsScope("products.name", filter.ProductName)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			sub := pattern(db.Session(&gorm.Session{NewDB: true}).Table("order_products").
				Select("order_products.order_id").
				Joins("JOIN products ON products.id = order_products.product_id"))
			return db.Where("id IN (?)", sub)
		})
	}
	if filter.ProductID != 0 {
		productID := filter.ProductID
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			sub := db.Session(&gorm.Session{NewDB: true}).Table("order_products").
				Select("order_id").Where("product_id = ?", productID)
			return db.Where("id IN (?)", sub)
		})
	}
	if filter.Status != "" {
		scopes = append(scopes, compareScope("status", "=", filter.Status))
	}
	scopes, err := amountRange(scopes, "total_amount", "total_amount_gte", filter.TotalAmountGte, "total_amount_lte", filter.TotalAmountLte)
	if err != nil {
		return nil, err
	}
	scopes, err = timeRange(scopes, "order_date", "order_date_gte", filter.OrderDateGte, "order_date_lte", filter.OrderDateLte)
	if err != nil {
		return nil, err
	}
	order, err := orderByScope(filter.OrderBy, orderOrderColumns)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := r.db.WithContext(ctx).Scopes(preloadOrderRelations).Scopes(scopes...).Scopes(order).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its customer and products.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Scopes(preloadOrderRelations).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// CreateWithProducts resolves the references, inserts the order, replaces its
// product set and stores the total, all inside one transaction.
func (r *GORMOrderRepository) CreateWithProducts(ctx context.Context, order *models.Order, productIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, order.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Reference(fmt.Sprintf("Customer with ID %d does not exist.", order.CustomerID))
			}
			return fmt.Errorf("failed to load customer %d: %w", order.CustomerID, err)
		}

		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Order("id").Find(&products).Error; err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		if len(products) != len(productIDs) {
			return apperrors.Reference("One or more product IDs are invalid.")
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Model(order).Association("Products").Replace(products); err != nil {
			return fmt.Errorf("failed to attach products to order %d: %w", order.ID, err)
		}

		order.Products = products
		order.RecalculateTotal()
		if err := tx.Model(order).Omit(clause.Associations).Update("total_amount", order.TotalAmount).Error; err != nil {
			return fmt.Errorf("failed to store total for order %d: %w", order.ID, err)
		}
		order.Customer = customer
		return nil
	})
}
