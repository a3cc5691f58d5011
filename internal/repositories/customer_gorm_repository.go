package repositories

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/models"

	"gorm.io/gorm"
)

var customerOrderColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// List retrieves the customers matching filter.
func (r *GORMCustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	var scopes []scope
	if filter.Name != "" {
		scopes = append(scopes, containsScope("name", filter.Name))
	}
	if filter.Email != "" {
		scopes = append(scopes, containsScope("email", filter.Email))
	}
	if filter.PhonePrefix != "" {
		scopes = append(scopes, prefixScope("phone", filter.PhonePrefix))
	}
	scopes, err := timeRange(scopes, "created_at", "created_at_gte", filter.CreatedAtGte, "created_at_lte", filter.CreatedAtLte)
	if err != nil {
		return nil, err
	}
	order, err := orderByScope(filter.OrderBy, customerOrderColumns)
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	if err := r.db.WithContext(ctx).Scopes(scopes...).Scopes(order).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a single customer by its ID.
func (r *GORMCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by email.
func (r *GORMCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by email %s: %w", email, err)
	}
	return &customer, nil
}

// ExistingEmails reports which of emails already belong to a customer.
func (r *GORMCustomerRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(emails))
	if len(emails) == 0 {
		return existing, nil
	}
	var found []string
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("email IN ?", emails).Pluck("email", &found).Error; err != nil {
		return nil, fmt.Errorf("failed to look up customer emails: %w", err)
	}
	for _, email := range found {
		existing[email] = true
	}
	return existing, nil
}

// Create inserts a customer.
func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create customer %s: %w", customer.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// CreateBatch inserts customers inside a single transaction.
func (r *GORMCustomerRepository) CreateBatch(ctx context.Context, customers []models.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range customers {
			if err := tx.Create(&customers[i]).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("failed to create customer %s: %w", customers[i].Email, ErrDuplicateEmail)
				}
				return fmt.Errorf("failed to create customer %s: %w", customers[i].Email, err)
			}
		}
		return nil
	})
}
