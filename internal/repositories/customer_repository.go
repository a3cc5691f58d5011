package repositories

import (
	"context"

	"crm/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error)
	Create(ctx context.Context, customer *models.Customer) error
	// CreateBatch inserts all customers in one transaction, in slice order.
	CreateBatch(ctx context.Context, customers []models.Customer) error
}
