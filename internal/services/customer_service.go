package services

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/apperrors"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/validation"
)

const duplicateEmailMessage = "Email already exists."

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo     repositories.CustomerRepository
	validate *validation.Validator
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, validate *validation.Validator) *CustomerService {
	return &CustomerService{
		repo:     repo,
		validate: validate,
	}
}

// GetAllCustomers retrieves the customers matching filter.
func (s *CustomerService) GetAllCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer validates input and inserts one customer. Bad input comes
// back as an *apperrors.ValidationError.
func (s *CustomerService) CreateCustomer(ctx context.Context, input models.CustomerInput) (*models.Customer, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.Validation(duplicateEmailMessage)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}

	customer := newCustomer(input)
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, apperrors.Validation(duplicateEmailMessage)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// BulkCreateCustomers validates every payload in order, skips the bad ones
// with a message each, and inserts the rest in one transaction.
func (s *CustomerService) BulkCreateCustomers(ctx context.Context, inputs []models.CustomerInput) ([]models.Customer, []string, error) {
	emails := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if input.Email != "" {
			emails = append(emails, input.Email)
		}
	}
	existing, err := s.repo.ExistingEmails(ctx, emails)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check customer emails: %w", err)
	}

	created := make([]models.Customer, 0, len(inputs))
	errs := make([]string, 0)
	for _, input := range inputs {
		if err := s.validate.Struct(input); err != nil {
			errs = append(errs, apperrors.Message(err))
			continue
		}
		if existing[input.Email] {
			errs = append(errs, fmt.Sprintf("Email already exists: %s", input.Email))
			continue
		}
		existing[input.Email] = true
		created = append(created, *newCustomer(input))
	}

	if err := s.repo.CreateBatch(ctx, created); err != nil {
		return nil, nil, fmt.Errorf("failed to create customers: %w", err)
	}
	return created, errs, nil
}

func newCustomer(input models.CustomerInput) *models.Customer {
	customer := &models.Customer{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Phone != nil && *input.Phone != "" {
		phone := *input.Phone
		customer.Phone = &phone
	}
	return customer
}
