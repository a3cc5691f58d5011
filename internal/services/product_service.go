package services

import (
	"context"
	"fmt"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/validation"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validation.Validator
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, validate *validation.Validator) *ProductService {
	return &ProductService{
		repo:     repo,
		validate: validate,
	}
}

// GetAllProducts retrieves the products matching filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	if err := s.validate.Struct(filter); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates input and creates a product. The price is kept to
// cents before it is checked.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	price := input.Price.Round(2)
	if err := validation.ValidatePriceAndStock(price, stock); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:  input.Name,
		Price: price,
		Stock: stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// RestockLowStock adds increment to every product with stock below threshold.
func (s *ProductService) RestockLowStock(ctx context.Context, threshold, increment int) (*models.RestockResult, error) {
	updated, err := s.repo.RestockBelow(ctx, threshold, increment)
	if err != nil {
		return nil, fmt.Errorf("failed to restock low-stock products: %w", err)
	}
	if updated == nil {
		updated = []models.Product{}
	}
	message := fmt.Sprintf("Restocked %d low-stock product(s).", len(updated))
	if len(updated) == 0 {
		message = fmt.Sprintf("No products below stock threshold %d.", threshold)
	}
	return &models.RestockResult{
		Success:         true,
		Message:         message,
		UpdatedProducts: updated,
	}, nil
}
