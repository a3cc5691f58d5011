// Package seed fills an empty store with fake customers, products and orders.
package seed

import (
	"context"
	"fmt"
	"log"

	"crm/internal/models"
	"crm/internal/services"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Options says how many records of each kind to create. A zero Seed picks a
// random one.
type Options struct {
	Customers int
	Products  int
	Orders    int
	Seed      uint64
}

// Summary counts what was created.
type Summary struct {
	Customers int
	Products  int
	Orders    int
	Skipped   []string
}

// Seeder creates fake records through the services so every record passes
// the same validation as API input.
type Seeder struct {
	customers *services.CustomerService
	products  *services.ProductService
	orders    *services.OrderService
}

// New creates a Seeder.
func New(customers *services.CustomerService, products *services.ProductService, orders *services.OrderService) *Seeder {
	return &Seeder{customers: customers, products: products, orders: orders}
}

// Run creates the records described by opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	faker := gofakeit.New(opts.Seed)
	summary := &Summary{}

	inputs := make([]models.CustomerInput, 0, opts.Customers)
	for i := 0; i < opts.Customers; i++ {
		inputs = append(inputs, fakeCustomer(faker))
	}
	customers, skipped, err := s.customers.BulkCreateCustomers(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to seed customers: %w", err)
	}
	summary.Customers = len(customers)
	summary.Skipped = append(summary.Skipped, skipped...)

	productIDs := make([]uint, 0, opts.Products)
	for i := 0; i < opts.Products; i++ {
		product, err := s.products.CreateProduct(ctx, fakeProduct(faker))
		if err != nil {
			return nil, fmt.Errorf("failed to seed products: %w", err)
		}
		productIDs = append(productIDs, product.ID)
	}
	summary.Products = len(productIDs)

	if len(customers) == 0 || len(productIDs) == 0 {
		return summary, nil
	}
	for i := 0; i < opts.Orders; i++ {
		input := models.OrderInput{
			CustomerID: customers[faker.Number(0, len(customers)-1)].ID,
			ProductIDs: pickProducts(faker, productIDs),
		}
		if _, err := s.orders.CreateOrder(ctx, input); err != nil {
			return nil, fmt.Errorf("failed to seed orders: %w", err)
		}
		summary.Orders++
	}

	log.Printf("Seeded %d customers, %d products and %d orders (%d skipped)",
		summary.Customers, summary.Products, summary.Orders, len(summary.Skipped))
	return summary, nil
}

func fakeCustomer(faker *gofakeit.Faker) models.CustomerInput {
	input := models.CustomerInput{
		Name:  faker.Name(),
		Email: faker.Email(),
	}
	// Roughly a third of the customers have no phone.
	if faker.Number(0, 2) > 0 {
		digits := faker.Phone()
		phone := fmt.Sprintf("%s-%s-%s", digits[0:3], digits[3:6], digits[6:10])
		input.Phone = &phone
	}
	return input
}

func fakeProduct(faker *gofakeit.Faker) models.ProductInput {
	stock := faker.Number(0, 50)
	return models.ProductInput{
		Name:  faker.ProductName(),
		Price: decimal.NewFromFloat(faker.Price(1, 500)).Round(2),
		Stock: &stock,
	}
}

// pickProducts returns one to three distinct product ids.
func pickProducts(faker *gofakeit.Faker, ids []uint) []uint {
	n := faker.Number(1, min(3, len(ids)))
	picked := make([]uint, 0, n)
	seen := make(map[uint]bool, n)
	for len(picked) < n {
		id := ids[faker.Number(0, len(ids)-1)]
		if !seen[id] {
			seen[id] = true
			picked = append(picked, id)
		}
	}
	return picked
}
