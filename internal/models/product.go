package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(100);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock     int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductInput is the payload of createProduct. A nil Stock means 0.
type ProductInput struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

// RestockResult is returned by updateLowStockProducts.
type RestockResult struct {
	Success         bool      `json:"success"`
	Message         string    `json:"message"`
	UpdatedProducts []Product `json:"updated_products"`
}
