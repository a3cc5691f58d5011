package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order represents a customer order over a set of products.
// TotalAmount is derived from Products and is never taken from input.
type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	Customer    Customer        `json:"customer" gorm:"constraint:OnDelete:CASCADE"`
	Products    []Product       `json:"products" gorm:"many2many:order_products;constraint:OnDelete:CASCADE"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null;index"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null;default:0"`
	Status      string          `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderInput is the payload of createOrder. A nil OrderDate means now.
type OrderInput struct {
	CustomerID uint       `json:"customer_id"`
	ProductIDs []uint     `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date"`
}

// TotalAmount sums the prices of products exactly.
func TotalAmount(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}

// RecalculateTotal sets TotalAmount from the currently attached products.
func (o *Order) RecalculateTotal() {
	o.TotalAmount = TotalAmount(o.Products)
}
