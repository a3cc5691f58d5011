package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is published after an order commits.
type OrderCreatedEvent struct {
	EventID     string          `json:"event_id"`
	OrderID     uint            `json:"order_id"`
	CustomerID  uint            `json:"customer_id"`
	ProductIDs  []uint          `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"order_date"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
