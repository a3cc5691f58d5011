package models

import "time"

// Customer represents a person or business the CRM keeps track of.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Phone     *string   `json:"phone" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerInput is the payload of createCustomer and of each bulkCreateCustomers item.
type CustomerInput struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Email string  `json:"email" validate:"required,email,max=254"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

// BulkCustomerInput wraps the ordered payload list of bulkCreateCustomers.
type BulkCustomerInput struct {
	Input []CustomerInput `json:"input"`
}
