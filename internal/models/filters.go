package models

// TimestampLayout is the layout accepted by the *_gte/*_lte date filters.
const TimestampLayout = "2006-01-02T15:04:05Z07:00"

// CustomerFilter holds the optional predicates of allCustomers.
type CustomerFilter struct {
	Name         string `query:"name" validate:"max=100"`
	Email        string `query:"email" validate:"max=254"`
	PhonePrefix  string `query:"phone_prefix" validate:"max=20"`
	CreatedAtGte string `query:"created_at_gte" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CreatedAtLte string `query:"created_at_lte" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	OrderBy      string `query:"order_by"`
}

// ProductFilter holds the optional predicates of allProducts.
type ProductFilter struct {
	Name     string `query:"name" validate:"max=100"`
	PriceGte string `query:"price_gte" validate:"omitempty,numeric"`
	PriceLte string `query:"price_lte" validate:"omitempty,numeric"`
	StockGte *int   `query:"stock_gte"`
	StockLte *int   `query:"stock_lte"`
	OrderBy  string `query:"order_by"`
}

// OrderFilter holds the optional predicates of allOrders.
type OrderFilter struct {
	CustomerName   string `query:"customer_name" validate:"max=100"`
	ProductName    string `query:"product_name" validate:"max=100"`
	ProductID      uint   `query:"product_id"`
	Status         string `query:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	TotalAmountGte string `query:"total_amount_gte" validate:"omitempty,numeric"`
	TotalAmountLte string `query:"total_amount_lte" validate:"omitempty,numeric"`
	OrderDateGte   string `query:"order_date_gte" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	OrderDateLte   string `query:"order_date_lte" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	OrderBy        string `query:"order_by"`
}
