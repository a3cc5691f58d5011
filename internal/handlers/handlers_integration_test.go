package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"crm/internal/app"
	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/export"
	"crm/internal/models"
	"crm/internal/services"
	"crm/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testClientSecret = "s3cret"

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(t *testing.T, authEnabled bool) *config.Config {
	t.Helper()
	hash, err := services.HashSecret(testClientSecret)
	require.NoError(t, err)
	return &config.Config{
		AuthEnabled:          authEnabled,
		JWTSecret:            "test_jwt_secret",
		AuthClientID:         "crm-jobs",
		AuthClientSecretHash: hash,
		TokenTTL:             time.Hour,
		LowStockThreshold:    10,
		RestockIncrement:     10,
	}
}

// setupApp sets up a Fiber app for testing with a private in-memory SQLite database.
func setupApp(t *testing.T, authEnabled bool) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return app.New(testConfig(t, authEnabled), db, nil), db
}

func doRequest(t *testing.T, a *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{ID: 10, Name: "Notebook", Price: decimal.RequireFromString("3.50"), Stock: 20},
		{ID: 11, Name: "Pen Set", Price: decimal.RequireFromString("6.50"), Stock: 3},
	}
	require.NoError(t, db.Create(&products).Error)
}

func seedCustomer(t *testing.T, db *gorm.DB, name, email string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Email: email}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func TestCreateCustomer(t *testing.T) {
	a, db := setupApp(t, false)

	input := map[string]interface{}{"name": "Alice", "email": "alice@example.com", "phone": "+1234567890"}
	resp := doRequest(t, a, http.MethodPost, "/api/v1/customers", input, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]interface{}](t, resp)
	assert.Equal(t, true, created["success"])
	assert.Equal(t, "Customer created successfully.", created["message"])
	assert.Equal(t, "alice@example.com", created["customer"].(map[string]interface{})["email"])

	// Duplicate email is a soft failure and writes nothing.
	resp = doRequest(t, a, http.MethodPost, "/api/v1/customers", input, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	dup := decode[map[string]interface{}](t, resp)
	assert.Equal(t, false, dup["success"])
	assert.Nil(t, dup["customer"])
	assert.Equal(t, "Email already exists.", dup["message"])
	assert.Equal(t, int64(1), countRows(t, db, "customers"))

	resp = doRequest(t, a, http.MethodPost, "/api/v1/customers",
		map[string]interface{}{"name": "Bob", "email": "bob@example.com", "phone": "12345"}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	bad := decode[map[string]interface{}](t, resp)
	assert.Equal(t, false, bad["success"])
	assert.Equal(t, validation.PhoneMessage, bad["message"])
	assert.Equal(t, int64(1), countRows(t, db, "customers"))
}

func TestBulkCreateCustomers(t *testing.T) {
	a, db := setupApp(t, false)
	seedCustomer(t, db, "Existing", "taken@example.com")

	body := map[string]interface{}{"input": []map[string]interface{}{
		{"name": "A", "email": "a@example.com"},
		{"name": "Dup of existing", "email": "taken@example.com"},
		{"name": "B", "email": "b@example.com", "phone": "123-456-7890"},
		{"name": "Dup in batch", "email": "a@example.com"},
		{"name": "C", "email": "c@example.com"},
	}}
	resp := doRequest(t, a, http.MethodPost, "/api/v1/customers/bulk", body, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decode[struct {
		Customers []models.Customer `json:"customers"`
		Errors    []string          `json:"errors"`
	}](t, resp)
	require.Len(t, result.Customers, 3)
	assert.Equal(t, "a@example.com", result.Customers[0].Email)
	assert.Equal(t, "b@example.com", result.Customers[1].Email)
	assert.Equal(t, "c@example.com", result.Customers[2].Email)
	assert.Equal(t, []string{
		"Email already exists: taken@example.com",
		"Email already exists: a@example.com",
	}, result.Errors)
	assert.Equal(t, int64(4), countRows(t, db, "customers"))
}

func TestCreateProduct(t *testing.T) {
	a, db := setupApp(t, false)

	resp := doRequest(t, a, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "Widget", "price": 9.99, "stock": 5}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		Success bool           `json:"success"`
		Product models.Product `json:"product"`
		Message string         `json:"message"`
	}](t, resp)
	assert.True(t, created.Success)
	assert.Equal(t, "Product created successfully.", created.Message)

	var stored models.Product
	require.NoError(t, db.First(&stored, created.Product.ID).Error)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 5, stored.Stock)

	resp = doRequest(t, a, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "Bad", "price": -1, "stock": 0}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	bad := decode[map[string]interface{}](t, resp)
	assert.Equal(t, false, bad["success"])
	assert.Equal(t, "Price must be positive.", bad["message"])

	resp = doRequest(t, a, http.MethodPost, "/api/v1/products",
		map[string]interface{}{"name": "Ghost", "price": 1, "stock": -2}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Stock cannot be negative.", decode[map[string]interface{}](t, resp)["message"])
	assert.Equal(t, int64(1), countRows(t, db, "products"))
}

func TestCreateOrder(t *testing.T) {
	a, db := setupApp(t, false)
	seedProducts(t, db)
	customer := seedCustomer(t, db, "Alice", "alice@example.com")

	resp := doRequest(t, a, http.MethodPost, "/api/v1/orders",
		map[string]interface{}{"customer_id": customer.ID, "product_ids": []uint{10, 11}}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	result := decode[struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
		Message string       `json:"message"`
	}](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, "Order created successfully.", result.Message)
	assert.True(t, result.Order.TotalAmount.Equal(decimal.RequireFromString("10.00")), result.Order.TotalAmount.String())
	assert.Len(t, result.Order.Products, 2)
	assert.Equal(t, "alice@example.com", result.Order.Customer.Email)
	assert.Equal(t, models.OrderStatusPending, result.Order.Status)

	var stored models.Order
	require.NoError(t, db.Preload("Products").First(&stored, result.Order.ID).Error)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("10.00")))
	assert.Len(t, stored.Products, 2)
}

func TestCreateOrder_WritesNothingOnFailure(t *testing.T) {
	a, db := setupApp(t, false)
	seedProducts(t, db)
	customer := seedCustomer(t, db, "Alice", "alice@example.com")

	tests := []struct {
		name    string
		body    map[string]interface{}
		status  int
		message string
	}{
		{
			name:    "empty product list",
			body:    map[string]interface{}{"customer_id": customer.ID, "product_ids": []uint{}},
			status:  http.StatusBadRequest,
			message: "At least one product must be selected.",
		},
		{
			name:    "one invalid product id",
			body:    map[string]interface{}{"customer_id": customer.ID, "product_ids": []uint{10, 999}},
			status:  http.StatusNotFound,
			message: "One or more product IDs are invalid.",
		},
		{
			name:    "unknown customer",
			body:    map[string]interface{}{"customer_id": 4242, "product_ids": []uint{10}},
			status:  http.StatusNotFound,
			message: "Customer with ID 4242 does not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, a, http.MethodPost, "/api/v1/orders", tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decode[map[string]interface{}](t, resp)["message"])
			assert.Equal(t, int64(0), countRows(t, db, "orders"))
			assert.Equal(t, int64(0), countRows(t, db, "order_products"))
		})
	}
}

func TestListingFilters(t *testing.T) {
	a, db := setupApp(t, false)
	seedProducts(t, db)
	alice := seedCustomer(t, db, "Alice", "alice@example.com")
	seedCustomer(t, db, "Bob", "bob@example.com")

	resp := doRequest(t, a, http.MethodPost, "/api/v1/orders",
		map[string]interface{}{"customer_id": alice.ID, "product_ids": []uint{11}}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	customers := decode[[]models.Customer](t, doRequest(t, a, http.MethodGet, "/api/v1/customers?name=ALI", nil, ""))
	require.Len(t, customers, 1)
	assert.Equal(t, "Alice", customers[0].Name)

	products := decode[[]models.Product](t, doRequest(t, a, http.MethodGet, "/api/v1/products?order_by=-name", nil, ""))
	require.Len(t, products, 2)
	assert.Equal(t, "Pen Set", products[0].Name)

	products = decode[[]models.Product](t, doRequest(t, a, http.MethodGet, "/api/v1/products?stock_lte=5", nil, ""))
	require.Len(t, products, 1)
	assert.Equal(t, uint(11), products[0].ID)

	orders := decode[[]models.Order](t, doRequest(t, a, http.MethodGet, "/api/v1/orders?status=PENDING&product_name=pen", nil, ""))
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].Customer.Name)

	orders = decode[[]models.Order](t, doRequest(t, a, http.MethodGet, "/api/v1/orders?status=COMPLETED", nil, ""))
	assert.Empty(t, orders)

	resp = doRequest(t, a, http.MethodGet, "/api/v1/products?order_by=secret", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot order by 'secret'.", decode[map[string]interface{}](t, resp)["message"])

	resp = doRequest(t, a, http.MethodGet, "/api/v1/orders?order_date_gte=yesterday", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetByID(t *testing.T) {
	a, db := setupApp(t, false)
	customer := seedCustomer(t, db, "Alice", "alice@example.com")

	resp := doRequest(t, a, http.MethodGet, "/api/v1/customers/"+strconv.FormatUint(uint64(customer.ID), 10), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice", decode[models.Customer](t, resp).Name)

	resp = doRequest(t, a, http.MethodGet, "/api/v1/products/77", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, a, http.MethodGet, "/api/v1/orders/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRestockLowStock(t *testing.T) {
	a, db := setupApp(t, false)
	seedProducts(t, db)

	resp := doRequest(t, a, http.MethodPost, "/api/v1/products/restock", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[models.RestockResult](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, "Restocked 1 low-stock product(s).", result.Message)
	require.Len(t, result.UpdatedProducts, 1)
	assert.Equal(t, "Pen Set", result.UpdatedProducts[0].Name)
	assert.Equal(t, 13, result.UpdatedProducts[0].Stock)

	var untouched models.Product
	require.NoError(t, db.First(&untouched, 10).Error)
	assert.Equal(t, 20, untouched.Stock)
}

func TestHelloAndHealth(t *testing.T) {
	a, _ := setupApp(t, false)

	resp := doRequest(t, a, http.MethodGet, "/api/v1/hello", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello, CRM!", decode[map[string]string](t, resp)["hello"])

	resp = doRequest(t, a, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[map[string]string](t, resp)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "up", health["database"])
}

func TestAuthEnabled(t *testing.T) {
	a, _ := setupApp(t, true)

	// Health stays public.
	resp := doRequest(t, a, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, a, http.MethodGet, "/api/v1/customers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, a, http.MethodPost, "/api/v1/auth/token",
		map[string]string{"client_id": "crm-jobs", "client_secret": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, a, http.MethodPost, "/api/v1/auth/token",
		map[string]string{"client_id": "crm-jobs"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, a, http.MethodPost, "/api/v1/auth/token",
		map[string]string{"client_id": "crm-jobs", "client_secret": testClientSecret}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[map[string]string](t, resp)["access_token"]
	require.NotEmpty(t, token)

	resp = doRequest(t, a, http.MethodGet, "/api/v1/customers", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestExport(t *testing.T) {
	a, db := setupApp(t, false)
	seedProducts(t, db)

	resp := doRequest(t, a, http.MethodGet, "/api/v1/export/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "products.xlsx")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, body)

	resp = doRequest(t, a, http.MethodGet, "/api/v1/export/invoices", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
