package export_test

import (
	"bytes"
	"testing"
	"time"

	"crm/internal/export"
	"crm/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func roundTrip(t *testing.T, file *xlsx.File) *xlsx.Sheet {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, file))
	read, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, read.Sheets, 1)
	return read.Sheets[0]
}

func cellValues(row *xlsx.Row) []string {
	values := make([]string, 0, len(row.Cells))
	for _, c := range row.Cells {
		values = append(values, c.Value)
	}
	return values
}

func TestCustomers(t *testing.T) {
	phone := "+1234567890"
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	file, err := export.Customers([]models.Customer{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: &phone, CreatedAt: created},
		{ID: 2, Name: "Bob", Email: "bob@example.com", CreatedAt: created},
	})
	require.NoError(t, err)

	sheet := roundTrip(t, file)
	assert.Equal(t, "Customers", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Phone", "CreatedAt"}, cellValues(sheet.Rows[0]))
	assert.Equal(t, []string{"1", "Alice", "alice@example.com", "+1234567890", "2024-05-01 09:30:00"}, cellValues(sheet.Rows[1]))
	assert.Equal(t, "", sheet.Rows[2].Cells[3].Value)
}

func TestProducts(t *testing.T) {
	file, err := export.Products([]models.Product{
		{ID: 3, Name: "Widget", Price: decimal.RequireFromString("9.5"), Stock: 4},
	})
	require.NoError(t, err)

	sheet := roundTrip(t, file)
	require.Len(t, sheet.Rows, 2)
	values := cellValues(sheet.Rows[1])
	assert.Equal(t, "Widget", values[1])
	assert.Equal(t, "9.50", values[2])
	assert.Equal(t, "4", values[3])
}

func TestOrders(t *testing.T) {
	file, err := export.Orders([]models.Order{{
		ID:          5,
		Customer:    models.Customer{Name: "Alice", Email: "alice@example.com"},
		Products:    []models.Product{{ID: 10}, {ID: 11}},
		TotalAmount: decimal.RequireFromString("10"),
		Status:      models.OrderStatusPending,
		OrderDate:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	sheet := roundTrip(t, file)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"5", "Alice", "alice@example.com", "10,11", "10.00", "PENDING", "2024-05-02 00:00:00"}, cellValues(sheet.Rows[1]))
}

func TestEmptyListingKeepsHeader(t *testing.T) {
	file, err := export.Orders(nil)
	require.NoError(t, err)
	sheet := roundTrip(t, file)
	assert.Len(t, sheet.Rows, 1)
}
