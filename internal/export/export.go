// Package export renders CRM listings as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"crm/internal/models"

	"github.com/tealeg/xlsx"
)

// ContentType is the MIME type of the workbooks written by this package.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const timeLayout = "2006-01-02 15:04:05"

// Entities lists the names accepted by Write.
var Entities = []string{"customers", "products", "orders"}

// Customers builds a one-sheet workbook with a row per customer.
func Customers(customers []models.Customer) (*xlsx.File, error) {
	file, sheet, err := newSheet("Customers", "ID", "Name", "Email", "Phone", "CreatedAt")
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(c.ID))
		row.AddCell().SetString(c.Name)
		row.AddCell().SetString(c.Email)
		phone := ""
		if c.Phone != nil {
			phone = *c.Phone
		}
		row.AddCell().SetString(phone)
		row.AddCell().SetString(c.CreatedAt.UTC().Format(timeLayout))
	}
	return file, nil
}

// Products builds a one-sheet workbook with a row per product.
func Products(products []models.Product) (*xlsx.File, error) {
	file, sheet, err := newSheet("Products", "ID", "Name", "Price", "Stock", "CreatedAt")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(p.CreatedAt.UTC().Format(timeLayout))
	}
	return file, nil
}

// Orders builds a one-sheet workbook with a row per order. Orders must have
// their customer and products loaded.
func Orders(orders []models.Order) (*xlsx.File, error) {
	file, sheet, err := newSheet("Orders", "ID", "Customer", "Email", "ProductIDs", "TotalAmount", "Status", "OrderDate")
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(o.ID))
		row.AddCell().SetString(o.Customer.Name)
		row.AddCell().SetString(o.Customer.Email)

		ids := make([]string, 0, len(o.Products))
		for _, p := range o.Products {
			ids = append(ids, strconv.FormatUint(uint64(p.ID), 10))
		}
		row.AddCell().SetString(strings.Join(ids, ","))

		row.AddCell().SetString(o.TotalAmount.StringFixed(2))
		row.AddCell().SetString(o.Status)
		row.AddCell().SetString(o.OrderDate.UTC().Format(timeLayout))
	}
	return file, nil
}

// Write streams file to w.
func Write(w io.Writer, file *xlsx.File) error {
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newSheet(name string, headers ...string) (*xlsx.File, *xlsx.Sheet, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s sheet: %w", name, err)
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}
	return file, sheet, nil
}
