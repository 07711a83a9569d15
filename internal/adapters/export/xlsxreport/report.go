// Package xlsxreport writes catalog and order reports as XLSX workbooks.
package xlsxreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// Build produces a workbook with one sheet per collection: the current
// catalog and the full order history.
func Build(products []domain.Product, orders []domain.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	const catalogSheet = "Catalog"
	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		return nil, err
	}
	catalogHeader := []any{"ID", "Slug", "Name", "Category", "Price", "Original Price", "In Stock", "Featured", "Rating", "Reviews"}
	if err := f.SetSheetRow(catalogSheet, "A1", &catalogHeader); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := []any{p.ID, p.Slug, p.Name, p.Category, p.Price, p.OriginalPrice, p.InStock, p.Featured, p.Rating, p.ReviewCount}
		if err := f.SetSheetRow(catalogSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	const ordersSheet = "Orders"
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return nil, err
	}
	ordersHeader := []any{"ID", "Created", "Status", "Total", "Items", "Shipping Address", "Billing Address"}
	if err := f.SetSheetRow(ordersSheet, "A1", &ordersHeader); err != nil {
		return nil, err
	}
	for i, o := range orders {
		items := make([]string, len(o.Items))
		for j, it := range o.Items {
			items[j] = fmt.Sprintf("%s x%d", it.Product.Name, it.Quantity)
		}
		row := []any{
			o.ID,
			o.CreatedAt.Format(time.RFC3339),
			string(o.Status),
			o.Total,
			strings.Join(items, "; "),
			o.ShippingAddress,
			o.BillingAddress,
		}
		if err := f.SetSheetRow(ordersSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
