package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rishabhm/dealscope/internal/model"
)

var exportHeader = []string{
	"Inventory ID",
	"Description",
	"Qty. Available",
	"ITEM UPC",
	"Supplier_Price",
	"Market_Comp",
	"Retail_Price",
	"Price_Source",
	"Discount_Percentage",
	"Price_Category",
}

// ExportFile writes analysis results to a CSV on disk, one row per input
// item in input order.
func ExportFile(path string, results []model.CategoryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Export(f, results); err != nil {
		return err
	}
	return f.Close()
}

// Export writes results as CSV.
func Export(w io.Writer, results []model.CategoryResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		discount := ""
		if r.DiscountPct != nil {
			// One decimal place, matching the summary report.
			discount = strconv.FormatFloat(*r.DiscountPct, 'f', 1, 64)
		}
		retail := ""
		if r.Resolved.Found() {
			retail = strconv.FormatFloat(r.Resolved.Value, 'f', 2, 64)
		}

		row := []string{
			r.Item.ID,
			r.Item.Description,
			strconv.Itoa(r.Item.QtyAvailable),
			r.Item.UPC,
			strconv.FormatFloat(r.Item.SupplierPrice, 'f', 2, 64),
			r.Resolved.SourceURL,
			retail,
			string(r.Resolved.Source),
			discount,
			string(r.Category),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write result row for %s: %w", r.Item.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	return nil
}
