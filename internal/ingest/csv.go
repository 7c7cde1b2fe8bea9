// Package ingest loads supplier inventory CSVs and writes analysis results.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/rishabhm/dealscope/internal/model"
)

// Expected column headers in the supplier export. Matching is
// case-insensitive and whitespace-tolerant.
const (
	colID          = "inventory id"
	colDescription = "description"
	colQty         = "qty. available"
	colUPC         = "item upc"
	colPrice       = "default price"
)

var priceJunkRe = regexp.MustCompile(`[$,]`)

// CleanPrice strips currency symbols and separators and parses the rest.
// Unparseable cells come back as zero.
func CleanPrice(raw string) float64 {
	cleaned := strings.TrimSpace(priceJunkRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// LoadFile reads an inventory CSV from disk.
func LoadFile(path string) ([]model.InventoryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load parses inventory records. Rows without a usable description or a
// positive supplier price are skipped with a warning; they cannot be
// analyzed. UPCs are normalized to canonical digit strings.
func Load(r io.Reader) ([]model.InventoryItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var items []model.InventoryItem
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		line++

		item := model.InventoryItem{
			ID:            field(record, colIndex(cols, colID)),
			Description:   field(record, colIndex(cols, colDescription)),
			UPC:           model.NormalizeUPC(field(record, colIndex(cols, colUPC))),
			SupplierPrice: CleanPrice(field(record, colIndex(cols, colPrice))),
		}
		if qty, err := strconv.Atoi(strings.TrimSpace(field(record, colIndex(cols, colQty)))); err == nil {
			item.QtyAvailable = qty
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("row-%d", line)
		}

		if err := item.Validate(); err != nil {
			slog.Warn("Skipping unusable inventory row", "row", line, "reason", err)
			continue
		}
		items = append(items, item)
	}

	slog.Info("Loaded inventory", "items", len(items))
	return items, nil
}

// mapColumns resolves header names to indices. Only description and price
// are required.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colDescription, colPrice} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("inventory file missing required column %q", required)
		}
	}
	return cols, nil
}

func colIndex(cols map[string]int, name string) int {
	if idx, ok := cols[name]; ok {
		return idx
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
