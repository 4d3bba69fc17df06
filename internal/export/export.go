// Package export renders allocation results as CSV, XLSX, and JSON, plus
// the overrides file a later run can merge back in.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"jobcoster/internal/core"
)

// Format selects an allocation table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatForPath picks the output format from a file extension, defaulting
// to CSV.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	}
	return FormatCSV
}

// Write renders the allocation result to w in the given format.
func Write(w io.Writer, result *core.Result, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, result.Records)
	case FormatXLSX:
		return WriteXLSX(w, result.Records)
	case FormatJSON:
		return WriteJSON(w, result)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Header is the allocation table header, in output column order.
func Header() []string {
	return []string{
		"Type", "Date", "PO #", "Vendor", "Part Number", "Description",
		"Location", "Unit Qty", "Unit Price", "Category 1", "Category 2",
	}
}

// Row renders one allocation record in Header order. Quantity and price
// print with two decimal places; absent values print empty.
func Row(rec core.AllocationRecord) []string {
	return []string{
		string(rec.Type),
		formatDate(rec.Date),
		deref(rec.PONumber),
		deref(rec.Vendor),
		rec.PartNumber,
		rec.Description,
		deref(rec.Location),
		rec.UnitQty.StringFixed(2),
		rec.UnitPrice.StringFixed(2),
		deref(rec.Category1),
		deref(rec.Category2),
	}
}

// WriteCSV renders the allocation table as CSV.
func WriteCSV(w io.Writer, records []core.AllocationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(Row(rec)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOverridesCSV writes override entries in the format the ingest side
// reads back.
func WriteOverridesCSV(w io.Writer, entries []core.OverrideEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"PO Number", "Part Number", "Override 1", "Override 2"}); err != nil {
		return fmt.Errorf("write overrides header: %w", err)
	}
	for _, e := range entries {
		row := []string{e.PONumber, e.PartNumber, deref(e.Override1), deref(e.Override2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write overrides row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
