package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// headerIndex maps lowercased header names to their column position. The
// first occurrence of a repeated header wins.
type headerIndex map[string]int

func indexHeaders(row []string) headerIndex {
	idx := make(headerIndex, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

func (h headerIndex) has(names ...string) bool {
	for _, n := range names {
		if _, ok := h[n]; !ok {
			return false
		}
	}
	return true
}

// cell returns the named column's value for a row, or "" when the column is
// absent or the row is short. Spreadsheet rows routinely drop trailing
// empty cells.
func (h headerIndex) cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// findHeaderRow scans the leading rows of a sheet for the one carrying all
// wanted headers. QuickBooks pads its reports with banner rows above the
// real header.
func findHeaderRow(rows [][]string, wanted ...string) (int, headerIndex, error) {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		hdr := indexHeaders(rows[i])
		if hdr.has(wanted...) {
			return i, hdr, nil
		}
	}
	return 0, nil, fmt.Errorf("no header row with columns %s", strings.Join(wanted, ", "))
}

var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"2006-01-02",
	"01-02-06",
	"2-Jan-06",
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate reads a date cell in any of the formats QuickBooks and Excel
// emit, including a bare serial number from an unstyled cell. Empty cells
// parse to nil.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized date %q", raw)
}

// parseDecimal reads a numeric cell, tolerating currency formatting. Empty
// cells parse to zero.
func parseDecimal(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, "$", "")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad number %q", raw)
	}
	return d, nil
}

// normalizePONumber maps a PO cell to its canonical string. Numeric cells
// round-trip through Excel as floats, so "1234.0" must come back as "1234".
// An empty cell becomes "0".
func normalizePONumber(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	if d, err := decimal.NewFromString(raw); err == nil && d.IsInteger() {
		return d.String()
	}
	return raw
}

func optString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
