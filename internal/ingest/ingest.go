// Package ingest reads QuickBooks purchase order exports and BOM workbooks
// into core types. It never allocates or prices anything: rows go in, typed
// lines and part records come out.
package ingest

import (
	"strings"

	"jobcoster/internal/core"
)

// SheetKind names the role a workbook tab plays, independent of its exact
// title.
type SheetKind string

const (
	SheetUnknown        SheetKind = ""
	SheetPurchaseOrders SheetKind = "purchase orders"
	SheetAssemblies     SheetKind = "assemblies"
	SheetMachined       SheetKind = "machined"
	SheetPurchased      SheetKind = "purchased"
	SheetExtrusion      SheetKind = "extrusion"
	SheetBolts          SheetKind = "bolts"
)

// requiredSheets is the fixed tab set of a job workbook, in the order the
// sheets are parsed.
var requiredSheets = []SheetKind{
	SheetPurchaseOrders,
	SheetAssemblies,
	SheetMachined,
	SheetPurchased,
	SheetExtrusion,
	SheetBolts,
}

// ClassifySheet maps a tab name to its role by keyword, so "All Purchase
// Orders" and "Purchase Orders Q3" land on the same kind. The purchase
// order check runs first because the purchased tab shares its stem.
func ClassifySheet(name string) SheetKind {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "purchase order"):
		return SheetPurchaseOrders
	case strings.Contains(n, "assembl"):
		return SheetAssemblies
	case strings.Contains(n, "machined"):
		return SheetMachined
	case strings.Contains(n, "purchased"):
		return SheetPurchased
	case strings.Contains(n, "extrusion"):
		return SheetExtrusion
	case strings.Contains(n, "bolt"):
		return SheetBolts
	}
	return SheetUnknown
}

// Options controls workbook ingestion.
type Options struct {
	// InHouseVendorKeywords drops purchased-BOM rows whose vendor name
	// contains any keyword, case-insensitively. In-house fabricated parts
	// appear on the purchased tab but never on a purchase order.
	InHouseVendorKeywords []string
}

// DefaultOptions returns the standard ingestion settings.
func DefaultOptions() Options {
	return Options{InHouseVendorKeywords: []string{"crave"}}
}

// Workbook is the parsed content of one job workbook.
type Workbook struct {
	Lines     []core.PurchaseOrderLine
	BOM       []core.BOMPartRecord
	RowCounts map[SheetKind]int
}
