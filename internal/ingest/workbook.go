package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"jobcoster/internal/core"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads a job workbook from disk. The workbook must carry all
// six standard tabs; see ClassifySheet for how tabs are recognized.
func LoadWorkbook(path string, opts Options) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return parseWorkbook(f, opts)
}

// ReadWorkbook reads a job workbook from a stream.
func ReadWorkbook(r io.Reader, opts Options) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return parseWorkbook(f, opts)
}

func parseWorkbook(f *excelize.File, opts Options) (*Workbook, error) {
	sheets := make(map[SheetKind]string)
	for _, name := range f.GetSheetList() {
		kind := ClassifySheet(name)
		if kind == SheetUnknown {
			continue
		}
		if _, ok := sheets[kind]; !ok {
			sheets[kind] = name
		}
	}
	for _, kind := range requiredSheets {
		if _, ok := sheets[kind]; !ok {
			return nil, fmt.Errorf("%s sheet not found in the workbook, either missing or misnamed", kind)
		}
	}

	wb := &Workbook{RowCounts: make(map[SheetKind]int)}
	for _, kind := range requiredSheets {
		name := sheets[kind]
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		wb.RowCounts[kind] = len(rows)

		switch kind {
		case SheetPurchaseOrders:
			lines, err := parsePORows(rows)
			if err != nil {
				return nil, err
			}
			wb.Lines = lines
		case SheetMachined:
			parts, err := parseMachinedRows(rows)
			if err != nil {
				return nil, err
			}
			wb.BOM = append(wb.BOM, parts...)
		case SheetPurchased:
			parts, err := parsePurchasedRows(rows, opts)
			if err != nil {
				return nil, err
			}
			wb.BOM = append(wb.BOM, parts...)
		}
	}
	return wb, nil
}

// parsePORows turns a purchase order report into typed lines. Rows whose
// item cell normalizes to nothing are report furniture (titles, totals,
// separators) and are skipped.
func parsePORows(rows [][]string) ([]core.PurchaseOrderLine, error) {
	start, hdr, err := findHeaderRow(rows, "date", "num", "item", "qty")
	if err != nil {
		return nil, fmt.Errorf("purchase orders sheet: %w", err)
	}
	hasCost := hdr.has("cost price")
	if !hasCost && !hdr.has("amount") {
		return nil, errors.New(`purchase orders sheet: no "Cost Price" or "Amount" column`)
	}

	var lines []core.PurchaseOrderLine
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		part := core.NormalizePartNumber(hdr.cell(row, "item"))
		if part == "" {
			continue
		}

		line := core.PurchaseOrderLine{
			EntryType:   strings.TrimSpace(hdr.cell(row, "type")),
			PONumber:    normalizePONumber(hdr.cell(row, "num")),
			Vendor:      strings.TrimSpace(hdr.cell(row, "source name")),
			RawItem:     strings.TrimSpace(hdr.cell(row, "item")),
			PartNumber:  part,
			Description: strings.TrimSpace(hdr.cell(row, "item description")),
			Override1:   optString(hdr.cell(row, "override 1")),
			Override2:   optString(hdr.cell(row, "override 2")),
		}
		if line.EntryType == "" {
			line.EntryType = "Purchase Order"
		}

		date, err := parseDate(hdr.cell(row, "date"))
		if err != nil {
			return nil, fmt.Errorf("purchase orders sheet row %d: %w", i+1, err)
		}
		line.Date = date

		qty, err := parseDecimal(hdr.cell(row, "qty"))
		if err != nil {
			return nil, fmt.Errorf("purchase orders sheet row %d: quantity: %w", i+1, err)
		}
		line.OrderedQty = qty

		if hasCost {
			cost, err := parseDecimal(hdr.cell(row, "cost price"))
			if err != nil {
				return nil, fmt.Errorf("purchase orders sheet row %d: cost price: %w", i+1, err)
			}
			line.UnitCost = cost.Round(2)
		} else {
			amount, err := parseDecimal(hdr.cell(row, "amount"))
			if err != nil {
				return nil, fmt.Errorf("purchase orders sheet row %d: amount: %w", i+1, err)
			}
			line.UnitCost = unitCostFromAmount(amount, qty)
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// unitCostFromAmount backs a per-pack cost out of a line total. A zero
// quantity keeps the amount as the cost so the row still carries its value.
func unitCostFromAmount(amount, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return amount.Round(2)
	}
	return amount.Div(qty).Round(2)
}

// parsePurchasedRows reads the purchased-parts BOM tab. Rows from in-house
// vendors are dropped per Options.
func parsePurchasedRows(rows [][]string, opts Options) ([]core.BOMPartRecord, error) {
	start, hdr, err := findHeaderRow(rows, "purchased", "locations")
	if err != nil {
		return nil, fmt.Errorf("purchased sheet: %w", err)
	}

	var parts []core.BOMPartRecord
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		pn := core.NormalizePartNumber(hdr.cell(row, "purchased"))
		if pn == "" {
			continue
		}
		vendor := strings.TrimSpace(hdr.cell(row, "vendor"))
		if vendorIsInHouse(vendor, opts.InHouseVendorKeywords) {
			continue
		}
		pack, err := parseDecimal(hdr.cell(row, "pk qty"))
		if err != nil {
			return nil, fmt.Errorf("purchased sheet row %d: pack quantity: %w", i+1, err)
		}
		cost, err := parseDecimal(hdr.cell(row, "cost"))
		if err != nil {
			return nil, fmt.Errorf("purchased sheet row %d: cost: %w", i+1, err)
		}

		parts = append(parts, core.BOMPartRecord{
			Kind:         core.BOMPurchased,
			PartNumber:   pn,
			Description:  strings.TrimSpace(hdr.cell(row, "description")),
			PackQty:      pack,
			RawLocations: strings.TrimSpace(hdr.cell(row, "locations")),
			Vendor:       vendor,
			Cost:         cost.Round(2),
		})
	}
	return parts, nil
}

// parseMachinedRows reads the machined-parts BOM tab. Part numbers keep any
// revision suffix; reconciliation folds revisions when matching.
func parseMachinedRows(rows [][]string) ([]core.BOMPartRecord, error) {
	start, hdr, err := findHeaderRow(rows, "part #", "locations")
	if err != nil {
		return nil, fmt.Errorf("machined sheet: %w", err)
	}

	var parts []core.BOMPartRecord
	for i := start + 1; i < len(rows); i++ {
		row := rows[i]
		pn := core.NormalizePartNumber(hdr.cell(row, "part #"))
		if pn == "" {
			continue
		}
		cost, err := parseDecimal(hdr.cell(row, "cost"))
		if err != nil {
			return nil, fmt.Errorf("machined sheet row %d: cost: %w", i+1, err)
		}

		parts = append(parts, core.BOMPartRecord{
			Kind:         core.BOMMachined,
			PartNumber:   pn,
			Revision:     strings.TrimSpace(hdr.cell(row, "rev")),
			Description:  strings.TrimSpace(hdr.cell(row, "description")),
			RawLocations: strings.TrimSpace(hdr.cell(row, "locations")),
			Vendor:       strings.TrimSpace(hdr.cell(row, "vendor")),
			Cost:         cost.Round(2),
		})
	}
	return parts, nil
}

func vendorIsInHouse(vendor string, keywords []string) bool {
	if vendor == "" {
		return false
	}
	v := strings.ToLower(vendor)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(v, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
