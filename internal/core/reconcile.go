package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// MergePackQuantities joins purchased-BOM pack quantities onto PO lines and
// derives UnitQty and UnitPrice. A part absent from the purchased BOM, or
// carrying a non-positive pack quantity, packs 1 per ordered unit. The first
// BOM record wins when a part appears on the purchased tab more than once.
func MergePackQuantities(lines []PurchaseOrderLine, bom []BOMPartRecord) []PurchaseOrderLine {
	packs := make(map[string]decimal.Decimal)
	for _, rec := range bom {
		if rec.Kind != BOMPurchased || !rec.PackQty.IsPositive() {
			continue
		}
		if _, ok := packs[rec.PartNumber]; !ok {
			packs[rec.PartNumber] = rec.PackQty
		}
	}

	one := decimal.NewFromInt(1)
	merged := make([]PurchaseOrderLine, len(lines))
	for i, line := range lines {
		pack := one
		if p, ok := packs[line.PartNumber]; ok {
			pack = p
		}
		line.PackQty = pack
		line.UnitQty = line.OrderedQty.Mul(pack)
		line.UnitPrice = line.UnitCost.Div(pack).Round(2)
		merged[i] = line
	}
	return merged
}

// PartUniverse returns the union of part keys across PO lines and BOM
// records, classified once, in lexicographic order. Machined revisions fold
// into one key, so GF12.414.02 and GF12.414.02.B are the same part. This is
// the exact order Reconcile processes parts in.
func PartUniverse(lines []PurchaseOrderLine, bom []BOMPartRecord) []ClassifiedPart {
	classes := make(map[string]PartClass)
	add := func(pn string) {
		if pn == "" {
			return
		}
		key := ChopRevision(pn)
		if _, ok := classes[key]; !ok {
			classes[key] = ClassifyPart(key)
		}
	}
	for i := range lines {
		add(lines[i].PartNumber)
	}
	for i := range bom {
		add(bom[i].PartNumber)
	}

	keys := make([]string, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	universe := make([]ClassifiedPart, len(keys))
	for i, k := range keys {
		universe[i] = ClassifiedPart{Key: k, Class: classes[k]}
	}
	return universe
}

// Reconcile allocates every part number found across the PO lines and BOM
// records and returns the combined allocation table.
//
// lines must already carry their derived UnitQty and UnitPrice (see
// MergePackQuantities) and any merged override entries. Parts are processed
// in lexicographic key order; within a part, PO lines are consumed oldest
// first. Identical inputs always produce identical output.
func Reconcile(lines []PurchaseOrderLine, bom []BOMPartRecord) *Result {
	linesByKey := make(map[string][]PurchaseOrderLine)
	for _, line := range lines {
		if line.PartNumber == "" {
			continue
		}
		key := ChopRevision(line.PartNumber)
		linesByKey[key] = append(linesByKey[key], line)
	}

	// First BOM record wins when a key appears on more than one row.
	bomByKey := make(map[string]*BOMPartRecord)
	for i := range bom {
		if bom[i].PartNumber == "" {
			continue
		}
		key := ChopRevision(bom[i].PartNumber)
		if _, ok := bomByKey[key]; !ok {
			bomByKey[key] = &bom[i]
		}
	}

	result := &Result{}
	for _, part := range PartUniverse(lines, bom) {
		partLines := sortPOLines(linesByKey[part.Key])
		bomRec := bomByKey[part.Key]

		var demands []LocationDemand
		if bomRec != nil && bomRec.RawLocations != "" {
			parsed, err := ParseLocationSpec(bomRec.RawLocations)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("part %s: %v; treating its purchases as unattributed", part.Key, err))
			} else {
				demands = parsed
			}
		}

		records := AllocatePart(bomRec, partLines, demands)
		annotateCategories(records, part.Class)
		result.Records = append(result.Records, records...)
	}

	result.Records = ApplyOverrides(result.Records, lines)
	return result
}

// sortPOLines orders lines oldest first by date, then PO number, keeping the
// input order for ties. Lines with no date sort before dated ones.
func sortPOLines(lines []PurchaseOrderLine) []PurchaseOrderLine {
	sorted := make([]PurchaseOrderLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Date, sorted[j].Date
		switch {
		case di == nil && dj != nil:
			return true
		case di != nil && dj == nil:
			return false
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		}
		return sorted[i].PONumber < sorted[j].PONumber
	})
	return sorted
}

// annotateCategories derives Category 1 from each record's location. Freight
// parts first take the Freight location on their unattributed purchases, and
// Category 2 starts empty for the override pass to fill.
func annotateCategories(records []AllocationRecord, class PartClass) {
	for i := range records {
		rec := &records[i]
		if class == ClassFreight && rec.Type == RecordPurchase && rec.Location == nil {
			rec.Location = strPtr("Freight")
		}
		rec.Category1 = StationForLocation(rec.Location)
		rec.Category2 = nil
	}
}
