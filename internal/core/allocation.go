package core

import "github.com/shopspring/decimal"

// AllocatePart matches one part number's purchase history against its BOM
// location demands and emits that part's slice of the allocation table.
//
// lines must already be filtered to the part and sorted oldest first by
// (date, PO number); demands must be in declared order. Neither input is
// mutated: consumption is tracked on private per-line remainders.
//
// A demand larger than the front line's remaining quantity consumes that line
// in full at its price and carries the unmet remainder into the following
// lines, falling back to a zero-price stock draw if the history runs out.
// One demand can therefore emit several records at different unit prices.
func AllocatePart(bom *BOMPartRecord, lines []PurchaseOrderLine, demands []LocationDemand) []AllocationRecord {
	// A part missing from the purchase history is assumed to already be on
	// hand: every demand draws from stock at zero price.
	if len(lines) == 0 {
		records := make([]AllocationRecord, 0, len(demands))
		for _, d := range demands {
			records = append(records, stockRecord(bom, d.Location, d.Quantity))
		}
		return records
	}

	// A part with no usable location demand was bought after the costing
	// snapshot was taken: its purchases stay unattributed.
	if len(demands) == 0 {
		records := make([]AllocationRecord, 0, len(lines))
		for i := range lines {
			records = append(records, purchaseRecord(&lines[i], nil, lines[i].UnitQty))
		}
		return records
	}

	remaining := make([]decimal.Decimal, len(lines))
	consumed := make([]bool, len(lines))
	for i := range lines {
		remaining[i] = lines[i].UnitQty
	}

	var records []AllocationRecord
	front := 0

	// Lines with nothing left to give are passed over; they surface in the
	// surplus pass with their remaining quantity untouched.
	skipExhausted := func() {
		for front < len(lines) && !remaining[front].IsPositive() {
			front++
		}
	}
	skipExhausted()

	for _, d := range demands {
		if front >= len(lines) {
			// Purchase history ran out mid-walk; the rest of the demand
			// comes from stock.
			records = append(records, stockRecord(bom, d.Location, d.Quantity))
			continue
		}

		switch {
		case d.Quantity.Equal(remaining[front]):
			// Exact match consumes the whole line.
			records = append(records, purchaseRecord(&lines[front], strPtr(d.Location), d.Quantity))
			remaining[front] = decimal.Zero
			consumed[front] = true
			front++
			skipExhausted()

		case d.Quantity.LessThan(remaining[front]):
			// Partial match splits the line; it keeps serving later demands.
			records = append(records, purchaseRecord(&lines[front], strPtr(d.Location), d.Quantity))
			remaining[front] = remaining[front].Sub(d.Quantity)

		default:
			unmet := d.Quantity
			for front < len(lines) && unmet.IsPositive() {
				take := decimal.Min(remaining[front], unmet)
				records = append(records, purchaseRecord(&lines[front], strPtr(d.Location), take))
				remaining[front] = remaining[front].Sub(take)
				unmet = unmet.Sub(take)
				if remaining[front].IsZero() {
					consumed[front] = true
					front++
					skipExhausted()
				}
			}
			if unmet.IsPositive() {
				records = append(records, stockRecord(bom, d.Location, unmet))
			}
		}
	}

	// Whatever the demand walk did not fully consume is surplus.
	for i := range lines {
		if !consumed[i] {
			records = append(records, extraRecord(&lines[i], remaining[i]))
		}
	}
	return records
}

// purchaseRecord attributes qty units of a PO line to a location (nil when
// unattributed), carrying the line's date, PO number, vendor, and unit price.
func purchaseRecord(line *PurchaseOrderLine, location *string, qty decimal.Decimal) AllocationRecord {
	rec := AllocationRecord{
		Type:        RecordPurchase,
		Date:        line.Date,
		PartNumber:  line.PartNumber,
		Description: line.Description,
		Location:    location,
		UnitQty:     qty,
		UnitPrice:   line.UnitPrice,
	}
	if line.PONumber != "" {
		rec.PONumber = strPtr(line.PONumber)
	}
	if line.Vendor != "" {
		rec.Vendor = strPtr(line.Vendor)
	}
	return rec
}

// stockRecord fills a demand from assumed on-hand stock at zero price. It has
// no purchase linkage, so part number and description come from the BOM.
func stockRecord(bom *BOMPartRecord, location string, qty decimal.Decimal) AllocationRecord {
	rec := AllocationRecord{
		Type:      RecordStock,
		Location:  strPtr(location),
		UnitQty:   qty,
		UnitPrice: decimal.Zero,
	}
	if bom != nil {
		rec.PartNumber = bom.PartNumber
		rec.Description = bom.Description
	}
	return rec
}

// extraRecord marks a PO line's unconsumed quantity as surplus beyond what
// the BOM declared. It keeps its purchase linkage but has no location.
func extraRecord(line *PurchaseOrderLine, qty decimal.Decimal) AllocationRecord {
	rec := purchaseRecord(line, nil, qty)
	rec.Type = RecordExtra
	return rec
}
