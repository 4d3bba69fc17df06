package core_test

import (
	"testing"
	"time"

	"jobcoster/internal/core"

	"github.com/shopspring/decimal"
)

func TestMergePackQuantities(t *testing.T) {
	lines := []core.PurchaseOrderLine{
		{PartNumber: "001283", OrderedQty: decimal.NewFromInt(4), UnitCost: decimal.RequireFromString("10.00")},
		{PartNumber: "90128A247", OrderedQty: decimal.NewFromInt(2), UnitCost: decimal.RequireFromString("25.50")},
	}
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "001283", PackQty: decimal.NewFromInt(50)},
	}

	merged := core.MergePackQuantities(lines, bom)

	// 4 packs of 50 at 10.00 a pack: 200 units at 0.20 each.
	if !merged[0].UnitQty.Equal(decimal.NewFromInt(200)) {
		t.Errorf("unit qty = %s, want 200", merged[0].UnitQty)
	}
	if !merged[0].UnitPrice.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("unit price = %s, want 0.2", merged[0].UnitPrice)
	}
	// A part off the purchased tab packs one per unit.
	if !merged[1].PackQty.Equal(decimal.NewFromInt(1)) {
		t.Errorf("pack qty = %s, want 1", merged[1].PackQty)
	}
	if !merged[1].UnitQty.Equal(decimal.NewFromInt(2)) {
		t.Errorf("unit qty = %s, want 2", merged[1].UnitQty)
	}
	if !merged[1].UnitPrice.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("unit price = %s, want 25.50", merged[1].UnitPrice)
	}
	if !lines[0].UnitQty.IsZero() {
		t.Error("input line mutated")
	}
}

func TestMergePackQuantities_PriceRounds(t *testing.T) {
	lines := []core.PurchaseOrderLine{
		{PartNumber: "X", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(10)},
	}
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "X", PackQty: decimal.NewFromInt(3)},
	}

	merged := core.MergePackQuantities(lines, bom)
	if got := merged[0].UnitPrice; !got.Equal(decimal.RequireFromString("3.33")) {
		t.Errorf("unit price = %s, want 3.33", got)
	}
}

func TestMergePackQuantities_IgnoresBadPacks(t *testing.T) {
	lines := []core.PurchaseOrderLine{
		{PartNumber: "X", OrderedQty: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(9)},
	}
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "X", PackQty: decimal.Zero},
		{Kind: core.BOMMachined, PartNumber: "X", PackQty: decimal.NewFromInt(10)},
	}

	merged := core.MergePackQuantities(lines, bom)
	if !merged[0].PackQty.Equal(decimal.NewFromInt(1)) {
		t.Errorf("pack qty = %s, want 1", merged[0].PackQty)
	}
	if !merged[0].UnitQty.Equal(decimal.NewFromInt(3)) {
		t.Errorf("unit qty = %s, want 3", merged[0].UnitQty)
	}
}

func TestPartUniverse(t *testing.T) {
	lines := []core.PurchaseOrderLine{
		{PartNumber: "GF12.414.02.B"},
		{PartNumber: "001283"},
		{PartNumber: ""},
	}
	bom := []core.BOMPartRecord{
		{Kind: core.BOMMachined, PartNumber: "GF12.414.02"},
		{Kind: core.BOMPurchased, PartNumber: "Freight Charge"},
	}

	universe := core.PartUniverse(lines, bom)

	want := []core.ClassifiedPart{
		{Key: "001283", Class: core.ClassPurchased},
		{Key: "Freight Charge", Class: core.ClassFreight},
		{Key: "GF12.414.02", Class: core.ClassMachined},
	}
	if len(universe) != len(want) {
		t.Fatalf("got %d parts, want %d", len(universe), len(want))
	}
	for i := range want {
		if universe[i] != want[i] {
			t.Errorf("part %d = %+v, want %+v", i, universe[i], want[i])
		}
	}
}

func TestReconcile_EndToEnd(t *testing.T) {
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "001283", Description: "Hex bolt", PackQty: decimal.NewFromInt(1), RawLocations: "1x2,2x3"},
		{Kind: core.BOMMachined, PartNumber: "GF12.414.02", Revision: "B", Description: "Spout bracket", RawLocations: "3x1"},
	}
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "101", Date: date(2024, time.January, 9), Vendor: "Acme Supply", PartNumber: "001283", OrderedQty: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(12)},
		{PONumber: "100", Date: date(2024, time.January, 5), Vendor: "Acme Supply", PartNumber: "001283", OrderedQty: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(10)},
		{PONumber: "102", Date: date(2024, time.January, 7), Vendor: "Machine Shop", PartNumber: "GF12.414.02.B", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(500)},
	}, bom)

	result := core.Reconcile(lines, bom)

	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(result.Records))
	}

	// The older PO line feeds the first demand even though it was loaded
	// second.
	first := result.Records[0]
	if *first.PONumber != "100" || *first.Location != "1" || !first.UnitQty.Equal(decimal.NewFromInt(2)) {
		t.Errorf("first record = PO %s loc %s qty %s, want PO 100 loc 1 qty 2", *first.PONumber, *first.Location, first.UnitQty)
	}
	if first.Category1 == nil || *first.Category1 != "Main Frame" {
		t.Errorf("first record Category1 = %v, want Main Frame", first.Category1)
	}

	second := result.Records[1]
	if *second.PONumber != "101" || *second.Location != "2" || !second.UnitQty.Equal(decimal.NewFromInt(3)) {
		t.Errorf("second record = PO %s loc %s qty %s, want PO 101 loc 2 qty 3", *second.PONumber, *second.Location, second.UnitQty)
	}
	if second.Category1 == nil || *second.Category1 != "Unwind/Punch Station" {
		t.Errorf("second record Category1 = %v, want Unwind/Punch Station", second.Category1)
	}

	// The machined revision folds into its BOM base part, and the record
	// keeps the revisioned part number from the PO line.
	third := result.Records[2]
	if *third.PONumber != "102" || *third.Location != "3" {
		t.Errorf("third record = PO %s loc %s, want PO 102 loc 3", *third.PONumber, *third.Location)
	}
	if third.PartNumber != "GF12.414.02.B" {
		t.Errorf("third record part = %s, want GF12.414.02.B", third.PartNumber)
	}
	if third.Category1 == nil || *third.Category1 != "Spout Station" {
		t.Errorf("third record Category1 = %v, want Spout Station", third.Category1)
	}
}

func TestReconcile_BadLocationSpecFallsBackToUnattributed(t *testing.T) {
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "001283", PackQty: decimal.NewFromInt(1), RawLocations: "1-2"},
	}
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "100", PartNumber: "001283", OrderedQty: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(10)},
	}, bom)

	result := core.Reconcile(lines, bom)

	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(result.Warnings))
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	rec := result.Records[0]
	if rec.Type != core.RecordPurchase || rec.Location != nil {
		t.Errorf("record = type %q location %v, want unattributed purchase", rec.Type, rec.Location)
	}
}

func TestReconcile_FreightGetsLocation(t *testing.T) {
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "100", PartNumber: "Freight Charge", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(85)},
	}, nil)

	result := core.Reconcile(lines, nil)

	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	rec := result.Records[0]
	if rec.Location == nil || *rec.Location != "Freight" {
		t.Errorf("location = %v, want Freight", rec.Location)
	}
	if rec.Category1 != nil {
		t.Errorf("freight rows map to no station, got %q", *rec.Category1)
	}
}

func TestReconcile_AppliesOverrides(t *testing.T) {
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "001283", PackQty: decimal.NewFromInt(1), RawLocations: "1x2"},
	}
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "100", PartNumber: "001283", OrderedQty: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(10), Override1: strp("Cap Station")},
	}, bom)

	result := core.Reconcile(lines, bom)

	rec := result.Records[0]
	if rec.Category1 == nil || *rec.Category1 != "Cap Station" {
		t.Errorf("Category1 = %v, want the Cap Station override", rec.Category1)
	}
}

func TestReconcile_SortsByDateThenPONumber(t *testing.T) {
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "P", PackQty: decimal.NewFromInt(1), RawLocations: "1x1,2x1,3x1"},
	}
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "202", Date: date(2024, time.January, 6), PartNumber: "P", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1)},
		{PONumber: "201", Date: date(2024, time.January, 5), PartNumber: "P", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1)},
		{PONumber: "200", Date: date(2024, time.January, 5), PartNumber: "P", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1)},
	}, bom)

	result := core.Reconcile(lines, bom)

	if len(result.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(result.Records))
	}
	wantPO := []string{"200", "201", "202"}
	for i, want := range wantPO {
		if *result.Records[i].PONumber != want {
			t.Errorf("record %d PO = %s, want %s", i, *result.Records[i].PONumber, want)
		}
	}
}

func TestReconcile_Deterministic(t *testing.T) {
	bom := []core.BOMPartRecord{
		{Kind: core.BOMPurchased, PartNumber: "001283", Description: "Hex bolt", PackQty: decimal.NewFromInt(1), RawLocations: "1x2,2x3"},
		{Kind: core.BOMPurchased, PartNumber: "004410", Description: "O-ring", PackQty: decimal.NewFromInt(1), RawLocations: "5x4"},
		{Kind: core.BOMMachined, PartNumber: "GF12.414.02", RawLocations: "3x1"},
	}
	lines := core.MergePackQuantities([]core.PurchaseOrderLine{
		{PONumber: "100", Date: date(2024, time.January, 5), PartNumber: "001283", OrderedQty: decimal.NewFromInt(9), UnitCost: decimal.NewFromInt(10)},
		{PONumber: "101", Date: date(2024, time.January, 6), PartNumber: "GF12.414.02.B", OrderedQty: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(500)},
		{PONumber: "102", Date: date(2024, time.January, 7), PartNumber: "779001", OrderedQty: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(3)},
	}, bom)

	first := core.Reconcile(lines, bom)
	second := core.Reconcile(lines, bom)

	if len(first.Records) != len(second.Records) {
		t.Fatalf("run lengths differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		if !allocEqual(first.Records[i], second.Records[i]) {
			t.Errorf("record %d differs between runs: %+v vs %+v", i, first.Records[i], second.Records[i])
		}
	}
}
