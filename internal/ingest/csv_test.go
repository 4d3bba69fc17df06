package ingest_test

import (
	"strings"
	"testing"

	"jobcoster/internal/ingest"

	"github.com/shopspring/decimal"
)

func TestReadPurchaseOrdersCSV_ReportFurniture(t *testing.T) {
	const report = `Crave Packaging LLC,,,,,,,
All Purchase Orders,,,,,,,
Type,Date,Num,Source Name,Item,Qty,Cost Price,Item Description
Purchase Order,1/5/24,100,Acme Supply,001283,2,10.00,Hex bolt
,,,,,,,
Total,,,,,,22.00,
`
	lines, err := ingest.ReadPurchaseOrdersCSV(strings.NewReader(report))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 with furniture rows skipped", len(lines))
	}
	if lines[0].PartNumber != "001283" || lines[0].PONumber != "100" {
		t.Errorf("line = %s/%s, want 001283/100", lines[0].PartNumber, lines[0].PONumber)
	}
}

func TestReadPurchaseOrdersCSV_AmountColumn(t *testing.T) {
	const report = `Type,Date,Num,Source Name,Item,Qty,Amount,Item Description
Purchase Order,1/5/24,100,Acme Supply,001283,4,50.00,Hex bolt
Purchase Order,1/9/24,101.0,Acme Supply,004410,0,25.00,O-ring
`
	lines, err := ingest.ReadPurchaseOrdersCSV(strings.NewReader(report))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	// 50.00 across 4 packs: 12.50 a pack.
	if !lines[0].UnitCost.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("unit cost = %s, want 12.50", lines[0].UnitCost)
	}
	// Zero quantity keeps the amount as the cost.
	if !lines[1].UnitCost.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unit cost = %s, want 25", lines[1].UnitCost)
	}
	// Excel float PO numbers normalize back to integers.
	if lines[1].PONumber != "101" {
		t.Errorf("PO number = %q, want 101", lines[1].PONumber)
	}
}

func TestReadPurchaseOrdersCSV_MissingCostColumns(t *testing.T) {
	const report = `Type,Date,Num,Source Name,Item,Qty
Purchase Order,1/5/24,100,Acme,001283,2
`
	_, err := ingest.ReadPurchaseOrdersCSV(strings.NewReader(report))
	if err == nil || !strings.Contains(err.Error(), "Cost Price") {
		t.Fatalf("err = %v, want a missing cost column complaint", err)
	}
}

func TestReadPurchaseOrdersCSV_BadDate(t *testing.T) {
	const report = `Type,Date,Num,Source Name,Item,Qty,Cost Price
Purchase Order,tomorrow,100,Acme,001283,2,10.00
`
	_, err := ingest.ReadPurchaseOrdersCSV(strings.NewReader(report))
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("err = %v, want a row 2 date complaint", err)
	}
}

func TestReadOverridesCSV(t *testing.T) {
	const file = `PO Number,Part Number,Override 1,Override 2
100,001283,Cap Station,Electrical
101.0,004410,,
,779001,Main Frame,
`
	entries, err := ingest.ReadOverridesCSV(strings.NewReader(file))
	if err != nil {
		t.Fatalf("read overrides: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 with the blank-PO row skipped", len(entries))
	}
	first := entries[0]
	if first.PONumber != "100" || first.PartNumber != "001283" {
		t.Errorf("entry = %s/%s, want 100/001283", first.PONumber, first.PartNumber)
	}
	if first.Override1 == nil || *first.Override1 != "Cap Station" {
		t.Errorf("Override1 = %v, want Cap Station", first.Override1)
	}
	if first.Override2 == nil || *first.Override2 != "Electrical" {
		t.Errorf("Override2 = %v, want Electrical", first.Override2)
	}
	second := entries[1]
	if second.PONumber != "101" {
		t.Errorf("PO number = %q, want 101", second.PONumber)
	}
	if second.Override1 != nil || second.Override2 != nil {
		t.Errorf("empty override cells = %v/%v, want nil/nil", second.Override1, second.Override2)
	}
}

func TestReadOverridesCSV_AltHeader(t *testing.T) {
	const file = `PO #,Part Number,Override 1
100,001283,Cap Station
`
	entries, err := ingest.ReadOverridesCSV(strings.NewReader(file))
	if err != nil {
		t.Fatalf("read overrides: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
}

func TestReadOverridesCSV_MissingColumns(t *testing.T) {
	_, err := ingest.ReadOverridesCSV(strings.NewReader("Part,Override\nX,Y\n"))
	if err == nil {
		t.Fatal("expected an error for a file with no join columns")
	}
}
