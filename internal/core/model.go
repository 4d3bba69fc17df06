package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordType identifies the supply source of an allocation record.
type RecordType string

const (
	RecordPurchase RecordType = "Purchase Order"
	RecordStock    RecordType = "<Stock>"
	RecordExtra    RecordType = "<Extra>"
)

// PartClass is the one-shot classification of a part number. It is decided
// once per reconciliation run and never re-derived from strings afterwards.
type PartClass string

const (
	ClassPurchased PartClass = "purchased"
	ClassMachined  PartClass = "machined"
	ClassFreight   PartClass = "freight"
)

// BOMKind says which BOM tab a part record came from.
type BOMKind string

const (
	BOMPurchased BOMKind = "purchased"
	BOMMachined  BOMKind = "machined"
)

// PurchaseOrderLine is one purchase-order record for a part number.
// Immutable once normalized; PartNumber is derived from RawItem exactly once.
type PurchaseOrderLine struct {
	EntryType   string // entry type from the accounting export ("Bill", "Check", ...)
	Date        *time.Time
	PONumber    string
	Vendor      string
	RawItem     string
	PartNumber  string
	Description string
	OrderedQty  decimal.Decimal
	UnitCost    decimal.Decimal
	PackQty     decimal.Decimal // joined from the purchased BOM, 1 when absent
	UnitQty     decimal.Decimal // OrderedQty × PackQty
	UnitPrice   decimal.Decimal // UnitCost / PackQty, rounded to 2 places
	Override1   *string
	Override2   *string
}

// BOMPartRecord is one distinct part from a BOM tab. PartNumber is the join
// key to PO lines; for machined parts it is the revision-stripped base.
type BOMPartRecord struct {
	Kind         BOMKind
	PartNumber   string
	Revision     string // machined tabs only
	Description  string
	PackQty      decimal.Decimal
	RawLocations string
	Vendor       string
	Cost         decimal.Decimal
}

// LocationDemand is one parsed (location, quantity) entry from a BOM record's
// location spec. Order of appearance in the source text is the allocation
// priority order.
type LocationDemand struct {
	Location string
	Quantity decimal.Decimal
}

// AllocationRecord attributes a quantity of a part, at a unit price, to an
// installation location, a stock draw, or surplus. Emitted by the allocation
// engine and touched afterwards only by override substitution.
type AllocationRecord struct {
	Type        RecordType
	Date        *time.Time
	PONumber    *string
	Vendor      *string
	PartNumber  string
	Description string
	Location    *string
	UnitQty     decimal.Decimal
	UnitPrice   decimal.Decimal
	Category1   *string
	Category2   *string
}

// OverrideEntry is one manual category correction keyed by PO number and part
// number. Entries merge onto PO lines before a run.
type OverrideEntry struct {
	PONumber   string
	PartNumber string
	Override1  *string
	Override2  *string
}

// ClassifiedPart is one comparison key of the part universe with its class.
type ClassifiedPart struct {
	Key   string
	Class PartClass
}

// Result is one reconciliation run's output: the allocation table in part
// order plus any per-part warnings. Warnings never abort a run.
type Result struct {
	Records  []AllocationRecord
	Warnings []string
}

func strPtr(s string) *string { return &s }
