package app

import (
	"jobcoster/internal/core"
	"jobcoster/internal/export"
	"jobcoster/internal/ingest"
)

// LoadResult is returned by LoadJob.
type LoadResult struct {
	Source    string
	POLines   int
	BOMParts  int
	RowCounts map[ingest.SheetKind]int // nil for CSV loads
}

// AllocationResult is returned by RunAllocation.
type AllocationResult struct {
	Source string
	Result *core.Result
}

// LookupResult is returned by LookupPart.
type LookupResult struct {
	Query    string
	Verbatim bool
	Lines    []core.PurchaseOrderLine
}

// PartListResult is returned by ListParts.
type PartListResult struct {
	Parts []core.ClassifiedPart
}

// StationListResult is returned by ListStations.
type StationListResult struct {
	Mappings []core.StationMapping
}

// DuplicateResult is returned by FindDuplicateOverrides.
type DuplicateResult struct {
	Groups []core.DuplicateOverrideGroup
}

// ExportResult is returned by ExportAllocation.
type ExportResult struct {
	Path    string
	Format  export.Format
	Records int
}

// SuggestionResult is returned by SuggestOverrides. Proposal is nil when
// every purchase row already carries a category.
type SuggestionResult struct {
	Proposal    *core.OverrideProposal
	RowsCovered int
}
