package app

import (
	"context"

	"jobcoster/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// LoadJob reads a job workbook or standalone PO report, merges any
	// override file, and derives unit quantities and prices.
	LoadJob(ctx context.Context, req LoadJobRequest) (*LoadResult, error)

	// RunAllocation reconciles the loaded PO lines against the BOM and
	// returns the allocation table. The result is memoized until the next
	// LoadJob.
	RunAllocation(ctx context.Context) (*AllocationResult, error)

	// LookupPart returns the loaded PO lines for a part number, verbatim or
	// by case-insensitive substring.
	LookupPart(ctx context.Context, query string, verbatim bool) (*LookupResult, error)

	// ListParts returns every part in the loaded job, classified, in
	// allocation order.
	ListParts(ctx context.Context) (*PartListResult, error)

	// ListStations returns the location-prefix-to-station table, in match
	// order.
	ListStations(ctx context.Context) (*StationListResult, error)

	// FindDuplicateOverrides returns parts whose PO lines disagree on an
	// override column.
	FindDuplicateOverrides(ctx context.Context) (*DuplicateResult, error)

	// ExportAllocation writes the allocation table to a file, running the
	// allocation first if needed.
	ExportAllocation(ctx context.Context, req ExportRequest) (*ExportResult, error)

	// ReportSchema returns the JSON Schema of the JSON report format.
	ReportSchema(ctx context.Context) ([]byte, error)

	// SuggestOverrides asks the AI agent to propose category overrides for
	// allocation rows that ended the run uncategorized.
	SuggestOverrides(ctx context.Context) (*SuggestionResult, error)

	// SaveOverrides writes override entries to a CSV file that a later
	// LoadJob can merge.
	SaveOverrides(ctx context.Context, entries []core.OverrideEntry, path string) error
}
