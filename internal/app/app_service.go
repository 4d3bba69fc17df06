package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobcoster/internal/ai"
	"jobcoster/internal/core"
	"jobcoster/internal/export"
	"jobcoster/internal/ingest"
)

// jobState is the in-memory session: one loaded job and its memoized
// allocation.
type jobState struct {
	source    string
	lines     []core.PurchaseOrderLine
	bom       []core.BOMPartRecord
	rowCounts map[ingest.SheetKind]int
	result    *core.Result
}

type appService struct {
	agent *ai.Agent
	job   *jobState
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil; SuggestOverrides then reports that no agent is
// configured.
func NewAppService(agent *ai.Agent) ApplicationService {
	return &appService{agent: agent}
}

func (s *appService) requireJob() (*jobState, error) {
	if s.job == nil {
		return nil, errors.New("no job loaded: load a workbook first")
	}
	return s.job, nil
}

// LoadJob reads a job workbook or standalone PO report and prepares its
// lines for allocation.
func (s *appService) LoadJob(ctx context.Context, req LoadJobRequest) (*LoadResult, error) {
	keywords := req.InHouseVendorKeywords
	if keywords == nil {
		keywords = ingest.DefaultOptions().InHouseVendorKeywords
	}

	job := &jobState{source: req.Path}
	switch strings.ToLower(filepath.Ext(req.Path)) {
	case ".csv":
		lines, err := ingest.LoadPurchaseOrdersCSV(req.Path)
		if err != nil {
			return nil, err
		}
		job.lines = lines
	default:
		wb, err := ingest.LoadWorkbook(req.Path, ingest.Options{InHouseVendorKeywords: keywords})
		if err != nil {
			return nil, err
		}
		job.lines = wb.Lines
		job.bom = wb.BOM
		job.rowCounts = wb.RowCounts
	}

	if req.OverridesPath != "" {
		entries, err := ingest.LoadOverridesCSV(req.OverridesPath)
		if err != nil {
			return nil, err
		}
		job.lines = core.MergeOverrides(job.lines, entries)
	}
	job.lines = core.MergePackQuantities(job.lines, job.bom)

	s.job = job
	return &LoadResult{
		Source:    job.source,
		POLines:   len(job.lines),
		BOMParts:  len(job.bom),
		RowCounts: job.rowCounts,
	}, nil
}

// RunAllocation reconciles the loaded job, memoizing the result.
func (s *appService) RunAllocation(ctx context.Context) (*AllocationResult, error) {
	job, err := s.requireJob()
	if err != nil {
		return nil, err
	}
	if job.result == nil {
		job.result = core.Reconcile(job.lines, job.bom)
	}
	return &AllocationResult{Source: job.source, Result: job.result}, nil
}

// LookupPart returns the loaded PO lines matching a part number query.
func (s *appService) LookupPart(ctx context.Context, query string, verbatim bool) (*LookupResult, error) {
	job, err := s.requireJob()
	if err != nil {
		return nil, err
	}
	query = core.NormalizePartNumber(query)
	return &LookupResult{
		Query:    query,
		Verbatim: verbatim,
		Lines:    core.LookupPartLines(job.lines, query, verbatim),
	}, nil
}

// ListParts returns the loaded job's part universe.
func (s *appService) ListParts(ctx context.Context) (*PartListResult, error) {
	job, err := s.requireJob()
	if err != nil {
		return nil, err
	}
	return &PartListResult{Parts: core.PartUniverse(job.lines, job.bom)}, nil
}

// ListStations returns the station mapping table.
func (s *appService) ListStations(ctx context.Context) (*StationListResult, error) {
	return &StationListResult{Mappings: core.StationMappings()}, nil
}

// FindDuplicateOverrides returns parts with conflicting override columns.
func (s *appService) FindDuplicateOverrides(ctx context.Context) (*DuplicateResult, error) {
	job, err := s.requireJob()
	if err != nil {
		return nil, err
	}
	return &DuplicateResult{Groups: core.FindDuplicateOverrides(job.lines)}, nil
}

// ExportAllocation writes the allocation table to a file.
func (s *appService) ExportAllocation(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	alloc, err := s.RunAllocation(ctx)
	if err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = export.FormatForPath(req.Path)
	}

	f, err := os.Create(req.Path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", req.Path, err)
	}
	defer f.Close()
	if err := export.Write(f, alloc.Result, format); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", req.Path, err)
	}

	return &ExportResult{Path: req.Path, Format: format, Records: len(alloc.Result.Records)}, nil
}

// ReportSchema returns the JSON Schema of the report format.
func (s *appService) ReportSchema(ctx context.Context) ([]byte, error) {
	return export.Schema()
}

// SuggestOverrides sends the uncategorized purchase rows to the AI agent and
// returns its validated proposal.
func (s *appService) SuggestOverrides(ctx context.Context) (*SuggestionResult, error) {
	if s.agent == nil {
		return nil, errors.New("AI agent not configured: set OPENAI_API_KEY")
	}
	alloc, err := s.RunAllocation(ctx)
	if err != nil {
		return nil, err
	}

	rows := uncategorizedRows(alloc.Result.Records)
	if len(rows) == 0 {
		return &SuggestionResult{}, nil
	}

	proposal, err := s.agent.SuggestOverrides(ctx, renderRowsForAgent(rows), renderStationsForAgent())
	if err != nil {
		return nil, err
	}
	return &SuggestionResult{Proposal: proposal, RowsCovered: len(rows)}, nil
}

// SaveOverrides writes override entries to a CSV file.
func (s *appService) SaveOverrides(ctx context.Context, entries []core.OverrideEntry, path string) error {
	if len(entries) == 0 {
		return errors.New("no override entries to save")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WriteOverridesCSV(f, entries); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// uncategorizedRows picks the purchase rows that ended the run with no
// category in either column. Stock rows are excluded: they carry no PO an
// override could join back to.
func uncategorizedRows(records []core.AllocationRecord) []core.AllocationRecord {
	var rows []core.AllocationRecord
	for _, rec := range records {
		if rec.Type != core.RecordPurchase || rec.PONumber == nil {
			continue
		}
		if rec.Category1 == nil && rec.Category2 == nil {
			rows = append(rows, rec)
		}
	}
	return rows
}

func renderRowsForAgent(rows []core.AllocationRecord) string {
	var b strings.Builder
	for _, rec := range rows {
		vendor := ""
		if rec.Vendor != nil {
			vendor = *rec.Vendor
		}
		fmt.Fprintf(&b, "PO %s | part %s | vendor %s | %s | qty %s @ %s\n",
			*rec.PONumber, rec.PartNumber, vendor, rec.Description,
			rec.UnitQty.StringFixed(2), rec.UnitPrice.StringFixed(2))
	}
	return b.String()
}

func renderStationsForAgent() string {
	var b strings.Builder
	seen := make(map[string]bool)
	for _, m := range core.StationMappings() {
		if seen[m.Station] {
			continue
		}
		seen[m.Station] = true
		fmt.Fprintf(&b, "- %s\n", m.Station)
	}
	return b.String()
}
