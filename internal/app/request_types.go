package app

import "jobcoster/internal/export"

// LoadJobRequest is the input for loading a job.
type LoadJobRequest struct {
	// Path points at a job workbook (.xlsx) or a standalone purchase order
	// report (.csv).
	Path string

	// OverridesPath optionally names an override CSV merged onto the lines
	// after loading.
	OverridesPath string

	// InHouseVendorKeywords replaces the vendor filter on the purchased BOM
	// tab. nil keeps the default filter; an empty slice disables it.
	InHouseVendorKeywords []string
}

// ExportRequest is the input for exporting the allocation table.
type ExportRequest struct {
	Path   string
	Format export.Format // empty picks the format from the path extension
}
