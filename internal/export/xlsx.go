package export

import (
	"fmt"
	"io"

	"jobcoster/internal/core"

	"github.com/xuri/excelize/v2"
)

const allocationSheet = "Allocation"

// WriteXLSX renders the allocation table as a single-sheet workbook.
func WriteXLSX(w io.Writer, records []core.AllocationRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", allocationSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := Header()
	if err := f.SetSheetRow(allocationSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		row := Row(rec)
		if err := f.SetSheetRow(allocationSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
