package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"jobcoster/internal/core"
)

// LoadPurchaseOrdersCSV reads a standalone purchase order report exported as
// CSV. The report carries no BOM tabs, so every part will allocate as
// unattributed unless a workbook supplied the BOM separately.
func LoadPurchaseOrdersCSV(path string) ([]core.PurchaseOrderLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open purchase orders %s: %w", path, err)
	}
	defer f.Close()
	return ReadPurchaseOrdersCSV(f)
}

// ReadPurchaseOrdersCSV parses purchase order report rows from a stream.
func ReadPurchaseOrdersCSV(r io.Reader) ([]core.PurchaseOrderLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read purchase orders csv: %w", err)
	}
	return parsePORows(rows)
}

// LoadOverridesCSV reads a category override file from disk.
func LoadOverridesCSV(path string) ([]core.OverrideEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides %s: %w", path, err)
	}
	defer f.Close()
	return ReadOverridesCSV(f)
}

// ReadOverridesCSV parses override entries from a stream. The file joins on
// PO number and part number; rows missing either are skipped.
func ReadOverridesCSV(r io.Reader) ([]core.OverrideEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read overrides csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	hdr := indexHeaders(rows[0])
	poCol := ""
	for _, cand := range []string{"po number", "po #", "po"} {
		if hdr.has(cand) {
			poCol = cand
			break
		}
	}
	if poCol == "" || !hdr.has("part number") {
		return nil, errors.New(`overrides csv: missing "PO Number" or "Part Number" column`)
	}

	var entries []core.OverrideEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		po := strings.TrimSpace(hdr.cell(row, poCol))
		part := core.NormalizePartNumber(hdr.cell(row, "part number"))
		if po == "" || part == "" {
			continue
		}
		entries = append(entries, core.OverrideEntry{
			PONumber:   normalizePONumber(po),
			PartNumber: part,
			Override1:  optString(hdr.cell(row, "override 1")),
			Override2:  optString(hdr.cell(row, "override 2")),
		})
	}
	return entries, nil
}
