package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"jobcoster/internal/core"

	"github.com/invopop/jsonschema"
)

// ReportRecord is one allocation row in the JSON report. Fields mirror the
// CSV columns so the two encodings stay interchangeable.
type ReportRecord struct {
	Type        string `json:"type" jsonschema_description:"Record type: Purchase Order, <Stock>, or <Extra>"`
	Date        string `json:"date,omitempty" jsonschema_description:"Purchase order date in YYYY-MM-DD form, when known"`
	PONumber    string `json:"po_number,omitempty" jsonschema_description:"Purchase order number the quantity came from"`
	Vendor      string `json:"vendor,omitempty" jsonschema_description:"Vendor the quantity was bought from"`
	PartNumber  string `json:"part_number" jsonschema_description:"Normalized part number"`
	Description string `json:"description,omitempty" jsonschema_description:"Part description"`
	Location    string `json:"location,omitempty" jsonschema_description:"BOM location the quantity was allocated to, empty when unattributed"`
	UnitQty     string `json:"unit_qty" jsonschema_description:"Allocated quantity in units, two decimal places"`
	UnitPrice   string `json:"unit_price" jsonschema_description:"Price per unit, two decimal places"`
	Category1   string `json:"category_1,omitempty" jsonschema_description:"Station grouping derived from the location, or an override"`
	Category2   string `json:"category_2,omitempty" jsonschema_description:"Secondary grouping from an override"`
}

// Report is the JSON form of one allocation run.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at" jsonschema_description:"When the report was produced"`
	Records     []ReportRecord `json:"records" jsonschema_description:"Allocation rows in output order"`
	Warnings    []string       `json:"warnings,omitempty" jsonschema_description:"Non-fatal problems found during the run"`
}

func buildReport(result *core.Result, now time.Time) Report {
	report := Report{GeneratedAt: now.UTC(), Warnings: result.Warnings}
	report.Records = make([]ReportRecord, len(result.Records))
	for i, rec := range result.Records {
		report.Records[i] = ReportRecord{
			Type:        string(rec.Type),
			Date:        formatDate(rec.Date),
			PONumber:    deref(rec.PONumber),
			Vendor:      deref(rec.Vendor),
			PartNumber:  rec.PartNumber,
			Description: rec.Description,
			Location:    deref(rec.Location),
			UnitQty:     rec.UnitQty.StringFixed(2),
			UnitPrice:   rec.UnitPrice.StringFixed(2),
			Category1:   deref(rec.Category1),
			Category2:   deref(rec.Category2),
		}
	}
	return report
}

// WriteJSON renders the allocation result as an indented JSON report.
func WriteJSON(w io.Writer, result *core.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildReport(result, time.Now())); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Schema returns the JSON Schema for the report format, for consumers that
// validate reports before loading them.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&Report{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return out, nil
}
