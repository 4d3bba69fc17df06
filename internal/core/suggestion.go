package core

import (
	"errors"
	"fmt"
	"strings"
)

// OverrideSuggestion is one AI-drafted category correction for a PO line.
type OverrideSuggestion struct {
	PONumber   string  `json:"po_number" jsonschema_description:"The PO number exactly as it appears in the allocation rows"`
	PartNumber string  `json:"part_number" jsonschema_description:"The part number exactly as it appears in the allocation rows"`
	Category1  string  `json:"category_1" jsonschema_description:"Proposed Category 1: one of the provided station names, or 'Freight' for freight and expediting charges"`
	Category2  string  `json:"category_2" jsonschema_description:"Proposed Category 2, or empty when no secondary grouping applies"`
	Confidence float64 `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning  string  `json:"reasoning" jsonschema_description:"Short explanation for the proposed categories"`
}

// OverrideProposal is the AI-generated set of suggested category overrides
// for one run. Suggestions never apply on their own: the user approves the
// proposal, the entries are written to an overrides file, and the next load
// merges them onto the PO lines.
type OverrideProposal struct {
	Summary     string               `json:"summary" jsonschema_description:"One-line summary of what the suggestions cover"`
	Suggestions []OverrideSuggestion `json:"suggestions" jsonschema_description:"Suggested category overrides, one per (PO number, part number) pair"`
}

// Normalize cleans up AI output, dealing with common formatting issues,
// before validation.
func (p *OverrideProposal) Normalize() {
	p.Summary = strings.TrimSpace(p.Summary)
	for i := range p.Suggestions {
		s := &p.Suggestions[i]
		s.PONumber = strings.TrimSpace(s.PONumber)
		s.PartNumber = NormalizePartNumber(s.PartNumber)
		s.Category1 = strings.TrimSpace(s.Category1)
		s.Category2 = strings.TrimSpace(s.Category2)
		if strings.EqualFold(s.Category1, "freight") {
			s.Category1 = "Freight"
		}
	}
}

// Validate enforces the override contract on the proposal. Category 1 must
// name a station from the prefix table, or Freight, so an approved
// suggestion cannot introduce an unknown category into the allocation table.
func (p *OverrideProposal) Validate() error {
	if len(p.Suggestions) == 0 {
		return errors.New("proposal contains no suggestions")
	}

	known := map[string]bool{"Freight": true}
	for _, m := range StationMappings() {
		known[m.Station] = true
	}

	for i, s := range p.Suggestions {
		if s.PONumber == "" {
			return fmt.Errorf("suggestion %d: missing PO number", i+1)
		}
		if s.PartNumber == "" {
			return fmt.Errorf("suggestion %d: missing part number", i+1)
		}
		if s.Category1 == "" && s.Category2 == "" {
			return fmt.Errorf("suggestion %d: no category proposed", i+1)
		}
		if s.Category1 != "" && !known[s.Category1] {
			return fmt.Errorf("suggestion %d: unknown category %q", i+1, s.Category1)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			return fmt.Errorf("suggestion %d: confidence %.2f out of range", i+1, s.Confidence)
		}
	}
	return nil
}

// Entries converts an approved proposal into override entries ready to merge
// onto PO lines.
func (p *OverrideProposal) Entries() []OverrideEntry {
	entries := make([]OverrideEntry, 0, len(p.Suggestions))
	for _, s := range p.Suggestions {
		e := OverrideEntry{PONumber: s.PONumber, PartNumber: s.PartNumber}
		if s.Category1 != "" {
			e.Override1 = strPtr(s.Category1)
		}
		if s.Category2 != "" {
			e.Override2 = strPtr(s.Category2)
		}
		entries = append(entries, e)
	}
	return entries
}
