package core_test

import (
	"testing"

	"jobcoster/internal/core"
)

func TestOverrideProposal_Validate(t *testing.T) {
	tests := []struct {
		name      string
		proposal  core.OverrideProposal
		expectErr bool
	}{
		{
			name: "valid proposal",
			proposal: core.OverrideProposal{
				Summary: "Two rows recategorized",
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "001283", Category1: "Cap Station", Confidence: 0.9},
					{PONumber: "101", PartNumber: "90128A247", Category1: "Main Frame", Category2: "Hardware", Confidence: 0.75},
				},
			},
			expectErr: false,
		},
		{
			name: "freight casing normalized",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "Freight Charge", Category1: "freight", Confidence: 0.8},
				},
			},
			expectErr: false,
		},
		{
			name: "second category alone is enough",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "001283", Category2: "Electrical", Confidence: 0.5},
				},
			},
			expectErr: false,
		},
		{
			name:      "empty proposal",
			proposal:  core.OverrideProposal{},
			expectErr: true,
		},
		{
			name: "missing po number",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PartNumber: "001283", Category1: "Cap Station", Confidence: 0.9},
				},
			},
			expectErr: true,
		},
		{
			name: "missing part number",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", Category1: "Cap Station", Confidence: 0.9},
				},
			},
			expectErr: true,
		},
		{
			name: "no category proposed",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "001283", Confidence: 0.9},
				},
			},
			expectErr: true,
		},
		{
			name: "unknown station",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "001283", Category1: "Paint Shop", Confidence: 0.9},
				},
			},
			expectErr: true,
		},
		{
			name: "confidence out of range",
			proposal: core.OverrideProposal{
				Suggestions: []core.OverrideSuggestion{
					{PONumber: "100", PartNumber: "001283", Category1: "Cap Station", Confidence: 1.5},
				},
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.proposal.Normalize()
			err := tt.proposal.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected a validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestOverrideProposal_NormalizeCleansFields(t *testing.T) {
	p := core.OverrideProposal{
		Summary: "  two fixes ",
		Suggestions: []core.OverrideSuggestion{
			{PONumber: " 100 ", PartNumber: "90128A247 (pack of 50)", Category1: " freight ", Confidence: 0.7},
		},
	}

	p.Normalize()

	if p.Summary != "two fixes" {
		t.Errorf("summary = %q, want trimmed", p.Summary)
	}
	s := p.Suggestions[0]
	if s.PONumber != "100" {
		t.Errorf("PO number = %q, want 100", s.PONumber)
	}
	if s.PartNumber != "90128A247" {
		t.Errorf("part number = %q, want 90128A247", s.PartNumber)
	}
	if s.Category1 != "Freight" {
		t.Errorf("Category1 = %q, want Freight", s.Category1)
	}
}

func TestOverrideProposal_Entries(t *testing.T) {
	p := core.OverrideProposal{
		Suggestions: []core.OverrideSuggestion{
			{PONumber: "100", PartNumber: "001283", Category1: "Cap Station", Confidence: 0.9},
			{PONumber: "101", PartNumber: "004410", Category2: "Electrical", Confidence: 0.6},
		},
	}

	entries := p.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0]
	if first.PONumber != "100" || first.PartNumber != "001283" {
		t.Errorf("entry = %s/%s, want 100/001283", first.PONumber, first.PartNumber)
	}
	if first.Override1 == nil || *first.Override1 != "Cap Station" {
		t.Errorf("Override1 = %v, want Cap Station", first.Override1)
	}
	if first.Override2 != nil {
		t.Errorf("empty category produced override %q", *first.Override2)
	}
	second := entries[1]
	if second.Override1 != nil {
		t.Errorf("empty category produced override %q", *second.Override1)
	}
	if second.Override2 == nil || *second.Override2 != "Electrical" {
		t.Errorf("Override2 = %v, want Electrical", second.Override2)
	}
}
