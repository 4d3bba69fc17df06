package repl

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jobcoster/internal/app"
	"jobcoster/internal/ingest"
)

func printLoadSummary(result *app.LoadResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  JOB LOADED: %s\n", result.Source)
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-18s %6d\n", "PO lines", result.POLines)
	fmt.Printf("  %-18s %6d\n", "BOM parts", result.BOMParts)
	if len(result.RowCounts) > 0 {
		fmt.Println(strings.Repeat("-", 62))
		for _, kind := range []ingest.SheetKind{
			ingest.SheetPurchaseOrders,
			ingest.SheetAssemblies,
			ingest.SheetMachined,
			ingest.SheetPurchased,
			ingest.SheetExtrusion,
			ingest.SheetBolts,
		} {
			if n, ok := result.RowCounts[kind]; ok {
				fmt.Printf("  %-18s %6d rows\n", kind, n)
			}
		}
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printAllocation(result *app.AllocationResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 104))
	fmt.Printf("  ALLOCATION: %s\n", result.Source)
	fmt.Println(strings.Repeat("=", 104))
	if len(result.Result.Records) == 0 {
		fmt.Println("  No allocation records.")
		fmt.Println(strings.Repeat("=", 104))
		return
	}
	fmt.Printf("  %-14s %-10s %-6s %-16s %-8s %10s %10s  %s\n",
		"TYPE", "DATE", "PO #", "PART", "LOC", "UNIT QTY", "PRICE", "CATEGORY 1")
	fmt.Println(strings.Repeat("-", 104))
	total := decimal.Zero
	for _, rec := range result.Result.Records {
		total = total.Add(rec.UnitQty.Mul(rec.UnitPrice))
		fmt.Printf("  %-14s %-10s %-6s %-16s %-8s %10s %10s  %s\n",
			rec.Type,
			formatDate(rec.Date),
			deref(rec.PONumber),
			clip(rec.PartNumber, 16),
			deref(rec.Location),
			rec.UnitQty.StringFixed(2),
			rec.UnitPrice.StringFixed(2),
			deref(rec.Category1),
		)
	}
	fmt.Println(strings.Repeat("-", 104))
	fmt.Printf("  %-51s %2d records %10s\n", "TOTAL ALLOCATED VALUE", len(result.Result.Records), total.StringFixed(2))
	for _, w := range result.Result.Warnings {
		fmt.Printf("  WARNING: %s\n", w)
	}
	fmt.Println(strings.Repeat("=", 104))
}

func printLookup(result *app.LookupResult) {
	mode := "verbatim"
	if !result.Verbatim {
		mode = "substring"
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 96))
	fmt.Printf("  PO LINES: %q (%s match)\n", result.Query, mode)
	fmt.Println(strings.Repeat("=", 96))
	if len(result.Lines) == 0 {
		fmt.Println("  No PO lines found.")
		fmt.Println(strings.Repeat("=", 96))
		return
	}
	fmt.Printf("  %-10s %-6s %-20s %-16s %10s %10s  %s\n",
		"DATE", "PO #", "VENDOR", "PART", "UNIT QTY", "PRICE", "DESCRIPTION")
	fmt.Println(strings.Repeat("-", 96))
	for _, line := range result.Lines {
		fmt.Printf("  %-10s %-6s %-20s %-16s %10s %10s  %s\n",
			formatDate(line.Date),
			line.PONumber,
			clip(line.Vendor, 20),
			clip(line.PartNumber, 16),
			line.UnitQty.StringFixed(2),
			line.UnitPrice.StringFixed(2),
			clip(line.Description, 24),
		)
	}
	fmt.Println(strings.Repeat("=", 96))
}

func printParts(result *app.PartListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("  PARTS (%d)\n", len(result.Parts))
	fmt.Println(strings.Repeat("=", 48))
	if len(result.Parts) == 0 {
		fmt.Println("  No parts found.")
		fmt.Println(strings.Repeat("=", 48))
		return
	}
	fmt.Printf("  %-32s %s\n", "PART", "CLASS")
	fmt.Println(strings.Repeat("-", 48))
	for _, p := range result.Parts {
		fmt.Printf("  %-32s %s\n", p.Key, p.Class)
	}
	fmt.Println(strings.Repeat("=", 48))
}

func printStations(result *app.StationListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 48))
	fmt.Printf("  %-18s %s\n", "LOCATION PREFIX", "STATION")
	fmt.Println(strings.Repeat("=", 48))
	for _, m := range result.Mappings {
		fmt.Printf("  %-18s %s\n", m.Prefix, m.Station)
	}
	fmt.Println(strings.Repeat("=", 48))
}

func printDuplicates(result *app.DuplicateResult) {
	fmt.Println()
	if len(result.Groups) == 0 {
		fmt.Println("No conflicting overrides found.")
		return
	}
	fmt.Println(strings.Repeat("=", 86))
	fmt.Printf("  CONFLICTING OVERRIDES (%d parts)\n", len(result.Groups))
	fmt.Println(strings.Repeat("=", 86))
	for _, g := range result.Groups {
		fmt.Printf("  %s\n", g.PartNumber)
		for _, line := range g.Lines {
			fmt.Printf("    PO %-6s Override 1: %-20s Override 2: %s\n",
				line.PONumber, deref(line.Override1), deref(line.Override2))
		}
	}
	fmt.Println(strings.Repeat("=", 86))
}

func printSuggestions(result *app.SuggestionResult) {
	p := result.Proposal
	fmt.Printf("\nSUMMARY:      %s\n", p.Summary)
	fmt.Printf("ROWS COVERED: %d\n", result.RowsCovered)
	fmt.Println("SUGGESTIONS:")
	low := false
	for _, s := range p.Suggestions {
		if s.Confidence < 0.6 {
			low = true
		}
		fmt.Printf("  PO %-6s %-16s Category 1: %-20s Category 2: %-14s (%.2f)\n",
			s.PONumber, clip(s.PartNumber, 16), s.Category1, s.Category2, s.Confidence)
		if s.Reasoning != "" {
			fmt.Printf("    %s\n", s.Reasoning)
		}
	}
	if low {
		fmt.Println("\nWARNING: Low confidence suggestions. Review before writing.")
	}
}

func printHelp() {
	fmt.Println()
	fmt.Println("JOB COSTER COMMANDS")
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println()
	fmt.Println("  JOB")
	fmt.Println("  /load <file> [overrides.csv]   Load a job workbook (.xlsx) or PO report (.csv)")
	fmt.Println("  /parts                         List every part number in the job")
	fmt.Println("  /lookup <part> [sub]           PO lines for one part (\"sub\" for substring match)")
	fmt.Println()
	fmt.Println("  ALLOCATION")
	fmt.Println("  /run                           Allocate PO lines against the BOM locations")
	fmt.Println("  /export <file>                 Write the allocation table (.csv, .xlsx or .json)")
	fmt.Println("  /stations                      Location prefix to station table")
	fmt.Println("  /schema                        Print the JSON report schema")
	fmt.Println()
	fmt.Println("  OVERRIDES")
	fmt.Println("  /suggest <overrides.csv>       AI categorizes rows, you approve, file is written")
	fmt.Println("  /duplicates                    Parts whose override columns disagree")
	fmt.Println()
	fmt.Println("  SESSION")
	fmt.Println("  /help                          Show this help")
	fmt.Println("  /exit                          Exit")
	fmt.Println()
	fmt.Println("  LOOKUP MODE  (no / prefix)")
	fmt.Println("  Type any part number fragment to search PO lines.")
	fmt.Println("  Example: \"90128\"")
	fmt.Println(strings.Repeat("=", 62))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
