package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"jobcoster/internal/app"
	"jobcoster/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "run", "r":
		if len(args) < 2 {
			log.Fatal("Usage: jobcoster run <job.xlsx|report.csv> [overrides.csv]")
		}
		loadJob(ctx, svc, args[1], optArg(args, 2))
		result, err := svc.RunAllocation(ctx)
		if err != nil {
			log.Fatalf("Allocation failed: %v", err)
		}
		printAllocationTable(result)

	case "export", "x":
		if len(args) < 3 {
			log.Fatal("Usage: jobcoster export <job.xlsx|report.csv> <out.csv|out.xlsx|out.json> [overrides.csv]")
		}
		loadJob(ctx, svc, args[1], optArg(args, 3))
		result, err := svc.ExportAllocation(ctx, app.ExportRequest{Path: args[2]})
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Wrote %d records to %s (%s).\n", result.Records, result.Path, result.Format)

	case "lookup", "l":
		if len(args) < 3 {
			log.Fatal("Usage: jobcoster lookup <job.xlsx|report.csv> <part-number> [sub]")
		}
		loadJob(ctx, svc, args[1], "")
		verbatim := !(len(args) >= 4 && strings.EqualFold(args[3], "sub"))
		result, err := svc.LookupPart(ctx, args[2], verbatim)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		printLookupTable(result)

	case "parts":
		if len(args) < 2 {
			log.Fatal("Usage: jobcoster parts <job.xlsx|report.csv>")
		}
		loadJob(ctx, svc, args[1], "")
		result, err := svc.ListParts(ctx)
		if err != nil {
			log.Fatalf("Failed to list parts: %v", err)
		}
		for _, p := range result.Parts {
			fmt.Printf("%-32s %s\n", p.Key, p.Class)
		}

	case "duplicates", "dups":
		if len(args) < 2 {
			log.Fatal("Usage: jobcoster duplicates <job.xlsx|report.csv> [overrides.csv]")
		}
		loadJob(ctx, svc, args[1], optArg(args, 2))
		result, err := svc.FindDuplicateOverrides(ctx)
		if err != nil {
			log.Fatalf("Failed to scan overrides: %v", err)
		}
		if len(result.Groups) == 0 {
			fmt.Println("No conflicting overrides found.")
			return
		}
		for _, g := range result.Groups {
			fmt.Println(g.PartNumber)
			for _, line := range g.Lines {
				fmt.Printf("  PO %-6s Override 1: %-20s Override 2: %s\n",
					line.PONumber, strOr(line.Override1), strOr(line.Override2))
			}
		}

	case "stations":
		result, err := svc.ListStations(ctx)
		if err != nil {
			log.Fatalf("Failed to list stations: %v", err)
		}
		for _, m := range result.Mappings {
			fmt.Printf("%-8s %s\n", m.Prefix, m.Station)
		}

	case "schema":
		out, err := svc.ReportSchema(ctx)
		if err != nil {
			log.Fatalf("Failed to build schema: %v", err)
		}
		fmt.Println(string(out))

	case "suggest", "s":
		if len(args) < 2 {
			log.Fatal("Usage: jobcoster suggest <job.xlsx|report.csv> [overrides.csv]")
		}
		loadJob(ctx, svc, args[1], optArg(args, 2))
		result, err := svc.SuggestOverrides(ctx)
		if err != nil {
			log.Fatalf("Agent error: %v", err)
		}
		if result.Proposal == nil {
			fmt.Fprintln(os.Stderr, "Every purchase row already carries a category.")
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Proposal)

	case "apply-overrides", "apply":
		if len(args) < 2 {
			log.Fatal("Usage: jobcoster apply-overrides <overrides.csv>  (reads a proposal JSON from stdin)")
		}
		var proposal core.OverrideProposal
		if err := json.NewDecoder(os.Stdin).Decode(&proposal); err != nil {
			log.Fatalf("Invalid JSON: %v", err)
		}
		proposal.Normalize()
		if err := proposal.Validate(); err != nil {
			log.Fatalf("Validation failed: %v", err)
		}
		if err := svc.SaveOverrides(ctx, proposal.Entries(), args[1]); err != nil {
			log.Fatalf("Failed to write overrides: %v", err)
		}
		fmt.Printf("Wrote %d overrides to %s.\n", len(proposal.Suggestions), args[1])

	default:
		log.Fatalf("Unknown command: %s\nAvailable: run, export, lookup, parts, duplicates, stations, schema, suggest, apply-overrides", args[0])
	}
}

func loadJob(ctx context.Context, svc app.ApplicationService, path, overrides string) {
	req := app.LoadJobRequest{Path: path, OverridesPath: overrides}
	if _, err := svc.LoadJob(ctx, req); err != nil {
		log.Fatalf("Failed to load job: %v", err)
	}
}

func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func printAllocationTable(result *app.AllocationResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 104))
	fmt.Printf("  ALLOCATION: %s\n", result.Source)
	fmt.Println(strings.Repeat("=", 104))
	fmt.Printf("  %-14s %-10s %-6s %-16s %-8s %10s %10s  %s\n",
		"TYPE", "DATE", "PO #", "PART", "LOC", "UNIT QTY", "PRICE", "CATEGORY 1")
	fmt.Println(strings.Repeat("-", 104))
	total := decimal.Zero
	for _, rec := range result.Result.Records {
		total = total.Add(rec.UnitQty.Mul(rec.UnitPrice))
		date := ""
		if rec.Date != nil {
			date = rec.Date.Format("2006-01-02")
		}
		fmt.Printf("  %-14s %-10s %-6s %-16s %-8s %10s %10s  %s\n",
			rec.Type, date, strOr(rec.PONumber), rec.PartNumber, strOr(rec.Location),
			rec.UnitQty.StringFixed(2), rec.UnitPrice.StringFixed(2), strOr(rec.Category1))
	}
	fmt.Println(strings.Repeat("-", 104))
	fmt.Printf("  %-51s %2d records %10s\n", "TOTAL ALLOCATED VALUE", len(result.Result.Records), total.StringFixed(2))
	for _, w := range result.Result.Warnings {
		fmt.Printf("  WARNING: %s\n", w)
	}
	fmt.Println(strings.Repeat("=", 104))
}

func printLookupTable(result *app.LookupResult) {
	if len(result.Lines) == 0 {
		fmt.Println("No PO lines found.")
		return
	}
	fmt.Printf("%-10s %-6s %-20s %-16s %10s %10s  %s\n",
		"DATE", "PO #", "VENDOR", "PART", "UNIT QTY", "PRICE", "DESCRIPTION")
	for _, line := range result.Lines {
		date := ""
		if line.Date != nil {
			date = line.Date.Format("2006-01-02")
		}
		fmt.Printf("%-10s %-6s %-20s %-16s %10s %10s  %s\n",
			date, line.PONumber, line.Vendor, line.PartNumber,
			line.UnitQty.StringFixed(2), line.UnitPrice.StringFixed(2), line.Description)
	}
}
