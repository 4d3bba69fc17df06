package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"jobcoster/internal/app"
)

// Run starts the interactive REPL loop.
// It reads commands from reader and dispatches slash commands
// deterministically; bare input runs a substring part lookup.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("Job Coster")
	fmt.Println("Load a job workbook with /load <file>, or /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "load":
			if len(args) < 1 {
				fmt.Println("Usage: /load <workbook.xlsx|report.csv> [overrides.csv]")
				return nil
			}
			req := app.LoadJobRequest{Path: args[0]}
			if len(args) >= 2 {
				req.OverridesPath = args[1]
			}
			result, err := svc.LoadJob(ctx, req)
			if err != nil {
				return err
			}
			printLoadSummary(result)

		case "run", "r":
			result, err := svc.RunAllocation(ctx)
			if err != nil {
				return err
			}
			printAllocation(result)

		case "export", "x":
			if len(args) < 1 {
				fmt.Println("Usage: /export <file.csv|file.xlsx|file.json>")
				return nil
			}
			result, err := svc.ExportAllocation(ctx, app.ExportRequest{Path: args[0]})
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %d records to %s (%s).\n", result.Records, result.Path, result.Format)

		case "lookup", "find":
			if len(args) < 1 {
				fmt.Println("Usage: /lookup <part-number> [sub]")
				return nil
			}
			verbatim := !(len(args) >= 2 && strings.EqualFold(args[1], "sub"))
			result, err := svc.LookupPart(ctx, args[0], verbatim)
			if err != nil {
				return err
			}
			printLookup(result)

		case "parts":
			result, err := svc.ListParts(ctx)
			if err != nil {
				return err
			}
			printParts(result)

		case "duplicates", "dups":
			result, err := svc.FindDuplicateOverrides(ctx)
			if err != nil {
				return err
			}
			printDuplicates(result)

		case "stations":
			result, err := svc.ListStations(ctx)
			if err != nil {
				return err
			}
			printStations(result)

		case "schema":
			out, err := svc.ReportSchema(ctx)
			if err != nil {
				return err
			}
			fmt.Println(string(out))

		case "suggest":
			if len(args) < 1 {
				fmt.Println("Usage: /suggest <overrides.csv>")
				fmt.Println("  Asks the AI for category overrides on uncategorized rows,")
				fmt.Println("  then writes an overrides file you approve.")
				return nil
			}
			fmt.Println("[AI] Reviewing uncategorized rows...")
			result, err := svc.SuggestOverrides(ctx)
			if err != nil {
				return err
			}
			if result.Proposal == nil {
				fmt.Println("Every purchase row already carries a category.")
				return nil
			}
			printSuggestions(result)

			fmt.Print("\nWrite these overrides? (y/n): ")
			confirm, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(confirm)) != "y" {
				fmt.Println("Discarded.")
				return nil
			}
			entries := result.Proposal.Entries()
			if err := svc.SaveOverrides(ctx, entries, args[0]); err != nil {
				return err
			}
			fmt.Printf("Wrote %d overrides to %s. Reload the job to apply them.\n", len(entries), args[0])

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Slash prefix: deterministic command dispatcher.
		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					fmt.Println("Goodbye!")
					return
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// Bare input: substring part lookup.
		result, err := svc.LookupPart(ctx, input, false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printLookup(result)
	}
}
