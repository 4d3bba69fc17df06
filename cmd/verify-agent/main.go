package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jobcoster/internal/ai"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Load .env if present

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	agent := ai.NewAgent(apiKey)
	ctx := context.Background()

	stations := `
- Main Controls
- Main Frame
- Unwind/Punch Station
- Spout Station
- Side Seal Station
- Cross Seal Station
- Cap Station
- Delivery/Cutoff Station
- Freight
`

	rows := `
PO 1031 | part 90128A247 | vendor McMaster-Carr | Hex head cap screw, pack of 50 | qty 100.00 @ 0.12
PO 1032 | part SHIPPING | vendor FedEx Freight | Expedited freight for servo motors | qty 1.00 @ 240.00
`

	fmt.Printf("REQUESTING SUGGESTIONS FOR:%s\n", rows)
	proposal, err := agent.SuggestOverrides(ctx, rows, stations)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\n--- PROPOSAL ---\n")
	fmt.Printf("Summary: %s\n", proposal.Summary)

	fmt.Printf("\nSuggestions:\n")
	for _, s := range proposal.Suggestions {
		fmt.Printf("- PO %s, Part: %s, Category 1: %s, Category 2: %s (%.2f)\n",
			s.PONumber, s.PartNumber, s.Category1, s.Category2, s.Confidence)
	}
}
