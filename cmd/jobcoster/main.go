package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"jobcoster/internal/adapters/cli"
	"jobcoster/internal/adapters/repl"
	"jobcoster/internal/ai"
	"jobcoster/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	var agent *ai.Agent
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; override suggestions are disabled")
	} else {
		agent = ai.NewAgent(apiKey)
	}

	svc := app.NewAppService(agent)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:])
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin))
}
