package main

import (
	"github.com/joho/godotenv"

	"github.com/custodia-labs/advisor-cli/internal/adapters/driving/cli"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cli.Execute()
}
