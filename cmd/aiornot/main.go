package main

import (
	"github.com/joho/godotenv"

	"github.com/aiornot/gosdk/internal/cli"
)

func main() {
	// A local .env can carry AIORNOT_API_KEY during development.
	_ = godotenv.Load()
	cli.Execute()
}
