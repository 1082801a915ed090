package main

import (
	"github.com/joho/godotenv"

	"weathercast/internal/cli"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cli.Execute()
}
