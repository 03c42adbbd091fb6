// Package main is the entry point for the rentdesk CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/evcraddock/rentdesk/internal/cli"
)

func main() {
	// A .env file in the working directory may supply RENTDESK_* settings.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
