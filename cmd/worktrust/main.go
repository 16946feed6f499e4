// Package main provides the entry point for the worktrust HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worktrust",
	Short: "Worktrust hiring platform backend",
	Long:  "Worktrust extracts structured work experiences from CV text, anchors them to on-chain profiles, and exposes the verification REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
