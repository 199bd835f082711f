// Package main provides the entry point for the Resume Scanner HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_scanner",
	Short: "Resume Scanner HTTP API Server",
	Long:  "Resume Scanner classifies uploaded resume PDFs into job categories, extracts skill keywords, and proxies a coaching chat, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
