// Package main is the entry point for the quotecalc CLI.
package main

import (
	"os"

	"quotecalc/cmd/cli/cmd"
	"quotecalc/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
