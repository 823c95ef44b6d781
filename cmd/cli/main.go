// Package main is the entry point for the bill-optimizer CLI.
package main

import (
	"os"

	"bill-optimizer/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
