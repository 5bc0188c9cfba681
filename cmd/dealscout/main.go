package main

import (
	"os"

	"dealscout/cmd/dealscout/commands"
)

// main is the entry point for the DealScout CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
