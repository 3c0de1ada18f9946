// Package main is the entry point for the leadrank CLI.
package main

import (
	"os"

	"github.com/jmylchreest/leadrank/cmd/leadrank/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
