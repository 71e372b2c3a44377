package main

import (
	"os"

	"github.com/wonny/readytrade/cmd/readytrade/commands"
)

// main is the entry point for the readytrade CLI
// ⭐ single CLI entry point: go run ./cmd/readytrade [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
