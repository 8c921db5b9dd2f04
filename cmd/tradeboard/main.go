package main

import (
	"os"

	"github.com/threelines/tradeboard/backend/cmd/tradeboard/commands"
)

// main is the entry point for the tradeboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tradeboard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
