// Package main provides the entry point for the callhub CLI.
package main

import (
	"os"

	"github.com/johncallhub/CallHub-MCP/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
