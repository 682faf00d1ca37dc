// Package main provides the CLI entry point for salesmart.
package main

import (
	"os"

	"github.com/leapstack-labs/salesmart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
