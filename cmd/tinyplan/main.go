// Package main provides the entry point for the tinyplan CLI.
package main

import (
	"os"

	"github.com/tinyplan/tinyplan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
