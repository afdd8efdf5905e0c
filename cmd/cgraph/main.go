// Package main provides the cgraph CLI.
package main

import (
	"os"

	"github.com/born-ml/cgraph/internal/cli"
)

const version = "v0.1.0-dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
