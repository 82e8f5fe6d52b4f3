// Package main is the entry point for the actionboard application.
package main

import (
	"os"

	"github.com/hy4ri/actionboard/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
