package main

import (
	"fmt"
	"os"

	"ghunsub/cmd"
)

// Version information (set at build time via ldflags)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, buildDate)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
