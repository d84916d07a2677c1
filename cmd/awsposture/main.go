package main

import (
	"os"

	"github.com/ppiankov/awsposture/internal/commands"
)

// Build info injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := commands.Execute(version, commit, date); err != nil {
		os.Exit(1)
	}
}
