// Package main is the entry point for the pumpctl CLI.
//
// pumpctl is the operational front door for the pump transaction monitor
// deployment: a Docker Compose project consisting of the monitor
// application container and its backing Redis store. All functionality
// lives in the internal/cli package, which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/pumpctl/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package. This keeps
	// the build system decoupled from the cobra wiring.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
