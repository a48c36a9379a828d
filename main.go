package main

import (
	"fmt"
	"os"

	"github.com/xolan/journali/cmd"
	"github.com/xolan/journali/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is swapped out by tests.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run checks the config file before handing over to the command tree and
// returns the process exit code.
func run() int {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		return 1
	}
	if _, err := config.LoadOrDefault(configPath); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Invalid configuration")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Hint: Fix or remove %s\n", configPath)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
