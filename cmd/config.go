package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for journali.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file with sensible defaults.

By default, journali works without any configuration file. Entries are kept
in entries.json next to the config file, with three rotated backups.

Examples:

  Display current configuration:
    journali config                  Show all current settings

  Create a sample config file:
    journali config --init

Configuration file location:
  ~/.config/journali/config.toml     Linux
  %APPDATA%\journali\config.toml     Windows`,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		if initFlag {
			initConfig(cmd.Context())
			return
		}
		showConfig(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Write a sample config file")
}

// showConfig displays the current effective configuration
func showConfig(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	cfg := s.Config.Get()
	fileExists := s.Config.Exists()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for journali")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", s.Config.GetPath())
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Sort Order:      %s\n", cfg.SortMode)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "Confirm Discard: %s\n", confirmPolicy(cfg.AlwaysConfirmDiscard))
	_, _ = fmt.Fprintf(deps.Stdout, "Storage:         %s (%s)\n", cfg.Storage.Backend, s.Journal.Location())
	if s.Backups.Supported() {
		_, _ = fmt.Fprintf(deps.Stdout, "Backups:         %d\n", cfg.Storage.Backups)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Recordings:      %s\n", cfg.Audio.Dir)
	_, _ = fmt.Fprintf(deps.Stdout, "Audio Command:   %s\n", strings.Join(cfg.Audio.Command, " "))
	if cfg.Log.File == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Log:             off")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Log:             %s (%s)\n", cfg.Log.File, cfg.Log.Level)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'journali config --init' to create a config file with all options.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

func confirmPolicy(always bool) string {
	if always {
		return "always"
	}
	return "only with unsaved changes"
}

// initConfig writes the sample config file
func initConfig(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	if err := s.Config.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created %s\n", s.Config.GetPath())
}

