package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/cli"
	"github.com/xolan/journali/internal/service"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the journal from a backup",
	Long: `Restore the journal from a backup kept by the file storage backend.

Every save rotates the previous journal into numbered backups; .bak.1 is
the most recent. By default the most recent backup is restored. The
journal being replaced is itself backed up first.

Examples:
  journali restore       Restore from most recent backup
  journali restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(cmd.Context(), args)
	},
}

// backupsCmd represents the backups command
var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List available journal backups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listBackups(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(backupsCmd)
}

// availableBackups lists backups or reports why it could not. The caller
// must return when ok is false.
func availableBackups(s *service.Services) (backups []blobstore.BackupInfo, ok bool) {
	if !s.Backups.Supported() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Backups are only kept by the file storage backend")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: journal is stored at %s\n", s.Journal.Location())
		deps.Exit(1)
		return nil, false
	}

	backups, err := s.Backups.List()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return nil, false
	}
	return backups, true
}

func printBackups(backups []blobstore.BackupInfo) {
	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (%d bytes, most recent)\n", backup.Number, backup.Path, backup.Size)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (%d bytes)\n", backup.Number, backup.Path, backup.Size)
		}
	}
}

// listBackups prints the available backups
func listBackups(ctx context.Context) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	backups, ok := availableBackups(s)
	if !ok {
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		return
	}
	printBackups(backups)
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(ctx context.Context, args []string) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	backups, ok := availableBackups(s)
	if !ok {
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	printBackups(backups)
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}
	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := s.Backups.Restore(ctx, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	n := s.Journal.Count()
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d (%d %s)\n", backupNum, n, cli.Pluralize("entry", n))
}
