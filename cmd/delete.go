package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/service"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <ref>",
	Short: "Delete a journal entry",
	Long: `Delete a journal entry by its index or id.
The index corresponds to the position in the date-ordered list of entries.
A confirmation prompt will be shown unless --yes is specified.

Example:
  journali delete 3
  journali delete 3 --yes
  journali delete 8b6a2d2e`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteEntry(cmd.Context(), args[0], yesFlag)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}

// deleteEntry removes the referenced entry after confirmation
func deleteEntry(ctx context.Context, ref string, skipConfirm bool) {
	s, ok := openServices(ctx)
	if !ok {
		return
	}
	defer closeServices(s)

	target, err := s.Journal.Resolve(ref)
	if err != nil {
		reportRefError(ref, err)
		return
	}

	showEntryForDeletion(target)

	if !skipConfirm && !promptConfirmation() {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	deleted, err := s.Journal.Delete(ctx, target.Entry.ID)
	if err != nil {
		reportSaveError(err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", deleted.Title)
	if deleted.HasAudio() {
		_, _ = fmt.Fprintf(deps.Stdout, "The recording was kept at %s\n", deleted.AudioRef)
	}
}

// showEntryForDeletion displays the entry that is about to be deleted
func showEntryForDeletion(ie service.IndexedEntry) {
	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s  %s\n",
		ie.Index,
		ie.Entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		ie.Entry.Title)
}

// promptConfirmation asks the user to confirm deletion.
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation() bool {
	_, _ = fmt.Fprint(deps.Stdout, "Delete Journal? This action cannot be undone. [y/N]: ")

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
