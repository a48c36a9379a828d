package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/journali/internal/view"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for journali.

Besides commands and flags, the scripts complete entry references for
show, edit, bookmark and delete: press Tab to pick an entry by its list
index, with its title shown alongside.

Examples:
  source <(journali completion bash)
  journali completion zsh > "${fpath[1]}/_journali"
  journali completion fish > ~/.config/fish/completions/journali.fish
  journali completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{showCmd, editCmd, bookmarkCmd, deleteCmd} {
		c.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completeEntryRefs(cmd.Context(), args, toComplete)
		}
	}
}

// generateCompletion writes the completion script for shell
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(deps.Stdout, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
		return
	}
}

// completeEntryRefs offers the display index of every entry, newest first,
// described by its title. Only the first argument is a reference. Failures
// yield no suggestions rather than noise in the shell.
func completeEntryRefs(ctx context.Context, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := deps.Services(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer func() { _ = s.Close() }()

	var out []string
	for _, ie := range s.Journal.List("", view.ByDate).Entries {
		ref := strconv.Itoa(ie.Index)
		if !strings.HasPrefix(ref, toComplete) {
			continue
		}
		out = append(out, ref+"\t"+completionTitle(ie.Entry.Title))
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}

// completionTitle flattens a title onto one line for the shell.
func completionTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if r := []rune(title); len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return title
}
