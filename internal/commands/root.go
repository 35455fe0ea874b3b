package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "wtp-complete",
	Short: "Shell completion for the wtp worktree CLI",
	Long: `wtp-complete provides shell completion for wtp, the git worktree CLI.

It knows every wtp subcommand and flag, and suggests worktrees (from
'wtp list --format json') and branches (from 'git branch --all') where
wtp expects them.

To enable completion, add this to your shell rc file:

  For zsh:  eval "$(wtp-complete init zsh)"
  For bash: eval "$(wtp-complete init bash)"
  For fish: wtp-complete init fish | source`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wtp-complete version", Version)
	},
}
