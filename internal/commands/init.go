package commands

import (
	"fmt"

	"github.com/agarcher/wtp-complete/internal/shell"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Generate the wtp completion script",
	Long: `Generate the completion script that hooks wtp into the given shell.

Supported shells: zsh, bash, fish

Add the following to your shell configuration file:

  For zsh (~/.zshrc):
    eval "$(wtp-complete init zsh)"

  For bash (~/.bashrc):
    eval "$(wtp-complete init bash)"

  For fish (~/.config/fish/config.fish):
    wtp-complete init fish | source`,
	ValidArgs: []string{"zsh", "bash", "fish"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := shell.Generate(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), script)
		return err
	},
}
