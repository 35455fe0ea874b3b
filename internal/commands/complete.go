package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agarcher/wtp-complete/internal/engine"
	"github.com/agarcher/wtp-complete/internal/spec"
)

func init() {
	rootCmd.AddCommand(completeCmd)
}

var completeCmd = &cobra.Command{
	Use:   "complete -- [words...]",
	Short: "Print completions for a wtp command line",
	Long: `Print completion candidates for a partial wtp command line.

The words are the wtp arguments typed so far, without the leading 'wtp';
the last word is the one being completed and may be empty.

Output is one "name<TAB>description" line per candidate, followed by a
":<directive>" line using cobra's completion directives. This is what the
scripts printed by 'wtp-complete init' call.

Examples:
  wtp-complete complete -- ''              # subcommands
  wtp-complete complete -- cd ''           # worktrees
  wtp-complete complete -- list --format ''`,
	DisableFlagParsing: true,
	RunE:               runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	eng := engine.New(spec.Wtp(), e.runner, e.sources)
	res, err := eng.Complete(cmd.Context(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range res.Suggestions {
		_, _ = fmt.Fprintln(out, s.String())
	}
	_, _ = fmt.Fprintf(out, ":%d\n", res.Directive)
	return nil
}
