package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agarcher/wtp-complete/internal/spec"
	"github.com/agarcher/wtp-complete/internal/suggest"
	"github.com/agarcher/wtp-complete/internal/view"
)

var suggestPlain bool

func init() {
	suggestCmd.Flags().BoolVar(&suggestPlain, "plain", false, "Print name<TAB>description lines instead of a table")
	rootCmd.AddCommand(suggestCmd)
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <worktrees|branches>",
	Short: "Run a suggestion source and show its results",
	Long: `Run one of the dynamic suggestion sources and show what it produces.

Sources:
  worktrees  Worktrees from 'wtp list --format json'
  branches   Local and remote branches from 'git branch --all'

Failures of the underlying command are not errors: the source simply
produces no suggestions. Set log_level to debug to see why.`,
	ValidArgs: []string{string(spec.WorktreesGenerator), string(spec.BranchesGenerator)},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}

	kind := spec.GeneratorKind(args[0])
	g, ok := e.sources[kind]
	if !ok {
		return fmt.Errorf("unknown source: %s", args[0])
	}

	suggestions := suggest.Dedupe(e.runner.Suggest(cmd.Context(), g))

	if suggestPlain {
		return view.RenderPlain(cmd.OutOrStdout(), suggestions)
	}
	return view.Render(cmd.OutOrStdout(), string(kind), suggestions)
}
