package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agarcher/wtp-complete/internal/spec"
)

var (
	specFormat string
	specCheck  bool
)

func init() {
	specCmd.Flags().StringVar(&specFormat, "format", "json", "Output format (json, yaml)")
	specCmd.Flags().BoolVar(&specCheck, "check", false, "Validate the descriptor instead of printing it")
	_ = specCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(specCmd)
}

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the wtp completion descriptor",
	Long: `Print the completion descriptor for wtp: every subcommand, option and
argument, and which suggestion source feeds each argument.

Examples:
  wtp-complete spec                 # JSON
  wtp-complete spec --format yaml   # YAML
  wtp-complete spec --check         # Validate the descriptor`,
	Args: cobra.NoArgs,
	RunE: runSpec,
}

func runSpec(cmd *cobra.Command, args []string) error {
	s := spec.Wtp()

	if specCheck {
		if err := s.Validate(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d subcommands, %d global options OK\n",
			s.Name, len(s.Subcommands), len(s.Options))
		return nil
	}

	var (
		data []byte
		err  error
	)
	switch specFormat {
	case "json":
		data, err = s.JSON()
	case "yaml":
		data, err = s.YAML()
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", specFormat)
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
