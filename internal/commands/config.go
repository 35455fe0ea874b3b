package commands

import (
	"fmt"
	"strings"

	"github.com/agarcher/wtp-complete/internal/userconfig"
	"github.com/spf13/cobra"
)

var (
	configUnset      bool
	configList       bool
	configShowOrigin bool
)

func init() {
	configCmd.Flags().BoolVar(&configUnset, "unset", false, "Reset a configuration value to its default")
	configCmd.Flags().BoolVar(&configList, "list", false, "List all configuration values")
	configCmd.Flags().BoolVar(&configShowOrigin, "show-origin", false, "Show where each configuration value comes from")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage user configuration",
	Long: `Get and set wtp-complete user configuration options.

User settings are stored in ~/.config/wtp-complete/config.yaml, or in the
file named by $WTP_COMPLETE_CONFIG.

Configuration keys:
  wtp_path   wtp binary used to list worktrees. Default: wtp
  git_path   git binary used to list branches. Default: git
  timeout    Limit for each suggestion command (e.g., "500ms"). Default: 2s
  log_level  Log level for messages on stderr. Default: warn

Examples:
  wtp-complete config --list               # List all settings
  wtp-complete config --show-origin        # Show where each value comes from
  wtp-complete config timeout              # Get the value of 'timeout'
  wtp-complete config timeout 500ms        # Set the suggestion timeout
  wtp-complete config wtp_path ~/bin/wtp   # Use a specific wtp binary
  wtp-complete config --unset timeout      # Reset 'timeout' to its default`,
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfig,
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, k := range userconfig.ValidKeys() {
		if strings.HasPrefix(k, toComplete) {
			keys = append(keys, k)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func runConfig(cmd *cobra.Command, args []string) error {
	// Load user config
	cfg, err := userconfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load user config: %w", err)
	}

	// Handle --list
	if configList {
		return printConfigList(cmd, cfg)
	}

	// Handle --show-origin
	if configShowOrigin {
		return printConfigShowOrigin(cmd, cfg)
	}

	// Handle --unset
	if configUnset {
		if len(args) < 1 {
			return fmt.Errorf("usage: wtp-complete config --unset <key>")
		}
		return unsetConfig(cfg, args[0])
	}

	// Get or set
	switch len(args) {
	case 0:
		return fmt.Errorf("usage: wtp-complete config <key> [value]\n       wtp-complete config --list\n       wtp-complete config --show-origin")
	case 1:
		return getConfig(cmd, cfg, args[0])
	case 2:
		return setConfig(cfg, args[0], args[1])
	default:
		return fmt.Errorf("too many arguments")
	}
}

func printConfigList(cmd *cobra.Command, cfg *userconfig.UserConfig) error {
	out := cmd.OutOrStdout()
	for _, key := range userconfig.ValidKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s = %s\n", key, value)
	}
	return nil
}

func printConfigShowOrigin(cmd *cobra.Command, cfg *userconfig.UserConfig) error {
	out := cmd.OutOrStdout()

	configPath, err := userconfig.GetConfigPath()
	if err != nil {
		configPath = "(unknown)"
	}

	defaults := userconfig.DefaultUserConfig()
	for _, key := range userconfig.ValidKeys() {
		value, _ := cfg.Get(key)
		def, _ := defaults.Get(key)
		if value == def {
			_, _ = fmt.Fprintf(out, "%s = %-20s (default)\n", key, value)
		} else {
			_, _ = fmt.Fprintf(out, "%s = %-20s %s\n", key, value, configPath)
		}
	}
	return nil
}

func getConfig(cmd *cobra.Command, cfg *userconfig.UserConfig, key string) error {
	if !isValidKey(key) {
		return fmt.Errorf("unknown config key: %s\nValid keys: %s", key, strings.Join(userconfig.ValidKeys(), ", "))
	}

	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func setConfig(cfg *userconfig.UserConfig, key, value string) error {
	if !isValidKey(key) {
		return fmt.Errorf("unknown config key: %s\nValid keys: %s", key, strings.Join(userconfig.ValidKeys(), ", "))
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := userconfig.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func unsetConfig(cfg *userconfig.UserConfig, key string) error {
	if !isValidKey(key) {
		return fmt.Errorf("unknown config key: %s\nValid keys: %s", key, strings.Join(userconfig.ValidKeys(), ", "))
	}

	if err := cfg.Unset(key); err != nil {
		return err
	}

	if err := userconfig.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func isValidKey(key string) bool {
	for _, k := range userconfig.ValidKeys() {
		if k == key {
			return true
		}
	}
	return false
}
