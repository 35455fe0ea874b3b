package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agarcher/wtp-complete/internal/engine"
	"github.com/agarcher/wtp-complete/internal/logger"
	"github.com/agarcher/wtp-complete/internal/spec"
	"github.com/agarcher/wtp-complete/internal/suggest"
	"github.com/agarcher/wtp-complete/internal/userconfig"
)

// env is what a command needs to produce suggestions
type env struct {
	runner  *suggest.Runner
	sources engine.Sources
}

// loadEnv reads the user config and wires the runner and sources from it
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cmd.ErrOrStderr())

	runner := suggest.NewRunner(log)
	runner.Timeout = cfg.TimeoutDuration()

	return &env{
		runner: runner,
		sources: engine.Sources{
			spec.WorktreesGenerator: suggest.WorktreeGenerator(cfg.WtpPath),
			spec.BranchesGenerator:  suggest.BranchGenerator(cfg.GitPath),
		},
	}, nil
}
