package suggest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single generator invocation
const DefaultTimeout = 2 * time.Second

// waitDelay bounds how long output pipes may outlive a killed process
const waitDelay = 100 * time.Millisecond

// Generator binds an external command to the parser for its output
type Generator struct {
	// Name identifies the generator in logs
	Name string
	// Script is the argv to run; no shell is involved
	Script []string
	// Fallback replaces the output when the command fails
	Fallback string
	// ErrOutput makes a failed run return its stderr instead of the fallback
	ErrOutput bool
	// PostProcess turns raw output into suggestions
	PostProcess func(output string) []Suggestion
}

// WorktreeGenerator lists worktrees through `wtp list --format json`
func WorktreeGenerator(wtpBin string) Generator {
	if wtpBin == "" {
		wtpBin = "wtp"
	}
	return Generator{
		Name:        "worktrees",
		Script:      []string{wtpBin, "list", "--format", "json"},
		Fallback:    "[]",
		PostProcess: ParseWorktrees,
	}
}

// branchFormat prints local branches as "name" and remote-tracking ones as
// "remotes/<remote>/name". Symbolic refs such as origin/HEAD print as blank
// lines. %(refname:short) would print "origin/name" instead.
const branchFormat = "%(if)%(symref)%(then)%(else)" +
	"%(if:equals=refs/remotes)%(refname:rstrip=-2)%(then)remotes/%(refname:lstrip=2)" +
	"%(else)%(refname:lstrip=2)%(end)%(end)"

// BranchGenerator lists local and remote branches
func BranchGenerator(gitBin string) Generator {
	if gitBin == "" {
		gitBin = "git"
	}
	return Generator{
		Name:        "branches",
		Script:      []string{gitBin, "branch", "--all", "--format=" + branchFormat},
		ErrOutput:   true,
		PostProcess: ParseBranches,
	}
}

// Runner executes generators
type Runner struct {
	// Dir is the working directory; empty means the current one
	Dir     string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewRunner returns a runner with the default timeout
func NewRunner(log logrus.FieldLogger) *Runner {
	return &Runner{Timeout: DefaultTimeout, Log: log}
}

// Output runs the generator's script and returns its stdout. On failure the
// generator's fallback is returned together with the error, or the captured
// stderr when the generator sets ErrOutput.
func (r *Runner) Output(ctx context.Context, g Generator) (string, error) {
	if len(g.Script) == 0 {
		return g.Fallback, fmt.Errorf("generator %s has no script", g.Name)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.Script[0], g.Script[1:]...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, ctx.Err())
		}
		if g.ErrOutput && errOut.Len() > 0 {
			return errOut.String(), fmt.Errorf("%s failed: %w", g.Script[0], err)
		}
		return g.Fallback, fmt.Errorf("%s failed: %w", g.Script[0], err)
	}

	return out.String(), nil
}

// Suggest runs the generator and post-processes its output. Failures are
// logged and degrade to whatever the fallback output parses to.
func (r *Runner) Suggest(ctx context.Context, g Generator) []Suggestion {
	output, err := r.Output(ctx, g)
	if err != nil && r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"generator": g.Name,
			"script":    g.Script,
		}).WithError(err).Debug("suggestion source failed")
	}
	if g.PostProcess == nil {
		return []Suggestion{}
	}
	return g.PostProcess(output)
}
