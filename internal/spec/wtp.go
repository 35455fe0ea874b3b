package spec

import "github.com/agarcher/wtp-complete/internal/suggest"

// Shells accepted by shell-init and hook
var Shells = []string{"bash", "zsh", "fish"}

// MainWorktree is the shortcut wtp resolves to the primary worktree
const MainWorktree = "@"

// Wtp returns the completion descriptor for the wtp CLI. Each call builds a
// fresh value, so callers may not affect one another.
func Wtp() *Spec {
	return &Spec{
		Name:        "wtp",
		Description: "A powerful Git worktree CLI tool",
		Subcommands: []Subcommand{
			{
				Name:        "add",
				Description: "Create a new worktree",
				Args: &Arg{
					Name:        "branch",
					Description: "Branch name to checkout",
					Generator:   BranchesGenerator,
				},
				Options: []Option{
					{
						Names:       []string{"-b"},
						Description: "Create a new branch",
						Args: &Arg{
							Name:        "new-branch",
							Description: "Name of new branch",
						},
					},
					{
						Names:       []string{"--track"},
						Description: "Set up tracking for remote branch",
						Args: &Arg{
							Name:        "remote-branch",
							Description: "Remote branch to track",
							Generator:   BranchesGenerator,
						},
					},
					{
						Names:       []string{"--force", "-f"},
						Description: "Force creation even if worktree exists",
					},
				},
			},
			{
				Name:        "list",
				Description: "List all worktrees",
				Options: []Option{
					{
						Names:       []string{"--format"},
						Description: "Output format",
						Args: &Arg{
							Name:        "format",
							Suggestions: []suggest.Suggestion{{Name: "json"}, {Name: "table"}},
						},
					},
				},
			},
			{
				Name:        "remove",
				Description: "Remove a worktree",
				Args: &Arg{
					Name:        "worktree",
					Description: "Worktree to remove",
					Generator:   WorktreesGenerator,
				},
				Options: []Option{
					{Names: []string{"--with-branch"}, Description: "Remove the branch too"},
					{Names: []string{"--force"}, Description: "Force removal even if dirty"},
					{Names: []string{"--force-branch"}, Description: "Force delete branch even if not merged"},
				},
			},
			{
				Name:        "cd",
				Description: "Navigate to a worktree",
				Args: &Arg{
					Name:        "worktree",
					Description: "Worktree to navigate to",
					Generator:   WorktreesGenerator,
					Suggestions: []suggest.Suggestion{
						{Name: MainWorktree, Description: "Navigate to main worktree", Icon: suggest.MainWorktreeIcon},
					},
				},
			},
			{
				Name:        "shell-init",
				Description: "Initialize shell integration",
				Args:        shellArg(),
			},
			{
				Name:        "hook",
				Description: "Output shell hook for cd integration",
				Args:        shellArg(),
			},
			{
				Name:        "version",
				Description: "Show version information",
			},
		},
		Options: []Option{
			{
				Names:        []string{"-h", "--help"},
				Description:  "Show help",
				IsPersistent: true,
			},
			{
				Names:       []string{"-v", "--version"},
				Description: "Show version",
			},
		},
	}
}

func shellArg() *Arg {
	return &Arg{
		Name: "shell",
		Suggestions: []suggest.Suggestion{
			{Name: "bash", Description: "Bash shell"},
			{Name: "zsh", Description: "Zsh shell"},
			{Name: "fish", Description: "Fish shell"},
		},
	}
}
