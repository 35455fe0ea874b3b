// Package suggest turns the raw output of wtp and git into completion
// suggestions.
package suggest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	// WorktreeIcon is shown next to worktree suggestions
	WorktreeIcon = "🌳"
	// BranchIcon is shown next to branch suggestions
	BranchIcon = "fig://icon?type=git"
	// MainWorktreeIcon is shown next to the "@" shortcut
	MainWorktreeIcon = "🏠"

	// headPrefixLen is how much of a commit id goes into a description
	headPrefixLen = 8
	// fatalPrefix marks git output for a failed invocation
	fatalPrefix = "fatal:"
)

// Suggestion is a single completion entry offered to the user
type Suggestion struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// String renders the suggestion the way cobra expects it: name, then an
// optional tab-separated description.
func (s Suggestion) String() string {
	if s.Description == "" {
		return s.Name
	}
	return s.Name + "\t" + s.Description
}

// WorktreeEntry is one element of `wtp list --format json`
type WorktreeEntry struct {
	Branch string `json:"branch,omitempty"`
	Path   string `json:"path"`
	Head   string `json:"head,omitempty"`
}

// remotePrefix matches remotes/<remote>/ at the start of a short ref name.
// Only one path segment is treated as the remote name.
var remotePrefix = regexp.MustCompile(`^remotes/[^/]+/`)

// ParseWorktrees converts wtp's JSON worktree list into suggestions.
// Anything that is not a well-formed array of worktree entries yields no
// suggestions.
func ParseWorktrees(output string) []Suggestion {
	entries, err := decodeWorktrees(output)
	if err != nil {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(entries))
	for _, wt := range entries {
		name := wt.Branch
		if name == "" {
			name = wt.Path
		}
		if name == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:        name,
			Description: fmt.Sprintf("%s (%s)", wt.Path, headPrefix(wt.Head)),
			Icon:        WorktreeIcon,
		})
	}
	return suggestions
}

// decodeWorktrees validates the payload shape before unmarshalling it
func decodeWorktrees(output string) ([]WorktreeEntry, error) {
	if strings.TrimSpace(output) == "" {
		return nil, fmt.Errorf("empty worktree list")
	}
	if err := validateWorktreeList(output); err != nil {
		return nil, err
	}

	var entries []WorktreeEntry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode worktree list: %w", err)
	}
	return entries, nil
}

func headPrefix(head string) string {
	if head == "" {
		return "unknown"
	}
	if len(head) > headPrefixLen {
		return head[:headPrefixLen]
	}
	return head
}

// ParseBranches converts `git branch --all --format=%(refname:short)` output
// into suggestions. Remote-tracking refs are shortened to their branch name.
func ParseBranches(output string) []Suggestion {
	if strings.HasPrefix(output, fatalPrefix) {
		return []Suggestion{}
	}

	suggestions := []Suggestion{}
	for _, line := range strings.Split(output, "\n") {
		branch := strings.TrimSpace(line)
		if branch == "" {
			continue
		}
		name := remotePrefix.ReplaceAllString(branch, "")
		if name == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:        name,
			Description: "branch",
			Icon:        BranchIcon,
		})
	}
	return suggestions
}

// Dedupe drops suggestions whose name was already seen, keeping the first
func Dedupe(suggestions []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(suggestions))
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out
}

// FilterPrefix keeps suggestions whose name starts with prefix
func FilterPrefix(suggestions []Suggestion, prefix string) []Suggestion {
	if prefix == "" {
		return suggestions
	}
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.HasPrefix(s.Name, prefix) {
			out = append(out, s)
		}
	}
	return out
}
