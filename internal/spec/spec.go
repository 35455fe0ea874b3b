// Package spec holds the completion descriptor for wtp: its subcommands,
// options and the suggestion sources bound to each argument.
package spec

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agarcher/wtp-complete/internal/suggest"
)

// GeneratorKind names the dynamic source that fills an argument
type GeneratorKind string

const (
	NoGenerator        GeneratorKind = ""
	WorktreesGenerator GeneratorKind = "worktrees"
	BranchesGenerator  GeneratorKind = "branches"
)

// Spec is the root of a completion descriptor
type Spec struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Subcommands []Subcommand `json:"subcommands,omitempty" yaml:"subcommands,omitempty"`
	Options     []Option     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Subcommand describes one command below the root
type Subcommand struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Args        *Arg     `json:"args,omitempty" yaml:"args,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is a flag. Names holds every spelling, e.g. "--force" and "-f".
// An option without Args is a boolean switch.
type Option struct {
	Names        []string `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Args         *Arg     `json:"args,omitempty" yaml:"args,omitempty"`
	IsPersistent bool     `json:"isPersistent,omitempty" yaml:"isPersistent,omitempty"`
}

// Arg is a value slot, either positional or belonging to an option
type Arg struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Suggestions []suggest.Suggestion `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Generator   GeneratorKind        `json:"generators,omitempty" yaml:"generators,omitempty"`
}

// Subcommand returns the subcommand with the given name
func (s *Spec) Subcommand(name string) (*Subcommand, bool) {
	for i := range s.Subcommands {
		if s.Subcommands[i].Name == name {
			return &s.Subcommands[i], true
		}
	}
	return nil, false
}

// Option returns the root option with the given spelling
func (s *Spec) Option(name string) (*Option, bool) {
	return findOption(s.Options, name)
}

// Option returns the subcommand option with the given spelling
func (c *Subcommand) Option(name string) (*Option, bool) {
	return findOption(c.Options, name)
}

// PersistentOptions returns the root options that apply to every subcommand
func (s *Spec) PersistentOptions() []Option {
	var opts []Option
	for _, opt := range s.Options {
		if opt.IsPersistent {
			opts = append(opts, opt)
		}
	}
	return opts
}

func findOption(opts []Option, name string) (*Option, bool) {
	for i := range opts {
		for _, n := range opts[i].Names {
			if n == name {
				return &opts[i], true
			}
		}
	}
	return nil, false
}

// LongName returns the first double-dash spelling, or "" if there is none
func (o Option) LongName() string {
	for _, n := range o.Names {
		if strings.HasPrefix(n, "--") {
			return strings.TrimPrefix(n, "--")
		}
	}
	return ""
}

// ShortName returns the single-letter spelling without its dash, or ""
func (o Option) ShortName() string {
	for _, n := range o.Names {
		if len(n) == 2 && n[0] == '-' && n[1] != '-' {
			return n[1:]
		}
	}
	return ""
}

// TakesValue reports whether the option expects an argument
func (o Option) TakesValue() bool {
	return o.Args != nil
}

// Validate checks that the descriptor is well formed: unique subcommand
// names, unique option spellings per scope and named arguments.
func (s *Spec) Validate() error {
	var errs []string

	if s.Name == "" {
		errs = append(errs, "spec has no name")
	}

	rootNames := make(map[string]bool)
	errs = append(errs, checkOptions("root", s.Options, rootNames)...)

	persistent := make(map[string]bool)
	for _, opt := range s.PersistentOptions() {
		for _, n := range opt.Names {
			persistent[n] = true
		}
	}

	seen := make(map[string]bool)
	for _, cmd := range s.Subcommands {
		if cmd.Name == "" {
			errs = append(errs, "subcommand with empty name")
			continue
		}
		if seen[cmd.Name] {
			errs = append(errs, fmt.Sprintf("duplicate subcommand %q", cmd.Name))
		}
		seen[cmd.Name] = true

		if cmd.Args != nil && cmd.Args.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: positional argument has no name", cmd.Name))
		}

		scope := make(map[string]bool, len(persistent))
		for n := range persistent {
			scope[n] = true
		}
		errs = append(errs, checkOptions(cmd.Name, cmd.Options, scope)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid completion spec: %s", strings.Join(errs, "; "))
	}
	return nil
}

func checkOptions(scope string, opts []Option, seen map[string]bool) []string {
	var errs []string
	for _, opt := range opts {
		if len(opt.Names) == 0 {
			errs = append(errs, fmt.Sprintf("%s: option without a name", scope))
			continue
		}
		for _, n := range opt.Names {
			if !strings.HasPrefix(n, "-") || len(n) < 2 {
				errs = append(errs, fmt.Sprintf("%s: invalid option name %q", scope, n))
			}
			if seen[n] {
				errs = append(errs, fmt.Sprintf("%s: duplicate option %q", scope, n))
			}
			seen[n] = true
		}
		if opt.Args != nil && opt.Args.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: option %s has an unnamed argument", scope, opt.Names[0]))
		}
	}
	return errs
}

// JSON renders the descriptor as indented JSON
func (s *Spec) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders the descriptor as YAML
func (s *Spec) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}
	return data, nil
}
