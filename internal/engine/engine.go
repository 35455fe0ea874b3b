// Package engine answers completion requests for a descriptor by mirroring it
// onto a cobra command tree and running cobra's __complete in-process.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agarcher/wtp-complete/internal/spec"
	"github.com/agarcher/wtp-complete/internal/suggest"
)

const (
	// activeHelpPrefix marks cobra active-help lines in __complete output
	activeHelpPrefix = "_activeHelp_ "
	// helpCommandName replaces cobra's help command, which is still listed
	// as a subcommand candidate while hidden
	helpCommandName = "__help"
)

// Sources binds generator kinds to the commands that produce them
type Sources map[spec.GeneratorKind]suggest.Generator

// Result is the answer to a completion request
type Result struct {
	Suggestions []suggest.Suggestion
	Directive   cobra.ShellCompDirective
}

// Names returns the suggestion names in order
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		names = append(names, s.Name)
	}
	return names
}

// Engine completes command lines for a single descriptor
type Engine struct {
	spec     *spec.Spec
	runner   *suggest.Runner
	sources  Sources
	spelling map[string]bool
}

// New creates an engine for s. Generators are resolved through sources and
// executed with runner.
func New(s *spec.Spec, runner *suggest.Runner, sources Sources) *Engine {
	spelling := make(map[string]bool)
	collect := func(opts []spec.Option) {
		for _, opt := range opts {
			for _, n := range opt.Names {
				spelling[n] = true
			}
		}
	}
	collect(s.Options)
	for _, c := range s.Subcommands {
		collect(c.Options)
	}

	return &Engine{spec: s, runner: runner, sources: sources, spelling: spelling}
}

// request holds per-completion state; it lives for one Complete call
type request struct {
	ctx    context.Context
	engine *Engine
	// icons remembers the icon of every suggestion handed to cobra
	icons map[string]string
}

// Complete returns the suggestions for the last word of words. The words
// exclude the program name; an empty last word completes from scratch.
// A last word of the form "--flag=value" completes the value, and the
// candidates keep the "--flag=" prefix so shells can replace the whole word.
func (e *Engine) Complete(ctx context.Context, words []string) (*Result, error) {
	if len(words) == 0 {
		words = []string{""}
	}

	req := &request{ctx: ctx, engine: e, icons: make(map[string]string)}
	root := req.build()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, words...))

	if err := root.ExecuteContext(ctx); err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	res, err := req.parse(stdout.String())
	if err != nil {
		return nil, err
	}
	if prefix := flagValuePrefix(words[len(words)-1]); prefix != "" {
		for i := range res.Suggestions {
			if !strings.HasPrefix(res.Suggestions[i].Name, "-") {
				res.Suggestions[i].Name = prefix + res.Suggestions[i].Name
			}
		}
	}
	return res, nil
}

// flagValuePrefix returns "--flag=" for a word like "--flag=value"
func flagValuePrefix(word string) string {
	if !strings.HasPrefix(word, "-") {
		return ""
	}
	if i := strings.Index(word, "="); i >= 0 {
		return word[:i+1]
	}
	return ""
}

func (r *request) build() *cobra.Command {
	s := r.engine.spec
	root := &cobra.Command{
		Use:           s.Name,
		Short:         s.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run:           func(*cobra.Command, []string) {},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Use: helpCommandName, Hidden: true})

	for _, opt := range s.Options {
		flags := root.Flags()
		if opt.IsPersistent {
			flags = root.PersistentFlags()
		}
		r.addFlag(root, flags, opt)
	}

	for _, sub := range s.Subcommands {
		root.AddCommand(r.subcommand(sub))
	}
	return root
}

func (r *request) subcommand(sub spec.Subcommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   sub.Name,
		Short: sub.Description,
		Run:   func(*cobra.Command, []string) {},
	}

	if sub.Args != nil {
		arg := *sub.Args
		cmd.Use = fmt.Sprintf("%s <%s>", sub.Name, arg.Name)
		cmd.Args = cobra.MaximumNArgs(1)
		cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return r.complete(arg, toComplete), cobra.ShellCompDirectiveNoFileComp
		}
	} else {
		cmd.Args = cobra.NoArgs
		cmd.ValidArgsFunction = cobra.NoFileCompletions
	}

	for _, opt := range sub.Options {
		r.addFlag(cmd, cmd.Flags(), opt)
	}
	return cmd
}

// flagSet is the subset of pflag.FlagSet used to declare options
type flagSet interface {
	BoolP(name, shorthand string, value bool, usage string) *bool
	StringP(name, shorthand string, value string, usage string) *string
}

func (r *request) addFlag(cmd *cobra.Command, flags flagSet, opt spec.Option) {
	name := opt.LongName()
	short := opt.ShortName()
	if name == "" {
		// pflag needs a long name; the single-letter form stands in and the
		// "--x" spelling is filtered out of results.
		name = short
	}
	if name == "" {
		return
	}

	if !opt.TakesValue() {
		flags.BoolP(name, short, false, opt.Description)
		return
	}

	flags.StringP(name, short, "", opt.Description)
	arg := *opt.Args
	_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return r.complete(arg, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// complete gathers static and generated suggestions for an argument
func (r *request) complete(arg spec.Arg, toComplete string) []string {
	all := append([]suggest.Suggestion{}, arg.Suggestions...)
	if arg.Generator != spec.NoGenerator && r.engine.runner != nil {
		if g, ok := r.engine.sources[arg.Generator]; ok {
			all = append(all, r.engine.runner.Suggest(r.ctx, g)...)
		}
	}
	all = suggest.FilterPrefix(suggest.Dedupe(all), toComplete)

	out := make([]string, 0, len(all))
	for _, s := range all {
		if s.Icon != "" {
			r.icons[s.Name] = s.Icon
		}
		out = append(out, s.String())
	}
	return out
}

// parse reads cobra's __complete output: one "name\tdescription" per line,
// then ":<directive>".
func (r *request) parse(output string) (*Result, error) {
	res := &Result{Suggestions: []suggest.Suggestion{}, Directive: cobra.ShellCompDirectiveDefault}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, activeHelpPrefix) {
			continue
		}
		if i == len(lines)-1 && strings.HasPrefix(line, ":") {
			d, err := strconv.Atoi(line[1:])
			if err != nil {
				return nil, fmt.Errorf("unexpected completion directive %q: %w", line, err)
			}
			res.Directive = cobra.ShellCompDirective(d)
			continue
		}

		name, desc, _ := strings.Cut(line, "\t")
		if name == helpCommandName {
			continue
		}
		if strings.HasPrefix(name, "-") && !r.engine.spelling[name] {
			continue
		}
		res.Suggestions = append(res.Suggestions, suggest.Suggestion{
			Name:        name,
			Description: desc,
			Icon:        r.icons[name],
		})
	}
	return res, nil
}
