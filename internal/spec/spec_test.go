package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWtpIsValid(t *testing.T) {
	require.NoError(t, Wtp().Validate())
}

func TestWtpSubcommands(t *testing.T) {
	s := Wtp()

	want := []string{"add", "list", "remove", "cd", "shell-init", "hook", "version"}
	got := make([]string, 0, len(s.Subcommands))
	for _, c := range s.Subcommands {
		got = append(got, c.Name)
	}
	assert.Equal(t, want, got)

	for _, c := range s.Subcommands {
		assert.NotEmpty(t, c.Description, "%s has no description", c.Name)
	}
}

func TestWtpArgumentBindings(t *testing.T) {
	tests := []struct {
		command   string
		argName   string
		generator GeneratorKind
		literals  []string
	}{
		{"add", "branch", BranchesGenerator, nil},
		{"remove", "worktree", WorktreesGenerator, nil},
		{"cd", "worktree", WorktreesGenerator, []string{"@"}},
		{"shell-init", "shell", NoGenerator, []string{"bash", "zsh", "fish"}},
		{"hook", "shell", NoGenerator, []string{"bash", "zsh", "fish"}},
	}

	s := Wtp()
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			cmd, ok := s.Subcommand(tt.command)
			require.True(t, ok)
			require.NotNil(t, cmd.Args)
			assert.Equal(t, tt.argName, cmd.Args.Name)
			assert.Equal(t, tt.generator, cmd.Args.Generator)

			var names []string
			for _, sug := range cmd.Args.Suggestions {
				names = append(names, sug.Name)
			}
			assert.Equal(t, tt.literals, names)
		})
	}

	for _, name := range []string{"list", "version"} {
		cmd, ok := s.Subcommand(name)
		require.True(t, ok)
		assert.Nil(t, cmd.Args, "%s takes no positional argument", name)
	}
}

func TestWtpOptionBindings(t *testing.T) {
	tests := []struct {
		command    string
		option     string
		takesValue bool
		generator  GeneratorKind
	}{
		{"add", "-b", true, NoGenerator},
		{"add", "--track", true, BranchesGenerator},
		{"add", "--force", false, NoGenerator},
		{"add", "-f", false, NoGenerator},
		{"list", "--format", true, NoGenerator},
		{"remove", "--with-branch", false, NoGenerator},
		{"remove", "--force", false, NoGenerator},
		{"remove", "--force-branch", false, NoGenerator},
	}

	s := Wtp()
	for _, tt := range tests {
		t.Run(tt.command+" "+tt.option, func(t *testing.T) {
			cmd, ok := s.Subcommand(tt.command)
			require.True(t, ok)
			opt, ok := cmd.Option(tt.option)
			require.True(t, ok)
			assert.Equal(t, tt.takesValue, opt.TakesValue())
			if tt.takesValue {
				assert.Equal(t, tt.generator, opt.Args.Generator)
			}
		})
	}

	list, _ := s.Subcommand("list")
	format, _ := list.Option("--format")
	assert.Len(t, format.Args.Suggestions, 2)
	assert.Equal(t, "json", format.Args.Suggestions[0].Name)
	assert.Equal(t, "table", format.Args.Suggestions[1].Name)
}

func TestWtpOptionsAppearOnce(t *testing.T) {
	s := Wtp()

	count := func(opts []Option) map[string]int {
		m := make(map[string]int)
		for _, o := range opts {
			for _, n := range o.Names {
				m[n]++
			}
		}
		return m
	}

	for _, c := range s.Subcommands {
		for name, n := range count(c.Options) {
			assert.Equal(t, 1, n, "%s %s", c.Name, name)
		}
	}
	for name, n := range count(s.Options) {
		assert.Equal(t, 1, n, "root %s", name)
	}

	noOptions := []string{"cd", "shell-init", "hook", "version"}
	for _, name := range noOptions {
		cmd, _ := s.Subcommand(name)
		assert.Empty(t, cmd.Options, name)
	}
}

func TestWtpGlobalOptions(t *testing.T) {
	s := Wtp()

	help, ok := s.Option("--help")
	require.True(t, ok)
	assert.True(t, help.IsPersistent)
	assert.Equal(t, "help", help.LongName())
	assert.Equal(t, "h", help.ShortName())

	version, ok := s.Option("-v")
	require.True(t, ok)
	assert.False(t, version.IsPersistent)
	assert.Equal(t, "version", version.LongName())

	persistent := s.PersistentOptions()
	require.Len(t, persistent, 1)
	assert.Equal(t, []string{"-h", "--help"}, persistent[0].Names)
}

func TestWtpReturnsIndependentValues(t *testing.T) {
	a := Wtp()
	a.Subcommands[0].Name = "mutated"

	b := Wtp()
	_, ok := b.Subcommand("add")
	assert.True(t, ok)
}

func TestOptionNames(t *testing.T) {
	opt := Option{Names: []string{"--force", "-f"}}
	assert.Equal(t, "force", opt.LongName())
	assert.Equal(t, "f", opt.ShortName())

	short := Option{Names: []string{"-b"}}
	assert.Equal(t, "", short.LongName())
	assert.Equal(t, "b", short.ShortName())
}

func TestValidateRejectsBrokenSpecs(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr string
	}{
		{
			name:    "duplicate subcommand",
			spec:    Spec{Name: "x", Subcommands: []Subcommand{{Name: "a"}, {Name: "a"}}},
			wantErr: `duplicate subcommand "a"`,
		},
		{
			name: "duplicate option",
			spec: Spec{Name: "x", Subcommands: []Subcommand{{
				Name:    "a",
				Options: []Option{{Names: []string{"--force"}}, {Names: []string{"--force"}}},
			}}},
			wantErr: `duplicate option "--force"`,
		},
		{
			name: "clash with persistent option",
			spec: Spec{
				Name:        "x",
				Options:     []Option{{Names: []string{"-h", "--help"}, IsPersistent: true}},
				Subcommands: []Subcommand{{Name: "a", Options: []Option{{Names: []string{"-h"}}}}},
			},
			wantErr: `a: duplicate option "-h"`,
		},
		{
			name:    "bad option name",
			spec:    Spec{Name: "x", Options: []Option{{Names: []string{"force"}}}},
			wantErr: `invalid option name "force"`,
		},
		{
			name:    "unnamed argument",
			spec:    Spec{Name: "x", Subcommands: []Subcommand{{Name: "a", Args: &Arg{}}}},
			wantErr: "positional argument has no name",
		},
		{
			name:    "no name",
			spec:    Spec{},
			wantErr: "spec has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSpecJSON(t *testing.T) {
	data, err := Wtp().JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "wtp", doc["name"])

	subcommands, ok := doc["subcommands"].([]any)
	require.True(t, ok)
	assert.Len(t, subcommands, 7)

	cd := subcommands[3].(map[string]any)
	args := cd["args"].(map[string]any)
	assert.Equal(t, "worktrees", args["generators"])
}

func TestSpecYAML(t *testing.T) {
	data, err := Wtp().YAML()
	require.NoError(t, err)

	var doc struct {
		Name        string `yaml:"name"`
		Subcommands []struct {
			Name string `yaml:"name"`
		} `yaml:"subcommands"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "wtp", doc.Name)
	assert.Equal(t, "shell-init", doc.Subcommands[4].Name)
}
