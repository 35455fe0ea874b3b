// Package shell generates the scripts that hook wtp completion into a shell.
// Each script asks `wtp-complete complete` for candidates, which prints one
// "name<TAB>description" line per candidate followed by ":<directive>".
package shell

import "fmt"

const (
	// Target is the command being completed
	Target = "wtp"
	// Completer is the binary answering completion requests
	Completer = "wtp-complete"
)

// noFileComp is cobra's ShellCompDirectiveNoFileComp bit
const noFileComp = 4

// GenerateZsh generates the zsh completion script
func GenerateZsh() string {
	return fmt.Sprintf(`#compdef %[1]s
# %[1]s completion for zsh
# Add this to your ~/.zshrc: eval "$(%[2]s init zsh)"

_%[1]s() {
  local -a completions
  local out directive line name desc

  out=$(%[2]s complete -- "${(@)words[2,$CURRENT]}" 2>/dev/null) || return 1
  directive=${out##*:}
  [[ $directive == <-> ]] || directive=0

  for line in "${(@f)out}"; do
    [[ -z $line || $line == :<-> ]] && continue
    name=${line%%%%$'\t'*}
    desc=""
    [[ $line == *$'\t'* ]] && desc=${line#*$'\t'}
    name=${name//:/\\:}
    if [[ -n $desc ]]; then
      completions+=("$name:$desc")
    else
      completions+=("$name")
    fi
  done

  if (( ${#completions} == 0 )) && (( (directive & %[3]d) == 0 )); then
    _files
    return
  fi
  _describe -t %[1]s '%[1]s' completions
}

compdef _%[1]s %[1]s
`, Target, Completer, noFileComp)
}

// GenerateBash generates the bash completion script
func GenerateBash() string {
	return fmt.Sprintf(`# %[1]s completion for bash
# Add this to your ~/.bashrc: eval "$(%[2]s init bash)"

_%[1]s_complete() {
  local cur out directive line name last i w
  local -a words=()
  cur="${COMP_WORDS[COMP_CWORD]}"
  COMPREPLY=()

  # bash splits "--flag=value" at "="; rejoin it for the completer
  for (( i = 1; i <= COMP_CWORD; i++ )); do
    w=${COMP_WORDS[i]}
    if (( ${#words[@]} > 0 )) && [[ $w == "=" || ${COMP_WORDS[i-1]} == "=" ]]; then
      words[${#words[@]}-1]+=$w
    else
      words+=("$w")
    fi
  done
  last=${words[${#words[@]}-1]}

  out=$(%[2]s complete -- "${words[@]}" 2>/dev/null) || return
  directive=${out##*:}
  [[ $directive =~ ^[0-9]+$ ]] || directive=0

  while IFS= read -r line; do
    [[ -z $line || $line =~ ^:[0-9]+$ ]] && continue
    name=${line%%%%$'\t'*}
    # candidates for "--flag=value" carry the "--flag=" prefix
    if [[ $last == -*=* && $cur != -*=* ]]; then
      name=${name#*=}
      [[ $cur == "=" ]] && name="=$name"
    fi
    COMPREPLY+=("$name")
  done <<< "$out"

  if [[ ${#COMPREPLY[@]} -eq 0 && $(( directive & %[3]d )) -eq 0 ]]; then
    mapfile -t COMPREPLY < <(compgen -f -- "$cur")
  fi
}

complete -F _%[1]s_complete %[1]s
`, Target, Completer, noFileComp)
}

// GenerateFish generates the fish completion script
func GenerateFish() string {
	return fmt.Sprintf(`# %[1]s completion for fish
# Add this to your ~/.config/fish/config.fish: %[2]s init fish | source

function __%[1]s_complete
    set -l args (commandline -opc)
    set -e args[1]
    # quoted so an empty token is still passed
    set -l cur (commandline -ct)
    for line in (%[2]s complete -- $args "$cur" 2>/dev/null)
        if string match -qr '^:[0-9]+$' -- $line
            continue
        end
        echo $line
    end
end

complete -c %[1]s -f -a '(__%[1]s_complete)'
`, Target, Completer)
}

// Generate returns the completion script for the given shell
func Generate(shell string) (string, error) {
	switch shell {
	case "zsh":
		return GenerateZsh(), nil
	case "bash":
		return GenerateBash(), nil
	case "fish":
		return GenerateFish(), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: zsh, bash, fish)", shell)
	}
}
