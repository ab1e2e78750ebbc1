package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion hints for flags. Names, types, and
// descriptions come from the FlagSets.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

var flagCompletionMeta = map[string]completionMeta{
	"backend": {Values: []string{"asciidoctor", "chrome"}},
	"state":   {Values: []string{"prediscussion", "ideation", "discussion", "published", "committed", "abandoned"}},

	"config":          {FileGlob: "*.yaml,*.yml"},
	"asciidoctor-pdf": {FileGlob: "*"},
	"asciidoctor":     {FileGlob: "*"},

	"output":         {IsDir: true},
	"workspace-root": {IsDir: true},
}

// extractFlagsFromFlagSet lists the flags of fs with their completion hints.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry, built from the same FlagSets
// the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "render", Desc: "Render RFDs to PDF or HTML", Flags: extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{}, io.Discard))},
		{Name: "attrs", Desc: "Show or update RFD attributes", Flags: extractFlagsFromFlagSet(newAttrsFlagSet(&attrsFlags{}, io.Discard))},
		{Name: "doctor", Desc: "Check renderers and environment", Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{}, io.Discard))},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for rfd2pdf\n")
	b.WriteString("_rfd2pdf() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
			case flagDir:
				action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
			case flagFile:
				action = "COMPREPLY=($(compgen -f -- \"$cur\"))"
			default:
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			fmt.Fprintf(&b, "        %s)\n            %s\n            return\n            ;;\n", pattern, action)
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		words := make([]string, 0, len(c.Flags))
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            ;;\n", c.Name, strings.Join(words, " "))
	}
	fmt.Fprintf(&b, "        help)\n            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n            ;;\n", commandNames(cmds))
	b.WriteString("        completion)\n            COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _rfd2pdf rfd2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes text for use inside a single-quoted zsh spec.
func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	s = strings.ReplaceAll(s, "]", `\]`)
	s = strings.ReplaceAll(s, ":", `\:`)
	return s
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagDir:
		return fmt.Sprintf(":%s:_files -/", f.Long)
	case flagFile:
		if f.FileGlob == "*" {
			return fmt.Sprintf(":%s:_files", f.Long)
		}
		globs := strings.Split(f.FileGlob, ",")
		return fmt.Sprintf(":%s:_files -g '(%s)'", f.Long, strings.Join(globs, "|"))
	default:
		return fmt.Sprintf(":%s:", f.Long)
	}
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef rfd2pdf\n\n")
	b.WriteString("_rfd2pdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			spec := fmt.Sprintf("--%s[%s]%s", f.Long, zshEscape(f.Desc), zshAction(f))
			if f.Short != "" {
				spec = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'[%s]%s", f.Short, f.Long, f.Short, f.Long, zshEscape(f.Desc), zshAction(f))
			}
			fmt.Fprintf(&b, "                '%s' \\\n", spec)
		}
		b.WriteString("                '*:number:'\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("        help)\n            _describe 'command' commands\n            ;;\n")
	b.WriteString("        completion)\n            _values 'shell' bash zsh fish\n            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _rfd2pdf rfd2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes text for use inside a single-quoted fish string.
func fishEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for rfd2pdf\n")
	b.WriteString("complete -c rfd2pdf -f\n\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c rfd2pdf -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		flags := append([]flagDef(nil), c.Flags...)
		sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })

		for _, f := range flags {
			line := fmt.Sprintf("complete -c rfd2pdf -n '__fish_seen_subcommand_from %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("complete -c rfd2pdf -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")
	fmt.Fprintf(&b, "complete -c rfd2pdf -n '__fish_seen_subcommand_from help' -a '%s'\n", commandNames(cmds))

	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletionCmd handles the completion command.
func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}

	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if errors.Is(err, ErrUnsupportedShell) {
			return ExitUsage
		}
		return ExitGeneral
	}
	return ExitSuccess
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rfd2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    eval \"$(rfd2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh (before compinit):")
	fmt.Fprintln(w, "    eval \"$(rfd2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    rfd2pdf completion fish > ~/.config/fish/completions/rfd2pdf.fish")
}
