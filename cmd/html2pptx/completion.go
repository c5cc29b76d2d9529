package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	html2pptx "github.com/alnah/go-html2pptx"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
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
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for file arguments, empty if none
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"log-level":  {Values: []string{"debug", "info", "warn", "error"}},
	"format":     {Values: []string{"text", "json", "yaml"}},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"output":     {IsDir: true},
	"preview":    {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if f.Name == "theme" {
			fd.Type = flagEnum
			fd.Values = html2pptx.ThemeNames()
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

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	inspect := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inspect.StringP("format", "f", "text", "output format")
	doctor := flag.NewFlagSet("doctor", flag.ContinueOnError)
	doctor.Bool("json", false, "print the report as JSON")

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert HTML or Markdown to PowerPoint",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			FilePattern: "*.html,*.htm,*.md,*.markdown",
		},
		{Name: "inspect", Desc: "Print the text of a deck", Flags: extractFlagsFromFlagSet(inspect), FilePattern: "*.pptx"},
		{Name: "doctor", Desc: "Check the environment", Flags: extractFlagsFromFlagSet(doctor)},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	sort.Strings(words)
	return words
}

func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return exts
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# bash completion for html2pptx\n")
	b.WriteString("_html2pptx() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("  if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W %q -- \"$cur\") $(compgen -f -- \"$cur\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("    return\n  fi\n\n")
	b.WriteString("  case \"$prev\" in\n")
	for _, f := range cmds[0].Flags {
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "    --%s) COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return ;;\n", f.Long, strings.Join(f.Values, " "))
		case flagDir:
			fmt.Fprintf(&b, "    --%s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return ;;\n", f.Long)
		case flagFile:
			fmt.Fprintf(&b, "    --%s) COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") ); return ;;\n", f.Long, strings.Join(globExtensions(f.FileGlob), "|"))
		}
	}
	b.WriteString("  esac\n\n")
	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		fmt.Fprintf(&b, "      if [[ \"$cur\" == -* ]]; then COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return; fi\n", strings.Join(flagWords(c.Flags), " "))
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "      COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\") ) ;;\n", strings.Join(globExtensions(c.FilePattern), "|"))
		} else {
			b.WriteString("      ;;\n")
		}
	}
	b.WriteString("    completion) COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") ) ;;\n")
	b.WriteString("    help) COMPREPLY=( $(compgen -W \"convert inspect doctor completion version\" -- \"$cur\") ) ;;\n")
	b.WriteString("  esac\n}\n")
	b.WriteString("complete -o filenames -F _html2pptx html2pptx\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("#compdef html2pptx\n\n")
	b.WriteString("_html2pptx() {\n")
	b.WriteString("  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, c.Desc)
	}
	b.WriteString("  )\n\n")
	b.WriteString("  if (( CURRENT == 2 )); then\n")
	b.WriteString("    _describe 'command' commands\n    _files\n    return\n  fi\n\n")
	b.WriteString("  case $words[2] in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.FilePattern == "" {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n      _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			desc := strings.ReplaceAll(f.Desc, "'", "")
			desc = strings.NewReplacer("[", "(", "]", ")").Replace(desc)
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
			case flagDir:
				action = ":" + f.Long + ":_files -/"
			case flagFile:
				action = ":" + f.Long + ":_files -g '*.(" + strings.Join(globExtensions(f.FileGlob), "|") + ")'"
			case flagString:
				action = ":" + f.Long + ": "
			}
			if f.Short != "" {
				fmt.Fprintf(&b, "        '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, "        '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "        '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		} else {
			b.WriteString("        && return\n")
		}
		b.WriteString("      ;;\n")
	}
	b.WriteString("    completion) _values 'shell' bash zsh fish powershell ;;\n")
	b.WriteString("  esac\n}\n\n")
	b.WriteString("compdef _html2pptx html2pptx\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# fish completion for html2pptx\n")
	b.WriteString("complete -c html2pptx -f\n")
	noSub := "not __fish_seen_subcommand_from " + strings.Join(commandNames(cmds), " ")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c html2pptx -n '%s' -a %s -d '%s'\n", noSub, c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c html2pptx -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile, flagString:
				line += " -r -F"
			}
			line += fmt.Sprintf(" -d '%s'", strings.ReplaceAll(f.Desc, "'", ""))
			b.WriteString(line + "\n")
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "complete -c html2pptx -n '%s' -F\n", cond)
		}
	}
	b.WriteString("complete -c html2pptx -n '__fish_seen_subcommand_from completion' -x -a 'bash zsh fish powershell'\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# PowerShell completion for html2pptx\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName html2pptx -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		quoted := make([]string, 0, len(c.Flags))
		for _, f := range flagWords(c.Flags) {
			quoted = append(quoted, "'"+f+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n")
	quotedCmds := make([]string, len(cmds))
	for i, name := range commandNames(cmds) {
		quotedCmds[i] = "'" + name + "'"
	}
	fmt.Fprintf(&b, "    $commands = @(%s)\n", strings.Join(quotedCmds, ", "))
	b.WriteString("    if ($words.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	b.WriteString("        $commands | Where-Object { $_ -like \"$wordToComplete*\" } |\n")
	b.WriteString("            ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }\n")
	b.WriteString("        return\n    }\n")
	b.WriteString("    $cmd = if ($commands -contains $words[1]) { $words[1] } else { 'convert' }\n")
	b.WriteString("    $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } |\n")
	b.WriteString("        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_) }\n")
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(html2pptx completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(html2pptx completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    html2pptx completion fish > ~/.config/fish/completions/html2pptx.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    html2pptx completion powershell | Out-String | Invoke-Expression")
}
