package main

import (
	"fmt"
	"io"
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
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config": {FileGlob: "*.yaml,*.yml"},
	"output": {IsDir: true},
	"style": {Values: []string{
		"monokai", "github", "dracula", "native", "solarized-dark", "solarized-light",
	}},
}

// sourcePatterns is the glob list for files the rewriter understands.
const sourcePatterns = "*.css,*.scss,*.sass,*.less,*.styl,*.js,*.jsx,*.ts,*.tsx,*.vue"

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	rewriteFS, _ := newRewriteFlagSet()
	watchFS, _ := newWatchFlagSet()
	serveFS, _ := newServeFlagSet()
	inspectFS, _ := newInspectFlagSet()
	previewFS, _ := newPreviewFlagSet()

	return []commandDef{
		{
			Name:        "rewrite",
			Desc:        "Rewrite asset references under a path",
			Flags:       extractFlagsFromFlagSet(rewriteFS),
			TakesFiles:  true,
			FilePattern: sourcePatterns,
		},
		{
			Name:       "watch",
			Desc:       "Rewrite sources continuously as they change",
			Flags:      extractFlagsFromFlagSet(watchFS),
			TakesFiles: true,
		},
		{
			Name:       "serve",
			Desc:       "Serve a directory with on-the-fly rewriting",
			Flags:      extractFlagsFromFlagSet(serveFS),
			TakesFiles: true,
		},
		{
			Name:  "inspect",
			Desc:  "Show the effective rewrite configuration",
			Flags: extractFlagsFromFlagSet(inspectFS),
		},
		{
			Name:        "preview",
			Desc:        "Print a single file after rewriting",
			Flags:       extractFlagsFromFlagSet(previewFS),
			TakesFiles:  true,
			FilePattern: sourcePatterns,
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported.
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

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// commandNames returns the space-joined list of command names.
func commandNames(commands []commandDef) string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns the space-joined --long and -short spellings.
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// generateBash writes the bash completion function.
func generateBash(w io.Writer) error {
	commands := getCommands()
	names := commandNames(commands)

	fmt.Fprintln(w, "# bash completion for assetbridge")
	fmt.Fprintln(w, "_assetbridge() {")
	fmt.Fprintln(w, "    local cur")
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", names)
	fmt.Fprintln(w, "        return 0")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "${COMP_WORDS[1]}" in`)

	for _, cmd := range commands {
		fmt.Fprintf(w, "        %s)\n", cmd.Name)
		switch cmd.Name {
		case "completion":
			fmt.Fprintf(w, "            COMPREPLY=( $(compgen -W \"bash zsh fish\" -- \"${cur}\") )\n")
		case "help":
			fmt.Fprintf(w, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", names)
		default:
			if len(cmd.Flags) > 0 {
				fmt.Fprintln(w, `            if [[ "${cur}" == -* ]]; then`)
				fmt.Fprintf(w, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", flagWords(cmd.Flags))
				if cmd.TakesFiles {
					fmt.Fprintln(w, "            else")
					fmt.Fprintln(w, `                COMPREPLY=( $(compgen -f -- "${cur}") )`)
				}
				fmt.Fprintln(w, "            fi")
			}
		}
		fmt.Fprintln(w, "            ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "    return 0")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _assetbridge assetbridge")
	return nil
}

// zshFlagSpec renders one flag as a zsh _arguments spec.
func zshFlagSpec(f flagDef) string {
	desc := strings.ReplaceAll(f.Desc, "'", "")
	spec := fmt.Sprintf("--%s[%s]", f.Long, desc)

	switch f.Type {
	case flagEnum:
		spec += fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
	case flagFile:
		spec += ":file:_files"
	case flagDir:
		spec += ":directory:_files -/"
	}
	return "'" + spec + "'"
}

// generateZsh writes the zsh completion function.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	fmt.Fprintln(w, "#compdef assetbridge")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_assetbridge() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, cmd := range commands {
		fmt.Fprintf(w, "        '%s:%s'\n", cmd.Name, strings.ReplaceAll(cmd.Desc, "'", ""))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe -t commands 'assetbridge command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case $words[2] in")

	for _, cmd := range commands {
		fmt.Fprintf(w, "        %s)\n", cmd.Name)
		switch cmd.Name {
		case "completion":
			fmt.Fprintln(w, "            _values 'shell' bash zsh fish")
		case "help":
			fmt.Fprintf(w, "            _values 'command' %s\n", commandNames(commands))
		default:
			if len(cmd.Flags) > 0 {
				fmt.Fprintln(w, "            _arguments \\")
				for _, f := range cmd.Flags {
					fmt.Fprintf(w, "                %s \\\n", zshFlagSpec(f))
				}
				if cmd.TakesFiles {
					fmt.Fprintln(w, "                '*:file:_files'")
				} else {
					fmt.Fprintln(w, "                '*: :'")
				}
			}
		}
		fmt.Fprintln(w, "            ;;")
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `_assetbridge "$@"`)
	return nil
}

// generateFish writes fish completion directives.
func generateFish(w io.Writer) error {
	commands := getCommands()

	fmt.Fprintln(w, "# fish completion for assetbridge")
	fmt.Fprintln(w, "complete -c assetbridge -e")

	for _, cmd := range commands {
		desc := strings.ReplaceAll(cmd.Desc, `"`, "'")
		fmt.Fprintf(w, "complete -c assetbridge -n __fish_use_subcommand -a %s -d \"%s\"\n", cmd.Name, desc)
	}

	for _, cmd := range commands {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", cmd.Name)
		switch cmd.Name {
		case "completion":
			fmt.Fprintf(w, "complete -c assetbridge -n \"%s\" -a \"bash zsh fish\" -d shell\n", cond)
		case "help":
			fmt.Fprintf(w, "complete -c assetbridge -n \"%s\" -a \"%s\" -d command\n", cond, commandNames(commands))
		default:
			for _, f := range cmd.Flags {
				desc := strings.ReplaceAll(f.Desc, `"`, "'")
				if f.Short != "" {
					fmt.Fprintf(w, "complete -c assetbridge -n \"%s\" -l %s -s %s -d \"%s\"\n", cond, f.Long, f.Short, desc)
				} else {
					fmt.Fprintf(w, "complete -c assetbridge -n \"%s\" -l %s -d \"%s\"\n", cond, f.Long, desc)
				}
			}
		}
	}

	return nil
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetbridge completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(assetbridge completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(assetbridge completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    assetbridge completion fish > ~/.config/fish/completions/assetbridge.fish")
}
