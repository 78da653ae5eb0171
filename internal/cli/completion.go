package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "threads")
	Short     string   // short flag without "-" (e.g., "t")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "size")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "max", Short: "n", Help: "Exclusive upper bound of the candidates", Values: []string{"100", "1000", "100000", "1000000"}, ValueName: "number"},
	{Long: "threads", Short: "t", Help: "Number of workers (0 = one per CPU)", Values: []string{"0", "1", "2", "4", "8", "16"}, ValueName: "workers"},
	{Long: "compare", Help: "Cross-check against a single-worker run"},
	{Long: "details", Short: "d", Help: "Show the per-worker breakdown"},
	{Long: "quiet", Short: "q", Help: "Print only the prime count"},
	{Long: "output", Short: "o", Help: "Result report file", IsFile: true, ValueName: "file"},
	{Long: "metrics-out", Help: "Prometheus text file for run metrics", IsFile: true, ValueName: "file"},
	{Long: "memory-limit", Help: "Maximum marker store size", Values: []string{"64M", "512M", "1G", "4G"}, ValueName: "size"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "tui", Help: "Launch the interactive dashboard"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

func generateBashCompletion(out io.Writer) error {
	var opts, cases []string
	var filePatterns []string
	for _, f := range flagRegistry {
		var patterns []string
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
			patterns = append(patterns, "-"+f.Short)
		}
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, patterns...)
		case len(f.Values) > 0:
			cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;",
				strings.Join(patterns, "|"), strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		cases = append(cases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;",
			strings.Join(filePatterns, "|")))
	}

	_, err := fmt.Fprintf(out, `# bash completion for primecalc
# Install: primecalc --completion bash > /etc/bash_completion.d/primecalc

_primecalc() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s
    esac

    COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    return 0
}

complete -F _primecalc primecalc
`, strings.Join(opts, " "), strings.Join(cases, "\n"))
	return err
}

func generateZshCompletion(out io.Writer) error {
	var specs []string
	for _, f := range flagRegistry {
		action := ""
		switch {
		case f.IsFile:
			action = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(f.Values) > 0:
			action = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		}
		help := strings.ReplaceAll(f.Help, "'", "")
		switch {
		case f.Long != "" && f.Short != "":
			specs = append(specs, fmt.Sprintf("    '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, help, action))
		case f.Long != "":
			specs = append(specs, fmt.Sprintf("    '--%s[%s]%s'", f.Long, help, action))
		default:
			specs = append(specs, fmt.Sprintf("    '-%s[%s]%s'", f.Short, help, action))
		}
	}

	_, err := fmt.Fprintf(out, `#compdef primecalc
# zsh completion for primecalc
# Install: primecalc --completion zsh > "${fpath[1]}/_primecalc"

_primecalc() {
    _arguments -s \
%s
}

_primecalc "$@"
`, strings.Join(specs, " \\\n"))
	return err
}

func generateFishCompletion(out io.Writer) error {
	var b strings.Builder
	b.WriteString("# fish completion for primecalc\n")
	b.WriteString("# Install: primecalc --completion fish > ~/.config/fish/completions/primecalc.fish\n\n")
	for _, f := range flagRegistry {
		b.WriteString("complete -c primecalc")
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		if f.Long != "" {
			fmt.Fprintf(&b, " -l %s", f.Long)
		}
		switch {
		case f.IsFile:
			b.WriteString(" -r -F")
		case len(f.Values) > 0:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
		}
		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(f.Help, "'", `\'`))
	}
	_, err := io.WriteString(out, b.String())
	return err
}
