package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rfd2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render RFDs to PDF or HTML")
	fmt.Fprintln(w, "  attrs      Show or update RFD attributes")
	fmt.Fprintln(w, "  doctor     Check renderers and environment")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'rfd2pdf help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printSourceUsage prints the repository flags.
func printSourceUsage(w io.Writer) {
	fmt.Fprintln(w, "Repository:")
	fmt.Fprintln(w, "      --owner <s>           GitHub owner (default: oxidecomputer)")
	fmt.Fprintln(w, "      --repo <s>            Repository name (default: rfd)")
	fmt.Fprintln(w, "      --branch <s>          Branch (default: master)")
	fmt.Fprintln(w, "      --commit <sha>        Commit, overrides --branch")
}

// printBackendUsage prints the renderer flags.
func printBackendUsage(w io.Writer) {
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "  -b, --backend <s>         PDF backend: asciidoctor, chrome")
	fmt.Fprintln(w, "      --workspace-root <d>  Directory for render workspaces")
	fmt.Fprintln(w, "      --asciidoctor-pdf <p> asciidoctor-pdf executable")
	fmt.Fprintln(w, "      --asciidoctor <p>     asciidoctor executable")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rfd2pdf render <number>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render RFDs to PDF. Images stored next to each RFD are staged")
	fmt.Fprintln(w, "in a temporary workspace that is removed after rendering.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  number    RFD number: 42, 0042, or \"RFD 42\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (files are named NNNN.pdf)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout per RFD (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Render standalone HTML instead of PDF")
	fmt.Fprintln(w)
	printSourceUsage(w)
	fmt.Fprintln(w)
	printBackendUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown RFDs can only be rendered with --html.")
}

// printAttrsUsage prints usage for the attrs command.
func printAttrsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rfd2pdf attrs <file|number> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the attributes of an RFD as YAML. Update flags apply")
	fmt.Fprintln(w, "before printing; without --write nothing is saved.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Updates:")
	fmt.Fprintln(w, "      --state <s>           Set the state (e.g., published)")
	fmt.Fprintln(w, "      --discussion <url>    Set the discussion link")
	fmt.Fprintln(w, "      --labels <s>          Set the labels")
	fmt.Fprintln(w, "      --write               Save updates back to the file")
	fmt.Fprintln(w)
	printSourceUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rfd2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the renderers, Chrome, GitHub settings, and the")
	fmt.Fprintln(w, "workspace root are usable.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w)
	printBackendUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "attrs":
		printAttrsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: rfd2pdf version")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
