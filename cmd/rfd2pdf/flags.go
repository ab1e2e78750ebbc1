package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-rfd2pdf/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// sourceFlags locate the RFD repository.
type sourceFlags struct {
	owner  string
	repo   string
	branch string
	commit string
}

// backendFlags select and configure the renderer.
type backendFlags struct {
	backend        string
	workspaceRoot  string
	asciidoctorPDF string
	asciidoctor    string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	source  sourceFlags
	backend backendFlags
	output  string
	workers int
	timeout string
	html    bool
}

// attrsFlags holds all flags for the attrs command.
type attrsFlags struct {
	common     commonFlags
	source     sourceFlags
	state      string
	discussion string
	labels     string
	write      bool
	changed    map[string]bool
}

// doctorFlags holds all flags for the doctor command.
type doctorFlags struct {
	common  commonFlags
	backend backendFlags
	json    bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addSourceFlags adds repository flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVar(&f.owner, "owner", "", "GitHub owner of the RFD repository")
	fs.StringVar(&f.repo, "repo", "", "RFD repository name")
	fs.StringVar(&f.branch, "branch", "", "branch to read RFDs from")
	fs.StringVar(&f.commit, "commit", "", "commit to read RFDs from (overrides --branch)")
}

// addBackendFlags adds renderer flags to a FlagSet.
func addBackendFlags(fs *flag.FlagSet, f *backendFlags) {
	fs.StringVarP(&f.backend, "backend", "b", "", "PDF backend: asciidoctor, chrome")
	fs.StringVar(&f.workspaceRoot, "workspace-root", "", "directory holding render workspaces")
	fs.StringVar(&f.asciidoctorPDF, "asciidoctor-pdf", "", "asciidoctor-pdf executable")
	fs.StringVar(&f.asciidoctor, "asciidoctor", "", "asciidoctor executable")
}

// newRenderFlagSet registers the render command flags into f.
func newRenderFlagSet(f *renderFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout per RFD (e.g., 30s, 2m)")
	fs.BoolVar(&f.html, "html", false, "render standalone HTML instead of PDF")

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addBackendFlags(fs, &f.backend)

	fs.Usage = func() { printRenderUsage(usage) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// newAttrsFlagSet registers the attrs command flags into f.
func newAttrsFlagSet(f *attrsFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("attrs", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVar(&f.state, "state", "", "set the state attribute")
	fs.StringVar(&f.discussion, "discussion", "", "set the discussion attribute")
	fs.StringVar(&f.labels, "labels", "", "set the labels attribute")
	fs.BoolVar(&f.write, "write", false, "save updates back to the file")

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)

	fs.Usage = func() { printAttrsUsage(usage) }
	return fs
}

// parseAttrsFlags parses attrs command flags and returns positional args.
func parseAttrsFlags(args []string, usage io.Writer) (*attrsFlags, []string, error) {
	f := &attrsFlags{changed: make(map[string]bool)}
	fs := newAttrsFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	// An explicit empty value is still an update.
	for _, name := range []string{"state", "discussion", "labels"} {
		f.changed[name] = fs.Changed(name)
	}
	return f, fs.Args(), nil
}

// newDoctorFlagSet registers the doctor command flags into f.
func newDoctorFlagSet(f *doctorFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
	addBackendFlags(fs, &f.backend)

	fs.Usage = func() { printDoctorUsage(usage) }
	return fs
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, usage io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	if err := newDoctorFlagSet(f, usage).Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// mergeSourceFlags applies repository flags over cfg (CLI wins).
func mergeSourceFlags(f *sourceFlags, cfg *config.Config) {
	if f.owner != "" {
		cfg.GitHub.Owner = f.owner
	}
	if f.repo != "" {
		cfg.GitHub.Repo = f.repo
	}
	if f.branch != "" {
		cfg.GitHub.Branch = f.branch
	}
}

// mergeBackendFlags applies renderer flags over cfg (CLI wins).
func mergeBackendFlags(f *backendFlags, cfg *config.Config) {
	if f.backend != "" {
		cfg.Render.Backend = f.backend
	}
	if f.workspaceRoot != "" {
		cfg.Render.WorkspaceRoot = f.workspaceRoot
	}
	if f.asciidoctorPDF != "" {
		cfg.Render.AsciidoctorPDF = f.asciidoctorPDF
	}
	if f.asciidoctor != "" {
		cfg.Render.Asciidoctor = f.asciidoctor
	}
}

// mergeRenderFlags applies render flags over cfg (CLI wins).
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	mergeSourceFlags(&f.source, cfg)
	mergeBackendFlags(&f.backend, cfg)
	if f.output != "" {
		cfg.Render.OutputDir = f.output
	}
	if f.workers != 0 {
		cfg.Render.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
}
