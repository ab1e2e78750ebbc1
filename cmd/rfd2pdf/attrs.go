package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
	"github.com/alnah/go-rfd2pdf/internal/fileutil"
	"github.com/alnah/go-rfd2pdf/internal/yamlutil"
)

// attributeView is the YAML shape printed by the attrs command.
type attributeView struct {
	Format     string `yaml:"format"`
	Title      string `yaml:"title,omitempty"`
	State      string `yaml:"state,omitempty"`
	Discussion string `yaml:"discussion,omitempty"`
	Authors    string `yaml:"authors,omitempty"`
	Labels     string `yaml:"labels,omitempty"`
}

// runAttrsCmd executes the attrs command and returns an exit code.
func runAttrsCmd(args []string, env *Environment) int {
	flags, positional, err := parseAttrsFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(env.Stderr, "attrs takes exactly one file or RFD number")
		printAttrsUsage(env.Stderr)
		return ExitUsage
	}
	target := positional[0]

	if err := runAttrs(target, flags, env); err != nil {
		return reportError(env, err, "")
	}
	return ExitSuccess
}

// runAttrs loads target, applies attribute updates, optionally saves them,
// and prints the resulting attributes.
func runAttrs(target string, flags *attrsFlags, env *Environment) error {
	local := isLocalDocument(target)
	if flags.write && !local {
		return ErrWriteRemote
	}

	var (
		doc *rfd2pdf.RenderableRFD
		err error
	)
	if local {
		doc, err = readDocument(target)
	} else {
		doc, err = fetchDocument(target, flags, env)
	}
	if err != nil {
		return err
	}

	if flags.changed["state"] {
		doc.UpdateState(flags.state)
	}
	if flags.changed["discussion"] {
		doc.UpdateDiscussion(flags.discussion)
	}
	if flags.changed["labels"] {
		doc.UpdateLabels(flags.labels)
	}

	if flags.write {
		if err := fileutil.WriteFile(target, []byte(doc.Content())); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	out, err := yamlutil.Marshal(viewOf(doc))
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}

// isLocalDocument reports whether target names a file rather than an RFD
// number.
func isLocalDocument(target string) bool {
	if _, err := rfd2pdf.FormatFromPath(target); err == nil {
		return true
	}
	return fileutil.IsFilePath(target)
}

// readDocument reads a local RFD file, picking the format from its extension.
func readDocument(path string) (*rfd2pdf.RenderableRFD, error) {
	format, err := rfd2pdf.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return rfd2pdf.NewFromBytes(format, data)
}

// fetchDocument reads an RFD by number from the configured repository.
func fetchDocument(target string, flags *attrsFlags, env *Environment) (*rfd2pdf.RenderableRFD, error) {
	number, err := rfd2pdf.ParseNumber(target)
	if err != nil {
		return nil, err
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return nil, err
	}
	mergeSourceFlags(&flags.source, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, cfg.Log, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	location := rfd2pdf.Location{
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Commit: flags.source.commit,
	}
	doc, err := env.NewSource(cfg, logger).FetchDocument(ctx, number, location)
	if err != nil {
		return nil, fetchError(err)
	}
	return doc, nil
}

func viewOf(doc *rfd2pdf.RenderableRFD) attributeView {
	v := attributeView{Format: doc.Format().String()}
	v.Title, _ = doc.Title()
	v.State, _ = doc.State()
	v.Discussion, _ = doc.Discussion()
	v.Authors, _ = doc.Authors()
	v.Labels, _ = doc.Labels()
	return v
}
