package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
	"github.com/alnah/go-rfd2pdf/internal/config"
	"github.com/alnah/go-rfd2pdf/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no RFD specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrWriteRemote = errors.New("--write requires a local file")
)

// Pool abstracts renderer pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (*rfd2pdf.Renderer, error)
	Release(*rfd2pdf.Renderer)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*rfd2pdf.RendererPool)(nil)

// renderJob is a single RFD to render.
type renderJob struct {
	Number     rfd2pdf.Number
	OutputPath string
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	Number     rfd2pdf.Number
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runRenderCmd executes the render command and returns an exit code.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return reportError(env, err, "")
	}
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return reportError(env, err, "")
	}

	logger := newLogger(env.Stderr, cfg.Log, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(logger)

	numbers, err := parseNumbers(positional)
	if err != nil {
		return reportError(env, err, "")
	}

	opts, err := rendererOptions(cfg, logger, env)
	if err != nil {
		return reportError(env, err, "")
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	size := rfd2pdf.ResolvePoolSize(cfg.Render.Workers)
	logger.Debug("Starting render", "rfds", len(numbers), "workers", size, "backend", cfg.Render.Backend)

	pool := rfd2pdf.NewRendererPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("Failed to close renderers", "err", err)
		}
	}()

	location := rfd2pdf.Location{
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
		Commit: flags.source.commit,
	}
	jobs := buildJobs(numbers, cfg.Render.OutputDir, flags.html)
	source := env.NewSource(cfg, logger)

	results := renderBatch(ctx, pool, source, location, jobs, flags.html)
	return printResults(results, flags.common, env, toolFor(cfg, flags.html))
}

// parseNumbers parses the positional RFD numbers.
func parseNumbers(args []string) ([]rfd2pdf.Number, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}
	numbers := make([]rfd2pdf.Number, 0, len(args))
	for _, arg := range args {
		n, err := rfd2pdf.ParseNumber(arg)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// rendererOptions derives Renderer options from cfg. Options from env come
// last so tests can replace the backend.
func rendererOptions(cfg *config.Config, logger *log.Logger, env *Environment) ([]rfd2pdf.Option, error) {
	backend, err := rfd2pdf.ParseBackend(cfg.Render.Backend)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []rfd2pdf.Option{
		rfd2pdf.WithBackend(backend),
		rfd2pdf.WithLogger(logger),
		rfd2pdf.WithWorkspaceRoot(cfg.Render.WorkspaceRoot),
	}
	if cfg.Render.AsciidoctorPDF != "" {
		opts = append(opts, rfd2pdf.WithAsciidoctorPDF(cfg.Render.AsciidoctorPDF))
	}
	if cfg.Render.Asciidoctor != "" {
		opts = append(opts, rfd2pdf.WithAsciidoctor(cfg.Render.Asciidoctor))
	}
	if timeout > 0 {
		opts = append(opts, rfd2pdf.WithTimeout(timeout))
	}
	return append(opts, env.RendererOptions...), nil
}

// buildJobs names each output after its RFD number: <dir>/0042.pdf.
func buildJobs(numbers []rfd2pdf.Number, outputDir string, html bool) []renderJob {
	ext := ".pdf"
	if html {
		ext = ".html"
	}
	jobs := make([]renderJob, len(numbers))
	for i, n := range numbers {
		jobs[i] = renderJob{
			Number:     n,
			OutputPath: filepath.Join(outputDir, n.String()+ext),
		}
	}
	return jobs
}

// toolFor returns the executable a render is expected to run, for hints.
func toolFor(cfg *config.Config, html bool) string {
	if html || cfg.Render.Backend == string(rfd2pdf.BackendChrome) {
		return cfg.Render.Asciidoctor
	}
	return cfg.Render.AsciidoctorPDF
}

// renderBatch renders RFDs concurrently using the renderer pool.
func renderBatch(ctx context.Context, pool Pool, source Source, location rfd2pdf.Location, jobs []renderJob, html bool) []RenderResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))

	results := make([]RenderResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire(ctx)
			if err != nil {
				// Renderer creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = RenderResult{Number: jobs[idx].Number, Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = RenderResult{Number: jobs[idx].Number, Err: ctx.Err()}
					continue
				}
				results[idx] = renderOne(ctx, r, source, location, jobs[idx], html)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// renderOne fetches a single RFD, renders it and writes the output file.
func renderOne(ctx context.Context, r *rfd2pdf.Renderer, source Source, location rfd2pdf.Location, job renderJob, html bool) (result RenderResult) {
	start := time.Now()
	result = RenderResult{Number: job.Number, OutputPath: job.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	doc, err := source.FetchDocument(ctx, job.Number, location)
	if err != nil {
		result.Err = fetchError(err)
		return result
	}

	var out []byte
	if html {
		out, err = renderHTMLPage(ctx, r, source, location, job, doc)
	} else {
		var pdf *rfd2pdf.PDF
		pdf, err = r.RenderPDF(ctx, doc, source, job.Number, location)
		if pdf != nil {
			out = pdf.Contents
		}
	}
	if err != nil {
		result.Err = err
		return result
	}

	if err := fileutil.WriteFile(job.OutputPath, out); err != nil {
		result.Err = &rfd2pdf.OutputError{Kind: rfd2pdf.ErrOutputFile, Err: fmt.Errorf("%w: %v", ErrWriteOutput, err)}
		return result
	}
	return result
}

// fetchError classifies a FetchDocument failure. Content errors, such as a
// document that is not valid UTF-8, keep their kind; anything else is a
// source control failure.
func fetchError(err error) error {
	var cerr *rfd2pdf.ContentError
	if errors.As(err, &cerr) {
		return err
	}
	return &rfd2pdf.ContentError{Kind: rfd2pdf.ErrSourceControl, Err: err}
}

// assetDir is where the images of an HTML page are kept: 0042.html uses 0042/.
func assetDir(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
}

// renderHTMLPage stages the images of doc in its workspace, renders HTML
// whose image references point at assetDir, then copies the staged images
// there. The workspace is removed before returning.
func renderHTMLPage(ctx context.Context, r *rfd2pdf.Renderer, source Source, location rfd2pdf.Location, job renderJob, doc *rfd2pdf.RenderableRFD) ([]byte, error) {
	defer r.CleanupWorkspace(doc)

	if err := r.StageImages(ctx, doc, source, job.Number, location); err != nil {
		return nil, contentFailure(err)
	}
	staged, err := r.WorkspacePath(doc)
	if err != nil {
		return nil, contentFailure(err)
	}

	assets, err := filepath.Abs(assetDir(job.OutputPath))
	if err != nil {
		return nil, &rfd2pdf.OutputError{Kind: rfd2pdf.ErrOutputIO, Err: err}
	}

	out, err := r.RenderHTML(ctx, doc, assets)
	if err != nil {
		return nil, err
	}

	if _, err := fileutil.CopyTree(staged, assets); err != nil {
		return nil, &rfd2pdf.OutputError{Kind: rfd2pdf.ErrOutputIO, Err: err}
	}
	return out, nil
}

// contentFailure lifts a content error into the output layer.
func contentFailure(err error) error {
	var cerr *rfd2pdf.ContentError
	if errors.As(err, &cerr) {
		return rfd2pdf.OutputFromContent(cerr)
	}
	return err
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the exit code of the
// first failure, or ExitSuccess.
func printResults(results []RenderResult, common commonFlags, env *Environment, bin string) int {
	summary := countResults(results)
	code := ExitSuccess

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED RFD %s: %v%s\n", r.Number, r.Err, hintFor(r.Err, bin))
			if code == ExitSuccess {
				code = exitCodeFor(r.Err)
			}
			continue
		}

		if common.quiet {
			continue
		}

		if common.verbose {
			fmt.Fprintf(env.Stdout, "RFD %s -> %s (%v)\n", r.Number, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return code
}

// reportError prints err with its hint and returns the matching exit code.
func reportError(env *Environment, err error, bin string) int {
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, bin))
	return exitCodeFor(err)
}
