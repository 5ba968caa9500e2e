// Package app implements the application layer for arcstr.
package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/arcstr/internal/core/ports"
	"go.trai.ch/arcstr/internal/engine/lexer"
	"go.trai.ch/arcstr/internal/engine/stress"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	reader       ports.SourceReader
	lexer        *lexer.Lexer
	runner       *stress.Runner
	logger       ports.Logger
	cwd          string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	reader ports.SourceReader,
	lex *lexer.Lexer,
	runner *stress.Runner,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		reader:       reader,
		lexer:        lex,
		runner:       runner,
		logger:       logger,
		cwd:          ".",
	}
}

// WithWorkDir sets the directory arcstr.yaml is loaded from.
func (a *App) WithWorkDir(dir string) *App {
	a.cwd = dir
	return a
}

// LexOptions holds command line overrides for the lex command. Unset fields fall back
// to arcstr.yaml.
type LexOptions struct {
	Format         string
	KeepWhitespace *bool
}

// StressOptions holds command line overrides for the stress command. Zero fields fall
// back to arcstr.yaml.
type StressOptions struct {
	Goroutines int
	Iterations int
	Payload    string
	Format     string
}

// Lex tokenizes the file at path and writes a report to w. After writing, every token
// is released and the source must be back to the count it had before lexing.
func (a *App) Lex(_ context.Context, path string, opts LexOptions, w io.Writer) error {
	if path == "" {
		return domain.ErrMissingSource
	}

	cfg, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	defer cfg.Stress.Payload.Release()
	lexCfg := cfg.Lex
	if opts.Format != "" {
		lexCfg.Format = domain.Format(opts.Format)
	}
	if opts.KeepWhitespace != nil {
		lexCfg.KeepWhitespace = *opts.KeepWhitespace
	}
	format, err := domain.ParseFormat(string(lexCfg.Format))
	if err != nil {
		return err
	}

	src, err := a.reader.Read(path)
	if err != nil {
		return err
	}
	defer src.Release()
	baseline, _ := src.StrongCount()

	tokens, err := a.lexer.Lex(src, lexCfg.KeepWhitespace)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to lex source"), "path", path)
	}

	report := domain.LexReport{
		Summary: summarize(path, src, tokens),
		Tokens:  tokens,
	}
	writeErr := writeReport(w, format, report, func(w io.Writer) error {
		return writeLexText(w, report)
	})
	domain.ReleaseTokens(tokens)
	if writeErr != nil {
		return zerr.Wrap(writeErr, "failed to write report")
	}

	if n, _ := src.StrongCount(); n != baseline {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrLeakedReference, "tokens still hold the source"), "count", n), "expected", baseline)
	}
	return nil
}

func summarize(path string, src arcstr.ArcStr, tokens []domain.Token) domain.LexSummary {
	kinds := make(map[string]int)
	for _, tk := range tokens {
		kinds[tk.Kind.String()]++
	}
	refs, _ := src.StrongCount()
	return domain.LexSummary{
		Path:     path,
		Bytes:    src.Len(),
		Tokens:   len(tokens),
		Kinds:    kinds,
		Digest:   fmt.Sprintf("%016x", src.Hash()),
		BaseRefs: refs,
	}
}

// Stress runs the concurrent clone/release workload and writes a report to w. The
// report is written even when the run fails.
func (a *App) Stress(ctx context.Context, opts StressOptions, w io.Writer) error {
	format := domain.FormatText
	if opts.Format != "" {
		f, err := domain.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		format = f
	}

	cfg, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	defer cfg.Stress.Payload.Release()

	stressCfg := cfg.Stress
	if opts.Goroutines != 0 {
		stressCfg.Goroutines = opts.Goroutines
	}
	if opts.Iterations != 0 {
		stressCfg.Iterations = opts.Iterations
	}
	if opts.Payload != "" {
		payload, err := arcstr.New(opts.Payload)
		if err != nil {
			return zerr.Wrap(err, "invalid payload")
		}
		defer payload.Release()
		stressCfg.Payload = payload
	}

	a.logger.Info(fmt.Sprintf("stress: %d goroutines x %d iterations", stressCfg.Goroutines, stressCfg.Iterations))
	report, runErr := a.runner.Run(ctx, stressCfg)

	if err := writeReport(w, format, report, func(w io.Writer) error {
		return writeStressText(w, report)
	}); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	if runErr != nil {
		return zerr.Wrap(runErr, "stress run failed")
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	return slices.Sorted(maps.Keys(m))
}
