package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage      = errors.New("invalid usage")
	ErrWriteHTML  = errors.New("failed to write HTML file")
	errHelpShown  = errors.New("help shown")
	errConfigLoad = errors.New("loading config")
)

// hintedError appends hint lines to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// runConvert converts one Markdown file into a PDF (or HTML with --html-only).
// Configuration precedence: flags > MDPDF_* variables > config file > defaults.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 2 {
		return withHint(
			fmt.Errorf("%w: convert takes <input.md> <output.pdf>, got %d argument(s)", ErrUsage, len(positional)),
			"\n  hint: run 'mdpdf help convert' for usage")
	}
	inputPath, outputPath := positional[0], positional[1]

	warnUnknownEnvVars(env.Stderr, env.Environ())
	cfg, err := resolveConfig(flags, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	conv, err := env.NewConverter(buildOptions(cfg, logger)...)
	if err != nil {
		if errors.Is(err, mdpdf.ErrUnknownHighlightStyle) {
			return withHint(err, hints.ForHighlightStyle(mdpdf.HighlightStyles()))
		}
		return err
	}
	defer func() { _ = conv.Close() }()

	req := mdpdf.Request{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Title:      flags.title,
		HTMLOnly:   flags.outputMode.htmlOnly,
	}
	if req.HTMLOnly {
		req.OutputPath = htmlOutputPath(outputPath)
	}

	start := env.Now()
	result, err := conv.ConvertFile(ctx, req)
	if err != nil {
		return withHint(err, hintFor(err, inputPath, env.Getenv))
	}

	if flags.outputMode.html && !req.HTMLOnly {
		htmlPath := htmlOutputPath(outputPath)
		if err := fileutil.WriteFileAtomic(htmlPath, result.HTML, fileutil.FilePermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteHTML, err)
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", htmlPath)
		}
	}

	printResult(env.Stdout, inputPath, req.OutputPath, result, env.Now().Sub(start), flags.common)
	return nil
}

// resolveConfig layers config file, environment and flags, then validates the result.
func resolveConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig loads the config named by the flag, else by MDPDF_CONFIG.
// Neither set means defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		err = fmt.Errorf("%w: %w", errConfigLoad, err)
		if errors.Is(err, config.ErrConfigNotFound) && !strings.ContainsAny(name, `/\`) {
			return nil, withHint(err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.timeout != "" {
		cfg.Timeout = flags.timeout
	}
	if flags.safeHTML {
		cfg.Markdown.SafeHTML = true
	}

	if flags.code.highlight {
		cfg.Code.Highlight = true
	}
	if flags.code.style != "" {
		cfg.Code.Style = flags.code.style
		cfg.Code.Highlight = true
	}

	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
		cfg.TOC.Enabled = true
	}
	if flags.toc.depth != 0 {
		cfg.TOC.MaxDepth = flags.toc.depth
		cfg.TOC.Enabled = true
		// Keep the range non-empty when the depth is shallower than the minimum.
		if d := flags.toc.depth; d >= 1 && d <= 6 {
			lo := cfg.TOC.MinDepth
			if lo > d || (lo == 0 && d < defaultTOCMinDepth) {
				cfg.TOC.MinDepth = d
			}
		}
	}
}

// defaultTOCMinDepth is the converter's shallowest TOC level when none is set.
const defaultTOCMinDepth = 2

// buildOptions translates the merged config into converter options.
func buildOptions(cfg *config.Config, logger *slog.Logger) []mdpdf.Option {
	opts := []mdpdf.Option{mdpdf.WithLogger(logger)}

	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, mdpdf.WithTimeout(d))
	}
	if cfg.Markdown.SafeHTML {
		opts = append(opts, mdpdf.WithSafeHTML())
	}
	if cfg.Code.Highlight {
		opts = append(opts, mdpdf.WithHighlight(cfg.Code.Style))
	}
	if cfg.TOC.Enabled {
		opts = append(opts, mdpdf.WithTOC(mdpdf.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}))
	}
	return opts
}

// newLogger returns a debug-level text logger on w when verbose, otherwise
// a logger that discards everything.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// hintFor picks the hint lines matching a conversion error.
func hintFor(err error, inputPath string, getenv func(string) string) string {
	switch {
	case errors.Is(err, mdpdf.ErrNotFound):
		return hints.ForInputNotFound(inputPath)
	case errors.Is(err, mdpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect(getenv)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdpdf.ErrWrite):
		return hints.ForOutputDirectory()
	}
	return ""
}

// htmlOutputPath swaps a .pdf extension for .html, or appends .html.
func htmlOutputPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".html") || strings.EqualFold(ext, ".htm") {
		return path
	}
	if strings.EqualFold(ext, ".pdf") {
		return strings.TrimSuffix(path, ext) + ".html"
	}
	return path + ".html"
}

// printResult writes the confirmation line unless quiet.
func printResult(w io.Writer, in, out string, res *mdpdf.Result, elapsed time.Duration, f commonFlags) {
	if f.quiet {
		return
	}
	if f.verbose && res.Pages > 0 {
		fmt.Fprintf(w, "Converted %s -> %s (%d pages, %v)\n", in, out, res.Pages, elapsed.Round(time.Millisecond))
		return
	}
	if f.verbose {
		fmt.Fprintf(w, "Converted %s -> %s (%v)\n", in, out, elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(w, "Converted %s -> %s\n", in, out)
}
