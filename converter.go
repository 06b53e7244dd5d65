package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/pipeline"
)

var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TOCInjector          = (*pipeline.TOCInjection)(nil)
	_ pipeline.PageAssembler        = (*pipeline.TemplatePage)(nil)
)

// Converter runs the Markdown to PDF pipeline.
// Create with NewConverter, convert with ConvertFile or Convert, and Close when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	logger        *slog.Logger
	assetLoader   assets.Source
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	tocInjector   pipeline.TOCInjector
	page          pipeline.PageAssembler
	pdfConverter  pdfConverter
	inspector     pdfInspector
	css           string
}

// NewConverter creates a Converter. The browser is not started until the first
// PDF is rendered. Invalid options (TOC depths, highlight style) are reported here.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{timeout: defaultTimeout},
		assetLoader:  assets.Embedded(),
		preprocessor: &pipeline.Preprocessor{},
		tocInjector:  pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.logger == nil {
		c.cfg.logger = slog.New(slog.DiscardHandler)
	}
	c.logger = c.cfg.logger

	if err := c.cfg.toc.Validate(); err != nil {
		return nil, err
	}

	css, err := c.loadCSS()
	if err != nil {
		return nil, err
	}
	c.css = css

	if c.page == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		if c.page, err = pipeline.NewTemplatePage(tmpl); err != nil {
			return nil, fmt.Errorf("initializing page template: %w", err)
		}
	}

	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.MarkdownOptions{
			Highlight: c.cfg.highlight,
			SafeHTML:  c.cfg.safeHTML,
		})
	}
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}
	if c.inspector == nil {
		c.inspector = newPDFCPUInspector()
	}

	return c, nil
}

// loadCSS returns the report style sheet, followed by the highlight style
// sheet when highlighting is enabled.
func (c *Converter) loadCSS() (string, error) {
	css, err := c.assetLoader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("loading style: %w", err)
	}
	if !c.cfg.highlight {
		return css, nil
	}

	style := c.cfg.highlightStyle
	if style == "" {
		style = pipeline.DefaultHighlightStyle
	}
	highlightCSS, err := pipeline.HighlightCSS(style)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownHighlightStyle) {
			return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
		}
		return "", err
	}
	return css + "\n" + highlightCSS, nil
}

// HighlightStyles lists the style names accepted by WithHighlight.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// ConvertFile converts the Markdown file at req.InputPath into a PDF written
// to req.OutputPath, creating missing parent directories. An existing output
// is replaced; a failed conversion leaves it untouched. A missing input
// returns ErrNotFound before anything is created.
func (c *Converter) ConvertFile(ctx context.Context, req Request) (result *Result, err error) {
	defer recoverInternal(&err)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	if req.OutputPath == "" {
		return nil, fmt.Errorf("%w: %w", ErrWrite, fileutil.ErrEmptyPath)
	}

	markdown, err := readInput(req.InputPath)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("read input", "path", req.InputPath, "bytes", len(markdown))

	doc, err := c.buildDocument(ctx, Input{
		Markdown:   markdown,
		Title:      req.Title,
		SourcePath: req.InputPath,
	})
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureParentDir(req.OutputPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	artifact := doc.HTML
	if !req.HTMLOnly {
		if err := c.renderPDF(ctx, doc); err != nil {
			return nil, err
		}
		artifact = doc.PDF
	}

	if err := fileutil.WriteFileAtomic(req.OutputPath, artifact, fileutil.FilePermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	c.logger.Debug("wrote output", "path", req.OutputPath, "bytes", len(artifact))

	return doc, nil
}

// Convert runs the pipeline on in-memory Markdown and returns the HTML document
// and, unless input.HTMLOnly is set, the PDF bytes. Nothing is written to disk
// apart from the renderer's temporary HTML file.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer recoverInternal(&err)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	doc, err := c.buildDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	if input.HTMLOnly {
		return doc, nil
	}
	if err := c.renderPDF(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// readInput stats and reads the source file. Nothing is created on failure.
func readInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrIO, path)
	}
	return string(data), nil
}

// buildDocument derives the title, parses the Markdown and assembles the page.
func (c *Converter) buildDocument(ctx context.Context, input Input) (*Result, error) {
	start := time.Now()

	title := DeriveTitle(input.Title, input.Markdown, input.SourcePath)

	markdown := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	body, err := c.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing markdown: %w", ErrRender, err)
	}

	if input.SourcePath != "" {
		var skipped []string
		body, skipped, err = pipeline.ResolveRelativePaths(body, filepath.Dir(input.SourcePath))
		if err != nil {
			return nil, fmt.Errorf("%w: resolving relative paths: %w", ErrRender, err)
		}
		for _, target := range skipped {
			c.logger.Debug("relative target outside the input directory is not loaded", "target", target)
		}
	}

	headings := toHeadings(pipeline.ExtractHeadings(body, 1, 6))

	if c.cfg.toc != nil {
		minDepth, maxDepth := c.cfg.toc.depths()
		body, err = c.tocInjector.InjectTOC(ctx, body, &pipeline.TOCData{
			Title:    c.cfg.toc.Title,
			MinDepth: minDepth,
			MaxDepth: maxDepth,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: injecting TOC: %w", ErrRender, err)
		}
	}

	doc, err := c.page.Assemble(ctx, pipeline.PageData{Title: title, CSS: c.css, Body: body})
	if err != nil {
		return nil, fmt.Errorf("%w: assembling page: %w", ErrRender, err)
	}

	c.logger.Debug("built document",
		"title", title, "headings", len(headings), "bytes", len(doc), "duration", time.Since(start))

	return &Result{
		HTML:     []byte(doc),
		Title:    title,
		Headings: headings,
	}, nil
}

// renderPDF prints res.HTML and fills res.PDF and res.Pages.
func (c *Converter) renderPDF(ctx context.Context, res *Result) error {
	start := time.Now()

	pdf, err := c.pdfConverter.ToPDF(ctx, string(res.HTML), &pdfOptions{Title: res.Title})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	pages, err := c.inspector.PageCount(pdf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	res.PDF = pdf
	res.Pages = pages
	c.logger.Debug("rendered PDF", "pages", pages, "bytes", len(pdf), "duration", time.Since(start))
	return nil
}

// recoverInternal turns a panic in the pipeline into an ErrRender.
func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
	}
}

func toHeadings(hs []pipeline.Heading) []Heading {
	if len(hs) == 0 {
		return nil
	}
	out := make([]Heading, len(hs))
	for i, h := range hs {
		out[i] = Heading(h)
	}
	return out
}
