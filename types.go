package mdpdf

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// Request describes one file-to-file conversion.
type Request struct {
	InputPath  string // Markdown source, read as UTF-8
	OutputPath string // destination, replaced if it exists
	Title      string // optional; overrides the derived title when non-empty
	HTMLOnly   bool   // write the assembled HTML document instead of a PDF
}

// Input is the in-memory form accepted by Convert.
type Input struct {
	Markdown   string
	Title      string // optional override
	SourcePath string // optional; used for the title fallback and relative image paths
	HTMLOnly   bool   // skip PDF rendering
}

// Heading is a heading of the converted document.
type Heading struct {
	Level int    // 1-6
	ID    string // anchor id
	Text  string
}

// Result holds the output of a conversion.
type Result struct {
	HTML     []byte // complete HTML document handed to the renderer
	PDF      []byte // nil when HTMLOnly
	Title    string
	Headings []Heading // in document order
	Pages    int       // 0 when HTMLOnly
}

// TOC configures the optional table of contents.
// Zero depths fall back to H2 through H3.
type TOC struct {
	Title    string
	MinDepth int
	MaxDepth int
}

// Validate checks depth ranges. A nil TOC is valid (no table of contents).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MinDepth < 0 || t.MinDepth > 6 {
		return fmt.Errorf("%w: minDepth %d not in 1-6", ErrInvalidTOCDepth, t.MinDepth)
	}
	if t.MaxDepth < 0 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: maxDepth %d not in 1-6", ErrInvalidTOCDepth, t.MaxDepth)
	}
	if minDepth, maxDepth := t.depths(); minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d > maxDepth %d (zero depths default to %d-%d)",
			ErrInvalidTOCDepth, minDepth, maxDepth, pipeline.DefaultTOCMinDepth, pipeline.DefaultTOCMaxDepth)
	}
	return nil
}

// depths returns the heading range the table of contents will cover.
func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = pipeline.DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = pipeline.DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	logger         *slog.Logger
	highlight      bool
	highlightStyle string
	safeHTML       bool
	toc            *TOC
}

// defaultTimeout bounds one whole conversion when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger routes stage diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithHighlight enables syntax highlighting of fenced code blocks with the
// named chroma style ("" selects "github").
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithSafeHTML omits HTML embedded in the Markdown. By default it is passed
// through to the document unchanged.
func WithSafeHTML() Option {
	return func(c *Converter) {
		c.cfg.safeHTML = true
	}
}

// WithTOC inserts a numbered table of contents before the body.
func WithTOC(toc TOC) Option {
	return func(c *Converter) {
		c.cfg.toc = &toc
	}
}
