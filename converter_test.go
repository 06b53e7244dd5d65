package mdpdf

// Notes:
// - ConvertFile and Convert are exercised with a mocked PDF backend and a
//   mocked inspector: no browser is needed. The real renderer is covered by
//   the integration tests (build tag "integration").
// - Internal test options (withPDFConverter, ...) inject the mocks.
// - Permission-denied reads are not forced: tests may run as root.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called    bool
	inputHTML string
	inputOpts *pdfOptions
	output    []byte
	err       error
	closed    bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.inputOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.7 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockInspector struct {
	pages int
	err   error
}

func (m *mockInspector) PageCount(pdf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.pages, nil
}

type panickingHTMLConverter struct{}

func (panickingHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	panic("goldmark exploded")
}

type failingHTMLConverter struct{ err error }

func (f failingHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	return "", f.err
}

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) { c.pdfConverter = p }
}

func withInspector(i pdfInspector) Option {
	return func(c *Converter) { c.inspector = i }
}

func withHTMLConverter(h pipeline.HTMLConverter) Option {
	return func(c *Converter) { c.htmlConverter = h }
}

// newTestConverter returns a converter backed by mocks.
func newTestConverter(t *testing.T, pdf *mockPDFConverter, opts ...Option) *Converter {
	t.Helper()
	all := append([]Option{withPDFConverter(pdf), withInspector(&mockInspector{pages: 1})}, opts...)
	conv, err := NewConverter(all...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"highlight default style", []Option{WithHighlight("")}, nil},
		{"highlight named style", []Option{WithHighlight("monokai")}, nil},
		{"unknown highlight style", []Option{WithHighlight("nope-style")}, ErrUnknownHighlightStyle},
		{"valid toc", []Option{WithTOC(TOC{MinDepth: 1, MaxDepth: 4})}, nil},
		{"toc depth too large", []Option{WithTOC(TOC{MaxDepth: 7})}, ErrInvalidTOCDepth},
		{"toc min above max", []Option{WithTOC(TOC{MinDepth: 4, MaxDepth: 2})}, ErrInvalidTOCDepth},
		{"toc min above default max", []Option{WithTOC(TOC{MinDepth: 4})}, ErrInvalidTOCDepth},
		{"toc max below default min", []Option{WithTOC(TOC{MaxDepth: 1})}, ErrInvalidTOCDepth},
		{"toc min with default max", []Option{WithTOC(TOC{MinDepth: 3})}, nil},
		{"toc max with default min", []Option{WithTOC(TOC{MaxDepth: 5})}, nil},
		{"safe html and logger", []Option{WithSafeHTML(), WithLogger(nil)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
			if conv != nil {
				// Browser was never launched.
				if err := conv.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) should panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}

// ---------------------------------------------------------------------------
// TestConvertFile - File-to-file conversion
// ---------------------------------------------------------------------------

func TestConvertFile_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "report.md")
	out := filepath.Join(dir, "out", "nested", "report.pdf")
	writeFile(t, in, "# Report\n\nHello **world**.\n")

	pdf := &mockPDFConverter{output: []byte("%PDF-1.7 report")}
	conv := newTestConverter(t, pdf)

	res, err := conv.ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	if res.Title != "Report" {
		t.Errorf("Title = %q, want %q", res.Title, "Report")
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
	if diff := cmp.Diff([]Heading{{Level: 1, ID: "report", Text: "Report"}}, res.Headings); diff != "" {
		t.Errorf("Headings mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(got) != "%PDF-1.7 report" {
		t.Errorf("output = %q", got)
	}

	if pdf.inputOpts == nil || pdf.inputOpts.Title != "Report" {
		t.Errorf("renderer title = %+v, want Report", pdf.inputOpts)
	}
	for _, w := range []string{
		"<title>Report</title>",
		`<h1 id="report">Report</h1>`,
		"<strong>world</strong>",
		"border-bottom: 3px solid #1a5490;",
	} {
		if !strings.Contains(pdf.inputHTML, w) {
			t.Errorf("rendered HTML missing %q", w)
		}
	}
}

func TestConvertFile_TitleSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		markdown string
		override string
		want     string
	}{
		{"override", "a.md", "# Heading\n", "Custom <b>", "Custom <b>"},
		{"heading", "a.md", "intro\n# From Heading\n", "", "From Heading"},
		{"file stem", "quarterly-notes.md", "no heading here\n", "", "quarterly-notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := filepath.Join(dir, tt.file)
			writeFile(t, in, tt.markdown)

			pdf := &mockPDFConverter{}
			res, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{
				InputPath:  in,
				OutputPath: filepath.Join(dir, "out.pdf"),
				Title:      tt.override,
			})
			if err != nil {
				t.Fatalf("ConvertFile() error = %v", err)
			}
			if res.Title != tt.want || pdf.inputOpts.Title != tt.want {
				t.Errorf("title = %q (renderer %q), want %q", res.Title, pdf.inputOpts.Title, tt.want)
			}
		})
	}
}

func TestConvertFile_TitleIsEscapedInDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "body\n")

	pdf := &mockPDFConverter{}
	_, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{
		InputPath: in, OutputPath: filepath.Join(dir, "a.pdf"), Title: "</title><script>x()</script>",
	})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if strings.Contains(pdf.inputHTML, "<script>x()</script>") {
		t.Error("title markup must be escaped in the document")
	}
}

func TestConvertFile_InputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		wantErr error
	}{
		{
			name:    "missing input",
			setup:   func(t *testing.T, dir string) string { return filepath.Join(dir, "missing.md") },
			wantErr: ErrNotFound,
		},
		{
			name: "input is a directory",
			setup: func(t *testing.T, dir string) string {
				p := filepath.Join(dir, "folder.md")
				if err := os.Mkdir(p, 0o750); err != nil {
					t.Fatal(err)
				}
				return p
			},
			wantErr: ErrIO,
		},
		{
			name: "invalid UTF-8",
			setup: func(t *testing.T, dir string) string {
				p := filepath.Join(dir, "latin1.md")
				writeFile(t, p, "# Caf\xe9\n")
				return p
			},
			wantErr: ErrIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := tt.setup(t, dir)
			outDir := filepath.Join(dir, "never", "created")
			out := filepath.Join(outDir, "out.pdf")

			pdf := &mockPDFConverter{}
			_, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ConvertFile() error = %v, want %v", err, tt.wantErr)
			}
			if pdf.called {
				t.Error("renderer must not run when the input cannot be read")
			}
			if _, err := os.Stat(filepath.Join(dir, "never")); !os.IsNotExist(err) {
				t.Error("no output directory may be created on input failure")
			}
		})
	}
}

func TestConvertFile_RenderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pdf       *mockPDFConverter
		inspector *mockInspector
		wantCause error
	}{
		{"browser connect", &mockPDFConverter{err: ErrBrowserConnect}, &mockInspector{pages: 1}, ErrBrowserConnect},
		{"page load", &mockPDFConverter{err: ErrPageLoad}, &mockInspector{pages: 1}, ErrPageLoad},
		{"deadline", &mockPDFConverter{err: context.DeadlineExceeded}, &mockInspector{pages: 1}, context.DeadlineExceeded},
		{"unreadable pdf", &mockPDFConverter{}, &mockInspector{err: ErrInvalidPDF}, ErrInvalidPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := filepath.Join(dir, "a.md")
			out := filepath.Join(dir, "a.pdf")
			writeFile(t, in, "# A\n")
			writeFile(t, out, "previous")

			conv, err := NewConverter(withPDFConverter(tt.pdf), withInspector(tt.inspector))
			if err != nil {
				t.Fatal(err)
			}
			_, err = conv.ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out})
			if !errors.Is(err, ErrRender) {
				t.Fatalf("error = %v, want ErrRender", err)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("error = %v, want cause %v", err, tt.wantCause)
			}

			got, _ := os.ReadFile(out)
			if string(got) != "previous" {
				t.Errorf("existing output changed to %q on failure", got)
			}
		})
	}
}

func TestConvertFile_ParseError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "# A\n")

	pdf := &mockPDFConverter{}
	conv := newTestConverter(t, pdf, withHTMLConverter(failingHTMLConverter{err: pipeline.ErrHTMLConversion}))

	_, err := conv.ConvertFile(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "x", "a.pdf")})
	if !errors.Is(err, ErrRender) || !errors.Is(err, pipeline.ErrHTMLConversion) {
		t.Fatalf("error = %v, want ErrRender wrapping ErrHTMLConversion", err)
	}
	if pdf.called {
		t.Error("renderer must not run after a parse failure")
	}
}

func TestConvertFile_WriteErrors(t *testing.T) {
	t.Parallel()

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeFile(t, in, "# A\n")
		blocker := filepath.Join(dir, "blocker")
		writeFile(t, blocker, "")

		pdf := &mockPDFConverter{}
		_, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{
			InputPath: in, OutputPath: filepath.Join(blocker, "sub", "a.pdf"),
		})
		if !errors.Is(err, ErrWrite) {
			t.Fatalf("error = %v, want ErrWrite", err)
		}
		if pdf.called {
			t.Error("directories are created before rendering")
		}
	})

	t.Run("output is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeFile(t, in, "# A\n")
		out := filepath.Join(dir, "taken")
		writeFile(t, filepath.Join(out, "keep.txt"), "x")

		_, err := newTestConverter(t, &mockPDFConverter{}).ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out})
		if !errors.Is(err, ErrWrite) {
			t.Fatalf("error = %v, want ErrWrite", err)
		}
	})

	t.Run("empty output path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeFile(t, in, "# A\n")

		_, err := newTestConverter(t, &mockPDFConverter{}).ConvertFile(context.Background(), Request{InputPath: in})
		if !errors.Is(err, ErrWrite) {
			t.Fatalf("error = %v, want ErrWrite", err)
		}
	})
}

func TestConvertFile_OverwritesOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	out := filepath.Join(dir, "a.pdf")
	writeFile(t, in, "# A\n")
	writeFile(t, out, "an older and much longer artifact")

	_, err := newTestConverter(t, &mockPDFConverter{output: []byte("new")}).
		ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if got, _ := os.ReadFile(out); string(got) != "new" {
		t.Errorf("output = %q, want %q", got, "new")
	}
}

func TestConvertFile_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	out := filepath.Join(dir, "a.html")
	writeFile(t, in, "# A\n\ntext\n")

	pdf := &mockPDFConverter{}
	res, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{InputPath: in, OutputPath: out, HTMLOnly: true})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if pdf.called {
		t.Error("renderer must not run in HTML-only mode")
	}
	if res.PDF != nil || res.Pages != 0 {
		t.Errorf("HTML-only result has PDF data: %d bytes, %d pages", len(res.PDF), res.Pages)
	}
	got, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(got), "<!DOCTYPE html>") {
		t.Errorf("output should be the HTML document, got %.40q", got)
	}
}

func TestConvertFile_ContextCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "# A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestConverter(t, &mockPDFConverter{}).ConvertFile(ctx, Request{InputPath: in, OutputPath: filepath.Join(dir, "a.pdf")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConvertFile_RelativeImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "# A\n\n![chart](chart.png)\n")

	pdf := &mockPDFConverter{}
	if _, err := newTestConverter(t, pdf).ConvertFile(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "a.pdf")}); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if !strings.Contains(pdf.inputHTML, "file://") || !strings.Contains(pdf.inputHTML, "chart.png") {
		t.Errorf("relative image should resolve to a file URL, got:\n%s", pdf.inputHTML)
	}
}

func TestConvertFile_OutsideTargetsLogged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "docs", "a.md")
	writeFile(t, in, "# A\n\n![logo](../img/logo.png)\n")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	pdf := &mockPDFConverter{}
	_, err := newTestConverter(t, pdf, WithLogger(logger)).
		ConvertFile(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "a.pdf")})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if !strings.Contains(pdf.inputHTML, `src="../img/logo.png"`) {
		t.Errorf("outside target should be left as written, got:\n%s", pdf.inputHTML)
	}
	if !strings.Contains(logs.String(), "target=../img/logo.png") {
		t.Errorf("debug log should name the skipped target, got:\n%s", logs.String())
	}
}

func TestConvertFile_RawHTML(t *testing.T) {
	t.Parallel()

	const markdown = "# A\n\nLine one<br>line two\n\n<div align=\"center\">Centered</div>\n"

	tests := []struct {
		name    string
		opts    []Option
		want    []string
		notWant []string
	}{
		{
			name:    "passed through by default",
			want:    []string{"Line one<br", `<div align="center">Centered</div>`},
			notWant: []string{"raw HTML omitted"},
		},
		{
			name:    "omitted with safe HTML",
			opts:    []Option{WithSafeHTML()},
			want:    []string{"raw HTML omitted"},
			notWant: []string{"Centered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := filepath.Join(dir, "a.md")
			writeFile(t, in, markdown)

			pdf := &mockPDFConverter{}
			_, err := newTestConverter(t, pdf, tt.opts...).
				ConvertFile(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "a.pdf")})
			if err != nil {
				t.Fatalf("ConvertFile() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(pdf.inputHTML, w) {
					t.Errorf("rendered HTML missing %q", w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(pdf.inputHTML, nw) {
					t.Errorf("rendered HTML should not contain %q", nw)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertFile_Structure - Document structure survives the pipeline
// ---------------------------------------------------------------------------

const structuredMarkdown = `# Guide

## Setup

![diagram](diagram.png)

### Install

| Step | Command |
|------|---------|
| 1    | make    |

` + "```html\n<b>bold</b>\n```" + `

## Setup
`

func TestConvertFile_Structure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "guide.md")
	writeFile(t, in, structuredMarkdown)

	pdf := &mockPDFConverter{}
	res, err := newTestConverter(t, pdf).
		ConvertFile(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "guide.pdf")})
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	if n := strings.Count(pdf.inputHTML, "<table>"); n != 1 {
		t.Errorf("document has %d tables, want 1", n)
	}
	if n := strings.Count(pdf.inputHTML, "<pre><code"); n != 1 {
		t.Errorf("document has %d code blocks, want 1", n)
	}
	if !strings.Contains(pdf.inputHTML, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("code block content should be escaped literally")
	}
	if strings.Contains(pdf.inputHTML, "<b>bold</b>") {
		t.Error("code block content must not become markup")
	}

	want := []Heading{
		{Level: 1, ID: "guide", Text: "Guide"},
		{Level: 2, ID: "setup", Text: "Setup"},
		{Level: 3, ID: "install", Text: "Install"},
		{Level: 2, ID: "setup-1", Text: "Setup"},
	}
	if diff := cmp.Diff(want, res.Headings); diff != "" {
		t.Errorf("Headings mismatch (-want +got):\n%s", diff)
	}

	seen := make(map[string]bool)
	for _, h := range res.Headings {
		if seen[h.ID] {
			t.Errorf("duplicate heading id %q", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestConvertFile_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "guide.md")
	out := filepath.Join(dir, "guide.pdf")
	writeFile(t, in, structuredMarkdown)

	conv := newTestConverter(t, &mockPDFConverter{})
	req := Request{InputPath: in, OutputPath: out, Title: "Guide v1"}

	first, err := conv.ConvertFile(context.Background(), req)
	if err != nil {
		t.Fatalf("first ConvertFile() error = %v", err)
	}
	firstPDF, _ := os.ReadFile(out)

	second, err := conv.ConvertFile(context.Background(), req)
	if err != nil {
		t.Fatalf("second ConvertFile() error = %v", err)
	}
	secondPDF, _ := os.ReadFile(out)

	if first.Title != second.Title || first.Pages != second.Pages {
		t.Errorf("runs differ: title %q/%q, pages %d/%d", first.Title, second.Title, first.Pages, second.Pages)
	}
	if diff := cmp.Diff(first.Headings, second.Headings); diff != "" {
		t.Errorf("Headings differ between runs (-first +second):\n%s", diff)
	}
	if !bytes.Equal(first.HTML, second.HTML) {
		t.Error("assembled HTML differs between runs")
	}
	if !bytes.Equal(firstPDF, secondPDF) {
		t.Error("output artifact differs between runs")
	}
}

// ---------------------------------------------------------------------------
// TestConvert - In-memory conversion
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv := newTestConverter(t, pdf)

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Hello\n\n## Part\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Title != "Hello" || res.Pages != 1 || len(res.PDF) == 0 {
		t.Errorf("Convert() = title %q, %d pages, %d bytes", res.Title, res.Pages, len(res.PDF))
	}
	want := []Heading{{Level: 1, ID: "hello", Text: "Hello"}, {Level: 2, ID: "part", Text: "Part"}}
	if diff := cmp.Diff(want, res.Headings); diff != "" {
		t.Errorf("Headings mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_HTMLOnlyDefaultTitle(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	res, err := newTestConverter(t, pdf).Convert(context.Background(), Input{Markdown: "plain text", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if pdf.called {
		t.Error("renderer must not run in HTML-only mode")
	}
	if res.Title != defaultTitle {
		t.Errorf("Title = %q, want %q", res.Title, defaultTitle)
	}
}

func TestConvert_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	res, err := newTestConverter(t, &mockPDFConverter{}).Convert(context.Background(), Input{SourcePath: "empty.md"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Title != "empty" || res.Headings != nil {
		t.Errorf("Convert(empty) = title %q, headings %v", res.Title, res.Headings)
	}
}

func TestConvert_TOC(t *testing.T) {
	t.Parallel()

	res, err := newTestConverter(t, &mockPDFConverter{}, WithTOC(TOC{Title: "Contents"})).
		Convert(context.Background(), Input{Markdown: "# R\n\n## Alpha\n\n## Beta\n", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	html := string(res.HTML)
	for _, w := range []string{`<nav class="toc">`, "Contents", `href="#alpha">1. Alpha`, `href="#beta">2. Beta`} {
		if !strings.Contains(html, w) {
			t.Errorf("HTML missing %q", w)
		}
	}
	if len(res.Headings) != 3 {
		t.Errorf("TOC entries must not be reported as headings, got %+v", res.Headings)
	}
}

func TestConvert_HighlightCSS(t *testing.T) {
	t.Parallel()

	res, err := newTestConverter(t, &mockPDFConverter{}, WithHighlight("")).
		Convert(context.Background(), Input{Markdown: "```go\nfunc f() {}\n```\n", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), ".chroma") {
		t.Error("highlight style sheet should be embedded")
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockPDFConverter{}, withHTMLConverter(panickingHTMLConverter{}))

	res, err := conv.Convert(context.Background(), Input{Markdown: "# x"})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("error = %v, want ErrRender", err)
	}
	if res != nil {
		t.Error("result must be nil after a panic")
	}
	if !strings.Contains(err.Error(), "goldmark exploded") {
		t.Errorf("error should carry the panic value, got %v", err)
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() should close the PDF backend")
	}
}
