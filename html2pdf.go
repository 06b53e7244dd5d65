package mdpdf

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds per-document print options.
type pdfOptions struct {
	Title string // running header text, escaped before use
}

// A4 portrait, 2cm top/bottom and 1.5cm left/right margins.
// Chrome takes inches.
const (
	mmPerInch = 25.4
	cmPerInch = 2.54

	pageWidthMM      = 210
	pageHeightMM     = 297
	marginVerticalCM = 2
	marginSideCM     = 1.5
)

// headerFooterStyle matches the style sheet: 9pt grey, centered.
const headerFooterStyle = "font-size: 9pt; font-family: Helvetica, Arial, sans-serif; color: #666; width: 100%; text-align: center;"

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first use when no browser is found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	getenv   func(string) string
	logger   *slog.Logger
}

func newRodRenderer(timeout time.Duration, logger *slog.Logger) *rodRenderer {
	return &rodRenderer{timeout: timeout, getenv: os.Getenv, logger: logger}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := r.getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if r.noSandbox() {
		l = l.NoSandbox(true)
	}

	start := time.Now()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.shutdownLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.logger.Debug("browser started", "pid", l.PID(), "duration", time.Since(start))
	return nil
}

// noSandbox reports whether Chrome must run without its sandbox: CI runners
// and containers usually lack the namespaces it needs.
func (r *rodRenderer) noSandbox() bool {
	return r.getenv("CI") == "true" ||
		r.getenv("ROD_BROWSER_BIN") != "" ||
		r.getenv("ROD_NO_SANDBOX") == "1"
}

// Close closes the browser, kills its process group and removes the profile directory.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.shutdownLauncher()
	return err
}

func (r *rodRenderer) shutdownLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions returns the fixed A4 layout with the running header and footer.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	title := ""
	if opts != nil {
		title = opts.Title
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(pageWidthMM / mmPerInch),
		PaperHeight:         floatPtr(pageHeightMM / mmPerInch),
		MarginTop:           floatPtr(marginVerticalCM / cmPerInch),
		MarginBottom:        floatPtr(marginVerticalCM / cmPerInch),
		MarginLeft:          floatPtr(marginSideCM / cmPerInch),
		MarginRight:         floatPtr(marginSideCM / cmPerInch),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      buildHeaderTemplate(title),
		FooterTemplate:      buildFooterTemplate(),
	}
}

// buildHeaderTemplate shows the escaped title centered at the top of every page.
func buildHeaderTemplate(title string) string {
	return fmt.Sprintf(`<div style="%s">%s</div>`, headerFooterStyle, html.EscapeString(title))
}

// buildFooterTemplate prints "Page N of M"; Chrome fills the
// pageNumber and totalPages classes.
func buildFooterTemplate() string {
	return fmt.Sprintf(`<div style="%s">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`, headerFooterStyle)
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration, logger *slog.Logger) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout, logger)}
}

// ToPDF writes htmlContent to a temporary file, renders it and removes the file.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
