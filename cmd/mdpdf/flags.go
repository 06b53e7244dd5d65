package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// tocFlags holds table of contents flags.
// Setting a title or depth enables the table of contents.
type tocFlags struct {
	enabled bool
	title   string
	depth   int
}

// codeFlags holds code block flags.
type codeFlags struct {
	highlight bool
	style     string
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	title      string
	timeout    string
	safeHTML   bool
	toc        tocFlags
	code       codeFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show page count, timing and stage logs")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "insert a numbered table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.depth, "toc-depth", 0, "deepest heading level in the TOC (1-6, default: 3)")
}

// addCodeFlags adds code highlighting flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for --highlight (default: github)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "also write the HTML document next to the PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the HTML document only, skip PDF")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet bound to f.
// Shared by parsing and the help tests so the two cannot drift apart.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.title, "title", "", "document title (default: first \"# \" heading, then file name)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.safeHTML, "safe-html", false, "omit HTML embedded in the Markdown")

	addCommonFlags(fs, &f.common)
	addTOCFlags(fs, &f.toc)
	addCodeFlags(fs, &f.code)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Help output goes to usage.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
