// Package mdpdf converts Markdown documents into styled A4 PDF reports using
// goldmark and headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a file, and close when done:
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.ConvertFile(ctx, mdpdf.Request{
//	    InputPath:  "report.md",
//	    OutputPath: "out/report.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Title, result.Pages)
//
// Convert works on in-memory Markdown and returns the PDF bytes instead of
// writing them. Use Input.HTMLOnly to skip the browser entirely.
//
// # Conversion Pipeline
//
//  1. Title derivation: override, first "# " line, file stem
//  2. Markdown preprocessing (byte order mark, line endings)
//  3. Markdown to HTML via goldmark (GFM tables, strikethrough, autolinks)
//  4. Relative image and link paths rewritten to file:// URLs
//  5. Optional numbered table of contents
//  6. Page assembly: embedded report style sheet in a standalone document
//  7. PDF printing via headless Chrome (go-rod): A4, 2cm/1.5cm margins,
//     title header and "Page N of M" footer
//
// # Errors
//
// Every error from ConvertFile wraps one of ErrNotFound, ErrIO, ErrRender or
// ErrWrite. Match them with errors.Is. A failed conversion never leaves a
// partial file at the output path.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package mdpdf
