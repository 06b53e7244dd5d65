package mdpdf

import "errors"

// Stage errors. Every error returned by ConvertFile wraps exactly one of them.
var (
	ErrNotFound = errors.New("input file not found")
	ErrIO       = errors.New("reading input failed")
	ErrRender   = errors.New("rendering failed")
	ErrWrite    = errors.New("writing output failed")
)

// Browser causes, wrapped inside ErrRender.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPDF     = errors.New("rendered PDF is unreadable")
)

// Option validation errors, returned by NewConverter.
var (
	ErrInvalidTOCDepth       = errors.New("invalid TOC depth")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
)
