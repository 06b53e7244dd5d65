package main

import (
	"errors"

	"github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=failure, 2=usage.
const (
	ExitSuccess = 0 // Successful conversion
	ExitFailure = 1 // Conversion failed: not found, read, render, or write
	ExitUsage   = 2 // Invalid flags, arguments, or config
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdpdf.ErrInvalidTOCDepth) ||
		errors.Is(err, mdpdf.ErrUnknownHighlightStyle) {
		return ExitUsage
	}

	return ExitFailure
}
