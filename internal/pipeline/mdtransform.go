package pipeline

import (
	"context"
	"regexp"
	"strings"
)

const byteOrderMark = "\ufeff"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Preprocessor prepares source text for goldmark. It never changes the
// meaning of the document: code spans and blocks keep their bytes apart from
// line endings.
type Preprocessor struct{}

// PreprocessMarkdown strips a leading byte order mark and converts CRLF and
// lone CR line endings to LF. A cancelled context returns content unchanged.
func (p *Preprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
