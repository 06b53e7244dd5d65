package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the page template could not be parsed or executed.
var ErrPageRender = errors.New("page template rendering failed")

// PageData is the value set substituted into the page template.
type PageData struct {
	Title string // escaped by the template engine
	CSS   string // sanitized, then trusted
	Body  string // goldmark output, trusted
}

// PageAssembler wraps a body fragment into a complete HTML document.
type PageAssembler interface {
	Assemble(ctx context.Context, data PageData) (string, error)
}

// TemplatePage implements PageAssembler with an html/template page skeleton.
type TemplatePage struct {
	tmpl *template.Template
}

// NewTemplatePage parses the page template.
func NewTemplatePage(tmplContent string) (*TemplatePage, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return &TemplatePage{tmpl: tmpl}, nil
}

type pageValues struct {
	Title string
	CSS   template.CSS  // #nosec G203 -- sanitized by sanitizeCSS
	Body  template.HTML // #nosec G203 -- produced by goldmark from the user's own document
}

// Assemble executes the template with data. The title is escaped, so markup in
// a title shows up literally and can never alter the document structure.
func (p *TemplatePage) Assemble(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	values := pageValues{
		Title: data.Title,
		CSS:   template.CSS(sanitizeCSS(data.CSS)), // #nosec G203
		Body:  template.HTML(data.Body),            // #nosec G203
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could close the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ PageAssembler = (*TemplatePage)(nil)
