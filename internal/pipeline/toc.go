package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Default heading range of the table of contents: H1 is the document title.
const (
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// Heading is a heading found in rendered HTML.
type Heading struct {
	Level int    // 1-6
	ID    string // anchor id generated by goldmark
	Text  string // plain text, entities decoded
}

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MinDepth int
	MaxDepth int
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// Captures: 1=level, 2=id, 3=inner HTML.
var headingPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes tags and decodes entities so the text is escaped
// exactly once when written back out.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// ExtractHeadings returns, in document order, the headings of htmlContent
// whose level lies in [minDepth, maxDepth]. Headings without an id are skipped.
func ExtractHeadings(htmlContent string, minDepth, maxDepth int) []Heading {
	matches := headingPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []Heading
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		if level < minDepth || level > maxDepth {
			continue
		}
		headings = append(headings, Heading{
			Level: level,
			ID:    html.UnescapeString(m[2]),
			Text:  stripHTMLTags(m[3]),
		})
	}
	return headings
}

// numberingState produces hierarchical numbers ("1.", "1.2.", ...).
// Depth is the position in the chain of open ancestors, so the shallowest
// heading seen is depth 1 and skipped levels (H2 then H4) nest by one.
type numberingState struct {
	counters [6]int
	open     []int // raw levels of the open ancestor chain
}

func newNumberingState() *numberingState {
	return &numberingState{open: make([]int, 0, 6)}
}

// next returns the number and effective depth for a heading of the given level.
func (n *numberingState) next(level int) (numStr string, depth int) {
	for len(n.open) > 0 && n.open[len(n.open)-1] >= level {
		n.open = n.open[:len(n.open)-1]
	}
	n.open = append(n.open, level)
	depth = len(n.open)

	n.counters[depth-1]++
	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}

	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString(strconv.Itoa(n.counters[i]))
		b.WriteByte('.')
	}
	return b.String(), depth
}

// generateNumberedTOC renders the TOC as a <nav> of indented links.
// Divs are used instead of nested lists so list styles cannot interfere.
func generateNumberedTOC(headings []Heading, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)

	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<div class="toc-list">`)

	numbering := newNumberingState()
	for _, h := range headings {
		num, depth := numbering.next(h.Level)

		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(depth-1)*1.5)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC inserts a numbered table of contents at the start of the body.
// htmlContent may be a full document (inserted after <body>) or a fragment
// (prepended). A nil data or a document without matching headings is
// returned unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	minDepth, maxDepth := data.MinDepth, data.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}

	tocHTML := generateNumberedTOC(ExtractHeadings(htmlContent, minDepth, maxDepth), data.Title)
	if tocHTML == "" {
		return htmlContent, nil
	}

	lowerHTML := strings.ToLower(htmlContent)
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + tocHTML + htmlContent[insertPos:], nil
		}
	}

	return tocHTML + htmlContent, nil
}

var _ TOCInjector = (*TOCInjection)(nil)
