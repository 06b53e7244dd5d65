package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveRelativePaths rewrites relative img[src] and a[href] values of an
// HTML body fragment into absolute file:// URLs under sourceDir.
//
// The renderer loads the document from a temporary file, so paths relative to
// the Markdown source would otherwise point into the temp directory. Targets
// outside sourceDir, anchors, absolute paths and URLs are left as written;
// the relative targets that escape sourceDir are returned as skipped, since
// the renderer cannot load them. An empty sourceDir returns the fragment
// unchanged.
func ResolveRelativePaths(fragment, sourceDir string) (out string, skipped []string, err error) {
	if sourceDir == "" {
		return fragment, nil, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", nil, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", nil, err
	}

	changed := false
	for _, n := range nodes {
		if rewriteNode(n, absSourceDir, &skipped) {
			changed = true
		}
	}
	if !changed {
		return fragment, skipped, nil
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", nil, err
		}
	}
	return buf.String(), skipped, nil
}

// rewriteNode walks n depth-first and reports whether any attribute changed.
func rewriteNode(n *html.Node, sourceDir string, skipped *[]string) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = rewriteAttr(n, "src", sourceDir, skipped)
		case atom.A:
			changed = rewriteAttr(n, "href", sourceDir, skipped)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c, sourceDir, skipped) {
			changed = true
		}
	}
	return changed
}

func rewriteAttr(n *html.Node, key, sourceDir string, skipped *[]string) bool {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}

		target, fragment := splitFragment(attr.Val)
		// Markdown link targets are URL-escaped ("my%20chart.png").
		if unescaped, err := url.PathUnescape(target); err == nil {
			target = unescaped
		}

		absPath := filepath.Join(sourceDir, filepath.FromSlash(target))
		if !isPathUnderDir(absPath, sourceDir) {
			*skipped = append(*skipped, attr.Val)
			continue
		}

		n.Attr[i].Val = pathToFileURL(absPath) + fragment
		return true
	}
	return false
}

// splitFragment separates "doc.md#part" into "doc.md" and "#part".
func splitFragment(ref string) (path, fragment string) {
	if idx := strings.IndexByte(ref, '#'); idx != -1 {
		return ref[:idx], ref[idx:]
	}
	return ref, ""
}

// isRelativePath reports whether ref is a relative filesystem reference.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		// http:, https:, file:, data:, mailto: ... but not a Windows drive letter.
		if len(u.Scheme) > 1 {
			return false
		}
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return false
	}
	return true
}

func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/x -> /C:/x
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
