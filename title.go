package mdpdf

import (
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// defaultTitle is used for in-memory input with no heading and no source path.
const defaultTitle = "Document"

// DeriveTitle picks the document title.
//
// Priority: a non-empty override, used verbatim; else the remainder of the
// first line starting with "# ", trimmed, even when that leaves it empty; else
// the base name of sourcePath without its extension.
func DeriveTitle(override, markdown, sourcePath string) string {
	if override != "" {
		return override
	}

	markdown = strings.TrimPrefix(markdown, "\ufeff")
	for _, line := range strings.Split(markdown, "\n") {
		rest, ok := strings.CutPrefix(line, "# ")
		if !ok {
			continue
		}
		return strings.TrimSpace(rest)
	}

	if sourcePath == "" {
		return defaultTitle
	}
	return fileutil.StemName(sourcePath)
}
