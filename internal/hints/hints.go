// Package hints builds the "hint:" lines appended to CLI error messages.
// Every hint is formatted as "\n  hint: <text>" so callers can concatenate it.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
// Replaced in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the rod environment variables that usually fix a
// failed Chrome launch. getenv is typically os.Getenv.
func ForBrowserConnect(getenv func(string) string) string {
	var hints []string

	inCI := getenv("CI") != "" ||
		getenv("GITHUB_ACTIONS") != "" ||
		getenv("GITLAB_CI") != "" ||
		getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to point at a Chrome or Chromium binary")
	}
	hints = append(hints, "run 'mdpdf doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout points at the knobs that raise the conversion deadline.
func ForTimeout() string {
	return format("for large documents, raise --timeout or MDPDF_TIMEOUT (e.g. 2m)")
}

// ForInputNotFound suggests checking the path when the input file is missing.
func ForInputNotFound(path string) string {
	if filepath.Ext(path) == "" {
		return format("input has no extension; did you mean " + path + ".md?")
	}
	return format("check the path is relative to the current directory")
}

// ForConfigNotFound suggests --config and the per-user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-mdpdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation and write errors.
func ForOutputDirectory() string {
	return format("check the output path is not a directory and its parent is writable")
}

// ForHighlightStyle lists a few valid chroma style names.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	const shown = 8
	if len(available) > shown {
		return format("available: " + strings.Join(available[:shown], ", ") + ", ...")
	}
	return format("available: " + strings.Join(available, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
