// Package assets embeds the fixed style sheet and page template used to
// assemble every document.
//
// # Layout
//
//	styles/
//	└── report.css    # A4 report style: heading scale, code, tables
//	templates/
//	└── page.html     # html/template skeleton: {{.Title}}, {{.CSS}}, {{.Body}}
//
// Assets are compiled into the binary; there is no on-disk override. The
// Source interface lets the converter run against a Bundle over any fs.FS.
//
// # Security
//
// Asset names are validated before use so a caller-supplied name can never
// escape the embedded directories.
package assets
