// Package pipeline turns Markdown source into the HTML document handed to the
// PDF renderer.
//
// Stages, in order:
//   - Preprocessor: strips a UTF-8 byte order mark and normalizes line endings
//   - GoldmarkConverter: Markdown to an HTML body fragment (tables, fenced
//     code, unique heading anchors, optional chroma highlighting)
//   - TOCInjection: optional numbered table of contents built from the anchors
//   - PageAssembler: wraps the fragment in the embedded page template with the
//     style sheet and the escaped title
//
// PDF rendering lives in the root mdpdf package. This package never touches
// the filesystem or the browser.
package pipeline
