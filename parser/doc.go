// Package parser turns annotated markdown into unpositioned model trees.
//
// The package covers the first half of the conversion pipeline:
//
//   - [SplitSlides] splits raw input into per-slide sources on "===" lines,
//     extracting speaker notes, the "@@@" footer block, and the slide-base
//     directive lines (including background).
//   - [ParseSlide] builds the Section/Row/Column tree from the
//     ":::" fenced-block grammar, rejecting invalid nesting at parse time.
//   - [ParseDirectiveString] and [TrimTrailingDirectives] extract bracketed
//     [key=value] directives and coerce them into typed records.
//   - [BuildElements] tokenizes a section's normalized content into typed
//     elements with goldmark-extracted inline formatting spans.
//
// Structural and validation failures are fatal for the affected slide and
// carry the offending source line. Unknown directive keys are never fatal;
// they produce warnings.
package parser
