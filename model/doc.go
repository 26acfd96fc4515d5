// Package model provides the intermediate representation (IR) for converted
// presentations.
//
// This package defines the user-facing data structures produced by the
// conversion pipeline. All parsing, layout, and overflow operations
// ultimately produce these types, making them the primary API for consuming
// a positioned deck.
//
// # Deck Structure
//
// The [Deck] type represents a complete presentation:
//
//	deck := model.NewDeck()
//	deck.AddSlide(slide)
//
// Each [Slide] contains its background, optional footer, speaker notes, and
// an ordered list of top-level blocks. Slides created by the overflow
// handler are continuations and carry a back-reference to their origin.
//
// # Nodes
//
// Container nodes implement the [Block] interface. The concrete types are:
//
//   - [Section] - vertical container holding only content elements
//   - [Row] - horizontal container holding only columns
//   - [Column] - a row cell holding sections (and, experimentally, nested rows)
//
// The container hierarchy is enforced structurally: a Row's child list only
// admits *Column and a Section's child list only admits [Element]. Column
// children are [Block] to allow the experimental nested-row case.
//
// # Elements
//
// All leaf content implements the [Element] interface:
//
//   - [Text] - paragraphs
//   - [Heading] - headings (levels 1-6)
//   - [List] - ordered or unordered lists with nesting
//   - [Table] - tables with per-row directive records
//   - [Image] - images (explicit size or fill mode)
//   - [Code] - fenced code blocks, content kept verbatim
//   - [Quote] - blockquotes
//
// # Geometry
//
// [Rect] is a bounding box in canvas points with a top-left origin. Boxes
// are zero until the layout engine assigns them; after layout every node
// and element carries a finished box and the deck is render-ready.
//
// # Directives
//
// [Directives] is the typed record of bracketed [key=value] annotations.
// Each node and element carries two records: the raw record attached at
// parse time, and the resolved record written by the directive resolver
// after inheritance and precedence are applied.
package model
