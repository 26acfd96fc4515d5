// Package overflow repaginates laid-out slides whose content exceeds the
// canvas. The handler walks a slide's top-level blocks against the usable
// body boundary, moves the overflowing remainder onto continuation slides,
// and re-runs layout on every slide it touches until the deck is stable.
//
// Rows move whole. Sections split between elements, never inside one,
// except for tables, which split at row granularity with the header row
// duplicated on the continuation. An atomic element taller than the canvas
// stays where it is and surfaces a warning instead of looping.
package overflow
