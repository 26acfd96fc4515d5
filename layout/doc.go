// Package layout assigns concrete geometry to a parsed slide. It resolves
// directive inheritance and precedence into per-node style records, then
// positions every container and element top-down against the canvas.
//
// Element heights are estimated by per-type heuristics behind the
// TextMeasurer interface; the layout algorithm itself never touches a font
// engine. Explicit width/height directives are always honored, unsized row
// columns share the remaining width equally, and unsized sections take
// their measured content height. Over-constrained siblings clamp to zero
// and surface warnings rather than failing.
package layout
