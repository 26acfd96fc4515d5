package layout

import (
	"math"
	"strings"

	"golang.org/x/text/width"
)

// Baseline typography used by the default heuristics. All values are canvas
// points.
const (
	DefaultFontSize = 12.0
	DefaultGap      = 10.0
)

// TextMetrics holds the wrap heuristics for one class of running text
type TextMetrics struct {
	// CharWidth is the assumed average glyph advance
	CharWidth float64
	// LineHeight is the vertical advance per wrapped line
	LineHeight float64
	// Padding is applied above and below the text run
	Padding float64
	// MinHeight is the floor for the estimated height
	MinHeight float64
}

// CodeMetrics holds the sizing heuristics for fenced code blocks
type CodeMetrics struct {
	CharWidth   float64
	LineHeight  float64
	VerticalPad float64
	// LabelHeight is added when the fence declares a language
	LabelHeight float64
	MinHeight   float64
}

// TableMetrics holds the sizing heuristics for tables
type TableMetrics struct {
	MinCellHeight float64
	CellPad       float64
	Pad           float64
	MinHeight     float64
}

// MetricsConfig aggregates the per-element-type heuristics
type MetricsConfig struct {
	Text  TextMetrics
	Title TextMetrics
	Quote TextMetrics
	Code  CodeMetrics
	Table TableMetrics

	// ListIndent is the horizontal inset per nesting level
	ListIndent float64
}

// DefaultMetricsConfig returns the standard sizing heuristics
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Text:       TextMetrics{CharWidth: 5.0, LineHeight: 14, Padding: 3, MinHeight: 18},
		Title:      TextMetrics{CharWidth: 5.5, LineHeight: 20, Padding: 5, MinHeight: 30},
		Quote:      TextMetrics{CharWidth: 5.0, LineHeight: 16, Padding: 8, MinHeight: 25},
		Code:       CodeMetrics{CharWidth: 8.0, LineHeight: 16, VerticalPad: 10, LabelHeight: 15, MinHeight: 40},
		Table:      TableMetrics{MinCellHeight: 20, CellPad: 5, Pad: 10, MinHeight: 40},
		ListIndent: 20,
	}
}

// TextStyle is the style slice a measurer sees for one text run
type TextStyle struct {
	Metrics  TextMetrics
	FontSize float64
}

// TextMeasurer estimates the rendered height of a text run wrapped into a
// given width. Implementations may use any reasonable approximation; exact
// typographic fidelity is not part of the contract.
type TextMeasurer interface {
	TextHeight(text string, w float64, style TextStyle) float64
}

// HeuristicMeasurer is the default TextMeasurer: a character-count wrap
// estimate where East Asian wide and fullwidth runes count double.
type HeuristicMeasurer struct{}

func (HeuristicMeasurer) TextHeight(text string, w float64, style TextStyle) float64 {
	m := style.Metrics
	scale := 1.0
	if style.FontSize > 0 {
		scale = style.FontSize / DefaultFontSize
	}
	charWidth := m.CharWidth * scale
	lineHeight := m.LineHeight * scale

	perLine := 1.0
	if charWidth > 0 && w > charWidth {
		perLine = math.Floor(w / charWidth)
	}

	lines := 0.0
	for _, raw := range strings.Split(text, "\n") {
		lines += math.Max(1, math.Ceil(visualWidth(raw)/perLine))
	}
	if lines == 0 {
		lines = 1
	}

	h := lines*lineHeight + 2*m.Padding
	return math.Max(h, m.MinHeight)
}

// visualWidth counts a line's columns, doubling wide CJK glyphs
func visualWidth(s string) float64 {
	total := 0.0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}
