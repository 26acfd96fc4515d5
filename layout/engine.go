package layout

import (
	"github.com/tsawler/deckdown/model"
)

// Config holds everything the layout engine needs for one conversion
type Config struct {
	Canvas   model.CanvasConfig
	Metrics  MetricsConfig
	Measurer TextMeasurer
	Prober   ImageProber
}

// DefaultConfig returns the standard canvas and sizing heuristics
func DefaultConfig() Config {
	return Config{
		Canvas:  model.DefaultCanvas(),
		Metrics: DefaultMetricsConfig(),
	}
}

// Engine assigns geometry to parsed slides. An Engine is immutable and safe
// for concurrent use across slides.
type Engine struct {
	canvas  model.CanvasConfig
	metrics *Metrics
}

// NewEngine creates a layout engine from a config
func NewEngine(cfg Config) *Engine {
	return &Engine{
		canvas:  cfg.Canvas,
		metrics: NewMetrics(cfg.Metrics, cfg.Measurer, cfg.Prober),
	}
}

// Canvas returns the canvas the engine lays out against
func (e *Engine) Canvas() model.CanvasConfig { return e.canvas }

// Metrics returns the engine's element measurer
func (e *Engine) Metrics() *Metrics { return e.metrics }

// LayoutSlide resolves directives and assigns a box to every node and
// element of one slide. Warnings carry the slide's origin index; an error
// is a constraint violation fatal to the slide.
func (e *Engine) LayoutSlide(slide *model.Slide) ([]model.Warning, error) {
	if err := ResolveSlide(slide); err != nil {
		return nil, err
	}

	body := e.canvas.Body()
	gap := slide.Base.GapOr(DefaultGap)
	var warnings []model.Warning

	// The footer claims the bottom of the content box; body shrinks to the
	// space above it
	if slide.Footer != nil {
		fh := e.measureSection(slide.Footer, body.Width, body.Height)
		slide.Footer.Box = model.NewRect(body.X, body.Bottom()-fh, body.Width, fh)
		e.placeSection(slide.Footer, &warnings)
		body.Height -= fh + gap
		if body.Height < 0 {
			body.Height = 0
		}
	}

	e.layoutBlocks(slide.Blocks, body, gap, &warnings)

	for i := range warnings {
		if warnings[i].Slide < 0 {
			warnings[i].Slide = slide.Origin
		}
	}
	return warnings, nil
}

// BodyFor returns the area a slide's blocks flow into: the canvas content
// box minus the slide's laid-out footer. The overflow handler partitions
// against this boundary.
func (e *Engine) BodyFor(slide *model.Slide) model.Rect {
	body := e.canvas.Body()
	if slide.Footer != nil && !slide.Footer.Box.IsZero() {
		gap := slide.Base.GapOr(DefaultGap)
		body.Height -= slide.Footer.Box.Height + gap
		if body.Height < 0 {
			body.Height = 0
		}
	}
	return body
}

// layoutBlocks stacks sections and rows vertically inside an area
func (e *Engine) layoutBlocks(blocks []model.Block, area model.Rect, gap float64, warnings *[]model.Warning) {
	y := area.Y
	for _, b := range blocks {
		switch n := b.(type) {
		case *model.Section:
			margin := n.Style.MarginOr()
			w := blockWidth(n.Style, area.Width, margin)
			h := e.blockHeight(n, w, area.Height)
			n.Box = model.NewRect(area.X+margin.Left, y+margin.Top, w, h)
			e.placeSection(n, warnings)
			y = n.Box.Bottom() + margin.Bottom + gap
		case *model.Row:
			margin := n.Style.MarginOr()
			w := blockWidth(n.Style, area.Width, margin)
			h := e.blockHeight(n, w, area.Height)
			n.Box = model.NewRect(area.X+margin.Left, y+margin.Top, w, h)
			e.layoutRow(n, warnings)
			y = n.Box.Bottom() + margin.Bottom + gap
		}
	}
}

// blockWidth resolves a block's width: explicit directive or full area
// width minus margins
func blockWidth(style model.Directives, areaWidth float64, margin model.Spacing) float64 {
	if style.Width != nil {
		return style.Width.Resolve(areaWidth)
	}
	w := areaWidth - margin.Horizontal()
	if w < 0 {
		w = 0
	}
	return w
}

// blockHeight resolves a block's height: explicit directive or measured
// content height
func (e *Engine) blockHeight(b model.Block, w, parentHeight float64) float64 {
	switch n := b.(type) {
	case *model.Section:
		if n.Style.Height != nil {
			return n.Style.Height.Resolve(parentHeight)
		}
		return e.measureSection(n, w, parentHeight)
	case *model.Row:
		if n.Style.Height != nil {
			return n.Style.Height.Resolve(parentHeight)
		}
		return e.measureRow(n, w, parentHeight)
	}
	return 0
}

// measureSection estimates a section's height from its elements
func (e *Engine) measureSection(sec *model.Section, w, parentHeight float64) float64 {
	pad := sec.Style.PaddingOr(0)
	gap := sec.Style.GapOr(DefaultGap)
	cw := w - pad.Horizontal()
	if cw < 0 {
		cw = 0
	}
	ch := parentHeight - pad.Vertical()
	if ch < 0 {
		ch = 0
	}

	total := pad.Vertical()
	for i, el := range sec.Elements {
		style := elementStyle(el)
		margin := style.MarginOr()
		ew := blockWidth(style, cw, margin)
		h, _ := e.metrics.ElementHeight(el, ew, ch)
		total += h + margin.Vertical()
		if i > 0 {
			total += gap
		}
	}
	return total
}

// measureRow estimates a row's height as its tallest column's content
func (e *Engine) measureRow(row *model.Row, w, parentHeight float64) float64 {
	pad := row.Style.PaddingOr(0)
	widths, _ := e.columnWidths(row, w-pad.Horizontal())

	max := 0.0
	for i, col := range row.Columns {
		h := 0.0
		if col.Style.Height != nil {
			h = col.Style.Height.Resolve(parentHeight)
		} else {
			h = e.measureColumn(col, widths[i], parentHeight)
		}
		if h > max {
			max = h
		}
	}
	return max + pad.Vertical()
}

// measureColumn estimates a column's height as its stacked children
func (e *Engine) measureColumn(col *model.Column, w, parentHeight float64) float64 {
	pad := col.Style.PaddingOr(0)
	gap := col.Style.GapOr(DefaultGap)
	cw := w - pad.Horizontal()
	if cw < 0 {
		cw = 0
	}

	total := pad.Vertical()
	for i, child := range col.Children {
		total += e.blockHeight(child, cw, parentHeight)
		if i > 0 {
			total += gap
		}
	}
	return total
}

// layoutRow distributes the row's content width over its columns and lays
// each column's children out inside its box
func (e *Engine) layoutRow(row *model.Row, warnings *[]model.Warning) {
	pad := row.Style.PaddingOr(0)
	content := row.Box.Inset(pad)
	gap := row.Style.GapOr(DefaultGap)

	widths, w := e.columnWidths(row, content.Width)
	*warnings = append(*warnings, w...)

	x := content.X
	for i, col := range row.Columns {
		h := content.Height
		if col.Style.Height != nil {
			h = col.Style.Height.Resolve(content.Height)
		}
		col.Box = model.NewRect(x, content.Y, widths[i], h)
		e.layoutColumn(col, warnings)
		x += widths[i] + gap
	}
}

// columnWidths implements the implicit-sizing policy on the horizontal
// axis: explicit widths are honored, the remainder splits equally among
// unsized columns, and an over-constrained remainder clamps each unsized
// column to zero with a warning.
func (e *Engine) columnWidths(row *model.Row, contentWidth float64) ([]float64, []model.Warning) {
	n := len(row.Columns)
	if n == 0 {
		return nil, nil
	}
	gap := row.Style.GapOr(DefaultGap)
	avail := contentWidth - gap*float64(n-1)

	widths := make([]float64, n)
	explicitSum := 0.0
	unsized := 0
	for i, col := range row.Columns {
		if col.Style.Width != nil {
			widths[i] = col.Style.Width.Resolve(avail)
			explicitSum += widths[i]
		} else {
			widths[i] = -1
			unsized++
		}
	}

	var warnings []model.Warning
	remaining := avail - explicitSum
	if remaining < 0 {
		remaining = 0
		if explicitSum > avail {
			warnings = append(warnings, model.Warning{
				Slide:   -1,
				Context: "row",
				Message: "explicit column widths exceed the row; unsized columns clamp to zero",
			})
		}
	}
	if unsized > 0 {
		share := remaining / float64(unsized)
		for i := range widths {
			if widths[i] < 0 {
				widths[i] = share
			}
		}
	}
	return widths, warnings
}

// layoutColumn stacks a column's children inside its padded box
func (e *Engine) layoutColumn(col *model.Column, warnings *[]model.Warning) {
	pad := col.Style.PaddingOr(0)
	content := col.Box.Inset(pad)
	gap := col.Style.GapOr(DefaultGap)
	e.layoutBlocks(col.Children, content, gap, warnings)
}

// placeSection positions a section's elements inside its padded box,
// honoring per-element alignment and the section's vertical alignment
func (e *Engine) placeSection(sec *model.Section, warnings *[]model.Warning) {
	pad := sec.Style.PaddingOr(0)
	content := sec.Box.Inset(pad)
	gap := sec.Style.GapOr(DefaultGap)

	y := content.Y
	for i, el := range sec.Elements {
		style := elementStyle(el)
		margin := style.MarginOr()
		w := blockWidth(style, content.Width, margin)
		h, ws := e.metrics.ElementHeight(el, w, content.Height)
		*warnings = append(*warnings, ws...)

		x := content.X + margin.Left
		switch style.Align {
		case model.AlignCenter:
			x = content.X + (content.Width-w)/2
		case model.AlignRight:
			x = content.Right() - w - margin.Right
		}
		if i > 0 {
			y += gap
		}
		setElementBox(el, model.NewRect(x, y+margin.Top, w, h))
		y += margin.Top + h + margin.Bottom
	}

	// Vertical alignment shifts the whole run inside the assigned extent
	used := y - content.Y
	slack := content.Height - used
	if slack <= 0 {
		return
	}
	var offset float64
	switch sec.Style.VAlign {
	case model.VAlignMiddle:
		offset = slack / 2
	case model.VAlignBottom:
		offset = slack
	default:
		return
	}
	for _, el := range sec.Elements {
		box := el.Bounds()
		box.Y += offset
		setElementBox(el, box)
	}
}
