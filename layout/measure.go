package layout

import (
	"math"
	"strings"

	"github.com/tsawler/deckdown/model"
)

// aspectTolerance is the relative deviation between an image's declared and
// intrinsic aspect ratio before a distortion warning fires
const aspectTolerance = 0.01

// Metrics estimates element heights using the configured heuristics
type Metrics struct {
	cfg      MetricsConfig
	measurer TextMeasurer
	prober   ImageProber
}

// NewMetrics wires a measurer and an image prober to a heuristics config
func NewMetrics(cfg MetricsConfig, measurer TextMeasurer, prober ImageProber) *Metrics {
	if measurer == nil {
		measurer = HeuristicMeasurer{}
	}
	if prober == nil {
		prober = nopProber{}
	}
	return &Metrics{cfg: cfg, measurer: measurer, prober: prober}
}

// ElementHeight estimates an element's height when rendered into width w.
// ph is the parent's resolved content height, used for fractional height
// directives and fill images.
func (m *Metrics) ElementHeight(el model.Element, w, ph float64) (float64, []model.Warning) {
	style := elementStyle(el)
	if style.Height != nil {
		h := style.Height.Resolve(ph)
		if img, ok := el.(*model.Image); ok {
			return h, m.checkAspect(img, w, ph)
		}
		return h, nil
	}

	switch e := el.(type) {
	case *model.Text:
		return m.textHeight(e.Content, w, m.cfg.Text, style), nil
	case *model.Heading:
		s := style
		if s.FontSize == nil {
			fs := DefaultFontSize * headingScale(e.Level)
			s.FontSize = &fs
		}
		return m.textHeight(e.Content, w, m.cfg.Title, s), nil
	case *model.Quote:
		return m.textHeight(e.Content, w, m.cfg.Quote, style), nil
	case *model.List:
		return m.listHeight(e, w, style), nil
	case *model.Code:
		return m.codeHeight(e), nil
	case *model.Table:
		return m.tableHeight(e, w), nil
	case *model.Image:
		// Validated to carry fill when dimensions are absent
		return ph, m.checkAspect(e, w, ph)
	}
	return 0, nil
}

func (m *Metrics) textHeight(text string, w float64, tm TextMetrics, style model.Directives) float64 {
	return m.measurer.TextHeight(text, w, TextStyle{
		Metrics:  tm,
		FontSize: style.FontSizeOr(0),
	})
}

// listHeight sums per-item wrap estimates at each item's indent level
func (m *Metrics) listHeight(list *model.List, w float64, style model.Directives) float64 {
	itemMetrics := m.cfg.Text
	itemMetrics.Padding = 0
	itemMetrics.MinHeight = itemMetrics.LineHeight

	total := 0.0
	for _, item := range list.Items {
		iw := w - float64(item.Level)*m.cfg.ListIndent
		if iw < m.cfg.Text.CharWidth {
			iw = m.cfg.Text.CharWidth
		}
		total += m.measurer.TextHeight(item.Content, iw, TextStyle{
			Metrics:  itemMetrics,
			FontSize: style.FontSizeOr(0),
		})
	}
	total += 2 * m.cfg.Text.Padding
	return math.Max(total, m.cfg.Text.MinHeight)
}

func (m *Metrics) codeHeight(code *model.Code) float64 {
	lines := strings.Count(code.Content, "\n") + 1
	h := float64(lines)*m.cfg.Code.LineHeight + 2*m.cfg.Code.VerticalPad
	if code.Language != "" {
		h += m.cfg.Code.LabelHeight
	}
	return math.Max(h, m.cfg.Code.MinHeight)
}

// tableHeight estimates each row as the tallest wrapped cell plus cell
// padding, with the table's own padding around the whole grid
func (m *Metrics) tableHeight(table *model.Table, w float64) float64 {
	cols := table.ColumnCount()
	if cols == 0 {
		return m.cfg.Table.MinHeight
	}
	colWidth := (w - 2*m.cfg.Table.Pad) / float64(cols)
	if colWidth < m.cfg.Text.CharWidth {
		colWidth = m.cfg.Text.CharWidth
	}

	total := 2 * m.cfg.Table.Pad
	if len(table.Headers) > 0 {
		total += m.rowHeight(table.Headers, colWidth)
	}
	for _, row := range table.Rows {
		total += m.rowHeight(row.Cells, colWidth)
	}
	return math.Max(total, m.cfg.Table.MinHeight)
}

func (m *Metrics) rowHeight(cells []model.TableCell, colWidth float64) float64 {
	cellMetrics := m.cfg.Text
	cellMetrics.Padding = 0
	cellMetrics.MinHeight = cellMetrics.LineHeight

	h := 0.0
	for _, c := range cells {
		ch := m.measurer.TextHeight(c.Content, colWidth, TextStyle{Metrics: cellMetrics})
		if ch > h {
			h = ch
		}
	}
	h += 2 * m.cfg.Table.CellPad
	return math.Max(h, m.cfg.Table.MinCellHeight)
}

// TableFitRows returns how many body rows of a table fit into avail height
// when rendered at width w, header and padding included. Rows are never
// split internally.
func (m *Metrics) TableFitRows(table *model.Table, w, avail float64) int {
	cols := table.ColumnCount()
	if cols == 0 {
		return len(table.Rows)
	}
	colWidth := (w - 2*m.cfg.Table.Pad) / float64(cols)
	if colWidth < m.cfg.Text.CharWidth {
		colWidth = m.cfg.Text.CharWidth
	}

	consumed := 2 * m.cfg.Table.Pad
	if len(table.Headers) > 0 {
		consumed += m.rowHeight(table.Headers, colWidth)
	}
	fit := 0
	for _, row := range table.Rows {
		consumed += m.rowHeight(row.Cells, colWidth)
		if consumed > avail {
			break
		}
		fit++
	}
	return fit
}

// checkAspect compares an image's declared box against its intrinsic
// aspect ratio and warns when the rendering would visibly distort it
func (m *Metrics) checkAspect(img *model.Image, w, ph float64) []model.Warning {
	style := img.Style
	if style.Width == nil || style.Height == nil {
		return nil
	}
	dw := style.Width.Resolve(w)
	dh := style.Height.Resolve(ph)
	if dw <= 0 || dh <= 0 {
		return nil
	}
	intrinsic, err := m.prober.Aspect(img.URL)
	if err != nil || intrinsic <= 0 {
		return nil
	}
	declared := dw / dh
	if math.Abs(declared-intrinsic)/intrinsic > aspectTolerance {
		return []model.Warning{{
			Slide:   -1,
			Context: "image",
			Message: "declared size distorts " + img.URL + " away from its intrinsic aspect ratio",
		}}
	}
	return nil
}

// headingScale shrinks heading typography as the level deepens
func headingScale(level int) float64 {
	switch {
	case level <= 1:
		return 1.0
	case level == 2:
		return 0.9
	case level == 3:
		return 0.8
	case level == 4:
		return 0.75
	case level == 5:
		return 0.7
	default:
		return 0.65
	}
}

// elementStyle returns an element's resolved directive record
func elementStyle(el model.Element) model.Directives {
	switch e := el.(type) {
	case *model.Text:
		return e.Style
	case *model.Heading:
		return e.Style
	case *model.List:
		return e.Style
	case *model.Table:
		return e.Style
	case *model.Image:
		return e.Style
	case *model.Code:
		return e.Style
	case *model.Quote:
		return e.Style
	}
	return model.Directives{}
}
