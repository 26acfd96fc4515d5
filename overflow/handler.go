package overflow

import (
	"github.com/tsawler/deckdown/layout"
	"github.com/tsawler/deckdown/model"
)

// boundaryEpsilon absorbs floating-point jitter at the page boundary
const boundaryEpsilon = 0.5

// Handler splits overflowing slides into continuation slides
type Handler struct {
	engine *layout.Engine
}

// NewHandler creates a handler that re-lays-out slides with the given
// engine after each split
func NewHandler(engine *layout.Engine) *Handler {
	return &Handler{engine: engine}
}

// Paginate turns one laid-out slide into the slide plus however many
// continuation slides its content needs. Running the result through
// Paginate again produces no further splits.
func (h *Handler) Paginate(slide *model.Slide) ([]*model.Slide, []model.Warning, error) {
	out := []*model.Slide{slide}
	var warnings []model.Warning

	cur := slide
	for {
		cont, w, err := h.splitOnce(cur)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
		if cont == nil {
			break
		}
		out = append(out, cont)
		cur = cont
	}

	for i := range warnings {
		if warnings[i].Slide < 0 {
			warnings[i].Slide = slide.Origin
		}
	}
	return out, warnings, nil
}

// splitOnce finds the first block crossing the body boundary, trims the
// slide there, and returns the freshly laid-out continuation. A nil
// continuation means everything fits.
func (h *Handler) splitOnce(slide *model.Slide) (*model.Slide, []model.Warning, error) {
	boundary := h.engine.BodyFor(slide).Bottom() + boundaryEpsilon
	var warnings []model.Warning

	idx := -1
	for i, b := range slide.Blocks {
		if b.Bounds().Bottom() > boundary {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, nil
	}

	keep := slide.Blocks[:idx]
	var move []model.Block

	switch n := slide.Blocks[idx].(type) {
	case *model.Row:
		if idx == 0 {
			// A lone row taller than the body cannot split; keep it whole
			warnings = append(warnings, model.Warning{
				Slide:   -1,
				Context: "overflow",
				Message: "row taller than the canvas body; kept whole",
			})
			keep = slide.Blocks[:1]
			move = cloneBlocks(slide.Blocks[1:])
		} else {
			move = cloneBlocks(slide.Blocks[idx:])
		}
	case *model.Section:
		head, tail, w := h.splitSection(n, boundary, idx == 0)
		warnings = append(warnings, w...)
		if head != nil {
			keep = append(keep, head)
		}
		if tail != nil {
			move = append(move, tail)
		}
		move = append(move, cloneBlocks(slide.Blocks[idx+1:])...)
	}

	if len(move) == 0 {
		return nil, warnings, nil
	}

	slide.Blocks = keep
	w, err := h.engine.LayoutSlide(slide)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, warnings, err
	}

	cont := slide.Continue()
	cont.Blocks = move
	w, err = h.engine.LayoutSlide(cont)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, warnings, err
	}
	return cont, warnings, nil
}

// splitSection partitions a section's elements at the boundary. head is
// the part that stays (nil when nothing fits), tail the part that moves
// (nil when the whole section stays). The tail drops any height directive
// so the moved content re-measures on the continuation.
func (h *Handler) splitSection(sec *model.Section, boundary float64, first bool) (*model.Section, *model.Section, []model.Warning) {
	var warnings []model.Warning

	fit := 0
	for _, el := range sec.Elements {
		if el.Bounds().Bottom() > boundary {
			break
		}
		fit++
	}

	// When the boundary falls inside a table, split it at row granularity
	var headTable, tailTable *model.Table
	if fit < len(sec.Elements) {
		if table, ok := sec.Elements[fit].(*model.Table); ok {
			avail := boundary - table.Bounds().Y
			rows := h.engine.Metrics().TableFitRows(table, table.Bounds().Width, avail)
			if rows > 0 && rows < len(table.Rows) {
				headTable = table
				tailTable = model.CloneElement(table).(*model.Table)
				tailTable.Rows = tailTable.Rows[rows:]
				headTable.Rows = headTable.Rows[:rows]
			}
		}
	}

	if fit == 0 && headTable == nil {
		if !first {
			// The whole section moves; no need to split at all
			tail := model.CloneSection(sec)
			return nil, tail, nil
		}
		// Nothing fits even on a fresh slide: the first element is atomic
		// and oversized, so it stays and overflows
		warnings = append(warnings, model.Warning{
			Slide:   -1,
			Context: "overflow",
			Message: "element taller than the canvas body; kept whole",
		})
		fit = 1
	}

	split := fit
	if headTable != nil {
		split = fit + 1
	}
	if split >= len(sec.Elements) && tailTable == nil {
		return sec, nil, warnings
	}

	tail := &model.Section{Dir: sec.Dir.Clone(), Line: sec.Line}
	// A split section re-measures on the continuation
	tail.Dir.Height = nil
	if tailTable != nil {
		tail.Elements = append(tail.Elements, tailTable)
	}
	for _, el := range sec.Elements[split:] {
		tail.Elements = append(tail.Elements, model.CloneElement(el))
	}

	sec.Elements = sec.Elements[:split]
	sec.Style = model.Directives{}
	return sec, tail, warnings
}

func cloneBlocks(blocks []model.Block) []model.Block {
	out := make([]model.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, model.CloneBlock(b))
	}
	return out
}
