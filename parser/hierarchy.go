package parser

import (
	"strings"

	"github.com/tsawler/deckdown/model"
)

// ParseSlide builds a fully parsed slide from one split source: the
// container tree from the ":::" fence grammar, the footer section, and the
// elements inside every leaf section.
func ParseSlide(src *SlideSource) (*model.Slide, []model.Warning, error) {
	slide := model.NewSlide(src.Origin)
	slide.Background = src.Background
	slide.Notes = src.Notes
	slide.Base = src.Base

	blocks, warnings, err := parseBlocks(src.Body, src.Line)
	if err != nil {
		return nil, warnings, err
	}
	slide.Blocks = blocks

	if src.Footer != "" {
		footer := &model.Section{Line: src.FooterLine}
		els, w, err := BuildElements(strings.Split(src.Footer, "\n"), src.FooterLine)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
		footer.Elements = els
		slide.Footer = footer
	}
	return slide, warnings, nil
}

// frame is one open container on the parse stack
type frame struct {
	kind model.NodeKind
	line int

	sec *model.Section
	row *model.Row
	col *model.Column

	// raw collects a section's content lines until the close fence
	raw      []string
	rawStart int
}

// parseBlocks runs the fence stack machine over a slide body. start is the
// 1-indexed input line of the first body line.
func parseBlocks(body string, start int) ([]model.Block, []model.Warning, error) {
	var blocks []model.Block
	var warnings []model.Warning
	var stack []*frame
	var fence fenceState

	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lineNo := start + i
		trimmed := strings.TrimSpace(line)

		// Inside a section, fenced code owns every line including ":::"
		if f := top(); f != nil && f.kind == model.KindSection {
			if fence.inFence() {
				fence.observe(line)
				f.raw = append(f.raw, line)
				continue
			}
		}

		if strings.HasPrefix(trimmed, ":::") {
			rest := strings.TrimSpace(trimmed[3:])
			if rest == "" {
				next, err := closeFrame(stack, &blocks, &warnings, lineNo)
				if err != nil {
					return nil, warnings, err
				}
				stack = next
				continue
			}
			keyword, dirSrc, _ := strings.Cut(rest, " ")
			f, w, err := openFrame(keyword, dirSrc, lineNo, top())
			warnings = append(warnings, w...)
			if err != nil {
				return nil, warnings, err
			}
			stack = append(stack, f)
			continue
		}

		f := top()
		switch {
		case f != nil && f.kind == model.KindSection:
			fence.observe(line)
			f.raw = append(f.raw, line)
		case trimmed == "":
			// Blank lines between containers carry no meaning
		case f == nil:
			return nil, warnings, structureErrorf(lineNo, "content outside a section")
		case f.kind == model.KindRow:
			return nil, warnings, structureErrorf(lineNo, "row may contain only columns")
		default:
			return nil, warnings, structureErrorf(lineNo, "content directly inside a column must be wrapped in a section")
		}
	}

	if f := top(); f != nil {
		return nil, warnings, structureErrorf(f.line, "unclosed %s block", f.kind)
	}
	return blocks, warnings, nil
}

// openFrame validates nesting for one opening fence and creates its frame
func openFrame(keyword, dirSrc string, line int, parent *frame) (*frame, []model.Warning, error) {
	dir, warnings, err := ParseDirectiveString(dirSrc)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok && ve.Line == 0 {
			ve.Line = line
		}
		return nil, warnings, err
	}

	switch keyword {
	case "section":
		if parent != nil && parent.kind != model.KindColumn {
			return nil, warnings, structureErrorf(line, "section cannot open inside a %s", parent.kind)
		}
		return &frame{
			kind:     model.KindSection,
			line:     line,
			sec:      &model.Section{Dir: dir, Line: line},
			rawStart: line + 1,
		}, warnings, nil
	case "row":
		if parent != nil && parent.kind != model.KindColumn {
			return nil, warnings, structureErrorf(line, "row cannot open inside a %s", parent.kind)
		}
		return &frame{
			kind: model.KindRow,
			line: line,
			row:  &model.Row{Dir: dir, Line: line},
		}, warnings, nil
	case "column":
		if parent == nil || parent.kind != model.KindRow {
			return nil, warnings, structureErrorf(line, "column must open inside a row")
		}
		return &frame{
			kind: model.KindColumn,
			line: line,
			col:  &model.Column{Dir: dir, Line: line},
		}, warnings, nil
	default:
		return nil, warnings, structureErrorf(line, "unknown block keyword %q", keyword)
	}
}

// closeFrame pops the innermost container, finishes it, and attaches it to
// its parent or to the slide's top-level block list.
func closeFrame(stack []*frame, blocks *[]model.Block, warnings *[]model.Warning, lineNo int) ([]*frame, error) {
	if len(stack) == 0 {
		return nil, structureErrorf(lineNo, "unmatched %q close fence", ":::")
	}
	f := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	parent := (*frame)(nil)
	if len(stack) > 0 {
		parent = stack[len(stack)-1]
	}

	var block model.Block
	switch f.kind {
	case model.KindSection:
		els, w, err := BuildElements(stripCommonIndent(f.raw), f.rawStart)
		*warnings = append(*warnings, w...)
		if err != nil {
			return nil, err
		}
		f.sec.Elements = els
		block = f.sec
	case model.KindRow:
		block = f.row
	case model.KindColumn:
		parent.row.Columns = append(parent.row.Columns, f.col)
		return stack, nil
	}

	if parent == nil {
		*blocks = append(*blocks, block)
	} else {
		parent.col.Children = append(parent.col.Children, block)
	}
	return stack, nil
}

// stripCommonIndent removes the longest common leading whitespace run from
// a section's content lines, so indented fenced blocks tokenize cleanly.
func stripCommonIndent(lines []string) []string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= common && strings.TrimSpace(line) != "" {
			out[i] = line[common:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}
