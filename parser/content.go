package parser

import (
	"regexp"
	"strings"

	"github.com/tsawler/deckdown/model"
)

var (
	headingPattern  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	listItemPattern = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+(.*)$`)
	imagePattern    = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)\s]*)\)\s*$`)
	tableSepPattern = regexp.MustCompile(`^:?-{3,}:?$`)
)

// rawBlock is one run of same-kind source lines before element building
type rawBlock struct {
	kind  model.ElementKind
	lines []string
	line  int
}

// BuildElements tokenizes a section's normalized content lines into typed
// elements. line is the 1-indexed input line of lines[0]. Adjacent blocks of
// the same kind merge into one element unless a blank line separates them;
// blocks of differing kinds separate on their own.
func BuildElements(lines []string, line int) ([]model.Element, []model.Warning, error) {
	blocks := scanBlocks(lines, line)

	var elements []model.Element
	var warnings []model.Warning
	for _, b := range blocks {
		el, w, err := buildElement(b)
		warnings = append(warnings, w...)
		if err != nil {
			if ve, ok := err.(*ValidationError); ok && ve.Line == 0 {
				ve.Line = b.line
			}
			return nil, warnings, err
		}
		if el != nil {
			elements = append(elements, el)
		}
	}
	return elements, warnings, nil
}

// scanBlocks groups source lines into raw blocks, applying the blank-line
// merge rule. Fenced code and images never merge; their boundaries are the
// fence itself or the single source line.
func scanBlocks(lines []string, start int) []rawBlock {
	var blocks []rawBlock
	blankSince := true

	push := func(kind model.ElementKind, line int, text string) {
		if !blankSince && len(blocks) > 0 && mergeable(kind) {
			last := &blocks[len(blocks)-1]
			if last.kind == kind {
				last.lines = append(last.lines, text)
				return
			}
		}
		blocks = append(blocks, rawBlock{kind: kind, lines: []string{text}, line: line})
		blankSince = false
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		lineNo := start + i
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			blankSince = true
			i++
		case isFenceOpen(trimmed):
			block := rawBlock{kind: model.ElementCode, line: lineNo, lines: []string{line}}
			var fence fenceState
			fence.observe(line)
			i++
			for i < len(lines) {
				block.lines = append(block.lines, lines[i])
				fence.observe(lines[i])
				i++
				if !fence.inFence() {
					break
				}
			}
			blocks = append(blocks, block)
			blankSince = false
		case imageLine(line):
			blocks = append(blocks, rawBlock{kind: model.ElementImage, line: lineNo, lines: []string{line}})
			blankSince = false
			i++
		case strings.HasPrefix(trimmed, "|"):
			push(model.ElementTable, lineNo, line)
			i++
		case headingPattern.MatchString(trimmed):
			push(model.ElementHeading, lineNo, trimmed)
			i++
		case listItemPattern.MatchString(line):
			push(model.ElementList, lineNo, line)
			i++
		case strings.HasPrefix(trimmed, ">"):
			push(model.ElementQuote, lineNo, trimmed)
			i++
		default:
			// A non-item line directly after a list is item continuation
			if !blankSince && len(blocks) > 0 && blocks[len(blocks)-1].kind == model.ElementList {
				last := &blocks[len(blocks)-1]
				last.lines = append(last.lines, line)
				i++
				continue
			}
			push(model.ElementText, lineNo, trimmed)
			i++
		}
	}
	return blocks
}

// mergeable reports whether the blank-line merge rule applies to a kind
func mergeable(kind model.ElementKind) bool {
	switch kind {
	case model.ElementText, model.ElementHeading, model.ElementList,
		model.ElementQuote, model.ElementTable:
		return true
	}
	return false
}

func isFenceOpen(trimmed string) bool {
	_, n := fenceRun(trimmed)
	return n >= 3
}

// imageLine reports whether a line is a standalone image reference,
// optionally followed by directive brackets
func imageLine(line string) bool {
	text, _ := TrimTrailingDirectives(line)
	return imagePattern.MatchString(strings.TrimSpace(text))
}

func buildElement(b rawBlock) (model.Element, []model.Warning, error) {
	switch b.kind {
	case model.ElementText:
		return buildText(b)
	case model.ElementHeading:
		return buildHeading(b)
	case model.ElementList:
		return buildList(b)
	case model.ElementTable:
		return buildTable(b)
	case model.ElementImage:
		return buildImage(b)
	case model.ElementCode:
		return buildCode(b)
	case model.ElementQuote:
		return buildQuote(b)
	}
	return nil, nil, nil
}

// firstLineDirectives strips the directive suffix off a block's first line
// and returns the parsed record with the remaining lines.
func firstLineDirectives(lines []string) ([]string, model.Directives, []model.Warning, error) {
	text, dirSrc := TrimTrailingDirectives(lines[0])
	if dirSrc == "" {
		return lines, model.Directives{}, nil, nil
	}
	dir, warnings, err := ParseDirectiveString(dirSrc)
	if err != nil {
		return nil, model.Directives{}, warnings, err
	}
	out := append([]string{text}, lines[1:]...)
	return out, dir, warnings, nil
}

func buildText(b rawBlock) (model.Element, []model.Warning, error) {
	lines, dir, warnings, err := firstLineDirectives(b.lines)
	if err != nil {
		return nil, warnings, err
	}
	content, spans := parseInline(strings.Join(lines, "\n"))
	return &model.Text{Content: content, Spans: spans, Dir: dir}, warnings, nil
}

// buildHeading merges a run of heading lines into one element that keeps
// the first line's level
func buildHeading(b rawBlock) (model.Element, []model.Warning, error) {
	lines, dir, warnings, err := firstLineDirectives(b.lines)
	if err != nil {
		return nil, warnings, err
	}
	level := 1
	parts := make([]string, 0, len(lines))
	for i, line := range lines {
		m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			parts = append(parts, strings.TrimSpace(line))
			continue
		}
		if i == 0 {
			level = len(m[1])
		}
		parts = append(parts, m[2])
	}
	content, spans := parseInline(strings.Join(parts, "\n"))
	return &model.Heading{Level: level, Content: content, Spans: spans, Dir: dir}, warnings, nil
}

func buildList(b rawBlock) (model.Element, []model.Warning, error) {
	lines, dir, warnings, err := firstLineDirectives(b.lines)
	if err != nil {
		return nil, warnings, err
	}
	list := &model.List{Dir: dir}
	for i, line := range lines {
		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			// Continuation line: folds into the previous item
			if n := len(list.Items); n > 0 {
				item := &list.Items[n-1]
				content, spans := parseInline(item.Content + "\n" + strings.TrimSpace(line))
				item.Content, item.Spans = content, spans
			}
			continue
		}
		if i == 0 {
			list.Ordered = m[2] != "-" && m[2] != "*" && m[2] != "+"
		}
		content, spans := parseInline(m[3])
		list.Items = append(list.Items, model.ListItem{
			Content: content,
			Spans:   spans,
			Level:   len(strings.ReplaceAll(m[1], "\t", "  ")) / 2,
		})
	}
	return list, warnings, nil
}

// buildTable consumes the trailing directive column: its header cell is
// dropped, each body cell parses as that row's directives, and the first
// body row's record doubles as the header row's style.
func buildTable(b rawBlock) (model.Element, []model.Warning, error) {
	lines, dir, warnings, err := firstLineDirectives(b.lines)
	if err != nil {
		return nil, warnings, err
	}
	table := &model.Table{Dir: dir}

	headerSeen := false
	for _, line := range lines {
		cells := splitTableRow(line)
		if cells == nil {
			continue
		}
		if isSeparatorRow(cells) {
			continue
		}
		if !headerSeen {
			headerSeen = true
			for _, c := range dropDirectiveColumn(cells) {
				content, spans := parseInline(c)
				table.Headers = append(table.Headers, model.TableCell{Content: content, Spans: spans})
			}
			continue
		}
		row := model.TableRow{}
		rendered := dropDirectiveColumn(cells)
		for _, c := range rendered {
			content, spans := parseInline(c)
			row.Cells = append(row.Cells, model.TableCell{Content: content, Spans: spans})
		}
		if dirCell := strings.TrimSpace(cells[len(cells)-1]); dirCell != "" {
			rowDir, w, err := ParseDirectiveString(dirCell)
			warnings = append(warnings, w...)
			if err != nil {
				return nil, warnings, err
			}
			row.Dir = rowDir
		}
		if len(table.Rows) == 0 {
			table.HeaderDir = row.Dir.Clone()
		}
		table.Rows = append(table.Rows, row)
	}
	return table, warnings, nil
}

// splitTableRow splits a pipe-delimited row into raw cell strings
func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if c == "" {
			continue
		}
		if !tableSepPattern.MatchString(c) {
			return false
		}
	}
	return true
}

// dropDirectiveColumn removes the table's always-present trailing
// directive column
func dropDirectiveColumn(cells []string) []string {
	if len(cells) <= 1 {
		return nil
	}
	return cells[:len(cells)-1]
}

func buildImage(b rawBlock) (model.Element, []model.Warning, error) {
	text, dirSrc := TrimTrailingDirectives(b.lines[0])
	var dir model.Directives
	var warnings []model.Warning
	if dirSrc != "" {
		var err error
		dir, warnings, err = ParseDirectiveString(dirSrc)
		if err != nil {
			return nil, warnings, err
		}
	}
	m := imagePattern.FindStringSubmatch(strings.TrimSpace(text))
	img := &model.Image{Alt: m[1], URL: m[2], Fill: dir.Fill, Dir: dir}

	if !img.Fill && (dir.Width == nil || dir.Height == nil) {
		return nil, warnings, validationErrorf(b.line, "image",
			"image needs both width and height directives, or the fill flag")
	}
	return img, warnings, nil
}

func buildCode(b rawBlock) (model.Element, []model.Warning, error) {
	info, dirSrc := TrimTrailingDirectives(b.lines[0])
	var dir model.Directives
	var warnings []model.Warning
	if dirSrc != "" {
		var err error
		dir, warnings, err = ParseDirectiveString(dirSrc)
		if err != nil {
			return nil, warnings, err
		}
	}
	trimmed := strings.TrimSpace(info)
	ch, n := fenceRun(trimmed)
	language := strings.TrimSpace(trimmed[n:])

	body := b.lines[1:]
	// Drop the closing fence when present
	if len(body) > 0 {
		if c, cn := fenceRun(strings.TrimSpace(body[len(body)-1])); c == ch && cn >= 3 {
			body = body[:len(body)-1]
		}
	}
	return &model.Code{Language: language, Content: strings.Join(body, "\n"), Dir: dir}, warnings, nil
}

func buildQuote(b rawBlock) (model.Element, []model.Warning, error) {
	lines, dir, warnings, err := firstLineDirectives(b.lines)
	if err != nil {
		return nil, warnings, err
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		t := strings.TrimSpace(line)
		t = strings.TrimPrefix(t, ">")
		parts = append(parts, strings.TrimPrefix(t, " "))
	}
	content, spans := parseInline(strings.Join(parts, "\n"))
	return &model.Quote{Content: content, Spans: spans, Dir: dir}, warnings, nil
}
