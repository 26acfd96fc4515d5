package parser

import (
	"strings"

	"github.com/tsawler/deckdown/model"
)

// SlideSource is one slide's raw material after splitting: the body text
// with notes, footer, and slide-base directives already peeled off.
type SlideSource struct {
	// Origin is the zero-based index of the slide in the input
	Origin int
	// Line is the 1-indexed input line where the slide body starts
	Line int

	Body       string
	Footer     string
	FooterLine int
	Notes      string
	Base       model.Directives
	Background *model.Background
}

// SplitSlides splits raw markdown into per-slide sources. Slides are
// separated by lines of three or more "=" characters; separators inside
// fenced code blocks are content. Within each slide a line of three or
// more "@" characters starts the footer. Speaker-note comments are removed
// from the body, and leading directive-only lines become the slide base.
func SplitSlides(input string) ([]*SlideSource, []model.Warning, error) {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")

	type chunk struct {
		start int // 1-indexed first line
		lines []string
	}
	chunks := []chunk{{start: 1}}

	var fence fenceState
	for i, line := range lines {
		if !fence.inFence() && isSeparator(line, '=') {
			chunks = append(chunks, chunk{start: i + 2})
			continue
		}
		fence.observe(line)
		cur := &chunks[len(chunks)-1]
		cur.lines = append(cur.lines, line)
	}

	var sources []*SlideSource
	var warnings []model.Warning
	for _, c := range chunks {
		if strings.TrimSpace(strings.Join(c.lines, "\n")) == "" {
			continue
		}
		src, w, err := buildSource(c.lines, c.start)
		if err != nil {
			return nil, warnings, err
		}
		src.Origin = len(sources)
		for i := range w {
			w[i].Slide = src.Origin
		}
		warnings = append(warnings, w...)
		sources = append(sources, src)
	}
	return sources, warnings, nil
}

// buildSource peels notes, footer, and base directives off one slide chunk
func buildSource(lines []string, start int) (*SlideSource, []model.Warning, error) {
	src := &SlideSource{Line: start}
	var warnings []model.Warning

	// Notes comments may sit anywhere in the slide, footer included
	body, notes := ExtractNotes(strings.Join(lines, "\n"))
	src.Notes = notes
	lines = strings.Split(body, "\n")

	// Footer split, code-fence aware
	var fence fenceState
	bodyLines := lines
	for i, line := range lines {
		if !fence.inFence() && isSeparator(line, '@') {
			bodyLines = lines[:i]
			src.Footer = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			src.FooterLine = start + i + 1
			break
		}
		fence.observe(line)
	}

	// Leading directive-only lines form the slide base
	idx := 0
	for idx < len(bodyLines) {
		line := bodyLines[idx]
		if strings.TrimSpace(line) == "" {
			idx++
			continue
		}
		if !IsDirectiveLine(line) {
			break
		}
		d, w, err := ParseDirectiveString(line)
		if err != nil {
			if ve, ok := err.(*ValidationError); ok && ve.Line == 0 {
				ve.Line = start + idx
			}
			return nil, warnings, err
		}
		warnings = append(warnings, w...)
		mergeBase(&src.Base, d)
		idx++
	}
	src.Body = strings.Join(bodyLines[idx:], "\n")
	src.Line = start + idx

	// A background directive at slide level is the slide's background, not
	// part of the inheritable base
	if src.Base.Background != nil {
		src.Background = src.Base.Background
		src.Base.Background = nil
	}
	return src, warnings, nil
}

// mergeBase overlays later base-line directives onto earlier ones
func mergeBase(dst *model.Directives, src model.Directives) {
	if src.Width != nil {
		dst.Width = src.Width
	}
	if src.Height != nil {
		dst.Height = src.Height
	}
	if src.Padding != nil {
		dst.Padding = src.Padding
	}
	if src.Margin != nil {
		dst.Margin = src.Margin
	}
	if src.Gap != nil {
		dst.Gap = src.Gap
	}
	if src.Align != model.AlignDefault {
		dst.Align = src.Align
	}
	if src.VAlign != model.VAlignDefault {
		dst.VAlign = src.VAlign
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.Background != nil {
		dst.Background = src.Background
	}
	if src.Border != nil {
		dst.Border = src.Border
	}
	if src.FontSize != nil {
		dst.FontSize = src.FontSize
	}
	if src.Bold {
		dst.Bold = true
	}
	if src.Italic {
		dst.Italic = true
	}
	if src.Fill {
		dst.Fill = true
	}
}

// isSeparator reports whether a line is three or more of ch and nothing else
func isSeparator(line string, ch byte) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ch {
			return false
		}
	}
	return true
}

// fenceState tracks whether the scanner is inside a fenced code block.
// Fences open with three or more backticks or tildes and close with a
// fence of the same character at least as long as the opener.
type fenceState struct {
	open bool
	char byte
	size int
}

func (f *fenceState) inFence() bool { return f.open }

func (f *fenceState) observe(line string) {
	trimmed := strings.TrimSpace(line)
	ch, n := fenceRun(trimmed)
	if n < 3 {
		return
	}
	if !f.open {
		f.open = true
		f.char = ch
		f.size = n
		return
	}
	// A closing fence carries no info string
	if ch == f.char && n >= f.size && strings.TrimRight(trimmed, string(ch)) == "" {
		f.open = false
	}
}

// fenceRun returns the leading fence character and its run length
func fenceRun(s string) (byte, int) {
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return 0, 0
	}
	ch := s[0]
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return ch, n
}
