package parser

import (
	"strings"
	"testing"

	"github.com/tsawler/deckdown/model"
)

// ============================================================================
// Directive Tests
// ============================================================================

func TestTrimTrailingDirectives(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantText string
		wantDirs string
	}{
		{"no directives", "plain text", "plain text", ""},
		{"one directive", "text [width=100]", "text", " [width=100]"},
		{"two directives", "text [width=100][align=center]", "text", " [width=100][align=center]"},
		{"flag directive", "text [bold]", "text", " [bold]"},
		{"markdown link kept", "see [docs](https://x.test)", "see [docs](https://x.test)", ""},
		{"link then directive", "see [docs](https://x.test) [bold]", "see [docs](https://x.test)", " [bold]"},
		{"mid-line bracket kept", "a [note] b", "a [note] b", ""},
		{"directives only", "[width=100]", "", "[width=100]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, dirs := TrimTrailingDirectives(tt.line)
			if text != tt.wantText || dirs != tt.wantDirs {
				t.Errorf("TrimTrailingDirectives(%q) = (%q, %q), want (%q, %q)",
					tt.line, text, dirs, tt.wantText, tt.wantDirs)
			}
		})
	}
}

func TestParseDirectiveStringDimensions(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		parent float64
		want   float64
	}{
		{"points", "[width=300]", 600, 300},
		{"percent", "[width=50%]", 600, 300},
		{"fraction", "[width=1/2]", 600, 300},
		{"third", "[width=1/3]", 600, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, err := ParseDirectiveString(tt.src)
			if err != nil {
				t.Fatalf("ParseDirectiveString(%q) error: %v", tt.src, err)
			}
			if d.Width == nil {
				t.Fatalf("Width not set for %q", tt.src)
			}
			if got := d.Width.Resolve(tt.parent); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}
}

func TestParseDirectiveStringValues(t *testing.T) {
	d, warnings, err := ParseDirectiveString("[padding=10,20][color=#ff0000][align=center][valign=middle][bold][fontsize=18]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if d.Padding == nil || d.Padding.Top != 10 || d.Padding.Left != 20 {
		t.Errorf("Padding = %+v, want top 10 left 20", d.Padding)
	}
	if d.Color == nil || (*d.Color != model.Color{R: 0xff}) {
		t.Errorf("Color = %+v, want red", d.Color)
	}
	if d.Align != model.AlignCenter {
		t.Errorf("Align = %v, want center", d.Align)
	}
	if d.VAlign != model.VAlignMiddle {
		t.Errorf("VAlign = %v, want middle", d.VAlign)
	}
	if !d.Bold {
		t.Error("Bold not set")
	}
	if d.FontSize == nil || *d.FontSize != 18 {
		t.Errorf("FontSize = %v, want 18", d.FontSize)
	}
}

func TestParseDirectiveStringBackground(t *testing.T) {
	d, _, err := ParseDirectiveString("[background=url(https://x.test/bg.png)]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Background == nil || d.Background.Kind != model.BackgroundImage || d.Background.URL != "https://x.test/bg.png" {
		t.Errorf("Background = %+v, want image url", d.Background)
	}

	d, _, err = ParseDirectiveString("[background=navy]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Background == nil || d.Background.Kind != model.BackgroundColor || d.Background.Color.B != 0x80 {
		t.Errorf("Background = %+v, want navy color", d.Background)
	}
}

func TestParseDirectiveStringUnknownKey(t *testing.T) {
	d, warnings, err := ParseDirectiveString("[wobble=3][width=100]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "wobble") {
		t.Errorf("warnings = %v, want one unknown-directive warning", warnings)
	}
	if d.Width == nil {
		t.Error("known directive dropped alongside unknown one")
	}
}

func TestParseDirectiveStringMalformed(t *testing.T) {
	tests := []string{
		"[width=abc]",
		"[width=1/0]",
		"[color=notacolor]",
		"[align=sideways]",
		"[padding=1,2,3]",
		"[bold=yes]",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, _, err := ParseDirectiveString(src); err == nil {
				t.Errorf("ParseDirectiveString(%q) succeeded, want validation error", src)
			}
		})
	}
}

func TestIsDirectiveLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"[align=center]", true},
		{"[align=center][fontsize=20]", true},
		{"  [bold]  ", true},
		{"text [bold]", false},
		{"[bold] text", false},
		{"plain", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDirectiveLine(tt.line); got != tt.want {
			t.Errorf("IsDirectiveLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// ============================================================================
// Splitter Tests
// ============================================================================

func TestSplitSlidesSeparators(t *testing.T) {
	input := ":::section\nA\n:::\n===\n:::section\nB\n:::\n====\n:::section\nC\n:::"
	sources, _, err := SplitSlides(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("got %d slides, want 3", len(sources))
	}
	for i, s := range sources {
		if s.Origin != i {
			t.Errorf("slide %d Origin = %d", i, s.Origin)
		}
	}
}

func TestSplitSlidesSeparatorInsideCodeFence(t *testing.T) {
	input := ":::section\n~~~\n===\n~~~\n:::"
	sources, _, err := SplitSlides(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d slides, want 1: separator inside code fence is content", len(sources))
	}
	if !strings.Contains(sources[0].Body, "===") {
		t.Error("fenced separator lost from body")
	}
}

func TestSplitSlidesSkipsEmptyChunks(t *testing.T) {
	sources, _, err := SplitSlides("===\n\n===\n:::section\nA\n:::\n===")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d slides, want 1", len(sources))
	}
}

func TestSplitSlidesFooterAndNotes(t *testing.T) {
	input := ":::section\nA\n:::\n<!-- notes: remember the demo -->\n@@@\nPage footer\n===\n:::section\nB\n:::"
	sources, _, err := SplitSlides(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d slides, want 2", len(sources))
	}
	if sources[0].Notes != "remember the demo" {
		t.Errorf("Notes = %q", sources[0].Notes)
	}
	if sources[0].Footer != "Page footer" {
		t.Errorf("Footer = %q", sources[0].Footer)
	}
	if sources[1].Footer != "" || sources[1].Notes != "" {
		t.Error("footer or notes leaked into the next slide")
	}
}

func TestSplitSlidesBaseDirectives(t *testing.T) {
	input := "[align=center]\n[fontsize=20][background=#336699]\n:::section\nA\n:::"
	sources, _, err := SplitSlides(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := sources[0]
	if src.Base.Align != model.AlignCenter {
		t.Errorf("Base.Align = %v, want center", src.Base.Align)
	}
	if src.Base.FontSize == nil || *src.Base.FontSize != 20 {
		t.Errorf("Base.FontSize = %v, want 20", src.Base.FontSize)
	}
	if src.Background == nil || src.Background.Color.R != 0x33 {
		t.Errorf("Background = %+v, want #336699", src.Background)
	}
	if src.Base.Background != nil {
		t.Error("background stayed in the base layer")
	}
	if strings.Contains(src.Body, "align=center") {
		t.Error("base directive line leaked into body")
	}
}

// ============================================================================
// Notes Extraction Tests
// ============================================================================

func TestExtractNotes(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantBody  string
		wantNotes string
	}{
		{"basic", "A\n<!-- notes: hello -->\nB", "A\nB", "hello"},
		{"case insensitive", "<!-- NOTES: hi -->", "", "hi"},
		{"other comment kept", "A\n<!-- keep me -->\nB", "A\n<!-- keep me -->\nB", ""},
		{"no comment", "A\nB", "A\nB", ""},
		{"multiline note", "A\n<!-- notes: one\ntwo -->\nB", "A\nB", "one\ntwo"},
		{"inline remainder kept", "A <!-- notes: n --> B", "A  B", "n"},
		{"inside code fence kept", "~~~\n<!-- notes: x -->\n~~~", "~~~\n<!-- notes: x -->\n~~~", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, notes := ExtractNotes(tt.src)
			if body != tt.wantBody || notes != tt.wantNotes {
				t.Errorf("ExtractNotes(%q) = (%q, %q), want (%q, %q)",
					tt.src, body, notes, tt.wantBody, tt.wantNotes)
			}
		})
	}
}

// ============================================================================
// Element Builder Tests
// ============================================================================

func TestBlankLineMergeLaw(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"adjacent paragraphs merge", []string{"a.", "b."}, 1},
		{"blank line splits paragraphs", []string{"a.", "", "b."}, 2},
		{"adjacent headings merge", []string{"# One", "## Two"}, 1},
		{"blank line splits headings", []string{"# One", "", "# Two"}, 2},
		{"differing types self-separate", []string{"# Title", "body text"}, 2},
		{"list then paragraph after blank", []string{"- a", "- b", "", "text"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			els, _, err := BuildElements(tt.lines, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(els) != tt.want {
				t.Errorf("got %d elements, want %d", len(els), tt.want)
			}
		})
	}
}

func TestMergedHeadingKeepsFirstLevel(t *testing.T) {
	els, _, err := BuildElements([]string{"## One", "# Two"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, ok := els[0].(*model.Heading)
	if !ok {
		t.Fatalf("got %T, want *model.Heading", els[0])
	}
	if h.Level != 2 {
		t.Errorf("Level = %d, want 2 (first line's level)", h.Level)
	}
	if h.Content != "One\nTwo" {
		t.Errorf("Content = %q", h.Content)
	}
}

func TestBuildList(t *testing.T) {
	els, _, err := BuildElements([]string{"- top", "  - nested", "- back"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := els[0].(*model.List)
	if !ok {
		t.Fatalf("got %T, want *model.List", els[0])
	}
	if list.Ordered {
		t.Error("Ordered = true for dash list")
	}
	if len(list.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(list.Items))
	}
	if list.Items[0].Level != 0 || list.Items[1].Level != 1 || list.Items[2].Level != 0 {
		t.Errorf("levels = %d,%d,%d, want 0,1,0",
			list.Items[0].Level, list.Items[1].Level, list.Items[2].Level)
	}

	els, _, err = BuildElements([]string{"1. one", "2. two"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list := els[0].(*model.List); !list.Ordered {
		t.Error("Ordered = false for numbered list")
	}
}

func TestBuildTableDirectiveColumn(t *testing.T) {
	lines := []string{
		"| Name | Age | |",
		"|------|-----|---|",
		"| Bob  | 42  | [bold] |",
		"| Ann  | 35  | |",
	}
	els, _, err := BuildElements(lines, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, ok := els[0].(*model.Table)
	if !ok {
		t.Fatalf("got %T, want *model.Table", els[0])
	}
	if len(table.Headers) != 2 {
		t.Fatalf("got %d headers, want 2: directive column must be dropped", len(table.Headers))
	}
	if len(table.Rows) != 2 || len(table.Rows[0].Cells) != 2 {
		t.Fatalf("rows = %d, want 2 rows of 2 cells", len(table.Rows))
	}
	if !table.Rows[0].Dir.Bold {
		t.Error("first row's directive cell not applied")
	}
	if !table.HeaderDir.Bold {
		t.Error("header style must come from the first data row's directives")
	}
	if table.Rows[1].Dir.Bold {
		t.Error("empty directive cell styled its row")
	}
}

func TestBuildImageValidation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
	}{
		{"both dimensions", "![x](u) [width=10][height=20]", false},
		{"missing height", "![x](u) [width=10]", true},
		{"no dimensions", "![x](u)", true},
		{"fill flag", "![x](u) [fill]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			els, _, err := BuildElements([]string{tt.line}, 1)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want validation error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			img := els[0].(*model.Image)
			if img.URL != "u" || img.Alt != "x" {
				t.Errorf("Image = %+v", img)
			}
		})
	}
}

func TestBuildCodeVerbatim(t *testing.T) {
	lines := []string{"~~~go", "x := 1", "", "  :::", "~~~"}
	els, _, err := BuildElements(lines, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code, ok := els[0].(*model.Code)
	if !ok {
		t.Fatalf("got %T, want *model.Code", els[0])
	}
	if code.Language != "go" {
		t.Errorf("Language = %q, want go", code.Language)
	}
	if code.Content != "x := 1\n\n  :::" {
		t.Errorf("Content = %q", code.Content)
	}
}

func TestBuildQuote(t *testing.T) {
	els, _, err := BuildElements([]string{"> to be", "> or not"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, ok := els[0].(*model.Quote)
	if !ok {
		t.Fatalf("got %T, want *model.Quote", els[0])
	}
	if q.Content != "to be\nor not" {
		t.Errorf("Content = %q", q.Content)
	}
}

func TestInlineSpans(t *testing.T) {
	els, _, err := BuildElements([]string{"plain **bold** and *italic* and ~~gone~~ and `code`"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := els[0].(*model.Text)
	if text.Content != "plain bold and italic and gone and code" {
		t.Fatalf("Content = %q", text.Content)
	}
	want := []struct {
		substr string
		check  func(model.Span) bool
	}{
		{"bold", func(s model.Span) bool { return s.Bold }},
		{"italic", func(s model.Span) bool { return s.Italic }},
		{"gone", func(s model.Span) bool { return s.Strike }},
		{"code", func(s model.Span) bool { return s.Code }},
	}
	for _, w := range want {
		start := strings.Index(text.Content, w.substr)
		found := false
		for _, s := range text.Spans {
			if s.Start == start && s.End == start+len(w.substr) && w.check(s) {
				found = true
			}
		}
		if !found {
			t.Errorf("no span covering %q with expected style; spans = %+v", w.substr, text.Spans)
		}
	}
}

func TestInlineLink(t *testing.T) {
	els, _, err := BuildElements([]string{"see [docs](https://x.test) now"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := els[0].(*model.Text)
	if text.Content != "see docs now" {
		t.Fatalf("Content = %q", text.Content)
	}
	if len(text.Spans) != 1 || text.Spans[0].Link != "https://x.test" {
		t.Errorf("Spans = %+v, want one link span", text.Spans)
	}
}

func TestElementDirectives(t *testing.T) {
	els, _, err := BuildElements([]string{"# Title [align=center][color=#00ff00]"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := els[0].(*model.Heading)
	if h.Content != "Title" {
		t.Errorf("Content = %q, want directives stripped", h.Content)
	}
	if h.Dir.Align != model.AlignCenter {
		t.Errorf("Dir.Align = %v, want center", h.Dir.Align)
	}
	if h.Dir.Color == nil || h.Dir.Color.G != 0xff {
		t.Errorf("Dir.Color = %+v, want green", h.Dir.Color)
	}
}

// ============================================================================
// Hierarchy Tests
// ============================================================================

func mustSource(t *testing.T, input string) *SlideSource {
	t.Helper()
	sources, _, err := SplitSlides(input)
	if err != nil {
		t.Fatalf("SplitSlides: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d slides, want 1", len(sources))
	}
	return sources[0]
}

func TestParseSlideTree(t *testing.T) {
	input := `:::section [align=center]
Hello
:::

:::row [gap=20]
:::column [width=1/3]
:::section
Left
:::
:::
:::column
:::section
Right
:::
:::
:::`
	slide, _, err := ParseSlide(mustSource(t, input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slide.Blocks) != 2 {
		t.Fatalf("got %d top-level blocks, want 2", len(slide.Blocks))
	}

	sec, ok := slide.Blocks[0].(*model.Section)
	if !ok {
		t.Fatalf("block 0 is %T, want *model.Section", slide.Blocks[0])
	}
	if sec.Dir.Align != model.AlignCenter {
		t.Errorf("section align = %v, want center", sec.Dir.Align)
	}
	if len(sec.Elements) != 1 {
		t.Fatalf("section has %d elements, want 1", len(sec.Elements))
	}

	row, ok := slide.Blocks[1].(*model.Row)
	if !ok {
		t.Fatalf("block 1 is %T, want *model.Row", slide.Blocks[1])
	}
	if row.Dir.Gap == nil || *row.Dir.Gap != 20 {
		t.Errorf("row gap = %v, want 20", row.Dir.Gap)
	}
	if len(row.Columns) != 2 {
		t.Fatalf("row has %d columns, want 2", len(row.Columns))
	}
	if row.Columns[0].Dir.Width == nil {
		t.Error("first column lost its width directive")
	}
	if len(row.Columns[1].Children) != 1 {
		t.Fatalf("second column has %d children, want 1", len(row.Columns[1].Children))
	}
	if _, ok := row.Columns[1].Children[0].(*model.Section); !ok {
		t.Errorf("column child is %T, want *model.Section", row.Columns[1].Children[0])
	}
}

func TestParseSlideStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"content at top level", "loose text"},
		{"content inside row", ":::row\nloose\n:::"},
		{"content inside column", ":::row\n:::column\nloose\n:::\n:::"},
		{"column outside row", ":::column\n:::"},
		{"section inside row", ":::row\n:::section\n:::\n:::"},
		{"section inside section", ":::section\n:::section\n:::\n:::"},
		{"unclosed section", ":::section\ntext"},
		{"unmatched close", ":::section\ntext\n:::\n:::"},
		{"unknown keyword", ":::panel\n:::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSlide(mustSource(t, tt.input))
			if err == nil {
				t.Fatal("want structural error, got none")
			}
			if _, ok := err.(*StructureError); !ok {
				t.Errorf("got %T (%v), want *StructureError", err, err)
			}
		})
	}
}

func TestParseSlideFenceGuardsClose(t *testing.T) {
	// a ::: line inside a code fence is content, not a close
	src := mustSource(t, ":::section\n~~~\n:::\n~~~\n:::")
	slide, _, err := ParseSlide(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sec := slide.Blocks[0].(*model.Section)
	code, ok := sec.Elements[0].(*model.Code)
	if !ok {
		t.Fatalf("got %T, want *model.Code", sec.Elements[0])
	}
	if code.Content != ":::" {
		t.Errorf("Content = %q, want %q", code.Content, ":::")
	}
}

func TestParseSlideNestedRowInColumn(t *testing.T) {
	input := ":::row\n:::column\n:::row\n:::column\n:::section\ndeep\n:::\n:::\n:::\n:::\n:::"
	slide, _, err := ParseSlide(mustSource(t, input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := slide.Blocks[0].(*model.Row)
	inner, ok := outer.Columns[0].Children[0].(*model.Row)
	if !ok {
		t.Fatalf("column child is %T, want nested *model.Row", outer.Columns[0].Children[0])
	}
	if len(inner.Columns) != 1 {
		t.Errorf("nested row has %d columns, want 1", len(inner.Columns))
	}
}

func TestParseSlideIndentedFences(t *testing.T) {
	input := ":::row\n  :::column\n    :::section\n    indented text\n    :::\n  :::\n:::"
	slide, _, err := ParseSlide(mustSource(t, input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := slide.Blocks[0].(*model.Row)
	sec := row.Columns[0].Children[0].(*model.Section)
	text := sec.Elements[0].(*model.Text)
	if text.Content != "indented text" {
		t.Errorf("Content = %q, want common indent stripped", text.Content)
	}
}

func TestParseSlideFooter(t *testing.T) {
	slide, _, err := ParseSlide(mustSource(t, ":::section\nA\n:::\n@@@\nDeck footer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slide.Footer == nil || len(slide.Footer.Elements) != 1 {
		t.Fatalf("Footer = %+v, want one-element section", slide.Footer)
	}
	if text := slide.Footer.Elements[0].(*model.Text); text.Content != "Deck footer" {
		t.Errorf("footer text = %q", text.Content)
	}
}
