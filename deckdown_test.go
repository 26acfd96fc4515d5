package deckdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/deckdown/model"
)

// ============================================================================
// Converter Chain Tests
// ============================================================================

func TestConverterChainIsImmutable(t *testing.T) {
	base := Parse(":::section\nA\n:::")
	tuned := base.Workers(1).ProbeImages(false)

	if base == tuned {
		t.Fatal("chain methods must return a new Converter")
	}
	if base.options.workers == 1 && defaultOptions().workers != 1 {
		t.Error("Workers mutated the original Converter")
	}
	if !base.options.probeImages {
		t.Error("ProbeImages mutated the original Converter")
	}
}

func TestConverterInvalidCanvasFailsFast(t *testing.T) {
	bad := model.CanvasConfig{Width: 10, Height: 10,
		Margins: model.Margins{Top: 20, Bottom: 20, Left: 20, Right: 20}}
	_, _, err := Parse(":::section\nA\n:::").Canvas(bad).Convert(context.Background())
	if err == nil {
		t.Fatal("invalid canvas must fail the conversion")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open("no/such/file.md").Convert(context.Background())
	if err == nil {
		t.Fatal("missing input file must fail")
	}
}

// ============================================================================
// Conversion Tests
// ============================================================================

func TestConvertTwoSlides(t *testing.T) {
	src := `:::section
# Welcome
Intro text
:::
===
:::row
:::column
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
	deck, warnings, err := Parse(src).Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", FormatWarnings(warnings))
	}
	if deck.SlideCount() != 2 {
		t.Fatalf("got %d slides, want 2", deck.SlideCount())
	}
	for i, s := range deck.Slides {
		if s.Index != i {
			t.Errorf("slide %d has Index %d", i, s.Index)
		}
	}
	if _, ok := deck.Slides[1].Blocks[0].(*model.Row); !ok {
		t.Errorf("slide 1 block is %T, want *model.Row", deck.Slides[1].Blocks[0])
	}
}

func TestConvertContinuationsFollowOrigin(t *testing.T) {
	src := `:::section
aaa [height=200]

bbb [height=200]

ccc [height=200]
:::
===
:::section
second slide
:::`
	deck, _, err := Parse(src).Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if deck.SlideCount() != 3 {
		t.Fatalf("got %d slides, want origin + continuation + second", deck.SlideCount())
	}
	if deck.Slides[0].Origin != 0 || deck.Slides[0].Continuation {
		t.Errorf("slide 0 = origin %d cont %v", deck.Slides[0].Origin, deck.Slides[0].Continuation)
	}
	if deck.Slides[1].Origin != 0 || !deck.Slides[1].Continuation {
		t.Error("slide 1 must be the continuation of source slide 0")
	}
	if deck.Slides[2].Origin != 1 || deck.Slides[2].Continuation {
		t.Error("slide 2 must be source slide 1, after the continuation")
	}
	if len(deck.Continuations()) != 1 {
		t.Errorf("Continuations() = %d, want 1", len(deck.Continuations()))
	}
}

func TestConvertIsolatesFailingSlide(t *testing.T) {
	src := `:::section
good
:::
===
content outside any section
===
:::section
also good
:::`
	deck, _, err := Parse(src).Convert(context.Background())
	if err == nil {
		t.Fatal("structural error on slide 1 must surface")
	}
	var slideErr *SlideError
	if !errors.As(err, &slideErr) {
		t.Fatalf("error %v does not wrap a SlideError", err)
	}
	if slideErr.Slide != 1 {
		t.Errorf("failed slide = %d, want 1", slideErr.Slide)
	}
	if deck == nil || deck.SlideCount() != 2 {
		t.Fatalf("best-effort deck has %d slides, want the 2 good ones", deck.SlideCount())
	}
}

func TestConvertWarningsCarrySlideIndex(t *testing.T) {
	src := `:::section
A
:::
===
:::section [wibble=1]
B
:::`
	_, warnings, err := Parse(src).Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if warnings[0].Slide != 1 {
		t.Errorf("warning slide = %d, want 1", warnings[0].Slide)
	}
}

func TestConvertNotesAndFooter(t *testing.T) {
	src := `[align=center]
:::section
A
:::
<!-- notes: say hello -->
@@@
the footer`
	deck, _, err := Parse(src).Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	s := deck.Slides[0]
	if s.Notes != "say hello" {
		t.Errorf("Notes = %q", s.Notes)
	}
	if s.Footer == nil || s.Footer.Box.IsZero() {
		t.Error("footer missing or not laid out")
	}
	if s.Base.Align != model.AlignCenter {
		t.Errorf("Base.Align = %v, want center", s.Base.Align)
	}
}

func TestConvertParallelMatchesSerial(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteString("\n===\n")
		}
		b.WriteString(":::section\nslide content\n:::")
	}
	src := b.String()

	serial, _, err := Parse(src).Workers(1).Convert(context.Background())
	if err != nil {
		t.Fatalf("serial Convert: %v", err)
	}
	parallel, _, err := Parse(src).Workers(8).Convert(context.Background())
	if err != nil {
		t.Fatalf("parallel Convert: %v", err)
	}
	if serial.SlideCount() != parallel.SlideCount() {
		t.Fatalf("slide counts differ: %d vs %d", serial.SlideCount(), parallel.SlideCount())
	}
	for i := range serial.Slides {
		if serial.Slides[i].Origin != parallel.Slides[i].Origin {
			t.Errorf("slide %d origin differs between serial and parallel runs", i)
		}
	}
}

func TestJSONExport(t *testing.T) {
	data, _, err := Parse(":::section\nhello\n:::").JSON(context.Background())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"kind": "section"`, `"kind": "text"`, `"Slides"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %q", want)
		}
	}
}

// ============================================================================
// Canvas Config Tests
// ============================================================================

func TestParseCanvas(t *testing.T) {
	canvas, err := ParseCanvas([]byte("width: 960\nheight: 540\nmargins:\n  top: 60\n"))
	if err != nil {
		t.Fatalf("ParseCanvas: %v", err)
	}
	if canvas.Width != 960 || canvas.Height != 540 {
		t.Errorf("canvas = %+v", canvas)
	}
	if canvas.Margins.Top != 60 {
		t.Errorf("margins.top = %v, want 60", canvas.Margins.Top)
	}
	// omitted margins keep their defaults
	if canvas.Margins.Left != 50 {
		t.Errorf("margins.left = %v, want default 50", canvas.Margins.Left)
	}
}

func TestParseCanvasRejectsDegenerate(t *testing.T) {
	if _, err := ParseCanvas([]byte("width: 10\nheight: 10\n")); err == nil {
		t.Fatal("degenerate canvas must be rejected")
	}
}
