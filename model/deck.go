package model

// Deck represents a complete converted presentation. A deck is created once
// per conversion run and is immutable once layout completes.
type Deck struct {
	Slides []*Slide
}

// NewDeck creates a new empty deck
func NewDeck() *Deck {
	return &Deck{Slides: make([]*Slide, 0)}
}

// AddSlide appends a slide and assigns its final index
func (d *Deck) AddSlide(s *Slide) {
	s.Index = len(d.Slides)
	d.Slides = append(d.Slides, s)
}

// SlideCount returns the total number of slides, continuations included
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// Continuations returns all continuation slides generated by the overflow
// handler
func (d *Deck) Continuations() []*Slide {
	var out []*Slide
	for _, s := range d.Slides {
		if s.Continuation {
			out = append(out, s)
		}
	}
	return out
}

// Slide is a single rendering unit.
type Slide struct {
	// Index is the slide's position in the final deck, continuations
	// included; assigned during deck assembly.
	Index int
	// Origin is the index of the source slide in the input markdown. A
	// continuation slide shares its origin's value.
	Origin int
	// Continuation is true for slides created by the overflow handler.
	Continuation bool

	Background *Background
	// Footer is the optional footer subtree, repeated on continuations
	Footer *Section
	// Notes is the speaker-notes text; continuations do not repeat it
	Notes string
	// Base is the slide-base directive layer: directives declared at the
	// very top of the slide body, outside any fence
	Base Directives

	Blocks []Block
}

// NewSlide creates an empty slide for the given source index
func NewSlide(origin int) *Slide {
	return &Slide{Origin: origin}
}

// Sections returns the slide's top-level sections in order, skipping rows
func (s *Slide) Sections() []*Section {
	var out []*Section
	for _, b := range s.Blocks {
		if sec, ok := b.(*Section); ok {
			out = append(out, sec)
		}
	}
	return out
}

// Continue creates an empty continuation slide inheriting the slide's
// background, footer, and slide-base directives. Notes stay on the origin.
func (s *Slide) Continue() *Slide {
	cont := &Slide{
		Origin:       s.Origin,
		Continuation: true,
		Base:         s.Base.Clone(),
	}
	if s.Background != nil {
		bg := *s.Background
		cont.Background = &bg
	}
	if s.Footer != nil {
		cont.Footer = CloneSection(s.Footer)
	}
	return cont
}
