// Package deckdown provides a fluent API for converting annotated markdown
// into fully positioned slide decks.
//
// Basic usage:
//
//	deck, warnings, err := deckdown.Parse(source).Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", deckdown.FormatWarnings(warnings))
//	}
//
// With options:
//
//	deck, _, err := deckdown.Open("talk.md").
//	    Canvas(model.CanvasConfig{Width: 960, Height: 540}).
//	    Workers(4).
//	    Convert(ctx)
//
// For advanced use cases, the lower-level parser, layout, and overflow
// packages are also available.
package deckdown

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	canvas := deckdown.Must(deckdown.LoadCanvasFile("canvas.yaml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDeck is a helper that wraps a call to Convert() and panics if the
// error is non-nil. It discards warnings and returns just the deck.
//
// Example:
//
//	deck := deckdown.MustDeck(deckdown.Parse(src).Convert(ctx))
func MustDeck[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Parse creates a Converter over in-memory markdown source.
//
// Example:
//
//	deck, warnings, err := deckdown.Parse(source).Convert(ctx)
func Parse(source string) *Converter {
	return &Converter{
		source:    source,
		hasSource: true,
		options:   defaultOptions(),
	}
}

// Open creates a Converter that reads markdown from a file when a terminal
// operation runs.
//
// Example:
//
//	deck, warnings, err := deckdown.Open("talk.md").Convert(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}
