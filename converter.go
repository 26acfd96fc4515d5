package deckdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/deckdown/layout"
	"github.com/tsawler/deckdown/model"
	"github.com/tsawler/deckdown/overflow"
	"github.com/tsawler/deckdown/parser"
)

// Converter provides a fluent interface for converting annotated markdown
// into a positioned deck. Each configuration method returns a new Converter
// instance, making it safe for concurrent use and allowing method chaining.
type Converter struct {
	// Source
	filename  string
	source    string
	hasSource bool

	// Configuration
	options convertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter so each chain method returns a new
// instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:  c.filename,
		source:    c.source,
		hasSource: c.hasSource,
		options:   c.options.clone(),
		err:       c.err,
	}
}

// Canvas sets the slide canvas the deck lays out against.
func (c *Converter) Canvas(canvas model.CanvasConfig) *Converter {
	n := c.clone()
	if !canvas.Valid() {
		n.err = fmt.Errorf("canvas %vx%v leaves no content area inside its margins",
			canvas.Width, canvas.Height)
		return n
	}
	n.options.canvas = canvas
	return n
}

// CanvasFile loads the canvas from a YAML file. Omitted fields keep the
// default canvas values.
func (c *Converter) CanvasFile(path string) *Converter {
	n := c.clone()
	canvas, err := LoadCanvasFile(path)
	if err != nil {
		n.err = err
		return n
	}
	n.options.canvas = canvas
	return n
}

// Workers caps how many slides convert concurrently. Values below one
// reset to the default.
func (c *Converter) Workers(count int) *Converter {
	n := c.clone()
	if count < 1 {
		n.options.workers = defaultOptions().workers
	} else {
		n.options.workers = count
	}
	return n
}

// Measurer replaces the text-height estimation strategy.
func (c *Converter) Measurer(m layout.TextMeasurer) *Converter {
	n := c.clone()
	n.options.measurer = m
	return n
}

// Metrics replaces the per-element-type sizing heuristics.
func (c *Converter) Metrics(cfg layout.MetricsConfig) *Converter {
	n := c.clone()
	n.options.metrics = cfg
	return n
}

// ProbeImages toggles local image header probing, which powers the
// aspect-distortion warnings. Probing never fetches remote URLs.
func (c *Converter) ProbeImages(enabled bool) *Converter {
	n := c.clone()
	n.options.probeImages = enabled
	return n
}

// readSource returns the markdown input, reading the file lazily when the
// Converter was created with Open.
func (c *Converter) readSource() (string, error) {
	if c.hasSource {
		return c.source, nil
	}
	if c.filename == "" {
		return "", errors.New("no markdown source specified")
	}
	data, err := os.ReadFile(c.filename)
	if err != nil {
		return "", fmt.Errorf("reading markdown: %w", err)
	}
	return string(data), nil
}

// Convert runs the whole pipeline: split, parse, layout, and overflow
// handling, with slides converted concurrently and assembled in source
// order (continuations directly after their origin).
//
// The returned deck is best-effort: a slide that fails conversion is
// dropped and reported through the joined error, while the remaining
// slides still convert. Warnings are non-fatal issues keyed by source
// slide index.
func (c *Converter) Convert(ctx context.Context) (*model.Deck, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	src, err := c.readSource()
	if err != nil {
		return nil, nil, err
	}

	sources, warnings, err := parser.SplitSlides(src)
	if err != nil {
		return nil, warnings, err
	}

	engine := layout.NewEngine(layout.Config{
		Canvas:   c.options.canvas,
		Metrics:  c.options.metrics,
		Measurer: c.options.measurer,
		Prober:   c.prober(),
	})
	handler := overflow.NewHandler(engine)

	type result struct {
		slides   []*model.Slide
		warnings []Warning
		err      error
	}
	results := make([]result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.options.workers)
	for i, slideSrc := range sources {
		i, slideSrc := i, slideSrc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i] = func() result {
				slide, w, err := parser.ParseSlide(slideSrc)
				if err != nil {
					return result{warnings: w, err: err}
				}
				lw, err := engine.LayoutSlide(slide)
				w = append(w, lw...)
				if err != nil {
					return result{warnings: w, err: err}
				}
				slides, ow, err := handler.Paginate(slide)
				w = append(w, ow...)
				return result{slides: slides, warnings: w, err: err}
			}()
			return nil
		})
	}
	// Workers report failures through their result slot
	_ = g.Wait()

	deck := model.NewDeck()
	var errs []error
	for i, r := range results {
		for j := range r.warnings {
			if r.warnings[j].Slide < 0 {
				r.warnings[j].Slide = i
			}
		}
		warnings = append(warnings, r.warnings...)
		if r.err != nil {
			errs = append(errs, &model.SlideError{Slide: i, Err: r.err})
			continue
		}
		for _, s := range r.slides {
			deck.AddSlide(s)
		}
	}
	return deck, warnings, errors.Join(errs...)
}

// JSON converts and marshals the deck as indented JSON.
func (c *Converter) JSON(ctx context.Context) ([]byte, []Warning, error) {
	deck, warnings, err := c.Convert(ctx)
	if err != nil {
		return nil, warnings, err
	}
	data, err := json.MarshalIndent(deck, "", "  ")
	return data, warnings, err
}

func (c *Converter) prober() layout.ImageProber {
	if c.options.prober != nil {
		return c.options.prober
	}
	if c.options.probeImages {
		return layout.NewFileProber()
	}
	return nil
}
