// Command deckdown converts annotated markdown into a positioned slide
// deck and writes it as JSON.
//
// Usage:
//
//	deckdown -in talk.md -out deck.json
//	cat talk.md | deckdown -canvas canvas.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tsawler/deckdown"
)

func main() {
	var (
		in      = flag.String("in", "", "input markdown file (default: stdin)")
		out     = flag.String("out", "", "output JSON file (default: stdout)")
		canvas  = flag.String("canvas", "", "canvas configuration YAML file")
		workers = flag.Int("workers", 0, "concurrent slide conversions (default: GOMAXPROCS)")
		quiet   = flag.Bool("quiet", false, "suppress warnings on stderr")
	)
	flag.Parse()

	conv, err := converter(*in)
	if err != nil {
		log.Fatalf("deckdown: %v", err)
	}
	if *canvas != "" {
		conv = conv.CanvasFile(*canvas)
	}
	if *workers > 0 {
		conv = conv.Workers(*workers)
	}

	data, warnings, err := conv.JSON(context.Background())
	if len(warnings) > 0 && !*quiet {
		fmt.Fprintln(os.Stderr, deckdown.FormatWarnings(warnings))
	}
	if err != nil {
		log.Fatalf("deckdown: %v", err)
	}

	if *out == "" {
		os.Stdout.Write(data)
		fmt.Println()
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("deckdown: writing %s: %v", *out, err)
	}
}

func converter(in string) (*deckdown.Converter, error) {
	if in != "" {
		return deckdown.Open(in), nil
	}
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return deckdown.Parse(string(src)), nil
}
