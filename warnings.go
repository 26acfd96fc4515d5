package deckdown

import (
	"strings"

	"github.com/tsawler/deckdown/model"
)

// Warning is a non-fatal issue recorded during conversion. The deck is
// still produced; warnings tell the caller where the output is best-effort.
type Warning = model.Warning

// SlideError identifies the source slide a fatal conversion error belongs
// to. Convert joins one SlideError per failed slide.
type SlideError = model.SlideError

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
