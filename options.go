package deckdown

import (
	"runtime"

	"github.com/tsawler/deckdown/layout"
	"github.com/tsawler/deckdown/model"
)

// convertOptions holds configuration for a conversion run.
type convertOptions struct {
	canvas   model.CanvasConfig
	metrics  layout.MetricsConfig
	measurer layout.TextMeasurer
	prober   layout.ImageProber

	// workers caps concurrent slide conversion
	workers int

	// probeImages enables local image header probing for aspect warnings
	probeImages bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		canvas:      model.DefaultCanvas(),
		metrics:     layout.DefaultMetricsConfig(),
		workers:     runtime.GOMAXPROCS(0),
		probeImages: true,
	}
}

// clone creates a copy of convertOptions.
func (o convertOptions) clone() convertOptions {
	return o
}
