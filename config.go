package deckdown

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/deckdown/model"
)

// LoadCanvasFile reads a canvas configuration from a YAML file. Fields the
// file omits keep the default canvas values.
//
// Example file:
//
//	width: 960
//	height: 540
//	margins:
//	  top: 60
//	  bottom: 40
func LoadCanvasFile(path string) (model.CanvasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CanvasConfig{}, fmt.Errorf("reading canvas config: %w", err)
	}
	return ParseCanvas(data)
}

// ParseCanvas parses a YAML canvas configuration over the defaults.
func ParseCanvas(data []byte) (model.CanvasConfig, error) {
	canvas := model.DefaultCanvas()
	if err := yaml.Unmarshal(data, &canvas); err != nil {
		return model.CanvasConfig{}, fmt.Errorf("parsing canvas config: %w", err)
	}
	if !canvas.Valid() {
		return model.CanvasConfig{}, fmt.Errorf("canvas %vx%v leaves no content area inside its margins",
			canvas.Width, canvas.Height)
	}
	return canvas, nil
}
