package model

// Margins holds the four canvas margins in points
type Margins struct {
	Top    float64 `yaml:"top" json:"top"`
	Right  float64 `yaml:"right" json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left" json:"left"`
}

// CanvasConfig describes the slide canvas every stage lays out against. It
// is passed explicitly through the pipeline, never held as global state, so
// concurrent conversions can use different canvases.
type CanvasConfig struct {
	Width   float64 `yaml:"width" json:"width"`
	Height  float64 `yaml:"height" json:"height"`
	Margins Margins `yaml:"margins" json:"margins"`
}

// DefaultCanvas returns the default 720x540pt canvas with 70/50/50/50pt
// top/bottom/left/right margins, yielding a 620x420pt content area.
func DefaultCanvas() CanvasConfig {
	return CanvasConfig{
		Width:  720,
		Height: 540,
		Margins: Margins{
			Top:    70,
			Right:  50,
			Bottom: 50,
			Left:   50,
		},
	}
}

// ContentWidth returns the usable width inside the margins
func (c CanvasConfig) ContentWidth() float64 {
	return c.Width - c.Margins.Left - c.Margins.Right
}

// ContentHeight returns the usable height inside the margins
func (c CanvasConfig) ContentHeight() float64 {
	return c.Height - c.Margins.Top - c.Margins.Bottom
}

// Body returns the content area as a rectangle
func (c CanvasConfig) Body() Rect {
	return Rect{
		X:      c.Margins.Left,
		Y:      c.Margins.Top,
		Width:  c.ContentWidth(),
		Height: c.ContentHeight(),
	}
}

// Valid reports whether the canvas has a positive content area
func (c CanvasConfig) Valid() bool {
	return c.ContentWidth() > 0 && c.ContentHeight() > 0
}
