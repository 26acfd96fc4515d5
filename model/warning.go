package model

import "fmt"

// Warning is a non-fatal issue recorded during conversion: an unknown
// directive, an over-constrained layout clamped to zero, an element too
// large to ever fit the canvas. Warnings never abort processing.
type Warning struct {
	// Slide is the source slide index, or -1 when not slide-scoped
	Slide int
	// Context names the stage or node the warning applies to
	Context string
	Message string
}

func (w Warning) String() string {
	if w.Slide >= 0 {
		return fmt.Sprintf("slide %d: %s: %s", w.Slide, w.Context, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Context, w.Message)
}

// SlideError is a fatal per-slide failure: a structural or validation error
// that aborted conversion of one slide. Other slides still convert
// independently.
type SlideError struct {
	Slide int
	Err   error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide %d: %v", e.Slide, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}
