package parser

import "fmt"

// StructureError reports a violation of the container grammar: content
// outside a section, a row holding a non-column, an unclosed block. It is
// fatal for the affected slide.
type StructureError struct {
	Line    int
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func structureErrorf(line int, format string, args ...any) *StructureError {
	return &StructureError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports a malformed directive value or an element that
// violates its own invariants (an image without dimensions or fill). It is
// fatal for the affected element and therefore for its slide.
type ValidationError struct {
	Line    int
	Context string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Context, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Message)
}

func validationErrorf(line int, context, format string, args ...any) *ValidationError {
	return &ValidationError{Line: line, Context: context, Message: fmt.Sprintf(format, args...)}
}
