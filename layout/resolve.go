package layout

import (
	"fmt"

	"github.com/tsawler/deckdown/model"
)

// ConstraintError reports a node or element whose directives cannot be
// satisfied. It is fatal for the affected slide.
type ConstraintError struct {
	Line    int
	Context string
	Message string
}

func (e *ConstraintError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Context, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Message)
}

// inherited is the directive subset that propagates to descendants
type inherited struct {
	align    model.HAlign
	valign   model.VAlign
	color    *model.Color
	fontSize *float64
	bold     bool
	italic   bool
}

// ResolveSlide fills every node's and element's Style record by applying
// inheritance and precedence: element own values win over node own values,
// which win over inherited values, which win over the slide base. Only
// align, valign, color, fontsize, bold, and italic propagate.
func ResolveSlide(slide *model.Slide) error {
	inh := inherited{
		align:    slide.Base.Align,
		valign:   slide.Base.VAlign,
		color:    slide.Base.Color,
		fontSize: slide.Base.FontSize,
		bold:     slide.Base.Bold,
		italic:   slide.Base.Italic,
	}
	for _, b := range slide.Blocks {
		if err := resolveBlock(b, inh); err != nil {
			return err
		}
	}
	if slide.Footer != nil {
		if err := resolveSection(slide.Footer, inh); err != nil {
			return err
		}
	}
	return nil
}

func resolveBlock(b model.Block, inh inherited) error {
	switch n := b.(type) {
	case *model.Section:
		return resolveSection(n, inh)
	case *model.Row:
		return resolveRow(n, inh)
	default:
		return &ConstraintError{Context: "resolve", Message: fmt.Sprintf("unexpected block type %T", b)}
	}
}

func resolveRow(row *model.Row, inh inherited) error {
	row.Style, inh = overlay(row.Dir, inh)
	for _, col := range row.Columns {
		colInh := inh
		var err error
		col.Style, colInh = overlay(col.Dir, colInh)
		for _, child := range col.Children {
			if err = resolveBlock(child, colInh); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveSection(sec *model.Section, inh inherited) error {
	sec.Style, inh = overlay(sec.Dir, inh)
	for _, el := range sec.Elements {
		style, _ := overlay(elementDir(el), inh)
		setElementStyle(el, style)

		// A fill image needs an explicitly sized section to stretch into
		if img, ok := el.(*model.Image); ok && img.Fill {
			if sec.Dir.Width == nil || sec.Dir.Height == nil {
				return &ConstraintError{
					Line:    sec.Line,
					Context: "image",
					Message: "fill image requires explicit width and height on its section",
				}
			}
		}
	}
	return nil
}

// overlay merges a node's own directives over the inherited set and returns
// the resolved record plus the set its descendants inherit
func overlay(dir model.Directives, inh inherited) (model.Directives, inherited) {
	style := dir.Clone()
	if style.Align == model.AlignDefault {
		style.Align = inh.align
	}
	if style.VAlign == model.VAlignDefault {
		style.VAlign = inh.valign
	}
	if style.Color == nil {
		style.Color = inh.color
	}
	if style.FontSize == nil {
		style.FontSize = inh.fontSize
	}
	style.Bold = style.Bold || inh.bold
	style.Italic = style.Italic || inh.italic

	return style, inherited{
		align:    style.Align,
		valign:   style.VAlign,
		color:    style.Color,
		fontSize: style.FontSize,
		bold:     style.Bold,
		italic:   style.Italic,
	}
}

// elementDir returns an element's raw directive record
func elementDir(el model.Element) model.Directives {
	switch e := el.(type) {
	case *model.Text:
		return e.Dir
	case *model.Heading:
		return e.Dir
	case *model.List:
		return e.Dir
	case *model.Table:
		return e.Dir
	case *model.Image:
		return e.Dir
	case *model.Code:
		return e.Dir
	case *model.Quote:
		return e.Dir
	}
	return model.Directives{}
}

func setElementStyle(el model.Element, style model.Directives) {
	switch e := el.(type) {
	case *model.Text:
		e.Style = style
	case *model.Heading:
		e.Style = style
	case *model.List:
		e.Style = style
	case *model.Table:
		e.Style = style
	case *model.Image:
		e.Style = style
	case *model.Code:
		e.Style = style
	case *model.Quote:
		e.Style = style
	}
}

func setElementBox(el model.Element, box model.Rect) {
	switch e := el.(type) {
	case *model.Text:
		e.Box = box
	case *model.Heading:
		e.Box = box
	case *model.List:
		e.Box = box
	case *model.Table:
		e.Box = box
	case *model.Image:
		e.Box = box
	case *model.Code:
		e.Box = box
	case *model.Quote:
		e.Box = box
	}
}
