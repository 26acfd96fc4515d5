package model

// NodeKind represents the type of a container node
type NodeKind int

const (
	KindSection NodeKind = iota
	KindRow
	KindColumn
)

func (nk NodeKind) String() string {
	switch nk {
	case KindSection:
		return "section"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	default:
		return "unknown"
	}
}

// Block is the closed interface over the container variants that may appear
// at slide top level or inside a column: *Section and *Row. A *Column never
// appears as a Block; columns only exist inside a Row's typed child list.
type Block interface {
	Kind() NodeKind
	Bounds() Rect
	blockNode()
}

// Section is a vertical leaf container holding only content elements.
type Section struct {
	// Dir is the raw parse-time directive record from the fence line
	Dir Directives
	// Style is the resolved record written by the directive resolver
	Style Directives
	// Box is assigned by the layout engine
	Box Rect
	// Line is the 1-indexed source line of the opening fence
	Line int

	Elements []Element
}

func (s *Section) Kind() NodeKind { return KindSection }
func (s *Section) Bounds() Rect   { return s.Box }
func (s *Section) blockNode()     {}

// Row is a horizontal container whose children are exclusively columns.
type Row struct {
	Dir   Directives
	Style Directives
	Box   Rect
	Line  int

	Columns []*Column
}

func (r *Row) Kind() NodeKind { return KindRow }
func (r *Row) Bounds() Rect   { return r.Box }
func (r *Row) blockNode()     {}

// Column is a row cell. Its children are sections and, as an experimental
// case, nested rows.
type Column struct {
	Dir   Directives
	Style Directives
	Box   Rect
	Line  int

	Children []Block
}

func (c *Column) Kind() NodeKind { return KindColumn }
func (c *Column) Bounds() Rect   { return c.Box }

// Clone returns a deep copy of a block tree with geometry cleared, for use
// by the overflow handler. No node is ever shared between two slides.
func CloneBlock(b Block) Block {
	switch n := b.(type) {
	case *Section:
		return CloneSection(n)
	case *Row:
		return CloneRow(n)
	default:
		return nil
	}
}

// CloneSection deep-copies a section and its elements, clearing geometry
func CloneSection(s *Section) *Section {
	out := &Section{
		Dir:   s.Dir.Clone(),
		Style: Directives{},
		Line:  s.Line,
	}
	for _, el := range s.Elements {
		out.Elements = append(out.Elements, CloneElement(el))
	}
	return out
}

// CloneRow deep-copies a row, its columns, and their subtrees, clearing
// geometry
func CloneRow(r *Row) *Row {
	out := &Row{
		Dir:  r.Dir.Clone(),
		Line: r.Line,
	}
	for _, col := range r.Columns {
		cc := &Column{
			Dir:  col.Dir.Clone(),
			Line: col.Line,
		}
		for _, child := range col.Children {
			cc.Children = append(cc.Children, CloneBlock(child))
		}
		out.Columns = append(out.Columns, cc)
	}
	return out
}
