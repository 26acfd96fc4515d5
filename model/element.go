package model

// ElementKind represents the type of a content element
type ElementKind int

const (
	ElementUnknown ElementKind = iota
	ElementText
	ElementHeading
	ElementList
	ElementTable
	ElementImage
	ElementCode
	ElementQuote
)

func (ek ElementKind) String() string {
	switch ek {
	case ElementText:
		return "text"
	case ElementHeading:
		return "heading"
	case ElementList:
		return "list"
	case ElementTable:
		return "table"
	case ElementImage:
		return "image"
	case ElementCode:
		return "code"
	case ElementQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// Element is the closed interface over all leaf content variants
type Element interface {
	Kind() ElementKind
	Bounds() Rect
	elementNode()
}

// Span is an inline formatting range over an element's plain text,
// expressed in byte offsets
type Span struct {
	Start  int
	End    int
	Bold   bool
	Italic bool
	Strike bool
	Code   bool
	Link   string
}

// Text represents a paragraph
type Text struct {
	Content string
	Spans   []Span
	Dir     Directives
	Style   Directives
	Box     Rect
}

func (t *Text) Kind() ElementKind { return ElementText }
func (t *Text) Bounds() Rect      { return t.Box }
func (t *Text) elementNode()      {}

// Heading represents a heading of level 1-6
type Heading struct {
	Level   int
	Content string
	Spans   []Span
	Dir     Directives
	Style   Directives
	Box     Rect
}

func (h *Heading) Kind() ElementKind { return ElementHeading }
func (h *Heading) Bounds() Rect      { return h.Box }
func (h *Heading) elementNode()      {}

// ListItem represents a single list item with its nesting level
type ListItem struct {
	Content string
	Spans   []Span
	Level   int
}

// List represents an ordered or unordered list
type List struct {
	Ordered bool
	Items   []ListItem
	Dir     Directives
	Style   Directives
	Box     Rect
}

func (l *List) Kind() ElementKind { return ElementList }
func (l *List) Bounds() Rect      { return l.Box }
func (l *List) elementNode()      {}

// TableCell is a single rendered cell
type TableCell struct {
	Content string
	Spans   []Span
}

// TableRow is one rendered table row. Dir carries the directives supplied
// by the row's trailing directive-column cell; the cell itself is never
// part of Cells.
type TableRow struct {
	Cells []TableCell
	Dir   Directives
}

// Table represents a table. The source's trailing directive column is
// consumed at parse time: HeaderDir (taken from the first data row's
// directive set) styles the header row, and each TableRow carries its own
// directive record.
type Table struct {
	Headers   []TableCell
	Rows      []TableRow
	HeaderDir Directives
	Dir       Directives
	Style     Directives
	Box       Rect
}

func (t *Table) Kind() ElementKind { return ElementTable }
func (t *Table) Bounds() Rect      { return t.Box }
func (t *Table) elementNode()      {}

// ColumnCount returns the number of rendered columns
func (t *Table) ColumnCount() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

// Image represents an image reference. Either both Width and Height
// directives are present, or Fill is set and the parent section carries
// explicit width and height.
type Image struct {
	URL   string
	Alt   string
	Fill  bool
	Dir   Directives
	Style Directives
	Box   Rect
}

func (i *Image) Kind() ElementKind { return ElementImage }
func (i *Image) Bounds() Rect      { return i.Box }
func (i *Image) elementNode()      {}

// Code represents a fenced code block; Content is kept verbatim
type Code struct {
	Language string
	Content  string
	Dir      Directives
	Style    Directives
	Box      Rect
}

func (c *Code) Kind() ElementKind { return ElementCode }
func (c *Code) Bounds() Rect      { return c.Box }
func (c *Code) elementNode()      {}

// Quote represents a blockquote
type Quote struct {
	Content string
	Spans   []Span
	Dir     Directives
	Style   Directives
	Box     Rect
}

func (q *Quote) Kind() ElementKind { return ElementQuote }
func (q *Quote) Bounds() Rect      { return q.Box }
func (q *Quote) elementNode()      {}

// CloneElement deep-copies an element, clearing geometry and resolved style
func CloneElement(e Element) Element {
	switch el := e.(type) {
	case *Text:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		out.Spans = append([]Span(nil), el.Spans...)
		return &out
	case *Heading:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		out.Spans = append([]Span(nil), el.Spans...)
		return &out
	case *List:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		out.Items = make([]ListItem, len(el.Items))
		for i, item := range el.Items {
			out.Items[i] = item
			out.Items[i].Spans = append([]Span(nil), item.Spans...)
		}
		return &out
	case *Table:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		out.HeaderDir = el.HeaderDir.Clone()
		out.Headers = append([]TableCell(nil), el.Headers...)
		out.Rows = make([]TableRow, len(el.Rows))
		for i, row := range el.Rows {
			out.Rows[i] = TableRow{
				Cells: append([]TableCell(nil), row.Cells...),
				Dir:   row.Dir.Clone(),
			}
		}
		return &out
	case *Image:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		return &out
	case *Code:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		return &out
	case *Quote:
		out := *el
		out.Box, out.Style = Rect{}, Directives{}
		out.Dir = el.Dir.Clone()
		out.Spans = append([]Span(nil), el.Spans...)
		return &out
	default:
		return nil
	}
}
