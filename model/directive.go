package model

// DimensionKind discriminates how a width/height directive value is
// interpreted at layout time.
type DimensionKind int

const (
	// DimensionPoints is an absolute extent in canvas points
	DimensionPoints DimensionKind = iota
	// DimensionFraction is a fraction of the parent's same-axis extent,
	// produced by percentage ("50%") and ratio ("1/2") directive values
	DimensionFraction
)

// Dimension is a typed width/height directive value. Fractions are kept
// unresolved until layout, when the parent extent is known.
type Dimension struct {
	Kind  DimensionKind
	Value float64
}

// Points creates an absolute dimension
func Points(v float64) Dimension {
	return Dimension{Kind: DimensionPoints, Value: v}
}

// Fraction creates a relative dimension (0.5 == half the parent extent)
func Fraction(v float64) Dimension {
	return Dimension{Kind: DimensionFraction, Value: v}
}

// Resolve returns the concrete extent for a given parent extent
func (d Dimension) Resolve(parent float64) float64 {
	if d.Kind == DimensionFraction {
		return parent * d.Value
	}
	return d.Value
}

// Spacing holds per-side spacing in points, used for padding and margin
type Spacing struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformSpacing creates equal spacing on all four sides
func UniformSpacing(v float64) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

// Vertical returns the combined top and bottom spacing
func (s Spacing) Vertical() float64 {
	return s.Top + s.Bottom
}

// Horizontal returns the combined left and right spacing
func (s Spacing) Horizontal() float64 {
	return s.Left + s.Right
}

// HAlign represents horizontal alignment
type HAlign int

const (
	AlignDefault HAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "default"
	}
}

// VAlign represents vertical alignment
type VAlign int

const (
	VAlignDefault VAlign = iota
	VAlignTop
	VAlignMiddle
	VAlignBottom
)

func (a VAlign) String() string {
	switch a {
	case VAlignTop:
		return "top"
	case VAlignMiddle:
		return "middle"
	case VAlignBottom:
		return "bottom"
	default:
		return "default"
	}
}

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// BackgroundKind discriminates background directive values
type BackgroundKind int

const (
	BackgroundColor BackgroundKind = iota
	BackgroundImage
)

// Background is a slide or node background: a solid color or an image URL
type Background struct {
	Kind  BackgroundKind
	Color Color
	URL   string
}

// Border is a compound border directive value ("1pt solid #ff0000")
type Border struct {
	Width float64
	Style string
	Color *Color
}

// Directives is the typed record of the bracketed [key=value] annotations
// attached to a node or element. Pointer fields are nil when the directive
// was not declared; flags default to false.
//
// The same type serves as the resolved record after the directive resolver
// applies inheritance and precedence. Only the inheritable subset (align,
// valign, color, fontsize, bold, italic) ever propagates to descendants.
type Directives struct {
	Width      *Dimension
	Height     *Dimension
	Padding    *Spacing
	Margin     *Spacing
	Gap        *float64
	Align      HAlign
	VAlign     VAlign
	Color      *Color
	Background *Background
	Border     *Border
	FontSize   *float64
	Bold       bool
	Italic     bool
	Fill       bool
}

// IsZero reports whether no directive was declared
func (d Directives) IsZero() bool {
	return d.Width == nil && d.Height == nil && d.Padding == nil &&
		d.Margin == nil && d.Gap == nil && d.Align == AlignDefault &&
		d.VAlign == VAlignDefault && d.Color == nil && d.Background == nil &&
		d.Border == nil && d.FontSize == nil && !d.Bold && !d.Italic && !d.Fill
}

// Clone returns a deep copy of the record
func (d Directives) Clone() Directives {
	out := d
	if d.Width != nil {
		w := *d.Width
		out.Width = &w
	}
	if d.Height != nil {
		h := *d.Height
		out.Height = &h
	}
	if d.Padding != nil {
		p := *d.Padding
		out.Padding = &p
	}
	if d.Margin != nil {
		m := *d.Margin
		out.Margin = &m
	}
	if d.Gap != nil {
		g := *d.Gap
		out.Gap = &g
	}
	if d.Color != nil {
		c := *d.Color
		out.Color = &c
	}
	if d.Background != nil {
		b := *d.Background
		out.Background = &b
	}
	if d.Border != nil {
		b := *d.Border
		if b.Color != nil {
			c := *b.Color
			b.Color = &c
		}
		out.Border = &b
	}
	if d.FontSize != nil {
		f := *d.FontSize
		out.FontSize = &f
	}
	return out
}

// PaddingOr returns the declared padding or the given default on all sides
func (d Directives) PaddingOr(def float64) Spacing {
	if d.Padding != nil {
		return *d.Padding
	}
	return UniformSpacing(def)
}

// MarginOr returns the declared margin or zero spacing
func (d Directives) MarginOr() Spacing {
	if d.Margin != nil {
		return *d.Margin
	}
	return Spacing{}
}

// GapOr returns the declared gap or the given default
func (d Directives) GapOr(def float64) float64 {
	if d.Gap != nil {
		return *d.Gap
	}
	return def
}

// FontSizeOr returns the declared font size or the given default
func (d Directives) FontSizeOr(def float64) float64 {
	if d.FontSize != nil {
		return *d.FontSize
	}
	return def
}
