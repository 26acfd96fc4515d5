package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/deckdown/model"
)

// inlineMarkdown parses block text once per element; only the AST is used,
// never the HTML renderer
var inlineMarkdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// parseInline reduces a block's markdown to plain text plus formatting
// spans. Span offsets are byte positions into the returned text; soft line
// breaks become newlines.
func parseInline(src string) (string, []model.Span) {
	state := &inlineState{src: []byte(src)}
	doc := inlineMarkdown.Parser().Parse(text.NewReader(state.src))
	state.walk(doc)
	return state.buf.String(), state.spans
}

type inlineState struct {
	src   []byte
	buf   bytes.Buffer
	spans []model.Span

	bold   int
	italic int
	strike int
	code   int
	links  []string
}

func (st *inlineState) walk(n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		st.emit(node.Segment.Value(st.src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			st.emit([]byte("\n"))
		}
	case *ast.String:
		st.emit(node.Value)
	case *ast.Emphasis:
		if node.Level >= 2 {
			st.bold++
			st.walkChildren(n)
			st.bold--
		} else {
			st.italic++
			st.walkChildren(n)
			st.italic--
		}
	case *east.Strikethrough:
		st.strike++
		st.walkChildren(n)
		st.strike--
	case *ast.CodeSpan:
		st.code++
		st.walkChildren(n)
		st.code--
	case *ast.Link:
		st.links = append(st.links, string(node.Destination))
		st.walkChildren(n)
		st.links = st.links[:len(st.links)-1]
	case *ast.AutoLink:
		url := string(node.URL(st.src))
		st.links = append(st.links, url)
		st.emit(node.Label(st.src))
		st.links = st.links[:len(st.links)-1]
	case *ast.Image:
		// An image inside running text degrades to its alt text
		st.walkChildren(n)
	case *ast.Paragraph, *ast.TextBlock:
		if st.buf.Len() > 0 {
			st.emit([]byte("\n"))
		}
		st.walkChildren(n)
	default:
		st.walkChildren(n)
	}
}

func (st *inlineState) walkChildren(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		st.walk(c)
	}
}

// emit appends text and, when any style is active, records a span over it,
// extending the previous span when the style run continues.
func (st *inlineState) emit(b []byte) {
	if len(b) == 0 {
		return
	}
	start := st.buf.Len()
	st.buf.Write(b)
	if st.bold == 0 && st.italic == 0 && st.strike == 0 && st.code == 0 && len(st.links) == 0 {
		return
	}
	span := model.Span{
		Start:  start,
		End:    st.buf.Len(),
		Bold:   st.bold > 0,
		Italic: st.italic > 0,
		Strike: st.strike > 0,
		Code:   st.code > 0,
	}
	if len(st.links) > 0 {
		span.Link = st.links[len(st.links)-1]
	}
	if n := len(st.spans); n > 0 {
		prev := &st.spans[n-1]
		if prev.End == span.Start && prev.Bold == span.Bold && prev.Italic == span.Italic &&
			prev.Strike == span.Strike && prev.Code == span.Code && prev.Link == span.Link {
			prev.End = span.End
			return
		}
	}
	st.spans = append(st.spans, span)
}
