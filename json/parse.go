package json

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// Parse builds an immutable Value tree with offset spans from a JSON
// document. Deployment templates are JSON, which the YAML parser accepts
// as flow-style nodes; its tokens carry the line/column positions the
// spans are derived from.
func Parse(documentText string) (Value, error) {
	file, err := parser.ParseBytes([]byte(documentText), 0)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if file == nil || len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("parse template: no document found")
	}

	c := &converter{text: documentText, lineStarts: lineStarts(documentText)}
	value := c.convert(file.Docs[0].Body)
	if value == nil {
		return nil, fmt.Errorf("parse template: unsupported document shape")
	}
	return value, nil
}

type converter struct {
	text       string
	lineStarts []int
}

func (c *converter) convert(node ast.Node) Value {
	switch n := node.(type) {
	case *ast.DocumentNode:
		return c.convert(n.Body)
	case *ast.AnchorNode:
		return c.convert(n.Value)
	case *ast.MappingNode:
		return c.convertMapping(n)
	case *ast.MappingValueNode:
		// A bare top-level "key: value" document.
		start := c.offsetOf(n.GetToken())
		property := c.convertProperty(n)
		span := Span{Start: start, End: start}
		if property != nil {
			span = property.Span()
		}
		properties := []*Property{}
		if property != nil {
			properties = append(properties, property)
		}
		return NewObject(span, properties)
	case *ast.SequenceNode:
		return c.convertSequence(n)
	case *ast.StringNode:
		return c.convertString(n)
	case *ast.IntegerNode:
		tok := n.GetToken()
		return NewNumber(c.tokenSpan(tok), tok.Value)
	case *ast.FloatNode:
		tok := n.GetToken()
		return NewNumber(c.tokenSpan(tok), tok.Value)
	case *ast.BoolNode:
		tok := n.GetToken()
		return NewBoolean(c.tokenSpan(tok), n.Value)
	case *ast.NullNode:
		return NewNull(c.tokenSpan(n.GetToken()))
	default:
		return nil
	}
}

func (c *converter) convertMapping(n *ast.MappingNode) Value {
	start := c.offsetOf(n.GetToken())
	end := c.matchBracket(start)

	var properties []*Property
	for _, value := range n.Values {
		if property := c.convertProperty(value); property != nil {
			properties = append(properties, property)
		}
	}
	return NewObject(Span{Start: start, End: end}, properties)
}

func (c *converter) convertProperty(n *ast.MappingValueNode) *Property {
	if n == nil || n.Key == nil || n.Value == nil {
		return nil
	}
	name := c.convertKey(n.Key)
	value := c.convert(n.Value)
	if name == nil || value == nil {
		return nil
	}
	return NewProperty(name, value)
}

func (c *converter) convertKey(node ast.Node) *StringValue {
	if s, ok := node.(*ast.StringNode); ok {
		return c.convertString(s)
	}
	// Non-string keys do not occur in JSON; fall back to the token text.
	tok := node.GetToken()
	if tok == nil {
		return nil
	}
	span := c.tokenSpan(tok)
	return NewString(span, span, tok.Value)
}

func (c *converter) convertSequence(n *ast.SequenceNode) Value {
	start := c.offsetOf(n.GetToken())
	end := c.matchBracket(start)

	var elements []Value
	for _, value := range n.Values {
		if element := c.convert(value); element != nil {
			elements = append(elements, element)
		}
	}
	return NewArray(Span{Start: start, End: end}, elements)
}

func (c *converter) convertString(n *ast.StringNode) *StringValue {
	start := c.offsetOf(n.GetToken())

	// Token positions may point at the opening quote or at the first
	// character of the value; normalize to the quote.
	if start > 0 && !c.isQuote(start) && c.isQuote(start-1) {
		start--
	}
	if c.isQuote(start) {
		end := c.closeQuote(start)
		return NewString(
			Span{Start: start, End: end},
			Span{Start: start + 1, End: end - 1},
			n.Value,
		)
	}

	// Unquoted scalar; the span is the value text itself.
	span := Span{Start: start, End: start + len(n.Value)}
	return NewString(span, span, n.Value)
}

func (c *converter) isQuote(offset int) bool {
	return offset < len(c.text) && (c.text[offset] == '"' || c.text[offset] == '\'')
}

// closeQuote scans from the opening quote to the matching closing quote,
// honoring backslash escapes, and returns the offset one past it.
func (c *converter) closeQuote(open int) int {
	quote := c.text[open]
	for i := open + 1; i < len(c.text); i++ {
		switch c.text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(c.text)
}

// matchBracket scans from an opening { or [ to its matching closer,
// skipping over string contents, and returns the offset one past it.
func (c *converter) matchBracket(open int) int {
	depth := 0
	for i := open; i < len(c.text); i++ {
		switch c.text[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '"', '\'':
			i = c.closeQuote(i) - 1
		}
	}
	return len(c.text)
}

func (c *converter) offsetOf(tok *token.Token) int {
	if tok == nil || tok.Position == nil {
		return 0
	}
	return c.offsetAt(tok.Position.Line, tok.Position.Column)
}

// offsetAt converts a 1-based line/column pair to a document offset.
func (c *converter) offsetAt(line, column int) int {
	if line < 1 {
		line = 1
	}
	if line > len(c.lineStarts) {
		return len(c.text)
	}
	offset := c.lineStarts[line-1] + column - 1
	if offset < 0 {
		offset = 0
	}
	if offset > len(c.text) {
		offset = len(c.text)
	}
	return offset
}

func (c *converter) tokenSpan(tok *token.Token) Span {
	start := c.offsetOf(tok)
	width := 0
	if tok != nil {
		width = len(tok.Value)
	}
	return Span{Start: start, End: start + width}
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
