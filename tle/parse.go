package tle

import (
	"strings"

	"github.com/tminor/lsparm/json"
)

// Value is a node in a parsed expression tree.
type Value interface {
	Span() json.Span
}

// FunctionCallValue is ns.name(args...) or name(args...).
type FunctionCallValue struct {
	Namespace *Token // nil for bare calls
	Name      Token
	Args      []Value
	span      json.Span
}

func (v *FunctionCallValue) Span() json.Span { return v.span }

// NameSpan covers only the function name token.
func (v *FunctionCallValue) NameSpan() json.Span { return v.Name.Span }

// FullName is ns.name for namespaced calls, otherwise just name.
func (v *FunctionCallValue) FullName() string {
	if v.Namespace != nil {
		return v.Namespace.Text + "." + v.Name.Text
	}
	return v.Name.Text
}

// StringLiteralValue is a single-quoted literal.
type StringLiteralValue struct {
	Token Token
}

func (v *StringLiteralValue) Span() json.Span { return v.Token.Span }

// Unquoted strips the quotes and collapses '' escapes.
func (v *StringLiteralValue) Unquoted() string {
	text := v.Token.Text
	text = strings.TrimPrefix(text, "'")
	text = strings.TrimSuffix(text, "'")
	return strings.ReplaceAll(text, "''", "'")
}

// NumberValue is a numeric literal.
type NumberValue struct {
	Token Token
}

func (v *NumberValue) Span() json.Span { return v.Token.Span }

// PropertyAccessValue is source.name.
type PropertyAccessValue struct {
	Source Value
	Name   Token
}

func (v *PropertyAccessValue) Span() json.Span {
	return v.Source.Span().Union(v.Name.Span)
}

// ArrayAccessValue is source[index].
type ArrayAccessValue struct {
	Source Value
	Index  Value // nil when the index failed to parse
	span   json.Span
}

func (v *ArrayAccessValue) Span() json.Span { return v.span }

// ParseResult is a parsed expression string. Root is nil when the
// expression body could not be parsed at all.
type ParseResult struct {
	Root Value
}

// IsExpression reports whether a JSON string holds a template expression:
// the unquoted text starts with [ (but not the [[ escape) and ends with ].
func IsExpression(s *json.StringValue) bool {
	if s == nil {
		return false
	}
	text := s.Unquoted()
	return strings.HasPrefix(text, "[") &&
		!strings.HasPrefix(text, "[[") &&
		strings.HasSuffix(text, "]")
}

// Parse parses the expression inside a JSON string. Returns nil when the
// string is not an expression. Malformed tails are dropped rather than
// reported; resolution simply finds nothing there.
func Parse(s *json.StringValue) *ParseResult {
	if !IsExpression(s) {
		return nil
	}
	tokens := scan(s.Unquoted(), s.UnquotedSpan().Start)

	p := &exprParser{tokens: tokens}
	p.expect(TokenLeftBracket)
	root := p.parseExpression()
	return &ParseResult{Root: root}
}

// FindValueAtOffset returns the deepest node whose span contains the
// document offset, or nil.
func (r *ParseResult) FindValueAtOffset(offset int) Value {
	if r == nil {
		return nil
	}
	return deepestAt(r.Root, offset)
}

// FindFunctionCallAtOffset returns the innermost function call whose span
// contains the document offset, or nil.
func (r *ParseResult) FindFunctionCallAtOffset(offset int) *FunctionCallValue {
	if r == nil {
		return nil
	}
	var found *FunctionCallValue
	walk(r.Root, func(v Value) {
		if call, ok := v.(*FunctionCallValue); ok && call.Span().Contains(offset) {
			found = call
		}
	})
	return found
}

// IsParametersCall reports whether the call is parameters('name').
func IsParametersCall(call *FunctionCallValue) bool {
	return isBuiltinReferenceCall(call, "parameters")
}

// IsVariablesCall reports whether the call is variables('name').
func IsVariablesCall(call *FunctionCallValue) bool {
	return isBuiltinReferenceCall(call, "variables")
}

// ReferenceName returns the string argument of a parameters() or
// variables() call, or "" when the call has no single literal argument.
func ReferenceName(call *FunctionCallValue) string {
	if literal := referenceArgument(call); literal != nil {
		return literal.Unquoted()
	}
	return ""
}

func isBuiltinReferenceCall(call *FunctionCallValue, name string) bool {
	return call != nil &&
		call.Namespace == nil &&
		strings.EqualFold(call.Name.Text, name) &&
		referenceArgument(call) != nil
}

func referenceArgument(call *FunctionCallValue) *StringLiteralValue {
	if call == nil || len(call.Args) != 1 {
		return nil
	}
	literal, _ := call.Args[0].(*StringLiteralValue)
	return literal
}

type exprParser struct {
	tokens []Token
	pos    int
}

func (p *exprParser) peek() (Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return Token{}, false
}

func (p *exprParser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *exprParser) expect(tokenType TokenType) bool {
	if tok, ok := p.peek(); ok && tok.Type == tokenType {
		p.pos++
		return true
	}
	return false
}

// parseExpression parses a primary followed by any number of .name and
// [index] accesses.
func (p *exprParser) parseExpression() Value {
	value := p.parsePrimary()
	if value == nil {
		return nil
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return value
		}
		switch tok.Type {
		case TokenPeriod:
			p.pos++
			name, ok := p.peek()
			if !ok || name.Type != TokenIdentifier {
				return value
			}
			p.pos++
			value = &PropertyAccessValue{Source: value, Name: name}
		case TokenLeftBracket:
			p.pos++
			index := p.parseExpression()
			end := value.Span().End
			if index != nil {
				end = index.Span().End
			}
			if closer, ok := p.peek(); ok && closer.Type == TokenRightBracket {
				p.pos++
				end = closer.Span.End
			}
			value = &ArrayAccessValue{
				Source: value,
				Index:  index,
				span:   json.Span{Start: value.Span().Start, End: end},
			}
		default:
			return value
		}
	}
}

func (p *exprParser) parsePrimary() Value {
	tok, ok := p.peek()
	if !ok {
		return nil
	}
	switch tok.Type {
	case TokenLiteral:
		p.pos++
		return &StringLiteralValue{Token: tok}
	case TokenNumber:
		p.pos++
		return &NumberValue{Token: tok}
	case TokenIdentifier:
		return p.parseFunctionCall()
	default:
		p.pos++
		return nil
	}
}

// parseFunctionCall parses name(args) or ns.name(args). A bare
// identifier with no argument list still yields a call node with no
// arguments, so hover can resolve a half-typed name.
func (p *exprParser) parseFunctionCall() Value {
	first, _ := p.next()
	namespace := (*Token)(nil)
	name := first

	if dot, ok := p.peek(); ok && dot.Type == TokenPeriod {
		if p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == TokenIdentifier {
			p.pos++
			member, _ := p.next()
			ns := first
			namespace = &ns
			name = member
		}
	}

	call := &FunctionCallValue{
		Namespace: namespace,
		Name:      name,
		span:      json.Span{Start: first.Span.Start, End: name.Span.End},
	}
	if !p.expect(TokenLeftParen) {
		return call
	}
	call.span.End = p.tokens[p.pos-1].Span.End

	for {
		tok, ok := p.peek()
		if !ok {
			return call
		}
		if tok.Type == TokenRightParen {
			p.pos++
			call.span.End = tok.Span.End
			return call
		}
		if tok.Type == TokenComma {
			p.pos++
			continue
		}
		arg := p.parseExpression()
		if arg == nil {
			return call
		}
		call.Args = append(call.Args, arg)
		call.span.End = arg.Span().End
	}
}

func deepestAt(v Value, offset int) Value {
	if v == nil || !v.Span().Contains(offset) {
		return nil
	}
	for _, child := range children(v) {
		if found := deepestAt(child, offset); found != nil {
			return found
		}
	}
	return v
}

func walk(v Value, visit func(Value)) {
	if v == nil {
		return
	}
	visit(v)
	for _, child := range children(v) {
		walk(child, visit)
	}
}

func children(v Value) []Value {
	switch n := v.(type) {
	case *FunctionCallValue:
		return n.Args
	case *PropertyAccessValue:
		return []Value{n.Source}
	case *ArrayAccessValue:
		if n.Index != nil {
			return []Value{n.Source, n.Index}
		}
		return []Value{n.Source}
	default:
		return nil
	}
}
