package json

import "strings"

// Span is a half-open interval [Start, End) of character offsets in the
// source document. It is never mutated after creation.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Length returns the number of characters covered by the span.
func (s Span) Length() int {
	return s.End - s.Start
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	result := s
	if other.Start < result.Start {
		result.Start = other.Start
	}
	if other.End > result.End {
		result.End = other.End
	}
	return result
}

// ValueKind discriminates the JSON value types.
type ValueKind int

const (
	KindObject ValueKind = iota
	KindArray
	KindString
	KindNumber
	KindBoolean
	KindNull
)

// Value is a node in an immutable parsed JSON tree.
type Value interface {
	Span() Span
	Kind() ValueKind
}

// KeysMatch is the single place that decides whether two property names
// refer to the same member. Template sections match case-insensitively.
func KeysMatch(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Property is a "name": value pair inside an object.
type Property struct {
	name  *StringValue
	value Value
}

// NewProperty wraps a name and value pair. Both arguments are required;
// passing nil is a caller bug.
func NewProperty(name *StringValue, value Value) *Property {
	if name == nil {
		panic("json.NewProperty: nil name")
	}
	if value == nil {
		panic("json.NewProperty: nil value")
	}
	return &Property{name: name, value: value}
}

func (p *Property) Name() *StringValue { return p.name }
func (p *Property) Value() Value       { return p.value }

// Span covers the name through the end of the value.
func (p *Property) Span() Span {
	return p.name.Span().Union(p.value.Span())
}

// ObjectValue is a JSON object with ordered members.
type ObjectValue struct {
	span       Span
	properties []*Property
}

// NewObject builds an object from already-parsed properties. Used both by
// the parser and by transforms that synthesize objects from existing nodes.
func NewObject(span Span, properties []*Property) *ObjectValue {
	return &ObjectValue{span: span, properties: properties}
}

func (o *ObjectValue) Span() Span      { return o.span }
func (o *ObjectValue) Kind() ValueKind { return KindObject }

// Properties returns the members in declaration order.
func (o *ObjectValue) Properties() []*Property { return o.properties }

// Property returns the first member whose name matches, or nil.
func (o *ObjectValue) Property(name string) *Property {
	for _, p := range o.properties {
		if KeysMatch(p.Name().Unquoted(), name) {
			return p
		}
	}
	return nil
}

// PropertyValue returns the named member's value, or nil.
func (o *ObjectValue) PropertyValue(name string) Value {
	if p := o.Property(name); p != nil {
		return p.Value()
	}
	return nil
}

// StringPropertyValue returns the named member's value narrowed to a
// string, or nil if absent or not a string.
func (o *ObjectValue) StringPropertyValue(name string) *StringValue {
	return AsString(o.PropertyValue(name))
}

// ObjectPropertyValue returns the named member's value narrowed to an
// object, or nil.
func (o *ObjectValue) ObjectPropertyValue(name string) *ObjectValue {
	return AsObject(o.PropertyValue(name))
}

// ArrayPropertyValue returns the named member's value narrowed to an
// array, or nil.
func (o *ObjectValue) ArrayPropertyValue(name string) *ArrayValue {
	return AsArray(o.PropertyValue(name))
}

// ArrayValue is a JSON array.
type ArrayValue struct {
	span     Span
	elements []Value
}

// NewArray builds an array from parsed or existing nodes.
func NewArray(span Span, elements []Value) *ArrayValue {
	return &ArrayValue{span: span, elements: elements}
}

// NewSyntheticArray wraps existing nodes in an array that has no source
// text of its own. Its span covers the wrapped elements.
func NewSyntheticArray(elements []Value) *ArrayValue {
	var span Span
	for i, e := range elements {
		if i == 0 {
			span = e.Span()
		} else {
			span = span.Union(e.Span())
		}
	}
	return &ArrayValue{span: span, elements: elements}
}

func (a *ArrayValue) Span() Span        { return a.span }
func (a *ArrayValue) Kind() ValueKind   { return KindArray }
func (a *ArrayValue) Elements() []Value { return a.elements }
func (a *ArrayValue) Length() int       { return len(a.elements) }

// StringValue is a JSON string. Span includes the quotes; UnquotedSpan
// covers only the text between them.
type StringValue struct {
	span         Span
	unquotedSpan Span
	value        string
}

// NewString builds a string node. unquotedSpan locates the value text
// inside span.
func NewString(span Span, unquotedSpan Span, value string) *StringValue {
	return &StringValue{span: span, unquotedSpan: unquotedSpan, value: value}
}

func (s *StringValue) Span() Span         { return s.span }
func (s *StringValue) Kind() ValueKind    { return KindString }
func (s *StringValue) Unquoted() string   { return s.value }
func (s *StringValue) UnquotedSpan() Span { return s.unquotedSpan }

// NumberValue is a JSON number, kept as its source text. The model never
// needs the numeric value.
type NumberValue struct {
	span Span
	text string
}

func NewNumber(span Span, text string) *NumberValue {
	return &NumberValue{span: span, text: text}
}

func (n *NumberValue) Span() Span      { return n.span }
func (n *NumberValue) Kind() ValueKind { return KindNumber }
func (n *NumberValue) Text() string    { return n.text }

// BooleanValue is a JSON true or false.
type BooleanValue struct {
	span  Span
	value bool
}

func NewBoolean(span Span, value bool) *BooleanValue {
	return &BooleanValue{span: span, value: value}
}

func (b *BooleanValue) Span() Span      { return b.span }
func (b *BooleanValue) Kind() ValueKind { return KindBoolean }
func (b *BooleanValue) Value() bool     { return b.value }

// NullValue is a JSON null.
type NullValue struct {
	span Span
}

func NewNull(span Span) *NullValue { return &NullValue{span: span} }

func (n *NullValue) Span() Span      { return n.span }
func (n *NullValue) Kind() ValueKind { return KindNull }

// AsObject narrows v to an object, returning nil otherwise.
func AsObject(v Value) *ObjectValue {
	if o, ok := v.(*ObjectValue); ok {
		return o
	}
	return nil
}

// AsArray narrows v to an array, returning nil otherwise.
func AsArray(v Value) *ArrayValue {
	if a, ok := v.(*ArrayValue); ok {
		return a
	}
	return nil
}

// AsString narrows v to a string, returning nil otherwise.
func AsString(v Value) *StringValue {
	if s, ok := v.(*StringValue); ok {
		return s
	}
	return nil
}
