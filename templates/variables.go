package templates

import "github.com/tminor/lsparm/json"

// copyKey is the well-known member that declares iteration. All copy
// lookups go through json.KeysMatch with this key so the call sites
// cannot drift apart.
const copyKey = "copy"

// VariableDefinition is either kind of top-level variable.
type VariableDefinition interface {
	NamedDefinition
	Value() json.Value
}

// TopLevelVariableDefinition wraps one property of the top-level
// variables object. Its value is computed lazily: an object value
// containing a copy array is rewritten so loop-generated members look
// like ordinary named members; anything else passes through unchanged.
type TopLevelVariableDefinition struct {
	property *json.Property
	value    CachedValue[json.Value]
}

// NewTopLevelVariableDefinition wraps a variables-section property. A
// nil property is a caller bug.
func NewTopLevelVariableDefinition(property *json.Property) *TopLevelVariableDefinition {
	if property == nil {
		panic("templates.NewTopLevelVariableDefinition: nil property")
	}
	return &TopLevelVariableDefinition{property: property}
}

func (d *TopLevelVariableDefinition) NameValue() *json.StringValue { return d.property.Name() }
func (d *TopLevelVariableDefinition) Span() json.Span              { return d.property.Span() }
func (d *TopLevelVariableDefinition) Kind() DefinitionKind         { return KindVariable }

func (d *TopLevelVariableDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        d.NameValue().Unquoted(),
		FriendlyType: "variable",
	}
}

// Value returns the variable's effective value, expanding a contained
// copy block on first access. A pure function of the wrapped JSON,
// computed once.
func (d *TopLevelVariableDefinition) Value() json.Value {
	return d.value.GetOrCacheValue(func() json.Value {
		return expandCopyBlocks(d.property.Value())
	})
}

// expandCopyBlocks rewrites {"copy":[{"name":n,...,"input":x}], rest...}
// into {rest..., n: [x]}. The synthesized member is a one-element array
// wrapping the loop input verbatim; count is never evaluated, since the
// model only answers "is there a value and what shape is it". Values
// without a copy array are returned unchanged. Copy blocks nested
// inside an input are never expanded (the language forbids nesting).
func expandCopyBlocks(value json.Value) json.Value {
	obj := json.AsObject(value)
	if obj == nil {
		return value
	}

	var copyArray *json.ArrayValue
	for _, p := range obj.Properties() {
		if json.KeysMatch(p.Name().Unquoted(), copyKey) {
			if copyArray = json.AsArray(p.Value()); copyArray != nil {
				break
			}
		}
	}
	if copyArray == nil {
		return value
	}

	var properties []*json.Property
	for _, p := range obj.Properties() {
		if !json.KeysMatch(p.Name().Unquoted(), copyKey) {
			properties = append(properties, p)
		}
	}
	for _, element := range copyArray.Elements() {
		if property := copyBlockMember(element); property != nil {
			properties = append(properties, property)
		}
	}
	return json.NewObject(obj.Span(), properties)
}

// copyBlockMember synthesizes the member a single loop spec contributes,
// or nil when the spec is malformed. Malformed specs are skipped
// silently; a separate validation pass owns reporting them.
func copyBlockMember(element json.Value) *json.Property {
	elementObj := json.AsObject(element)
	if elementObj == nil {
		return nil
	}
	name := elementObj.StringPropertyValue("name")
	input := elementObj.Property("input")
	if name == nil || input == nil {
		return nil
	}
	return json.NewProperty(name, json.NewSyntheticArray([]json.Value{input.Value()}))
}

// TopLevelCopyBlockVariableDefinition is one element of the top-level
// variables copy array: the iteration itself declares the variable.
type TopLevelCopyBlockVariableDefinition struct {
	object *json.ObjectValue
	name   *json.StringValue
	value  json.Value
}

// CreateTopLevelCopyBlockVariableIfValid returns a definition only when
// value is an object with a string name and a present input of any
// kind. Anything else yields nil, not an error: malformed copy entries
// are diagnosed elsewhere.
func CreateTopLevelCopyBlockVariableIfValid(value json.Value) *TopLevelCopyBlockVariableDefinition {
	obj := json.AsObject(value)
	if obj == nil {
		return nil
	}
	name := obj.StringPropertyValue("name")
	input := obj.Property("input")
	if name == nil || input == nil {
		return nil
	}
	return &TopLevelCopyBlockVariableDefinition{
		object: obj,
		name:   name,
		value:  json.NewSyntheticArray([]json.Value{input.Value()}),
	}
}

func (d *TopLevelCopyBlockVariableDefinition) NameValue() *json.StringValue { return d.name }
func (d *TopLevelCopyBlockVariableDefinition) Span() json.Span              { return d.object.Span() }
func (d *TopLevelCopyBlockVariableDefinition) Kind() DefinitionKind         { return KindVariable }

// Value is the one-element array wrapping the loop input, computed
// eagerly at construction.
func (d *TopLevelCopyBlockVariableDefinition) Value() json.Value { return d.value }

func (d *TopLevelCopyBlockVariableDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        d.name.Unquoted(),
		FriendlyType: "variable",
	}
}
