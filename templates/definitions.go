// Package templates builds the document model for a deployment
// template: definitions for parameters, variables, and user-defined
// functions, each lazily deriving typed views of the JSON sub-tree it
// wraps, plus positional queries over the whole document.
package templates

import (
	"strings"

	"github.com/tminor/lsparm/json"
)

// DefinitionKind discriminates the named entities a template declares.
type DefinitionKind string

const (
	KindParameter           DefinitionKind = "Parameter"
	KindVariable            DefinitionKind = "Variable"
	KindFunction            DefinitionKind = "Function"
	KindNamespace           DefinitionKind = "Namespace"
	KindParameterOfFunction DefinitionKind = "ParameterOfFunction"
)

// UsageInfo summarizes a named symbol for display.
type UsageInfo struct {
	Usage        string
	FriendlyType string
	Description  string
}

// NamedDefinition is anything with a defining name token in a template.
// Definitions are created when a document section is first walked and
// are immutable afterward.
type NamedDefinition interface {
	NameValue() *json.StringValue
	Span() json.Span
	Kind() DefinitionKind
	UsageInfo() UsageInfo
}

// ParameterDefinition wraps one property of the top-level parameters
// object.
type ParameterDefinition struct {
	property    *json.Property
	description CachedValue[string]
}

// NewParameterDefinition wraps a parameters-section property. A nil
// property is a caller bug.
func NewParameterDefinition(property *json.Property) *ParameterDefinition {
	if property == nil {
		panic("templates.NewParameterDefinition: nil property")
	}
	return &ParameterDefinition{property: property}
}

func (d *ParameterDefinition) NameValue() *json.StringValue { return d.property.Name() }
func (d *ParameterDefinition) Span() json.Span              { return d.property.Span() }
func (d *ParameterDefinition) Kind() DefinitionKind         { return KindParameter }

// Type returns the declared parameter type, lowercased for display, or
// "" when undeclared.
func (d *ParameterDefinition) Type() string {
	if obj := json.AsObject(d.property.Value()); obj != nil {
		if t := obj.StringPropertyValue("type"); t != nil {
			return strings.ToLower(t.Unquoted())
		}
	}
	return ""
}

// Description returns metadata.description, or "".
func (d *ParameterDefinition) Description() string {
	return d.description.GetOrCacheValue(func() string {
		obj := json.AsObject(d.property.Value())
		if obj == nil {
			return ""
		}
		metadata := obj.ObjectPropertyValue("metadata")
		if metadata == nil {
			return ""
		}
		if description := metadata.StringPropertyValue("description"); description != nil {
			return description.Unquoted()
		}
		return ""
	})
}

// DefaultValue returns the defaultValue member, or nil.
func (d *ParameterDefinition) DefaultValue() json.Value {
	if obj := json.AsObject(d.property.Value()); obj != nil {
		return obj.PropertyValue("defaultValue")
	}
	return nil
}

func (d *ParameterDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        d.NameValue().Unquoted(),
		FriendlyType: "parameter",
		Description:  d.Description(),
	}
}
