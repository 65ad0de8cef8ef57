package templates

import (
	"strings"

	"github.com/tminor/lsparm/json"
)

// UserFunctionNamespaceDefinition wraps one element of the top-level
// functions array.
type UserFunctionNamespaceDefinition struct {
	object  *json.ObjectValue
	name    *json.StringValue
	members CachedValue[[]*UserFunctionDefinition]
}

// CreateUserFunctionNamespaceIfValid returns a definition only when
// value is an object with a string namespace member; otherwise nil.
func CreateUserFunctionNamespaceIfValid(value json.Value) *UserFunctionNamespaceDefinition {
	obj := json.AsObject(value)
	if obj == nil {
		return nil
	}
	name := obj.StringPropertyValue("namespace")
	if name == nil {
		return nil
	}
	return &UserFunctionNamespaceDefinition{object: obj, name: name}
}

func (d *UserFunctionNamespaceDefinition) NameValue() *json.StringValue { return d.name }
func (d *UserFunctionNamespaceDefinition) Span() json.Span              { return d.object.Span() }
func (d *UserFunctionNamespaceDefinition) Kind() DefinitionKind         { return KindNamespace }

func (d *UserFunctionNamespaceDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        d.name.Unquoted(),
		FriendlyType: "function namespace",
	}
}

// Members returns the namespace's functions in declaration order.
func (d *UserFunctionNamespaceDefinition) Members() []*UserFunctionDefinition {
	return d.members.GetOrCacheValue(func() []*UserFunctionDefinition {
		membersObj := d.object.ObjectPropertyValue("members")
		if membersObj == nil {
			return nil
		}
		var members []*UserFunctionDefinition
		for _, p := range membersObj.Properties() {
			members = append(members, newUserFunctionDefinition(d, p))
		}
		return members
	})
}

// GetMemberDefinition finds a member by case-insensitive name, or nil.
func (d *UserFunctionNamespaceDefinition) GetMemberDefinition(name string) *UserFunctionDefinition {
	for _, member := range d.Members() {
		if json.KeysMatch(member.NameValue().Unquoted(), name) {
			return member
		}
	}
	return nil
}

// UserFunctionDefinition wraps one member property of a namespace. The
// namespace association is non-owning; both live exactly as long as the
// document model.
type UserFunctionDefinition struct {
	namespace  *UserFunctionNamespaceDefinition
	property   *json.Property
	parameters CachedValue[[]*UserFunctionParameterDefinition]
}

func newUserFunctionDefinition(namespace *UserFunctionNamespaceDefinition, property *json.Property) *UserFunctionDefinition {
	if namespace == nil || property == nil {
		panic("templates.newUserFunctionDefinition: nil argument")
	}
	return &UserFunctionDefinition{namespace: namespace, property: property}
}

func (d *UserFunctionDefinition) NameValue() *json.StringValue { return d.property.Name() }
func (d *UserFunctionDefinition) Span() json.Span              { return d.property.Span() }
func (d *UserFunctionDefinition) Kind() DefinitionKind         { return KindFunction }

// Namespace returns the owning namespace definition.
func (d *UserFunctionDefinition) Namespace() *UserFunctionNamespaceDefinition { return d.namespace }

// Parameters returns the declared formal parameters in order. Entries
// without a string name are skipped.
func (d *UserFunctionDefinition) Parameters() []*UserFunctionParameterDefinition {
	return d.parameters.GetOrCacheValue(func() []*UserFunctionParameterDefinition {
		obj := json.AsObject(d.property.Value())
		if obj == nil {
			return nil
		}
		parametersArray := obj.ArrayPropertyValue("parameters")
		if parametersArray == nil {
			return nil
		}
		var parameters []*UserFunctionParameterDefinition
		for _, element := range parametersArray.Elements() {
			if p := createUserFunctionParameterIfValid(element); p != nil {
				parameters = append(parameters, p)
			}
		}
		return parameters
	})
}

// Output returns the function's output member, or nil.
func (d *UserFunctionDefinition) Output() json.Value {
	if obj := json.AsObject(d.property.Value()); obj != nil {
		return obj.PropertyValue("output")
	}
	return nil
}

func (d *UserFunctionDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        usageSignature(d.namespace.NameValue().Unquoted(), d),
		FriendlyType: "user-defined function",
	}
}

// UserFunctionParameterDefinition is one formal parameter of a
// user-defined function.
type UserFunctionParameterDefinition struct {
	object    *json.ObjectValue
	nameValue *json.StringValue
	typeValue *json.StringValue
}

func createUserFunctionParameterIfValid(value json.Value) *UserFunctionParameterDefinition {
	obj := json.AsObject(value)
	if obj == nil {
		return nil
	}
	name := obj.StringPropertyValue("name")
	if name == nil {
		return nil
	}
	return &UserFunctionParameterDefinition{
		object:    obj,
		nameValue: name,
		typeValue: obj.StringPropertyValue("type"),
	}
}

func (d *UserFunctionParameterDefinition) NameValue() *json.StringValue { return d.nameValue }
func (d *UserFunctionParameterDefinition) Span() json.Span              { return d.object.Span() }
func (d *UserFunctionParameterDefinition) Kind() DefinitionKind         { return KindParameterOfFunction }

func (d *UserFunctionParameterDefinition) Name() string { return d.nameValue.Unquoted() }

// Type returns the declared type lowercased for display, or "".
func (d *UserFunctionParameterDefinition) Type() string {
	if d.typeValue == nil {
		return ""
	}
	return strings.ToLower(d.typeValue.Unquoted())
}

func (d *UserFunctionParameterDefinition) UsageInfo() UsageInfo {
	return UsageInfo{
		Usage:        d.Name(),
		FriendlyType: "function parameter",
	}
}
