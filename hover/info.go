// Package hover renders the symbol under a cursor as markdown. Every
// Info variant binds a source span to display data already validated by
// the definition layer; nothing here does I/O or signals errors.
package hover

import (
	"fmt"
	"strings"

	"github.com/tminor/lsparm/json"
)

// Info describes one hoverable symbol.
type Info interface {
	Span() json.Span
	HoverText() string
}

// Parameter is one formal parameter of a user-defined function, reduced
// to what the usage signature needs. Type is "" when undeclared.
type Parameter struct {
	Name string
	Type string
}

// Member is one function of a user-defined namespace.
type Member struct {
	Name       string
	Parameters []Parameter
}

// GetUsage formats a usage signature like ns.f(a, b [string]). The
// namespace prefix is omitted when namespaceName is empty; a parameter
// with a declared type renders as "name [type]" with the type lowercased.
func GetUsage(namespaceName, functionName string, parameters []Parameter) string {
	rendered := make([]string, 0, len(parameters))
	for _, p := range parameters {
		if p.Type != "" {
			rendered = append(rendered, fmt.Sprintf("%s [%s]", p.Name, strings.ToLower(p.Type)))
		} else {
			rendered = append(rendered, p.Name)
		}
	}

	name := functionName
	if namespaceName != "" {
		name = namespaceName + "." + functionName
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(rendered, ", "))
}

// FunctionInfo describes a built-in template function.
type FunctionInfo struct {
	span        json.Span
	usage       string
	description string
}

func NewFunctionInfo(span json.Span, usage, description string) *FunctionInfo {
	return &FunctionInfo{span: span, usage: usage, description: description}
}

func (i *FunctionInfo) Span() json.Span { return i.span }

func (i *FunctionInfo) HoverText() string {
	text := fmt.Sprintf("**%s**", i.usage)
	if i.description != "" {
		text += "\n" + i.description
	}
	return text
}

// UserFunctionInfo describes a user-defined function, optionally
// qualified by its namespace.
type UserFunctionInfo struct {
	span          json.Span
	namespaceName string
	functionName  string
	parameters    []Parameter
}

func NewUserFunctionInfo(span json.Span, namespaceName, functionName string, parameters []Parameter) *UserFunctionInfo {
	return &UserFunctionInfo{
		span:          span,
		namespaceName: namespaceName,
		functionName:  functionName,
		parameters:    parameters,
	}
}

func (i *UserFunctionInfo) Span() json.Span { return i.span }

func (i *UserFunctionInfo) Usage() string {
	return GetUsage(i.namespaceName, i.functionName, i.parameters)
}

func (i *UserFunctionInfo) HoverText() string {
	return fmt.Sprintf("**%s** User-defined function", i.Usage())
}

// UserNamespaceInfo describes a user-defined function namespace and
// lists its members.
type UserNamespaceInfo struct {
	span    json.Span
	name    string
	members []Member
}

func NewUserNamespaceInfo(span json.Span, name string, members []Member) *UserNamespaceInfo {
	return &UserNamespaceInfo{span: span, name: name, members: members}
}

func (i *UserNamespaceInfo) Span() json.Span { return i.span }

func (i *UserNamespaceInfo) HoverText() string {
	text := fmt.Sprintf("**%s** User-defined namespace", i.name)
	if len(i.members) == 0 {
		return text + "\nNo members"
	}
	text += "\nMembers:"
	for _, m := range i.members {
		text += "\n* " + GetUsage("", m.Name, m.Parameters)
	}
	return text
}

// ParameterReferenceInfo describes a reference to a template parameter.
type ParameterReferenceInfo struct {
	span        json.Span
	name        string
	description string
}

func NewParameterReferenceInfo(span json.Span, name, description string) *ParameterReferenceInfo {
	return &ParameterReferenceInfo{span: span, name: name, description: description}
}

func (i *ParameterReferenceInfo) Span() json.Span { return i.span }

func (i *ParameterReferenceInfo) HoverText() string {
	text := fmt.Sprintf("**%s** (parameter)", i.name)
	if i.description != "" {
		text += "\n" + i.description
	}
	return text
}

// VariableReferenceInfo describes a reference to a template variable.
type VariableReferenceInfo struct {
	span json.Span
	name string
}

func NewVariableReferenceInfo(span json.Span, name string) *VariableReferenceInfo {
	return &VariableReferenceInfo{span: span, name: name}
}

func (i *VariableReferenceInfo) Span() json.Span { return i.span }

func (i *VariableReferenceInfo) HoverText() string {
	return fmt.Sprintf("**%s** (variable)", i.name)
}
