package templates

import (
	"github.com/tminor/lsparm/hover"
	"github.com/tminor/lsparm/json"
	"github.com/tminor/lsparm/tle"
)

// DeploymentTemplate is the document model for one template version. It
// is built once per document text and replaced wholesale on edit; every
// derived section is computed lazily and cached.
type DeploymentTemplate struct {
	documentText string
	topLevel     *json.ObjectValue
	parseError   error

	parameters CachedValue[[]*ParameterDefinition]
	variables  CachedValue[[]VariableDefinition]
	namespaces CachedValue[[]*UserFunctionNamespaceDefinition]
}

// NewDeploymentTemplate parses documentText into a document model.
// Parse failures are retained as diagnostics, not returned: an
// unparseable document still has a (empty) model.
func NewDeploymentTemplate(documentText string) *DeploymentTemplate {
	t := &DeploymentTemplate{documentText: documentText}
	value, err := json.Parse(documentText)
	if err != nil {
		t.parseError = err
		return t
	}
	t.topLevel = json.AsObject(value)
	return t
}

// DocumentText returns the source the model was built from.
func (t *DeploymentTemplate) DocumentText() string { return t.documentText }

// Errors returns parse diagnostics, empty for a well-formed document.
func (t *DeploymentTemplate) Errors() []error {
	if t.parseError != nil {
		return []error{t.parseError}
	}
	return nil
}

// TopLevelParameters returns the parameter definitions in declaration
// order.
func (t *DeploymentTemplate) TopLevelParameters() []*ParameterDefinition {
	return t.parameters.GetOrCacheValue(func() []*ParameterDefinition {
		if t.topLevel == nil {
			return nil
		}
		parametersObj := t.topLevel.ObjectPropertyValue("parameters")
		if parametersObj == nil {
			return nil
		}
		var definitions []*ParameterDefinition
		for _, p := range parametersObj.Properties() {
			definitions = append(definitions, NewParameterDefinition(p))
		}
		return definitions
	})
}

// TopLevelVariables returns the variable definitions in declaration
// order. A copy array member of the variables object contributes one
// copy-block variable per valid loop spec instead of a variable named
// "copy".
func (t *DeploymentTemplate) TopLevelVariables() []VariableDefinition {
	return t.variables.GetOrCacheValue(func() []VariableDefinition {
		if t.topLevel == nil {
			return nil
		}
		variablesObj := t.topLevel.ObjectPropertyValue("variables")
		if variablesObj == nil {
			return nil
		}
		var definitions []VariableDefinition
		for _, p := range variablesObj.Properties() {
			if json.KeysMatch(p.Name().Unquoted(), copyKey) {
				if copyArray := json.AsArray(p.Value()); copyArray != nil {
					for _, element := range copyArray.Elements() {
						if d := CreateTopLevelCopyBlockVariableIfValid(element); d != nil {
							definitions = append(definitions, d)
						}
					}
					continue
				}
			}
			definitions = append(definitions, NewTopLevelVariableDefinition(p))
		}
		return definitions
	})
}

// Namespaces returns the user-function namespaces in declaration order.
func (t *DeploymentTemplate) Namespaces() []*UserFunctionNamespaceDefinition {
	return t.namespaces.GetOrCacheValue(func() []*UserFunctionNamespaceDefinition {
		if t.topLevel == nil {
			return nil
		}
		functionsArray := t.topLevel.ArrayPropertyValue("functions")
		if functionsArray == nil {
			return nil
		}
		var definitions []*UserFunctionNamespaceDefinition
		for _, element := range functionsArray.Elements() {
			if d := CreateUserFunctionNamespaceIfValid(element); d != nil {
				definitions = append(definitions, d)
			}
		}
		return definitions
	})
}

// GetParameterDefinition finds a parameter by case-insensitive name.
func (t *DeploymentTemplate) GetParameterDefinition(name string) *ParameterDefinition {
	for _, d := range t.TopLevelParameters() {
		if json.KeysMatch(d.NameValue().Unquoted(), name) {
			return d
		}
	}
	return nil
}

// GetVariableDefinition finds a variable by case-insensitive name.
func (t *DeploymentTemplate) GetVariableDefinition(name string) VariableDefinition {
	for _, d := range t.TopLevelVariables() {
		if json.KeysMatch(d.NameValue().Unquoted(), name) {
			return d
		}
	}
	return nil
}

// GetNamespaceDefinition finds a namespace by case-insensitive name.
func (t *DeploymentTemplate) GetNamespaceDefinition(name string) *UserFunctionNamespaceDefinition {
	for _, d := range t.Namespaces() {
		if json.KeysMatch(d.NameValue().Unquoted(), name) {
			return d
		}
	}
	return nil
}

// InfoAt answers "what symbol is at this offset". It returns nil when
// nothing hoverable is there; a malformed construct fails to produce
// info rather than an error.
func (t *DeploymentTemplate) InfoAt(offset int) hover.Info {
	if info := t.definitionInfoAt(offset); info != nil {
		return info
	}

	_, result := t.expressionAt(offset)
	if result == nil {
		return nil
	}

	value := result.FindValueAtOffset(offset)
	switch node := value.(type) {
	case *tle.FunctionCallValue:
		return t.functionCallInfo(node, offset)
	case *tle.StringLiteralValue:
		return t.referenceInfo(node, result.FindFunctionCallAtOffset(offset))
	default:
		return nil
	}
}

// DefinitionAt resolves the reference at offset to its definition, for
// go-to-definition. Returns nil when the offset is not on a resolvable
// reference.
func (t *DeploymentTemplate) DefinitionAt(offset int) NamedDefinition {
	_, result := t.expressionAt(offset)
	if result == nil {
		return nil
	}

	switch node := result.FindValueAtOffset(offset).(type) {
	case *tle.FunctionCallValue:
		if node.Namespace != nil && node.NameSpan().Contains(offset) {
			if ns := t.GetNamespaceDefinition(node.Namespace.Text); ns != nil {
				if member := ns.GetMemberDefinition(node.Name.Text); member != nil {
					return member
				}
			}
		}
		if node.Namespace != nil && node.Namespace.Span.Contains(offset) {
			if ns := t.GetNamespaceDefinition(node.Namespace.Text); ns != nil {
				return ns
			}
		}
	case *tle.StringLiteralValue:
		call := result.FindFunctionCallAtOffset(offset)
		if tle.IsParametersCall(call) {
			if d := t.GetParameterDefinition(node.Unquoted()); d != nil {
				return d
			}
		}
		if tle.IsVariablesCall(call) {
			if d := t.GetVariableDefinition(node.Unquoted()); d != nil {
				return d
			}
		}
	}
	return nil
}

// definitionInfoAt answers hovers over defining name tokens themselves.
func (t *DeploymentTemplate) definitionInfoAt(offset int) hover.Info {
	for _, d := range t.TopLevelParameters() {
		if d.NameValue().Span().Contains(offset) {
			return hover.NewParameterReferenceInfo(d.NameValue().Span(), d.NameValue().Unquoted(), d.Description())
		}
	}
	for _, d := range t.TopLevelVariables() {
		if d.NameValue().Span().Contains(offset) {
			return hover.NewVariableReferenceInfo(d.NameValue().Span(), d.NameValue().Unquoted())
		}
	}
	for _, ns := range t.Namespaces() {
		if ns.NameValue().Span().Contains(offset) {
			return hover.NewUserNamespaceInfo(ns.NameValue().Span(), ns.NameValue().Unquoted(), namespaceMembers(ns))
		}
		for _, member := range ns.Members() {
			if member.NameValue().Span().Contains(offset) {
				return hover.NewUserFunctionInfo(
					member.NameValue().Span(),
					ns.NameValue().Unquoted(),
					member.NameValue().Unquoted(),
					hoverParameters(member),
				)
			}
		}
	}
	return nil
}

func (t *DeploymentTemplate) functionCallInfo(call *tle.FunctionCallValue, offset int) hover.Info {
	if call.Namespace != nil {
		if call.Namespace.Span.Contains(offset) {
			ns := t.GetNamespaceDefinition(call.Namespace.Text)
			if ns == nil {
				return nil
			}
			return hover.NewUserNamespaceInfo(call.Namespace.Span, ns.NameValue().Unquoted(), namespaceMembers(ns))
		}
		if call.NameSpan().Contains(offset) {
			ns := t.GetNamespaceDefinition(call.Namespace.Text)
			if ns == nil {
				return nil
			}
			member := ns.GetMemberDefinition(call.Name.Text)
			if member == nil {
				return nil
			}
			return hover.NewUserFunctionInfo(
				call.NameSpan(),
				ns.NameValue().Unquoted(),
				member.NameValue().Unquoted(),
				hoverParameters(member),
			)
		}
		return nil
	}

	if !call.NameSpan().Contains(offset) {
		return nil
	}
	if metadata := tle.LookupBuiltin(call.Name.Text); metadata != nil {
		return hover.NewFunctionInfo(call.NameSpan(), metadata.Usage, metadata.Description)
	}
	return nil
}

// referenceInfo answers hovers over the string argument of a
// parameters() or variables() call.
func (t *DeploymentTemplate) referenceInfo(literal *tle.StringLiteralValue, call *tle.FunctionCallValue) hover.Info {
	if tle.IsParametersCall(call) {
		if d := t.GetParameterDefinition(literal.Unquoted()); d != nil {
			return hover.NewParameterReferenceInfo(literal.Span(), d.NameValue().Unquoted(), d.Description())
		}
	}
	if tle.IsVariablesCall(call) {
		if d := t.GetVariableDefinition(literal.Unquoted()); d != nil {
			return hover.NewVariableReferenceInfo(literal.Span(), d.NameValue().Unquoted())
		}
	}
	return nil
}

// expressionAt finds the string value containing offset and parses it as
// an expression. Both results are nil when the offset is not inside an
// expression string.
func (t *DeploymentTemplate) expressionAt(offset int) (*json.StringValue, *tle.ParseResult) {
	if t.topLevel == nil {
		return nil, nil
	}
	s := findStringValueAt(t.topLevel, offset)
	if s == nil {
		return nil, nil
	}
	result := tle.Parse(s)
	if result == nil {
		return nil, nil
	}
	return s, result
}

// findStringValueAt descends the JSON tree to the string value whose
// span contains offset, or nil. Property name tokens are not string
// values for this purpose; defining names are handled separately.
func findStringValueAt(value json.Value, offset int) *json.StringValue {
	if value == nil || !value.Span().Contains(offset) {
		return nil
	}
	switch v := value.(type) {
	case *json.StringValue:
		return v
	case *json.ObjectValue:
		for _, p := range v.Properties() {
			if found := findStringValueAt(p.Value(), offset); found != nil {
				return found
			}
		}
	case *json.ArrayValue:
		for _, element := range v.Elements() {
			if found := findStringValueAt(element, offset); found != nil {
				return found
			}
		}
	}
	return nil
}

func hoverParameters(function *UserFunctionDefinition) []hover.Parameter {
	var parameters []hover.Parameter
	for _, p := range function.Parameters() {
		parameters = append(parameters, hover.Parameter{Name: p.Name(), Type: p.Type()})
	}
	return parameters
}

func namespaceMembers(namespace *UserFunctionNamespaceDefinition) []hover.Member {
	var members []hover.Member
	for _, member := range namespace.Members() {
		members = append(members, hover.Member{
			Name:       member.NameValue().Unquoted(),
			Parameters: hoverParameters(member),
		})
	}
	return members
}

func usageSignature(namespaceName string, function *UserFunctionDefinition) string {
	return hover.GetUsage(namespaceName, function.NameValue().Unquoted(), hoverParameters(function))
}
