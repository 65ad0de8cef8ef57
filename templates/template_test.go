package templates

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tminor/lsparm/hover"
	"github.com/tminor/lsparm/json"
)

const testTemplate = `{
  "$schema": "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#",
  "contentVersion": "1.0.0.0",
  "parameters": {
    "vmName": {
      "type": "string",
      "defaultValue": "vm01",
      "metadata": {
        "description": "Name of the virtual machine."
      }
    },
    "untyped": {}
  },
  "variables": {
    "copy": [
      {
        "name": "loopVar",
        "count": 2,
        "input": "[parameters('vmName')]"
      }
    ],
    "storageName": "[concat(parameters('vmName'), uniqueString('salt'))]",
    "diskSettings": {
      "copy": [
        {
          "name": "disks",
          "count": 3,
          "input": "[variables('storageName')]"
        }
      ],
      "caching": "ReadWrite"
    }
  },
  "functions": [
    {
      "namespace": "contoso",
      "members": {
        "uniqueName": {
          "parameters": [
            {"name": "prefix", "type": "string"},
            {"name": "salt"}
          ],
          "output": {
            "type": "string",
            "value": "[concat(parameters('prefix'))]"
          }
        }
      }
    }
  ],
  "resources": [],
  "outputs": {
    "result": {
      "type": "string",
      "value": "[contoso.uniqueName(parameters('vmName'), 'abc')]"
    }
  }
}`

func testDeploymentTemplate(t *testing.T) *DeploymentTemplate {
	t.Helper()
	template := NewDeploymentTemplate(testTemplate)
	if errs := template.Errors(); len(errs) != 0 {
		t.Fatalf("template has parse errors: %v", errs)
	}
	return template
}

// offsetOf returns the document offset of the first occurrence of
// marker, advanced by skip characters.
func offsetOf(t *testing.T, marker string, skip int) int {
	t.Helper()
	index := strings.Index(testTemplate, marker)
	if index < 0 {
		t.Fatalf("marker %q not found", marker)
	}
	return index + skip
}

func TestTopLevelSections(t *testing.T) {
	template := testDeploymentTemplate(t)

	if template.DocumentText() != testTemplate {
		t.Error("DocumentText must return the source verbatim")
	}

	var parameterNames []string
	for _, d := range template.TopLevelParameters() {
		parameterNames = append(parameterNames, d.NameValue().Unquoted())
	}
	if diff := cmp.Diff([]string{"vmName", "untyped"}, parameterNames); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}

	var variableNames []string
	for _, d := range template.TopLevelVariables() {
		variableNames = append(variableNames, d.NameValue().Unquoted())
	}
	if diff := cmp.Diff([]string{"loopVar", "storageName", "diskSettings"}, variableNames); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	if template.GetParameterDefinition("VMNAME") == nil {
		t.Error("parameter lookup should be case-insensitive")
	}
	if template.GetVariableDefinition("loopVar") == nil {
		t.Error("top-level copy block should define a variable")
	}
	if template.GetNamespaceDefinition("contoso") == nil {
		t.Error("namespace contoso should be defined")
	}
	if template.GetParameterDefinition("missing") != nil {
		t.Error("unknown parameter should resolve to nil")
	}
}

func TestParameterDefinitionViews(t *testing.T) {
	template := testDeploymentTemplate(t)

	vmName := template.GetParameterDefinition("vmName")
	if got, want := vmName.Type(), "string"; got != want {
		t.Errorf("type = %q, want %q", got, want)
	}
	if got, want := vmName.Description(), "Name of the virtual machine."; got != want {
		t.Errorf("description = %q, want %q", got, want)
	}
	defaultValue := json.AsString(vmName.DefaultValue())
	if defaultValue == nil || defaultValue.Unquoted() != "vm01" {
		t.Errorf("default value = %v, want string vm01", vmName.DefaultValue())
	}

	untyped := template.GetParameterDefinition("untyped")
	if got := untyped.Type(); got != "" {
		t.Errorf("untyped type = %q, want empty", got)
	}
	if got := untyped.Description(); got != "" {
		t.Errorf("untyped description = %q, want empty", got)
	}
	if untyped.DefaultValue() != nil {
		t.Errorf("untyped default value = %v, want nil", untyped.DefaultValue())
	}
}

func TestInfoAtReferences(t *testing.T) {
	template := testDeploymentTemplate(t)

	tests := []struct {
		name   string
		marker string
		skip   int
		want   string
	}{
		{
			name:   "parameter reference argument",
			marker: `parameters('vmName'), 'abc'`,
			skip:   len("parameters(") + 2,
			want:   "**vmName** (parameter)\nName of the virtual machine.",
		},
		{
			name:   "variable reference argument",
			marker: `variables('storageName')`,
			skip:   len("variables(") + 2,
			want:   "**storageName** (variable)",
		},
		{
			name:   "builtin function name",
			marker: `concat(parameters('vmName')`,
			skip:   1,
			want:   "**concat(arg1, arg2, arg3, ...)**\nCombines multiple string or array values and returns the combined value.",
		},
		{
			name:   "user function name",
			marker: `contoso.uniqueName(`,
			skip:   len("contoso.") + 1,
			want:   "**contoso.uniqueName(prefix [string], salt)** User-defined function",
		},
		{
			name:   "namespace in call",
			marker: `contoso.uniqueName(`,
			skip:   1,
			want:   "**contoso** User-defined namespace\nMembers:\n* uniqueName(prefix [string], salt)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := template.InfoAt(offsetOf(t, tt.marker, tt.skip))
			if info == nil {
				t.Fatal("InfoAt returned nil")
			}
			if got := info.HoverText(); got != tt.want {
				t.Errorf("hover text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoAtDefinitionNames(t *testing.T) {
	template := testDeploymentTemplate(t)

	info := template.InfoAt(offsetOf(t, `"vmName": {`, 2))
	parameterInfo, ok := info.(*hover.ParameterReferenceInfo)
	if !ok {
		t.Fatalf("info = %T, want *hover.ParameterReferenceInfo", info)
	}
	if got, want := parameterInfo.HoverText(), "**vmName** (parameter)\nName of the virtual machine."; got != want {
		t.Errorf("hover text = %q, want %q", got, want)
	}

	info = template.InfoAt(offsetOf(t, `"storageName": "[concat`, 2))
	if _, ok := info.(*hover.VariableReferenceInfo); !ok {
		t.Fatalf("info = %T, want *hover.VariableReferenceInfo", info)
	}

	info = template.InfoAt(offsetOf(t, `"uniqueName": {`, 2))
	if _, ok := info.(*hover.UserFunctionInfo); !ok {
		t.Fatalf("info = %T, want *hover.UserFunctionInfo", info)
	}
}

func TestInfoAtNothing(t *testing.T) {
	template := testDeploymentTemplate(t)

	tests := []struct {
		name   string
		marker string
		skip   int
	}{
		{"whitespace", "\n  \"contentVersion\"", 0},
		{"plain string value", `"ReadWrite"`, 2},
		{"unknown reference", `uniqueString('salt')`, len("uniqueString('s")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if info := template.InfoAt(offsetOf(t, tt.marker, tt.skip)); info != nil {
				t.Errorf("InfoAt = %v (%q), want nil", info, info.HoverText())
			}
		})
	}
}

func TestDefinitionAt(t *testing.T) {
	template := testDeploymentTemplate(t)

	definition := template.DefinitionAt(offsetOf(t, `parameters('vmName'), 'abc'`, len("parameters(")+2))
	if definition == nil {
		t.Fatal("DefinitionAt returned nil")
	}
	if got, want := definition.NameValue().Unquoted(), "vmName"; got != want {
		t.Errorf("definition name = %q, want %q", got, want)
	}
	wantStart := offsetOf(t, `"vmName"`, 0)
	if got := definition.NameValue().Span().Start; got != wantStart {
		t.Errorf("definition name span start = %d, want %d", got, wantStart)
	}

	definition = template.DefinitionAt(offsetOf(t, `contoso.uniqueName(`, len("contoso.")+1))
	if definition == nil || definition.Kind() != KindFunction {
		t.Fatalf("definition = %v, want user function", definition)
	}

	if template.DefinitionAt(offsetOf(t, `"contentVersion"`, 2)) != nil {
		t.Error("non-reference offset should resolve to nil")
	}
}

func TestUnparseableDocumentHasEmptyModel(t *testing.T) {
	template := NewDeploymentTemplate(`{"parameters": `)

	if len(template.Errors()) == 0 {
		t.Error("expected parse errors")
	}
	if got := template.TopLevelParameters(); len(got) != 0 {
		t.Errorf("parameters = %v, want none", got)
	}
	if template.InfoAt(3) != nil {
		t.Error("InfoAt over a broken document should find nothing")
	}
}
