package templates

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tminor/lsparm/json"
)

const namespaceJSON = `{
  "namespace": "contoso",
  "members": {
    "uniqueName": {
      "parameters": [
        {"name": "prefix", "type": "String"},
        {"name": "salt"},
        {"type": "int"},
        "nope"
      ],
      "output": {"type": "string", "value": "[uniqueString(parameters('prefix'))]"}
    },
    "empty": {}
  }
}`

func namespaceDefinition(t *testing.T) *UserFunctionNamespaceDefinition {
	t.Helper()
	value, err := json.Parse(namespaceJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d := CreateUserFunctionNamespaceIfValid(value)
	if d == nil {
		t.Fatal("CreateUserFunctionNamespaceIfValid returned nil")
	}
	return d
}

func TestCreateUserFunctionNamespaceIfValid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"valid", `{"namespace": "ns", "members": {}}`, true},
		{"no members still valid", `{"namespace": "ns"}`, true},
		{"missing namespace", `{"members": {}}`, false},
		{"namespace not a string", `{"namespace": 3}`, false},
		{"not an object", `["ns"]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := json.Parse(tt.doc)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := CreateUserFunctionNamespaceIfValid(value) != nil; got != tt.valid {
				t.Errorf("valid = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestNamespaceMembers(t *testing.T) {
	ns := namespaceDefinition(t)

	var names []string
	for _, member := range ns.Members() {
		names = append(names, member.NameValue().Unquoted())
	}
	if diff := cmp.Diff([]string{"uniqueName", "empty"}, names); diff != "" {
		t.Errorf("member names mismatch (-want +got):\n%s", diff)
	}

	if ns.GetMemberDefinition("UNIQUENAME") == nil {
		t.Error("member lookup should be case-insensitive")
	}
	if ns.GetMemberDefinition("missing") != nil {
		t.Error("unknown member should resolve to nil")
	}
}

func TestUserFunctionParameters(t *testing.T) {
	ns := namespaceDefinition(t)
	function := ns.GetMemberDefinition("uniqueName")

	parameters := function.Parameters()
	if got, want := len(parameters), 2; got != want {
		t.Fatalf("parameters = %d, want %d (entries without a string name are skipped)", got, want)
	}
	if got, want := parameters[0].Name(), "prefix"; got != want {
		t.Errorf("parameter 0 name = %q, want %q", got, want)
	}
	if got, want := parameters[0].Type(), "string"; got != want {
		t.Errorf("parameter 0 type = %q, want %q (lowercased)", got, want)
	}
	if got, want := parameters[1].Type(), ""; got != want {
		t.Errorf("parameter 1 type = %q, want %q", got, want)
	}
	if parameters[0].Kind() != KindParameterOfFunction {
		t.Errorf("parameter kind = %v, want %v", parameters[0].Kind(), KindParameterOfFunction)
	}
}

func TestUserFunctionUsageInfo(t *testing.T) {
	ns := namespaceDefinition(t)
	function := ns.GetMemberDefinition("uniqueName")

	info := function.UsageInfo()
	if got, want := info.Usage, "contoso.uniqueName(prefix [string], salt)"; got != want {
		t.Errorf("usage = %q, want %q", got, want)
	}
	if got, want := info.FriendlyType, "user-defined function"; got != want {
		t.Errorf("friendly type = %q, want %q", got, want)
	}

	if got, want := function.Namespace(), ns; got != want {
		t.Error("function must reference its owning namespace")
	}
	if function.Output() == nil {
		t.Error("output member should be exposed")
	}
}
