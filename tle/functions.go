package tle

import "strings"

// FunctionMetadata describes one built-in template function for display.
type FunctionMetadata struct {
	Name        string
	Usage       string
	Description string
}

// Builtins lists the built-in template functions hover can describe.
var Builtins = []FunctionMetadata{
	{"add", "add(operand1, operand2)", "Returns the sum of the two provided integers."},
	{"base64", "base64(inputString)", "Returns the base64 representation of the input string."},
	{"concat", "concat(arg1, arg2, arg3, ...)", "Combines multiple string or array values and returns the combined value."},
	{"copyIndex", "copyIndex([loopName], [offset])", "Returns the index of an iteration loop."},
	{"createArray", "createArray(arg1, arg2, arg3, ...)", "Returns an array from the provided values."},
	{"deployment", "deployment()", "Returns information about the current deployment operation."},
	{"div", "div(operand1, operand2)", "Returns the integer division of the two provided integers."},
	{"equals", "equals(arg1, arg2)", "Checks whether two values equal each other."},
	{"first", "first(arg1)", "Returns the first element of the array, or first character of the string."},
	{"format", "format(formatString, arg1, arg2, ...)", "Creates a formatted string from input values."},
	{"greater", "greater(arg1, arg2)", "Checks whether the first value is greater than the second value."},
	{"if", "if(condition, trueValue, falseValue)", "Returns a value based on whether a condition is true or false."},
	{"int", "int(valueToConvert)", "Converts the specified value to an integer."},
	{"json", "json(arg1)", "Returns a JSON object from the specified string."},
	{"last", "last(arg1)", "Returns the last element of the array, or last character of the string."},
	{"length", "length(arg1)", "Returns the number of elements in an array, characters in a string, or root-level properties in an object."},
	{"less", "less(arg1, arg2)", "Checks whether the first value is less than the second value."},
	{"mul", "mul(operand1, operand2)", "Returns the multiplication of the two provided integers."},
	{"parameters", "parameters(parameterName)", "Returns a parameter value. The specified parameter name must be defined in the parameters section of the template."},
	{"reference", "reference(resourceName or resourceIdentifier, [apiVersion], ['Full'])", "Returns an object representing a resource's runtime state."},
	{"resourceGroup", "resourceGroup()", "Returns an object that represents the current resource group."},
	{"resourceId", "resourceId([subscriptionId], [resourceGroupName], resourceType, resourceName1, [resourceName2]...)", "Returns the unique identifier of a resource."},
	{"string", "string(valueToConvert)", "Converts the specified value to a string."},
	{"sub", "sub(operand1, operand2)", "Returns the subtraction of the two provided integers."},
	{"subscription", "subscription()", "Returns details about the subscription for the current deployment."},
	{"take", "take(originalValue, numberToTake)", "Returns an array or string with the specified number of elements or characters from the start of the original."},
	{"uniqueString", "uniqueString(baseValue, ...)", "Creates a deterministic hash string based on the values provided as parameters."},
	{"uri", "uri(baseUri, relativeUri)", "Creates an absolute URI from the baseUri and relativeUri string."},
	{"variables", "variables(variableName)", "Returns the value of a variable. The specified variable name must be defined in the variables section of the template."},
}

// LookupBuiltin finds built-in function metadata by case-insensitive name.
func LookupBuiltin(name string) *FunctionMetadata {
	for i := range Builtins {
		if strings.EqualFold(Builtins[i].Name, name) {
			return &Builtins[i]
		}
	}
	return nil
}
