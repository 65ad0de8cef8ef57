package tle

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tminor/lsparm/json"
)

func TestScan(t *testing.T) {
	tokens := scan("[concat('a''b', 12)]", 0)

	want := []Token{
		{TokenLeftBracket, json.Span{Start: 0, End: 1}, "["},
		{TokenIdentifier, json.Span{Start: 1, End: 7}, "concat"},
		{TokenLeftParen, json.Span{Start: 7, End: 8}, "("},
		{TokenLiteral, json.Span{Start: 8, End: 14}, "'a''b'"},
		{TokenComma, json.Span{Start: 14, End: 15}, ","},
		{TokenNumber, json.Span{Start: 16, End: 18}, "12"},
		{TokenRightParen, json.Span{Start: 18, End: 19}, ")"},
		{TokenRightBracket, json.Span{Start: 19, End: 20}, "]"},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanBaseOffset(t *testing.T) {
	tokens := scan("[x]", 100)

	if got, want := tokens[1].Span, (json.Span{Start: 101, End: 102}); got != want {
		t.Errorf("identifier span = %v, want %v", got, want)
	}
}

func TestScanUnterminatedLiteral(t *testing.T) {
	tokens := scan("'abc", 0)

	if len(tokens) != 1 || tokens[0].Type != TokenLiteral {
		t.Fatalf("tokens = %v, want one literal", tokens)
	}
	if got, want := tokens[0].Span, (json.Span{Start: 0, End: 4}); got != want {
		t.Errorf("span = %v, want %v", got, want)
	}
}

func TestScanUnrecognized(t *testing.T) {
	tokens := scan("a # b", 0)

	if len(tokens) != 3 {
		t.Fatalf("tokens = %v, want 3", tokens)
	}
	if tokens[1].Type != TokenUnrecognized {
		t.Errorf("token 1 type = %v, want unrecognized", tokens[1].Type)
	}
}
