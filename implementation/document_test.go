package implementation

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tminor/lsparm/json"
)

const testContent = "{\n  \"a\": 1,\n  \"b\": 2\n}"

func TestPositionToIndex(t *testing.T) {
	tests := []struct {
		name     string
		position protocol.Position
		want     int
	}{
		{"start of document", protocol.Position{Line: 0, Character: 0}, 0},
		{"start of line", protocol.Position{Line: 1, Character: 0}, 2},
		{"inside line", protocol.Position{Line: 1, Character: 3}, 5},
		{"last line", protocol.Position{Line: 3, Character: 0}, 21},
		{"line past end", protocol.Position{Line: 9, Character: 0}, len(testContent)},
		{"character past end", protocol.Position{Line: 3, Character: 50}, len(testContent)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := positionToIndex(testContent, tt.position); got != tt.want {
				t.Errorf("positionToIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndexToPositionRoundTrip(t *testing.T) {
	for index := 0; index <= len(testContent); index++ {
		position := indexToPosition(testContent, index)
		if got := positionToIndex(testContent, position); got != index {
			t.Errorf("round trip of %d produced %d (position %v)", index, got, position)
		}
	}
}

func TestRangeToIndex(t *testing.T) {
	changeRange := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 2, Character: 2},
	}

	start, end := rangeToIndex(testContent, &changeRange)
	if start != 4 || end != 14 {
		t.Errorf("rangeToIndex = (%d, %d), want (4, 14)", start, end)
	}

	// Splicing with these offsets edits exactly the covered text.
	spliced := testContent[:start] + "X" + testContent[end:]
	if spliced != "{\n  X\"b\": 2\n}" {
		t.Errorf("spliced = %q", spliced)
	}
}

func TestSpanToRange(t *testing.T) {
	span := json.Span{Start: 4, End: 7}

	got := spanToRange(testContent, span)
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 5},
	}
	if got != want {
		t.Errorf("spanToRange = %v, want %v", got, want)
	}
}
