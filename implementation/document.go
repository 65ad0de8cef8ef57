package implementation

import (
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tminor/lsparm/json"
)

// documents holds the current text of opened documents, keyed by URI.
var documents sync.Map // protocol.DocumentUri to string

func getDocument(uri protocol.DocumentUri) (string, bool) {
	if content, ok := documents.Load(uri); ok {
		return content.(string), true
	}
	return "", false
}

func setDocument(uri protocol.DocumentUri, content string) {
	documents.Store(uri, content)
}

func deleteDocument(uri protocol.DocumentUri) {
	documents.Delete(uri)
}

// positionToIndex converts an LSP line/character position to an offset
// into content.
func positionToIndex(content string, position protocol.Position) int {
	index := 0
	for line := protocol.UInteger(0); line < position.Line; line++ {
		next := strings.IndexByte(content[index:], '\n')
		if next < 0 {
			return len(content)
		}
		index += next + 1
	}
	index += int(position.Character)
	if index > len(content) {
		index = len(content)
	}
	return index
}

// indexToPosition converts an offset into content to an LSP position.
func indexToPosition(content string, index int) protocol.Position {
	if index > len(content) {
		index = len(content)
	}
	prefix := content[:index]
	line := strings.Count(prefix, "\n")
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(index - lineStart),
	}
}

// rangeToIndex converts an LSP change range to start and end offsets.
func rangeToIndex(content string, changeRange *protocol.Range) (int, int) {
	return positionToIndex(content, changeRange.Start),
		positionToIndex(content, changeRange.End)
}

// spanToRange converts a model span to an LSP range.
func spanToRange(content string, span json.Span) protocol.Range {
	return protocol.Range{
		Start: indexToPosition(content, span.Start),
		End:   indexToPosition(content, span.End),
	}
}
