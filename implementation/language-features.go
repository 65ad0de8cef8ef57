package implementation

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tminor/lsparm/templates"
)

// TextDocumentHover implements protocol.TextDocumentHoverFunc
func TextDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	documentState := validateDocumentState(params.TextDocument.URI, context.Notify)
	content, ok := getDocument(params.TextDocument.URI)
	if !ok || documentState.Template == nil {
		return nil, nil
	}

	offset := positionToIndex(content, params.Position)
	info := documentState.Template.InfoAt(offset)
	if info == nil {
		return nil, nil
	}

	hoverRange := spanToRange(content, info.Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: info.HoverText(),
		},
		Range: &hoverRange,
	}, nil
}

// TextDocumentDefinition implements protocol.TextDocumentDefinitionFunc
func TextDocumentDefinition(context *glsp.Context, params *protocol.DefinitionParams) (interface{}, error) {
	documentState := validateDocumentState(params.TextDocument.URI, context.Notify)
	content, ok := getDocument(params.TextDocument.URI)
	if !ok || documentState.Template == nil {
		return nil, nil
	}

	offset := positionToIndex(content, params.Position)
	definition := documentState.Template.DefinitionAt(offset)
	if definition == nil {
		return nil, nil
	}

	return protocol.Location{
		URI:   params.TextDocument.URI,
		Range: spanToRange(content, definition.NameValue().Span()),
	}, nil
}

// TextDocumentDocumentSymbol implements protocol.TextDocumentDocumentSymbolFunc
func TextDocumentDocumentSymbol(context *glsp.Context, params *protocol.DocumentSymbolParams) (interface{}, error) {
	documentState := validateDocumentState(params.TextDocument.URI, context.Notify)
	content, ok := getDocument(params.TextDocument.URI)
	if !ok || documentState.Template == nil {
		return nil, nil
	}

	var symbols []protocol.DocumentSymbol
	for _, d := range documentState.Template.TopLevelParameters() {
		symbols = append(symbols, definitionSymbol(content, d, protocol.SymbolKindVariable, nil))
	}
	for _, d := range documentState.Template.TopLevelVariables() {
		symbols = append(symbols, definitionSymbol(content, d, protocol.SymbolKindVariable, nil))
	}
	for _, ns := range documentState.Template.Namespaces() {
		var children []protocol.DocumentSymbol
		for _, member := range ns.Members() {
			children = append(children, definitionSymbol(content, member, protocol.SymbolKindFunction, nil))
		}
		symbols = append(symbols, definitionSymbol(content, ns, protocol.SymbolKindNamespace, children))
	}
	return symbols, nil
}

func definitionSymbol(content string, definition templates.NamedDefinition, kind protocol.SymbolKind, children []protocol.DocumentSymbol) protocol.DocumentSymbol {
	detail := definition.UsageInfo().FriendlyType
	return protocol.DocumentSymbol{
		Name:           definition.NameValue().Unquoted(),
		Detail:         &detail,
		Kind:           kind,
		Range:          spanToRange(content, definition.Span()),
		SelectionRange: spanToRange(content, definition.NameValue().Span()),
		Children:       children,
	}
}
