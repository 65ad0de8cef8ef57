package implementation

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// protocol.InitializeFunc signature
func Initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	capabilities := Handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindIncremental
	capabilities.HoverProvider = true
	capabilities.DefinitionProvider = true
	capabilities.DocumentSymbolProvider = true

	return &protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "arm-template-lsp",
		},
	}, nil
}

// protocol.InitializedFunc signature
func Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// protocol.ShutdownFunc signature
func Shutdown(context *glsp.Context) error {
	return nil
}

// protocol.SetTraceFunc signature
func SetTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}
