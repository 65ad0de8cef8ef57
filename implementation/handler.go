package implementation

import (
	"github.com/op/go-logging"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = logging.MustGetLogger("lsparm")

// Handler routes LSP requests to the functions in this package.
var Handler protocol.Handler

func init() {
	Handler = protocol.Handler{
		Initialize:  Initialize,
		Initialized: Initialized,
		Shutdown:    Shutdown,
		SetTrace:    SetTrace,

		TextDocumentDidOpen:   TextDocumentDidOpen,
		TextDocumentDidChange: TextDocumentDidChange,
		TextDocumentDidSave:   TextDocumentDidSave,
		TextDocumentDidClose:  TextDocumentDidClose,

		TextDocumentHover:          TextDocumentHover,
		TextDocumentDefinition:     TextDocumentDefinition,
		TextDocumentDocumentSymbol: TextDocumentDocumentSymbol,
	}
}
