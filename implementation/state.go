package implementation

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tminor/lsparm/templates"
)

// DocumentState is the model built for one version of a document. It is
// created whole, never patched; an edit deletes it and a fresh state is
// built from the new text.
type DocumentState struct {
	Template    *templates.DeploymentTemplate
	Diagnostics []protocol.Diagnostic
}

var documentStates sync.Map // protocol.DocumentUri to DocumentState

func validateDocumentState(uri protocol.DocumentUri, notify glsp.NotifyFunc) *DocumentState {
	documentState, created := _getOrCreateDocumentState(uri)

	if created {
		go notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: documentState.Diagnostics,
		})
	}

	return documentState
}

func deleteDocumentState(uri protocol.DocumentUri) {
	documentStates.Delete(uri)
}

func _getOrCreateDocumentState(uri protocol.DocumentUri) (*DocumentState, bool) {
	if documentState, ok := documentStates.Load(uri); ok {
		return documentState.(*DocumentState), false
	}
	documentState := _createDocumentState(uri)
	if existing, loaded := documentStates.LoadOrStore(uri, documentState); loaded {
		return existing.(*DocumentState), false
	}
	return documentState, true
}

func _createDocumentState(uri protocol.DocumentUri) *DocumentState {
	var documentState DocumentState

	content, _ := getDocument(uri)
	documentState.Template = templates.NewDeploymentTemplate(content)

	severity := protocol.DiagnosticSeverityError
	for _, err := range documentState.Template.Errors() {
		log.Errorf("%s: %s", uri, err.Error())
		documentState.Diagnostics = append(documentState.Diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: &severity,
			Message:  err.Error(),
		})
	}
	// Clients treat a missing report as "keep stale diagnostics", so an
	// empty list is published explicitly.
	if documentState.Diagnostics == nil {
		documentState.Diagnostics = []protocol.Diagnostic{}
	}

	return &documentState
}
