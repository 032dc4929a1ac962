package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"tinyc/internal/lsp"
)

const lsName = "tinyc" // Name identifier for the language server

var (
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	tinyHandler := lsp.NewTinyHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     tinyHandler.Initialize,
		Initialized:                    tinyHandler.Initialized,
		Shutdown:                       tinyHandler.Shutdown,
		SetTrace:                       tinyHandler.SetTrace,
		TextDocumentDidOpen:            tinyHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           tinyHandler.TextDocumentDidClose,
		TextDocumentDidChange:          tinyHandler.TextDocumentDidChange,
		TextDocumentSemanticTokensFull: tinyHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting tinyc LSP server...")

	// Serve over standard input/output (used by most editors for LSP)
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting tinyc LSP server:", err)
		os.Exit(1)
	}
}
