package codebase

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "sai"

// SmartEnterCommand is the workspace command running smart enter.
const SmartEnterCommand = "sai.smartEnter"

// SmartEnterArgs are the arguments of SmartEnterCommand.
type SmartEnterArgs struct {
	URI             protocol.DocumentUri `json:"uri"`
	Line            protocol.UInteger    `json:"line"`
	Character       protocol.UInteger    `json:"character"`
	AfterCompletion bool                 `json:"afterCompletion"`
}

// SmartEnterResult replaces the whole document and places the caret.
type SmartEnterResult struct {
	Edit     protocol.WorkspaceEdit `json:"edit"`
	Position protocol.Position      `json:"position"`
	Outcome  string                 `json:"outcome"`
}

// ErrNotInitialized is returned for requests that arrive before initialize.
var ErrNotInitialized = errors.New("server not initialized")

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	log      commonlog.Logger
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
		log:     commonlog.GetLogger("smartenter.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:              ls.initialize,
		Initialized:             ls.initialized,
		Shutdown:                ls.shutdown,
		SetTrace:                ls.setTrace,
		TextDocumentDidOpen:     ls.textDocumentDidOpen,
		TextDocumentDidChange:   ls.textDocumentDidChange,
		TextDocumentDidClose:    ls.textDocumentDidClose,
		TextDocumentDidSave:     ls.textDocumentDidSave,
		WorkspaceExecuteCommand: ls.workspaceExecuteCommand,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	cb, err := New(rootDir)
	if err != nil {
		return nil, err
	}
	ls.codebase = cb
	if p := cb.Settings().Path; p != "" {
		ls.log.Infof("settings from %s", p)
	}

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{SmartEnterCommand},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) ready() (*Codebase, error) {
	if ls.codebase == nil {
		return nil, ErrNotInitialized
	}
	return ls.codebase, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	cb, err := ls.ready()
	if err != nil {
		return err
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	cb.UpdateFile(path, []byte(params.TextDocument.Text), params.TextDocument.Version)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	cb, err := ls.ready()
	if err != nil {
		return err
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			cb.UpdateFile(path, []byte(textChange.Text), params.TextDocument.Version)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	cb, err := ls.ready()
	if err != nil {
		return err
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	cb.RemoveFile(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	cb, err := ls.ready()
	if err != nil {
		return err
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		version := int32(0)
		if f := cb.GetFile(path); f != nil {
			version = f.Version
		}
		cb.UpdateFile(path, []byte(*params.Text), version)
		return nil
	}
	return cb.ScanFile(path)
}

func (ls *LSPServer) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != SmartEnterCommand {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("%s: expected one argument, got %d", SmartEnterCommand, len(params.Arguments))
	}
	raw, err := json.Marshal(params.Arguments[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SmartEnterCommand, err)
	}
	var args SmartEnterArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%s: %w", SmartEnterCommand, err)
	}
	return ls.smartEnter(args)
}

func (ls *LSPServer) smartEnter(args SmartEnterArgs) (*SmartEnterResult, error) {
	cb, err := ls.ready()
	if err != nil {
		return nil, err
	}
	path, err := uriToPath(args.URI)
	if err != nil {
		return nil, err
	}
	line, err := safecast.Conv[int](args.Line)
	if err != nil {
		return nil, err
	}
	character, err := safecast.Conv[int](args.Character)
	if err != nil {
		return nil, err
	}

	res, err := cb.SmartEnter(path, line, character, args.AfterCompletion)
	if err != nil {
		ls.log.Errorf("smart enter in %s: %s", path, err)
		return nil, err
	}
	ls.log.Debugf("smart enter in %s at %d:%d: %s", path, line, character, res.Outcome)

	end, err := toPosition(PositionOf(res.Old, len(res.Old)))
	if err != nil {
		return nil, err
	}
	caret, err := toPosition(res.Line, res.Character)
	if err != nil {
		return nil, err
	}
	return &SmartEnterResult{
		Edit: protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				args.URI: {{
					Range:   protocol.Range{End: end},
					NewText: string(res.New),
				}},
			},
		},
		Position: caret,
		Outcome:  res.Outcome.String(),
	}, nil
}

func toPosition(line, character int) (protocol.Position, error) {
	l, err := safecast.Conv[protocol.UInteger](line)
	if err != nil {
		return protocol.Position{}, err
	}
	c, err := safecast.Conv[protocol.UInteger](character)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: l, Character: c}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
