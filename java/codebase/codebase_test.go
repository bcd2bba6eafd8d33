package codebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/smartenter/project"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

const doc = "class A {\n    void m() {\n        foo(\n    }\n}\n"

func TestPositionConversion(t *testing.T) {
	src := []byte("ab\né\U0001F600x\n")
	off, err := OffsetOf(src, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3+2+4, off, "é is one unit, the emoji two")

	line, char := PositionOf(src, off)
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, char)

	off, err = OffsetOf(src, 0, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, off, "clamped to the end of the line")

	_, err = OffsetOf(src, 5, 0)
	assert.ErrorIs(t, err, text.ErrOutOfRange)
}

func TestSmartEnterUpdatesDocument(t *testing.T) {
	cb := NewWithSettings(t.TempDir(), project.DefaultSettings())
	cb.UpdateFile("/A.java", []byte(doc), 3)

	res, err := cb.SmartEnter("/A.java", 2, 12, false)
	require.NoError(t, err)
	assert.Equal(t, repair.OutcomeCompleted, res.Outcome)
	assert.Equal(t, doc, string(res.Old))
	assert.Contains(t, string(res.New), "        foo();\n")
	assert.Equal(t, 2, res.Line)
	assert.Equal(t, 14, res.Character)

	f := cb.GetFile("/A.java")
	require.NotNil(t, f)
	assert.Equal(t, string(res.New), string(f.Content))
	assert.Equal(t, int32(3), f.Version)
}

func TestSmartEnterUnknownFile(t *testing.T) {
	cb := NewWithSettings(t.TempDir(), project.DefaultSettings())
	_, err := cb.SmartEnter("/missing.java", 0, 0, false)
	assert.ErrorIs(t, err, ErrUnknownFile)
}

func TestSmartEnterCommand(t *testing.T) {
	ls := NewLSPServer("test")
	root := t.TempDir()
	result, err := ls.initialize(nil, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)
	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.Capabilities.ExecuteCommandProvider)
	assert.Equal(t, []string{SmartEnterCommand}, init.Capabilities.ExecuteCommandProvider.Commands)

	uri := "file:///src/A.java"
	require.NoError(t, ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Version: 1, Text: doc},
	}))

	out, err := ls.workspaceExecuteCommand(nil, &protocol.ExecuteCommandParams{
		Command: SmartEnterCommand,
		Arguments: []any{map[string]any{
			"uri": uri, "line": 2, "character": 12,
		}},
	})
	require.NoError(t, err)
	res, ok := out.(*SmartEnterResult)
	require.True(t, ok)
	assert.Equal(t, "completed", res.Outcome)
	assert.Equal(t, protocol.Position{Line: 2, Character: 14}, res.Position)

	edits := res.Edit.Changes[uri]
	require.Len(t, edits, 1)
	assert.Equal(t, protocol.Position{Line: 5, Character: 0}, edits[0].Range.End)
	assert.Contains(t, edits[0].NewText, "foo();")

	_, err = ls.workspaceExecuteCommand(nil, &protocol.ExecuteCommandParams{Command: "other"})
	assert.Error(t, err)

	require.NoError(t, ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Nil(t, ls.codebase.GetFile("/src/A.java"))
}

func TestRequestsBeforeInitialize(t *testing.T) {
	ls := NewLSPServer("test")
	uri := "file:///src/A.java"

	err := ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Version: 1, Text: doc},
	})
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = ls.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: doc}},
	})
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = ls.textDocumentDidSave(nil, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = ls.workspaceExecuteCommand(nil, &protocol.ExecuteCommandParams{
		Command:   SmartEnterCommand,
		Arguments: []any{map[string]any{"uri": uri, "line": 2, "character": 12}},
	})
	assert.ErrorIs(t, err, ErrNotInitialized)
}
