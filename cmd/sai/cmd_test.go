package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/smartenter/project"
	"github.com/dhamidi/smartenter/repair"
	"github.com/dhamidi/smartenter/text"
)

func TestParseAt(t *testing.T) {
	buf := text.NewBuffer("class A {\n    int x;\n}\n")

	off, err := parseAt(buf, "2:5")
	require.NoError(t, err)
	assert.Equal(t, 14, off)

	_, err = parseAt(buf, "2")
	assert.Error(t, err)
	_, err = parseAt(buf, "x:1")
	assert.Error(t, err)
	_, err = parseAt(buf, "9:1")
	assert.ErrorIs(t, err, text.ErrOutOfRange)
}

func TestWriteWithCaret(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, writeWithCaret(&plain, "foo();", 6, false))
	assert.Equal(t, "foo();", plain.String())

	var shown bytes.Buffer
	require.NoError(t, writeWithCaret(&shown, "foo();", 6, true))
	assert.Contains(t, shown.String(), "|")
	assert.True(t, bytes.HasPrefix(shown.Bytes(), []byte("foo();")))
}

func TestConvergeFile(t *testing.T) {
	src := "class A {\n    void m() {\n        int x = 1;\n    }\n}\n"
	path := filepath.Join(t.TempDir(), "A.java")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	r, err := convergeFile(context.Background(), path, project.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 6, r.lines)
	assert.False(t, r.failed(), "failures: %v", r.failures)
	assert.Zero(t, r.outcomes[repair.OutcomeRolledBack])

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(after))
}

func TestConvergeFileCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.java")
	require.NoError(t, os.WriteFile(path, []byte("class A {}\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := convergeFile(ctx, path, project.DefaultSettings())
	assert.ErrorIs(t, err, context.Canceled)
}
