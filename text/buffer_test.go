package text

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferEdits(t *testing.T) {
	b := NewBuffer("if (x > 0")
	require.NoError(t, b.Insert(9, ")"))
	require.NoError(t, b.Replace(0, 2, "while"))
	require.NoError(t, b.Delete(5, 6))

	assert.Equal(t, "while(x > 0)", b.String())
	assert.Equal(t, 3, b.Version())

	edits := b.Edits(1)
	require.Len(t, edits, 2)
	assert.Equal(t, Edit{Start: 0, End: 2, Text: "while", Version: 2}, edits[0])
	assert.Equal(t, -1, edits[1].Delta())
}

func TestBufferRejectsOutOfRange(t *testing.T) {
	b := NewBuffer("abc")
	err := b.Insert(4, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	var me *MutationError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 4, me.Edit.Start)
	assert.Equal(t, 0, b.Version())
}

func TestBufferProtect(t *testing.T) {
	b := NewBuffer("keep this; edit that")
	guard := b.Protect(0, 9)

	err := b.Insert(4, "!")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.ErrorIs(t, b.Delete(8, 12), ErrReadOnly)

	require.NoError(t, b.Insert(9, ";"))
	require.NoError(t, b.Insert(0, "// "))
	assert.Equal(t, "// keep this;; edit that", b.String())

	guard.Dispose()
	require.NoError(t, b.Insert(7, "!"))
}

func TestBufferDropsDisposedGuards(t *testing.T) {
	b := NewBuffer("keep this; edit that")
	for range 3 {
		b.Protect(0, 4).Dispose()
	}
	kept := b.Protect(0, 4)
	assert.Len(t, b.guards, 1, "disposed guards are dropped when protecting")

	b.Protect(5, 9).Dispose()
	require.NoError(t, b.Insert(len(b.String()), "!"))
	assert.Equal(t, []*Anchor{kept}, b.guards, "disposed guards are dropped by edits")
	assert.ErrorIs(t, b.Insert(2, "x"), ErrReadOnly)
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer("abc")
	require.NoError(t, b.Insert(3, "def"))
	guard := b.Protect(0, 6)
	defer guard.Dispose()

	b.Reset("abc")
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, 2, b.Version())

	b.Reset("abc")
	assert.Equal(t, 2, b.Version(), "resetting to identical text is not an edit")
}

func TestBufferLines(t *testing.T) {
	b := NewBuffer("class A {\n    int x;\n\n}")

	assert.Equal(t, 10, b.LineStart(14))
	assert.Equal(t, 20, b.LineEnd(14))
	assert.Equal(t, 1, b.Line(14))
	assert.Equal(t, "    ", b.LineIndent(14))
	assert.True(t, b.IsBlankLine(21))
	assert.False(t, b.IsBlankLine(12))

	line, col := b.Position(16)
	assert.Equal(t, 1, line)
	assert.Equal(t, 6, col)

	off, err := b.Offset(1, 6)
	require.NoError(t, err)
	assert.Equal(t, 16, off)

	off, err = b.Offset(2, 40)
	require.NoError(t, err)
	assert.Equal(t, 21, off)

	_, err = b.Offset(9, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestShift(t *testing.T) {
	data := []byte("foo  \t\nbar")
	assert.Equal(t, 2, ShiftBackward(data, 5, " \t"))
	assert.Equal(t, 6, ShiftForward(data, 3, " \t"))
	assert.Equal(t, -1, ShiftBackward([]byte("   "), 2, " "))
}
