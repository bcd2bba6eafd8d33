package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeAnchorExcludesBoundaryInsertions(t *testing.T) {
	b := NewBuffer("foo(bar)")
	a := b.Anchor(4, 7)

	require.NoError(t, b.Insert(4, "x"))
	require.NoError(t, b.Insert(8, "y"))

	assert.Equal(t, "foo(xbary)", b.String())
	assert.Equal(t, 5, a.Start())
	assert.Equal(t, 8, a.End())
	assert.Equal(t, "bar", b.Slice(a.Start(), a.End()))
}

func TestAnchorGravity(t *testing.T) {
	b := NewBuffer("return")
	left := b.Point(6, StickLeft)
	right := b.Point(6, StickRight)

	require.NoError(t, b.Insert(6, ";"))

	assert.Equal(t, 6, left.Offset())
	assert.Equal(t, 7, right.Offset())
}

func TestAnchorReplacedRegion(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		gravity Gravity
		want    int
	}{
		{"before", 1, StickLeft, 1},
		{"at start", 2, StickRight, 2},
		{"inside left", 3, StickLeft, 2},
		{"inside right", 3, StickRight, 7},
		{"at end", 5, StickLeft, 7},
		{"after", 6, StickLeft, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer("0123456789")
			a := b.Point(tt.offset, tt.gravity)
			require.NoError(t, b.Replace(2, 5, "abcde"))
			assert.Equal(t, tt.want, a.Offset())
		})
	}
}

func TestAnchorDispose(t *testing.T) {
	b := NewBuffer("abc")
	a := b.Point(1, StickLeft)
	a.Dispose()
	a.Dispose()
	require.NoError(t, b.Insert(0, "xx"))

	assert.True(t, a.Disposed())
	assert.Equal(t, 1, a.Offset(), "disposed anchors stop tracking")

	var nilAnchor *Anchor
	nilAnchor.Dispose()
}

func TestAnchorSurvivesReset(t *testing.T) {
	b := NewBuffer("while")
	a := b.Anchor(0, 5)
	require.NoError(t, b.Replace(0, 5, "while ()"))
	b.Reset("while")
	assert.Equal(t, 0, a.Start())
	assert.Equal(t, 5, a.End())
}
