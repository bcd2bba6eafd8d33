package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kindFile Kind = iota
	kindStmt
	kindWord
	kindSpace
	kindMissing
)

var kindNames = map[Kind]string{
	kindFile:    "File",
	kindStmt:    "Stmt",
	kindWord:    "Word",
	kindSpace:   "Space",
	kindMissing: "Missing",
}

// sample builds "foo bar;\nbaz" with the second statement missing its ';'.
func sample() *Tree {
	src := "foo bar;\nbaz"
	b := NewBuilder(src, 3)
	root := b.Add(NoNode, Node{Kind: kindFile, Start: 0, End: len(src)})
	s1 := b.Add(root, Node{Kind: kindStmt, Start: 0, End: 8})
	b.Add(s1, Node{Kind: kindWord, Start: 0, End: 3})
	b.Add(s1, Node{Kind: kindSpace, Start: 3, End: 4})
	b.Add(s1, Node{Kind: kindWord, Start: 4, End: 7})
	b.Add(s1, Node{Kind: kindWord, Start: 7, End: 8})
	b.Add(root, Node{Kind: kindSpace, Start: 8, End: 9})
	s2 := b.Add(root, Node{Kind: kindStmt, Start: 9, End: 12})
	b.Add(s2, Node{Kind: kindWord, Start: 9, End: 12})
	b.Add(s2, Node{Kind: kindMissing, Start: 12, End: 12, Err: "expected ;"})
	return b.Tree()
}

func TestTreeStructure(t *testing.T) {
	tree := sample()

	require.Equal(t, NodeID(0), tree.Root())
	assert.Equal(t, 3, tree.Version())
	assert.Len(t, tree.Children(tree.Root()), 3)
	assert.Equal(t, "foo bar;", tree.Text(1))
	assert.Equal(t, NodeID(1), tree.Parent(2))
	assert.Equal(t, NoNode, tree.Parent(0))
	assert.Equal(t, NoNode, tree.Parent(99))
}

func TestTreeErrors(t *testing.T) {
	tree := sample()

	assert.True(t, tree.HasError(tree.Root()))
	assert.False(t, tree.HasError(1))
	assert.True(t, tree.HasError(7))
	assert.Equal(t, NodeID(9), tree.FirstError(tree.Root()))
	assert.Equal(t, NoNode, tree.FirstError(1))
}

func TestLeafAt(t *testing.T) {
	tree := sample()

	tests := []struct {
		offset int
		want   string
	}{
		{0, "foo"},
		{3, " "},
		{7, ";"},
		{8, "\n"},
		{11, "baz"},
		{12, "baz"},
	}
	for _, tt := range tests {
		id := tree.LeafAt(tt.offset)
		require.NotEqual(t, NoNode, id, "offset %d", tt.offset)
		assert.Equal(t, tt.want, tree.Text(id), "offset %d", tt.offset)
	}
	assert.Equal(t, NoNode, tree.LeafAt(13))
}

func TestLeafNavigation(t *testing.T) {
	tree := sample()
	trivia := Kinds(kindSpace)

	assert.Equal(t, ";", tree.Text(tree.LeafBefore(9, trivia)))
	assert.Equal(t, "baz", tree.Text(tree.LeafAfter(8, trivia)))
	assert.Equal(t, NoNode, tree.LeafAfter(12, trivia))
	assert.Equal(t, ";", tree.Text(tree.LastLeaf(1, trivia)))
	assert.Equal(t, "baz", tree.Text(tree.LastLeaf(tree.Root(), trivia)))
	assert.Equal(t, "foo", tree.Text(tree.FirstLeaf(tree.Root(), nil)))
	assert.Equal(t, NodeID(5), tree.ChildText(1, ";"))
	assert.Equal(t, NoNode, tree.ChildText(7, ";"))
}

func TestFind(t *testing.T) {
	tree := sample()

	assert.Equal(t, NodeID(7), tree.Find(9, 12, kindStmt))
	assert.Equal(t, NodeID(7), tree.Find(9, 13, kindStmt), "falls back to a node starting at the same offset")
	assert.Equal(t, NoNode, tree.Find(9, 12, kindSpace))
	assert.Equal(t, NodeID(1), tree.Ancestor(2, Kinds(kindStmt)))
	assert.Equal(t, NodeID(8), tree.Child(7, Kinds(kindWord)))
}

func TestKindSet(t *testing.T) {
	var empty KindSet
	words := Kinds(kindWord)

	assert.False(t, empty.Has(kindWord))
	assert.True(t, words.Or(Kinds(kindSpace)).Has(kindSpace))
	assert.False(t, words.Has(kindStmt))
}

func TestDump(t *testing.T) {
	got := sample().Dump(func(k Kind) string { return kindNames[k] })
	want := `File [0,12)
  Stmt [0,8)
    Word [0,3) "foo"
    Space [3,4) " "
    Word [4,7) "bar"
    Word [7,8) ";"
  Space [8,9) "\n"
  Stmt [9,12)
    Word [9,12) "baz"
    Missing [12,12) error: expected ;
`
	assert.Equal(t, want, got)
}
