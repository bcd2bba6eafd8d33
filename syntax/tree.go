// Package syntax holds the immutable, arena-allocated syntax tree produced
// by a commit. Nodes are addressed by NodeID and are only valid for the tree
// that produced them.
package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// NodeID indexes a node inside one Tree.
type NodeID int

// NoNode is returned by lookups that find nothing.
const NoNode NodeID = -1

// Kind is a grammar-defined node kind. The syntax package attaches no
// meaning to its values.
type Kind int

// KindSet is a pure predicate over kinds.
type KindSet func(Kind) bool

// Kinds returns a set matching exactly the given kinds.
func Kinds(kinds ...Kind) KindSet {
	m := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return func(k Kind) bool { return m[k] }
}

// Has reports whether k is in the set. A nil set is empty.
func (s KindSet) Has(k Kind) bool {
	return s != nil && s(k)
}

// Or returns the union of two sets.
func (s KindSet) Or(o KindSet) KindSet {
	return func(k Kind) bool { return s.Has(k) || o.Has(k) }
}

// Node is one element of a Tree. Leaves have no children; Token carries the
// lexer's token kind for leaves. A non-empty Err marks a structural error.
type Node struct {
	Kind     Kind
	Token    int
	Start    int
	End      int
	Parent   NodeID
	Children []NodeID
	Err      string
}

// Tree is a committed snapshot of a buffer version.
type Tree struct {
	src     string
	version int
	nodes   []Node
	hasErr  []bool
	leaves  []NodeID
}

func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Source returns the text the tree was built from.
func (t *Tree) Source() string { return t.src }

// Version is the buffer version the tree was committed at.
func (t *Tree) Version() int { return t.version }

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the node. Invalid ids yield a zero node with
// Parent set to NoNode.
func (t *Tree) Node(id NodeID) Node {
	if !t.valid(id) {
		return Node{Parent: NoNode}
	}
	return t.nodes[id]
}

func (t *Tree) Kind(id NodeID) Kind {
	return t.Node(id).Kind
}

func (t *Tree) Range(id NodeID) (int, int) {
	n := t.Node(id)
	return n.Start, n.End
}

func (t *Tree) Parent(id NodeID) NodeID {
	return t.Node(id).Parent
}

func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].Children
}

// Text returns the source text covered by the node.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	return t.src[n.Start:n.End]
}

func (t *Tree) IsLeaf(id NodeID) bool {
	return t.valid(id) && len(t.nodes[id].Children) == 0
}

// HasError reports whether the node or any descendant carries an error.
func (t *Tree) HasError(id NodeID) bool {
	return t.valid(id) && t.hasErr[id]
}

// FirstError returns the first error node in document order inside id.
func (t *Tree) FirstError(id NodeID) NodeID {
	found := NoNode
	t.Walk(id, func(n NodeID) bool {
		if found != NoNode || !t.hasErr[n] {
			return false
		}
		if t.nodes[n].Err != "" {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !t.valid(id) {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, fn)
	}
}

// Ancestor returns the closest strict ancestor whose kind is in set.
func (t *Tree) Ancestor(id NodeID, set KindSet) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if set.Has(t.nodes[p].Kind) {
			return p
		}
	}
	return NoNode
}

// Child returns the first direct child whose kind is in set.
func (t *Tree) Child(id NodeID, set KindSet) NodeID {
	for _, c := range t.Children(id) {
		if set.Has(t.nodes[c].Kind) {
			return c
		}
	}
	return NoNode
}

// ChildText returns the first direct child leaf whose text equals s.
func (t *Tree) ChildText(id NodeID, s string) NodeID {
	for _, c := range t.Children(id) {
		n := t.nodes[c]
		if len(n.Children) == 0 && n.End-n.Start == len(s) && t.src[n.Start:n.End] == s {
			return c
		}
	}
	return NoNode
}

// LeafAt returns the non-empty leaf containing offset. An offset at the end
// of the text resolves to the last leaf.
func (t *Tree) LeafAt(offset int) NodeID {
	if len(t.leaves) == 0 || offset < 0 || offset > len(t.src) {
		return NoNode
	}
	if offset == len(t.src) {
		last := t.leaves[len(t.leaves)-1]
		if t.nodes[last].End == offset {
			return last
		}
		return NoNode
	}
	i := sort.Search(len(t.leaves), func(i int) bool {
		return t.nodes[t.leaves[i]].End > offset
	})
	if i < len(t.leaves) && t.nodes[t.leaves[i]].Start <= offset {
		return t.leaves[i]
	}
	return NoNode
}

// LeafBefore returns the last non-empty leaf ending at or before offset whose
// kind is not in skip.
func (t *Tree) LeafBefore(offset int, skip KindSet) NodeID {
	i := sort.Search(len(t.leaves), func(i int) bool {
		return t.nodes[t.leaves[i]].End > offset
	})
	for i--; i >= 0; i-- {
		if !skip.Has(t.nodes[t.leaves[i]].Kind) {
			return t.leaves[i]
		}
	}
	return NoNode
}

// LeafAfter returns the first non-empty leaf starting at or after offset
// whose kind is not in skip.
func (t *Tree) LeafAfter(offset int, skip KindSet) NodeID {
	i := sort.Search(len(t.leaves), func(i int) bool {
		return t.nodes[t.leaves[i]].Start >= offset
	})
	for ; i < len(t.leaves); i++ {
		if !skip.Has(t.nodes[t.leaves[i]].Kind) {
			return t.leaves[i]
		}
	}
	return NoNode
}

// FirstLeaf returns the first non-empty descendant leaf of id whose kind is
// not in skip.
func (t *Tree) FirstLeaf(id NodeID, skip KindSet) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	n := t.nodes[id]
	if len(n.Children) == 0 {
		if n.End > n.Start && !skip.Has(n.Kind) {
			return id
		}
		return NoNode
	}
	for _, c := range n.Children {
		if l := t.FirstLeaf(c, skip); l != NoNode {
			return l
		}
	}
	return NoNode
}

// LastLeaf returns the last non-empty descendant leaf of id whose kind is
// not in skip.
func (t *Tree) LastLeaf(id NodeID, skip KindSet) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	n := t.nodes[id]
	if len(n.Children) == 0 {
		if n.End > n.Start && !skip.Has(n.Kind) {
			return id
		}
		return NoNode
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if l := t.LastLeaf(n.Children[i], skip); l != NoNode {
			return l
		}
	}
	return NoNode
}

// Find returns the outermost node of the given kind spanning exactly
// [start, end). Failing that it returns the outermost node of that kind
// starting at start.
func (t *Tree) Find(start, end int, kind Kind) NodeID {
	exact, loose := NoNode, NoNode
	t.Walk(t.Root(), func(id NodeID) bool {
		n := t.nodes[id]
		if n.End < start || n.Start > end || exact != NoNode {
			return false
		}
		if n.Kind == kind && n.Start == start {
			if n.End == end {
				exact = id
				return false
			}
			if loose == NoNode {
				loose = id
			}
		}
		return true
	})
	if exact != NoNode {
		return exact
	}
	return loose
}

// Dump renders the tree with one node per line. names maps kinds to
// printable names; nil prints the numeric kind.
func (t *Tree) Dump(names func(Kind) string) string {
	var sb strings.Builder
	var dump func(id NodeID, depth int)
	dump = func(id NodeID, depth int) {
		n := t.nodes[id]
		name := fmt.Sprintf("Kind(%d)", n.Kind)
		if names != nil {
			name = names(n.Kind)
		}
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&sb, "%s [%d,%d)", name, n.Start, n.End)
		if len(n.Children) == 0 && n.End > n.Start {
			fmt.Fprintf(&sb, " %q", t.src[n.Start:n.End])
		}
		if n.Err != "" {
			fmt.Fprintf(&sb, " error: %s", n.Err)
		}
		sb.WriteByte('\n')
		for _, c := range n.Children {
			dump(c, depth+1)
		}
	}
	if root := t.Root(); root != NoNode {
		dump(root, 0)
	}
	return sb.String()
}
