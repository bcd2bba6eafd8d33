package smartenter

import (
	"sync"

	"github.com/dhamidi/smartenter/java/parser"
	"github.com/dhamidi/smartenter/syntax"
	"github.com/dhamidi/smartenter/text"
)

// Committer parses Java buffers into syntax trees. The last tree is cached
// per buffer and version, so committing an unchanged buffer is free.
type Committer struct {
	mu      sync.Mutex
	buf     *text.Buffer
	version int
	tree    *syntax.Tree
	parses  int
}

func NewCommitter() *Committer {
	return &Committer{}
}

func (c *Committer) Commit(buf *text.Buffer) (*syntax.Tree, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tree != nil && c.buf == buf && c.version == buf.Version() {
		return c.tree, nil
	}
	c.buf, c.version = buf, buf.Version()
	c.tree = Convert(parser.Parse(buf.Bytes(), parser.WithTrivia()), buf.String(), buf.Version())
	c.parses++
	return c.tree, nil
}

// Parses is the number of parses performed so far.
func (c *Committer) Parses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parses
}

// Convert flattens a parser tree into a syntax.Tree over src. Leaves keep
// their token kind, and node errors become structural errors.
func Convert(root *parser.Node, src string, version int) *syntax.Tree {
	b := syntax.NewBuilder(src, version)
	var add func(parent syntax.NodeID, n *parser.Node)
	add = func(parent syntax.NodeID, n *parser.Node) {
		node := syntax.Node{
			Kind:  syntax.Kind(n.Kind),
			Start: n.Span.Start.Offset,
			End:   n.Span.End.Offset,
		}
		if n.Token != nil {
			node.Token = int(n.Token.Kind)
		}
		if n.Error != nil {
			node.Err = n.Error.Message
		}
		if parent == syntax.NoNode {
			node.Start, node.End = 0, len(src)
		}
		id := b.Add(parent, node)
		for _, c := range n.Children {
			add(id, c)
		}
	}
	if root == nil {
		root = &parser.Node{Kind: parser.KindCompilationUnit}
	}
	add(syntax.NoNode, root)
	return b.Tree()
}
