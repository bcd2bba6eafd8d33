package syntax

// Builder assembles a Tree. The first node added becomes the root; nodes
// must be added in document order below their parents.
type Builder struct {
	t *Tree
}

func NewBuilder(src string, version int) *Builder {
	return &Builder{t: &Tree{src: src, version: version}}
}

// Add appends n as the last child of parent and returns its id. Pass NoNode
// as parent for the root.
func (b *Builder) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(b.t.nodes))
	n.Parent = parent
	n.Children = nil
	b.t.nodes = append(b.t.nodes, n)
	if parent != NoNode {
		b.t.nodes[parent].Children = append(b.t.nodes[parent].Children, id)
	}
	return id
}

// Tree finalises the builder. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := b.t
	t.hasErr = make([]bool, len(t.nodes))
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if n.Err != "" {
			t.hasErr[i] = true
		}
		if t.hasErr[i] && n.Parent != NoNode {
			t.hasErr[n.Parent] = true
		}
	}
	t.Walk(t.Root(), func(id NodeID) bool {
		n := t.nodes[id]
		if len(n.Children) == 0 && n.End > n.Start {
			t.leaves = append(t.leaves, id)
		}
		return true
	})
	b.t = nil
	return t
}
