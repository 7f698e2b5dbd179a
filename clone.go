// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// Clone returns an independent deep copy of the tree. Every node is
// duplicated and every parent and child index is remapped into the new arena,
// so inserting into either tree never affects the other. A location cache is
// not copied; the clone starts with an empty cache of the same size.
func (t *Tree[T]) Clone() *Tree[T] {
	t.live()
	nt := &Tree[T]{
		maxNodeElems: t.maxNodeElems,
		size:         t.size,
		cmp:          t.cmp,
	}
	nt.nodes, nt.root = t.cloneArena()
	if t.cache != nil {
		nt.cache = t.cache.fresh()
	}
	return nt
}

// cloneArena copies the node arena. Nodes are renumbered in arena order and
// every parent and child index is rewritten through remap.
func (t *Tree[T]) cloneArena() ([]*node[T], nodeID) {
	remap := make(map[nodeID]nodeID, len(t.nodes))
	nodes := make([]*node[T], 0, len(t.nodes))
	for _, n := range t.nodes {
		nn := n.clone()
		nn.id = nodeID(len(nodes))
		remap[n.id] = nn.id
		nodes = append(nodes, nn)
	}
	for _, nn := range nodes {
		if nn.parent != noNode {
			nn.parent = remap[nn.parent]
		}
		for i, ch := range nn.children {
			if ch != noNode {
				nn.children[i] = remap[ch]
			}
		}
	}
	return nodes, remap[t.root]
}

// CopyFrom replaces the contents of t with a deep copy of src. Copying a tree
// onto itself does nothing. Positions previously taken from t are
// invalidated.
func (t *Tree[T]) CopyFrom(src *Tree[T]) {
	if t == src {
		return
	}
	c := src.Clone()
	t.adopt(c)
}

// Move transfers the node graph to a new tree without copying it. t is left
// moved-from: any further use of it or of positions taken from it panics.
func (t *Tree[T]) Move() *Tree[T] {
	t.live()
	nt := &Tree[T]{}
	nt.adopt(t)
	t.release()
	return nt
}

// MoveFrom replaces the contents of t with the node graph of src without
// copying it, leaving src moved-from. Moving a tree onto itself does nothing.
func (t *Tree[T]) MoveFrom(src *Tree[T]) {
	if t == src {
		return
	}
	src.live()
	t.adopt(src)
	src.release()
}

// adopt takes over the graph of src. The generation is bumped so positions
// into the graph t held before are rejected.
func (t *Tree[T]) adopt(src *Tree[T]) {
	gen := t.gen + 1
	if src.gen >= gen {
		gen = src.gen + 1
	}
	t.nodes = src.nodes
	t.root = src.root
	t.maxNodeElems = src.maxNodeElems
	t.size = src.size
	t.cmp = src.cmp
	t.cache = src.cache
	t.gen = gen
}

func (t *Tree[T]) release() {
	t.nodes = nil
	t.root = noNode
	t.size = 0
	t.cache = nil
	t.gen++
}
