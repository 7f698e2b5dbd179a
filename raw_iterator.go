// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// rawIterator visits each of the nodes in the tree in pre-order, children in
// slot order. Unlike Iterator it keeps an explicit stack, which is fine for
// diagnostics.
type rawIterator[T any] struct {
	t *Tree[T]

	// stack keeps track of nodes in the frontier.
	stack []rawStackEntry

	// pos is the current position of the iterator.
	pos   *node[T]
	depth int
}

// rawStackEntry pairs a frontier node with its depth below the root.
type rawStackEntry struct {
	id    nodeID
	depth int
}

func (t *Tree[T]) rawIterator() *rawIterator[T] {
	return &rawIterator[T]{
		t:     t,
		stack: []rawStackEntry{{id: t.root}},
	}
}

// Front returns the current node that has been iterated to.
func (i *rawIterator[T]) Front() *node[T] {
	return i.pos
}

// Depth returns the depth of the current node, zero for the root.
func (i *rawIterator[T]) Depth() int {
	return i.depth
}

// Next advances the iterator to the next node, returning false once every
// node has been visited.
func (i *rawIterator[T]) Next() bool {
	if len(i.stack) == 0 {
		i.pos = nil
		return false
	}

	n := len(i.stack)
	last := i.stack[n-1]
	i.stack = i.stack[:n-1]

	elem := i.t.nodes[last.id]
	// Push the children in reverse so the first slot pops first.
	for itr := len(elem.children) - 1; itr >= 0; itr-- {
		if ch := elem.children[itr]; ch != noNode {
			i.stack = append(i.stack, rawStackEntry{id: ch, depth: last.depth + 1})
		}
	}

	i.pos = elem
	i.depth = last.depth
	return true
}
