// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

import "slices"

// nodeID addresses a node inside the tree's arena.
type nodeID int32

const noNode nodeID = -1

// node is a bounded bucket of sorted elements. A node holding m elements
// partitions the key space into m+1 child slots: every element under
// children[i] sits between elems[i-1] and elems[i].
//
// Nodes do not point at each other. Children and parent are arena indexes,
// so cloning the arena keeps every link intact.
type node[T any] struct {
	id     nodeID
	parent nodeID
	elems  []T

	// children is nil until the first child is spawned, then holds
	// maxNodeElems+1 slots.
	children []nodeID
}

func (n *node[T]) getChild(i int) nodeID {
	if n.children == nil {
		return noNode
	}
	return n.children[i]
}

func (n *node[T]) setChild(i int, child nodeID, maxNodeElems int) {
	if n.children == nil {
		n.children = make([]nodeID, maxNodeElems+1)
		for itr := range n.children {
			n.children[itr] = noNode
		}
	}
	n.children[i] = child
}

func (n *node[T]) numChildren() int {
	count := 0
	for _, ch := range n.children {
		if ch != noNode {
			count++
		}
	}
	return count
}

func (n *node[T]) clone() *node[T] {
	nn := &node[T]{
		id:     n.id,
		parent: n.parent,
		elems:  slices.Clone(n.elems),
	}
	if n.children != nil {
		nn.children = slices.Clone(n.children)
	}
	return nn
}

// allocNode appends a new empty node to the arena.
func (t *Tree[T]) allocNode(parent nodeID) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, &node[T]{
		id:     id,
		parent: parent,
	})
	return id
}

// recursiveInsert places e in the subtree rooted at id. A full node hands the
// element down to the child slot at its insertion point, spawning that child
// when it is absent. Nodes never split.
func (t *Tree[T]) recursiveInsert(id nodeID, e T) (cursor, bool) {
	n := t.nodes[id]
	if len(n.elems) == 0 {
		n.elems = append(n.elems, e)
		return cursor{node: id, idx: 0}, true
	}

	p := t.search(n.elems, e)
	if t.matchAt(n.elems, p, e) {
		return cursor{node: id, idx: p}, false
	}

	if len(n.elems) < t.maxNodeElems {
		n.elems = slices.Insert(n.elems, p, e)
		return cursor{node: id, idx: p}, true
	}

	child := n.getChild(p)
	if child == noNode {
		child = t.allocNode(id)
		n.setChild(p, child, t.maxNodeElems)
	}
	return t.recursiveInsert(child, e)
}

// recursiveFind returns the position of e in the subtree rooted at id, or the
// end sentinel of the tree.
func (t *Tree[T]) recursiveFind(id nodeID, e T) cursor {
	n := t.nodes[id]
	p := t.search(n.elems, e)
	if t.matchAt(n.elems, p, e) {
		return cursor{node: id, idx: p}
	}
	if child := n.getChild(p); child != noNode {
		return t.recursiveFind(child, e)
	}
	return t.endCursor()
}

// nodeBegin returns the leftmost element of the subtree rooted at id.
func (t *Tree[T]) nodeBegin(id nodeID) cursor {
	for {
		child := t.nodes[id].getChild(0)
		if child == noNode {
			return cursor{node: id, idx: 0}
		}
		id = child
	}
}

// nodeEnd returns the position one past the rightmost element of the subtree
// rooted at id.
func (t *Tree[T]) nodeEnd(id nodeID) cursor {
	for {
		n := t.nodes[id]
		child := n.getChild(len(n.elems))
		if child == noNode {
			return cursor{node: id, idx: len(n.elems)}
		}
		id = child
	}
}

// nodeLast returns the rightmost element of the subtree rooted at id.
func (t *Tree[T]) nodeLast(id nodeID) cursor {
	c := t.nodeEnd(id)
	c.idx--
	return c
}
