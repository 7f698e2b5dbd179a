// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// cursor addresses an element slot inside one node. idx == len(elems) is only
// meaningful for the end sentinel.
type cursor struct {
	node nodeID
	idx  int
}

// Position is implemented by Iterator and ConstIterator so either variant can
// be compared against the other.
type Position[T any] interface {
	position() (*Tree[T], cursor)
}

// Iterator is a mutable position in a tree. It steps through the elements in
// sorted order using only the node it sits in and parent links, without an
// auxiliary stack.
//
// An Iterator stays valid while its node is not touched by an insertion and
// the tree is not reassigned or moved from.
type Iterator[T any] struct {
	t   *Tree[T]
	gen uint64
	c   cursor
}

// ConstIterator is a read-only view over the same position as an Iterator.
type ConstIterator[T any] struct {
	it Iterator[T]
}

func (t *Tree[T]) iterator(c cursor) Iterator[T] {
	return Iterator[T]{t: t, gen: t.gen, c: c}
}

func (t *Tree[T]) constIterator(c cursor) ConstIterator[T] {
	return ConstIterator[T]{it: t.iterator(c)}
}

// check panics if the tree was moved from or reassigned after the position
// was taken.
func (i *Iterator[T]) check() {
	if i.t == nil {
		panic("multiway: use of zero iterator")
	}
	i.t.live()
	if i.gen != i.t.gen {
		panic("multiway: position invalidated by tree reassignment")
	}
}

func (i Iterator[T]) position() (*Tree[T], cursor) {
	return i.t, i.c
}

// Valid reports whether the iterator refers to an element, that is, it is
// not the end sentinel.
func (i Iterator[T]) Valid() bool {
	i.check()
	return i.c.idx < len(i.t.nodes[i.c.node].elems)
}

// Value returns the element at the position. It panics on the end sentinel.
func (i Iterator[T]) Value() T {
	return *i.Ptr()
}

// Ptr returns a pointer to the stored element. Writing through it must not
// change how the element orders against the others. The pointer is
// invalidated by the next insertion into the same node.
func (i Iterator[T]) Ptr() *T {
	i.check()
	n := i.t.nodes[i.c.node]
	if i.c.idx >= len(n.elems) {
		panic("multiway: dereference of end position")
	}
	return &n.elems[i.c.idx]
}

// Next advances to the successor element. It panics on the end sentinel.
func (i *Iterator[T]) Next() {
	i.check()
	i.c = i.t.next(i.c)
}

// Prev retreats to the predecessor element. It panics on the first element.
func (i *Iterator[T]) Prev() {
	i.check()
	i.c = i.t.prev(i.c)
}

// Equal reports whether both positions refer to the same slot of the same
// tree, regardless of whether other is mutable or read-only.
func (i Iterator[T]) Equal(other Position[T]) bool {
	ot, oc := other.position()
	return i.t == ot && i.c == oc
}

// Const returns a read-only view of the position. There is no way back.
func (i Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: i}
}

func (ci ConstIterator[T]) position() (*Tree[T], cursor) {
	return ci.it.position()
}

func (ci ConstIterator[T]) Valid() bool {
	return ci.it.Valid()
}

func (ci ConstIterator[T]) Value() T {
	return ci.it.Value()
}

func (ci *ConstIterator[T]) Next() {
	ci.it.Next()
}

func (ci *ConstIterator[T]) Prev() {
	ci.it.Prev()
}

func (ci ConstIterator[T]) Equal(other Position[T]) bool {
	return ci.it.Equal(other)
}

// next returns the in-order successor of c.
//
// If the child slot right of the element exists, the successor is the
// leftmost element of that subtree. Otherwise it is the next element of the
// same node, and when c was the last one the walk climbs the parent links
// looking for the first ancestor holding an element greater than the one
// just left.
func (t *Tree[T]) next(c cursor) cursor {
	n := t.nodes[c.node]
	if c.idx >= len(n.elems) {
		panic("multiway: advance past end position")
	}

	if child := n.getChild(c.idx + 1); child != noNode {
		return t.nodeBegin(child)
	}

	if c.idx+1 < len(n.elems) {
		return cursor{node: c.node, idx: c.idx + 1}
	}

	last := n.elems[c.idx]
	for n.parent != noNode {
		id := n.parent
		n = t.nodes[id]
		if p := t.search(n.elems, last); p < len(n.elems) {
			return cursor{node: id, idx: p}
		}
	}

	// last was the maximum
	return t.endCursor()
}

// prev returns the in-order predecessor of c, mirroring next: the rightmost
// element of the child slot left of the element, else the previous element
// of the node, else the nearest ancestor element smaller than the one left.
func (t *Tree[T]) prev(c cursor) cursor {
	n := t.nodes[c.node]

	if child := n.getChild(c.idx); child != noNode {
		return t.nodeLast(child)
	}

	if c.idx > 0 {
		return cursor{node: c.node, idx: c.idx - 1}
	}

	if len(n.elems) == 0 {
		panic("multiway: retreat before begin position")
	}

	first := n.elems[0]
	for n.parent != noNode {
		id := n.parent
		n = t.nodes[id]
		if p := t.search(n.elems, first); p > 0 {
			return cursor{node: id, idx: p - 1}
		}
	}

	// first was the minimum
	panic("multiway: retreat before begin position")
}
