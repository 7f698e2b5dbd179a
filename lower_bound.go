// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// LowerBound returns the position of the smallest element that is not less
// than e, or End if every element is smaller.
func (t *Tree[T]) LowerBound(e T) Iterator[T] {
	t.live()
	return t.iterator(t.lowerBound(e))
}

// UpperBound returns the position of the smallest element greater than e, or
// End if there is none.
func (t *Tree[T]) UpperBound(e T) Iterator[T] {
	it := t.LowerBound(e)
	if it.Valid() && t.cmp(it.Value(), e) == 0 {
		it.Next()
	}
	return it
}

// lowerBound descends towards e. Every element below child slot p is
// smaller than elems[p], so the candidate found at the deepest level wins.
func (t *Tree[T]) lowerBound(e T) cursor {
	found := t.endCursor()
	id := t.root
	for id != noNode {
		n := t.nodes[id]
		p := t.search(n.elems, e)
		if p < len(n.elems) {
			found = cursor{node: id, idx: p}
			if t.cmp(n.elems[p], e) == 0 {
				return found
			}
		}
		id = n.getChild(p)
	}
	return found
}
