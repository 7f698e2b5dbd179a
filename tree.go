// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package multiway implements an in-memory multiway search tree.
//
// Each node stores up to maxNodeElems sorted elements and partitions the key
// space into one more subtree than it has elements. Nodes fill up before they
// spawn children and are never split or rebalanced, so the shape of the tree
// depends on insertion order. Elements are unique; inserting an element that
// is already present leaves the tree unchanged.
//
// A Tree is not safe for concurrent use.
package multiway

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/exp/constraints"
)

// DefaultMaxNodeElems is the per-node capacity used by callers that have no
// better figure.
const DefaultMaxNodeElems = 40

// Tree is an ordered set of unique elements stored in a multiway search tree.
type Tree[T any] struct {
	// nodes is the arena owning every node. nodes[root] is the root. A nil
	// arena marks a tree that has been moved from.
	nodes []*node[T]
	root  nodeID

	maxNodeElems int
	size         int
	cmp          func(a, b T) int

	// gen changes whenever the whole node graph is replaced, which
	// invalidates outstanding positions.
	gen uint64

	cache locationCache[T]
}

// WalkFn is used when walking the tree. Takes an element, returning if
// iteration should be terminated.
type WalkFn[T any] func(e T) bool

// New returns an empty tree of ordered elements holding at most maxNodeElems
// elements per node. It panics if maxNodeElems is less than one.
func New[T constraints.Ordered](maxNodeElems int, opts ...Option) *Tree[T] {
	t, cfg := newTree[T](maxNodeElems, compareOrdered[T], opts)
	if cfg.locationCacheSize > 0 {
		t.cache = newLRULocationCache[T](cfg.locationCacheSize)
	}
	return t
}

// NewFunc returns an empty tree ordered by cmp, which must return a negative
// number when a < b, a positive number when a > b and zero when they are
// equal. It panics if maxNodeElems is less than one or cmp is nil.
func NewFunc[T any](maxNodeElems int, cmp func(a, b T) int, opts ...Option) *Tree[T] {
	if cmp == nil {
		panic("multiway: nil compare function")
	}
	t, cfg := newTree[T](maxNodeElems, cmp, opts)
	if cfg.locationCacheSize > 0 {
		panic("multiway: location cache requires an ordered element type, use New")
	}
	return t
}

func newTree[T any](maxNodeElems int, cmp func(a, b T) int, opts []Option) (*Tree[T], config) {
	if maxNodeElems < 1 {
		panic(fmt.Sprintf("multiway: invalid node capacity %d", maxNodeElems))
	}
	cfg := newConfig(opts)
	t := &Tree[T]{
		maxNodeElems: maxNodeElems,
		cmp:          cmp,
	}
	t.root = t.allocNode(noNode)
	return t, cfg
}

// live panics if the tree has been moved from.
func (t *Tree[T]) live() {
	if t.nodes == nil {
		panic("multiway: use of moved-from tree")
	}
}

// Len is used to return the number of elements in the tree
func (t *Tree[T]) Len() int {
	t.live()
	return t.size
}

// MaxNodeElems returns the per-node element capacity.
func (t *Tree[T]) MaxNodeElems() int {
	return t.maxNodeElems
}

// Insert adds e if no equal element is present. It returns the position of
// the element equal to e and whether the tree grew. Positions into nodes the
// insertion did not touch stay valid.
func (t *Tree[T]) Insert(e T) (Iterator[T], bool) {
	t.live()
	if t.cache != nil {
		if id, ok := t.cache.get(e); ok {
			n := t.nodes[id]
			if p := t.search(n.elems, e); t.matchAt(n.elems, p, e) {
				return t.iterator(cursor{node: id, idx: p}), false
			}
		}
	}
	c, inserted := t.recursiveInsert(t.root, e)
	if inserted {
		t.size++
		if t.cache != nil {
			t.cache.add(e, c.node)
		}
	}
	return t.iterator(c), inserted
}

// Find returns the position of the element equal to e, or End if there is
// none.
func (t *Tree[T]) Find(e T) Iterator[T] {
	return t.iterator(t.find(e))
}

// FindConst is the read-only counterpart of Find.
func (t *Tree[T]) FindConst(e T) ConstIterator[T] {
	return t.constIterator(t.find(e))
}

// Contains reports whether an element equal to e is present.
func (t *Tree[T]) Contains(e T) bool {
	c := t.find(e)
	return c != t.endCursor()
}

func (t *Tree[T]) find(e T) cursor {
	t.live()
	if t.cache != nil {
		if id, ok := t.cache.get(e); ok {
			n := t.nodes[id]
			if p := t.search(n.elems, e); t.matchAt(n.elems, p, e) {
				return cursor{node: id, idx: p}
			}
		}
	}
	c := t.recursiveFind(t.root, e)
	if t.cache != nil && c != t.endCursor() {
		t.cache.add(e, c.node)
	}
	return c
}

func (t *Tree[T]) beginCursor() cursor {
	return t.nodeBegin(t.root)
}

func (t *Tree[T]) endCursor() cursor {
	return t.nodeEnd(t.root)
}

// Begin returns the position of the smallest element.
func (t *Tree[T]) Begin() Iterator[T] {
	t.live()
	return t.iterator(t.beginCursor())
}

// End returns the position one past the largest element.
func (t *Tree[T]) End() Iterator[T] {
	t.live()
	return t.iterator(t.endCursor())
}

func (t *Tree[T]) CBegin() ConstIterator[T] {
	return t.Begin().Const()
}

func (t *Tree[T]) CEnd() ConstIterator[T] {
	return t.End().Const()
}

// RBegin returns a reverse iterator positioned at the largest element.
func (t *Tree[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: t.End()}
}

// REnd returns the reverse iterator one before the smallest element.
func (t *Tree[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: t.Begin()}
}

func (t *Tree[T]) CRBegin() ConstReverseIterator[T] {
	return t.RBegin().Const()
}

func (t *Tree[T]) CREnd() ConstReverseIterator[T] {
	return t.REnd().Const()
}

// All returns an iterator over the elements in ascending order. The tree
// must not be modified while the sequence is consumed.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.CBegin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements in descending order.
func (t *Tree[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := t.CRBegin(); it.Valid(); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Walk is used to walk the tree in ascending order
func (t *Tree[T]) Walk(fn WalkFn[T]) {
	for e := range t.All() {
		if fn(e) {
			return
		}
	}
}

// WriteTo writes the elements in ascending order separated by single spaces,
// with no trailing delimiter or newline.
func (t *Tree[T]) WriteTo(w io.Writer) (int64, error) {
	var total int64
	sep := ""
	for e := range t.All() {
		n, err := fmt.Fprint(w, sep, e)
		total += int64(n)
		if err != nil {
			return total, err
		}
		sep = " "
	}
	return total, nil
}

// String returns the same dump as WriteTo.
func (t *Tree[T]) String() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

// DFSPrintTree writes one line per node in pre-order, indented by depth.
func (t *Tree[T]) DFSPrintTree(w io.Writer) {
	t.live()
	ri := t.rawIterator()
	for ri.Next() {
		n := ri.Front()
		fmt.Fprintf(w, "%sid -> %d parent -> %d num ch -> %d elems -> %v\n",
			strings.Repeat(" ", 1+ri.Depth()*5), n.id, n.parent, n.numChildren(), n.elems)
	}
}
