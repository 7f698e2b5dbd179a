// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// ReversePosition is implemented by ReverseIterator and ConstReverseIterator.
type ReversePosition[T any] interface {
	reverseBase() Position[T]
}

// ReverseIterator is used to iterate over the elements in descending order.
// It wraps a base position and refers to the element just before it, so
// RBegin wraps End and REnd wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// ConstReverseIterator is the read-only counterpart of ReverseIterator.
type ConstReverseIterator[T any] struct {
	base ConstIterator[T]
}

// Base returns the underlying forward position, one after the element the
// reverse iterator refers to.
func (ri ReverseIterator[T]) Base() Iterator[T] {
	return ri.base
}

// Valid reports whether the reverse iterator refers to an element, that is,
// its base is not the first position of the tree.
func (ri ReverseIterator[T]) Valid() bool {
	ri.base.check()
	return ri.base.c != ri.base.t.beginCursor()
}

func (ri ReverseIterator[T]) Value() T {
	return *ri.Ptr()
}

func (ri ReverseIterator[T]) Ptr() *T {
	it := ri.base
	it.Prev()
	return it.Ptr()
}

// Next moves towards smaller elements.
func (ri *ReverseIterator[T]) Next() {
	ri.base.Prev()
}

// Prev moves towards larger elements.
func (ri *ReverseIterator[T]) Prev() {
	ri.base.Next()
}

func (ri ReverseIterator[T]) Equal(other ReversePosition[T]) bool {
	return ri.base.Equal(other.reverseBase())
}

func (ri ReverseIterator[T]) Const() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{base: ri.base.Const()}
}

func (ri ReverseIterator[T]) reverseBase() Position[T] {
	return ri.base
}

func (ri ConstReverseIterator[T]) Base() ConstIterator[T] {
	return ri.base
}

func (ri ConstReverseIterator[T]) Valid() bool {
	return ReverseIterator[T]{base: ri.base.it}.Valid()
}

func (ri ConstReverseIterator[T]) Value() T {
	return ReverseIterator[T]{base: ri.base.it}.Value()
}

func (ri *ConstReverseIterator[T]) Next() {
	ri.base.Prev()
}

func (ri *ConstReverseIterator[T]) Prev() {
	ri.base.Next()
}

func (ri ConstReverseIterator[T]) Equal(other ReversePosition[T]) bool {
	return ri.base.Equal(other.reverseBase())
}

func (ri ConstReverseIterator[T]) reverseBase() Position[T] {
	return ri.base
}
