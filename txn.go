// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// Txn batches insertions against a private deep copy of a tree. Nothing is
// visible in the tree until Commit; dropping the Txn discards the writes.
type Txn[T any] struct {
	tree *Tree[T]
	work *Tree[T]
}

// Txn starts a new transaction that can be used to mutate the tree
func (t *Tree[T]) Txn() *Txn[T] {
	return &Txn[T]{
		tree: t,
		work: t.Clone(),
	}
}

func (txn *Txn[T]) mustOpen() {
	if txn.work == nil {
		panic("multiway: transaction already committed")
	}
}

// Insert adds e to the transaction's copy, reporting whether it was absent.
func (txn *Txn[T]) Insert(e T) bool {
	txn.mustOpen()
	_, inserted := txn.work.Insert(e)
	return inserted
}

// Contains reports whether e is present, including uncommitted insertions.
func (txn *Txn[T]) Contains(e T) bool {
	txn.mustOpen()
	return txn.work.Contains(e)
}

// Len returns the element count including uncommitted insertions.
func (txn *Txn[T]) Len() int {
	txn.mustOpen()
	return txn.work.Len()
}

// Commit moves the transaction's copy into the tree it was started from and
// returns that tree. Positions taken from the tree before the commit are
// invalidated.
func (txn *Txn[T]) Commit() *Tree[T] {
	txn.mustOpen()
	txn.tree.MoveFrom(txn.work)
	txn.work = nil
	return txn.tree
}
