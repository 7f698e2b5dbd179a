// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// compareOrdered is the comparison used by trees built with New.
func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// search returns the insertion point of e in elems: the index of the first
// element that is not less than e, or len(elems) if there is none.
func (t *Tree[T]) search(elems []T, e T) int {
	return sort.Search(len(elems), func(i int) bool {
		return t.cmp(elems[i], e) >= 0
	})
}

// matchAt reports whether elems[p] exists and equals e. The bounds check
// comes first since search returns len(elems) when e is larger than every
// element in the buffer.
func (t *Tree[T]) matchAt(elems []T, p int, e T) bool {
	return p < len(elems) && t.cmp(elems[p], e) == 0
}
