// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

// Stats describes the shape of a tree.
type Stats struct {
	Nodes    int
	Depth    int
	Elements int

	CacheHits   uint64
	CacheMisses uint64
}

// Stats walks every node and reports the shape of the tree. Depth counts
// levels, so a tree holding only its root has depth 1.
func (t *Tree[T]) Stats() Stats {
	t.live()
	var s Stats
	ri := t.rawIterator()
	for ri.Next() {
		s.Nodes++
		s.Elements += len(ri.Front().elems)
		if d := ri.Depth() + 1; d > s.Depth {
			s.Depth = d
		}
	}
	if t.cache != nil {
		s.CacheHits, s.CacheMisses = t.cache.counters()
	}
	return s
}
