// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

import (
	"bytes"
	"errors"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"testing"
	"testing/quick"

	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/require"
)

// collect returns the elements of the tree by stepping an iterator forward.
func collect[T any](t *Tree[T]) []T {
	var out []T
	for it := t.Begin(); it.Valid(); it.Next() {
		out = append(out, it.Value())
	}
	return out
}

// sortedUnique returns the sorted set of distinct values.
func sortedUnique(in []int) []int {
	out := slices.Clone(in)
	sort.Ints(out)
	return slices.Compact(out)
}

// checkInvariants walks every node and verifies the ordering, capacity,
// parent links and fill policy of the arena.
func checkInvariants[T any](tb testing.TB, t *Tree[T]) {
	tb.Helper()
	ri := t.rawIterator()
	for ri.Next() {
		n := ri.Front()
		require.LessOrEqual(tb, len(n.elems), t.maxNodeElems)
		for i := 1; i < len(n.elems); i++ {
			require.Negative(tb, t.cmp(n.elems[i-1], n.elems[i]))
		}
		if n.id != t.root {
			require.NotEmpty(tb, n.elems)
		}
		if n.numChildren() > 0 {
			require.Len(tb, n.elems, t.maxNodeElems)
		}
		for i, ch := range n.children {
			if ch == noNode {
				continue
			}
			child := t.nodes[ch]
			require.Equal(tb, n.id, child.parent)
			for _, e := range child.elems {
				if i > 0 {
					require.Positive(tb, t.cmp(e, n.elems[i-1]))
				}
				if i < len(n.elems) {
					require.Negative(tb, t.cmp(e, n.elems[i]))
				}
			}
		}
	}
}

func TestTree_ExampleScenario(t *testing.T) {
	t.Parallel()

	tree := New[int](3)
	var four Iterator[int]
	for _, e := range []int{5, 3, 8, 1, 4, 7, 2, 6} {
		it, inserted := tree.Insert(e)
		require.True(t, inserted)
		require.Equal(t, e, it.Value())
		if e == 4 {
			four = it
		}
	}

	require.Equal(t, "1 2 3 4 5 6 7 8", tree.String())
	require.Equal(t, 8, tree.Len())

	it, inserted := tree.Insert(4)
	require.False(t, inserted)
	require.True(t, it.Equal(four))
	require.True(t, tree.Find(4).Equal(four))
	require.True(t, tree.Find(9).Equal(tree.End()))
	require.Equal(t, 8, tree.Len())

	stats := tree.Stats()
	require.Equal(t, 4, stats.Nodes)
	require.Equal(t, 2, stats.Depth)
	require.Equal(t, 8, stats.Elements)
	checkInvariants(t, tree)
}

func TestTree_Empty(t *testing.T) {
	t.Parallel()

	tree := New[int](DefaultMaxNodeElems)
	require.Equal(t, 0, tree.Len())
	require.True(t, tree.Begin().Equal(tree.End()))
	require.True(t, tree.RBegin().Equal(tree.REnd()))
	require.False(t, tree.Begin().Valid())
	require.True(t, tree.Find(1).Equal(tree.End()))
	require.False(t, tree.Contains(1))
	require.Equal(t, "", tree.String())
	require.Equal(t, Stats{Nodes: 1, Depth: 1}, tree.Stats())
}

func TestTree_InvalidCapacity(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { New[int](0) })
	require.Panics(t, func() { New[int](-3) })
	require.Panics(t, func() { NewFunc[string](4, nil) })
	require.Panics(t, func() { New[int](4, WithLocationCache(-1)) })
}

func TestTree_FindPastLastElement(t *testing.T) {
	t.Parallel()

	// Searching for something larger than every element of a full node lands
	// one past its buffer before the last child slot is consulted.
	tree := New[int](2)
	for _, e := range []int{10, 20, 30, 40} {
		tree.Insert(e)
	}
	require.Equal(t, 30, tree.Find(30).Value())
	require.Equal(t, 40, tree.Find(40).Value())
	require.True(t, tree.Find(50).Equal(tree.End()))
	require.True(t, tree.Find(25).Equal(tree.End()))

	small := New[int](3)
	small.Insert(1)
	require.True(t, small.Find(2).Equal(small.End()))
}

func TestTree_SortedUniqueness(t *testing.T) {
	t.Parallel()

	prop := func(values []int, capacity uint8) bool {
		tree := New[int](int(capacity%6) + 1)
		for _, v := range values {
			tree.Insert(v)
		}
		want := sortedUnique(values)
		got := collect(tree)
		if len(want) == 0 {
			return len(got) == 0 && tree.Len() == 0
		}
		return slices.Equal(want, got) && tree.Len() == len(want)
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestTree_FindCorrectness(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	tree := New[int](4)
	present := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := r.Intn(5000)
		_, inserted := tree.Insert(v)
		require.Equal(t, !present[v], inserted)
		present[v] = true
	}
	checkInvariants(t, tree)

	for v := -1; v <= 5001; v++ {
		it := tree.Find(v)
		if present[v] {
			require.True(t, it.Valid())
			require.Equal(t, v, it.Value())
			require.True(t, tree.FindConst(v).Equal(it))
		} else {
			require.True(t, it.Equal(tree.End()))
			require.True(t, tree.FindConst(v).Equal(tree.CEnd()))
		}
		require.Equal(t, present[v], tree.Contains(v))
	}
}

func TestTree_FillPolicy(t *testing.T) {
	t.Parallel()

	tree := New[int](5)
	for _, e := range []int{50, 40, 30, 20, 10} {
		tree.Insert(e)
	}
	require.Equal(t, 1, tree.Stats().Nodes)

	// Root is full now, so each new partition spawns a child.
	tree.Insert(5)
	tree.Insert(15)
	tree.Insert(55)
	require.Equal(t, 4, tree.Stats().Nodes)

	// Children fill before they grow grandchildren.
	for _, e := range []int{1, 2, 3, 4} {
		tree.Insert(e)
	}
	require.Equal(t, 4, tree.Stats().Nodes)
	tree.Insert(0)
	require.Equal(t, 5, tree.Stats().Nodes)
	require.Equal(t, 3, tree.Stats().Depth)
	checkInvariants(t, tree)
}

func TestTree_CapacityOneIsBinary(t *testing.T) {
	t.Parallel()

	tree := New[int](1)
	for _, e := range []int{4, 2, 6, 1, 3, 5, 7} {
		tree.Insert(e)
	}
	require.Equal(t, "1 2 3 4 5 6 7", tree.String())
	stats := tree.Stats()
	require.Equal(t, 7, stats.Nodes)
	require.Equal(t, 3, stats.Depth)
	checkInvariants(t, tree)
}

func TestTree_NewFuncUUIDs(t *testing.T) {
	t.Parallel()

	tree := NewFunc[string](8, strings.Compare)
	var keys []string
	for i := 0; i < 500; i++ {
		key, err := uuid.GenerateUUID()
		require.NoError(t, err)
		keys = append(keys, key)
		_, inserted := tree.Insert(key)
		require.True(t, inserted)
	}
	sort.Strings(keys)
	require.Equal(t, keys, collect(tree))
	for _, key := range keys {
		require.Equal(t, key, tree.Find(key).Value())
	}
	checkInvariants(t, tree)
}

func TestTree_CustomOrder(t *testing.T) {
	t.Parallel()

	type version struct {
		major, minor int
	}
	byVersion := func(a, b version) int {
		if a.major != b.major {
			return a.major - b.major
		}
		return a.minor - b.minor
	}

	tree := NewFunc[version](2, byVersion)
	for _, v := range []version{{1, 2}, {0, 9}, {1, 0}, {2, 1}, {1, 2}, {0, 1}} {
		tree.Insert(v)
	}
	require.Equal(t, []version{{0, 1}, {0, 9}, {1, 0}, {1, 2}, {2, 1}}, collect(tree))
	require.Equal(t, "{0 1} {0 9} {1 0} {1 2} {2 1}", tree.String())
}

func TestTree_AllBackwardWalk(t *testing.T) {
	t.Parallel()

	tree := New[int](3)
	for _, e := range []int{9, 4, 7, 1, 3, 8, 2, 6, 5} {
		tree.Insert(e)
	}

	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, slices.Collect(tree.All()))
	require.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, slices.Collect(tree.Backward()))

	var seen []int
	tree.Walk(func(e int) bool {
		seen = append(seen, e)
		return e == 4
	})
	require.Equal(t, []int{1, 2, 3, 4}, seen)

	var firstThree []int
	for e := range tree.All() {
		if len(firstThree) == 3 {
			break
		}
		firstThree = append(firstThree, e)
	}
	require.Equal(t, []int{1, 2, 3}, firstThree)
}

func TestTree_LowerBound(t *testing.T) {
	t.Parallel()

	prop := func(values []int16, search int16) bool {
		tree := New[int16](3)
		for _, v := range values {
			tree.Insert(v)
		}
		var want []int16
		for e := range tree.All() {
			if e >= search {
				want = append(want, e)
			}
		}
		var got []int16
		for it := tree.LowerBound(search); it.Valid(); it.Next() {
			got = append(got, it.Value())
		}
		return slices.Equal(want, got)
	}
	require.NoError(t, quick.Check(prop, nil))

	tree := New[int](2)
	for _, e := range []int{10, 20, 30, 40, 50} {
		tree.Insert(e)
	}
	require.Equal(t, 30, tree.LowerBound(30).Value())
	require.Equal(t, 30, tree.LowerBound(21).Value())
	require.Equal(t, 40, tree.UpperBound(30).Value())
	require.Equal(t, 10, tree.UpperBound(0).Value())
	require.True(t, tree.LowerBound(51).Equal(tree.End()))
	require.True(t, tree.UpperBound(50).Equal(tree.End()))
}

type failingWriter struct {
	budget int
}

var errShortWrite = errors.New("short write")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		n := w.budget
		w.budget = 0
		return n, errShortWrite
	}
	w.budget -= len(p)
	return len(p), nil
}

func TestTree_WriteTo(t *testing.T) {
	t.Parallel()

	tree := New[int](2)
	for _, e := range []int{3, 1, 2, 10} {
		tree.Insert(e)
	}

	var buf bytes.Buffer
	n, err := tree.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "1 2 3 10", buf.String())
	require.Equal(t, int64(buf.Len()), n)

	n, err = tree.WriteTo(&failingWriter{budget: 4})
	require.ErrorIs(t, err, errShortWrite)
	require.Equal(t, int64(4), n)
}

func TestTree_DFSPrintTree(t *testing.T) {
	t.Parallel()

	tree := New[int](2)
	for _, e := range []int{20, 40, 10, 30, 50} {
		tree.Insert(e)
	}

	var buf bytes.Buffer
	tree.DFSPrintTree(&buf)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, " id -> 0 parent -> -1 num ch -> 3 elems -> [20 40]", lines[0])
	require.Equal(t, "      id -> 1 parent -> 0 num ch -> 0 elems -> [10]", lines[1])
	require.Equal(t, "      id -> 2 parent -> 0 num ch -> 0 elems -> [30]", lines[2])
	require.Equal(t, "      id -> 3 parent -> 0 num ch -> 0 elems -> [50]", lines[3])
}

func BenchmarkInsert(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	values := r.Perm(100000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tree := New[int](DefaultMaxNodeElems)
		for _, v := range values {
			tree.Insert(v)
		}
	}
}

func BenchmarkFind(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	values := r.Perm(100000)
	tree := New[int](DefaultMaxNodeElems)
	for _, v := range values {
		tree.Insert(v)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tree.Find(values[n%len(values)])
	}
}
