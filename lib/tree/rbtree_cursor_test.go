package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xsorted/lib/infra"
)

func TestCursorEmptyTree(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}

	require.True(t, tree.Begin().Equal(tree.End()))
	require.True(t, tree.Begin().AtEnd())
	require.False(t, tree.Begin().Valid())
	require.True(t, tree.RBegin().Equal(tree.REnd()))
	require.True(t, tree.RBegin().AtREnd())
	require.False(t, tree.RBegin().Valid())

	_, _, ok := tree.First()
	require.False(t, ok)
	_, _, ok = tree.Last()
	require.False(t, ok)

	require.True(t, tree.Find(1).AtEnd())
	require.True(t, tree.LowerBound(1).AtEnd())
	require.True(t, tree.UpperBound(1).AtEnd())

	require.Panics(t, func() { tree.End().Key() })
	require.Panics(t, func() { tree.End().Next() })
	require.Panics(t, func() { tree.End().Prev() })
	require.Panics(t, func() { tree.REnd().Next() })

	var zero Cursor[uint64, uint64]
	require.False(t, zero.Valid())
	require.False(t, zero.AtEnd())
	require.Panics(t, func() { zero.Key() })
	require.Panics(t, func() { zero.Next() })
}

func TestCursorForwardBackwardWalk(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	for _, key := range []uint64{5, 1, 3, 2, 4} {
		_, inserted := tree.InsertUnique(key, key*10)
		require.True(t, inserted)
	}
	require.NoError(t, Validate[uint64, uint64](tree, tree.kcmp))

	forward := make([]uint64, 0, 5)
	for cur := tree.Begin(); !cur.AtEnd(); cur = cur.Next() {
		k, v := cur.KeyVal()
		require.Equal(t, k*10, v)
		forward = append(forward, k)
	}
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, forward)

	backward := make([]uint64, 0, 5)
	for rcur := tree.RBegin(); !rcur.AtREnd(); rcur = rcur.Next() {
		backward = append(backward, rcur.Key())
	}
	require.Equal(t, []uint64{5, 4, 3, 2, 1}, backward)

	// Prev from the end sentinel lands on the last element, Next from the
	// rend sentinel lands on the first one.
	require.Equal(t, uint64(5), tree.End().Prev().Key())
	require.Equal(t, uint64(1), tree.REnd().Base().Next().Key())

	// A full advance retreats back to where it started.
	cur := tree.Begin()
	for i := 0; i < 4; i++ {
		cur = cur.Next()
	}
	require.Equal(t, uint64(5), cur.Key())
	for i := 0; i < 4; i++ {
		cur = cur.Prev()
	}
	require.True(t, cur.Equal(tree.Begin()))

	// Reverse cursor Prev mirrors Next.
	rcur := tree.RBegin().Next()
	require.Equal(t, uint64(4), rcur.Key())
	rcur = rcur.Prev()
	require.True(t, rcur.Equal(tree.RBegin()))

	require.Panics(t, func() { tree.End().Next() })
	require.Panics(t, func() { tree.REnd().Next() })
}

func TestCursorBounds(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	for _, key := range []uint64{10, 20, 30, 40} {
		tree.InsertUnique(key, key)
	}

	require.Equal(t, uint64(20), tree.LowerBound(15).Key())
	require.Equal(t, uint64(20), tree.LowerBound(20).Key())
	require.Equal(t, uint64(30), tree.UpperBound(20).Key())
	require.Equal(t, uint64(10), tree.LowerBound(0).Key())
	require.True(t, tree.LowerBound(41).AtEnd())
	require.True(t, tree.UpperBound(40).AtEnd())

	require.True(t, tree.Find(20).Equal(tree.LowerBound(20)))
	require.True(t, tree.Find(15).AtEnd())

	k, v, ok := tree.First()
	require.True(t, ok)
	require.Equal(t, uint64(10), k)
	require.Equal(t, uint64(10), v)
	k, _, ok = tree.Last()
	require.True(t, ok)
	require.Equal(t, uint64(40), k)
}

func TestCursorEraseIdentityContract(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	for _, key := range []uint64{10, 20, 30, 40, 50} {
		tree.InsertUnique(key, key*10)
	}

	curs := make(map[uint64]Cursor[uint64, uint64], 5)
	for _, key := range []uint64{10, 20, 30, 40, 50} {
		curs[key] = tree.Find(key)
		require.True(t, curs[key].Valid())
	}

	// 20 sits at the root with both children, its in-order successor 30 is
	// the node relinked into its place.
	require.Equal(t, uint64(20), tree.root.key)
	require.NoError(t, tree.Erase(curs[20]))
	require.Equal(t, int64(4), tree.Len())
	require.NoError(t, Validate[uint64, uint64](tree, tree.kcmp))

	// Every other cursor survives, the successor kept its identity while
	// moving up.
	for _, key := range []uint64{10, 30, 40, 50} {
		require.True(t, curs[key].Valid())
		require.Equal(t, key, curs[key].Key())
		require.Equal(t, key*10, curs[key].Val())
	}
	require.True(t, curs[30].node == tree.root)

	// Navigation across the erased key stays seamless.
	require.Equal(t, uint64(30), curs[10].Next().Key())
	require.Equal(t, uint64(10), curs[30].Prev().Key())

	// Only the erased cursor died.
	require.False(t, curs[20].Valid())
	require.Panics(t, func() { curs[20].Key() })
	require.Panics(t, func() { curs[20].Next() })

	err := tree.Erase(curs[20])
	require.ErrorIs(t, err, ErrRBTreeInvalidCursor)
	require.Equal(t, int64(4), tree.Len())
}

func TestCursorEraseByFind(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	for i := uint64(0); i < 10; i++ {
		tree.InsertUnique(i, i)
	}

	require.NoError(t, tree.Erase(tree.Find(5)))
	require.Equal(t, int64(9), tree.Len())
	require.True(t, tree.Find(5).AtEnd())

	keys := make([]uint64, 0, 9)
	for cur := tree.Begin(); !cur.AtEnd(); cur = cur.Next() {
		keys = append(keys, cur.Key())
	}
	require.Equal(t, []uint64{0, 1, 2, 3, 4, 6, 7, 8, 9}, keys)
	require.NoError(t, Validate[uint64, uint64](tree, tree.kcmp))
}

func TestCursorEraseForeignAndSentinel(t *testing.T) {
	t1 := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	t2 := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	t1.InsertUnique(1, 1)
	t2.InsertUnique(1, 1)

	require.ErrorIs(t, t2.Erase(t1.Find(1)), ErrRBTreeForeignCursor)
	require.ErrorIs(t, t1.Erase(t1.End()), ErrRBTreeInvalidCursor)

	var zero Cursor[uint64, uint64]
	require.ErrorIs(t, t1.Erase(zero), ErrRBTreeInvalidCursor)

	require.Equal(t, int64(1), t1.Len())
	require.Equal(t, int64(1), t2.Len())
}

func TestCursorNavigationAcrossInsert(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	tree.InsertUnique(10, 1)
	tree.InsertUnique(30, 1)
	cur := tree.Find(30)

	tree.InsertUnique(20, 1)
	tree.InsertUnique(40, 1)

	// Cursors read the live structure, fresh neighbors show up mid walk.
	require.Equal(t, uint64(20), cur.Prev().Key())
	require.Equal(t, uint64(40), cur.Next().Key())
}

func TestCursorStaleAfterRelease(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp: infra.OrderedKeyCompare[uint64],
	}
	tree.InsertUnique(1, 1)
	tree.InsertUnique(2, 2)
	tree.InsertUnique(3, 3)

	cur := tree.Find(2)
	require.True(t, cur.Valid())
	tree.Release()

	require.False(t, cur.Valid())
	require.Panics(t, func() { cur.Key() })
	require.ErrorIs(t, tree.Erase(cur), ErrRBTreeInvalidCursor)
}

func TestCursorEqualRangeOnMultiTree(t *testing.T) {
	tree := &rbTree[uint64, uint64]{
		kcmp:   infra.OrderedKeyCompare[uint64],
		policy: rbPolicyDupKeys,
	}
	tree.InsertMulti(1, 10)
	tree.InsertMulti(3, 30)
	tree.InsertMulti(3, 31)
	tree.InsertMulti(5, 50)

	// Find lands on the first duplicate in traversal order.
	cur := tree.Find(3)
	require.Equal(t, uint64(30), cur.Val())

	// Erase the first duplicate, the second one keeps its place.
	require.NoError(t, tree.Erase(cur))
	cur = tree.Find(3)
	require.True(t, cur.Valid())
	require.Equal(t, uint64(31), cur.Val())
	require.Equal(t, int64(3), tree.Len())
	require.NoError(t, Validate[uint64, uint64](tree, tree.kcmp))
}
