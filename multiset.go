package xsorted

import (
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/benz9527/xsorted/lib/infra"
	"github.com/benz9527/xsorted/lib/tree"
)

// MultiSet is an ordered collection that stores every added key, equal
// keys included. Duplicates keep their insertion order among each other.
type MultiSet[K any] struct {
	engine tree.RBTree[K, struct{}]
}

var _ fmt.Stringer = (*MultiSet[int])(nil)

// NewMultiSet builds an empty multiset over the natural ascending order
// of K.
func NewMultiSet[K infra.OrderedKey]() *MultiSet[K] {
	return &MultiSet[K]{
		engine: lo.Must(tree.NewRBTree[K, struct{}](
			infra.OrderedKeyCompare[K],
			tree.WithRBTreeDupKeys[K, struct{}](),
			tree.WithRBTreeKeyOnly[K, struct{}](),
		)),
	}
}

// NewMultiSetFunc builds an empty multiset ordered by kcmp. A nil
// comparator is rejected.
func NewMultiSetFunc[K any](kcmp infra.Comparator[K]) (*MultiSet[K], error) {
	engine, err := tree.NewRBTree[K, struct{}](
		kcmp,
		tree.WithRBTreeDupKeys[K, struct{}](),
		tree.WithRBTreeKeyOnly[K, struct{}](),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[x-multiset] new multiset")
	}
	return &MultiSet[K]{engine: engine}, nil
}

// NewMultiSetOf builds a multiset over the natural order holding every
// given key, duplicates included.
func NewMultiSetOf[K infra.OrderedKey](keys ...K) *MultiSet[K] {
	mset := NewMultiSet[K]()
	for _, key := range keys {
		mset.Add(key)
	}
	return mset
}

// Add stores one more occurrence of key after the equal keys already
// present.
func (mset *MultiSet[K]) Add(key K) {
	mset.engine.InsertMulti(key, struct{}{})
}

// Has reports whether at least one occurrence of key is present.
func (mset *MultiSet[K]) Has(key K) bool {
	return mset.engine.Find(key).Valid()
}

// Count is the number of stored occurrences comparing equal to key.
func (mset *MultiSet[K]) Count(key K) int64 {
	total := int64(0)
	ub := mset.engine.UpperBound(key)
	for cur := mset.engine.LowerBound(key); cur.Valid() && !cur.Equal(ub); cur = cur.Next() {
		total++
	}
	return total
}

// Delete removes the first occurrence of key in traversal order and
// reports whether one was present.
func (mset *MultiSet[K]) Delete(key K) bool {
	cur := mset.engine.Find(key)
	if !cur.Valid() {
		return false
	}
	lo.Must0(mset.engine.Erase(cur))
	return true
}

// DeleteAll removes every occurrence of key and reports how many went
// away.
func (mset *MultiSet[K]) DeleteAll(key K) int64 {
	removed := int64(0)
	for {
		cur := mset.engine.Find(key)
		if !cur.Valid() {
			return removed
		}
		lo.Must0(mset.engine.Erase(cur))
		removed++
	}
}

// EqualRange yields the stored keys comparing equal to key in insertion
// order. Distinct key identities inside the range are preserved.
func (mset *MultiSet[K]) EqualRange(key K) iter.Seq[K] {
	return func(yield func(K) bool) {
		ub := mset.engine.UpperBound(key)
		for cur := mset.engine.LowerBound(key); cur.Valid() && !cur.Equal(ub); {
			next := cur.Next()
			if !yield(cur.Key()) {
				return
			}
			cur = next
		}
	}
}

// Len is the number of stored keys, duplicates included.
func (mset *MultiSet[K]) Len() int64 {
	return mset.engine.Len()
}

// Clear removes every key.
func (mset *MultiSet[K]) Clear() {
	mset.engine.Release()
}

// First is the least key under the comparator.
func (mset *MultiSet[K]) First() (K, bool) {
	key, _, ok := mset.engine.First()
	return key, ok
}

// Last is the greatest key under the comparator. Among equal greatest keys
// it is the latest inserted one.
func (mset *MultiSet[K]) Last() (K, bool) {
	key, _, ok := mset.engine.Last()
	return key, ok
}

// SetComparatorAndClear installs a new key order. The stored keys are
// dropped because their placement encodes the old order.
func (mset *MultiSet[K]) SetComparatorAndClear(kcmp infra.Comparator[K]) error {
	if err := mset.engine.SetComparatorAndClear(kcmp); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[x-multiset] replace comparator")
	}
	return nil
}

// All yields the keys in ascending order, equal keys in insertion order.
// The walk is lazy and reads the live structure, deleting the key just
// yielded is allowed mid walk.
func (mset *MultiSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for cur := mset.engine.Begin(); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.Key()) {
				return
			}
			cur = next
		}
	}
}

// Backward yields the keys in descending order.
func (mset *MultiSet[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for rcur := mset.engine.RBegin(); rcur.Valid(); {
			next := rcur.Next()
			if !yield(rcur.Key()) {
				return
			}
			rcur = next
		}
	}
}

// AllFrom yields the keys not sorting before pivot in ascending order.
func (mset *MultiSet[K]) AllFrom(pivot K) iter.Seq[K] {
	return func(yield func(K) bool) {
		for cur := mset.engine.LowerBound(pivot); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.Key()) {
				return
			}
			cur = next
		}
	}
}

// String renders the keys as {k1,k2,...} in ascending order, duplicates
// included.
func (mset *MultiSet[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	idx := 0
	for key := range mset.All() {
		if idx > 0 {
			sb.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&sb, "%v", key)
		idx++
	}
	sb.WriteByte('}')
	return sb.String()
}
