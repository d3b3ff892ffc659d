package xsorted

import (
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/benz9527/xsorted/lib/infra"
	"github.com/benz9527/xsorted/lib/tree"
)

// MultiMap is an ordered key value table that stores every added pair,
// equal keys included. Pairs under equal keys keep their insertion order
// among each other.
type MultiMap[K, V any] struct {
	engine tree.RBTree[K, V]
}

var _ fmt.Stringer = (*MultiMap[int, int])(nil)

// NewMultiMap builds an empty multimap over the natural ascending order
// of K.
func NewMultiMap[K infra.OrderedKey, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{
		engine: lo.Must(tree.NewRBTree[K, V](
			infra.OrderedKeyCompare[K],
			tree.WithRBTreeDupKeys[K, V](),
		)),
	}
}

// NewMultiMapFunc builds an empty multimap ordered by kcmp. A nil
// comparator is rejected.
func NewMultiMapFunc[K, V any](kcmp infra.Comparator[K]) (*MultiMap[K, V], error) {
	engine, err := tree.NewRBTree[K, V](kcmp, tree.WithRBTreeDupKeys[K, V]())
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[x-multimap] new multimap")
	}
	return &MultiMap[K, V]{engine: engine}, nil
}

// NewMultiMapOf builds a multimap over the natural order holding every
// given entry, equal keys included.
func NewMultiMapOf[K infra.OrderedKey, V any](entries ...MapEntry[K, V]) *MultiMap[K, V] {
	mmap := NewMultiMap[K, V]()
	for _, ent := range entries {
		mmap.Add(ent.Key, ent.Val)
	}
	return mmap
}

// Add stores one more pair under key after the equal keys already present.
func (mmap *MultiMap[K, V]) Add(key K, val V) {
	mmap.engine.InsertMulti(key, val)
}

// Get reads the value of the first pair under key in traversal order.
func (mmap *MultiMap[K, V]) Get(key K) (V, bool) {
	cur := mmap.engine.Find(key)
	if !cur.Valid() {
		var zero V
		return zero, false
	}
	return cur.Val(), true
}

// GetAll collects the values stored under key in insertion order, nil when
// the key is absent.
func (mmap *MultiMap[K, V]) GetAll(key K) []V {
	var vals []V
	ub := mmap.engine.UpperBound(key)
	for cur := mmap.engine.LowerBound(key); cur.Valid() && !cur.Equal(ub); cur = cur.Next() {
		vals = append(vals, cur.Val())
	}
	return vals
}

// Has reports whether at least one pair under key is present.
func (mmap *MultiMap[K, V]) Has(key K) bool {
	return mmap.engine.Find(key).Valid()
}

// Count is the number of stored pairs whose key compares equal to key.
func (mmap *MultiMap[K, V]) Count(key K) int64 {
	total := int64(0)
	ub := mmap.engine.UpperBound(key)
	for cur := mmap.engine.LowerBound(key); cur.Valid() && !cur.Equal(ub); cur = cur.Next() {
		total++
	}
	return total
}

// Delete removes the first pair under key in traversal order and reports
// whether one was present.
func (mmap *MultiMap[K, V]) Delete(key K) bool {
	cur := mmap.engine.Find(key)
	if !cur.Valid() {
		return false
	}
	lo.Must0(mmap.engine.Erase(cur))
	return true
}

// DeleteAll removes every pair under key and reports how many went away.
func (mmap *MultiMap[K, V]) DeleteAll(key K) int64 {
	removed := int64(0)
	for {
		cur := mmap.engine.Find(key)
		if !cur.Valid() {
			return removed
		}
		lo.Must0(mmap.engine.Erase(cur))
		removed++
	}
}

// EqualRange yields the pairs whose key compares equal to key in insertion
// order.
func (mmap *MultiMap[K, V]) EqualRange(key K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		ub := mmap.engine.UpperBound(key)
		for cur := mmap.engine.LowerBound(key); cur.Valid() && !cur.Equal(ub); {
			next := cur.Next()
			if !yield(cur.KeyVal()) {
				return
			}
			cur = next
		}
	}
}

// Len is the number of stored pairs, equal keys included.
func (mmap *MultiMap[K, V]) Len() int64 {
	return mmap.engine.Len()
}

// Clear removes every pair.
func (mmap *MultiMap[K, V]) Clear() {
	mmap.engine.Release()
}

// First is the pair with the least key under the comparator. Among equal
// least keys it is the earliest inserted one.
func (mmap *MultiMap[K, V]) First() (K, V, bool) {
	return mmap.engine.First()
}

// Last is the pair with the greatest key under the comparator. Among equal
// greatest keys it is the latest inserted one.
func (mmap *MultiMap[K, V]) Last() (K, V, bool) {
	return mmap.engine.Last()
}

// SetComparatorAndClear installs a new key order. The stored pairs are
// dropped because their placement encodes the old order.
func (mmap *MultiMap[K, V]) SetComparatorAndClear(kcmp infra.Comparator[K]) error {
	if err := mmap.engine.SetComparatorAndClear(kcmp); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[x-multimap] replace comparator")
	}
	return nil
}

// All yields the pairs in ascending key order, equal keys in insertion
// order. The walk is lazy and reads the live structure, deleting the key
// just yielded is allowed mid walk.
func (mmap *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for cur := mmap.engine.Begin(); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.KeyVal()) {
				return
			}
			cur = next
		}
	}
}

// Backward yields the pairs in descending key order.
func (mmap *MultiMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for rcur := mmap.engine.RBegin(); rcur.Valid(); {
			next := rcur.Next()
			if !yield(rcur.KeyVal()) {
				return
			}
			rcur = next
		}
	}
}

// AllFrom yields the pairs whose key does not sort before pivot in
// ascending key order.
func (mmap *MultiMap[K, V]) AllFrom(pivot K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for cur := mmap.engine.LowerBound(pivot); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.KeyVal()) {
				return
			}
			cur = next
		}
	}
}

// String renders the pairs as {k1:v1,k2:v2,...} in ascending key order,
// equal keys included.
func (mmap *MultiMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	idx := 0
	for key, val := range mmap.All() {
		if idx > 0 {
			sb.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&sb, "%v:%v", key, val)
		idx++
	}
	sb.WriteByte('}')
	return sb.String()
}
