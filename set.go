package xsorted

import (
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/benz9527/xsorted/lib/infra"
	"github.com/benz9527/xsorted/lib/tree"
)

// Set is an ordered collection of unique keys. Lookup, insert and delete
// run in O(log n) and iteration yields the keys in ascending comparator
// order.
type Set[K any] struct {
	engine tree.RBTree[K, struct{}]
}

var _ fmt.Stringer = (*Set[int])(nil)

// NewSet builds an empty set over the natural ascending order of K.
func NewSet[K infra.OrderedKey]() *Set[K] {
	return &Set[K]{
		engine: lo.Must(tree.NewRBTree[K, struct{}](
			infra.OrderedKeyCompare[K],
			tree.WithRBTreeKeyOnly[K, struct{}](),
		)),
	}
}

// NewSetFunc builds an empty set ordered by kcmp. A nil comparator is
// rejected.
func NewSetFunc[K any](kcmp infra.Comparator[K]) (*Set[K], error) {
	engine, err := tree.NewRBTree[K, struct{}](kcmp, tree.WithRBTreeKeyOnly[K, struct{}]())
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[x-set] new set")
	}
	return &Set[K]{engine: engine}, nil
}

// NewSetOf builds a set over the natural order holding the given keys,
// duplicates collapse.
func NewSetOf[K infra.OrderedKey](keys ...K) *Set[K] {
	set := NewSet[K]()
	for _, key := range keys {
		set.Add(key)
	}
	return set
}

// Add inserts key and reports whether it was absent before.
func (set *Set[K]) Add(key K) bool {
	_, inserted := set.engine.InsertUnique(key, struct{}{})
	return inserted
}

// Has reports whether key is present.
func (set *Set[K]) Has(key K) bool {
	return set.engine.Find(key).Valid()
}

// Delete removes key and reports whether it was present.
func (set *Set[K]) Delete(key K) bool {
	cur := set.engine.Find(key)
	if !cur.Valid() {
		return false
	}
	lo.Must0(set.engine.Erase(cur))
	return true
}

// Len is the number of stored keys.
func (set *Set[K]) Len() int64 {
	return set.engine.Len()
}

// Clear removes every key.
func (set *Set[K]) Clear() {
	set.engine.Release()
}

// First is the least key under the comparator.
func (set *Set[K]) First() (K, bool) {
	key, _, ok := set.engine.First()
	return key, ok
}

// Last is the greatest key under the comparator.
func (set *Set[K]) Last() (K, bool) {
	key, _, ok := set.engine.Last()
	return key, ok
}

// SetComparatorAndClear installs a new key order. The stored keys are
// dropped because their placement encodes the old order.
func (set *Set[K]) SetComparatorAndClear(kcmp infra.Comparator[K]) error {
	if err := set.engine.SetComparatorAndClear(kcmp); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[x-set] replace comparator")
	}
	return nil
}

// All yields the keys in ascending order. The walk is lazy and reads the
// live structure, deleting the key just yielded is allowed mid walk.
func (set *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for cur := set.engine.Begin(); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.Key()) {
				return
			}
			cur = next
		}
	}
}

// Backward yields the keys in descending order.
func (set *Set[K]) Backward() iter.Seq[K] {
	return func(yield func(K) bool) {
		for rcur := set.engine.RBegin(); rcur.Valid(); {
			next := rcur.Next()
			if !yield(rcur.Key()) {
				return
			}
			rcur = next
		}
	}
}

// AllFrom yields the keys not sorting before pivot in ascending order.
func (set *Set[K]) AllFrom(pivot K) iter.Seq[K] {
	return func(yield func(K) bool) {
		for cur := set.engine.LowerBound(pivot); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.Key()) {
				return
			}
			cur = next
		}
	}
}

// String renders the keys as {k1,k2,...} in ascending order.
func (set *Set[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	idx := 0
	for key := range set.All() {
		if idx > 0 {
			sb.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&sb, "%v", key)
		idx++
	}
	sb.WriteByte('}')
	return sb.String()
}
