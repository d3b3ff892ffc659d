package xsorted

import (
	"fmt"
	"iter"
	"strings"

	"github.com/samber/lo"

	"github.com/benz9527/xsorted/lib/infra"
	"github.com/benz9527/xsorted/lib/tree"
)

// MapEntry is one key value pair for the Of constructors.
type MapEntry[K, V any] struct {
	Key K
	Val V
}

// Map is an ordered key value table with unique keys. Lookup, insert and
// delete run in O(log n) and iteration yields the pairs in ascending key
// order.
type Map[K, V any] struct {
	engine tree.RBTree[K, V]
}

var _ fmt.Stringer = (*Map[int, int])(nil)

// NewMap builds an empty map over the natural ascending order of K.
func NewMap[K infra.OrderedKey, V any]() *Map[K, V] {
	return &Map[K, V]{
		engine: lo.Must(tree.NewRBTree[K, V](infra.OrderedKeyCompare[K])),
	}
}

// NewMapFunc builds an empty map ordered by kcmp. A nil comparator is
// rejected.
func NewMapFunc[K, V any](kcmp infra.Comparator[K]) (*Map[K, V], error) {
	engine, err := tree.NewRBTree[K, V](kcmp)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[x-map] new map")
	}
	return &Map[K, V]{engine: engine}, nil
}

// NewMapOf builds a map over the natural order holding the given entries.
// A later entry with an equal key replaces the earlier value.
func NewMapOf[K infra.OrderedKey, V any](entries ...MapEntry[K, V]) *Map[K, V] {
	m := NewMap[K, V]()
	for _, ent := range entries {
		m.Set(ent.Key, ent.Val)
	}
	return m
}

// Get reads the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	cur := m.engine.Find(key)
	if !cur.Valid() {
		var zero V
		return zero, false
	}
	return cur.Val(), true
}

// Set stores val under key, replacing a present value in place. It reports
// whether the key was newly added.
func (m *Map[K, V]) Set(key K, val V) bool {
	_, inserted := m.engine.InsertOrReplace(key, val)
	return inserted
}

// SetIfAbsent stores val only when key is missing and reports whether it
// stored.
func (m *Map[K, V]) SetIfAbsent(key K, val V) bool {
	_, inserted := m.engine.InsertUnique(key, val)
	return inserted
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	return m.engine.Find(key).Valid()
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	cur := m.engine.Find(key)
	if !cur.Valid() {
		return false
	}
	lo.Must0(m.engine.Erase(cur))
	return true
}

// Len is the number of stored pairs.
func (m *Map[K, V]) Len() int64 {
	return m.engine.Len()
}

// Clear removes every pair.
func (m *Map[K, V]) Clear() {
	m.engine.Release()
}

// First is the pair with the least key under the comparator.
func (m *Map[K, V]) First() (K, V, bool) {
	return m.engine.First()
}

// Last is the pair with the greatest key under the comparator.
func (m *Map[K, V]) Last() (K, V, bool) {
	return m.engine.Last()
}

// SetComparatorAndClear installs a new key order. The stored pairs are
// dropped because their placement encodes the old order.
func (m *Map[K, V]) SetComparatorAndClear(kcmp infra.Comparator[K]) error {
	if err := m.engine.SetComparatorAndClear(kcmp); err != nil {
		return infra.WrapErrorStackWithMessage(err, "[x-map] replace comparator")
	}
	return nil
}

// All yields the pairs in ascending key order. The walk is lazy and reads
// the live structure, deleting the key just yielded is allowed mid walk.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for cur := m.engine.Begin(); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.KeyVal()) {
				return
			}
			cur = next
		}
	}
}

// Backward yields the pairs in descending key order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for rcur := m.engine.RBegin(); rcur.Valid(); {
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
func (m *Map[K, V]) AllFrom(pivot K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for cur := m.engine.LowerBound(pivot); cur.Valid(); {
			next := cur.Next()
			if !yield(cur.KeyVal()) {
				return
			}
			cur = next
		}
	}
}

// String renders the pairs as {k1:v1,k2:v2,...} in ascending key order.
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	idx := 0
	for key, val := range m.All() {
		if idx > 0 {
			sb.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&sb, "%v:%v", key, val)
		idx++
	}
	sb.WriteByte('}')
	return sb.String()
}
