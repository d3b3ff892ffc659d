package tree

import (
	"errors"

	"github.com/benz9527/xsorted/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

var (
	ErrRBTreeNotFound       = errors.New("[x-rbtree] key or value not found")
	ErrRBTreeEmpty          = errors.New("[x-rbtree] empty tree to remove")
	ErrRBTreeNilComparator  = errors.New("[x-rbtree] nil key comparator")
	ErrRBTreeForeignCursor  = errors.New("[x-rbtree] cursor owned by another tree")
	ErrRBTreeInvalidCursor  = errors.New("[x-rbtree] cursor references no element")
	ErrRBTreeRedViolation   = errors.New("[x-rbtree] red violation")
	ErrRBTreeBlackViolation = errors.New("[x-rbtree] black violation")
	ErrRBTreeOrderViolation = errors.New("[x-rbtree] order violation")
	ErrRBTreeCountViolation = errors.New("[x-rbtree] count violation")
)

type RBNode[K, V any] interface {
	Key() K
	Val() V
	HasKeyVal() bool
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

type RBTree[K, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	InsertUnique(key K, val V) (Cursor[K, V], bool)
	InsertMulti(key K, val V) Cursor[K, V]
	InsertOrReplace(key K, val V) (Cursor[K, V], bool)
	Find(key K) Cursor[K, V]
	LowerBound(key K) Cursor[K, V]
	UpperBound(key K) Cursor[K, V]
	First() (K, V, bool)
	Last() (K, V, bool)
	Begin() Cursor[K, V]
	End() Cursor[K, V]
	RBegin() ReverseCursor[K, V]
	REnd() ReverseCursor[K, V]
	Erase(cur Cursor[K, V]) error
	Remove(key K) (K, V, error)
	RemoveMin() (K, V, error)
	SetComparatorAndClear(kcmp infra.Comparator[K]) error
	Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Release()
}
