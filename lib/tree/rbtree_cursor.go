package tree

import (
	"github.com/benz9527/xsorted/lib/infra"
)

// Cursor is a bidirectional position inside one rbtree. The zero value is
// owned by no tree and every use of it fails fast. A cursor stays usable
// across mutations until the exact node it references is erased; erasing or
// inserting other elements never moves it.
//
// Two sentinel positions exist: end, after the last element, and rend,
// before the first one. Sentinels can be navigated away from but not
// dereferenced.
type Cursor[K, V any] struct {
	tree *rbTree[K, V]
	node *rbNode[K, V]
	neg  bool
}

func (cur Cursor[K, V]) checkOwned() {
	if cur.tree == nil {
		panic( /* debug assertion */ "[x-rbtree] zero value cursor")
	}
}

// stale reports whether the referenced node was unlinked from its tree.
func (cur Cursor[K, V]) stale() bool {
	return cur.node != nil && cur.node.parent == nil && cur.node != cur.tree.root
}

func (cur Cursor[K, V]) live() *rbNode[K, V] {
	cur.checkOwned()
	if cur.node == nil {
		panic( /* debug assertion */ "[x-rbtree] sentinel cursor dereference")
	}
	if cur.stale() {
		panic( /* debug assertion */ "[x-rbtree] stale cursor to an erased element")
	}
	return cur.node
}

// Key reads the key at the cursor position.
func (cur Cursor[K, V]) Key() K {
	return cur.live().key
}

// Val reads the value at the cursor position.
func (cur Cursor[K, V]) Val() V {
	return cur.live().val
}

// KeyVal reads the pair at the cursor position.
func (cur Cursor[K, V]) KeyVal() (K, V) {
	node := cur.live()
	return node.key, node.val
}

// Valid reports whether the cursor references a live element. Sentinels and
// cursors whose element was erased are not valid.
func (cur Cursor[K, V]) Valid() bool {
	return cur.tree != nil && cur.node != nil && !cur.stale()
}

// AtEnd reports whether the cursor sits after the last element.
func (cur Cursor[K, V]) AtEnd() bool {
	return cur.tree != nil && cur.node == nil && !cur.neg
}

// AtREnd reports whether the cursor sits before the first element.
func (cur Cursor[K, V]) AtREnd() bool {
	return cur.tree != nil && cur.node == nil && cur.neg
}

// Equal reports whether both cursors reference the same position of the
// same tree.
func (cur Cursor[K, V]) Equal(other Cursor[K, V]) bool {
	return cur.tree == other.tree && cur.node == other.node && cur.neg == other.neg
}

// Next moves towards the last element. From rend it lands on the first
// element. Moving past end fails fast.
func (cur Cursor[K, V]) Next() Cursor[K, V] {
	cur.checkOwned()
	if /* rend */ cur.node == nil && cur.neg {
		if cur.tree.root.isNilLeaf() {
			panic( /* debug assertion */ "[x-rbtree] cursor advance in an empty tree")
		}
		return Cursor[K, V]{tree: cur.tree, node: cur.tree.root.minimum()}
	}
	if /* end */ cur.node == nil {
		panic( /* debug assertion */ "[x-rbtree] cursor advance past the end")
	}
	node := cur.live()
	if s := node.succ(); s != nil {
		return Cursor[K, V]{tree: cur.tree, node: s}
	}
	return Cursor[K, V]{tree: cur.tree}
}

// Prev moves towards the first element. From end it lands on the last
// element. Moving before rend fails fast.
func (cur Cursor[K, V]) Prev() Cursor[K, V] {
	cur.checkOwned()
	if /* rend */ cur.node == nil && cur.neg {
		panic( /* debug assertion */ "[x-rbtree] cursor retreat before the first element")
	}
	if /* end */ cur.node == nil {
		if cur.tree.root.isNilLeaf() {
			panic( /* debug assertion */ "[x-rbtree] cursor retreat in an empty tree")
		}
		return Cursor[K, V]{tree: cur.tree, node: cur.tree.root.maximum()}
	}
	node := cur.live()
	if p := node.pred(); p != nil {
		return Cursor[K, V]{tree: cur.tree, node: p}
	}
	return Cursor[K, V]{tree: cur.tree, neg: true}
}

// ReverseCursor walks the same positions as Cursor with the directions
// swapped, so Next moves towards the first element of the stored order.
type ReverseCursor[K, V any] struct {
	cur Cursor[K, V]
}

func (rcur ReverseCursor[K, V]) Key() K {
	return rcur.cur.Key()
}

func (rcur ReverseCursor[K, V]) Val() V {
	return rcur.cur.Val()
}

func (rcur ReverseCursor[K, V]) KeyVal() (K, V) {
	return rcur.cur.KeyVal()
}

func (rcur ReverseCursor[K, V]) Valid() bool {
	return rcur.cur.Valid()
}

// AtREnd reports whether the reverse cursor is exhausted.
func (rcur ReverseCursor[K, V]) AtREnd() bool {
	return rcur.cur.AtREnd()
}

func (rcur ReverseCursor[K, V]) Equal(other ReverseCursor[K, V]) bool {
	return rcur.cur.Equal(other.cur)
}

func (rcur ReverseCursor[K, V]) Next() ReverseCursor[K, V] {
	return ReverseCursor[K, V]{cur: rcur.cur.Prev()}
}

func (rcur ReverseCursor[K, V]) Prev() ReverseCursor[K, V] {
	return ReverseCursor[K, V]{cur: rcur.cur.Next()}
}

// Base hands back the forward cursor at the same position.
func (rcur ReverseCursor[K, V]) Base() Cursor[K, V] {
	return rcur.cur
}

// Begin is a cursor at the first element, end when the tree is empty.
func (tree *rbTree[K, V]) Begin() Cursor[K, V] {
	if tree.root.isNilLeaf() {
		return tree.End()
	}
	return Cursor[K, V]{tree: tree, node: tree.root.minimum()}
}

// End is the sentinel cursor after the last element.
func (tree *rbTree[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{tree: tree}
}

// RBegin is a reverse cursor at the last element, rend when the tree is
// empty.
func (tree *rbTree[K, V]) RBegin() ReverseCursor[K, V] {
	if tree.root.isNilLeaf() {
		return tree.REnd()
	}
	return ReverseCursor[K, V]{cur: Cursor[K, V]{tree: tree, node: tree.root.maximum()}}
}

// REnd is the sentinel reverse cursor before the first element.
func (tree *rbTree[K, V]) REnd() ReverseCursor[K, V] {
	return ReverseCursor[K, V]{cur: Cursor[K, V]{tree: tree, neg: true}}
}

// Find is a cursor at the first element in traversal order comparing equal
// to key, end when absent.
func (tree *rbTree[K, V]) Find(key K) Cursor[K, V] {
	x := tree.lowerBoundNode(key)
	if x == nil || tree.keyCompare(key, x.key) != 0 {
		return tree.End()
	}
	return Cursor[K, V]{tree: tree, node: x}
}

// LowerBound is a cursor at the first element whose key does not sort
// before key, end when no such element exists.
func (tree *rbTree[K, V]) LowerBound(key K) Cursor[K, V] {
	if x := tree.lowerBoundNode(key); x != nil {
		return Cursor[K, V]{tree: tree, node: x}
	}
	return tree.End()
}

// UpperBound is a cursor at the first element whose key sorts after key,
// end when no such element exists.
func (tree *rbTree[K, V]) UpperBound(key K) Cursor[K, V] {
	if x := tree.upperBoundNode(key); x != nil {
		return Cursor[K, V]{tree: tree, node: x}
	}
	return tree.End()
}

// Erase unlinks exactly the element cur references. Cursors at every other
// element stay usable, cur itself turns stale. Zero, sentinel, stale and
// foreign cursors are rejected with an error.
func (tree *rbTree[K, V]) Erase(cur Cursor[K, V]) error {
	if cur.tree == nil {
		return infra.WrapErrorStack(ErrRBTreeInvalidCursor)
	}
	if cur.tree != tree {
		return infra.WrapErrorStack(ErrRBTreeForeignCursor)
	}
	if cur.node == nil || cur.stale() {
		return infra.WrapErrorStack(ErrRBTreeInvalidCursor)
	}
	tree.eraseNode(cur.node)
	tree.count--
	return nil
}
