package tree

import (
	"log/slog"

	"github.com/benz9527/xsorted/lib/infra"
)

// Container shaping policies, set once by construction options.
const (
	rbPolicyDupKeys uint8 = 1 << iota
	rbPolicyKeyOnly
)

type rbNode[K, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
	hasKV  bool
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) HasKeyVal() bool {
	if node == nil {
		return false
	}
	return node.hasKV
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) isNilLeaf() bool {
	return isNilLeaf[K, V](node)
}

func (node *rbNode[K, V]) isRed() bool {
	return isRed[K, V](node)
}

func (node *rbNode[K, V]) isBlack() bool {
	return isBlack[K, V](node)
}

func (node *rbNode[K, V]) isRoot() bool {
	return isRoot[K, V](node)
}

func (node *rbNode[K, V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	dir := node.Direction()
	switch dir {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:

	}
	return nil
}

func (node *rbNode[K, V]) hasSibling() bool {
	return !node.isRoot() && node.sibling() != nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) hasUncle() bool {
	return !node.isRoot() && node.parent.hasSibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	aux := x
	if aux.left != nil {
		return aux.left.maximum()
	}

	aux = x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}

	aux := x
	if aux.right != nil {
		return aux.right.minimum()
	}

	aux = x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

type rbTree[K, V any] struct {
	root   *rbNode[K, V]
	kcmp   infra.Comparator[K]
	count  int64
	policy uint8
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) int64 {
	return tree.kcmp(k1, k2)
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. (Optional) The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
// So the shortest path nodes are black nodes. Otherwise,
// the path must contain red node.
// The longest path nodes' number is 2 * shortest path nodes' number.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

// i1: Empty rbtree, insert directly, but root node is painted to black.

// InsertUnique adds the key value pair unless an equal key is present.
// It reports the node holding the key and whether a new node was linked.
func (tree *rbTree[K, V]) InsertUnique(key K, val V) (Cursor[K, V], bool) {
	if tree.policy&rbPolicyDupKeys != 0 {
		panic( /* debug assertion */ "[x-rbtree] unique insert into a dup-keys tree")
	}

	if /* i1 */ tree.root.isNilLeaf() {
		tree.root = &rbNode[K, V]{
			key:   key,
			val:   val,
			hasKV: true,
		}
		tree.count++
		return Cursor[K, V]{tree: tree, node: tree.root}, true
	}

	var x, y *rbNode[K, V] = tree.root, nil
	var res int64
	for !x.isNilLeaf() {
		y = x
		res = tree.keyCompare(key, x.key)
		if /* equal */ res == 0 {
			return Cursor[K, V]{tree: tree, node: x}, false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}
	return Cursor[K, V]{tree: tree, node: tree.attach(y, res, key, val)}, true
}

// InsertOrReplace adds the key value pair. When an equal key is present its
// value is replaced in place instead (key-only trees keep membership
// untouched). It reports whether a new node was linked.
func (tree *rbTree[K, V]) InsertOrReplace(key K, val V) (Cursor[K, V], bool) {
	if tree.policy&rbPolicyDupKeys != 0 {
		panic( /* debug assertion */ "[x-rbtree] unique insert into a dup-keys tree")
	}

	if /* i1 */ tree.root.isNilLeaf() {
		tree.root = &rbNode[K, V]{
			key:   key,
			val:   val,
			hasKV: true,
		}
		tree.count++
		return Cursor[K, V]{tree: tree, node: tree.root}, true
	}

	var x, y *rbNode[K, V] = tree.root, nil
	var res int64
	for !x.isNilLeaf() {
		y = x
		res = tree.keyCompare(key, x.key)
		if /* equal */ res == 0 {
			if tree.policy&rbPolicyKeyOnly == 0 {
				x.val = val
			}
			return Cursor[K, V]{tree: tree, node: x}, false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}
	return Cursor[K, V]{tree: tree, node: tree.attach(y, res, key, val)}, true
}

// InsertMulti adds the key value pair even when equal keys are present.
// A fresh equal key lands after the existing ones in traversal order.
func (tree *rbTree[K, V]) InsertMulti(key K, val V) Cursor[K, V] {
	if tree.policy&rbPolicyDupKeys == 0 {
		panic( /* debug assertion */ "[x-rbtree] multi insert into a unique tree")
	}

	if /* i1 */ tree.root.isNilLeaf() {
		tree.root = &rbNode[K, V]{
			key:   key,
			val:   val,
			hasKV: true,
		}
		tree.count++
		return Cursor[K, V]{tree: tree, node: tree.root}
	}

	var x, y *rbNode[K, V] = tree.root, nil
	var res int64
	for !x.isNilLeaf() {
		y = x
		res = tree.keyCompare(key, x.key)
		if /* less */ res < 0 {
			x = x.left
		} else /* greater or equal */ {
			x = x.right
		}
	}
	return Cursor[K, V]{tree: tree, node: tree.attach(y, res, key, val)}
}

// attach links a fresh red node below y on the side res points to, then
// rebalances upwards.
func (tree *rbTree[K, V]) attach(y *rbNode[K, V], res int64, key K, val V) *rbNode[K, V] {
	if y.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] insert a new value into nil node")
	}

	z := &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  Red,
		parent: y,
		hasKV:  true,
	}
	if /* less */ res < 0 {
		y.left = z
	} else /* greater or equal */ {
		y.right = z
	}

	tree.count++
	tree.insertRebalance(z)
	return z
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black and P is root, so hold p3 and p4.

im2: Current node X's parent P is red and P is root, repaint P into black.

im3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation may be still red-violation. Here must enter im5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im5: Handle im4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	for !x.isNilLeaf() {
		if x.isRoot() {
			if x.isRed() {
				x.color = Black
			}
			return
		}

		if x.parent.isBlack() {
			return
		}

		if x.parent.isRoot() {
			if /* im1 */ x.parent.isBlack() {
				return
			}
			/* im2 */
			x.parent.color = Black
			return
		}

		if /* im3 */ x.hasUncle() && x.uncle().isRed() {
			x.parent.color = Black
			x.uncle().color = Black
			gp := x.grandpa()
			gp.color = Red
			x = gp
			continue
		} else {
			if !x.hasUncle() || x.uncle().isBlack() {
				dir := x.Direction()
				if /* im4 */ dir != x.parent.Direction() {
					p := x.parent
					switch dir {
					case Left:
						tree.rightRotate(p)
					case Right:
						tree.leftRotate(p)
					default:
						// impossible run to here
						panic( /* debug assertion */ "[x-rbtree] insert violate (im4)")
					}
					x = p // enter im5 to fix
				}

				switch /* im5 */ dir = x.parent.Direction(); dir {
				case Left:
					tree.rightRotate(x.grandpa())
				case Right:
					tree.leftRotate(x.grandpa())
				default:
					// impossible run to here
					panic( /* debug assertion */ "[x-rbtree] insert violate (im5)")
				}

				x.parent.color = Black
				x.sibling().color = Red
				return
			}
		}
	}
}

// transplant links v into u's structural slot. v may be nil.
func (tree *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
	switch u.Direction() {
	case Root:
		tree.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	default:
		// impossible run to here
		panic( /* debug assertion */ "[x-rbtree] unknown node direction to transplant")
	}
	if v != nil {
		v.parent = u.parent
	}
}

/*
Erase never moves a key or a value between nodes. The erased node Z itself
is unlinked, every other node keeps its identity.

e1: Z misses at least one side. The present child C (must be red if not NIL,
see the conclusion above) is transplanted into Z's slot.

	  |                |
	  Z                C
	 / \     ====>    / \
	C  NIL          ..  ..

e2: Z holds both children. Z's succ Y, the leftmost node of the right
subtree, so without a left child, is relinked into Z's slot and takes over
Z's color. Y keeps its node identity. The slot Y vacated is filled by Y's
right child X (may be NIL).

	  |                 |
	  Z                 Y
	 / \               / \
	L   R    ====>    L   R
	   /                 /
	  Y                 X
	   \
	    X

In both shapes, if the node that vacated a slot was black, the path through
that slot misses one black node (black-violation) and eraseRebalance
repairs it starting from the filler X and its parent.
*/
func (tree *rbTree[K, V]) eraseNode(z *rbNode[K, V]) {
	y := z
	removedColor := y.color
	var x, p *rbNode[K, V]

	if /* e1 */ z.left.isNilLeaf() {
		x, p = z.right, z.parent
		tree.transplant(z, z.right)
	} else if /* e1 */ z.right.isNilLeaf() {
		x, p = z.left, z.parent
		tree.transplant(z, z.left)
	} else /* e2 */ {
		y = z.right.minimum()
		removedColor = y.color
		x = y.right
		if y.parent == z {
			p = y
		} else {
			p = y.parent
			tree.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		tree.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	// Full unlink so a cursor at Z turns stale detectably.
	z.parent, z.left, z.right = nil, nil, nil
	z.hasKV = false

	if removedColor == Black {
		tree.eraseRebalance(x, p)
	}
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X is the node whose subtree misses one black node. It may be NIL, so its
parent P tracks the position. Sc is the nephew on X's side, Sd the nephew
on the opposite side.

rm1: X's sibling S is red, so P, Sc and Sd must be black. Rotate P towards
X, repaint S black and P red. X's new sibling is the old Sc, black, which
routes into rm2-rm5.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \                / \
	 [Sc] [Sd]          [X] [Sc]           [X] [Sc]

rm2: S, Sc and Sd are black, P is red. Swap the colors of S and P. The
missing black is restored, done.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: P, S, Sc and Sd are all black. Repaint S red to fix p4 locally, then
the whole subtree of P misses one black node. Recurse to fix P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: S is black, Sc is red and Sd is black. P's color does not matter.
Rotate S away from X, repaint Sc black and S red. X's new sibling is the
old Sc with a red Sd-side child, which routes into rm5.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: S is black and Sd is red. Rotate P towards X, S takes P's color, P and
Sd turn black. The missing black is restored, done.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) eraseRebalance(x, p *rbNode[K, V]) {
	for x != tree.root && isBlack[K, V](x) {
		if p == nil {
			// impossible run to here
			panic( /* debug assertion */ "[x-rbtree] double black node without parent")
		}

		if x == p.left {
			s := p.right
			if s.isNilLeaf() {
				// impossible run to here
				panic( /* debug assertion */ "[x-rbtree] double black node without sibling")
			}
			if /* rm1 */ s.isRed() {
				s.color = Black
				p.color = Red
				tree.leftRotate(p)
				s = p.right
			}
			if isBlack[K, V](s.left) && isBlack[K, V](s.right) {
				s.color = Red
				if /* rm2 */ p.isRed() {
					p.color = Black
					return
				}
				/* rm3 */
				x, p = p, p.parent
				continue
			}
			if /* rm4 */ isBlack[K, V](s.right) {
				s.left.color = Black
				s.color = Red
				tree.rightRotate(s)
				s = p.right
			}
			/* rm5 */
			s.color = p.color
			p.color = Black
			if !s.right.isNilLeaf() {
				s.right.color = Black
			}
			tree.leftRotate(p)
			return
		} else {
			// Mirror of the left-side cases.
			s := p.left
			if s.isNilLeaf() {
				// impossible run to here
				panic( /* debug assertion */ "[x-rbtree] double black node without sibling")
			}
			if /* rm1 */ s.isRed() {
				s.color = Black
				p.color = Red
				tree.rightRotate(p)
				s = p.left
			}
			if isBlack[K, V](s.left) && isBlack[K, V](s.right) {
				s.color = Red
				if /* rm2 */ p.isRed() {
					p.color = Black
					return
				}
				/* rm3 */
				x, p = p, p.parent
				continue
			}
			if /* rm4 */ isBlack[K, V](s.left) {
				s.right.color = Black
				s.color = Red
				tree.leftRotate(s)
				s = p.left
			}
			/* rm5 */
			s.color = p.color
			p.color = Black
			if !s.left.isNilLeaf() {
				s.left.color = Black
			}
			tree.rightRotate(p)
			return
		}
	}
	if x != nil {
		x.color = Black
	}
}

// Remove unlinks the first node in traversal order comparing equal to key
// and hands back its pair.
func (tree *rbTree[K, V]) Remove(key K) (k K, v V, err error) {
	if tree.count <= 0 {
		err = infra.WrapErrorStack(ErrRBTreeEmpty)
		return
	}
	z := tree.lowerBoundNode(key)
	if z == nil || tree.keyCompare(key, z.key) != 0 {
		err = infra.WrapErrorStack(ErrRBTreeNotFound)
		return
	}
	k, v = z.key, z.val
	tree.eraseNode(z)
	tree.count--
	return
}

// RemoveMin unlinks the leftmost node and hands back its pair.
func (tree *rbTree[K, V]) RemoveMin() (k K, v V, err error) {
	if tree.count <= 0 {
		err = infra.WrapErrorStack(ErrRBTreeEmpty)
		return
	}
	_min := tree.root.minimum()
	if _min.isNilLeaf() {
		err = infra.WrapErrorStack(ErrRBTreeNotFound)
		return
	}
	k, v = _min.key, _min.val
	tree.eraseNode(_min)
	tree.count--
	return
}

// SetComparatorAndClear installs a new key order. Nodes linked under the old
// order are unlinked first, so the tree restarts empty.
func (tree *rbTree[K, V]) SetComparatorAndClear(kcmp infra.Comparator[K]) error {
	if kcmp == nil {
		return infra.WrapErrorStack(ErrRBTreeNilComparator)
	}
	if tree.count > 0 {
		slog.Warn("[x-rbtree] comparator replaced on a non-empty tree, clearing elements",
			"count", tree.count)
	}
	tree.Release()
	tree.kcmp = kcmp
	return nil
}

// lowerBoundNode is the leftmost node whose key does not sort before key.
func (tree *rbTree[K, V]) lowerBoundNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for x := tree.root; !x.isNilLeaf(); {
		if /* greater */ tree.keyCompare(key, x.key) > 0 {
			x = x.right
		} else /* less or equal */ {
			candidate = x
			x = x.left
		}
	}
	return candidate
}

// upperBoundNode is the leftmost node whose key sorts after key.
func (tree *rbTree[K, V]) upperBoundNode(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for x := tree.root; !x.isNilLeaf(); {
		if /* greater or equal */ tree.keyCompare(key, x.key) >= 0 {
			x = x.right
		} else /* less */ {
			candidate = x
			x = x.left
		}
	}
	return candidate
}

func (tree *rbTree[K, V]) First() (key K, val V, ok bool) {
	if tree.root.isNilLeaf() {
		return
	}
	_min := tree.root.minimum()
	return _min.key, _min.val, true
}

func (tree *rbTree[K, V]) Last() (key K, val V, ok bool) {
	if tree.root.isNilLeaf() {
		return
	}
	_max := tree.root.maximum()
	return _max.key, _max.val, true
}

func (tree *rbTree[K, V]) Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V] {
	if x == nil {
		return nil
	}

	for aux := x; aux != nil; {
		res := fn(aux)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.Right()
		} else {
			aux = aux.Left()
		}
	}
	return nil
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := tree.count
	aux := tree.root
	if size < 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

// Release unlinks every node so stale cursors stay detectable, then resets
// the tree to empty.
func (tree *rbTree[K, V]) Release() {
	size := tree.count
	aux := tree.root
	tree.root = nil
	if size < 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		aux.hasKV = false
		tree.count--
		stack = stack[:size-1]
		if r != nil {
			for aux = r; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

type RBTreeOpt[K, V any] func(*rbTree[K, V])

// WithRBTreeDupKeys lets equal keys coexist, shaping the multi containers.
func WithRBTreeDupKeys[K, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.policy |= rbPolicyDupKeys
	}
}

// WithRBTreeKeyOnly shapes membership containers. Equal-key touches keep
// the stored value untouched.
func WithRBTreeKeyOnly[K, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.policy |= rbPolicyKeyOnly
	}
}

func NewRBTree[K, V any](kcmp infra.Comparator[K], opts ...RBTreeOpt[K, V]) (RBTree[K, V], error) {
	if kcmp == nil {
		return nil, infra.WrapErrorStack(ErrRBTreeNilComparator)
	}

	tree := &rbTree[K, V]{
		count: 0,
		kcmp:  kcmp,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree, nil
}
