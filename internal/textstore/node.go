// internal/textstore/node.go
package textstore

import "slices"

// Leaf sizing. Leaves are never empty; the empty store has a nil root.
const (
	maxLeaf    = 512
	targetLeaf = maxLeaf / 2
)

// node is either a leaf holding runes or an internal node with exactly two
// children. Every node caches rune and newline counts for its subtree.
type node struct {
	left, right *node
	runes       []rune

	chars  int
	lines  int // newlines in subtree
	height int // 0 for leaves
}

func newLeaf(rs []rune) *node {
	return &node{runes: rs, chars: len(rs), lines: countNewlines(rs)}
}

func newInternal(l, r *node) *node {
	n := &node{left: l, right: r}
	n.update()
	return n
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// update recomputes the cached metrics of an internal node from its children.
func (n *node) update() {
	n.chars = n.left.chars + n.right.chars
	n.lines = n.left.lines + n.right.lines
	n.height = max(n.left.height, n.right.height) + 1
}

func height(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

func countNewlines(rs []rune) int {
	c := 0
	for _, r := range rs {
		if r == '\n' {
			c++
		}
	}
	return c
}

// --- Balancing ---

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	n.update()
	l.right = n
	l.update()
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	n.update()
	r.left = n
	r.update()
	return r
}

// balance restores the AVL property at n, assuming its children differ in
// height by at most two.
func balance(n *node) *node {
	n.update()
	switch bf := height(n.left) - height(n.right); {
	case bf > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

// join concatenates two balanced trees into one balanced tree.
func join(l, r *node) *node {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.height > r.height+1:
		l.right = join(l.right, r)
		return balance(l)
	case r.height > l.height+1:
		r.left = join(l, r.left)
		return balance(r)
	}
	return newInternal(l, r)
}

// concat is join, merging two small leaves into one instead of stacking them.
func concat(l, r *node) *node {
	if l != nil && r != nil && l.isLeaf() && r.isLeaf() && l.chars+r.chars <= maxLeaf {
		return newLeaf(slices.Concat(l.runes, r.runes))
	}
	return join(l, r)
}

// split cuts n so that the left tree holds the first i runes.
func split(n *node, i int) (*node, *node) {
	switch {
	case n == nil:
		return nil, nil
	case i <= 0:
		return nil, n
	case i >= n.chars:
		return n, nil
	case n.isLeaf():
		return newLeaf(slices.Clone(n.runes[:i])), newLeaf(slices.Clone(n.runes[i:]))
	}

	lc := n.left.chars
	switch {
	case i == lc:
		return n.left, n.right
	case i < lc:
		ll, lr := split(n.left, i)
		return ll, join(lr, n.right)
	default:
		rl, rr := split(n.right, i-lc)
		return join(n.left, rl), rr
	}
}

// build creates a perfectly balanced tree from rs.
func build(rs []rune) *node {
	if len(rs) == 0 {
		return nil
	}
	leaves := make([]*node, 0, len(rs)/targetLeaf+1)
	for len(rs) > 0 {
		n := min(len(rs), targetLeaf)
		leaves = append(leaves, newLeaf(slices.Clone(rs[:n])))
		rs = rs[n:]
	}
	return buildLeaves(leaves)
}

func buildLeaves(leaves []*node) *node {
	if len(leaves) == 1 {
		return leaves[0]
	}
	mid := len(leaves) / 2
	return newInternal(buildLeaves(leaves[:mid]), buildLeaves(leaves[mid:]))
}

// --- In-place edits ---

// insertSmall inserts at most maxLeaf runes at i. An overflowing leaf is
// split in two, so the subtree grows by at most one level.
func insertSmall(n *node, i int, rs []rune) *node {
	if n.isLeaf() {
		if n.chars+len(rs) <= maxLeaf {
			n.runes = slices.Insert(n.runes, i, rs...)
			n.chars += len(rs)
			n.lines += countNewlines(rs)
			return n
		}
		merged := slices.Concat(n.runes[:i], rs, n.runes[i:])
		mid := len(merged) / 2
		return newInternal(newLeaf(merged[:mid:mid]), newLeaf(merged[mid:]))
	}

	if i <= n.left.chars {
		n.left = insertSmall(n.left, i, rs)
	} else {
		n.right = insertSmall(n.right, i-n.left.chars, rs)
	}
	return balance(n)
}

// removeWithin deletes [start, end) when the range lies inside a single leaf
// that keeps at least one rune. It reports false and leaves n untouched
// otherwise.
func removeWithin(n *node, start, end int) bool {
	if n.isLeaf() {
		if end-start >= n.chars {
			return false
		}
		nl := countNewlines(n.runes[start:end])
		n.runes = slices.Delete(n.runes, start, end)
		n.chars -= end - start
		n.lines -= nl
		return true
	}

	lc := n.left.chars
	var ok bool
	switch {
	case end <= lc:
		ok = removeWithin(n.left, start, end)
	case start >= lc:
		ok = removeWithin(n.right, start-lc, end-lc)
	}
	if ok {
		n.update()
	}
	return ok
}

// --- Queries ---

// newlineAt returns the rune index of the k-th newline (k >= 1).
// The caller guarantees n.lines >= k.
func newlineAt(n *node, k int) int {
	offset := 0
	for !n.isLeaf() {
		if k <= n.left.lines {
			n = n.left
			continue
		}
		k -= n.left.lines
		offset += n.left.chars
		n = n.right
	}
	for i, r := range n.runes {
		if r == '\n' {
			k--
			if k == 0 {
				return offset + i
			}
		}
	}
	return offset + n.chars
}

func appendRange(dst []rune, n *node, start, end int) []rune {
	if n == nil || start >= end {
		return dst
	}
	if n.isLeaf() {
		return append(dst, n.runes[start:end]...)
	}
	lc := n.left.chars
	if start < lc {
		dst = appendRange(dst, n.left, start, min(end, lc))
	}
	if end > lc {
		dst = appendRange(dst, n.right, max(start-lc, 0), end-lc)
	}
	return dst
}
