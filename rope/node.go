package rope

import (
	"fmt"
	"strings"
)

// nodeKind discriminates the two node variants. The set is closed; every
// switch over nodeKind handles both and panics otherwise.
type nodeKind uint8

const (
	leafNode  nodeKind = iota // references a byte range in one arena buffer
	innerNode                 // weight plus optional left/right children
)

// node is a tagged variant forming the rope tree. Each child pointer is
// exclusively owned by its parent.
//
// Invariants:
//   - inner: len() == weight + right.len(); a nil left implies weight == 0
//   - weight is the total byte length of the entire left subtree
//   - leaf: length is the visible byte count; the leaf never owns the bytes
type node struct {
	kind nodeKind

	// Leaf fields: a non-owning reference into one arena buffer.
	buf    int
	off    int
	length int

	// Inner fields.
	weight      int
	left, right *node
}

func emptyInner() *node {
	return &node{kind: innerNode}
}

func newInner(left, right *node, weight int) *node {
	return &node{kind: innerNode, weight: weight, left: left, right: right}
}

func newLeaf(buf, off, length int) *node {
	return &node{kind: leafNode, buf: buf, off: off, length: length}
}

// len returns the total byte length of the subtree.
func (n *node) len() int {
	switch n.kind {
	case innerNode:
		if n.right != nil {
			return n.weight + n.right.len()
		}
		return n.weight
	case leafNode:
		return n.length
	}
	panic(fmt.Sprintf("rope: unknown node kind %d", n.kind))
}

// insert places leaf at position start, relative to this subtree, and
// reports how the parent must update itself.
func (n *node) insert(leaf *node, start int) action {
	switch n.kind {
	case innerNode:
		return n.insertInner(leaf, start)
	case leafNode:
		return n.insertLeaf(leaf, start)
	}
	panic(fmt.Sprintf("rope: unknown node kind %d", n.kind))
}

func (n *node) insertInner(leaf *node, start int) action {
	total := 0
	if start <= n.weight {
		// A position exactly on the subtree boundary descends left, so it
		// lands after the left side's rightmost leaf.
		var act action
		if n.left != nil {
			act = n.left.insert(leaf, start)
		} else {
			if n.weight != 0 {
				panic("rope: inner node without left child has nonzero weight")
			}
			act = replaceWith(leaf, leaf.len())
		}
		switch act.kind {
		case actionReplace:
			n.left = act.node
			n.weight += act.delta
			total += act.delta
		case actionAdjust:
			n.weight += act.delta
			total += act.delta
		default:
			panic("rope: unexpected action from left insert")
		}
	} else {
		var act action
		if n.right != nil {
			act = n.right.insert(leaf, start-n.weight)
		} else {
			act = replaceWith(leaf, leaf.len())
		}
		switch act.kind {
		case actionReplace:
			n.right = act.node
			total += act.delta
		case actionAdjust:
			total += act.delta
		default:
			panic("rope: unexpected action from right insert")
		}
	}
	return adjustBy(total)
}

func (n *node) insertLeaf(leaf *node, start int) action {
	added := leaf.len()
	switch {
	case start == 0:
		return replaceWith(newInner(leaf, n, added), added)
	case start == n.length:
		return replaceWith(newInner(n, leaf, n.length), added)
	default:
		// Split this leaf at start and nest the new leaf between the halves.
		left := newLeaf(n.buf, n.off, start)
		right := newLeaf(n.buf, n.off+start, n.length-start)
		sub := newInner(left, leaf, start)
		return replaceWith(newInner(sub, right, start+added), added)
	}
}

// remove deletes the byte range [start, end), relative to this subtree.
// Precondition: start < end.
func (n *node) remove(start, end int) action {
	switch n.kind {
	case innerNode:
		return n.removeInner(start, end)
	case leafNode:
		return n.removeLeaf(start, end)
	}
	panic(fmt.Sprintf("rope: unknown node kind %d", n.kind))
}

func (n *node) removeInner(start, end int) action {
	leftAct := action{}
	if start <= n.weight {
		if n.left == nil {
			panic("rope: remove descended into missing left child")
		}
		leftAct = n.left.remove(start, end)
	}

	rightAct := action{}
	if end > n.weight {
		if n.right == nil {
			panic("rope: remove descended into missing right child")
		}
		rstart := 0
		if start > n.weight {
			rstart = start - n.weight
		}
		rightAct = n.right.remove(rstart, end-n.weight)
	}

	if leftAct.kind == actionRemove && rightAct.kind == actionRemove ||
		leftAct.kind == actionRemove && n.right == nil ||
		rightAct.kind == actionRemove && n.left == nil {
		return removeSelf()
	}
	// One side is gone entirely: the survivor replaces this node, carrying
	// whatever its own action did to it.
	if leftAct.kind == actionRemove {
		survivor, delta := n.right, -n.weight
		switch rightAct.kind {
		case actionReplace:
			survivor = rightAct.node
			delta += rightAct.delta
		case actionAdjust:
			delta += rightAct.delta
		}
		return replaceWith(survivor, delta)
	}
	if rightAct.kind == actionRemove {
		survivor, delta := n.left, -n.right.len()
		switch leftAct.kind {
		case actionReplace:
			survivor = leftAct.node
			delta += leftAct.delta
		case actionAdjust:
			delta += leftAct.delta
		}
		return replaceWith(survivor, delta)
	}

	// Both sides survive: absorb their deltas. Only a dropped child
	// propagates a replacement upward.
	total := 0
	switch leftAct.kind {
	case actionReplace:
		n.left = leftAct.node
		n.weight += leftAct.delta
		total += leftAct.delta
	case actionAdjust:
		n.weight += leftAct.delta
		total += leftAct.delta
	}
	switch rightAct.kind {
	case actionReplace:
		n.right = rightAct.node
		total += rightAct.delta
	case actionAdjust:
		total += rightAct.delta
	}
	return adjustBy(total)
}

func (n *node) removeLeaf(start, end int) action {
	if start > n.length {
		panic("rope: leaf removal start out of range")
	}

	if start == 0 && end >= n.length {
		return removeSelf()
	}

	old := n.length
	if start == 0 {
		// Prefix removal: advance into the buffer.
		n.off += end
		n.length = old - end
		return adjustBy(n.length - old)
	}
	if end >= n.length {
		// Suffix removal: truncate.
		n.length = start
		return adjustBy(start - old)
	}

	// Middle removal: split into the two surviving halves.
	left := newLeaf(n.buf, n.off, start)
	right := newLeaf(n.buf, n.off+end, old-end)
	return replaceWith(newInner(left, right, start), -(end - start))
}

// findSlice collects the leaves overlapping [start, end), relative to this
// subtree, into s. Read-only.
func (n *node) findSlice(start, end int, s *Slice) {
	switch n.kind {
	case innerNode:
		if start < n.weight {
			n.left.findSlice(start, end, s)
		}
		if end > n.weight {
			rstart := 0
			if start > n.weight {
				rstart = start - n.weight
			}
			n.right.findSlice(rstart, end-n.weight, s)
		}
	case leafNode:
		visible := min(end, n.length)
		if start > 0 {
			// Only the first leaf collected can be entered mid-leaf.
			s.start = start
			visible -= start
		}
		s.nodes = append(s.nodes, n)
		s.length += visible
	default:
		panic(fmt.Sprintf("rope: unknown node kind %d", n.kind))
	}
}

// replaceAt overwrites len(text) bytes starting at start, relative to this
// subtree. The width check happens at the Rope level; by construction the
// text handed to every node fits its extent.
func (n *node) replaceAt(a *arena, start int, text []byte) {
	switch n.kind {
	case innerNode:
		end := start + len(text)
		if start < n.weight {
			n.left.replaceAt(a, start, text[:min(n.weight-start, len(text))])
		}
		if end > n.weight {
			rstart, cut := start-n.weight, 0
			if start < n.weight {
				rstart, cut = 0, n.weight-start
			}
			n.right.replaceAt(a, rstart, text[cut:])
		}
	case leafNode:
		if start+len(text) > n.length {
			panic("rope: replacement overruns leaf")
		}
		copy(a.bufs[n.buf][n.off+start:], text)
	default:
		panic(fmt.Sprintf("rope: unknown node kind %d", n.kind))
	}
}

// appendTo writes the subtree's visible bytes, in order, to sb.
func (n *node) appendTo(a *arena, sb *strings.Builder) {
	switch n.kind {
	case innerNode:
		if n.left != nil {
			n.left.appendTo(a, sb)
		}
		if n.right != nil {
			n.right.appendTo(a, sb)
		}
	case leafNode:
		sb.Write(a.view(n))
	}
}
