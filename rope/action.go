package rope

// actionKind discriminates the outcomes a mutating node operation can
// report. The set is closed; switches over it must handle every kind.
type actionKind uint8

const (
	actionNone    actionKind = iota // subtree untouched
	actionRemove                    // subtree is gone; parent must drop it
	actionAdjust                    // subtree kept its root; length changed by delta
	actionReplace                   // subtree replaced by node; length changed by delta
)

// action is the outcome a node mutation hands back up the recursion. delta
// is the signed change in byte length of the subtree the action describes.
// Actions are transient; they are consumed by the immediate caller and never
// stored.
type action struct {
	kind  actionKind
	node  *node
	delta int
}

func removeSelf() action {
	return action{kind: actionRemove}
}

func adjustBy(delta int) action {
	return action{kind: actionAdjust, delta: delta}
}

func replaceWith(n *node, delta int) action {
	return action{kind: actionReplace, node: n, delta: delta}
}
