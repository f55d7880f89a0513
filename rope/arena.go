package rope

// arena owns every byte buffer backing the tree, one buffer per inserted
// string. It is append-only: a buffer is never resized, reordered, or
// released while the owning Rope is alive, so leaf references into it stay
// valid across arbitrary tree restructuring. Freed ranges are not reclaimed.
type arena struct {
	bufs [][]byte
}

// add copies text into a new buffer and returns the buffer's index.
func (a *arena) add(text string) int {
	a.bufs = append(a.bufs, []byte(text))
	return len(a.bufs) - 1
}

// view returns the bytes a leaf makes visible.
func (a *arena) view(n *node) []byte {
	return a.bufs[n.buf][n.off : n.off+n.length]
}
