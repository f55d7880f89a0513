package rope

import (
	"io"
	"strings"
)

// Slice is a read-only view over a contiguous byte range of a Rope,
// expressed as the ordered leaves the range touches plus trim offsets. It
// allocates nothing beyond the leaf reference list.
//
// A Slice borrows the rope that produced it: any edit to the rope
// invalidates the slice. Stale use is detected and reported as
// ErrStaleSlice (String panics, having no error path).
type Slice struct {
	rope   *Rope
	gen    uint64
	nodes  []*node
	start  int // bytes to skip in the first leaf only
	length int // total visible bytes across the slice
}

// Len returns the number of bytes the slice covers.
func (s *Slice) Len() int {
	return s.length
}

// stale reports whether the owning rope has been edited since the slice was
// created.
func (s *Slice) stale() bool {
	return s.gen != s.rope.gen
}

// leafView returns the visible bytes of leaf i, trimmed by the first-leaf
// start offset and by how many visible bytes remain.
func (s *Slice) leafView(i, remaining int) []byte {
	b := s.rope.storage.view(s.nodes[i])
	if i == 0 {
		b = b[s.start:]
	}
	if len(b) > remaining {
		b = b[:remaining]
	}
	return b
}

// String returns the slice contents as a string.
// It panics if the rope has been edited since the slice was created.
func (s *Slice) String() string {
	if s.stale() {
		panic("rope: " + ErrStaleSlice.Error())
	}

	var sb strings.Builder
	sb.Grow(s.length)
	remaining := s.length
	for i := range s.nodes {
		if remaining == 0 {
			break
		}
		b := s.leafView(i, remaining)
		sb.Write(b)
		remaining -= len(b)
	}
	return sb.String()
}

// WriteTo writes the slice contents to w.
func (s *Slice) WriteTo(w io.Writer) (int64, error) {
	if s.stale() {
		return 0, ErrStaleSlice
	}

	var written int64
	remaining := s.length
	for i := range s.nodes {
		if remaining == 0 {
			break
		}
		b := s.leafView(i, remaining)
		n, err := w.Write(b)
		written += int64(n)
		if err != nil {
			return written, err
		}
		remaining -= len(b)
	}
	return written, nil
}

// Bytes returns an iterator over the slice's bytes.
func (s *Slice) Bytes() *ByteIter {
	return &ByteIter{slice: s}
}

// Chars returns an iterator over the slice's UTF-8 code points.
func (s *Slice) Chars() *Chars {
	return &Chars{bytes: s.Bytes()}
}

// ByteIter iterates over the bytes of a Slice in document order.
type ByteIter struct {
	slice   *Slice
	node    int
	view    []byte
	idx     int
	abs     int // bytes consumed so far, also the next byte's offset
	b       byte
	off     int
	err     error
	started bool
}

// Next advances to the next byte.
// Returns true if there is a byte, false if iteration is complete or failed.
func (it *ByteIter) Next() bool {
	if it.err != nil {
		return false
	}
	if it.slice.stale() {
		it.err = ErrStaleSlice
		return false
	}

	for {
		if it.abs >= it.slice.length {
			return false
		}
		if !it.started {
			it.started = true
			it.view = it.slice.leafView(0, it.slice.length)
		}
		if it.idx < len(it.view) {
			it.b = it.view[it.idx]
			it.off = it.abs
			it.idx++
			it.abs++
			return true
		}

		// Current leaf exhausted; move to the next one.
		it.node++
		if it.node >= len(it.slice.nodes) {
			return false
		}
		it.view = it.slice.leafView(it.node, it.slice.length-it.abs)
		it.idx = 0
	}
}

// Byte returns the current byte.
func (it *ByteIter) Byte() byte {
	return it.b
}

// Offset returns the current byte's offset relative to the slice start.
func (it *ByteIter) Offset() int {
	return it.off
}

// Err returns the first error encountered, if any.
func (it *ByteIter) Err() error {
	return it.err
}
