package rope

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Errors returned by rope operations.
var (
	// ErrOutOfBounds reports a position or range outside [0, Len()].
	ErrOutOfBounds = errors.New("offset out of range")

	// ErrWidthMismatch reports a ReplaceAt whose text would run past the end
	// of the buffer. The check happens before any byte is written.
	ErrWidthMismatch = errors.New("replacement exceeds available room")

	// ErrInvalidUTF8 reports a malformed byte sequence during character
	// iteration.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 sequence")

	// ErrStaleSlice reports use of a Slice after the rope it borrows from
	// was edited.
	ErrStaleSlice = errors.New("slice invalidated by a later edit")
)

// Rope is a mutable text buffer. It owns the tree root, the backing arena,
// and the total byte length; length always equals the root subtree's length
// and is maintained from the deltas mutations report.
//
// A Rope is not safe for concurrent use.
type Rope struct {
	root    *node
	length  int
	storage arena
	gen     uint64
}

// New creates an empty rope.
func New() *Rope {
	return &Rope{root: emptyInner()}
}

// FromString creates a rope holding text.
func FromString(text string) *Rope {
	r := New()
	r.insert(0, text)
	return r
}

// FromReader creates a rope from the full contents of rd.
func FromReader(rd io.Reader) (*Rope, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return FromString(string(data)), nil
}

// Len returns the total byte length.
func (r *Rope) Len() int {
	return r.length
}

// IsEmpty returns true if the rope contains no text.
func (r *Rope) IsEmpty() bool {
	return r.length == 0
}

// Insert splices text in at byte offset start.
func (r *Rope) Insert(start int, text string) error {
	if start < 0 || start > r.length {
		return fmt.Errorf("insert at %d in rope of %d bytes: %w", start, r.length, ErrOutOfBounds)
	}
	r.insert(start, text)
	return nil
}

// Append adds text at the end of the rope.
func (r *Rope) Append(text string) {
	r.insert(r.length, text)
}

// insert performs a bounds-checked insertion. Precondition: 0 <= start <= length.
func (r *Rope) insert(start int, text string) {
	if len(text) == 0 {
		return
	}

	buf := r.storage.add(text)
	leaf := newLeaf(buf, 0, len(text))

	act := r.root.insert(leaf, start)
	switch act.kind {
	case actionReplace:
		r.root = act.node
	case actionAdjust:
	default:
		panic("rope: unexpected action from root insert")
	}
	if act.delta != len(text) {
		panic(fmt.Sprintf("rope: insert delta %d does not match text length %d", act.delta, len(text)))
	}

	r.length += act.delta
	r.gen++
}

// Remove deletes the byte range [start, end).
func (r *Rope) Remove(start, end int) error {
	if start < 0 || start > end || end > r.length {
		return fmt.Errorf("remove [%d, %d) from rope of %d bytes: %w", start, end, r.length, ErrOutOfBounds)
	}
	if start == end {
		return nil
	}

	act := r.root.remove(start, end)
	switch act.kind {
	case actionRemove:
		r.root = emptyInner()
		r.length = 0
	case actionReplace:
		r.root = act.node
		r.length += act.delta
	case actionAdjust:
		r.length += act.delta
	default:
		panic("rope: unexpected action from root remove")
	}

	r.gen++
	return nil
}

// ReplaceAt overwrites the bytes at [start, start+len(text)) in place. The
// substitution is fixed-width: it never restructures the tree or changes
// Len(). Text that would run past the end of the buffer is rejected with
// ErrWidthMismatch before anything is written.
//
// Offsets are byte offsets; replacing part of a multi-byte code point with
// bytes of a different character is the caller's responsibility to avoid.
func (r *Rope) ReplaceAt(start int, text string) error {
	if start < 0 || start > r.length {
		return fmt.Errorf("replace at %d in rope of %d bytes: %w", start, r.length, ErrOutOfBounds)
	}
	if len(text) == 0 {
		return nil
	}
	if start+len(text) > r.length {
		return fmt.Errorf("replace %d bytes at %d in rope of %d bytes: %w", len(text), start, r.length, ErrWidthMismatch)
	}

	r.root.replaceAt(&r.storage, start, []byte(text))
	r.gen++
	return nil
}

// ReplaceRuneAt overwrites a single code point's encoding starting at start.
// The new rune must occupy no more bytes than remain in the buffer; as with
// ReplaceAt, the byte widths of the old and new characters must match for
// the surrounding text to stay intact.
func (r *Rope) ReplaceRuneAt(start int, c rune) error {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	return r.ReplaceAt(start, string(buf[:n]))
}

// Slice returns a read-only view of the byte range [start, end). The view
// borrows the rope's leaves; any later edit invalidates it.
func (r *Rope) Slice(start, end int) (*Slice, error) {
	if start < 0 || start > end || end > r.length {
		return nil, fmt.Errorf("slice [%d, %d) of rope of %d bytes: %w", start, end, r.length, ErrOutOfBounds)
	}

	s := &Slice{rope: r, gen: r.gen}
	if start == end {
		return s, nil
	}
	r.root.findSlice(start, end, s)
	if s.length > end-start {
		s.length = end - start
	}
	return s, nil
}

// fullSlice returns a view of the whole buffer.
func (r *Rope) fullSlice() *Slice {
	s := &Slice{rope: r, gen: r.gen}
	if r.length > 0 {
		r.root.findSlice(0, r.length, s)
	}
	return s
}

// Chars returns a code point iterator over the whole buffer.
func (r *Rope) Chars() *Chars {
	return r.fullSlice().Chars()
}

// String returns the full text as a string.
func (r *Rope) String() string {
	var sb strings.Builder
	sb.Grow(r.length)
	r.root.appendTo(&r.storage, &sb)
	return sb.String()
}

// WriteTo writes the full text to w.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	return r.fullSlice().WriteTo(w)
}
