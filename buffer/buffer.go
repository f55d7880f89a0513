package buffer

import (
	"errors"
	"io"
	"sync"

	"github.com/dshills/ropebuf/rope"
)

// Errors returned by buffer operations.
var (
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

// Buffer wraps a Rope with a lock and revision tracking. All methods are
// thread-safe.
type Buffer struct {
	mu       sync.RWMutex
	rope     *rope.Rope
	revision uint64
}

// New creates a new empty buffer.
func New() *Buffer {
	return &Buffer{rope: rope.New()}
}

// FromString creates a buffer with initial content.
func FromString(s string) *Buffer {
	return &Buffer{rope: rope.FromString(s)}
}

// FromReader creates a buffer from the full contents of r.
func FromReader(r io.Reader) (*Buffer, error) {
	rp, err := rope.FromReader(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{rope: rp}, nil
}

// Read operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// TextRange returns the text in the byte range [start, end).
func (b *Buffer) TextRange(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := b.rope.Slice(start, end)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// Revision returns the current revision. It increases by at least one for
// every successful mutation.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// WriteTo writes the full buffer content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.WriteTo(w)
}

// Write operations

// Insert inserts text at the given offset and returns the end position of
// the inserted text.
func (b *Buffer) Insert(start int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.rope.Insert(start, text); err != nil {
		return 0, err
	}
	b.revision++
	return start + len(text), nil
}

// Append adds text at the end of the buffer.
func (b *Buffer) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rope.Append(text)
	b.revision++
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.rope.Remove(start, end); err != nil {
		return err
	}
	b.revision++
	return nil
}

// ReplaceAt overwrites bytes in place without changing the buffer length.
// See rope.Rope.ReplaceAt for the fixed-width contract.
func (b *Buffer) ReplaceAt(start int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.rope.ReplaceAt(start, text); err != nil {
		return err
	}
	b.revision++
	return nil
}

// Replace replaces the byte range [start, end) with text of any length and
// returns the end position of the replacement. Unlike ReplaceAt this is a
// general substitution: the old range is removed and the new text spliced
// in.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.replaceLocked(start, end, text); err != nil {
		return 0, err
	}
	b.revision++
	return start + len(text), nil
}

// replaceLocked performs a variable-width replacement. Caller holds the
// write lock.
func (b *Buffer) replaceLocked(start, end int, text string) error {
	if err := b.rope.Remove(start, end); err != nil {
		return err
	}
	// After removing [start, end) the rope is at least start bytes long, so
	// this insert cannot fail.
	return b.rope.Insert(start, text)
}

// ApplyEdit applies a single edit and reports what changed.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, err := b.rope.Slice(edit.Range.Start, edit.Range.End)
	if err != nil {
		return EditResult{}, err
	}
	oldText := s.String()

	if err := b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText); err != nil {
		return EditResult{}, err
	}
	b.revision++

	newEnd := edit.Range.Start + len(edit.NewText)
	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    len(edit.NewText) - edit.Range.Len(),
	}, nil
}

// ApplyEdits applies multiple edits atomically. Edits must be given in
// reverse order (highest offset first) and must not overlap, so earlier
// offsets stay valid as later ones are rewritten.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}
	length := b.rope.Len()
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End || edit.Range.End > length {
			return rope.ErrOutOfBounds
		}
	}

	for _, edit := range edits {
		if err := b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText); err != nil {
			return err
		}
	}
	b.revision++
	return nil
}
