package rope

import (
	"fmt"
	"unicode/utf8"
)

// Chars is a forward-only iterator decoding UTF-8 code points from a Slice.
// Each step yields a character and the byte offset of its first byte,
// relative to the slice start (absolute offsets when obtained from
// Rope.Chars). Decoding is leaf-boundary-aware: a code point whose bytes
// straddle two leaves decodes normally.
type Chars struct {
	bytes *ByteIter
	ch    rune
	off   int
	err   error
}

// Next advances to the next code point.
// Returns true if a character was decoded; false when the slice is
// exhausted or decoding failed. A decode failure is terminal for the
// iteration and is reported by Err.
func (c *Chars) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.bytes.Next() {
		c.err = c.bytes.Err()
		return false
	}

	first := c.bytes.Byte()
	c.off = c.bytes.Offset()

	width := utf8Width(first)
	switch width {
	case 0:
		c.err = fmt.Errorf("leading byte 0x%02x at offset %d: %w", first, c.off, ErrInvalidUTF8)
		return false
	case 1:
		c.ch = rune(first)
		return true
	}

	var buf [utf8.UTFMax]byte
	buf[0] = first
	for i := 1; i < width; i++ {
		if !c.bytes.Next() {
			if err := c.bytes.Err(); err != nil {
				c.err = err
			} else {
				c.err = fmt.Errorf("truncated sequence at offset %d: %w", c.off, ErrInvalidUTF8)
			}
			return false
		}
		buf[i] = c.bytes.Byte()
	}

	r, size := utf8.DecodeRune(buf[:width])
	if r == utf8.RuneError && size <= 1 {
		c.err = fmt.Errorf("invalid sequence at offset %d: %w", c.off, ErrInvalidUTF8)
		return false
	}
	c.ch = r
	return true
}

// Char returns the current code point.
func (c *Chars) Char() rune {
	return c.ch
}

// Offset returns the byte offset of the current code point's first byte,
// relative to the slice start.
func (c *Chars) Offset() int {
	return c.off
}

// Err returns the first error encountered: nil, ErrInvalidUTF8 (wrapped with
// position context), or ErrStaleSlice.
func (c *Chars) Err() error {
	return c.err
}

// utf8Width returns the byte width of a UTF-8 sequence given its leading
// byte, or 0 for a byte that cannot start a sequence.
func utf8Width(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF8:
		return 4
	default:
		return 0
	}
}
