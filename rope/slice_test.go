package rope

import (
	"errors"
	"strings"
	"testing"
)

// fragmentedRope returns a rope whose tree holds one leaf per piece, plus
// the concatenated text for reference.
func fragmentedRope(t *testing.T, pieces ...string) (*Rope, string) {
	t.Helper()
	r := New()
	text := ""
	for _, p := range pieces {
		r.Append(p)
		text += p
	}
	if r.String() != text {
		t.Fatalf("setup produced %q, want %q", r.String(), text)
	}
	return r, text
}

func TestSlice(t *testing.T) {
	r, text := fragmentedRope(t, "Hello", " ", "world", "!")

	tests := []struct {
		name       string
		start, end int
	}{
		{"full", 0, 12},
		{"first word", 0, 5},
		{"last word", 6, 11},
		{"across leaves", 3, 8},
		{"within one leaf", 7, 9},
		{"empty at start", 0, 0},
		{"empty in middle", 5, 5},
		{"empty at end", 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.Slice(tt.start, tt.end)
			if err != nil {
				t.Fatalf("Slice() error: %v", err)
			}
			want := text[tt.start:tt.end]
			if s.Len() != len(want) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(want))
			}
			if got := s.String(); got != want {
				t.Errorf("String() = %q, want %q", got, want)
			}
		})
	}
}

func TestSliceAllRanges(t *testing.T) {
	r, text := fragmentedRope(t, "ab", "cde", "f", "ghij", "k")

	for a := 0; a <= len(text); a++ {
		for b := a; b <= len(text); b++ {
			s, err := r.Slice(a, b)
			if err != nil {
				t.Fatalf("Slice(%d, %d): %v", a, b, err)
			}
			if got := s.String(); got != text[a:b] {
				t.Fatalf("Slice(%d, %d) = %q, want %q", a, b, got, text[a:b])
			}
		}
	}
}

func TestSliceOutOfBounds(t *testing.T) {
	r := FromString("hello")

	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 3},
		{"start after end", 4, 2},
		{"end past length", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Slice(tt.start, tt.end)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Slice(%d, %d) error = %v, want ErrOutOfBounds", tt.start, tt.end, err)
			}
		})
	}
}

func TestSliceEmptyRope(t *testing.T) {
	r := New()
	s, err := r.Slice(0, 0)
	if err != nil {
		t.Fatalf("Slice() error: %v", err)
	}
	if s.Len() != 0 || s.String() != "" {
		t.Errorf("empty slice = (%d, %q)", s.Len(), s.String())
	}
}

func TestSliceBytesFromStart(t *testing.T) {
	r := FromString("Helloworld!")
	if err := r.Insert(5, " "); err != nil {
		t.Fatal(err)
	}

	s, err := r.Slice(0, 5)
	if err != nil {
		t.Fatal(err)
	}

	it := s.Bytes()
	for i, want := range []byte("Hello") {
		if !it.Next() {
			t.Fatalf("Bytes ended early at %d", i)
		}
		if it.Byte() != want || it.Offset() != i {
			t.Errorf("byte %d = (%c, %d), want (%c, %d)", i, it.Byte(), it.Offset(), want, i)
		}
	}
	if it.Next() {
		t.Error("Bytes yielded extra byte")
	}
	if it.Err() != nil {
		t.Errorf("Err() = %v", it.Err())
	}
}

func TestSliceBytesFromMiddle(t *testing.T) {
	r := FromString("Helloworld!")
	if err := r.Insert(5, " "); err != nil {
		t.Fatal(err)
	}

	s, err := r.Slice(3, 9)
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	it := s.Bytes()
	for it.Next() {
		got = append(got, it.Byte())
	}
	if it.Err() != nil {
		t.Fatalf("Err() = %v", it.Err())
	}
	if string(got) != "lo wor" {
		t.Errorf("got %q, want %q", got, "lo wor")
	}
}

func TestSliceBytesWithoutSplit(t *testing.T) {
	r := FromString("Hello world!")

	s, err := r.Slice(3, 9)
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	it := s.Bytes()
	for it.Next() {
		got = append(got, it.Byte())
	}
	if string(got) != "lo wor" {
		t.Errorf("got %q, want %q", got, "lo wor")
	}
}

func TestSliceWriteTo(t *testing.T) {
	r, text := fragmentedRope(t, "alpha", "beta", "gamma")

	s, err := r.Slice(2, 11)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	n, err := s.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if n != int64(s.Len()) {
		t.Errorf("WriteTo() wrote %d bytes, want %d", n, s.Len())
	}
	if sb.String() != text[2:11] {
		t.Errorf("WriteTo() wrote %q, want %q", sb.String(), text[2:11])
	}
}

func TestSliceStale(t *testing.T) {
	r := FromString("hello world")
	s, err := r.Slice(0, 5)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.WriteTo(&strings.Builder{}); !errors.Is(err, ErrStaleSlice) {
		t.Errorf("WriteTo() error = %v, want ErrStaleSlice", err)
	}

	it := s.Bytes()
	if it.Next() {
		t.Error("Bytes on stale slice should not yield")
	}
	if !errors.Is(it.Err(), ErrStaleSlice) {
		t.Errorf("Bytes Err() = %v, want ErrStaleSlice", it.Err())
	}

	cs := s.Chars()
	if cs.Next() {
		t.Error("Chars on stale slice should not yield")
	}
	if !errors.Is(cs.Err(), ErrStaleSlice) {
		t.Errorf("Chars Err() = %v, want ErrStaleSlice", cs.Err())
	}

	defer func() {
		if recover() == nil {
			t.Error("String() on stale slice should panic")
		}
	}()
	_ = s.String()
}

func TestSliceStaleMidIteration(t *testing.T) {
	r := FromString("hello world")
	s, err := r.Slice(0, 11)
	if err != nil {
		t.Fatal(err)
	}

	it := s.Bytes()
	if !it.Next() {
		t.Fatal("first Next() failed")
	}

	if err := r.Remove(0, 1); err != nil {
		t.Fatal(err)
	}

	if it.Next() {
		t.Error("Next() after edit should fail")
	}
	if !errors.Is(it.Err(), ErrStaleSlice) {
		t.Errorf("Err() = %v, want ErrStaleSlice", it.Err())
	}
}

func TestSliceReplaceAtInvalidates(t *testing.T) {
	// In-place substitution does not restructure the tree, but it still
	// counts as an edit for outstanding views.
	r := FromString("hello")
	s, err := r.Slice(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ReplaceAt(0, "H"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.WriteTo(&strings.Builder{}); !errors.Is(err, ErrStaleSlice) {
		t.Errorf("WriteTo() error = %v, want ErrStaleSlice", err)
	}
}
