package rope

import (
	"strings"
	"testing"
)

func BenchmarkFromString(b *testing.B) {
	text := strings.Repeat("abcdefghij", 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FromString(text)
	}
}

func BenchmarkAppend(b *testing.B) {
	r := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Append("chunk of text ")
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := FromString(strings.Repeat("x", 4096))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Insert(r.Len()/2, "y"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkInsertFront exercises the unbalanced tree's worst case: repeated
// front insertion grows depth linearly.
func BenchmarkInsertFront(b *testing.B) {
	r := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Insert(0, "y"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRemove(b *testing.B) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		r := FromString(strings.Repeat("abcdefghij", 100))
		b.StartTimer()
		if err := r.Remove(200, 800); err != nil {
			b.Fatal(err)
		}
		b.StopTimer()
	}
}

func BenchmarkString(b *testing.B) {
	r := New()
	for i := 0; i < 100; i++ {
		r.Append("some text that lands in its own arena buffer ")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.String()
	}
}

func BenchmarkSliceString(b *testing.B) {
	r := New()
	for i := 0; i < 100; i++ {
		r.Append("some text that lands in its own arena buffer ")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := r.Slice(100, 1000)
		if err != nil {
			b.Fatal(err)
		}
		_ = s.String()
	}
}

func BenchmarkChars(b *testing.B) {
	r := New()
	for i := 0; i < 50; i++ {
		r.Append("héllo wörld 日本語 ")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := r.Chars()
		for it.Next() {
		}
		if it.Err() != nil {
			b.Fatal(it.Err())
		}
	}
}
