// Package rope provides a mutable text buffer backed by an unbalanced binary
// tree over an append-only byte arena.
//
// Leaf nodes reference byte ranges inside arena buffers; inner nodes carry a
// weight equal to the total byte length of their left subtree. Edits splice,
// shrink, and split nodes without copying the stored text, so insertion and
// removal cost is proportional to tree depth and the edited range rather than
// document size. The arena never releases or moves a buffer while the rope is
// alive, which is what keeps leaf references valid across restructuring.
//
// Key properties:
//   - O(depth) insertion and removal without copying unaffected text
//   - Fixed-width in-place substitution via ReplaceAt
//   - Zero-copy range views (Slice) and UTF-8 code point iteration (Chars)
//   - Stable byte offsets: all positions are byte offsets into the document
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r.Insert(5, ",")               // "hello, world"
//	r.Remove(0, 7)                 // "world"
//	text := r.String()             // "world"
//
// A Rope is not safe for concurrent use; callers sharing one across
// goroutines must synchronize externally (see the buffer package). A Slice
// borrows the rope that produced it and is invalidated by any later edit;
// stale use is detected at runtime via a generation counter.
//
// The tree is never rebalanced. Pathological edit patterns (for example,
// always inserting at offset 0) degrade depth toward linear; this is a known
// performance characteristic, not a correctness issue.
package rope
