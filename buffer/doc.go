// Package buffer provides a thread-safe text buffer built on top of the
// rope package. The rope itself is single-owner by design; Buffer supplies
// the external synchronization required to share one across goroutines.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - General variable-width Replace, composed from the rope's primitives
//   - Edit values and atomic reverse-order batch application
//   - A monotonic revision counter for change detection
//
// Basic usage:
//
//	buf := buffer.FromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")   // "Hello, Beautiful World!"
//	buf.Delete(0, 7)              // "Beautiful World!"
//
// Rope slices borrow the tree they were cut from, so Buffer never exposes
// them; range reads are materialized into strings while the read lock is
// held.
package buffer
