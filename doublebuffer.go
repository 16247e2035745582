// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtprim

import "code.hybscloud.com/atomix"

// doubleBufferSlot holds one snapshot of T, alone on its own cache
// line so the writer filling one slot never invalidates the line the
// reader is copying out of the other.
type doubleBufferSlot[T any] struct {
	_     cacheLinePad
	value T
}

// DoubleBufferCore is the POD-like carrier of a DoubleBuffer's shared
// state: two value slots and the published index. Exactly one
// [DoubleBufferWriter] and one [DoubleBufferReader] may operate on a
// given Core at a time; that contract is enforced by [DoubleBuffer],
// not by Core itself.
//
// T is assumed trivially copyable; this is not checked at compile time
// or construction time (Go generics have no such trait bound). A T
// holding a pointer, slice, or map aliases its backing storage across
// slots instead of producing an independent snapshot.
type DoubleBufferCore[T any] struct {
	slots [2]doubleBufferSlot[T]

	// published is the index of the currently-visible slot, 0 or 1.
	// Written only by the writer (release); read by the reader
	// (acquire) and, relaxed, by the writer itself to pick the free
	// slot. 32 bits wide rather than a single byte: Go exposes no
	// byte-granular atomic, and a narrower width would buy nothing —
	// the control word already owns a full cache line.
	_         cacheLinePad
	published atomix.Uint32
	_         cacheLinePad
}

// DoubleBufferWriter is the move-only producer view of a DoubleBuffer.
// Copying one would duplicate the producer role; see [noCopy].
type DoubleBufferWriter[T any] struct {
	_    noCopy
	core *DoubleBufferCore[T]
}

// Write publishes v as the new snapshot. Wait-free, O(1): one relaxed
// load, one plain copy, one release store. Not safe to call from more
// than one goroutine, and not reentrant (no nested call from the same
// goroutine, e.g. from within a signal handler reusing this stack).
func (w *DoubleBufferWriter[T]) Write(v T) {
	// The writer is the sole mutator of published, so this load needs
	// no synchronization with itself; synchronization with the reader
	// is carried entirely by the release store below.
	cur := w.core.published.LoadRelaxed()
	next := cur ^ 1

	w.core.slots[next].value = v

	// Publication point: every write above happens-before any
	// acquire-load of published that observes next.
	w.core.published.StoreRelease(next)
}

// DoubleBufferReader is the move-only consumer view of a DoubleBuffer.
type DoubleBufferReader[T any] struct {
	_    noCopy
	core *DoubleBufferCore[T]
}

// Read returns the most recently published snapshot. Always succeeds,
// O(1): one acquire load, one plain copy.
//
// Before the first [DoubleBufferWriter.Write], Core is zero-valued, so
// Read returns the zero value of T. A caller that must distinguish
// "nothing published yet" from "a genuine all-zero snapshot" needs an
// external version counter; DoubleBuffer itself carries no such flag.
func (r *DoubleBufferReader[T]) Read() T {
	idx := r.core.published.LoadAcquire()
	return r.core.slots[idx].value
}

// DoubleBuffer owns a [DoubleBufferCore] and hands out at most one
// writer and one reader.
type DoubleBuffer[T any] struct {
	core        DoubleBufferCore[T]
	writerTaken bool
	readerTaken bool
}

// NewDoubleBuffer constructs a zero-initialized DoubleBuffer. Before
// any write, every slot holds the zero value of T.
func NewDoubleBuffer[T any]() *DoubleBuffer[T] {
	return &DoubleBuffer[T]{}
}

// Writer returns the producer view. Panics if called more than once:
// a DoubleBuffer has exactly one producer role to hand out, and a
// second call would otherwise silently duplicate it.
func (db *DoubleBuffer[T]) Writer() *DoubleBufferWriter[T] {
	if db.writerTaken {
		panic("rtprim: DoubleBuffer.Writer called more than once")
	}
	db.writerTaken = true
	return &DoubleBufferWriter[T]{core: &db.core}
}

// Reader returns the consumer view. Panics if called more than once.
func (db *DoubleBuffer[T]) Reader() *DoubleBufferReader[T] {
	if db.readerTaken {
		panic("rtprim: DoubleBuffer.Reader called more than once")
	}
	db.readerTaken = true
	return &DoubleBufferReader[T]{core: &db.core}
}
