// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtprim

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// SPSCRingCore is the shared-state carrier for an [SPSCRing]: a
// power-of-two buffer of slots plus the head and tail indices, each
// on its own cache line. head is written only by the writer; tail is
// written only by the reader.
//
// T is assumed trivially copyable; this is not checked at compile time
// or construction time (Go generics have no such trait bound).
type SPSCRingCore[T any] struct {
	_ cacheLinePad
	// head: next slot to write into. Read relaxed by the writer
	// (sole mutator), acquire by the reader.
	head atomix.Uint64
	_    cacheLinePad
	// tail: next slot to read from. Read relaxed by the reader (sole
	// mutator), acquire by the writer.
	tail atomix.Uint64
	_    cacheLinePad

	// pad separates tail from the buffer slice header and mask, which
	// both roles read on every call: without it, the reader advancing
	// tail would invalidate the line the writer reads them from. The
	// buffer's elements live in their own allocation, not in Core.
	_ cacheLinePad

	buffer []T
	mask   uint64
}

func isPow2(n int) bool { return n >= 2 && n&(n-1) == 0 }

func newSPSCRingCore[T any](capacity int) *SPSCRingCore[T] {
	if !isPow2(capacity) {
		panic("rtprim: SPSCRing capacity must be a power of two >= 2")
	}
	return &SPSCRingCore[T]{
		buffer: make([]T, capacity),
		mask:   uint64(capacity - 1),
	}
}

// SPSCRingWriter is the move-only producer view.
type SPSCRingWriter[T any] struct {
	_    noCopy
	core *SPSCRingCore[T]
}

// Push appends item to the ring. Wait-free, O(1). Returns
// [iox.ErrWouldBlock] if the ring is full; item is not stored.
//
// head is loaded relaxed (the writer is its sole mutator); tail is
// loaded acquire, which establishes happens-before with the reader's
// release-store of tail and so guarantees the slot about to be
// written has already been vacated. head is stored release, making
// the new item visible to the reader's next acquire-load of head.
func (w *SPSCRingWriter[T]) Push(item T) error {
	head := w.core.head.LoadRelaxed()
	next := (head + 1) & w.core.mask

	if next == w.core.tail.LoadAcquire() {
		return iox.ErrWouldBlock
	}

	w.core.buffer[head] = item
	w.core.head.StoreRelease(next)
	return nil
}

// Full reports whether the ring looked full at the moment of the
// call. Telemetry only: the result may be stale by the time the
// caller observes it and must never gate flow control or
// synchronization — only [Push]'s own acquire-load of tail does that.
func (w *SPSCRingWriter[T]) Full() bool {
	head := w.core.head.LoadRelaxed()
	next := (head + 1) & w.core.mask
	return next == w.core.tail.LoadRelaxed()
}

// UsableCapacity returns C-1: the maximum number of live items, one
// slot short of the physical buffer size, which is reserved as the
// full/empty sentinel.
func (w *SPSCRingWriter[T]) UsableCapacity() int {
	return int(w.core.mask)
}

// SPSCRingReader is the move-only consumer view.
type SPSCRingReader[T any] struct {
	_    noCopy
	core *SPSCRingCore[T]
}

// Pop removes and returns the oldest item. Wait-free, O(1). Returns
// [iox.ErrWouldBlock] if the ring is empty; the zero value of T is
// returned alongside it.
//
// tail is loaded relaxed (the reader is its sole mutator); head is
// loaded acquire, establishing happens-before with the writer's
// release-store of head so the item about to be read is guaranteed
// fully written. tail is stored release, making the vacated slot
// visible to the writer's next acquire-load of tail.
func (r *SPSCRingReader[T]) Pop() (T, error) {
	tail := r.core.tail.LoadRelaxed()

	if tail == r.core.head.LoadAcquire() {
		var zero T
		return zero, iox.ErrWouldBlock
	}

	item := r.core.buffer[tail]
	r.core.tail.StoreRelease((tail + 1) & r.core.mask)
	return item, nil
}

// Empty reports whether the ring looked empty at the moment of the
// call. Telemetry only — see [SPSCRingWriter.Full].
func (r *SPSCRingReader[T]) Empty() bool {
	return r.core.tail.LoadRelaxed() == r.core.head.LoadRelaxed()
}

// UsableCapacity returns C-1, the maximum number of live items.
func (r *SPSCRingReader[T]) UsableCapacity() int {
	return int(r.core.mask)
}

// SPSCRing owns an [SPSCRingCore] and hands out at most one writer and
// one reader. Capacity must be a power of two >= 2; NewSPSCRing panics
// otherwise. Usable capacity is Capacity-1 (spec: one slot is reserved
// as the full/empty sentinel).
type SPSCRing[T any] struct {
	core        *SPSCRingCore[T]
	writerTaken bool
	readerTaken bool
}

// NewSPSCRing constructs a ring of the given power-of-two capacity.
func NewSPSCRing[T any](capacity int) *SPSCRing[T] {
	return &SPSCRing[T]{core: newSPSCRingCore[T](capacity)}
}

// Writer returns the producer view. Panics if called more than once.
func (rb *SPSCRing[T]) Writer() *SPSCRingWriter[T] {
	if rb.writerTaken {
		panic("rtprim: SPSCRing.Writer called more than once")
	}
	rb.writerTaken = true
	return &SPSCRingWriter[T]{core: rb.core}
}

// Reader returns the consumer view. Panics if called more than once.
func (rb *SPSCRing[T]) Reader() *SPSCRingReader[T] {
	if rb.readerTaken {
		panic("rtprim: SPSCRing.Reader called more than once")
	}
	rb.readerTaken = true
	return &SPSCRingReader[T]{core: rb.core}
}
