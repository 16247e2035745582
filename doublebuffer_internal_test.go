// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtprim

import (
	"testing"
	"unsafe"
)

// TestDoubleBufferSlotsOccupyWholeCacheLines covers spec property 3:
// each slot is padded up to at least one full cache line, so the two
// array elements in DoubleBufferCore.slots never share a line.
func TestDoubleBufferSlotsOccupyWholeCacheLines(t *testing.T) {
	if got := unsafe.Sizeof(doubleBufferSlot[pod32Internal]{}); got < CacheLineBytes {
		t.Fatalf("doubleBufferSlot size = %d, want >= %d", got, CacheLineBytes)
	}
}

// TestDoubleBufferPublishedSeparatedFromSlots covers spec property 3
// for the control word itself: published sits at least one cache line
// past the two (already cache-line-sized) slots.
func TestDoubleBufferPublishedSeparatedFromSlots(t *testing.T) {
	var core DoubleBufferCore[pod32Internal]
	slotsSize := unsafe.Sizeof(core.slots)
	publishedOffset := unsafe.Offsetof(core.published)

	if publishedOffset < slotsSize {
		t.Fatalf("published offset = %d, want >= sizeof(slots) = %d", publishedOffset, slotsSize)
	}
	if publishedOffset-slotsSize < CacheLineBytes {
		t.Fatalf("published is %d bytes past slots, want >= %d", publishedOffset-slotsSize, CacheLineBytes)
	}
}

// TestDoubleBufferPublishedIsLockFree covers spec property 1.
func TestDoubleBufferPublishedIsLockFree(t *testing.T) {
	var core DoubleBufferCore[pod32Internal]
	assertLockFreeWord(t, unsafe.Sizeof(core.published), unsafe.Alignof(core.published))
}

// TestDoubleBufferPublishedAlternatesOnEveryWrite covers spec property
// 8: published flips between 0 and 1 on every Write, never repeating
// or skipping.
func TestDoubleBufferPublishedAlternatesOnEveryWrite(t *testing.T) {
	var core DoubleBufferCore[pod32Internal]
	w := &DoubleBufferWriter[pod32Internal]{core: &core}

	prev := core.published.LoadRelaxed()
	if prev != 0 {
		t.Fatalf("published zero value = %d, want 0", prev)
	}

	for i := int32(1); i <= 10; i++ {
		w.Write(pod32Internal{i, -i})
		cur := core.published.LoadRelaxed()
		if cur != 0 && cur != 1 {
			t.Fatalf("published out of range after write %d: %d", i, cur)
		}
		if cur == prev {
			t.Fatalf("published did not flip on write %d: stayed at %d", i, cur)
		}
		prev = cur
	}
}

// pod32Internal mirrors the pod32 helper type used by the black-box
// tests; white-box tests live in package rtprim and cannot import the
// rtprim_test helper, so they carry their own copy.
type pod32Internal struct {
	A, B int32
}
