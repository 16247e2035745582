// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtprim

import (
	"testing"
)

// assertLockFreeWord checks the precondition Go's runtime documents
// for sync/atomic (and atomix, built on it) to operate lock-free on
// every platform Go supports: the word is either 4 or 8 bytes and
// naturally aligned to its own size. There is no runtime
// is_always_lock_free query to call, unlike std::atomic<T> in the
// original implementation's test suite; checking size and alignment
// is the nearest compile-time-adjacent substitute.
func assertLockFreeWord(t *testing.T, size, align uintptr) {
	t.Helper()
	if size != 4 && size != 8 {
		t.Fatalf("control word is %d bytes, want 4 or 8 for a lock-free atomic", size)
	}
	if align != size {
		t.Fatalf("control word alignment is %d, want %d (naturally aligned)", align, size)
	}
}
