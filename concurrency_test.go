// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// These tests drive a real writer goroutine against a real reader
// goroutine. They are excluded from -race runs for the same reason the
// teacher package excludes its lock-free queue tests: the race
// detector has no model for happens-before relationships established
// through atomix acquire/release orderings on separate control words,
// so it reports false positives on otherwise-correct code.

package rtprim_test

import (
	"sync"
	"testing"

	rtprim "github.com/uglypusher/cncl-rt-wal"
	"github.com/uglypusher/cncl-rt-wal/internal/fence"
)

const concurrencyN = 10000

// TestDoubleBufferConcurrentNoTornReads covers spec property 18: every
// observed payload {x, -x} satisfies x == -y, and property 19: the
// final published value is eventually observed.
func TestDoubleBufferConcurrentNoTornReads(t *testing.T) {
	db := rtprim.NewDoubleBuffer[pod32]()
	w := db.Writer()
	r := db.Reader()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int32(1); i <= concurrencyN; i++ {
			w.Write(pod32{i, -i})
		}
	}()

	seenFinal := false
	var b fence.Backoff
	for attempt := 0; attempt < concurrencyN*100 && !seenFinal; attempt++ {
		v := r.Read()
		if v.A != -v.B {
			t.Fatalf("torn read: %+v", v)
		}
		if v.A == concurrencyN {
			seenFinal = true
			break
		}
		b.Pause()
	}
	wg.Wait()

	if !seenFinal {
		// The writer has finished; one more read must see the final value.
		v := r.Read()
		if v.A != concurrencyN {
			t.Fatalf("final value not observed: got %+v, want {%d,%d}", v, concurrencyN, -concurrencyN)
		}
	}
}

// TestMailbox2SlotConcurrentNoTornReads covers spec properties 18-19
// for Mailbox2Slot.
func TestMailbox2SlotConcurrentNoTornReads(t *testing.T) {
	m := rtprim.NewMailbox2Slot[pod32]()
	w := m.Writer()
	r := m.Reader()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := int32(1); i <= concurrencyN; i++ {
			w.Publish(pod32{i, -i})
		}
	}()

	seenFinal := false
	var b fence.Backoff
	for attempt := 0; attempt < concurrencyN*100 && !seenFinal; attempt++ {
		v, ok := r.TryRead()
		if ok {
			if v.A != -v.B {
				t.Fatalf("torn read: %+v", v)
			}
			if v.A == concurrencyN {
				seenFinal = true
				break
			}
		}
		b.Pause()
	}
	wg.Wait()

	if !seenFinal {
		var b2 fence.Backoff
		for attempt := 0; attempt < 1000; attempt++ {
			if v, ok := r.TryRead(); ok && v.A == concurrencyN {
				seenFinal = true
				break
			}
			b2.Pause()
		}
	}
	if !seenFinal {
		t.Fatal("final value never observed")
	}
}

// TestSPSCRingConcurrentFIFONoLossNoDuplication covers spec properties
// 18, 19, and 20: the popped sequence equals 1, 2, ..., N exactly.
func TestSPSCRingConcurrentFIFONoLossNoDuplication(t *testing.T) {
	rb := rtprim.NewSPSCRing[int](1024)
	w := rb.Writer()
	r := rb.Reader()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var b fence.Backoff
		for i := 1; i <= concurrencyN; i++ {
			for w.Push(i) != nil {
				b.Pause()
			}
			b.Reset()
		}
	}()

	var b fence.Backoff
	for i := 1; i <= concurrencyN; i++ {
		v, err := r.Pop()
		for err != nil {
			b.Pause()
			v, err = r.Pop()
		}
		b.Reset()
		if v != i {
			t.Fatalf("Pop %d: got %d, want %d", i, v, i)
		}
	}
	wg.Wait()
}
