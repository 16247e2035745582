// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rtprim provides single-producer/single-consumer shared-state
// primitives for hard real-time contexts: interrupt service routines,
// high-priority tasks, and latency-critical control loops that hand
// data to a lower-priority consumer without blocking.
//
// Three primitives are provided, each wait-free on its hot path and
// each enforcing its 1-producer/1-consumer contract by API shape (a
// container whose Writer and Reader methods panic on a second call)
// rather than by any check on the hot path:
//
//   - [DoubleBuffer]: a ping-pong snapshot register. Last write wins;
//     there is no "empty" state and no read ever fails.
//   - [Mailbox2Slot]: a two-slot snapshot mailbox with a reader
//     claim/verify protocol. A read can report a miss (no snapshot, or
//     a publication race was detected) instead of tearing a value.
//   - [SPSCRing]: a bounded lock-free FIFO. Unlike the two snapshot
//     primitives above, every pushed item is delivered exactly once,
//     in order; backpressure is surfaced instead of dropping data.
//
// All three share the same internal layering: a cache-line-isolated
// Core struct carrying the shared state, a move-only Writer view that
// owns the producer role, a move-only Reader view that owns the
// consumer role, and a container that can hand out at most one of
// each. None of the three primitives depends on another.
//
// Violating the single-producer/single-consumer contract — two
// writers, two readers, or a reentrant call from a nested interrupt —
// is undefined with respect to these primitives' documented semantics
// and is not detected at run time, by design: detection would cost an
// atomic check on every hot-path call.
package rtprim

// CacheLineBytes is the assumed cache line size used to separate
// independently-written fields so that neither role's writes evict
// the other's cache line.
const CacheLineBytes = 64

// cacheLinePad occupies a full cache line and carries no data. It is
// placed between fields that must not share a line.
type cacheLinePad [CacheLineBytes]byte

// noCopy, embedded in a struct, makes `go vet`'s copylocks check flag
// any accidental copy of that struct — the same technique
// [sync.WaitGroup] uses to forbid copying a value with live state.
// Writer and Reader views embed it so the compiler-adjacent vet pass
// catches what the type system alone cannot: Go has no copy
// constructor to delete.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
