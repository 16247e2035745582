// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtprim

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Slot identity / pub_state and lock_state encoding. NONE and
// UNLOCKED intentionally share the numeric value 2: they are read by
// different roles and never compared against each other.
const (
	mbSlot0    uint32 = 0
	mbSlot1    uint32 = 1
	mbNone     uint32 = 2
	mbUnlocked uint32 = 2
)

type mailboxSlot[T any] struct {
	_     cacheLinePad
	value T
}

// Mailbox2SlotCore is the shared-state carrier for a [Mailbox2Slot]:
// two value slots and two independent control words, pub_state and
// lock_state, each alone on its own cache line. pub_state is written
// only by the writer; lock_state is written only by the reader — see
// [Mailbox2SlotWriter.Publish] and [Mailbox2SlotReader.TryRead] for
// the protocol that keeps them consistent.
//
// T is assumed trivially copyable; this is not checked at compile time
// or construction time (Go generics have no such trait bound).
type Mailbox2SlotCore[T any] struct {
	slots [2]mailboxSlot[T]

	_ cacheLinePad
	// pubState: which slot holds the latest publication, or mbNone.
	pubState atomix.Uint32
	_        cacheLinePad

	// lockState: which slot the reader currently holds, or mbUnlocked.
	lockState atomix.Uint32
	_         cacheLinePad
}

// Mailbox2SlotWriter is the move-only producer view.
type Mailbox2SlotWriter[T any] struct {
	_    noCopy
	core *Mailbox2SlotCore[T]
}

// Publish writes v as the new latest snapshot. Wait-free, bounded, no
// loops: a handful of atomic loads/stores plus one copy of T.
//
// Step 1 (I3, safe slot availability): the reader holds at most one
// slot at a time, so the slot the reader does *not* hold is always
// free to write. If the reader holds neither (lockState == mbUnlocked)
// either slot is free; j = mbSlot1 is picked without loss of
// generality.
//
// Step 2 (I5, invalidate path): if the chosen slot j is the one
// currently published, pub_state is reset to mbNone before j is
// overwritten, so a reader beginning a claim cannot land on a slot
// that's about to change under it. No race with the reader here: j
// was chosen to differ from lockState, so the reader cannot be
// claiming j right now.
func (w *Mailbox2SlotWriter[T]) Publish(v T) {
	locked := w.core.lockState.LoadAcquire()
	j := mbSlot1
	if locked == mbSlot1 {
		j = mbSlot0
	}

	if w.core.pubState.LoadAcquire() == j {
		w.core.pubState.StoreRelease(mbNone)
	}

	w.core.slots[j].value = v
	w.core.pubState.StoreRelease(j)
}

// Mailbox2SlotReader is the move-only consumer view.
type Mailbox2SlotReader[T any] struct {
	_    noCopy
	core *Mailbox2SlotCore[T]
}

// TryRead reports the latest published snapshot in v and returns true,
// or returns false if nothing has been published yet or a publication
// race was detected between the two steps of the claim/verify
// protocol below. On a false return v is the zero value and the
// caller should retain whatever state it already had (sticky,
// no-retry) and proceed to the next tick.
//
// Postcondition, every return path: lock_state == mbUnlocked.
//
// Claim/verify (I6):
//  1. p1 = load pub_state (acquire). mbNone means nothing published
//     yet; lock_state is already mbUnlocked by the previous call's
//     postcondition, so return false immediately.
//  2. Claim slot p1 by storing it into lock_state (release) — this
//     release pairs with the writer's acquire-load of lock_state at
//     the top of the next Publish.
//  3. p2 = load pub_state (acquire). If p2 != p1 the writer
//     republished between steps 1 and 3: release the claim
//     (lock_state = mbUnlocked) and return false without touching v.
//  4. p1 == p2: slot p1 is stable. Copy it into v.
//  5. Release the claim (lock_state = mbUnlocked) and return true.
//
// ABA safety: for the writer to republish slot p1 between steps 1 and
// 3, it must reach step 1 of Publish, whose acquire-load of
// lock_state would then observe this call's release-store of p1 (the
// claim from step 2). I3 then forbids the writer from choosing p1 —
// it must write the other slot instead. So whenever p1 == p2, slot
// p1's contents have not changed between the claim becoming visible
// and the copy in step 4.
func (r *Mailbox2SlotReader[T]) TryRead() (v T, ok bool) {
	p1 := r.core.pubState.LoadAcquire()
	if p1 == mbNone {
		return v, false
	}

	r.core.lockState.StoreRelease(p1)

	p2 := r.core.pubState.LoadAcquire()
	if p2 != p1 {
		r.core.lockState.StoreRelease(mbUnlocked)
		return v, false
	}

	v = r.core.slots[p1].value

	r.core.lockState.StoreRelease(mbUnlocked)
	return v, true
}

// ErrNoSnapshot reports that [Mailbox2SlotReader.TryReadErr] found no
// stable snapshot: either nothing has been published yet, or a
// publication race was detected and the read was aborted. It is an
// alias of [iox.ErrWouldBlock] for the same reason the teacher
// package aliases it for queue backpressure — both are "try again
// later," not a failure.
var ErrNoSnapshot = iox.ErrWouldBlock

// TryReadErr is [Mailbox2SlotReader.TryRead] with the miss reported as
// [ErrNoSnapshot] instead of a boolean, for callers that standardize
// on the iox error vocabulary used elsewhere in this module family.
func (r *Mailbox2SlotReader[T]) TryReadErr() (T, error) {
	v, ok := r.TryRead()
	if !ok {
		return v, ErrNoSnapshot
	}
	return v, nil
}

// Mailbox2Slot owns a [Mailbox2SlotCore] and hands out at most one
// writer and one reader.
type Mailbox2Slot[T any] struct {
	core        Mailbox2SlotCore[T]
	writerTaken bool
	readerTaken bool
}

// NewMailbox2Slot constructs a zero-initialized Mailbox2Slot: no
// snapshot published, reader unlocked.
func NewMailbox2Slot[T any]() *Mailbox2Slot[T] {
	m := &Mailbox2Slot[T]{}
	m.core.pubState.StoreRelaxed(mbNone)
	m.core.lockState.StoreRelaxed(mbUnlocked)
	return m
}

// Writer returns the producer view. Panics if called more than once.
func (m *Mailbox2Slot[T]) Writer() *Mailbox2SlotWriter[T] {
	if m.writerTaken {
		panic("rtprim: Mailbox2Slot.Writer called more than once")
	}
	m.writerTaken = true
	return &Mailbox2SlotWriter[T]{core: &m.core}
}

// Reader returns the consumer view. Panics if called more than once.
func (m *Mailbox2Slot[T]) Reader() *Mailbox2SlotReader[T] {
	if m.readerTaken {
		panic("rtprim: Mailbox2Slot.Reader called more than once")
	}
	m.readerTaken = true
	return &Mailbox2SlotReader[T]{core: &m.core}
}
