// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task wraps a periodic payload with a heartbeat, so a
// supervisor can tell, from outside the real-time path, when the
// payload last completed a step without ever touching the payload
// itself.
package task

import "code.hybscloud.com/atomix"

// Steppable is anything a [Wrapper] can drive. Step is called once per
// tick with the current time, in whatever unit the caller's scheduler
// uses.
type Steppable interface {
	Step(now uint32)
}

// Initializer is probed for at [NewWrapper] time. A payload that
// implements it has Init called once, before the first Step.
type Initializer interface {
	Init()
}

// Alarmer is probed for at [NewWrapper] time. A payload that
// implements it has Alarm called whenever a supervisor decides the
// heartbeat has gone stale; Wrapper itself never calls Alarm.
type Alarmer interface {
	Alarm()
}

// Finisher is probed for at [NewWrapper] time. A payload that
// implements it has Done called on shutdown.
type Finisher interface {
	Done()
}

// Wrapper drives a Steppable payload and publishes a heartbeat after
// every completed step. The heartbeat is the timestamp of the most
// recently finished Step, never of one in progress: Step runs to
// completion, then the heartbeat is stored with release ordering, so
// a goroutine that observes a heartbeat value with acquire ordering
// also observes every effect that Step had on the payload.
type Wrapper[P Steppable] struct {
	payload   P
	heartbeat atomix.Uint32

	init  func()
	alarm func()
	done  func()
}

// NewWrapper constructs a Wrapper around payload. The optional
// lifecycle hooks are resolved once here, by type assertion against
// [Initializer], [Alarmer], and [Finisher], rather than on every call
// — Go has no compile-time "does this type satisfy an optional
// concept" check, so the closest equivalent is to pay the assertion
// cost once and cache the result.
func NewWrapper[P Steppable](payload P) *Wrapper[P] {
	w := &Wrapper[P]{payload: payload}

	if init, ok := any(payload).(Initializer); ok {
		w.init = init.Init
	}
	if alarmer, ok := any(payload).(Alarmer); ok {
		w.alarm = alarmer.Alarm
	}
	if fin, ok := any(payload).(Finisher); ok {
		w.done = fin.Done
	}

	return w
}

// Init runs the payload's Init hook, if it has one. Idempotent only in
// the sense that calling it twice calls Init twice; callers are
// responsible for calling it exactly once, before the first Step.
func (w *Wrapper[P]) Init() {
	if w.init != nil {
		w.init()
	}
}

// Alarm runs the payload's Alarm hook, if it has one. Wrapper never
// calls this itself; it exists for a supervisor to invoke when it
// decides the heartbeat has gone stale.
func (w *Wrapper[P]) Alarm() {
	if w.alarm != nil {
		w.alarm()
	}
}

// Done runs the payload's Done hook, if it has one.
func (w *Wrapper[P]) Done() {
	if w.done != nil {
		w.done()
	}
}

// Step runs one payload step, then publishes now as the heartbeat.
// Step-then-store, never the reverse: the heartbeat must never claim a
// step finished before it actually did.
func (w *Wrapper[P]) Step(now uint32) {
	w.payload.Step(now)
	w.heartbeat.StoreRelease(now)
}

// Heartbeat returns the timestamp of the most recently completed Step,
// or 0 if Step has never been called. Safe to call concurrently with
// Step from a supervisor goroutine.
func (w *Wrapper[P]) Heartbeat() uint32 {
	return w.heartbeat.LoadAcquire()
}

// Payload returns the wrapped payload. Not safe to call concurrently
// with Step unless P's own methods are themselves safe for concurrent
// use; Wrapper does not add synchronization around payload access
// beyond the heartbeat itself.
func (w *Wrapper[P]) Payload() P {
	return w.payload
}
