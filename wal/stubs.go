// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wal

import "code.hybscloud.com/iox"

// BackendMode selects where a Backend persists records.
type BackendMode int

const (
	BackendFile BackendMode = iota
	BackendRawDevice
)

// BackendConfig configures a Backend. It carries no behavior of its
// own; a concrete Backend decides what to do with it.
type BackendConfig struct {
	Target        string
	Mode          BackendMode
	MaxBatchBytes int
	FsyncOnCommit bool
}

// Backend is the durability sink a Writer hands committed batches to.
// No implementation lives in this module: batching policy, fsync
// cadence, and degrade-mode behavior are left to whatever concrete
// backend a deployment wires in.
type Backend interface {
	Start() error
	Stop() error

	// SubmitBatch is not RT-safe: it may allocate and block.
	SubmitBatch(batch []LogRecordV2) error
	SetDegrade()
}

// Writer is the RT-safe front door a producer pushes records through.
// Push must never block or allocate; a stub implementation that
// cannot accept a record returns iox.ErrWouldBlock rather than
// applying backpressure by blocking the caller.
type Writer interface {
	Push(rec LogRecordV2) error
}

// WritersDispatcher fans committed records out to one or more
// Writers. Submit is RT-safe; Flush is not and belongs to the non-RT
// domain.
type WritersDispatcher interface {
	Submit(rec LogRecordV2) error
	Flush()
}

// noopWriter is the zero-effort Writer stub cmd/demo wires against
// until a real Backend exists. Every Push reports ErrWouldBlock,
// signaling "no durability sink configured" rather than silently
// discarding records.
type noopWriter struct{}

// NewNoopWriter returns a Writer stub that accepts no records. It
// exists so callers have a concrete Writer to construct before any
// real Backend is implemented.
func NewNoopWriter() Writer { return noopWriter{} }

func (noopWriter) Push(LogRecordV2) error { return iox.ErrWouldBlock }
