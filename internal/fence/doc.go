// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fence supplies the spin-pause hint used by bounded backoff
// loops that poll a rtprim primitive from ordinary (non-RT) goroutines
// — test harnesses and the cmd/demo scheduler.
//
// This package is never imported by a primitive's Core, Writer, or
// Reader: every rtprim operation is already wait-free and bounded, so
// nothing on the hot path ever needs to pause or retry. Pause exists
// only for the surrounding code that calls Push/Pop/TryRead/Write/Read
// in a loop and wants a CPU-friendly spin instead of a tight busy loop.
package fence
