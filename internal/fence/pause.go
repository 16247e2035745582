// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fence

import "code.hybscloud.com/spin"

// Backoff wraps [spin.Wait] so callers elsewhere in this module (tests
// and cmd/demo) don't need a direct import of the spin package just to
// poll a primitive.
type Backoff struct {
	sw spin.Wait
}

// Pause executes one spin-wait step, escalating from a tight CPU pause
// toward a goroutine yield the longer the caller has been waiting.
func (b *Backoff) Pause() {
	b.sw.Once()
}

// Reset returns the backoff to its initial, most aggressive state.
func (b *Backoff) Reset() {
	b.sw.Reset()
}
