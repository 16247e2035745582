// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package rtprim

// RaceEnabled is true when the race detector is active. The concurrent
// writer/reader goroutine tests are excluded from race builds by their
// own build tag rather than by this constant: Go's race detector
// tracks explicit synchronization (mutex, channel, WaitGroup) but not
// the happens-before relationships established by atomix's
// acquire/release orderings on separate control words, so it reports
// false positives on these primitives' claim/verify and ping-pong
// protocols.
const RaceEnabled = true
