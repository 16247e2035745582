// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command demo drives two tasks through rtprim, task, crc32c, and wal
// together: one real-time payload publishes through a DoubleBuffer,
// one non-real-time payload pushes through an SPSCRing, and after each
// tick the main loop drains both, building a LogRecordV2 per observed
// value.
package main

import (
	"encoding/binary"
	"fmt"

	rtprim "github.com/uglypusher/cncl-rt-wal"
	"github.com/uglypusher/cncl-rt-wal/internal/fence"
	"github.com/uglypusher/cncl-rt-wal/task"
	"github.com/uglypusher/cncl-rt-wal/wal"
)

// rtTask is the real-time-safe payload: no allocation, no syscalls in
// Step. It publishes its tick count through a DoubleBuffer so a reader
// always sees the latest value, never a queue of stale ones.
type rtTask struct {
	counter uint32
	out     *rtprim.DoubleBufferWriter[uint32]
}

func (t *rtTask) Step(now uint32) {
	t.counter++
	t.out.Write(t.counter)
}

func (t *rtTask) Class() string { return "rt" }

// nonrtTask is not real-time-safe: it is free to push through a ring
// that can, in principle, apply backpressure. It publishes through an
// SPSCRing so a reader observes every tick, not just the latest.
type nonrtTask struct {
	counter uint32
	out     *rtprim.SPSCRingWriter[uint32]
}

func (t *nonrtTask) Step(now uint32) {
	t.counter++
	var b fence.Backoff
	for t.out.Push(t.counter) != nil {
		b.Pause()
	}
}

func (t *nonrtTask) Class() string { return "nonrt" }

func main() {
	db := rtprim.NewDoubleBuffer[uint32]()
	rb := rtprim.NewSPSCRing[uint32](8)

	rt := &rtTask{out: db.Writer()}
	nrt := &nonrtTask{out: rb.Writer()}

	wRt := task.NewWrapper[*rtTask](rt)
	wNrt := task.NewWrapper[*nonrtTask](nrt)

	dbReader := db.Reader()
	rbReader := rb.Reader()
	writer := wal.NewNoopWriter()

	const ticks = 5
	for i := uint32(0); i < ticks; i++ {
		wRt.Step(i)
		wNrt.Step(i)
		fmt.Printf("tick=%d rt-heartbeat=%d nonrt-heartbeat=%d\n",
			i, wRt.Heartbeat(), wNrt.Heartbeat())

		publish(writer, rt.Class(), i, dbReader.Read())

		var b fence.Backoff
		for {
			v, err := rbReader.Pop()
			if err != nil {
				break
			}
			publish(writer, nrt.Class(), i, v)
			b.Reset()
		}
	}
}

// publish builds a LogRecordV2 from an observed payload value,
// computes its CRC32C through MarshalBinary, and pushes it at the
// stub Writer, printing what it would have persisted.
func publish(w wal.Writer, class string, tick, value uint32) {
	rec := wal.LogRecordV2{
		Version:     2,
		GlobalSeq:   uint64(tick),
		ProducerSeq: uint64(value),
	}
	copy(rec.Payload[:], class)

	buf, err := rec.MarshalBinary()
	if err != nil {
		fmt.Printf("marshal error: %v\n", err)
		return
	}
	crc := binary.LittleEndian.Uint32(buf[0:4])

	if err := w.Push(rec); err != nil {
		fmt.Printf("%s value=%d crc32c=%#08x (no backend wired: %v)\n",
			class, value, crc, err)
		return
	}
}
