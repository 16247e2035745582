// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wal_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"github.com/uglypusher/cncl-rt-wal/wal"
)

func TestRecordRoundTrip(t *testing.T) {
	want := wal.LogRecordV2{
		Version:     2,
		EventType:   5,
		Flags:       1,
		ProducerID:  3,
		GlobalSeq:   100,
		CommitTS:    123456789,
		EventTS:     123456700,
		ProducerSeq: 42,
	}
	copy(want.Payload[:], []byte("hello record!"))

	buf, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(buf) != wal.RecordSize {
		t.Fatalf("MarshalBinary length = %d, want %d", len(buf), wal.RecordSize)
	}

	var got wal.LogRecordV2
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}

	got.CRC32 = 0
	want.CRC32 = 0
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestUnmarshalRejectsWrongLength(t *testing.T) {
	var r wal.LogRecordV2
	if err := r.UnmarshalBinary(make([]byte, 63)); err == nil {
		t.Fatal("UnmarshalBinary accepted a 63-byte buffer")
	}
}

func TestUnmarshalRejectsBadChecksum(t *testing.T) {
	rec := wal.LogRecordV2{Version: 2}
	buf, err := rec.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	buf[10] ^= 0xFF // corrupt a body byte without touching the stored CRC

	var got wal.LogRecordV2
	if err := got.UnmarshalBinary(buf); err == nil {
		t.Fatal("UnmarshalBinary accepted a corrupted record")
	}
}

func TestNoopWriterAlwaysWouldBlock(t *testing.T) {
	w := wal.NewNoopWriter()
	if err := w.Push(wal.LogRecordV2{}); !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("Push: got %v, want ErrWouldBlock", err)
	}
}
