// Copyright 2026 The cncl-rt-wal Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wal implements the write-ahead-log record format shared
// between the real-time producer side and the durability backend, and
// declares the minimal collaborator interfaces that side wires
// against. The backend, writer, and dispatcher implementations
// themselves are out of scope here; only their shapes are pinned down
// so producer code has something concrete to compile against.
package wal

import (
	"encoding/binary"
	"fmt"

	"github.com/uglypusher/cncl-rt-wal/crc32c"
)

// RecordSize is the fixed, trivially-copyable wire size of a
// LogRecordV2, in bytes.
const RecordSize = 64

// LogRecordV2 is the 64-byte write-ahead log record layout. Field
// offsets are fixed by the wire format, not by Go struct layout, which
// is why MarshalBinary/UnmarshalBinary hand-place every field instead
// of relying on unsafe reinterpretation.
type LogRecordV2 struct {
	CRC32 uint32 // [0:4)   CRC-32C over bytes [4:64)

	Version    uint8 // [4]  format version, starts at 2
	EventType  uint8 // [5]
	Flags      uint8 // [6]
	ProducerID uint8 // [7]

	GlobalSeq uint64 // [8:16)   total WAL order

	CommitTS    uint64 // [16:24)  100us ticks, coordinator time
	EventTS     uint64 // [24:32)  100us ticks, producer time
	ProducerSeq uint64 // [32:40)  local producer order

	Reserved [10]byte // [40:50)
	Payload  [14]byte // [50:64)
}

// MarshalBinary encodes r into a freshly computed 64-byte record,
// stamping CRC32 with the checksum of bytes [4:64).
func (r LogRecordV2) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	r.putBody(buf)
	r.CRC32 = crc32c.Checksum(buf[4:], 0)
	binary.LittleEndian.PutUint32(buf[0:4], r.CRC32)
	return buf, nil
}

// UnmarshalBinary decodes a 64-byte record and verifies its CRC32C
// before populating r. It returns an error, rather than populating a
// half-valid record, on any length or checksum mismatch.
func (r *LogRecordV2) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("wal: record must be %d bytes, got %d", RecordSize, len(data))
	}
	want := binary.LittleEndian.Uint32(data[0:4])
	got := crc32c.Checksum(data[4:], 0)
	if got != want {
		return fmt.Errorf("wal: crc32c mismatch: record says %#08x, computed %#08x", want, got)
	}

	r.CRC32 = want
	r.Version = data[4]
	r.EventType = data[5]
	r.Flags = data[6]
	r.ProducerID = data[7]
	r.GlobalSeq = binary.LittleEndian.Uint64(data[8:16])
	r.CommitTS = binary.LittleEndian.Uint64(data[16:24])
	r.EventTS = binary.LittleEndian.Uint64(data[24:32])
	r.ProducerSeq = binary.LittleEndian.Uint64(data[32:40])
	copy(r.Reserved[:], data[40:50])
	copy(r.Payload[:], data[50:64])
	return nil
}

// putBody writes every field of r except CRC32 into buf, which must
// be RecordSize bytes long.
func (r LogRecordV2) putBody(buf []byte) {
	buf[4] = r.Version
	buf[5] = r.EventType
	buf[6] = r.Flags
	buf[7] = r.ProducerID
	binary.LittleEndian.PutUint64(buf[8:16], r.GlobalSeq)
	binary.LittleEndian.PutUint64(buf[16:24], r.CommitTS)
	binary.LittleEndian.PutUint64(buf[24:32], r.EventTS)
	binary.LittleEndian.PutUint64(buf[32:40], r.ProducerSeq)
	copy(buf[40:50], r.Reserved[:])
	copy(buf[50:64], r.Payload[:])
}
