package wire

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/unkn0wn-root/aerocache/store"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("aerocache: corrupt record")
	magic4     = [...]byte{'A', 'E', 'R', 'O'}
)

const hdr = 4 + 1 + 8 + 8 + 2

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Record: magic(4) | ver(1) | stored(i64 be) | ttl(i64 be) | pkLen(u16 be) | pk(pkLen) | itemLen(u32 be) | item(itemLen)
func EncodeRecord(rec store.Record) ([]byte, error) {
	if len(rec.PrimaryKey) > 0xFFFF {
		return nil, errors.New("aerocache: primary key too long")
	}
	if uint64(len(rec.Item)) > 0xFFFFFFFF {
		return nil, errors.New("aerocache: item too large")
	}

	var buf bytes.Buffer
	buf.Grow(hdr + len(rec.PrimaryKey) + 4 + len(rec.Item))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint64(u8[:], uint64(rec.Stored))
	buf.Write(u8[:])
	binary.BigEndian.PutUint64(u8[:], uint64(rec.TTL))
	buf.Write(u8[:])

	binary.BigEndian.PutUint16(u2[:], uint16(len(rec.PrimaryKey)))
	buf.Write(u2[:])
	buf.WriteString(rec.PrimaryKey)

	binary.BigEndian.PutUint32(u4[:], uint32(len(rec.Item)))
	buf.Write(u4[:])
	buf.Write(rec.Item)

	return buf.Bytes(), nil
}

// DecodeRecord parses a frame produced by EncodeRecord. The returned Item
// aliases b.
func DecodeRecord(b []byte) (store.Record, error) {
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return store.Record{}, ErrCorrupt
	}

	off := 5
	stored := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	ttl := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	klen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if klen > len(b)-off {
		return store.Record{}, ErrCorrupt
	}
	pk := string(b[off : off+klen])
	off += klen

	if off+4 > len(b) {
		return store.Record{}, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length, no trailing bytes
		return store.Record{}, ErrCorrupt
	}

	return store.Record{
		PrimaryKey: pk,
		Item:       b[off : off+vlen],
		Stored:     stored,
		TTL:        ttl,
	}, nil
}

// Expired reports whether rec has outlived its TTL at nowMs (unix ms).
// A non-positive TTL never expires.
func Expired(rec store.Record, nowMs int64) bool {
	return rec.TTL > 0 && rec.Stored+rec.TTL <= nowMs
}
