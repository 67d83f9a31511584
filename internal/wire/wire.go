// Package wire frames configuration snapshots for storage.
//
// Each entry embeds the derived key it was written under. A read whose
// embedded key does not match the requested one means the slot was written
// by foreign code (or corrupted in transit) and is treated as corrupt; the
// cache deletes it and reports a miss.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version    byte = 1
	kindConfig byte = 1
)

var (
	ErrCorrupt = errors.New("heavyselect: corrupt entry")
	magic4     = [...]byte{'H', 'S', 'E', 'L'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Config entry:
//
//	magic(4) | ver(1) | kind(1=config) |
//	keyLen(u16 be) | key | fidLen(u16 be) | fieldID |
//	vlen(u32 be) | payload(vlen)
func EncodeConfig(key, fieldID string, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 2 + len(key) + 2 + len(fieldID) + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindConfig)

	var u4 [4]byte
	var u2 [2]byte

	if l := len(key); l == 0 || l > 0xFFFF {
		panic("heavyselect: invalid key length")
	}
	binary.BigEndian.PutUint16(u2[:], uint16(len(key)))
	buf.Write(u2[:])
	buf.WriteString(key)

	if len(fieldID) > 0xFFFF {
		panic("heavyselect: invalid field id length")
	}
	binary.BigEndian.PutUint16(u2[:], uint16(len(fieldID)))
	buf.Write(u2[:])
	buf.WriteString(fieldID)

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])
	buf.Write(payload)

	return buf.Bytes()
}

func DecodeConfig(b []byte) (key, fieldID string, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 2
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != kindConfig {
		return "", "", nil, ErrCorrupt
	}

	off := 6

	// key
	klen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if klen <= 0 || klen > len(b)-off {
		return "", "", nil, ErrCorrupt
	}
	key = string(b[off : off+klen])
	off += klen

	// fieldID
	if off+2 > len(b) {
		return "", "", nil, ErrCorrupt
	}
	flen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if flen > len(b)-off {
		return "", "", nil, ErrCorrupt
	}
	fieldID = string(b[off : off+flen])
	off += flen

	// vlen
	if off+4 > len(b) {
		return "", "", nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length; trailing junk is corruption
		return "", "", nil, ErrCorrupt
	}

	return key, fieldID, b[off : off+vlen], nil
}
